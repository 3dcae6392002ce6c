package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/service"
)

type AIRequestHandler struct {
	service *service.AIRequestService
}

func NewAIRequestHandler(service *service.AIRequestService) *AIRequestHandler {
	return &AIRequestHandler{service: service}
}

func (h *AIRequestHandler) Create(c *gin.Context) {
	var req service.AIRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	aiReq, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aiReq)
}

func (h *AIRequestHandler) List(c *gin.Context) {
	reqs, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if reqs == nil {
		reqs = []model.AIRequest{}
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *AIRequestHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	aiReq, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aiReq)
}

func (h *AIRequestHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.AIRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	aiReq, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aiReq)
}

func (h *AIRequestHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch service.AIRequestPatch
	if !bindJSON(c, &patch) {
		return
	}
	aiReq, err := h.service.Patch(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aiReq)
}

func (h *AIRequestHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
