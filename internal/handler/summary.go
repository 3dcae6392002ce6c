package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/service"
)

type SummaryHandler struct {
	service *service.SummaryService
}

func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

func (h *SummaryHandler) Create(c *gin.Context) {
	var req service.SummaryRequest
	if !bindJSON(c, &req) {
		return
	}
	summary, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSummaryView(*summary))
}

func (h *SummaryHandler) List(c *gin.Context) {
	projectID, ok := queryUint(c, "project_id")
	if !ok {
		return
	}
	summaries, err := h.service.List(c.Request.Context(), repository.SummaryFilter{ProjectID: projectID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryViews(summaries))
}

func (h *SummaryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSummaryView(*summary))
}

func (h *SummaryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.SummaryRequest
	if !bindJSON(c, &req) {
		return
	}
	summary, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSummaryView(*summary))
}

func (h *SummaryHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch service.SummaryPatch
	if !bindJSON(c, &patch) {
		return
	}
	summary, err := h.service.Patch(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSummaryView(*summary))
}

func (h *SummaryHandler) Delete(c *gin.Context) {
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
