package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/service"
)

type MaterialHandler struct {
	service *service.MaterialService
}

func NewMaterialHandler(service *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: service}
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.MaterialRequest
	if !bindJSON(c, &req) {
		return
	}
	material, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newMaterialView(*material))
}

func (h *MaterialHandler) List(c *gin.Context) {
	projectID, ok := queryUint(c, "project_id")
	if !ok {
		return
	}
	materials, err := h.service.List(c.Request.Context(), repository.MaterialFilter{ProjectID: projectID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, materialViews(materials))
}

func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	m := detail.Material
	c.JSON(http.StatusOK, MaterialDetailView{
		ID:              m.ID,
		Project:         m.Project,
		MaterialType:    m.MaterialType,
		MaterialLink:    m.MaterialLink,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Items:           itemViews(detail.Items),
		Recommendations: recommendationViews(detail.Recommendations),
	})
}

func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.MaterialRequest
	if !bindJSON(c, &req) {
		return
	}
	material, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMaterialView(*material))
}

func (h *MaterialHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch service.MaterialPatch
	if !bindJSON(c, &patch) {
		return
	}
	material, err := h.service.Patch(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMaterialView(*material))
}

func (h *MaterialHandler) Delete(c *gin.Context) {
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

func (h *MaterialHandler) Items(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.Items(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemViews(items))
}
