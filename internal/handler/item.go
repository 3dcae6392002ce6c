package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/service"
)

type ItemHandler struct {
	service *service.ItemService
}

func NewItemHandler(service *service.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req service.ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newItemView(*item))
}

func (h *ItemHandler) List(c *gin.Context) {
	projectID, ok := queryUint(c, "project_id")
	if !ok {
		return
	}
	materialID, ok := queryUint(c, "material_id")
	if !ok {
		return
	}
	items, err := h.service.List(c.Request.Context(), repository.ItemFilter{
		ProjectID:  projectID,
		MaterialID: materialID,
		IsFixed:    queryBool(c, "is_fixed"),
		IsActive:   queryBool(c, "is_active"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemViews(items))
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemView(*item))
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.ItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemView(*item))
}

func (h *ItemHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch service.ItemPatch
	if !bindJSON(c, &patch) {
		return
	}
	item, err := h.service.Patch(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemView(*item))
}

func (h *ItemHandler) Delete(c *gin.Context) {
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

func (h *ItemHandler) ToggleFixed(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.ToggleFixed(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemView(*item))
}

type itemToggleResponse struct {
	ItemView
	Message string `json:"message"`
}

func (h *ItemHandler) ToggleActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, message, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemToggleResponse{ItemView: newItemView(*item), Message: message})
}

func (h *ItemHandler) MatchingRecommendation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, rec, err := h.service.MatchingRecommendation(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{
			"item_id":            item.ID,
			"item_title":         item.Title,
			"has_recommendation": false,
			"recommendation":     nil,
			"message":            "No active recommendation for item '" + item.Title + "'.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item_id":            item.ID,
		"item_title":         item.Title,
		"has_recommendation": true,
		"recommendation": gin.H{
			"id":                  rec.ID,
			"project_id":          rec.ProjectID,
			"project_material_id": rec.ProjectMaterialID,
			"is_active":           rec.IsActive,
			"created_at":          rec.CreatedAt,
			"updated_at":          rec.UpdatedAt,
		},
		"message": "Item '" + item.Title + "' has an active recommendation.",
	})
}
