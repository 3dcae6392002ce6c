package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/service"
)

type RecommendationHandler struct {
	service *service.RecommendationService
}

func NewRecommendationHandler(service *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) Create(c *gin.Context) {
	var req service.RecommendationRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecommendationView(*rec))
}

func (h *RecommendationHandler) List(c *gin.Context) {
	projectID, ok := queryUint(c, "project_id")
	if !ok {
		return
	}
	recs, err := h.service.List(c.Request.Context(), repository.RecommendationFilter{
		ProjectID: projectID,
		IsActive:  queryBool(c, "is_active"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendationViews(recs))
}

func (h *RecommendationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecommendationView(*rec))
}

func (h *RecommendationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.RecommendationRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecommendationView(*rec))
}

func (h *RecommendationHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch service.RecommendationPatch
	if !bindJSON(c, &patch) {
		return
	}
	rec, err := h.service.Patch(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecommendationView(*rec))
}

func (h *RecommendationHandler) Delete(c *gin.Context) {
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

type recommendationToggleResponse struct {
	RecommendationView
	Message string `json:"message"`
}

func (h *RecommendationHandler) ToggleActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, message, err := h.service.ToggleActive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendationToggleResponse{RecommendationView: newRecommendationView(*rec), Message: message})
}

// ByItem 包含未激活的推荐
func (h *RecommendationHandler) ByItem(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("item_id"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id parameter is required."})
		return
	}
	itemID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id must be a valid integer."})
		return
	}
	recs, err := h.service.ByItem(c.Request.Context(), uint(itemID))
	if err != nil {
		writeError(c, err)
		return
	}
	message := fmt.Sprintf("Found %d recommendation(s) for item ID %d.", len(recs), itemID)
	if len(recs) == 0 {
		message = fmt.Sprintf("No recommendations for item ID %d.", itemID)
	}
	c.JSON(http.StatusOK, gin.H{
		"item_id":               itemID,
		"recommendations_count": len(recs),
		"recommendations":       recommendationViews(recs),
		"message":               message,
	})
}
