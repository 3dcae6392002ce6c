package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/service"
)

type ProjectHandler struct {
	service    *service.ProjectService
	matching   *service.MatchingService
	summarizer *service.Summarizer
}

func NewProjectHandler(service *service.ProjectService, matching *service.MatchingService, summarizer *service.Summarizer) *ProjectHandler {
	return &ProjectHandler{
		service:    service,
		matching:   matching,
		summarizer: summarizer,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectDetailView(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch service.ProjectPatch
	if !bindJSON(c, &patch) {
		return
	}
	project, err := h.service.Patch(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
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

func (h *ProjectHandler) Materials(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	materials, err := h.service.Materials(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, materialViews(materials))
}

func (h *ProjectHandler) Items(c *gin.Context) {
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

func (h *ProjectHandler) Summaries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	summaries, err := h.service.Summaries(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryViews(summaries))
}

// LatestSummary 返回单元素数组，没有摘要时返回空数组
func (h *ProjectHandler) LatestSummary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := h.service.LatestSummary(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusOK, []SummaryView{})
		return
	}
	c.JSON(http.StatusOK, []SummaryView{newSummaryView(*summary)})
}

func (h *ProjectHandler) MatchesByKeyword(c *gin.Context) {
	h.findMatches(c, model.MatchByKeyword)
}

func (h *ProjectHandler) MatchesByCode(c *gin.Context) {
	h.findMatches(c, model.MatchByCode)
}

func (h *ProjectHandler) IngestByKeyword(c *gin.Context) {
	h.ingestMatches(c, model.MatchByKeyword)
}

func (h *ProjectHandler) IngestByCode(c *gin.Context) {
	h.ingestMatches(c, model.MatchByCode)
}

func (h *ProjectHandler) findMatches(c *gin.Context, mode model.MatchMode) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.matching.FindMatches(c.Request.Context(), id, mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) ingestMatches(c *gin.Context, mode model.MatchMode) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.matching.IngestMatches(c.Request.Context(), id, mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summarize 业务错误使用 detail 字段
func (h *ProjectHandler) Summarize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := h.summarizer.Summarize(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoQualifyingItems):
			c.JSON(http.StatusNotFound, gin.H{"detail": "No active and fixed items found."})
		case errors.Is(err, service.ErrUpstreamGeneration):
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		default:
			writeError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, newSummaryView(*summary))
}
