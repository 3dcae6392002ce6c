package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/projecthub/backend/config"
	"github.com/projecthub/backend/internal/handler"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"k8s.io/klog/v2"
)

const requestIDHeader = "X-Request-ID"

type Handlers struct {
	Project        *handler.ProjectHandler
	Material       *handler.MaterialHandler
	AIRequest      *handler.AIRequestHandler
	Summary        *handler.SummaryHandler
	Item           *handler.ItemHandler
	Recommendation *handler.RecommendationHandler
	Config         *handler.ConfigHandler
}

func Setup(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			route(projects, http.MethodGet, "", h.Project.List)
			route(projects, http.MethodPost, "", h.Project.Create)
			route(projects, http.MethodGet, "/:id", h.Project.Get)
			route(projects, http.MethodPut, "/:id", h.Project.Update)
			route(projects, http.MethodPatch, "/:id", h.Project.Patch)
			route(projects, http.MethodDelete, "/:id", h.Project.Delete)
			route(projects, http.MethodGet, "/:id/materials", h.Project.Materials)
			route(projects, http.MethodGet, "/:id/items", h.Project.Items)
			route(projects, http.MethodGet, "/:id/summaries", h.Project.Summaries)
			route(projects, http.MethodGet, "/:id/latest-summary", h.Project.LatestSummary)
			route(projects, http.MethodGet, "/:id/external_matches_by_keyword", h.Project.MatchesByKeyword)
			route(projects, http.MethodPost, "/:id/create_items_from_external_matches_by_keyword", h.Project.IngestByKeyword)
			route(projects, http.MethodGet, "/:id/external_matches_by_code", h.Project.MatchesByCode)
			route(projects, http.MethodPost, "/:id/create_items_from_external_matches_by_code", h.Project.IngestByCode)
			route(projects, http.MethodPost, "/:id/summarize-items", h.Project.Summarize)
		}

		materials := api.Group("/materials")
		{
			route(materials, http.MethodGet, "", h.Material.List)
			route(materials, http.MethodPost, "", h.Material.Create)
			route(materials, http.MethodGet, "/:id", h.Material.Get)
			route(materials, http.MethodPut, "/:id", h.Material.Update)
			route(materials, http.MethodPatch, "/:id", h.Material.Patch)
			route(materials, http.MethodDelete, "/:id", h.Material.Delete)
			route(materials, http.MethodGet, "/:id/items", h.Material.Items)
		}

		aiRequests := api.Group("/ai-requests")
		{
			route(aiRequests, http.MethodGet, "", h.AIRequest.List)
			route(aiRequests, http.MethodPost, "", h.AIRequest.Create)
			route(aiRequests, http.MethodGet, "/:id", h.AIRequest.Get)
			route(aiRequests, http.MethodPut, "/:id", h.AIRequest.Update)
			route(aiRequests, http.MethodPatch, "/:id", h.AIRequest.Patch)
			route(aiRequests, http.MethodDelete, "/:id", h.AIRequest.Delete)
		}

		summaries := api.Group("/summaries")
		{
			route(summaries, http.MethodGet, "", h.Summary.List)
			route(summaries, http.MethodPost, "", h.Summary.Create)
			route(summaries, http.MethodGet, "/:id", h.Summary.Get)
			route(summaries, http.MethodPut, "/:id", h.Summary.Update)
			route(summaries, http.MethodPatch, "/:id", h.Summary.Patch)
			route(summaries, http.MethodDelete, "/:id", h.Summary.Delete)
		}

		items := api.Group("/items")
		{
			route(items, http.MethodGet, "", h.Item.List)
			route(items, http.MethodPost, "", h.Item.Create)
			route(items, http.MethodGet, "/:id", h.Item.Get)
			route(items, http.MethodPut, "/:id", h.Item.Update)
			route(items, http.MethodPatch, "/:id", h.Item.Patch)
			route(items, http.MethodDelete, "/:id", h.Item.Delete)
			route(items, http.MethodPatch, "/:id/toggle_fixed", h.Item.ToggleFixed)
			route(items, http.MethodPatch, "/:id/toggle_active", h.Item.ToggleActive)
			route(items, http.MethodGet, "/:id/matching_recommendation", h.Item.MatchingRecommendation)
		}

		recs := api.Group("/recommendations")
		{
			route(recs, http.MethodGet, "", h.Recommendation.List)
			route(recs, http.MethodPost, "", h.Recommendation.Create)
			// 静态路径需在 /:id 之前注册
			route(recs, http.MethodGet, "/by_item", h.Recommendation.ByItem)
			route(recs, http.MethodGet, "/:id", h.Recommendation.Get)
			route(recs, http.MethodPut, "/:id", h.Recommendation.Update)
			route(recs, http.MethodPatch, "/:id", h.Recommendation.Patch)
			route(recs, http.MethodDelete, "/:id", h.Recommendation.Delete)
			route(recs, http.MethodPatch, "/:id/toggle_active", h.Recommendation.ToggleActive)
		}

		if h.Config != nil {
			api.GET("/config", h.Config.Get)
		}
	}

	return r
}

// route 同时注册带与不带结尾斜杠的路径，非 GET 请求无法依赖重定向
func route(g *gin.RouterGroup, method, path string, handlerFunc gin.HandlerFunc) {
	g.Handle(method, path, handlerFunc)
	g.Handle(method, strings.TrimSuffix(path, "/")+"/", handlerFunc)
}

// RequestID 透传或生成请求 ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
		if c.Writer.Status() >= http.StatusInternalServerError {
			klog.Warningf("request failed: id=%s, method=%s, path=%s, status=%d", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status())
		}
	}
}
