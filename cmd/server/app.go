package main

import (
	"fmt"
	"os"

	"github.com/projecthub/backend/config"
	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/external"
	"github.com/projecthub/backend/internal/handler"
	"github.com/projecthub/backend/internal/pkg/database"
	"github.com/projecthub/backend/internal/pkg/llm"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/router"
	"github.com/projecthub/backend/internal/service"
	"github.com/projecthub/backend/internal/subscriber"
	"k8s.io/klog/v2"
)

// app 装配完成的服务集合
type app struct {
	cfg             *config.Config
	projects        *service.ProjectService
	materials       *service.MaterialService
	aiRequests      *service.AIRequestService
	summaries       *service.SummaryService
	items           *service.ItemService
	recommendations *service.RecommendationService
	matching        *service.MatchingService
	summarizer      *service.Summarizer
}

func newApp(cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	projectRepo := repository.NewProjectRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	aiRequestRepo := repository.NewAIRequestRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	itemRepo := repository.NewItemRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	bus := eventbus.NewProjectEventBus()
	subscriber.NewProjectEventSubscriber().Register(bus)

	// 生成器不可用时服务照常启动，汇总接口返回 500
	var generator llm.TextGenerator
	if g, err := llm.NewTextGenerator(cfg); err != nil {
		klog.Errorf("text generator unavailable: provider=%s, error=%v", cfg.LLM.Provider, err)
	} else {
		generator = g
	}

	source := external.NewFileSource(cfg.Data.ExternalDataPath)

	return &app{
		cfg:             cfg,
		projects:        service.NewProjectService(projectRepo, materialRepo, itemRepo, summaryRepo),
		materials:       service.NewMaterialService(projectRepo, materialRepo, itemRepo, recRepo),
		aiRequests:      service.NewAIRequestService(aiRequestRepo),
		summaries:       service.NewSummaryService(projectRepo, summaryRepo, aiRequestRepo),
		items:           service.NewItemService(projectRepo, materialRepo, itemRepo, recRepo),
		recommendations: service.NewRecommendationService(projectRepo, materialRepo, itemRepo, recRepo, bus),
		matching:        service.NewMatchingService(projectRepo, materialRepo, service.NewMatcher(source), service.NewIngestor(itemRepo, bus)),
		summarizer:      service.NewSummarizer(projectRepo, itemRepo, summaryRepo, generator, bus),
	}, nil
}

func (a *app) handlers() router.Handlers {
	return router.Handlers{
		Project:        handler.NewProjectHandler(a.projects, a.matching, a.summarizer),
		Material:       handler.NewMaterialHandler(a.materials),
		AIRequest:      handler.NewAIRequestHandler(a.aiRequests),
		Summary:        handler.NewSummaryHandler(a.summaries),
		Item:           handler.NewItemHandler(a.items),
		Recommendation: handler.NewRecommendationHandler(a.recommendations),
		Config:         handler.NewConfigHandler(a.cfg),
	}
}
