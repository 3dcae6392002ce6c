package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/external"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"gorm.io/gorm"
)

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

// testEnv 基于内存 sqlite 的完整服务依赖
type testEnv struct {
	db           *gorm.DB
	projects     repository.ProjectRepository
	materials    repository.MaterialRepository
	items        repository.ItemRepository
	recs         repository.RecommendationRepository
	summaries    repository.SummaryRepository
	aiRequests   repository.AIRequestRepository
	bus          *eventbus.ProjectEventBus
	source       *external.StaticSource
	events       []eventbus.ProjectEvent
	matcher      *Matcher
	ingestor     *Ingestor
	matching     *MatchingService
	projectSvc   *ProjectService
	materialSvc  *MaterialService
	itemSvc      *ItemService
	recSvc       *RecommendationService
	summarySvc   *SummaryService
	aiRequestSvc *AIRequestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle error: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	env := &testEnv{
		db:         db,
		projects:   repository.NewProjectRepository(db),
		materials:  repository.NewMaterialRepository(db),
		items:      repository.NewItemRepository(db),
		recs:       repository.NewRecommendationRepository(db),
		summaries:  repository.NewSummaryRepository(db),
		aiRequests: repository.NewAIRequestRepository(db),
		bus:        eventbus.NewProjectEventBus(),
		source:     &external.StaticSource{},
	}
	record := func(ctx context.Context, event eventbus.ProjectEvent) error {
		env.events = append(env.events, event)
		return nil
	}
	env.bus.Subscribe(eventbus.ProjectEventItemsIngested, record)
	env.bus.Subscribe(eventbus.ProjectEventSummaryCreated, record)
	env.bus.Subscribe(eventbus.ProjectEventRecommendationDeactivated, record)

	env.matcher = NewMatcher(env.source)
	env.ingestor = NewIngestor(env.items, env.bus)
	env.matching = NewMatchingService(env.projects, env.materials, env.matcher, env.ingestor)
	env.projectSvc = NewProjectService(env.projects, env.materials, env.items, env.summaries)
	env.materialSvc = NewMaterialService(env.projects, env.materials, env.items, env.recs)
	env.itemSvc = NewItemService(env.projects, env.materials, env.items, env.recs)
	env.recSvc = NewRecommendationService(env.projects, env.materials, env.items, env.recs, env.bus)
	env.summarySvc = NewSummaryService(env.projects, env.summaries, env.aiRequests)
	env.aiRequestSvc = NewAIRequestService(env.aiRequests)
	return env
}

func (env *testEnv) summarizer(gen *mockGenerator) *Summarizer {
	return NewSummarizer(env.projects, env.items, env.summaries, gen, env.bus)
}

func (env *testEnv) createProject(t *testing.T, keyword, code string) *model.Project {
	t.Helper()
	project := &model.Project{AuthorEmail: "owner@example.com", ProjectName: "Hub", ProjectCode: code, ProjectKeyword: keyword}
	if err := env.projects.Create(context.Background(), project); err != nil {
		t.Fatalf("create project error: %v", err)
	}
	return project
}

func (env *testEnv) createMaterial(t *testing.T, projectID uint, materialType model.MaterialType, link string) *model.ProjectMaterial {
	t.Helper()
	material := &model.ProjectMaterial{ProjectID: projectID, MaterialType: materialType, MaterialLink: link}
	if err := env.materials.Create(context.Background(), material); err != nil {
		t.Fatalf("create material error: %v", err)
	}
	return material
}

func (env *testEnv) createItem(t *testing.T, projectID, materialID uint, title, body, link string, fixed, active bool) *model.Item {
	t.Helper()
	item := &model.Item{ProjectID: projectID, ProjectMaterialID: materialID, Title: title, Body: body, Link: link, IsFixed: fixed, IsActive: active}
	if err := env.items.Create(context.Background(), item); err != nil {
		t.Fatalf("create item error: %v", err)
	}
	return item
}

func (env *testEnv) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	return n
}
