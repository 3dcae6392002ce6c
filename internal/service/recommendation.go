package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

type RecommendationService struct {
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	itemRepo     repository.ItemRepository
	recRepo      repository.RecommendationRepository
	bus          *eventbus.ProjectEventBus
}

func NewRecommendationService(projectRepo repository.ProjectRepository, materialRepo repository.MaterialRepository, itemRepo repository.ItemRepository, recRepo repository.RecommendationRepository, bus *eventbus.ProjectEventBus) *RecommendationService {
	return &RecommendationService{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		itemRepo:     itemRepo,
		recRepo:      recRepo,
		bus:          bus,
	}
}

// RecommendationRequest IsActive 为空时默认激活
type RecommendationRequest struct {
	Project         uint  `json:"project" binding:"required"`
	Item            *uint `json:"item"`
	ProjectMaterial *uint `json:"project_material"`
	IsActive        *bool `json:"is_active"`
}

type RecommendationPatch struct {
	Project         *uint `json:"project"`
	Item            *uint `json:"item"`
	ProjectMaterial *uint `json:"project_material"`
	IsActive        *bool `json:"is_active"`
}

func (s *RecommendationService) Create(ctx context.Context, req RecommendationRequest) (*model.Recommendation, error) {
	rec := &model.Recommendation{
		ProjectID:         req.Project,
		ItemID:            req.Item,
		ProjectMaterialID: req.ProjectMaterial,
		IsActive:          true,
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}
	if err := s.validate(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	return s.recRepo.Get(ctx, rec.ID)
}

func (s *RecommendationService) List(ctx context.Context, filter repository.RecommendationFilter) ([]model.Recommendation, error) {
	return s.recRepo.List(ctx, filter)
}

func (s *RecommendationService) Get(ctx context.Context, id uint) (*model.Recommendation, error) {
	return s.recRepo.Get(ctx, id)
}

// ByItem 返回条目上的全部推荐（含未激活）
func (s *RecommendationService) ByItem(ctx context.Context, itemID uint) ([]model.Recommendation, error) {
	return s.recRepo.List(ctx, repository.RecommendationFilter{ItemID: &itemID})
}

func (s *RecommendationService) Update(ctx context.Context, id uint, req RecommendationRequest) (*model.Recommendation, error) {
	rec, err := s.recRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.ProjectID = req.Project
	rec.ItemID = req.Item
	rec.ProjectMaterialID = req.ProjectMaterial
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}
	return s.save(ctx, rec)
}

func (s *RecommendationService) Patch(ctx context.Context, id uint, patch RecommendationPatch) (*model.Recommendation, error) {
	rec, err := s.recRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Project != nil {
		rec.ProjectID = *patch.Project
	}
	if patch.Item != nil {
		rec.ItemID = patch.Item
	}
	if patch.ProjectMaterial != nil {
		rec.ProjectMaterialID = patch.ProjectMaterial
	}
	if patch.IsActive != nil {
		rec.IsActive = *patch.IsActive
	}
	return s.save(ctx, rec)
}

func (s *RecommendationService) Delete(ctx context.Context, id uint) error {
	return s.recRepo.Delete(ctx, id)
}

// ToggleActive 由激活切换为未激活时删除关联条目，删除失败只体现在提示信息中
func (s *RecommendationService) ToggleActive(ctx context.Context, id uint) (*model.Recommendation, string, error) {
	rec, err := s.recRepo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	wasActive := rec.IsActive
	rec.IsActive = !rec.IsActive
	rec.Project, rec.Item = nil, nil
	if err := s.recRepo.Save(ctx, rec); err != nil {
		return nil, "", fmt.Errorf("toggle recommendation active: %w", err)
	}

	if !wasActive {
		klog.V(6).Infof("recommendation activated: id=%d", rec.ID)
		return s.reload(ctx, rec), "Recommendation has been activated.", nil
	}

	message := s.deleteAssociatedItem(ctx, rec)
	return s.reload(ctx, rec), message, nil
}

func (s *RecommendationService) deleteAssociatedItem(ctx context.Context, rec *model.Recommendation) string {
	if rec.ItemID == nil {
		return "Recommendation deactivated. (associated item not found)"
	}
	itemID := *rec.ItemID
	err := s.itemRepo.DeleteForRecommendation(ctx, itemID, rec.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "Recommendation deactivated. (associated item not found)"
	case err != nil:
		klog.Errorf("delete item for deactivated recommendation failed: recommendationID=%d, itemID=%d, error=%v", rec.ID, itemID, err)
		return fmt.Sprintf("Recommendation deactivated. (error while deleting item: %v)", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.ProjectEvent{
			Type:             eventbus.ProjectEventRecommendationDeactivated,
			ProjectID:        rec.ProjectID,
			RecommendationID: rec.ID,
			ItemID:           itemID,
		}); err != nil {
			klog.Warningf("publish recommendation deactivated event failed: id=%d, error=%v", rec.ID, err)
		}
	}
	return fmt.Sprintf("Recommendation deactivated and associated item (ID: %d) deleted.", itemID)
}

// reload 读取失败时退回内存中的记录
func (s *RecommendationService) reload(ctx context.Context, rec *model.Recommendation) *model.Recommendation {
	fresh, err := s.recRepo.Get(ctx, rec.ID)
	if err != nil {
		klog.Warningf("reload recommendation failed: id=%d, error=%v", rec.ID, err)
		return rec
	}
	return fresh
}

func (s *RecommendationService) save(ctx context.Context, rec *model.Recommendation) (*model.Recommendation, error) {
	if err := s.validate(ctx, rec); err != nil {
		return nil, err
	}
	rec.Project, rec.Item = nil, nil
	if err := s.recRepo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save recommendation: %w", err)
	}
	return s.recRepo.Get(ctx, rec.ID)
}

func (s *RecommendationService) validate(ctx context.Context, rec *model.Recommendation) error {
	if err := requireProject(ctx, s.projectRepo, rec.ProjectID); err != nil {
		return err
	}
	if rec.ItemID != nil {
		if _, err := s.itemRepo.Get(ctx, *rec.ItemID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: item %d", ErrInvalidReference, *rec.ItemID)
			}
			return err
		}
	}
	if rec.ProjectMaterialID != nil {
		if _, err := s.materialRepo.Get(ctx, *rec.ProjectMaterialID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: project_material %d", ErrInvalidReference, *rec.ProjectMaterialID)
			}
			return err
		}
	}
	return nil
}
