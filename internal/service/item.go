package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

type ItemService struct {
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	itemRepo     repository.ItemRepository
	recRepo      repository.RecommendationRepository
}

func NewItemService(projectRepo repository.ProjectRepository, materialRepo repository.MaterialRepository, itemRepo repository.ItemRepository, recRepo repository.RecommendationRepository) *ItemService {
	return &ItemService{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		itemRepo:     itemRepo,
		recRepo:      recRepo,
	}
}

// ItemRequest IsActive 为空时默认激活
type ItemRequest struct {
	Project             uint       `json:"project" binding:"required"`
	ProjectMaterial     uint       `json:"project_material" binding:"required"`
	ChannelName         string     `json:"channel_name"`
	Title               string     `json:"title"`
	Body                string     `json:"body"`
	Link                string     `json:"link" binding:"required,url"`
	IsFixed             bool       `json:"is_fixed"`
	IsActive            *bool      `json:"is_active"`
	OriginDataCreatedAt *time.Time `json:"origin_data_created_at"`
	OriginDataUpdatedAt *time.Time `json:"origin_data_updated_at"`
}

type ItemPatch struct {
	Project             *uint      `json:"project"`
	ProjectMaterial     *uint      `json:"project_material"`
	ChannelName         *string    `json:"channel_name"`
	Title               *string    `json:"title"`
	Body                *string    `json:"body"`
	Link                *string    `json:"link" binding:"omitempty,url"`
	IsFixed             *bool      `json:"is_fixed"`
	IsActive            *bool      `json:"is_active"`
	OriginDataCreatedAt *time.Time `json:"origin_data_created_at"`
	OriginDataUpdatedAt *time.Time `json:"origin_data_updated_at"`
}

func (s *ItemService) Create(ctx context.Context, req ItemRequest) (*model.Item, error) {
	item := &model.Item{IsActive: true}
	applyItemRequest(item, req)
	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	klog.V(6).Infof("item created: id=%d, projectID=%d, materialID=%d", item.ID, item.ProjectID, item.ProjectMaterialID)
	return s.itemRepo.Get(ctx, item.ID)
}

func (s *ItemService) List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	return s.itemRepo.List(ctx, filter)
}

func (s *ItemService) Get(ctx context.Context, id uint) (*model.Item, error) {
	return s.itemRepo.Get(ctx, id)
}

func (s *ItemService) Update(ctx context.Context, id uint, req ItemRequest) (*model.Item, error) {
	item, err := s.itemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyItemRequest(item, req)
	return s.save(ctx, item)
}

func (s *ItemService) Patch(ctx context.Context, id uint, patch ItemPatch) (*model.Item, error) {
	item, err := s.itemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Project != nil {
		item.ProjectID = *patch.Project
	}
	if patch.ProjectMaterial != nil {
		item.ProjectMaterialID = *patch.ProjectMaterial
	}
	if patch.ChannelName != nil {
		item.ChannelName = *patch.ChannelName
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Body != nil {
		item.Body = *patch.Body
	}
	if patch.Link != nil {
		item.Link = strings.TrimSpace(*patch.Link)
	}
	if patch.IsFixed != nil {
		item.IsFixed = *patch.IsFixed
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
	if patch.OriginDataCreatedAt != nil {
		item.OriginDataCreatedAt = patch.OriginDataCreatedAt
	}
	if patch.OriginDataUpdatedAt != nil {
		item.OriginDataUpdatedAt = patch.OriginDataUpdatedAt
	}
	return s.save(ctx, item)
}

// Delete 同时删除条目上的推荐
func (s *ItemService) Delete(ctx context.Context, id uint) error {
	return s.itemRepo.Delete(ctx, id)
}

func (s *ItemService) ToggleFixed(ctx context.Context, id uint) (*model.Item, error) {
	item, err := s.itemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.IsFixed = !item.IsFixed
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("toggle item fixed: %w", err)
	}
	klog.V(6).Infof("item fixed toggled: id=%d, isFixed=%v", item.ID, item.IsFixed)
	return item, nil
}

// ToggleActive 返回切换后的条目和提示信息
func (s *ItemService) ToggleActive(ctx context.Context, id uint) (*model.Item, string, error) {
	item, err := s.itemRepo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	item.IsActive = !item.IsActive
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, "", fmt.Errorf("toggle item active: %w", err)
	}
	state := "deactivated"
	if item.IsActive {
		state = "activated"
	}
	klog.V(6).Infof("item active toggled: id=%d, isActive=%v", item.ID, item.IsActive)
	return item, fmt.Sprintf("Item '%s' has been %s.", item.Title, state), nil
}

// MatchingRecommendation 返回条目的首个激活推荐，没有时推荐为 nil
func (s *ItemService) MatchingRecommendation(ctx context.Context, id uint) (*model.Item, *model.Recommendation, error) {
	item, err := s.itemRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rec, err := s.recRepo.FirstActiveByItem(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find active recommendation: %w", err)
	}
	return item, rec, nil
}

func (s *ItemService) save(ctx context.Context, item *model.Item) (*model.Item, error) {
	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}
	item.Project, item.ProjectMaterial = nil, nil
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return s.itemRepo.Get(ctx, item.ID)
}

func (s *ItemService) validate(ctx context.Context, item *model.Item) error {
	if item.Link == "" {
		return fmt.Errorf("%w: link", ErrEmptyField)
	}
	if err := requireProject(ctx, s.projectRepo, item.ProjectID); err != nil {
		return err
	}
	material, err := s.materialRepo.Get(ctx, item.ProjectMaterialID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: project_material %d", ErrInvalidReference, item.ProjectMaterialID)
		}
		return err
	}
	if material.ProjectID != item.ProjectID {
		return fmt.Errorf("%w: project_material %d does not belong to project %d", ErrInvalidReference, material.ID, item.ProjectID)
	}
	return nil
}

func applyItemRequest(item *model.Item, req ItemRequest) {
	item.ProjectID = req.Project
	item.ProjectMaterialID = req.ProjectMaterial
	item.ChannelName = req.ChannelName
	item.Title = req.Title
	item.Body = req.Body
	item.Link = strings.TrimSpace(req.Link)
	item.IsFixed = req.IsFixed
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.OriginDataCreatedAt = req.OriginDataCreatedAt
	item.OriginDataUpdatedAt = req.OriginDataUpdatedAt
}
