package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

type MaterialService struct {
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	itemRepo     repository.ItemRepository
	recRepo      repository.RecommendationRepository
}

func NewMaterialService(projectRepo repository.ProjectRepository, materialRepo repository.MaterialRepository, itemRepo repository.ItemRepository, recRepo repository.RecommendationRepository) *MaterialService {
	return &MaterialService{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		itemRepo:     itemRepo,
		recRepo:      recRepo,
	}
}

type MaterialRequest struct {
	Project      uint   `json:"project" binding:"required"`
	MaterialType string `json:"material_type" binding:"required"`
	MaterialLink string `json:"material_link" binding:"required,url"`
}

type MaterialPatch struct {
	Project      *uint   `json:"project"`
	MaterialType *string `json:"material_type"`
	MaterialLink *string `json:"material_link" binding:"omitempty,url"`
}

// MaterialDetail 资料及其条目、推荐
type MaterialDetail struct {
	Material        *model.ProjectMaterial
	Items           []model.Item
	Recommendations []model.Recommendation
}

func (s *MaterialService) Create(ctx context.Context, req MaterialRequest) (*model.ProjectMaterial, error) {
	material := &model.ProjectMaterial{
		ProjectID:    req.Project,
		MaterialType: model.MaterialType(strings.TrimSpace(req.MaterialType)),
		MaterialLink: strings.TrimSpace(req.MaterialLink),
	}
	if err := s.validate(ctx, material); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	klog.V(6).Infof("material created: id=%d, projectID=%d, type=%s", material.ID, material.ProjectID, material.MaterialType)
	return s.materialRepo.Get(ctx, material.ID)
}

func (s *MaterialService) List(ctx context.Context, filter repository.MaterialFilter) ([]model.ProjectMaterial, error) {
	return s.materialRepo.List(ctx, filter)
}

func (s *MaterialService) Get(ctx context.Context, id uint) (*model.ProjectMaterial, error) {
	return s.materialRepo.Get(ctx, id)
}

func (s *MaterialService) Detail(ctx context.Context, id uint) (*MaterialDetail, error) {
	material, err := s.materialRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.List(ctx, repository.ItemFilter{MaterialID: &id})
	if err != nil {
		return nil, fmt.Errorf("list material items: %w", err)
	}
	recs, err := s.recRepo.List(ctx, repository.RecommendationFilter{MaterialID: &id})
	if err != nil {
		return nil, fmt.Errorf("list material recommendations: %w", err)
	}
	return &MaterialDetail{Material: material, Items: items, Recommendations: recs}, nil
}

func (s *MaterialService) Items(ctx context.Context, id uint) ([]model.Item, error) {
	if _, err := s.materialRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.itemRepo.List(ctx, repository.ItemFilter{MaterialID: &id})
}

func (s *MaterialService) Update(ctx context.Context, id uint, req MaterialRequest) (*model.ProjectMaterial, error) {
	material, err := s.materialRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	material.ProjectID = req.Project
	material.MaterialType = model.MaterialType(strings.TrimSpace(req.MaterialType))
	material.MaterialLink = strings.TrimSpace(req.MaterialLink)
	return s.save(ctx, material)
}

func (s *MaterialService) Patch(ctx context.Context, id uint, patch MaterialPatch) (*model.ProjectMaterial, error) {
	material, err := s.materialRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Project != nil {
		material.ProjectID = *patch.Project
	}
	if patch.MaterialType != nil {
		material.MaterialType = model.MaterialType(strings.TrimSpace(*patch.MaterialType))
	}
	if patch.MaterialLink != nil {
		material.MaterialLink = strings.TrimSpace(*patch.MaterialLink)
	}
	return s.save(ctx, material)
}

func (s *MaterialService) Delete(ctx context.Context, id uint) error {
	return s.materialRepo.Delete(ctx, id)
}

func (s *MaterialService) save(ctx context.Context, material *model.ProjectMaterial) (*model.ProjectMaterial, error) {
	if err := s.validate(ctx, material); err != nil {
		return nil, err
	}
	material.Project = nil
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, fmt.Errorf("save material: %w", err)
	}
	return s.materialRepo.Get(ctx, material.ID)
}

func (s *MaterialService) validate(ctx context.Context, material *model.ProjectMaterial) error {
	if !material.MaterialType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMaterialType, material.MaterialType)
	}
	if material.MaterialLink == "" {
		return fmt.Errorf("%w: material_link", ErrEmptyField)
	}
	return requireProject(ctx, s.projectRepo, material.ProjectID)
}

// requireProject 引用的项目不存在时返回 ErrInvalidReference
func requireProject(ctx context.Context, repo repository.ProjectRepository, id uint) error {
	if _, err := repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: project %d", ErrInvalidReference, id)
		}
		return err
	}
	return nil
}
