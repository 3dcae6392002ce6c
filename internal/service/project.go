package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

type ProjectService struct {
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	itemRepo     repository.ItemRepository
	summaryRepo  repository.SummaryRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, materialRepo repository.MaterialRepository, itemRepo repository.ItemRepository, summaryRepo repository.SummaryRepository) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		itemRepo:     itemRepo,
		summaryRepo:  summaryRepo,
	}
}

type ProjectRequest struct {
	AuthorEmail    string `json:"author_email" binding:"required,email"`
	ProjectName    string `json:"project_name" binding:"required"`
	ProjectCode    string `json:"project_code" binding:"required"`
	ProjectKeyword string `json:"project_keyword"`
}

// ProjectPatch 部分更新，nil 字段保持不变
type ProjectPatch struct {
	AuthorEmail    *string `json:"author_email" binding:"omitempty,email"`
	ProjectName    *string `json:"project_name"`
	ProjectCode    *string `json:"project_code"`
	ProjectKeyword *string `json:"project_keyword"`
}

func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*model.Project, error) {
	project := &model.Project{}
	applyProjectRequest(project, req)
	if err := validateProject(project); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	klog.V(6).Infof("project created: id=%d, name=%s", project.ID, project.ProjectName)
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	return s.projectRepo.Get(ctx, id)
}

// Detail 返回带全部子集合的项目
func (s *ProjectService) Detail(ctx context.Context, id uint) (*model.Project, error) {
	return s.projectRepo.GetDetail(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id uint, req ProjectRequest) (*model.Project, error) {
	project, err := s.projectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProjectRequest(project, req)
	return s.save(ctx, project)
}

func (s *ProjectService) Patch(ctx context.Context, id uint, patch ProjectPatch) (*model.Project, error) {
	project, err := s.projectRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.AuthorEmail != nil {
		project.AuthorEmail = strings.TrimSpace(*patch.AuthorEmail)
	}
	if patch.ProjectName != nil {
		project.ProjectName = strings.TrimSpace(*patch.ProjectName)
	}
	if patch.ProjectCode != nil {
		project.ProjectCode = strings.TrimSpace(*patch.ProjectCode)
	}
	if patch.ProjectKeyword != nil {
		project.ProjectKeyword = *patch.ProjectKeyword
	}
	return s.save(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	klog.V(6).Infof("project deleted with owned records: id=%d", id)
	return nil
}

func (s *ProjectService) Materials(ctx context.Context, id uint) ([]model.ProjectMaterial, error) {
	if _, err := s.projectRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.materialRepo.List(ctx, repository.MaterialFilter{ProjectID: &id})
}

func (s *ProjectService) Items(ctx context.Context, id uint) ([]model.Item, error) {
	if _, err := s.projectRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.itemRepo.List(ctx, repository.ItemFilter{ProjectID: &id})
}

func (s *ProjectService) Summaries(ctx context.Context, id uint) ([]model.Summary, error) {
	if _, err := s.projectRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.summaryRepo.List(ctx, repository.SummaryFilter{ProjectID: &id})
}

// LatestSummary 没有摘要时返回 nil, nil
func (s *ProjectService) LatestSummary(ctx context.Context, id uint) (*model.Summary, error) {
	if _, err := s.projectRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.summaryRepo.Latest(ctx, id)
}

func (s *ProjectService) save(ctx context.Context, project *model.Project) (*model.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	return project, nil
}

func applyProjectRequest(project *model.Project, req ProjectRequest) {
	project.AuthorEmail = strings.TrimSpace(req.AuthorEmail)
	project.ProjectName = strings.TrimSpace(req.ProjectName)
	project.ProjectCode = strings.TrimSpace(req.ProjectCode)
	project.ProjectKeyword = req.ProjectKeyword
}

func validateProject(project *model.Project) error {
	switch {
	case project.AuthorEmail == "":
		return fmt.Errorf("%w: author_email", ErrEmptyField)
	case project.ProjectName == "":
		return fmt.Errorf("%w: project_name", ErrEmptyField)
	case project.ProjectCode == "":
		return fmt.Errorf("%w: project_code", ErrEmptyField)
	}
	return nil
}
