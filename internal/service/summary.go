package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
)

type SummaryService struct {
	projectRepo   repository.ProjectRepository
	summaryRepo   repository.SummaryRepository
	aiRequestRepo repository.AIRequestRepository
}

func NewSummaryService(projectRepo repository.ProjectRepository, summaryRepo repository.SummaryRepository, aiRequestRepo repository.AIRequestRepository) *SummaryService {
	return &SummaryService{
		projectRepo:   projectRepo,
		summaryRepo:   summaryRepo,
		aiRequestRepo: aiRequestRepo,
	}
}

type SummaryRequest struct {
	Project   uint   `json:"project" binding:"required"`
	AIRequest *uint  `json:"ai_request"`
	Content   string `json:"content" binding:"required"`
}

type SummaryPatch struct {
	Project   *uint   `json:"project"`
	AIRequest *uint   `json:"ai_request"`
	Content   *string `json:"content"`
}

func (s *SummaryService) Create(ctx context.Context, req SummaryRequest) (*model.Summary, error) {
	summary := &model.Summary{
		ProjectID:   req.Project,
		AIRequestID: req.AIRequest,
		Content:     req.Content,
	}
	if err := s.validate(ctx, summary); err != nil {
		return nil, err
	}
	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		return nil, fmt.Errorf("create summary: %w", err)
	}
	return s.summaryRepo.Get(ctx, summary.ID)
}

func (s *SummaryService) List(ctx context.Context, filter repository.SummaryFilter) ([]model.Summary, error) {
	return s.summaryRepo.List(ctx, filter)
}

func (s *SummaryService) Get(ctx context.Context, id uint) (*model.Summary, error) {
	return s.summaryRepo.Get(ctx, id)
}

func (s *SummaryService) Update(ctx context.Context, id uint, req SummaryRequest) (*model.Summary, error) {
	summary, err := s.summaryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary.ProjectID = req.Project
	summary.AIRequestID = req.AIRequest
	summary.Content = req.Content
	return s.save(ctx, summary)
}

func (s *SummaryService) Patch(ctx context.Context, id uint, patch SummaryPatch) (*model.Summary, error) {
	summary, err := s.summaryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Project != nil {
		summary.ProjectID = *patch.Project
	}
	if patch.AIRequest != nil {
		summary.AIRequestID = patch.AIRequest
	}
	if patch.Content != nil {
		summary.Content = *patch.Content
	}
	return s.save(ctx, summary)
}

func (s *SummaryService) Delete(ctx context.Context, id uint) error {
	return s.summaryRepo.Delete(ctx, id)
}

func (s *SummaryService) save(ctx context.Context, summary *model.Summary) (*model.Summary, error) {
	if err := s.validate(ctx, summary); err != nil {
		return nil, err
	}
	summary.Project, summary.AIRequest = nil, nil
	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}
	return s.summaryRepo.Get(ctx, summary.ID)
}

func (s *SummaryService) validate(ctx context.Context, summary *model.Summary) error {
	if summary.Content == "" {
		return fmt.Errorf("%w: content", ErrEmptyField)
	}
	if err := requireProject(ctx, s.projectRepo, summary.ProjectID); err != nil {
		return err
	}
	if summary.AIRequestID != nil {
		if _, err := s.aiRequestRepo.Get(ctx, *summary.AIRequestID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: ai_request %d", ErrInvalidReference, *summary.AIRequestID)
			}
			return err
		}
	}
	return nil
}
