package service

import (
	"context"
	"fmt"

	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
)

type AIRequestService struct {
	aiRequestRepo repository.AIRequestRepository
}

func NewAIRequestService(aiRequestRepo repository.AIRequestRepository) *AIRequestService {
	return &AIRequestService{aiRequestRepo: aiRequestRepo}
}

type AIRequestRequest struct {
	Input       string `json:"input" binding:"required"`
	Output      string `json:"output" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type AIRequestPatch struct {
	Input       *string `json:"input"`
	Output      *string `json:"output"`
	Description *string `json:"description"`
}

func (s *AIRequestService) Create(ctx context.Context, req AIRequestRequest) (*model.AIRequest, error) {
	aiReq := &model.AIRequest{
		Input:       req.Input,
		Output:      req.Output,
		Description: req.Description,
	}
	if err := s.aiRequestRepo.Create(ctx, aiReq); err != nil {
		return nil, fmt.Errorf("create ai request: %w", err)
	}
	return aiReq, nil
}

func (s *AIRequestService) List(ctx context.Context) ([]model.AIRequest, error) {
	return s.aiRequestRepo.List(ctx)
}

func (s *AIRequestService) Get(ctx context.Context, id uint) (*model.AIRequest, error) {
	return s.aiRequestRepo.Get(ctx, id)
}

func (s *AIRequestService) Update(ctx context.Context, id uint, req AIRequestRequest) (*model.AIRequest, error) {
	aiReq, err := s.aiRequestRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	aiReq.Input = req.Input
	aiReq.Output = req.Output
	aiReq.Description = req.Description
	return s.save(ctx, aiReq)
}

func (s *AIRequestService) Patch(ctx context.Context, id uint, patch AIRequestPatch) (*model.AIRequest, error) {
	aiReq, err := s.aiRequestRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Input != nil {
		aiReq.Input = *patch.Input
	}
	if patch.Output != nil {
		aiReq.Output = *patch.Output
	}
	if patch.Description != nil {
		aiReq.Description = *patch.Description
	}
	return s.save(ctx, aiReq)
}

// Delete 引用该请求的摘要会被保留，ai_request 置空
func (s *AIRequestService) Delete(ctx context.Context, id uint) error {
	return s.aiRequestRepo.Delete(ctx, id)
}

func (s *AIRequestService) save(ctx context.Context, aiReq *model.AIRequest) (*model.AIRequest, error) {
	if err := s.aiRequestRepo.Save(ctx, aiReq); err != nil {
		return nil, fmt.Errorf("save ai request: %w", err)
	}
	return aiReq, nil
}
