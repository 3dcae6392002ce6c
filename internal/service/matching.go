package service

import (
	"context"
	"fmt"

	"github.com/projecthub/backend/internal/dto"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

// MatchingService 项目级的外部数据匹配与入库
type MatchingService struct {
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	matcher      *Matcher
	ingestor     *Ingestor
}

func NewMatchingService(projectRepo repository.ProjectRepository, materialRepo repository.MaterialRepository, matcher *Matcher, ingestor *Ingestor) *MatchingService {
	return &MatchingService{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		matcher:      matcher,
		ingestor:     ingestor,
	}
}

// FindMatches 只读，不写入任何记录
func (s *MatchingService) FindMatches(ctx context.Context, projectID uint, mode model.MatchMode) (*dto.MatchResponse, error) {
	project, matches, err := s.match(ctx, projectID, mode)
	if err != nil {
		return nil, err
	}
	return dto.NewMatchResponse(project, mode, matches), nil
}

// IngestMatches 匹配后逐条入库，重复和失败记录在 errors 中
func (s *MatchingService) IngestMatches(ctx context.Context, projectID uint, mode model.MatchMode) (*dto.IngestResponse, error) {
	project, matches, err := s.match(ctx, projectID, mode)
	if err != nil {
		return nil, err
	}
	result := s.ingestor.Ingest(ctx, project, matches, mode)
	return dto.NewIngestResponse(project, mode, len(matches), result), nil
}

func (s *MatchingService) match(ctx context.Context, projectID uint, mode model.MatchMode) (*model.Project, []model.Match, error) {
	if mode != model.MatchByKeyword && mode != model.MatchByCode {
		return nil, nil, fmt.Errorf("unsupported match mode: %s", mode)
	}
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	materials, err := s.materialRepo.List(ctx, repository.MaterialFilter{ProjectID: &projectID})
	if err != nil {
		return nil, nil, fmt.Errorf("list project materials: %w", err)
	}
	matches := s.matcher.Match(ctx, mode, project, materials)
	klog.V(6).Infof("project matched: projectID=%d, mode=%s, materials=%d, matches=%d", projectID, mode, len(materials), len(matches))
	return project, matches, nil
}
