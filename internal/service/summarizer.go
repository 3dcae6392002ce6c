package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/pkg/llm"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

const summaryPromptPrefix = "Summarize the following materials about a single project so they are easy to read.\n\nMaterials: "

// Summarizer 将项目中已激活且已固定的条目交给模型生成摘要
type Summarizer struct {
	projectRepo repository.ProjectRepository
	itemRepo    repository.ItemRepository
	summaryRepo repository.SummaryRepository
	generator   llm.TextGenerator
	bus         *eventbus.ProjectEventBus
}

func NewSummarizer(projectRepo repository.ProjectRepository, itemRepo repository.ItemRepository, summaryRepo repository.SummaryRepository, generator llm.TextGenerator, bus *eventbus.ProjectEventBus) *Summarizer {
	return &Summarizer{
		projectRepo: projectRepo,
		itemRepo:    itemRepo,
		summaryRepo: summaryRepo,
		generator:   generator,
		bus:         bus,
	}
}

// Summarize 生成失败时不写入任何记录
func (s *Summarizer) Summarize(ctx context.Context, projectID uint) (*model.Summary, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	active, fixed := true, true
	items, err := s.itemRepo.List(ctx, repository.ItemFilter{
		ProjectID: &projectID,
		IsActive:  &active,
		IsFixed:   &fixed,
	})
	if err != nil {
		return nil, fmt.Errorf("list items for summary: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoQualifyingItems
	}

	input := BuildSummaryInput(items)
	prompt := summaryPromptPrefix + input
	klog.V(6).Infof("summarize project: projectID=%d, items=%d, promptLength=%d", projectID, len(items), len(prompt))

	if s.generator == nil {
		return nil, fmt.Errorf("%w: no text generator configured", ErrUpstreamGeneration)
	}
	output, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		klog.Errorf("summary generation failed: projectID=%d, error=%v", projectID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamGeneration, err)
	}

	req := &model.AIRequest{
		Input:       input,
		Output:      output,
		Description: fmt.Sprintf("Item summary request for project '%s'", project.ProjectName),
	}
	summary := &model.Summary{
		ProjectID: project.ID,
		Content:   output,
	}
	if err := s.summaryRepo.CreateWithAIRequest(ctx, req, summary); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}
	summary.Project = project

	if s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.ProjectEvent{
			Type:      eventbus.ProjectEventSummaryCreated,
			ProjectID: project.ID,
			SummaryID: summary.ID,
		}); err != nil {
			klog.Warningf("publish summary created event failed: projectID=%d, error=%v", project.ID, err)
		}
	}
	return summary, nil
}

// BuildSummaryInput 每个条目一段，有标题时带上标题
func BuildSummaryInput(items []model.Item) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		if item.Title != "" {
			blocks = append(blocks, fmt.Sprintf("Title: %s\nContent: %s", item.Title, item.Body))
		} else {
			blocks = append(blocks, item.Body)
		}
	}
	return strings.Join(blocks, "\n\n")
}
