package subscriber

import (
	"context"
	"fmt"

	"github.com/projecthub/backend/internal/eventbus"
	"k8s.io/klog/v2"
)

// ProjectEventSubscriber 记录项目事件的审计日志
type ProjectEventSubscriber struct{}

func NewProjectEventSubscriber() *ProjectEventSubscriber {
	return &ProjectEventSubscriber{}
}

func (s *ProjectEventSubscriber) Register(bus *eventbus.ProjectEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.ProjectEventItemsIngested, s.handleItemsIngested)
	bus.Subscribe(eventbus.ProjectEventSummaryCreated, s.handleSummaryCreated)
	bus.Subscribe(eventbus.ProjectEventRecommendationDeactivated, s.handleRecommendationDeactivated)
}

func (s *ProjectEventSubscriber) handleItemsIngested(ctx context.Context, event eventbus.ProjectEvent) error {
	if event.ProjectID == 0 {
		return fmt.Errorf("项目ID为空")
	}
	klog.Infof("items ingested: projectID=%d, count=%d", event.ProjectID, len(event.ItemIDs))
	klog.V(6).Infof("items ingested detail: projectID=%d, itemIDs=%v", event.ProjectID, event.ItemIDs)
	return nil
}

func (s *ProjectEventSubscriber) handleSummaryCreated(ctx context.Context, event eventbus.ProjectEvent) error {
	if event.ProjectID == 0 {
		return fmt.Errorf("项目ID为空")
	}
	klog.Infof("summary created: projectID=%d, summaryID=%d", event.ProjectID, event.SummaryID)
	return nil
}

func (s *ProjectEventSubscriber) handleRecommendationDeactivated(ctx context.Context, event eventbus.ProjectEvent) error {
	if event.RecommendationID == 0 {
		return fmt.Errorf("推荐ID为空")
	}
	klog.Infof("recommendation deactivated: recommendationID=%d, removedItemID=%d", event.RecommendationID, event.ItemID)
	return nil
}
