package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishBroadcast(t *testing.T) {
	bus := NewProjectEventBus()
	calledA := false
	calledB := false

	bus.Subscribe(ProjectEventItemsIngested, func(ctx context.Context, event ProjectEvent) error {
		calledA = true
		return nil
	})
	bus.Subscribe(ProjectEventItemsIngested, func(ctx context.Context, event ProjectEvent) error {
		calledB = true
		return nil
	})

	if err := bus.Publish(context.Background(), ProjectEvent{Type: ProjectEventItemsIngested}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !calledA || !calledB {
		t.Fatalf("expected handlers to be called")
	}
}

func TestBusPublishOnlyMatchingType(t *testing.T) {
	bus := NewProjectEventBus()
	called := false
	bus.Subscribe(ProjectEventSummaryCreated, func(ctx context.Context, event ProjectEvent) error {
		called = true
		return nil
	})

	if err := bus.Publish(context.Background(), ProjectEvent{Type: ProjectEventItemsIngested}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler for other type not to be called")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewProjectEventBus()
	called := false
	unsubscribe := bus.Subscribe(ProjectEventSummaryCreated, func(ctx context.Context, event ProjectEvent) error {
		called = true
		return nil
	})
	unsubscribe()

	if err := bus.Publish(context.Background(), ProjectEvent{Type: ProjectEventSummaryCreated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler to be unsubscribed")
	}
}

func TestBusPublishJoinErrors(t *testing.T) {
	bus := NewProjectEventBus()
	bus.Subscribe(ProjectEventRecommendationDeactivated, func(ctx context.Context, event ProjectEvent) error {
		return errors.New("err-a")
	})
	bus.Subscribe(ProjectEventRecommendationDeactivated, func(ctx context.Context, event ProjectEvent) error {
		return errors.New("err-b")
	})

	if err := bus.Publish(context.Background(), ProjectEvent{Type: ProjectEventRecommendationDeactivated}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBusSubscribeNilHandler(t *testing.T) {
	bus := NewProjectEventBus()
	unsubscribe := bus.Subscribe(ProjectEventItemsIngested, nil)
	unsubscribe()

	if err := bus.Publish(context.Background(), ProjectEvent{Type: ProjectEventItemsIngested}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
