package service

import (
	"context"
	"errors"
	"testing"

	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeNoQualifyingItems(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	material := env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.createItem(t, project.ID, material.ID, "active only", "b", "l1", false, true)
	env.createItem(t, project.ID, material.ID, "fixed only", "b", "l2", true, false)
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		t.Fatalf("unexpected generate called")
		return "", nil
	}}

	_, err := env.summarizer(gen).Summarize(context.Background(), project.ID)

	assert.ErrorIs(t, err, ErrNoQualifyingItems)
	assert.Zero(t, env.count(t, &model.AIRequest{}))
	assert.Zero(t, env.count(t, &model.Summary{}))
}

func TestSummarizeUnknownProject(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.summarizer(&mockGenerator{}).Summarize(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSummarizePersistsRequestAndSummary(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	material := env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.createItem(t, project.ID, material.ID, "First", "one", "l1", true, true)
	env.createItem(t, project.ID, material.ID, "", "untitled body", "l2", true, true)
	env.createItem(t, project.ID, material.ID, "Skipped", "inactive", "l3", true, false)

	var gotPrompt string
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "the digest", nil
	}}

	summary, err := env.summarizer(gen).Summarize(context.Background(), project.ID)
	require.NoError(t, err)

	wantInput := "Title: First\nContent: one\n\nuntitled body"
	wantPrompt := "Summarize the following materials about a single project so they are easy to read.\n\n" +
		"Materials: " + wantInput
	assert.Equal(t, wantPrompt, gotPrompt)
	assert.Equal(t, "the digest", summary.Content)
	require.NotNil(t, summary.AIRequestID)

	req, err := env.aiRequests.Get(context.Background(), *summary.AIRequestID)
	require.NoError(t, err)
	assert.Equal(t, wantInput, req.Input)
	assert.Equal(t, "the digest", req.Output)
	assert.Equal(t, "Item summary request for project 'Hub'", req.Description)

	require.Len(t, env.events, 1)
	assert.Equal(t, eventbus.ProjectEventSummaryCreated, env.events[0].Type)
	assert.Equal(t, summary.ID, env.events[0].SummaryID)
}

func TestSummarizeGenerationFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	material := env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.createItem(t, project.ID, material.ID, "First", "one", "l1", true, true)
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}}

	_, err := env.summarizer(gen).Summarize(context.Background(), project.ID)

	require.ErrorIs(t, err, ErrUpstreamGeneration)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Zero(t, env.count(t, &model.AIRequest{}))
	assert.Zero(t, env.count(t, &model.Summary{}))
	assert.Empty(t, env.events)
}

func TestSummarizePropagatesContext(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	material := env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.createItem(t, project.ID, material.ID, "First", "one", "l1", true, true)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request")
	gen := &mockGenerator{GenerateFunc: func(got context.Context, prompt string) (string, error) {
		assert.Equal(t, "request", got.Value(ctxKey{}))
		return "ok", nil
	}}

	_, err := env.summarizer(gen).Summarize(ctx, project.ID)
	require.NoError(t, err)
}

func TestBuildSummaryInputSingleItem(t *testing.T) {
	input := BuildSummaryInput([]model.Item{{Title: "T", Body: "B"}})
	assert.Equal(t, "Title: T\nContent: B", input)
}
