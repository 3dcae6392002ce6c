package service

import (
	"context"
	"testing"
	"time"

	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestKeywordCreatesItemsAndRecommendations(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	material := env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.source.Records = []model.ExternalRecord{
		{MaterialType: "slack", MaterialLink: chatLink, Title: "Alpha Release", Body: "b", Link: "https://slack.example.com/m/1", CreatedAt: "2024-01-02T03:04:05Z", UpdatedAt: "2024-01-03 10:00:00"},
		{MaterialType: "slack", MaterialLink: chatLink, Title: "other", Body: "nothing", Link: "https://slack.example.com/m/2"},
	}
	ctx := context.Background()

	resp, err := env.matching.IngestMatches(ctx, project.ID, model.MatchByKeyword)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalMatches)
	require.Equal(t, 1, resp.CreatedItemsCount)
	require.NotNil(t, resp.CreatedRecommendationsCount)
	assert.Equal(t, 1, *resp.CreatedRecommendationsCount)
	assert.Zero(t, resp.ErrorsCount)
	assert.False(t, resp.CreatedItems[0].IsFixed)
	require.NotNil(t, resp.CreatedItems[0].OriginDataCreatedAt)
	assert.True(t, resp.CreatedItems[0].OriginDataCreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	item, err := env.items.Get(ctx, resp.CreatedItems[0].ItemID)
	require.NoError(t, err)
	assert.True(t, item.IsActive)
	assert.False(t, item.IsFixed)
	assert.Equal(t, material.ID, item.ProjectMaterialID)

	rec, err := env.recs.FirstActiveByItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.ProjectMaterialID)
	assert.Equal(t, material.ID, *rec.ProjectMaterialID)

	require.Len(t, env.events, 1)
	assert.Equal(t, eventbus.ProjectEventItemsIngested, env.events[0].Type)
	assert.Equal(t, []uint{item.ID}, env.events[0].ItemIDs)
}

func TestIngestKeywordRerunReportsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.source.Records = []model.ExternalRecord{
		{MaterialType: "slack", MaterialLink: chatLink, Title: "alpha 1", Link: "https://slack.example.com/m/1"},
		{MaterialType: "slack", MaterialLink: chatLink, Title: "alpha 2", Link: "https://slack.example.com/m/2"},
	}
	ctx := context.Background()

	first, err := env.matching.IngestMatches(ctx, project.ID, model.MatchByKeyword)
	require.NoError(t, err)
	require.Equal(t, 2, first.CreatedItemsCount)

	second, err := env.matching.IngestMatches(ctx, project.ID, model.MatchByKeyword)
	require.NoError(t, err)
	assert.Zero(t, second.CreatedItemsCount)
	assert.Equal(t, 0, *second.CreatedRecommendationsCount)
	require.Equal(t, 2, second.ErrorsCount)
	for i, e := range second.Errors {
		assert.Equal(t, "Item already exists", e.Error)
		assert.Equal(t, first.CreatedItems[i].ItemID, e.ItemID)
		assert.Equal(t, first.CreatedItems[i].Link, e.Link)
	}
	assert.EqualValues(t, 2, env.count(t, &model.Item{}))
	assert.EqualValues(t, 2, env.count(t, &model.Recommendation{}))
	assert.Len(t, env.events, 1)
}

func TestIngestCodeCreatesFixedItemsWithoutRecommendations(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "", "HUB-7")
	env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.source.Records = []model.ExternalRecord{
		{MaterialType: "slack", MaterialLink: chatLink, Title: "fix", Body: "closes hub-7", Link: "https://slack.example.com/m/1", CreatedAt: "2024-01-02"},
	}

	resp, err := env.matching.IngestMatches(context.Background(), project.ID, model.MatchByCode)
	require.NoError(t, err)

	require.Equal(t, 1, resp.CreatedItemsCount)
	assert.True(t, resp.CreatedItems[0].IsFixed)
	assert.Nil(t, resp.CreatedRecommendationsCount)
	assert.Nil(t, resp.CreatedRecommendations)
	require.NotNil(t, resp.ProjectCode)
	assert.Equal(t, "HUB-7", *resp.ProjectCode)
	assert.Zero(t, env.count(t, &model.Recommendation{}))
}

func TestIngestRecordsPerMatchFailures(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	env.source.Records = []model.ExternalRecord{
		{MaterialType: "slack", MaterialLink: chatLink, Title: "alpha no link"},
		{MaterialType: "slack", MaterialLink: chatLink, Title: "alpha bad time", Link: "l2", CreatedAt: "yesterday"},
		{MaterialType: "slack", MaterialLink: chatLink, Title: "alpha ok", Link: "l3"},
	}

	resp, err := env.matching.IngestMatches(context.Background(), project.ID, model.MatchByKeyword)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalMatches)
	assert.Equal(t, 1, resp.CreatedItemsCount)
	require.Equal(t, 2, resp.ErrorsCount)
	require.NotNil(t, resp.Errors[0].ExternalData)
	assert.Equal(t, "alpha no link", resp.Errors[0].ExternalData.Title)
	assert.Contains(t, resp.Errors[1].Error, "yesterday")
	require.NotNil(t, resp.Errors[1].ExternalData)
	assert.Equal(t, "l2", resp.Errors[1].ExternalData.Link)
}

type failingItemRepo struct {
	repository.ItemRepository
	err error
}

func (r *failingItemRepo) CreateWithRecommendation(ctx context.Context, item *model.Item, rec *model.Recommendation) error {
	return r.err
}

func TestIngestStorageFailureBecomesErrorEntry(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t, "alpha", "HUB")
	material := env.createMaterial(t, project.ID, model.MaterialTypeChat, chatLink)
	ingestor := NewIngestor(&failingItemRepo{ItemRepository: env.items, err: assert.AnError}, env.bus)
	matches := []model.Match{{
		ProjectID:         project.ID,
		ProjectMaterialID: material.ID,
		ExternalData:      model.ExternalRecord{Title: "alpha", Link: "l1"},
	}}

	result := ingestor.Ingest(context.Background(), project, matches, model.MatchByKeyword)

	assert.Empty(t, result.CreatedItems)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, assert.AnError.Error(), result.Errors[0].Error)
	assert.Empty(t, env.events)
}

func TestParseOriginTime(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "2024-05-06T07:08:09Z", want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{in: "2024-05-06T07:08:09+09:00", want: time.Date(2024, 5, 5, 22, 8, 9, 0, time.UTC)},
		{in: "2024-05-06T07:08:09", want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{in: "2024-05-06 07:08:09", want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{in: "2024-05-06", want: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{in: "06/05/2024", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseOriginTime(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		if tc.wantNil {
			assert.Nil(t, got)
			continue
		}
		require.NotNil(t, got)
		assert.True(t, got.Equal(tc.want), tc.in)
	}
}
