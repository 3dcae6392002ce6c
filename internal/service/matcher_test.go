package service

import (
	"context"
	"errors"
	"testing"

	"github.com/projecthub/backend/internal/external"
	"github.com/projecthub/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatLink = "https://slack.example.com/channels/dev"

func chatMaterial() model.ProjectMaterial {
	return model.ProjectMaterial{ID: 10, ProjectID: 1, MaterialType: model.MaterialTypeChat, MaterialLink: chatLink}
}

func chatRecord(title, body, link string) model.ExternalRecord {
	return model.ExternalRecord{
		MaterialType: "slack",
		MaterialLink: chatLink,
		Title:        title,
		Body:         body,
		Link:         link,
	}
}

func TestMatchByKeywordCaseInsensitive(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("Alpha Release", "notes", "https://slack.example.com/m/1"),
	}}
	project := &model.Project{ID: 1, ProjectName: "Hub", ProjectKeyword: "alpha"}

	matches := NewMatcher(source).MatchByKeyword(context.Background(), project, []model.ProjectMaterial{chatMaterial()})

	require.Len(t, matches, 1)
	assert.Equal(t, "alpha", matches[0].MatchedKeyword)
	assert.Equal(t, uint(10), matches[0].ProjectMaterialID)
	assert.Equal(t, model.MaterialTypeChat, matches[0].MaterialType)
	assert.Equal(t, "alpha", matches[0].ProjectKeyword)
	assert.Equal(t, "Alpha Release", matches[0].ExternalData.Title)
}

func TestMatchByKeywordFirstKeywordWins(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("beta and alpha", "", "https://slack.example.com/m/1"),
	}}
	project := &model.Project{ID: 1, ProjectKeyword: " alpha , beta ,,"}

	matches := NewMatcher(source).MatchByKeyword(context.Background(), project, []model.ProjectMaterial{chatMaterial()})

	require.Len(t, matches, 1)
	assert.Equal(t, "alpha", matches[0].MatchedKeyword)
}

func TestMatchByKeywordMatchesBody(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("weekly sync", "we discussed the GAMMA launch", "https://slack.example.com/m/1"),
	}}
	project := &model.Project{ID: 1, ProjectKeyword: "alpha,gamma"}

	matches := NewMatcher(source).MatchByKeyword(context.Background(), project, []model.ProjectMaterial{chatMaterial()})

	require.Len(t, matches, 1)
	assert.Equal(t, "gamma", matches[0].MatchedKeyword)
}

func TestMatchByKeywordRequiresExactTypeAndLink(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		{MaterialType: "jira", MaterialLink: chatLink, Title: "alpha", Link: "l1"},
		{MaterialType: "slack", MaterialLink: chatLink + "/", Title: "alpha", Link: "l2"},
		{MaterialType: "Slack", MaterialLink: chatLink, Title: "alpha", Link: "l3"},
	}}
	project := &model.Project{ID: 1, ProjectKeyword: "alpha"}

	matches := NewMatcher(source).MatchByKeyword(context.Background(), project, []model.ProjectMaterial{chatMaterial()})

	assert.Empty(t, matches)
}

func TestMatchByKeywordNoMaterials(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("alpha", "", "l1"),
	}}
	project := &model.Project{ID: 1, ProjectKeyword: "alpha"}

	assert.Empty(t, NewMatcher(source).MatchByKeyword(context.Background(), project, nil))
}

func TestMatchByKeywordEmptyKeywords(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("alpha", "", "l1"),
	}}
	project := &model.Project{ID: 1, ProjectKeyword: " , ,"}

	assert.Empty(t, NewMatcher(source).MatchByKeyword(context.Background(), project, []model.ProjectMaterial{chatMaterial()}))
}

func TestMatchSourceErrorYieldsEmpty(t *testing.T) {
	source := &external.StaticSource{Err: errors.New("malformed")}
	project := &model.Project{ID: 1, ProjectKeyword: "alpha", ProjectCode: "HUB"}
	materials := []model.ProjectMaterial{chatMaterial()}

	assert.Empty(t, NewMatcher(source).MatchByKeyword(context.Background(), project, materials))
	assert.Empty(t, NewMatcher(source).MatchByCode(context.Background(), project, materials))
}

func TestMatchByCodeTitlePrecedence(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("[hub-12] fix", "hub-12 details", "l1"),
		chatRecord("unrelated", "see HUB-12", "l2"),
		chatRecord("nothing", "here", "l3"),
	}}
	project := &model.Project{ID: 1, ProjectName: "Hub", ProjectCode: "HUB-12"}

	matches := NewMatcher(source).MatchByCode(context.Background(), project, []model.ProjectMaterial{chatMaterial()})

	require.Len(t, matches, 2)
	assert.Equal(t, model.MatchedInTitle, matches[0].MatchedIn)
	assert.Equal(t, model.MatchedInBody, matches[1].MatchedIn)
	assert.Equal(t, "HUB-12", matches[0].ProjectCode)
	assert.Empty(t, matches[0].MatchedKeyword)
}

func TestMatchByCodeEmptyCodeNeverMatches(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("anything", "at all", "l1"),
	}}
	project := &model.Project{ID: 1, ProjectCode: ""}

	assert.Empty(t, NewMatcher(source).MatchByCode(context.Background(), project, []model.ProjectMaterial{chatMaterial()}))
}

func TestMatchDispatchesByMode(t *testing.T) {
	source := &external.StaticSource{Records: []model.ExternalRecord{
		chatRecord("HUB alpha", "", "l1"),
	}}
	project := &model.Project{ID: 1, ProjectCode: "hub", ProjectKeyword: "alpha"}
	matcher := NewMatcher(source)
	materials := []model.ProjectMaterial{chatMaterial()}

	byCode := matcher.Match(context.Background(), model.MatchByCode, project, materials)
	require.Len(t, byCode, 1)
	assert.Equal(t, model.MatchedInTitle, byCode[0].MatchedIn)

	byKeyword := matcher.Match(context.Background(), model.MatchByKeyword, project, materials)
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "alpha", byKeyword[0].MatchedKeyword)
}
