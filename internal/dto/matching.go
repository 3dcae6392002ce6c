package dto

import (
	"time"

	"github.com/projecthub/backend/internal/model"
)

// MatchResponse 外部数据匹配结果，关键字模式填充 ProjectKeyword，代码模式填充 ProjectCode
type MatchResponse struct {
	ProjectID      uint          `json:"project_id"`
	ProjectName    string        `json:"project_name"`
	ProjectKeyword *string       `json:"project_keyword,omitempty"`
	ProjectCode    *string       `json:"project_code,omitempty"`
	MatchesCount   int           `json:"matches_count"`
	Matches        []model.Match `json:"matches"`
}

type CreatedItem struct {
	ItemID              uint       `json:"item_id"`
	Title               string     `json:"title"`
	Link                string     `json:"link"`
	IsFixed             bool       `json:"is_fixed"`
	OriginDataCreatedAt *time.Time `json:"origin_data_created_at"`
	OriginDataUpdatedAt *time.Time `json:"origin_data_updated_at"`
}

type CreatedRecommendation struct {
	RecommendationID uint `json:"recommendation_id"`
	ItemID           uint `json:"item_id"`
	IsActive         bool `json:"is_active"`
}

// IngestError 单条匹配入库失败的原因
// 重复条目填充 Link/ItemID，其它失败填充 ExternalData
type IngestError struct {
	Error        string                `json:"error"`
	Link         string                `json:"link,omitempty"`
	ItemID       uint                  `json:"item_id,omitempty"`
	ExternalData *model.ExternalRecord `json:"external_data,omitempty"`
}

// IngestResult 一次入库的结果
type IngestResult struct {
	CreatedItems           []CreatedItem
	CreatedRecommendations []CreatedRecommendation
	Errors                 []IngestError
}

// IngestResponse 入库接口响应，代码模式不包含推荐字段
type IngestResponse struct {
	ProjectID                   uint                     `json:"project_id"`
	ProjectName                 string                   `json:"project_name"`
	ProjectKeyword              *string                  `json:"project_keyword,omitempty"`
	ProjectCode                 *string                  `json:"project_code,omitempty"`
	TotalMatches                int                      `json:"total_matches"`
	CreatedItemsCount           int                      `json:"created_items_count"`
	CreatedItems                []CreatedItem            `json:"created_items"`
	CreatedRecommendationsCount *int                     `json:"created_recommendations_count,omitempty"`
	CreatedRecommendations      *[]CreatedRecommendation `json:"created_recommendations,omitempty"`
	ErrorsCount                 int                      `json:"errors_count"`
	Errors                      []IngestError            `json:"errors"`
}

// NewMatchResponse 按匹配模式组装响应
func NewMatchResponse(project *model.Project, mode model.MatchMode, matches []model.Match) *MatchResponse {
	if matches == nil {
		matches = []model.Match{}
	}
	resp := &MatchResponse{
		ProjectID:    project.ID,
		ProjectName:  project.ProjectName,
		MatchesCount: len(matches),
		Matches:      matches,
	}
	if mode == model.MatchByCode {
		resp.ProjectCode = &project.ProjectCode
	} else {
		resp.ProjectKeyword = &project.ProjectKeyword
	}
	return resp
}

// NewIngestResponse 按匹配模式组装入库响应
func NewIngestResponse(project *model.Project, mode model.MatchMode, totalMatches int, result *IngestResult) *IngestResponse {
	resp := &IngestResponse{
		ProjectID:         project.ID,
		ProjectName:       project.ProjectName,
		TotalMatches:      totalMatches,
		CreatedItemsCount: len(result.CreatedItems),
		CreatedItems:      result.CreatedItems,
		ErrorsCount:       len(result.Errors),
		Errors:            result.Errors,
	}
	if resp.CreatedItems == nil {
		resp.CreatedItems = []CreatedItem{}
	}
	if resp.Errors == nil {
		resp.Errors = []IngestError{}
	}
	if mode == model.MatchByCode {
		resp.ProjectCode = &project.ProjectCode
		return resp
	}
	resp.ProjectKeyword = &project.ProjectKeyword
	recs := result.CreatedRecommendations
	if recs == nil {
		recs = []CreatedRecommendation{}
	}
	recCount := len(recs)
	resp.CreatedRecommendationsCount = &recCount
	resp.CreatedRecommendations = &recs
	return resp
}
