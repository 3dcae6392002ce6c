package repository

import (
	"context"
	"errors"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// MaterialFilter 资料列表过滤条件，nil 表示不过滤
type MaterialFilter struct {
	ProjectID *uint
}

// ItemFilter 条目列表过滤条件
type ItemFilter struct {
	ProjectID  *uint
	MaterialID *uint
	IsFixed    *bool
	IsActive   *bool
}

// RecommendationFilter 推荐列表过滤条件
type RecommendationFilter struct {
	ProjectID  *uint
	MaterialID *uint
	ItemID     *uint
	IsActive   *bool
}

// SummaryFilter 摘要列表过滤条件
type SummaryFilter struct {
	ProjectID *uint
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id uint) (*model.Project, error)
	// GetDetail 预加载 materials/items/summaries/recommendations
	GetDetail(ctx context.Context, id uint) (*model.Project, error)
	Save(ctx context.Context, project *model.Project) error
	// Delete 级联删除项目拥有的全部记录
	Delete(ctx context.Context, id uint) error
}

type MaterialRepository interface {
	Create(ctx context.Context, material *model.ProjectMaterial) error
	List(ctx context.Context, filter MaterialFilter) ([]model.ProjectMaterial, error)
	Get(ctx context.Context, id uint) (*model.ProjectMaterial, error)
	Save(ctx context.Context, material *model.ProjectMaterial) error
	Delete(ctx context.Context, id uint) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	// CreateWithRecommendation 在同一事务中创建条目及其推荐，rec 为 nil 时只创建条目
	CreateWithRecommendation(ctx context.Context, item *model.Item, rec *model.Recommendation) error
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	Get(ctx context.Context, id uint) (*model.Item, error)
	// FindByNaturalKey 按 (project, material, link) 查找，不存在时返回 nil, nil
	FindByNaturalKey(ctx context.Context, projectID, materialID uint, link string) (*model.Item, error)
	Save(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uint) error
	// DeleteForRecommendation 删除条目，保留并解绑触发删除的推荐
	DeleteForRecommendation(ctx context.Context, itemID, recommendationID uint) error
}

type RecommendationRepository interface {
	Create(ctx context.Context, rec *model.Recommendation) error
	List(ctx context.Context, filter RecommendationFilter) ([]model.Recommendation, error)
	Get(ctx context.Context, id uint) (*model.Recommendation, error)
	// FirstActiveByItem 不存在时返回 nil, nil
	FirstActiveByItem(ctx context.Context, itemID uint) (*model.Recommendation, error)
	Save(ctx context.Context, rec *model.Recommendation) error
	Delete(ctx context.Context, id uint) error
}

type SummaryRepository interface {
	Create(ctx context.Context, summary *model.Summary) error
	// CreateWithAIRequest 同一事务写入 AIRequest 与引用它的 Summary
	CreateWithAIRequest(ctx context.Context, req *model.AIRequest, summary *model.Summary) error
	List(ctx context.Context, filter SummaryFilter) ([]model.Summary, error)
	Get(ctx context.Context, id uint) (*model.Summary, error)
	// Latest 不存在时返回 nil, nil
	Latest(ctx context.Context, projectID uint) (*model.Summary, error)
	Save(ctx context.Context, summary *model.Summary) error
	Delete(ctx context.Context, id uint) error
}

type AIRequestRepository interface {
	Create(ctx context.Context, req *model.AIRequest) error
	List(ctx context.Context) ([]model.AIRequest, error)
	Get(ctx context.Context, id uint) (*model.AIRequest, error)
	Save(ctx context.Context, req *model.AIRequest) error
	// Delete 删除请求记录，引用它的摘要 ai_request 置空
	Delete(ctx context.Context, id uint) error
}

// translateError 把 gorm 的未找到错误转换为 ErrNotFound
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// checkAffected 删除/更新没有命中任何行时返回 ErrNotFound
func checkAffected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
