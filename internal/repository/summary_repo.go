package repository

import (
	"context"
	"errors"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Create(ctx context.Context, summary *model.Summary) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(summary).Error
}

func (r *summaryRepository) CreateWithAIRequest(ctx context.Context, req *model.AIRequest, summary *model.Summary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		summary.AIRequestID = &req.ID
		return tx.Omit(clause.Associations).Create(summary).Error
	})
}

func (r *summaryRepository) List(ctx context.Context, filter SummaryFilter) ([]model.Summary, error) {
	query := r.db.WithContext(ctx).Preload("Project")
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	var summaries []model.Summary
	err := query.Order("id asc").Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepository) Get(ctx context.Context, id uint) (*model.Summary, error) {
	var summary model.Summary
	if err := r.db.WithContext(ctx).Preload("Project").First(&summary, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &summary, nil
}

func (r *summaryRepository) Latest(ctx context.Context, projectID uint) (*model.Summary, error) {
	var summary model.Summary
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("project_id = ?", projectID).
		Order("created_at desc, id desc").
		First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) Save(ctx context.Context, summary *model.Summary) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(summary).Error
}

func (r *summaryRepository) Delete(ctx context.Context, id uint) error {
	return checkAffected(r.db.WithContext(ctx).Delete(&model.Summary{}, id))
}
