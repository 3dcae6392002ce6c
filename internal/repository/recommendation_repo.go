package repository

import (
	"context"
	"errors"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(ctx context.Context, rec *model.Recommendation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

func (r *recommendationRepository) List(ctx context.Context, filter RecommendationFilter) ([]model.Recommendation, error) {
	query := r.db.WithContext(ctx).Preload("Project").Preload("Item")
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.MaterialID != nil {
		query = query.Where("project_material_id = ?", *filter.MaterialID)
	}
	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	var recs []model.Recommendation
	err := query.Order("id asc").Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) Get(ctx context.Context, id uint) (*model.Recommendation, error) {
	var rec model.Recommendation
	if err := r.db.WithContext(ctx).Preload("Project").Preload("Item").First(&rec, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &rec, nil
}

func (r *recommendationRepository) FirstActiveByItem(ctx context.Context, itemID uint) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_active = ?", itemID, true).
		Order("id asc").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) Save(ctx context.Context, rec *model.Recommendation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

func (r *recommendationRepository) Delete(ctx context.Context, id uint) error {
	return checkAffected(r.db.WithContext(ctx).Delete(&model.Recommendation{}, id))
}
