package repository

import (
	"context"
	"errors"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *itemRepository) CreateWithRecommendation(ctx context.Context, item *model.Item, rec *model.Recommendation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return err
		}
		if rec == nil {
			return nil
		}
		rec.ItemID = &item.ID
		return tx.Omit(clause.Associations).Create(rec).Error
	})
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	query := r.db.WithContext(ctx).Preload("Project").Preload("ProjectMaterial")
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.MaterialID != nil {
		query = query.Where("project_material_id = ?", *filter.MaterialID)
	}
	if filter.IsFixed != nil {
		query = query.Where("is_fixed = ?", *filter.IsFixed)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	var items []model.Item
	err := query.Order("id asc").Find(&items).Error
	return items, err
}

func (r *itemRepository) Get(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Preload("Project").Preload("ProjectMaterial").First(&item, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *itemRepository) FindByNaturalKey(ctx context.Context, projectID, materialID uint, link string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND project_material_id = ? AND link = ?", projectID, materialID, link).
		Order("id asc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		return checkAffected(tx.Delete(&model.Item{}, id))
	})
}

func (r *itemRepository) DeleteForRecommendation(ctx context.Context, itemID, recommendationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Recommendation{}).
			Where("id = ?", recommendationID).
			Update("item_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		return checkAffected(tx.Delete(&model.Item{}, itemID))
	})
}
