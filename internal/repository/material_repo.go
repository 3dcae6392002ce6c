package repository

import (
	"context"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *model.ProjectMaterial) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(material).Error
}

func (r *materialRepository) List(ctx context.Context, filter MaterialFilter) ([]model.ProjectMaterial, error) {
	query := r.db.WithContext(ctx).Preload("Project")
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	var materials []model.ProjectMaterial
	err := query.Order("id asc").Find(&materials).Error
	return materials, err
}

func (r *materialRepository) Get(ctx context.Context, id uint) (*model.ProjectMaterial, error) {
	var material model.ProjectMaterial
	if err := r.db.WithContext(ctx).Preload("Project").First(&material, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &material, nil
}

func (r *materialRepository) Save(ctx context.Context, material *model.ProjectMaterial) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(material).Error
}

// Delete 删除资料及其条目、推荐（含条目上的推荐）
func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&model.Item{}).Select("id").Where("project_material_id = ?", id)
		if err := tx.Where("project_material_id = ? OR item_id IN (?)", id, itemIDs).
			Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_material_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		return checkAffected(tx.Delete(&model.ProjectMaterial{}, id))
	})
}
