package repository

import (
	"context"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"k8s.io/klog/v2"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Order("id asc").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Get(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

func (r *projectRepository) GetDetail(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.ProjectMaterial").
		Preload("Summaries", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Recommendations", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Recommendations.Item").
		First(&project, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

func (r *projectRepository) Save(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Summary{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMaterial{}).Error; err != nil {
			return err
		}
		if err := checkAffected(tx.Delete(&model.Project{}, id)); err != nil {
			return err
		}
		klog.V(6).Infof("project %d deleted with owned records", id)
		return nil
	})
}
