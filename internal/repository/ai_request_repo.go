package repository

import (
	"context"

	"github.com/projecthub/backend/internal/model"
	"gorm.io/gorm"
)

type aiRequestRepository struct {
	db *gorm.DB
}

func NewAIRequestRepository(db *gorm.DB) AIRequestRepository {
	return &aiRequestRepository{db: db}
}

func (r *aiRequestRepository) Create(ctx context.Context, req *model.AIRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *aiRequestRepository) List(ctx context.Context) ([]model.AIRequest, error) {
	var reqs []model.AIRequest
	err := r.db.WithContext(ctx).Order("id asc").Find(&reqs).Error
	return reqs, err
}

func (r *aiRequestRepository) Get(ctx context.Context, id uint) (*model.AIRequest, error) {
	var req model.AIRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &req, nil
}

func (r *aiRequestRepository) Save(ctx context.Context, req *model.AIRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *aiRequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Summary{}).
			Where("ai_request_id = ?", id).
			Update("ai_request_id", nil).Error; err != nil {
			return err
		}
		return checkAffected(tx.Delete(&model.AIRequest{}, id))
	})
}
