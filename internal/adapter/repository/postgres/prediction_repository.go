package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
)

const batchSize = 100

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *gorm.DB) repository.PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *entity.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) CreateBatch(ctx context.Context, predictions []*entity.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(predictions, batchSize).Error
}

func (r *predictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error) {
	var prediction entity.Prediction
	err := r.db.WithContext(ctx).First(&prediction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Prediction, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&entity.Prediction{}), limit, offset)
}

func (r *predictionRepository) ListByModel(ctx context.Context, model entity.ModelID, limit, offset int) ([]*entity.Prediction, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Prediction{}).Where("model_id = ?", model)
	return r.page(query, limit, offset)
}

func (r *predictionRepository) page(query *gorm.DB, limit, offset int) ([]*entity.Prediction, int64, error) {
	var predictions []*entity.Prediction
	var total int64

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&predictions).Error
	if err != nil {
		return nil, 0, err
	}

	return predictions, total, nil
}
