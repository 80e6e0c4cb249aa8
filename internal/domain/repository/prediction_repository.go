package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

// PredictionRepository defines the interface for prediction history
type PredictionRepository interface {
	// Create stores a prediction
	Create(ctx context.Context, prediction *entity.Prediction) error

	// CreateBatch stores multiple predictions at once
	CreateBatch(ctx context.Context, predictions []*entity.Prediction) error

	// GetByID retrieves a prediction by its ID, returning nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Prediction, error)

	// List retrieves predictions newest first with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.Prediction, int64, error)

	// ListByModel retrieves predictions made by one model
	ListByModel(ctx context.Context, model entity.ModelID, limit, offset int) ([]*entity.Prediction, int64, error)
}

// PredictionCache stores raw labels for texts already classified by a model
type PredictionCache interface {
	// Get returns the cached label and whether it was present
	Get(ctx context.Context, model entity.ModelID, text string) (entity.RawLabel, bool, error)

	// Set stores a label for ttl
	Set(ctx context.Context, model entity.ModelID, text string, label entity.RawLabel, ttl time.Duration) error
}

// SampleRepository gives read access to the labelled training data
type SampleRepository interface {
	// List returns a page of samples and the number matching the filter
	List(ctx context.Context, filter entity.SampleFilter) ([]entity.Sample, int, error)

	// CountBySentiment returns the number of samples per sentiment code
	CountBySentiment(ctx context.Context) (map[int]int, error)
}

// PageRepository serves the static content pages
type PageRepository interface {
	// Menu returns the sidebar entries in display order
	Menu() []entity.MenuItem

	// Get returns the page for slug, or nil when absent
	Get(slug string) *entity.Page
}
