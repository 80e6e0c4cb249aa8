package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Prediction{}))
	return db
}

func newPrediction(model entity.ModelID, text string, createdAt time.Time) *entity.Prediction {
	p := entity.NewPrediction(model, text, "1", entity.CategoryProminent)
	p.CreatedAt = createdAt
	return p
}

func TestPredictionRepository_CreateAndGet(t *testing.T) {
	repo := NewPredictionRepository(setupTestDB(t))
	ctx := context.Background()

	prediction := entity.NewPrediction(entity.ModelKNN, "climate change is real", "1", entity.CategoryProminent)
	prediction.SetTiming(12, true, "req-1")
	require.NoError(t, repo.Create(ctx, prediction))

	found, err := repo.GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, prediction.ID, found.ID)
	assert.Equal(t, entity.ModelKNN, found.ModelID)
	assert.Equal(t, entity.RawLabel("1"), found.RawLabel)
	assert.Equal(t, entity.CategoryProminent, found.Category)
	assert.True(t, found.Cached)
	assert.Equal(t, int64(12), found.LatencyMs)
	assert.False(t, found.CreatedAt.IsZero())

	missing, err := repo.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPredictionRepository_List(t *testing.T) {
	repo := NewPredictionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)

	batch := []*entity.Prediction{
		newPrediction(entity.ModelKNN, "first", base),
		newPrediction(entity.ModelSVC, "second", base.Add(time.Minute)),
		newPrediction(entity.ModelKNN, "third", base.Add(2*time.Minute)),
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	t.Run("newest first", func(t *testing.T) {
		predictions, total, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, predictions, 2)
		assert.Equal(t, "third", predictions[0].Text)
		assert.Equal(t, "second", predictions[1].Text)
	})

	t.Run("offset", func(t *testing.T) {
		predictions, total, err := repo.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, predictions, 1)
		assert.Equal(t, "first", predictions[0].Text)
	})

	t.Run("by model", func(t *testing.T) {
		predictions, total, err := repo.ListByModel(ctx, entity.ModelKNN, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, predictions, 2)
		for _, p := range predictions {
			assert.Equal(t, entity.ModelKNN, p.ModelID)
		}
	})
}
