package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		DBName:   "classifier",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=classifier sslmode=require", DSN(cfg))
}

func TestMigrateAndPool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, ConfigurePool(db, &config.DatabaseConfig{MaxIdleConns: 1, MaxOpenConns: 1}))
	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable(&entity.Prediction{}))

	require.NoError(t, Ping(context.Background(), db))
	require.NoError(t, Close(db))
	assert.Error(t, Ping(context.Background(), db))
}
