package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
)

const keyPrefix = "classifier:prediction:"

type predictionCache struct {
	client *redis.Client
}

// NewPredictionCache creates a Redis backed prediction cache
func NewPredictionCache(client *redis.Client) repository.PredictionCache {
	return &predictionCache{client: client}
}

// Key returns the cache key for a model and text
func Key(model entity.ModelID, text string) string {
	sum := sha256.Sum256([]byte(text))
	return keyPrefix + string(model) + ":" + hex.EncodeToString(sum[:])
}

func (c *predictionCache) Get(ctx context.Context, model entity.ModelID, text string) (entity.RawLabel, bool, error) {
	val, err := c.client.Get(ctx, Key(model, text)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return entity.RawLabel(val), true, nil
}

func (c *predictionCache) Set(ctx context.Context, model entity.ModelID, text string, label entity.RawLabel, ttl time.Duration) error {
	return c.client.Set(ctx, Key(model, text), string(label), ttl).Err()
}
