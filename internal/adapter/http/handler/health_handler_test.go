package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
)

func healthRouter(h *HealthHandler) *gin.Engine {
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler_Health(t *testing.T) {
	registry := newTestRegistry(map[entity.ModelID]service.Classifier{
		entity.ModelKNN: stubClassifier{kind: "knn"},
	})

	t.Run("healthy with models and no optional dependencies", func(t *testing.T) {
		w := get(healthRouter(NewHealthHandler(nil, nil, registry)), "/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "not configured", status.Components["database"])
		assert.Equal(t, "not configured", status.Components["redis"])
		assert.Equal(t, "1/5 available", status.Components["models"])
	})

	t.Run("reports live dependencies", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		w := get(healthRouter(NewHealthHandler(db, rdb, registry)), "/health")

		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", status.Components["database"])
		assert.Equal(t, "ok", status.Components["redis"])
	})

	t.Run("unhealthy when redis is down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		t.Cleanup(func() { _ = rdb.Close() })
		mr.Close()

		w := get(healthRouter(NewHealthHandler(nil, rdb, registry)), "/health")

		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", status.Status)
		assert.Contains(t, status.Components["redis"], "error")
	})

	t.Run("unhealthy when database is closed", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		w := get(healthRouter(NewHealthHandler(db, nil, registry)), "/health")

		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, status.Components["database"], "error: ")
	})

	t.Run("unhealthy without any model", func(t *testing.T) {
		w := get(healthRouter(NewHealthHandler(nil, nil, newTestRegistry(nil))), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "0/5 available")
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready when a local model is loaded", func(t *testing.T) {
		registry := newTestRegistry(map[entity.ModelID]service.Classifier{
			entity.ModelLogisticRegression: stubClassifier{kind: "linear"},
		})

		w := get(healthRouter(NewHealthHandler(nil, nil, registry)), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ready"`)
		assert.Contains(t, w.Body.String(), "logistic_regression")
	})

	t.Run("not ready without models", func(t *testing.T) {
		w := get(healthRouter(NewHealthHandler(nil, nil, newTestRegistry(nil))), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "no model available")
	})

	t.Run("skips remote models whose server is not ready", func(t *testing.T) {
		registry := newTestRegistry(map[entity.ModelID]service.Classifier{
			entity.ModelSVC: remoteClassifier{stubClassifier: stubClassifier{kind: "remote"}, ready: false},
		})

		w := get(healthRouter(NewHealthHandler(nil, nil, registry)), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("accepts remote models that pass their readiness check", func(t *testing.T) {
		registry := newTestRegistry(map[entity.ModelID]service.Classifier{
			entity.ModelSVC: remoteClassifier{stubClassifier: stubClassifier{kind: "remote"}, ready: true},
			entity.ModelKNN: remoteClassifier{stubClassifier: stubClassifier{kind: "remote"}, ready: false},
		})

		w := get(healthRouter(NewHealthHandler(nil, nil, registry)), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "svc")
		assert.NotContains(t, w.Body.String(), "knn")
	})

	t.Run("not ready when database is closed", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		registry := newTestRegistry(map[entity.ModelID]service.Classifier{
			entity.ModelKNN: stubClassifier{kind: "knn"},
		})
		w := get(healthRouter(NewHealthHandler(db, nil, registry)), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "database unreachable")
	})
}
