package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/exploretech/tweet-classifier/internal/adapter/artifact"
	"github.com/exploretech/tweet-classifier/internal/adapter/content"
	"github.com/exploretech/tweet-classifier/internal/adapter/dataset"
	"github.com/exploretech/tweet-classifier/internal/adapter/http/router"
	"github.com/exploretech/tweet-classifier/internal/adapter/repository/postgres"
	"github.com/exploretech/tweet-classifier/internal/adapter/repository/rediscache"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
	"github.com/exploretech/tweet-classifier/internal/domain/service"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/cache"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/config"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/database"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/logger"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/metrics"
	"github.com/exploretech/tweet-classifier/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	labels, err := cfg.LabelMap()
	if err != nil {
		return fmt.Errorf("invalid label map: %w", err)
	}

	// Artifacts
	loader := artifact.NewFileLoader(cfg.Artifacts.Dir, cfg.Artifacts.Vectorizer, cfg.Artifacts.ModelFiles())
	registry, err := service.NewRegistry(loader, loader.Models(),
		service.WithPreload(true),
		service.WithLabelMap(labels),
	)
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}
	for _, st := range registry.Models() {
		if st.Configured && !st.Available {
			log.Warn("Model unavailable", zap.String("model", string(st.ID)), zap.String("reason", st.Reason))
		}
	}
	log.Info("Artifacts loaded",
		zap.String("dir", cfg.Artifacts.Dir),
		zap.Int("vectorizer_dimensions", registry.Vectorizer().Dimensions()),
	)

	dispatcher := service.NewDispatcher(registry, labels,
		service.WithValidation(cfg.Inference.ValidateInput),
		service.WithMaxTextLength(cfg.Inference.MaxTextLength),
	)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promRegistry)

	opts := []usecase.PredictionOption{usecase.WithMetrics(m)}

	// Prediction history (optional)
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Connected to database")

		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed")
		opts = append(opts, usecase.WithHistory(postgres.NewPredictionRepository(db)))
	}

	// Prediction cache (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			opts = append(opts, usecase.WithCache(rediscache.NewPredictionCache(redisClient), cfg.Redis.TTL))
		}
	}

	// Labelled dataset (optional)
	var samples repository.SampleRepository
	if cfg.Dataset.Path != "" {
		samples, err = dataset.LoadFile(cfg.Dataset.Path)
		if err != nil {
			log.Warn("Failed to load dataset, dataset endpoints disabled",
				zap.String("path", cfg.Dataset.Path),
				zap.Error(err),
			)
			samples = nil
		}
	}

	r := router.Setup(&router.Deps{
		DB:          db,
		Redis:       redisClient,
		Registry:    registry,
		Logger:      log,
		Metrics:     m,
		Gatherer:    promRegistry,
		Predictions: usecase.NewPredictionUsecase(dispatcher, log, opts...),
		Dataset:     usecase.NewDatasetUsecase(samples, labels),
		Pages:       usecase.NewPageUsecase(content.NewStaticPages(cfg.Contact.FormAction, registry.Available())),
	})

	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  2 * cfg.Server.ReadTimeout,
	}

	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if db != nil {
		_ = database.Close(db)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
