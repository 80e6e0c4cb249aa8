package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/exploretech/tweet-classifier/internal/adapter/http/handler"
	"github.com/exploretech/tweet-classifier/internal/adapter/http/middleware"
	"github.com/exploretech/tweet-classifier/internal/infrastructure/metrics"
	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// Deps collects everything the HTTP layer needs. DB and Redis are optional
// and only feed the health probes.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Registry handler.ModelRegistry
	Logger   *zap.Logger

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Predictions usecase.PredictionUsecase
	Dataset     usecase.DatasetUsecase
	Pages       usecase.PageUsecase
}

// Setup creates and configures the Gin router
func Setup(deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}

	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Registry)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	predictionHandler := handler.NewPredictionHandler(deps.Predictions)
	modelHandler := handler.NewModelHandler(deps.Predictions)
	datasetHandler := handler.NewDatasetHandler(deps.Dataset)
	pageHandler := handler.NewPageHandler(deps.Pages)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/models", modelHandler.ListModels)

		predictions := v1.Group("/predictions")
		{
			predictions.POST("", predictionHandler.Classify)
			predictions.POST("/batch", predictionHandler.ClassifyBatch)
			predictions.GET("", predictionHandler.ListPredictions)
			predictions.GET("/:id", predictionHandler.GetPrediction)
		}

		dataset := v1.Group("/dataset")
		{
			dataset.GET("/samples", datasetHandler.ListSamples)
			dataset.GET("/distribution", datasetHandler.Distribution)
		}

		pages := v1.Group("/pages")
		{
			pages.GET("", pageHandler.Menu)
			pages.GET("/:slug", pageHandler.GetPage)
		}
	}

	return router
}
