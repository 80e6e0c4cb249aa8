package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// ModelHandler exposes the enumerated classifiers
type ModelHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewModelHandler creates a new model handler
func NewModelHandler(predictionUC usecase.PredictionUsecase) *ModelHandler {
	return &ModelHandler{predictionUC: predictionUC}
}

// ListModels handles GET /api/v1/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.predictionUC.ListModels(c.Request.Context()))
}
