package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// PredictionHandler handles classification HTTP requests
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{predictionUC: predictionUC}
}

// Classify handles POST /api/v1/predictions
func (h *PredictionHandler) Classify(c *gin.Context) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}
	input.RequestID = requestID(c)

	output, err := h.predictionUC.Classify(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ClassifyBatch handles POST /api/v1/predictions/batch
func (h *PredictionHandler) ClassifyBatch(c *gin.Context) {
	var input usecase.ClassifyBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}
	input.RequestID = requestID(c)

	output, err := h.predictionUC.ClassifyBatch(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetPrediction handles GET /api/v1/predictions/:id
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "prediction id")
		return
	}

	output, err := h.predictionUC.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ListPredictions handles GET /api/v1/predictions?model=&limit=&offset=
func (h *PredictionHandler) ListPredictions(c *gin.Context) {
	model := c.Query("model")
	if model != "" && !IsValidModel(model) {
		HandleInvalidRequest(c, "invalid model")
		return
	}
	page := ParsePagination(c)

	output, err := h.predictionUC.List(c.Request.Context(), &usecase.ListPredictionsInput{
		Model:  model,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
