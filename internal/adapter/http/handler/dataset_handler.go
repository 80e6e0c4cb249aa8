package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// DatasetHandler serves the labelled training data
type DatasetHandler struct {
	datasetUC usecase.DatasetUsecase
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(datasetUC usecase.DatasetUsecase) *DatasetHandler {
	return &DatasetHandler{datasetUC: datasetUC}
}

// ListSamples handles GET /api/v1/dataset/samples?sentiment=&limit=&offset=
func (h *DatasetHandler) ListSamples(c *gin.Context) {
	page := ParsePagination(c)

	output, err := h.datasetUC.Samples(c.Request.Context(), &usecase.SamplesInput{
		Sentiment: c.Query("sentiment"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Distribution handles GET /api/v1/dataset/distribution
func (h *DatasetHandler) Distribution(c *gin.Context) {
	output, err := h.datasetUC.Distribution(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
