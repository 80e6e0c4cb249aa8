package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// PageHandler serves the static sidebar pages
type PageHandler struct {
	pageUC usecase.PageUsecase
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageUC usecase.PageUsecase) *PageHandler {
	return &PageHandler{pageUC: pageUC}
}

// Menu handles GET /api/v1/pages
func (h *PageHandler) Menu(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.pageUC.Menu(c.Request.Context()))
}

// GetPage handles GET /api/v1/pages/:slug
func (h *PageHandler) GetPage(c *gin.Context) {
	page, err := h.pageUC.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, page)
}
