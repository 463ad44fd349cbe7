package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type analyticsService interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
}

// AnalyticsHandler wires the institution-wide analytics summary.
type AnalyticsHandler struct {
	service analyticsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Summary godoc
// @Summary Institution-wide booking analytics
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
