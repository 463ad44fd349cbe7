package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context, role models.UserRole) (*models.DashboardStats, error)
}

// DashboardHandler wires the role-aware dashboard summary.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary Dashboard summary for the current role
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	identity := identityFromContext(c)
	start := time.Now()
	stats, err := h.service.Stats(c.Request.Context(), identity.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, stats, nil, meta)
}
