package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/service"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type reportService interface {
	SubmitReport(ctx context.Context, eventID string, req service.SubmitReportRequest) (*models.Event, error)
	ReviewReport(ctx context.Context, eventID string, req service.ReviewReportRequest) (*models.Event, error)
}

// ReportHandler wires post-event report endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit godoc
// @Summary Submit the post-event report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body service.SubmitReportRequest true "Report payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{id}/report [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	event, err := h.service.SubmitReport(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Review godoc
// @Summary Review a submitted report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body service.ReviewReportRequest true "APPROVED or NEEDS_REVISION"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/report/review [post]
func (h *ReportHandler) Review(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	event, err := h.service.ReviewReport(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}
