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

type bookingService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, organizer string, req service.CreateEventRequest) (*models.Event, error)
	CheckConflict(ctx context.Context, req service.ConflictCheckRequest) (bool, error)
}

type bookingMetrics interface {
	RecordBookingCreated()
	RecordBookingConflict()
}

// BookingHandler wires event booking endpoints.
type BookingHandler struct {
	service bookingService
	metrics bookingMetrics
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service bookingService, metrics bookingMetrics) *BookingHandler {
	return &BookingHandler{service: service, metrics: metrics}
}

// List godoc
// @Summary List all events
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *BookingHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Get godoc
// @Summary Get one event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	event, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Request a venue booking
// @Tags Events
// @Accept json
// @Produce json
// @Param request body service.CreateEventRequest true "Booking request"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events [post]
func (h *BookingHandler) Create(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	identity := identityFromContext(c)
	event, err := h.service.CreateEvent(c.Request.Context(), identity.UserID, req)
	if err != nil {
		if h.metrics != nil && appErrors.FromError(err).Code == appErrors.ErrVenueConflict.Code {
			h.metrics.RecordBookingConflict()
		}
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordBookingCreated()
	}
	response.Created(c, event)
}

// CheckConflict godoc
// @Summary Check a venue slot for conflicts
// @Tags Events
// @Produce json
// @Param venueId query string true "Venue ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string true "Start time (HH:MM)"
// @Param end query string true "End time (HH:MM)"
// @Success 200 {object} response.Envelope
// @Router /events/conflict-check [get]
func (h *BookingHandler) CheckConflict(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.ConflictCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query"))
		return
	}
	conflict, err := h.service.CheckConflict(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"conflict": conflict}, nil)
}
