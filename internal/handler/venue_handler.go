package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type venueService interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
}

// VenueHandler exposes the venue reference set.
type VenueHandler struct {
	service venueService
}

// NewVenueHandler constructs the handler.
func NewVenueHandler(service venueService) *VenueHandler {
	return &VenueHandler{service: service}
}

// List godoc
// @Summary List bookable venues
// @Tags Venues
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /venues [get]
func (h *VenueHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	venues, err := h.service.ListVenues(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, venues, nil)
}
