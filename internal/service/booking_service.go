package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

type venueLister interface {
	List(ctx context.Context) ([]models.Venue, error)
	GetByID(ctx context.Context, id string) (*models.Venue, error)
}

type bookingEventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event models.Event) error
	CreateIfNoConflict(ctx context.Context, event models.Event) error
	HasConflict(ctx context.Context, venueID, date, start, end string) (bool, error)
}

// BookingServiceConfig tunes booking behaviour.
type BookingServiceConfig struct {
	// EnforceConflict makes the conflict check atomic with creation.
	// When false, creation trusts the caller to have consulted
	// CheckConflict first (legacy advisory mode).
	EnforceConflict bool
}

// BookingService owns venue listing, event listing and booking creation.
type BookingService struct {
	venues    venueLister
	events    bookingEventRepository
	validator *validator.Validate
	logger    *zap.Logger
	cfg       BookingServiceConfig
}

// NewBookingService constructs the service.
func NewBookingService(venues venueLister, events bookingEventRepository, validate *validator.Validate, logger *zap.Logger, cfg BookingServiceConfig) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		venues:    venues,
		events:    events,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// CreateEventRequest describes a booking request. Only required-presence
// and field formats are validated; richer checks (venue existence, start
// before end) stay with the input form, as they always have.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Department  string `json:"department" validate:"required"`
	VenueID     string `json:"venueId" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
	Description string `json:"description" validate:"required"`
}

// ConflictCheckRequest describes an advisory conflict query.
type ConflictCheckRequest struct {
	VenueID   string `form:"venueId" validate:"required"`
	Date      string `form:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `form:"start" validate:"required,datetime=15:04"`
	EndTime   string `form:"end" validate:"required,datetime=15:04"`
}

// ListVenues returns the static venue reference set.
func (s *BookingService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list venues")
	}
	return venues, nil
}

// ListEvents returns the current events snapshot in insertion order.
func (s *BookingService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// GetEvent returns a single event by id.
func (s *BookingService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// CreateEvent registers a booking request at the start of the approval
// chain. With conflict enforcement on, the venue slot check and the insert
// happen atomically and an occupied slot is rejected.
func (s *BookingService) CreateEvent(ctx context.Context, organizer string, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if organizer == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "organizer identity is required")
	}

	event := models.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Organizer:   organizer,
		Department:  req.Department,
		VenueID:     req.VenueID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		Status:      models.StatusPendingHOD,
	}

	var err error
	if s.cfg.EnforceConflict {
		err = s.events.CreateIfNoConflict(ctx, event)
	} else {
		err = s.events.Create(ctx, event)
	}
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, appErrors.Clone(appErrors.ErrVenueConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("venue_id", event.VenueID),
		zap.String("date", event.Date),
	)
	return &event, nil
}

// CheckConflict answers the advisory double-booking query.
func (s *BookingService) CheckConflict(ctx context.Context, req ConflictCheckRequest) (bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query")
	}
	conflict, err := s.events.HasConflict(ctx, req.VenueID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflict")
	}
	return conflict, nil
}
