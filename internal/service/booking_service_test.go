package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

func newTestVenueRepo() *repository.VenueRepository {
	return repository.NewVenueRepository([]models.Venue{
		{ID: "v1", Name: "Main Auditorium", Capacity: 500},
		{ID: "v2", Name: "Seminar Hall", Capacity: 80},
	})
}

func validBookingRequest() CreateEventRequest {
	return CreateEventRequest{
		Title:       "Tech Talk",
		Department:  "CSE",
		VenueID:     "v1",
		Date:        "2026-09-01",
		StartTime:   "09:00",
		EndTime:     "11:00",
		Description: "Guest lecture on distributed systems",
	}
}

func TestBookingServiceCreateEvent(t *testing.T) {
	ctx := context.Background()
	events := repository.NewEventRepository(nil)
	svc := NewBookingService(newTestVenueRepo(), events, nil, nil, BookingServiceConfig{EnforceConflict: true})

	event, err := svc.CreateEvent(ctx, "Current User", validBookingRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.StatusPendingHOD, event.Status)
	assert.Equal(t, "Current User", event.Organizer)

	stored, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Talk", stored.Title)
}

func TestBookingServiceCreateEvent_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(newTestVenueRepo(), repository.NewEventRepository(nil), nil, nil, BookingServiceConfig{})

	req := validBookingRequest()
	req.Title = ""
	_, err := svc.CreateEvent(ctx, "Current User", req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validBookingRequest()
	req.StartTime = "9am"
	_, err = svc.CreateEvent(ctx, "Current User", req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateEvent(ctx, "", validBookingRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBookingServiceCreateEvent_ConflictEnforced(t *testing.T) {
	ctx := context.Background()
	events := repository.NewEventRepository(nil)
	svc := NewBookingService(newTestVenueRepo(), events, nil, nil, BookingServiceConfig{EnforceConflict: true})

	_, err := svc.CreateEvent(ctx, "Current User", validBookingRequest())
	require.NoError(t, err)

	overlapping := validBookingRequest()
	overlapping.StartTime = "10:00"
	overlapping.EndTime = "12:00"
	_, err = svc.CreateEvent(ctx, "Current User", overlapping)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrVenueConflict.Code, appErrors.FromError(err).Code)

	all, err := events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookingServiceCreateEvent_AdvisoryModeAllowsOverlap(t *testing.T) {
	ctx := context.Background()
	events := repository.NewEventRepository(nil)
	svc := NewBookingService(newTestVenueRepo(), events, nil, nil, BookingServiceConfig{EnforceConflict: false})

	_, err := svc.CreateEvent(ctx, "Current User", validBookingRequest())
	require.NoError(t, err)

	overlapping := validBookingRequest()
	overlapping.StartTime = "10:00"
	overlapping.EndTime = "12:00"
	_, err = svc.CreateEvent(ctx, "Current User", overlapping)
	require.NoError(t, err)

	all, err := events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBookingServiceCheckConflict(t *testing.T) {
	ctx := context.Background()
	events := repository.NewEventRepository(nil)
	svc := NewBookingService(newTestVenueRepo(), events, nil, nil, BookingServiceConfig{EnforceConflict: true})

	_, err := svc.CreateEvent(ctx, "Current User", validBookingRequest())
	require.NoError(t, err)

	conflict, err := svc.CheckConflict(ctx, ConflictCheckRequest{VenueID: "v1", Date: "2026-09-01", StartTime: "10:00", EndTime: "12:00"})
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = svc.CheckConflict(ctx, ConflictCheckRequest{VenueID: "v1", Date: "2026-09-01", StartTime: "11:00", EndTime: "13:00"})
	require.NoError(t, err)
	assert.False(t, conflict)

	_, err = svc.CheckConflict(ctx, ConflictCheckRequest{VenueID: "v1", Date: "tomorrow", StartTime: "11:00", EndTime: "13:00"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBookingServiceGetEvent_NotFound(t *testing.T) {
	svc := NewBookingService(newTestVenueRepo(), repository.NewEventRepository(nil), nil, nil, BookingServiceConfig{})
	_, err := svc.GetEvent(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
