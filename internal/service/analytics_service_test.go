package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
)

func TestAnalyticsServiceSummary(t *testing.T) {
	events := []models.Event{
		{ID: "e1", Department: "CSE", VenueID: "v1", Status: models.StatusCompleted,
			Report: &models.EventReport{Attendance: 100, Summary: "ok", Status: models.ReportApproved}},
		{ID: "e2", Department: "CSE", VenueID: "v1", Status: models.StatusApproved,
			Report: &models.EventReport{Attendance: 40, Summary: "ok", Status: models.ReportPendingReview}},
		{ID: "e3", Department: "ECE", VenueID: "v2", Status: models.StatusApproved},
		{ID: "e4", Department: "MBA", VenueID: "v2", Status: models.StatusRejected},
	}
	svc := NewAnalyticsService(repository.NewEventRepository(events), newTestVenueRepo(), nil)
	generated := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return generated })

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, generated, summary.GeneratedAt)

	// Departments in first-seen order.
	require.Len(t, summary.Departments, 3)
	assert.Equal(t, models.DepartmentCount{Department: "CSE", Count: 2}, summary.Departments[0])
	assert.Equal(t, models.DepartmentCount{Department: "ECE", Count: 1}, summary.Departments[1])
	assert.Equal(t, models.DepartmentCount{Department: "MBA", Count: 1}, summary.Departments[2])

	// Every venue is listed; only APPROVED bookings count.
	require.Len(t, summary.Venues, 2)
	assert.Equal(t, "v1", summary.Venues[0].VenueID)
	assert.Equal(t, 1, summary.Venues[0].Approved)
	assert.Equal(t, "v2", summary.Venues[1].VenueID)
	assert.Equal(t, 1, summary.Venues[1].Approved)

	assert.Equal(t, 1, summary.Compliance.Compliant)
	assert.Equal(t, 2, summary.Compliance.Pending)
	assert.InDelta(t, 33.333, summary.Compliance.Rate, 0.01)

	// Attendance sums every submitted report, averaged over compliant events.
	assert.InDelta(t, 140.0, summary.AverageAttendance, 0.001)
}

func TestAnalyticsServiceSummary_Empty(t *testing.T) {
	svc := NewAnalyticsService(repository.NewEventRepository(nil), newTestVenueRepo(), nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Departments)
	require.Len(t, summary.Venues, 2)
	assert.Zero(t, summary.Compliance.Rate)
	assert.Zero(t, summary.AverageAttendance)
}
