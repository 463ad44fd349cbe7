package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
)

func seedEvent(id string, status models.ApprovalStatus) models.Event {
	return models.Event{
		ID:        id,
		Title:     "Tech Talk",
		Organizer: "Current User",
		VenueID:   "v1",
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "11:00",
		Status:    status,
	}
}

func TestEventRepositoryHasConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]models.Event{seedEvent("e1", models.StatusApproved)})

	cases := []struct {
		name     string
		venueID  string
		date     string
		start    string
		end      string
		conflict bool
	}{
		{"overlapping window", "v1", "2026-09-01", "10:00", "12:00", true},
		{"containing window", "v1", "2026-09-01", "08:00", "12:00", true},
		{"contained window", "v1", "2026-09-01", "09:30", "10:30", true},
		{"back-to-back after", "v1", "2026-09-01", "11:00", "13:00", false},
		{"back-to-back before", "v1", "2026-09-01", "07:00", "09:00", false},
		{"other venue", "v2", "2026-09-01", "10:00", "12:00", false},
		{"other date", "v1", "2026-09-02", "10:00", "12:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasConflict(ctx, tc.venueID, tc.date, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.conflict, got)
		})
	}
}

func TestEventRepositoryHasConflict_IgnoresRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]models.Event{seedEvent("e1", models.StatusRejected)})

	got, err := repo.HasConflict(ctx, "v1", "2026-09-01", "10:00", "12:00")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEventRepositoryCreateIfNoConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(nil)

	first := seedEvent("e1", models.StatusPendingHOD)
	require.NoError(t, repo.CreateIfNoConflict(ctx, first))

	second := seedEvent("e2", models.StatusPendingHOD)
	second.StartTime = "10:00"
	second.EndTime = "12:00"
	err := repo.CreateIfNoConflict(ctx, second)
	assert.ErrorIs(t, err, ErrConflict)

	third := seedEvent("e3", models.StatusPendingHOD)
	third.StartTime = "11:00"
	third.EndTime = "12:00"
	require.NoError(t, repo.CreateIfNoConflict(ctx, third))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventRepositoryTransitionStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]models.Event{seedEvent("e1", models.StatusPendingHOD)})

	event, err := repo.TransitionStatus(ctx, "e1", models.StatusPendingHOD, models.StatusPendingPrincipal)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPrincipal, event.Status)

	// The event moved on; the old stage no longer matches.
	_, err = repo.TransitionStatus(ctx, "e1", models.StatusPendingHOD, models.StatusPendingPrincipal)
	assert.ErrorIs(t, err, ErrStageMismatch)

	_, err = repo.TransitionStatus(ctx, "missing", models.StatusPendingHOD, models.StatusPendingPrincipal)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepositoryTerminalStatusNeverChanges(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]models.Event{
		seedEvent("rejected", models.StatusRejected),
		seedEvent("completed", models.StatusCompleted),
	})

	for _, id := range []string{"rejected", "completed"} {
		_, err := repo.UpdateStatus(ctx, id, models.StatusApproved)
		assert.ErrorIs(t, err, ErrTerminal, id)

		_, err = repo.TransitionStatus(ctx, id, models.StatusPendingHOD, models.StatusPendingPrincipal)
		assert.ErrorIs(t, err, ErrTerminal, id)
	}
}

func TestEventRepositoryUpdateStatusNotFound(t *testing.T) {
	repo := NewEventRepository(nil)
	_, err := repo.UpdateStatus(context.Background(), "missing", models.StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepositoryAttachReportOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]models.Event{seedEvent("e1", models.StatusApproved)})

	report := models.EventReport{Attendance: 120, Summary: "Went well", Status: models.ReportPendingReview}
	event, err := repo.AttachReport(ctx, "e1", report, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, event.Status)
	require.NotNil(t, event.Report)
	assert.Equal(t, 120, event.Report.Attendance)

	_, err = repo.AttachReport(ctx, "e1", report, models.StatusCompleted)
	assert.ErrorIs(t, err, ErrReportExists)
}

func TestEventRepositoryUpdateReportStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository([]models.Event{seedEvent("e1", models.StatusApproved)})

	// No report yet.
	_, err := repo.UpdateReportStatus(ctx, "e1", models.ReportApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.AttachReport(ctx, "e1", models.EventReport{Summary: "ok", Status: models.ReportPendingReview}, models.StatusCompleted)
	require.NoError(t, err)

	event, err := repo.UpdateReportStatus(ctx, "e1", models.ReportApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ReportApproved, event.Report.Status)
}

func TestEventRepositorySnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	seed := seedEvent("e1", models.StatusApproved)
	seed.Report = &models.EventReport{Summary: "ok", Photos: []string{"a"}}
	repo := NewEventRepository([]models.Event{seed})

	event, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	event.Title = "mutated"
	event.Report.Summary = "mutated"

	fresh, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Tech Talk", fresh.Title)
	assert.Equal(t, "ok", fresh.Report.Summary)
}
