package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
)

func dashboardEvents() []models.Event {
	return []models.Event{
		{ID: "e1", Department: "CSE", VenueID: "v1", Status: models.StatusPendingHOD},
		{ID: "e2", Department: "CSE", VenueID: "v1", Status: models.StatusPendingHOD},
		{ID: "e3", Department: "ECE", VenueID: "v1", Status: models.StatusPendingAdmin},
		{ID: "e4", Department: "CSE", VenueID: "v1", Status: models.StatusApproved},
		{ID: "e5", Department: "ECE", VenueID: "v2", Status: models.StatusCompleted},
		{ID: "e6", Department: "MBA", VenueID: "v2", Status: models.StatusRejected},
	}
}

func TestDashboardServiceStats(t *testing.T) {
	svc := NewDashboardService(repository.NewEventRepository(dashboardEvents()), newTestVenueRepo(), nil)

	stats, err := svc.Stats(context.Background(), models.RoleHOD)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalEvents)
	assert.Equal(t, 2, stats.PendingApprovals)
	// One APPROVED plus one COMPLETED out of two that got through the chain.
	assert.InDelta(t, 50.0, stats.ComplianceRate, 0.001)
	// Both venues in the fixture host an approved or completed event.
	assert.InDelta(t, 100.0, stats.VenueUtilization, 0.001)
}

func TestDashboardServiceStats_PendingPerRole(t *testing.T) {
	svc := NewDashboardService(repository.NewEventRepository(dashboardEvents()), newTestVenueRepo(), nil)

	for _, tc := range []struct {
		role    models.UserRole
		pending int
	}{
		{models.RoleHOD, 2},
		{models.RolePrincipal, 0},
		{models.RoleAdmin, 1},
		{models.RoleCoordinator, 0},
	} {
		stats, err := svc.Stats(context.Background(), tc.role)
		require.NoError(t, err)
		assert.Equal(t, tc.pending, stats.PendingApprovals, tc.role)
	}
}

func TestDashboardServiceStats_Empty(t *testing.T) {
	svc := NewDashboardService(repository.NewEventRepository(nil), newTestVenueRepo(), nil)

	stats, err := svc.Stats(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEvents)
	assert.Zero(t, stats.PendingApprovals)
	assert.Zero(t, stats.ComplianceRate)
	assert.Zero(t, stats.VenueUtilization)
}
