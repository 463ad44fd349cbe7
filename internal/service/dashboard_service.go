package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

// DashboardService composes the role-aware landing page numbers.
type DashboardService struct {
	events eventLister
	venues venueLister
	logger *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(events eventLister, venues venueLister, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{events: events, venues: venues, logger: logger}
}

// Stats derives the dashboard summary for the caller's role. Pending
// approvals count only the stage the role acts on; coordinators have none.
func (s *DashboardService) Stats(ctx context.Context, role models.UserRole) (*models.DashboardStats, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list venues")
	}

	stats := &models.DashboardStats{TotalEvents: len(events)}

	pendingStage := role.PendingStatusFor()
	approvedOrDone := 0
	completed := 0
	bookedVenues := make(map[string]struct{})
	for _, e := range events {
		if pendingStage != "" && e.Status == pendingStage {
			stats.PendingApprovals++
		}
		switch e.Status {
		case models.StatusApproved:
			approvedOrDone++
			bookedVenues[e.VenueID] = struct{}{}
		case models.StatusCompleted:
			approvedOrDone++
			completed++
			bookedVenues[e.VenueID] = struct{}{}
		}
	}

	if approvedOrDone > 0 {
		stats.ComplianceRate = float64(completed) / float64(approvedOrDone) * 100
	}
	if len(venues) > 0 {
		stats.VenueUtilization = float64(len(bookedVenues)) / float64(len(venues)) * 100
	}
	return stats, nil
}
