package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

// AnalyticsService aggregates platform-wide booking and compliance views.
type AnalyticsService struct {
	events eventLister
	venues venueLister
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(events eventLister, venues venueLister, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{events: events, venues: venues, logger: logger, now: time.Now}
}

// Summary computes the analytics datasets in one pass over the store.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list venues")
	}

	summary := &models.AnalyticsSummary{GeneratedAt: s.now().UTC()}

	// Events per department, first-seen order.
	deptIndex := make(map[string]int)
	for _, e := range events {
		if i, ok := deptIndex[e.Department]; ok {
			summary.Departments[i].Count++
			continue
		}
		deptIndex[e.Department] = len(summary.Departments)
		summary.Departments = append(summary.Departments, models.DepartmentCount{Department: e.Department, Count: 1})
	}

	// Approved bookings per venue. Every venue appears, even when idle.
	approvedByVenue := make(map[string]int)
	for _, e := range events {
		if e.Status == models.StatusApproved {
			approvedByVenue[e.VenueID]++
		}
	}
	summary.Venues = make([]models.VenueUtilization, 0, len(venues))
	for _, v := range venues {
		summary.Venues = append(summary.Venues, models.VenueUtilization{
			VenueID:   v.ID,
			VenueName: v.Name,
			Approved:  approvedByVenue[v.ID],
		})
	}

	// Report compliance over events that actually happened. Attendance is
	// summed across every submitted report, averaged over compliant events.
	attendanceTotal := 0
	for _, e := range events {
		if e.Report != nil {
			attendanceTotal += e.Report.Attendance
		}
		switch e.Status {
		case models.StatusCompleted:
			summary.Compliance.Compliant++
		case models.StatusApproved:
			summary.Compliance.Pending++
		}
	}
	passed := summary.Compliance.Compliant + summary.Compliance.Pending
	if passed > 0 {
		summary.Compliance.Rate = float64(summary.Compliance.Compliant) / float64(passed) * 100
	}
	if summary.Compliance.Compliant > 0 {
		summary.AverageAttendance = float64(attendanceTotal) / float64(summary.Compliance.Compliant)
	}

	return summary, nil
}

// SetClock overrides the timestamp source, for tests.
func (s *AnalyticsService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
