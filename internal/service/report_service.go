package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

type reportEventRepository interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
	AttachReport(ctx context.Context, id string, report models.EventReport, final models.ApprovalStatus) (*models.Event, error)
	UpdateReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Event, error)
}

// ReportServiceConfig tunes report submission policy.
type ReportServiceConfig struct {
	// RequireApproval rejects submission for events that are not APPROVED.
	// Off by default: historically a report finalizes an event regardless
	// of its prior status.
	RequireApproval bool
}

// ReportService handles post-event report submission and review.
type ReportService struct {
	events        reportEventRepository
	notifications notificationSink
	validator     *validator.Validate
	logger        *zap.Logger
	cfg           ReportServiceConfig
	now           func() time.Time
}

// NewReportService constructs the service.
func NewReportService(events reportEventRepository, notifications notificationSink, validate *validator.Validate, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		events:        events,
		notifications: notifications,
		validator:     validate,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

// SubmitReportRequest describes a report payload. Photos arrive as
// base64-encoded blobs and are stored inline.
type SubmitReportRequest struct {
	Attendance int      `json:"attendance" validate:"min=0"`
	Summary    string   `json:"summary" validate:"required"`
	Photos     []string `json:"photos"`
}

// ReviewReportRequest describes an admin review outcome.
type ReviewReportRequest struct {
	Status models.ReportStatus `json:"status" validate:"required"`
}

// SubmitReport attaches the report exactly once, stamps submittedAt,
// marks it PENDING_REVIEW and forces the event to COMPLETED, then notifies
// the organizer.
func (s *ReportService) SubmitReport(ctx context.Context, eventID string, req SubmitReportRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	if s.cfg.RequireApproval {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
		}
		if event.Status != models.StatusApproved {
			return nil, appErrors.Clone(appErrors.ErrNotApproved, "")
		}
	}

	report := models.EventReport{
		Attendance:  req.Attendance,
		Summary:     req.Summary,
		Photos:      req.Photos,
		SubmittedAt: s.now().UTC(),
		Status:      models.ReportPendingReview,
	}

	event, err := s.events.AttachReport(ctx, eventID, report, models.StatusCompleted)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		case errors.Is(err, repository.ErrReportExists):
			return nil, appErrors.Clone(appErrors.ErrReportExists, "")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit report")
		}
	}

	_, nerr := s.notifications.Add(ctx, models.Notification{
		UserID:  event.Organizer,
		Message: fmt.Sprintf("Report submitted for %q. Pending admin review.", event.Title),
		Type:    models.NotificationSuccess,
		Kind:    models.KindReportSubmitted,
		EventID: event.ID,
	})
	if nerr != nil {
		s.logger.Warn("failed to notify organizer", zap.String("event_id", event.ID), zap.Error(nerr))
	}

	s.logger.Info("report submitted", zap.String("event_id", event.ID), zap.Int("attendance", report.Attendance))
	return event, nil
}

// ReviewReport records the admin review outcome on a submitted report and
// notifies the organizer.
func (s *ReportService) ReviewReport(ctx context.Context, eventID string, req ReviewReportRequest) (*models.Event, error) {
	if req.Status != models.ReportApproved && req.Status != models.ReportNeedsRevision {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be APPROVED or NEEDS_REVISION")
	}

	event, err := s.events.UpdateReportStatus(ctx, eventID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event or report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to review report")
	}

	notifType := models.NotificationSuccess
	message := fmt.Sprintf("Your report for %q has been approved.", event.Title)
	if req.Status == models.ReportNeedsRevision {
		notifType = models.NotificationWarning
		message = fmt.Sprintf("Your report for %q needs revision.", event.Title)
	}
	_, nerr := s.notifications.Add(ctx, models.Notification{
		UserID:  event.Organizer,
		Message: message,
		Type:    notifType,
		Kind:    models.KindReportReviewed,
		EventID: event.ID,
	})
	if nerr != nil {
		s.logger.Warn("failed to notify organizer", zap.String("event_id", event.ID), zap.Error(nerr))
	}

	return event, nil
}

// SetClock overrides the timestamp source, for tests.
func (s *ReportService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
