package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

type notificationRepository interface {
	Add(ctx context.Context, n models.Notification) (models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	HasKind(ctx context.Context, userID string, kind models.NotificationKind, eventID string) (bool, error)
}

type eventLister interface {
	List(ctx context.Context) ([]models.Event, error)
}

// NotificationServiceConfig tunes the reminder sweep.
type NotificationServiceConfig struct {
	RemindersEnabled bool
}

// NotificationService serves per-user notification feeds and runs the
// report-due reminder sweep on each refresh.
type NotificationService struct {
	notifications notificationRepository
	events        eventLister
	logger        *zap.Logger
	cfg           NotificationServiceConfig
	now           func() time.Time
}

// NewNotificationService constructs the service.
func NewNotificationService(notifications notificationRepository, events eventLister, logger *zap.Logger, cfg NotificationServiceConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: notifications,
		events:        events,
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

// List returns the recipient's feed, most recent first. When reminders are
// enabled the sweep runs first so newly due reports surface immediately —
// the poll-driven refresh contract the presentation layer relies on.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	if s.cfg.RemindersEnabled {
		if _, err := s.RunReminderSweep(ctx, userID); err != nil {
			s.logger.Warn("reminder sweep failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	list, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return list, nil
}

// UnreadCount returns the recipient's unread entries.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notifications")
	}
	return count, nil
}

// MarkAllRead flips the read flag on every entry owned by the recipient.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	changed, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	return changed, nil
}

// Add records a general notification for the recipient.
func (s *NotificationService) Add(ctx context.Context, userID, message string, notifType models.NotificationType) (models.Notification, error) {
	if userID == "" || message == "" {
		return models.Notification{}, appErrors.Clone(appErrors.ErrValidation, "userId and message are required")
	}
	if notifType == "" {
		notifType = models.NotificationInfo
	}
	n, err := s.notifications.Add(ctx, models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notifType,
		Kind:    models.KindGeneral,
	})
	if err != nil {
		return models.Notification{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add notification")
	}
	return n, nil
}

// RunReminderSweep emits a one-time "Report Due" warning for every approved
// event of the given organizer whose date has passed without a report.
// Duplicate suppression keys on (user, kind, event), not on message text.
func (s *NotificationService) RunReminderSweep(ctx context.Context, userID string) (int, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return 0, err
	}

	today := s.now().UTC().Format(models.DateLayout)
	emitted := 0
	for _, e := range events {
		if e.Status != models.StatusApproved || e.Report != nil {
			continue
		}
		if e.Organizer != userID || e.Date >= today {
			continue
		}
		exists, err := s.notifications.HasKind(ctx, userID, models.KindReportDue, e.ID)
		if err != nil {
			return emitted, err
		}
		if exists {
			continue
		}
		_, err = s.notifications.Add(ctx, models.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("Report Due: Please submit the post-event report for %q to maintain compliance.", e.Title),
			Type:    models.NotificationWarning,
			Kind:    models.KindReportDue,
			EventID: e.ID,
		})
		if err != nil {
			return emitted, err
		}
		emitted++
	}
	return emitted, nil
}

// SetClock overrides the timestamp source, for tests.
func (s *NotificationService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
