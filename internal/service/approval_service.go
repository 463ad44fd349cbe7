package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

type approvalEventRepository interface {
	TransitionStatus(ctx context.Context, id string, expect, next models.ApprovalStatus) (*models.Event, error)
	UpdateStatus(ctx context.Context, id string, status models.ApprovalStatus) (*models.Event, error)
}

type notificationSink interface {
	Add(ctx context.Context, n models.Notification) (models.Notification, error)
}

// ApprovalService applies the role-gated approval chain to events.
type ApprovalService struct {
	events        approvalEventRepository
	notifications notificationSink
	logger        *zap.Logger
}

// NewApprovalService constructs the service.
func NewApprovalService(events approvalEventRepository, notifications notificationSink, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{events: events, notifications: notifications, logger: logger}
}

// nextStatus is the deterministic (role, action) -> status table.
func nextStatus(role models.UserRole, action models.ApprovalAction) (models.ApprovalStatus, bool) {
	if action == models.ActionReject {
		switch role {
		case models.RoleHOD, models.RolePrincipal, models.RoleAdmin:
			return models.StatusRejected, true
		}
		return "", false
	}
	switch role {
	case models.RoleHOD:
		return models.StatusPendingPrincipal, true
	case models.RolePrincipal:
		return models.StatusPendingAdmin, true
	case models.RoleAdmin:
		return models.StatusApproved, true
	}
	return "", false
}

// Decide applies an approver's decision to the event currently awaiting
// that approver's stage. Progression is strictly forward along the chain;
// terminal events never move again.
func (s *ApprovalService) Decide(ctx context.Context, eventID string, role models.UserRole, action models.ApprovalAction) (*models.Event, error) {
	if !action.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "action must be APPROVE or REJECT")
	}
	expect := role.PendingStatusFor()
	if expect == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role has no approval stage")
	}
	next, ok := nextStatus(role, action)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role has no approval stage")
	}

	event, err := s.events.TransitionStatus(ctx, eventID, expect, next)
	if err != nil {
		return nil, s.mapTransitionError(err)
	}

	s.notifyStatusChange(ctx, event)
	s.logger.Info("approval decision applied",
		zap.String("event_id", event.ID),
		zap.String("role", string(role)),
		zap.String("action", string(action)),
		zap.String("status", string(event.Status)),
	)
	return event, nil
}

// SetStatus overwrites an event's status directly and notifies the
// organizer. Unknown ids surface as not-found, never as a silent no-op.
func (s *ApprovalService) SetStatus(ctx context.Context, eventID string, status models.ApprovalStatus) (*models.Event, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown approval status")
	}
	event, err := s.events.UpdateStatus(ctx, eventID, status)
	if err != nil {
		return nil, s.mapTransitionError(err)
	}
	s.notifyStatusChange(ctx, event)
	return event, nil
}

func (s *ApprovalService) mapTransitionError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	case errors.Is(err, repository.ErrTerminal):
		return appErrors.Clone(appErrors.ErrTerminalStatus, "")
	case errors.Is(err, repository.ErrStageMismatch):
		return appErrors.Clone(appErrors.ErrInvalidTransition, "")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event status")
	}
}

// notifyStatusChange emits exactly one notification to the organizer.
func (s *ApprovalService) notifyStatusChange(ctx context.Context, event *models.Event) {
	notifType := models.NotificationInfo
	switch event.Status {
	case models.StatusApproved, models.StatusCompleted:
		notifType = models.NotificationSuccess
	case models.StatusRejected:
		notifType = models.NotificationError
	}

	_, err := s.notifications.Add(ctx, models.Notification{
		UserID:  event.Organizer,
		Message: fmt.Sprintf("Your event %q has been updated to: %s", event.Title, humanizeStatus(event.Status)),
		Type:    notifType,
		Kind:    models.KindStatusChange,
		EventID: event.ID,
	})
	if err != nil {
		s.logger.Warn("failed to notify organizer", zap.String("event_id", event.ID), zap.Error(err))
	}
}

func humanizeStatus(status models.ApprovalStatus) string {
	text := string(status)
	if rest, ok := strings.CutPrefix(text, "PENDING_"); ok {
		return "Pending " + rest
	}
	return strings.Replace(text, "_", " ", 1)
}
