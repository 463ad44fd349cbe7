package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/helixflow/helixflow-api/internal/models"
)

// NotificationRepository holds the global ordered notification list.
// Entries are inserted at the head and never deleted; only the Read flag
// mutates.
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
	now           func() time.Time
}

// NewNotificationRepository builds a notification store seeded with the
// given entries.
func NewNotificationRepository(seed []models.Notification) *NotificationRepository {
	notifications := make([]models.Notification, len(seed))
	copy(notifications, seed)
	return &NotificationRepository{notifications: notifications, now: time.Now}
}

// Add assigns id, read=false and createdAt, then inserts at the head of the
// list. The stored entry is returned.
func (r *NotificationRepository) Add(ctx context.Context, n models.Notification) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = r.now().UTC()
	if n.Kind == "" {
		n.Kind = models.KindGeneral
	}
	r.notifications = append([]models.Notification{n}, r.notifications...)
	return n, nil
}

// ListByUser returns the recipient's notifications, most recent first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UnreadCount returns the recipient's unread notification count.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkAllRead flips Read on every entry owned by the recipient and returns
// how many entries changed. Other users' entries are untouched.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for i := range r.notifications {
		if r.notifications[i].UserID == userID && !r.notifications[i].Read {
			r.notifications[i].Read = true
			changed++
		}
	}
	return changed, nil
}

// HasKind reports whether the recipient already has a notification with the
// given kind for the given event. This is the structured idempotency key
// used to suppress duplicate reminders.
func (r *NotificationRepository) HasKind(ctx context.Context, userID string, kind models.NotificationKind, eventID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.notifications {
		if n.UserID == userID && n.Kind == kind && n.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// SetClock overrides the timestamp source, for tests.
func (r *NotificationRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now != nil {
		r.now = now
	}
}
