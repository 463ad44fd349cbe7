package models

import "time"

// NotificationType drives presentation styling for a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

// NotificationKind is a structured dedup key distinguishing why a
// notification was produced. Combined with EventID it replaces
// message-text matching for reminder suppression.
type NotificationKind string

const (
	KindStatusChange    NotificationKind = "STATUS_CHANGE"
	KindReportSubmitted NotificationKind = "REPORT_SUBMITTED"
	KindReportReviewed  NotificationKind = "REPORT_REVIEWED"
	KindReportDue       NotificationKind = "REPORT_DUE"
	KindGeneral         NotificationKind = "GENERAL"
)

// Notification is a per-user feed entry. Entries are never deleted; only
// the Read flag mutates.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Kind      NotificationKind `json:"kind"`
	EventID   string           `json:"eventId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
