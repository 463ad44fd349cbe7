package models

// ApprovalStatus tracks an event through the HOD -> Principal -> Admin
// approval chain. Progression is strictly forward; REJECTED and COMPLETED
// are terminal.
type ApprovalStatus string

const (
	StatusPendingHOD       ApprovalStatus = "PENDING_HOD"
	StatusPendingPrincipal ApprovalStatus = "PENDING_PRINCIPAL"
	StatusPendingAdmin     ApprovalStatus = "PENDING_ADMIN"
	StatusApproved         ApprovalStatus = "APPROVED"
	StatusRejected         ApprovalStatus = "REJECTED"
	StatusCompleted        ApprovalStatus = "COMPLETED"
)

// Valid reports whether the status belongs to the closed enumeration.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPendingHOD, StatusPendingPrincipal, StatusPendingAdmin,
		StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status can never change again.
func (s ApprovalStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Event is a venue booking request moving through the approval chain.
// Date is a calendar day formatted YYYY-MM-DD; StartTime and EndTime are
// same-day wall-clock values formatted HH:MM, so lexicographic comparison
// is chronological comparison.
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Organizer   string         `json:"organizer"`
	Department  string         `json:"department"`
	VenueID     string         `json:"venueId"`
	Date        string         `json:"date"`
	StartTime   string         `json:"startTime"`
	EndTime     string         `json:"endTime"`
	Description string         `json:"description"`
	Status      ApprovalStatus `json:"status"`
	Report      *EventReport   `json:"report,omitempty"`
}

// Overlaps reports whether the [start,end) interval intersects the event's
// own half-open interval. Back-to-back slots do not overlap.
func (e Event) Overlaps(start, end string) bool {
	return start < e.EndTime && end > e.StartTime
}
