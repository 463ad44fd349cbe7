package models

import "time"

// ReportStatus tracks admin review of a submitted post-event report.
type ReportStatus string

const (
	ReportPendingReview ReportStatus = "PENDING_REVIEW"
	ReportApproved      ReportStatus = "APPROVED"
	ReportNeedsRevision ReportStatus = "NEEDS_REVISION"
)

// Valid reports whether the status belongs to the closed enumeration.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPendingReview, ReportApproved, ReportNeedsRevision:
		return true
	}
	return false
}

// EventReport is the post-event compliance report. Created exactly once per
// event; photos are stored inline as base64-encoded blobs.
type EventReport struct {
	Attendance  int          `json:"attendance"`
	Summary     string       `json:"summary"`
	Photos      []string     `json:"photos"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Status      ReportStatus `json:"status"`
}
