package models

import "time"

// DashboardStats summarises campus activity for the caller's role.
type DashboardStats struct {
	TotalEvents      int     `json:"totalEvents"`
	PendingApprovals int     `json:"pendingApprovals"`
	VenueUtilization float64 `json:"venueUtilization"`
	ComplianceRate   float64 `json:"complianceRate"`
}

// DepartmentCount is the number of events booked by one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// VenueUtilization counts approved bookings per venue.
type VenueUtilization struct {
	VenueID   string `json:"venueId"`
	VenueName string `json:"venueName"`
	Approved  int    `json:"approved"`
}

// ComplianceSummary splits past events by report submission.
type ComplianceSummary struct {
	Compliant int     `json:"compliant"`
	Pending   int     `json:"pending"`
	Rate      float64 `json:"rate"`
}

// AnalyticsSummary aggregates the platform analytics views.
type AnalyticsSummary struct {
	Departments       []DepartmentCount  `json:"departments"`
	Venues            []VenueUtilization `json:"venues"`
	Compliance        ComplianceSummary  `json:"compliance"`
	AverageAttendance float64            `json:"averageAttendance"`
	GeneratedAt       time.Time          `json:"generatedAt"`
}
