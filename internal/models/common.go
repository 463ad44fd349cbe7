package models

// Pagination carries list paging metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// DateLayout is the calendar-day format used across the API.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock format used across the API.
const TimeLayout = "15:04"
