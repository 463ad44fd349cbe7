package models

import "time"

// ExportType selects the dataset an export renders.
type ExportType string

const (
	ExportTypeEvents      ExportType = "events"
	ExportTypeUtilization ExportType = "utilization"
	ExportTypeCompliance  ExportType = "compliance"
)

// Valid reports whether the export type is known.
func (t ExportType) Valid() bool {
	switch t {
	case ExportTypeEvents, ExportTypeUtilization, ExportTypeCompliance:
		return true
	}
	return false
}

// ExportFormat selects the rendered file format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// Valid reports whether the format is known.
func (f ExportFormat) Valid() bool {
	return f == ExportFormatCSV || f == ExportFormatPDF
}

// ExportJobStatus tracks asynchronous export generation.
type ExportJobStatus string

const (
	ExportJobQueued    ExportJobStatus = "QUEUED"
	ExportJobRunning   ExportJobStatus = "RUNNING"
	ExportJobCompleted ExportJobStatus = "COMPLETED"
	ExportJobFailed    ExportJobStatus = "FAILED"
)

// ExportJob records one requested export and, once completed, where the
// rendered artifact can be downloaded.
type ExportJob struct {
	ID          string          `json:"id"`
	Type        ExportType      `json:"type"`
	Format      ExportFormat    `json:"format"`
	Status      ExportJobStatus `json:"status"`
	RequestedBy string          `json:"requestedBy"`
	FilePath    string          `json:"-"`
	DownloadURL string          `json:"downloadUrl,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
}
