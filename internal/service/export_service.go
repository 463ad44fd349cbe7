package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/export"
	"github.com/helixflow/helixflow-api/pkg/jobs"
	"github.com/helixflow/helixflow-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	Workers   int
	Retries   int
}

// ExportService renders booking datasets to downloadable CSV/PDF artifacts.
// Generation is asynchronous over the in-memory job queue; artifacts live
// on local disk behind HMAC-signed download tokens.
type ExportService struct {
	events  eventLister
	venues  venueLister
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportServiceConfig

	queue *jobs.Queue
	mu    sync.RWMutex
	byID  map[string]*models.ExportJob
}

// NewExportService constructs an ExportService. Start must be called before
// requests are accepted.
func NewExportService(events eventLister, venues venueLister, store fileStorage, signer *storage.SignedURLSigner, cfg ExportServiceConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	s := &ExportService{
		events:  events,
		venues:  venues,
		storage: store,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
		byID:    make(map[string]*models.ExportJob),
	}
	s.queue = jobs.NewQueue("exports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Request queues a new export job and returns its initial snapshot.
func (s *ExportService) Request(ctx context.Context, exportType models.ExportType, format models.ExportFormat, requestedBy string) (*models.ExportJob, error) {
	if !exportType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export type")
	}
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	job := &models.ExportJob{
		ID:          uuid.NewString(),
		Type:        exportType,
		Format:      format,
		Status:      models.ExportJobQueued,
		RequestedBy: requestedBy,
		CreatedAt:   time.Now().UTC(),
	}
	s.mu.Lock()
	s.byID[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "export", Payload: job.ID}); err != nil {
		s.setFailed(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}
	return s.snapshot(job.ID), nil
}

// Get returns the job snapshot.
func (s *ExportService) Get(ctx context.Context, id string) (*models.ExportJob, error) {
	job := s.snapshot(id)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// OpenDownload validates the signed token and opens the artifact.
func (s *ExportService) OpenDownload(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export artifact not found")
	}
	return file, nil
}

// Cleanup removes artifacts older than the configured TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	id, _ := job.Payload.(string)
	s.setStatus(id, models.ExportJobRunning)

	snapshot := s.snapshot(id)
	if snapshot == nil {
		return fmt.Errorf("export job %s vanished", id)
	}

	dataset, title, err := s.buildDataset(ctx, snapshot.Type)
	if err != nil {
		s.setFailed(id, err)
		return err
	}

	var payload []byte
	switch snapshot.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", snapshot.Format)
	}
	if err != nil {
		s.setFailed(id, err)
		return err
	}

	filename := fmt.Sprintf("%s_%s.%s", snapshot.Type, time.Now().UTC().Format("20060102_150405"), snapshot.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		s.setFailed(id, err)
		return err
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		s.setFailed(id, err)
		return err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	now := time.Now().UTC()
	s.mu.Lock()
	if j, ok := s.byID[id]; ok {
		j.Status = models.ExportJobCompleted
		j.FilePath = relPath
		j.DownloadURL = fmt.Sprintf("%s/export/download/%s", prefix, token)
		j.CompletedAt = &now
		j.ExpiresAt = &expiresAt
	}
	s.mu.Unlock()

	s.logger.Info("export generated", zap.String("job_id", id), zap.String("file", relPath))
	return nil
}

func (s *ExportService) buildDataset(ctx context.Context, exportType models.ExportType) (export.Dataset, string, error) {
	switch exportType {
	case models.ExportTypeEvents:
		return s.buildEventsDataset(ctx)
	case models.ExportTypeUtilization:
		return s.buildUtilizationDataset(ctx)
	case models.ExportTypeCompliance:
		return s.buildComplianceDataset(ctx)
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported export type %s", exportType)
	}
}

func (s *ExportService) buildEventsDataset(ctx context.Context) (export.Dataset, string, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	venueNames, err := s.venueNames(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}

	headers := []string{"ID", "Title", "Department", "Organizer", "Venue", "Date", "Start", "End", "Status"}
	rows := make([]map[string]string, 0, len(events))
	for _, e := range events {
		venue := venueNames[e.VenueID]
		if venue == "" {
			venue = e.VenueID
		}
		rows = append(rows, map[string]string{
			"ID":         e.ID,
			"Title":      e.Title,
			"Department": e.Department,
			"Organizer":  e.Organizer,
			"Venue":      venue,
			"Date":       e.Date,
			"Start":      e.StartTime,
			"End":        e.EndTime,
			"Status":     string(e.Status),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}, "Event Register", nil
}

func (s *ExportService) buildUtilizationDataset(ctx context.Context) (export.Dataset, string, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	venues, err := s.venues.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}

	approved := make(map[string]int)
	for _, e := range events {
		if e.Status == models.StatusApproved {
			approved[e.VenueID]++
		}
	}
	headers := []string{"Venue", "Capacity", "Approved Bookings"}
	rows := make([]map[string]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, map[string]string{
			"Venue":             v.Name,
			"Capacity":          fmt.Sprintf("%d", v.Capacity),
			"Approved Bookings": fmt.Sprintf("%d", approved[v.ID]),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}, "Venue Utilization", nil
}

func (s *ExportService) buildComplianceDataset(ctx context.Context) (export.Dataset, string, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}

	headers := []string{"Event", "Date", "Status", "Report", "Attendance"}
	rows := make([]map[string]string, 0, len(events))
	for _, e := range events {
		if e.Status != models.StatusApproved && e.Status != models.StatusCompleted {
			continue
		}
		reportState := "MISSING"
		attendance := ""
		if e.Report != nil {
			reportState = string(e.Report.Status)
			attendance = fmt.Sprintf("%d", e.Report.Attendance)
		}
		rows = append(rows, map[string]string{
			"Event":      e.Title,
			"Date":       e.Date,
			"Status":     string(e.Status),
			"Report":     reportState,
			"Attendance": attendance,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}, "Report Compliance", nil
}

func (s *ExportService) venueNames(ctx context.Context) (map[string]string, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(venues))
	for _, v := range venues {
		names[v.ID] = v.Name
	}
	return names, nil
}

func (s *ExportService) snapshot(id string) *models.ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.byID[id]
	if !ok {
		return nil
	}
	out := *job
	return &out
}

func (s *ExportService) setStatus(id string, status models.ExportJobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.byID[id]; ok {
		job.Status = status
	}
}

func (s *ExportService) setFailed(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.byID[id]; ok {
		job.Status = models.ExportJobFailed
		job.Error = err.Error()
	}
}
