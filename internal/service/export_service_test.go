package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/storage"
)

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	events := repository.NewEventRepository([]models.Event{
		{ID: "e1", Title: "Tech Talk", Department: "CSE", Organizer: "Current User",
			VenueID: "v1", Date: "2026-09-01", StartTime: "09:00", EndTime: "11:00",
			Status: models.StatusApproved},
		{ID: "e2", Title: "Orientation", Department: "ECE", Organizer: "Current User",
			VenueID: "v2", Date: "2026-08-01", StartTime: "10:00", EndTime: "12:00",
			Status: models.StatusCompleted,
			Report: &models.EventReport{Attendance: 200, Summary: "ok", Status: models.ReportApproved}},
	})
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(events, newTestVenueRepo(), store, signer, ExportServiceConfig{
		APIPrefix: "/api/v1",
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})
	return svc
}

func waitForJob(t *testing.T, svc *ExportService, id string) *models.ExportJob {
	t.Helper()
	var job *models.ExportJob
	require.Eventually(t, func() bool {
		var err error
		job, err = svc.Get(context.Background(), id)
		require.NoError(t, err)
		return job.Status == models.ExportJobCompleted || job.Status == models.ExportJobFailed
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func TestExportServiceEventsCSV(t *testing.T) {
	svc := newExportFixture(t)

	job, err := svc.Request(context.Background(), models.ExportTypeEvents, models.ExportFormatCSV, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.ExportJobQueued, job.Status)

	done := waitForJob(t, svc, job.ID)
	require.Equal(t, models.ExportJobCompleted, done.Status, done.Error)
	require.NotEmpty(t, done.DownloadURL)
	require.NotNil(t, done.ExpiresAt)

	token := strings.TrimPrefix(done.DownloadURL, "/api/v1/export/download/")
	file, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "ID,Title,Department,Organizer,Venue,Date,Start,End,Status")
	assert.Contains(t, text, "Tech Talk")
	assert.Contains(t, text, "Main Auditorium")
}

func TestExportServiceUtilizationPDF(t *testing.T) {
	svc := newExportFixture(t)

	job, err := svc.Request(context.Background(), models.ExportTypeUtilization, models.ExportFormatPDF, "admin")
	require.NoError(t, err)

	done := waitForJob(t, svc, job.ID)
	require.Equal(t, models.ExportJobCompleted, done.Status, done.Error)
	assert.True(t, strings.HasSuffix(done.FilePath, ".pdf"))
}

func TestExportServiceComplianceCSV(t *testing.T) {
	svc := newExportFixture(t)

	job, err := svc.Request(context.Background(), models.ExportTypeCompliance, models.ExportFormatCSV, "admin")
	require.NoError(t, err)

	done := waitForJob(t, svc, job.ID)
	require.Equal(t, models.ExportJobCompleted, done.Status, done.Error)

	token := strings.TrimPrefix(done.DownloadURL, "/api/v1/export/download/")
	file, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	text := string(content)
	// Only events past the approval chain appear.
	assert.Contains(t, text, "Orientation")
	assert.Contains(t, text, "MISSING")
	assert.Contains(t, text, "200")
}

func TestExportServiceValidation(t *testing.T) {
	svc := newExportFixture(t)

	_, err := svc.Request(context.Background(), "grades", models.ExportFormatCSV, "admin")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Request(context.Background(), models.ExportTypeEvents, "xlsx", "admin")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.OpenDownload("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
