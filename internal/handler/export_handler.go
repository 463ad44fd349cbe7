package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type exportService interface {
	Request(ctx context.Context, exportType models.ExportType, format models.ExportFormat, requestedBy string) (*models.ExportJob, error)
	Get(ctx context.Context, id string) (*models.ExportJob, error)
	OpenDownload(token string) (*os.File, error)
}

// ExportHandler wires asynchronous dataset exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

type exportRequest struct {
	Type   models.ExportType   `json:"type" binding:"required"`
	Format models.ExportFormat `json:"format" binding:"required"`
}

// Request godoc
// @Summary Queue a dataset export
// @Tags Exports
// @Accept json
// @Produce json
// @Param request body exportRequest true "Export type and format"
// @Success 202 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Request(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type and format are required"))
		return
	}
	identity := identityFromContext(c)
	job, err := h.service.Request(c.Request.Context(), req.Type, req.Format, identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Get godoc
// @Summary Poll an export job
// @Tags Exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	job, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download a finished export artifact
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /export/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	file, err := h.service.OpenDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	name := filepath.Base(file.Name())
	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		contentType = "text/csv"
	case ".pdf":
		contentType = "application/pdf"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": `attachment; filename="` + name + `"`,
	})
}
