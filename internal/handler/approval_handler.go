package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/models"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type approvalService interface {
	Decide(ctx context.Context, eventID string, role models.UserRole, action models.ApprovalAction) (*models.Event, error)
	SetStatus(ctx context.Context, eventID string, status models.ApprovalStatus) (*models.Event, error)
}

// ApprovalHandler wires the approval chain endpoints.
type ApprovalHandler struct {
	service approvalService
}

// NewApprovalHandler constructs the handler.
func NewApprovalHandler(service approvalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

type decisionRequest struct {
	Action models.ApprovalAction `json:"action" binding:"required"`
}

type setStatusRequest struct {
	Status models.ApprovalStatus `json:"status" binding:"required"`
}

// Decide godoc
// @Summary Apply an approval decision to a pending event
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body decisionRequest true "APPROVE or REJECT"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{id}/decision [post]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "action is required"))
		return
	}
	identity := identityFromContext(c)
	event, err := h.service.Decide(c.Request.Context(), c.Param("id"), identity.Role, req.Action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// SetStatus godoc
// @Summary Set an event status directly
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body setStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{id}/status [patch]
func (h *ApprovalHandler) SetStatus(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status is required"))
		return
	}
	event, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}
