package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/service"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
	"github.com/helixflow/helixflow-api/pkg/response"
)

type assistantService interface {
	Available() bool
	SuggestVenue(ctx context.Context, requirement string) (*service.VenueSuggestion, error)
	AnalyzeReport(ctx context.Context, summary string) (string, error)
	CreateChatSession(ctx context.Context, userID string) (*service.ChatSession, error)
	GetChatSession(ctx context.Context, id string) (*service.ChatSession, error)
	SendChatMessage(ctx context.Context, sessionID, message string) (service.ChatMessage, error)
}

// AssistantHandler wires the AI advisory endpoints.
type AssistantHandler struct {
	service assistantService
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(service assistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type suggestVenueRequest struct {
	Requirement string `json:"requirement" binding:"required"`
}

type reportFeedbackRequest struct {
	Summary string `json:"summary" binding:"required"`
}

type chatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Status godoc
// @Summary Assistant availability
// @Tags Assistant
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assistant/status [get]
func (h *AssistantHandler) Status(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"available": h.service.Available()}, nil)
}

// SuggestVenue godoc
// @Summary Suggest venues for a free-text requirement
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body suggestVenueRequest true "Requirement description"
// @Success 200 {object} response.Envelope
// @Router /assistant/suggest-venue [post]
func (h *AssistantHandler) SuggestVenue(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req suggestVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "requirement is required"))
		return
	}
	suggestion, err := h.service.SuggestVenue(c.Request.Context(), req.Requirement)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, suggestion, nil)
}

// ReportFeedback godoc
// @Summary Generate feedback on a post-event report summary
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body reportFeedbackRequest true "Report summary"
// @Success 200 {object} response.Envelope
// @Router /assistant/report-feedback [post]
func (h *AssistantHandler) ReportFeedback(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req reportFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "summary is required"))
		return
	}
	analysis, err := h.service.AnalyzeReport(c.Request.Context(), req.Summary)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"analysis": analysis}, nil)
}

// CreateChatSession godoc
// @Summary Open a chat session with the assistant
// @Tags Assistant
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /assistant/chat/sessions [post]
func (h *AssistantHandler) CreateChatSession(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	identity := identityFromContext(c)
	session, err := h.service.CreateChatSession(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// GetChatSession godoc
// @Summary Fetch a chat session transcript
// @Tags Assistant
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assistant/chat/sessions/{id} [get]
func (h *AssistantHandler) GetChatSession(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	session, err := h.service.GetChatSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// SendChatMessage godoc
// @Summary Send a message to the assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body chatMessageRequest true "User message"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assistant/chat/sessions/{id}/messages [post]
func (h *AssistantHandler) SendChatMessage(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "message is required"))
		return
	}
	reply, err := h.service.SendChatMessage(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply, nil)
}
