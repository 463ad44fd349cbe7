package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helixflow/helixflow-api/internal/client"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

// Fallback strings surfaced when the AI service is unavailable. These are
// user-visible contract, not internal errors.
const (
	analysisNoKeyFallback = "AI analysis unavailable (No Key)"
	analysisErrFallback   = "Could not generate analysis."
	analysisEmptyFallback = "Analysis failed."
	chatErrFallback       = "Sorry, I'm having trouble connecting right now. Please try again later."
	chatEmptyFallback     = "I couldn't generate a response."
)

const chatSystemPrompt = `You are the HelixFlow Assistant, an AI productivity companion for a university venue management system.

Your Role:
- Help Coordinators draft professional event descriptions and post-event reports.
- Explain the approval workflow (Coordinator -> HOD -> Principal -> Admin).
- Suggest checklist items for different types of events (e.g., Guest Lectures, Workshops, Cultural Fests).
- Provide quick tips on venue selection based on general requirements.

Tone: Professional, concise, encouraging, and helpful.
Format: Use bullet points for lists. Keep responses under 3 sentences unless asked for a draft.`

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatSession holds one conversational context in memory.
type ChatSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
}

// VenueSuggestion is the structured recommendation result.
type VenueSuggestion struct {
	RecommendedVenueIDs []string `json:"recommendedVenueIds"`
	Reasoning           string   `json:"reasoning,omitempty"`
}

// AssistantService fronts the generative AI advisory features. Every
// operation degrades to an empty or placeholder result when the credential
// is absent or a call fails; faults never propagate.
type AssistantService struct {
	ai      client.GeminiClientInterface
	venues  venueLister
	logger  *zap.Logger
	metrics assistantMetrics

	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

type assistantMetrics interface {
	RecordAssistantCall(operation string, ok bool)
}

// NewAssistantService constructs the service.
func NewAssistantService(ai client.GeminiClientInterface, venues venueLister, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{
		ai:       ai,
		venues:   venues,
		logger:   logger,
		sessions: make(map[string]*ChatSession),
	}
}

// SetMetrics attaches an instrumentation sink.
func (s *AssistantService) SetMetrics(m assistantMetrics) {
	s.metrics = m
}

func (s *AssistantService) recordCall(operation string, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordAssistantCall(operation, ok)
	}
}

// Available reports whether the assistant should be surfaced at all.
func (s *AssistantService) Available() bool {
	return s.ai != nil && s.ai.Configured()
}

// SuggestVenue asks the model to rank venues for a free-text requirement.
// An empty result means "no suggestion", never an error.
func (s *AssistantService) SuggestVenue(ctx context.Context, requirement string) (*VenueSuggestion, error) {
	if requirement == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "requirement description is required")
	}
	if !s.Available() {
		return &VenueSuggestion{RecommendedVenueIDs: []string{}}, nil
	}

	venues, err := s.venues.List(ctx)
	if err != nil {
		s.logger.Warn("venue listing failed for suggestion", zap.Error(err))
		return &VenueSuggestion{RecommendedVenueIDs: []string{}}, nil
	}

	type venueMeta struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Capacity int      `json:"capacity"`
		Features []string `json:"features"`
	}
	metas := make([]venueMeta, 0, len(venues))
	for _, v := range venues {
		metas = append(metas, venueMeta{ID: v.ID, Name: v.Name, Capacity: v.Capacity, Features: v.Features})
	}
	metaJSON, err := json.Marshal(metas)
	if err != nil {
		return &VenueSuggestion{RecommendedVenueIDs: []string{}}, nil
	}

	prompt := fmt.Sprintf(`I have a list of venues:
%s

My event requirement is: %q

Based on the capacity and features needed, return a list of the best venue IDs.`, metaJSON, requirement)

	resp, err := s.ai.GenerateContent(ctx, client.GenerateRequest{
		Contents: []client.Content{{Role: "user", Parts: []client.Part{{Text: prompt}}}},
		GenerationConfig: &client.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &client.Schema{
				Type: "OBJECT",
				Properties: map[string]client.Schema{
					"recommendedVenueIds": {Type: "ARRAY", Items: &client.Schema{Type: "STRING"}},
					"reasoning":           {Type: "STRING"},
				},
			},
		},
	})
	if err != nil {
		s.logger.Warn("venue suggestion failed", zap.Error(err))
		s.recordCall("suggest_venue", false)
		return &VenueSuggestion{RecommendedVenueIDs: []string{}}, nil
	}

	var suggestion VenueSuggestion
	if err := json.Unmarshal([]byte(resp.Text()), &suggestion); err != nil {
		s.logger.Warn("venue suggestion unparseable", zap.Error(err))
		s.recordCall("suggest_venue", false)
		return &VenueSuggestion{RecommendedVenueIDs: []string{}}, nil
	}
	s.recordCall("suggest_venue", true)
	if suggestion.RecommendedVenueIDs == nil {
		suggestion.RecommendedVenueIDs = []string{}
	}
	return &suggestion, nil
}

// AnalyzeReport returns short feedback on a post-event summary, or a fixed
// fallback string when the service cannot answer.
func (s *AssistantService) AnalyzeReport(ctx context.Context, summary string) (string, error) {
	if summary == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "summary is required")
	}
	if !s.Available() {
		return analysisNoKeyFallback, nil
	}

	prompt := fmt.Sprintf(`Analyze this event post-mortem summary for a university event administrator.
Highlight key successes and 1 area for improvement in a concise manner (max 50 words).

Summary: %q`, summary)

	resp, err := s.ai.GenerateContent(ctx, client.GenerateRequest{
		Contents: []client.Content{{Role: "user", Parts: []client.Part{{Text: prompt}}}},
	})
	if err != nil {
		s.logger.Warn("report analysis failed", zap.Error(err))
		s.recordCall("analyze_report", false)
		return analysisErrFallback, nil
	}
	if text := resp.Text(); text != "" {
		s.recordCall("analyze_report", true)
		return text, nil
	}
	s.recordCall("analyze_report", false)
	return analysisEmptyFallback, nil
}

// CreateChatSession opens a conversational context. Without a credential
// the assistant is absent and callers must not render the chat at all.
func (s *AssistantService) CreateChatSession(ctx context.Context, userID string) (*ChatSession, error) {
	if !s.Available() {
		return nil, appErrors.Clone(appErrors.ErrAssistantOffline, "")
	}
	session := &ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Messages:  []ChatMessage{},
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

// GetChatSession returns a snapshot of the session transcript.
func (s *AssistantService) GetChatSession(ctx context.Context, id string) (*ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "chat session not found")
	}
	snapshot := *session
	snapshot.Messages = append([]ChatMessage(nil), session.Messages...)
	return &snapshot, nil
}

// SendChatMessage appends the user turn, asks the model for a reply, and
// appends it to the transcript. Transport failures become a fixed apology
// message in the transcript, never a propagated fault.
func (s *AssistantService) SendChatMessage(ctx context.Context, sessionID, message string) (ChatMessage, error) {
	if message == "" {
		return ChatMessage{}, appErrors.Clone(appErrors.ErrValidation, "message is required")
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return ChatMessage{}, appErrors.Clone(appErrors.ErrNotFound, "chat session not found")
	}
	session.Messages = append(session.Messages, ChatMessage{Role: "user", Text: message})
	history := make([]client.Content, 0, len(session.Messages))
	for _, m := range session.Messages {
		history = append(history, client.Content{Role: m.Role, Parts: []client.Part{{Text: m.Text}}})
	}
	s.mu.Unlock()

	reply := ChatMessage{Role: "model"}
	resp, err := s.ai.GenerateContent(ctx, client.GenerateRequest{
		Contents:          history,
		SystemInstruction: &client.Content{Parts: []client.Part{{Text: chatSystemPrompt}}},
	})
	switch {
	case err != nil:
		s.logger.Warn("chat turn failed", zap.String("session_id", sessionID), zap.Error(err))
		reply.Text = chatErrFallback
		s.recordCall("chat", false)
	case resp.Text() == "":
		reply.Text = chatEmptyFallback
		s.recordCall("chat", false)
	default:
		reply.Text = resp.Text()
		s.recordCall("chat", true)
	}

	s.mu.Lock()
	if session, ok := s.sessions[sessionID]; ok {
		session.Messages = append(session.Messages, reply)
	}
	s.mu.Unlock()
	return reply, nil
}
