package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixflow/helixflow-api/internal/client"
	appErrors "github.com/helixflow/helixflow-api/pkg/errors"
)

type fakeGemini struct {
	configured bool
	reply      string
	err        error
	lastReq    client.GenerateRequest
	calls      int
}

func (f *fakeGemini) Configured() bool {
	return f.configured
}

func (f *fakeGemini) GenerateContent(ctx context.Context, req client.GenerateRequest) (*client.GenerateResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &client.GenerateResponse{Candidates: []client.Candidate{{
		Content: client.Content{Role: "model", Parts: []client.Part{{Text: f.reply}}},
	}}}, nil
}

func TestAssistantServiceSuggestVenue_NoCredential(t *testing.T) {
	svc := NewAssistantService(&fakeGemini{configured: false}, newTestVenueRepo(), nil)

	suggestion, err := svc.SuggestVenue(context.Background(), "hands-on workshop for 60 people")
	require.NoError(t, err)
	require.NotNil(t, suggestion)
	assert.Empty(t, suggestion.RecommendedVenueIDs)
	assert.NotNil(t, suggestion.RecommendedVenueIDs)
}

func TestAssistantServiceSuggestVenue_ParsesStructuredReply(t *testing.T) {
	ai := &fakeGemini{configured: true, reply: `{"recommendedVenueIds":["v2"],"reasoning":"Seminar Hall fits 60 attendees."}`}
	svc := NewAssistantService(ai, newTestVenueRepo(), nil)

	suggestion, err := svc.SuggestVenue(context.Background(), "hands-on workshop for 60 people")
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, suggestion.RecommendedVenueIDs)
	assert.Equal(t, "Seminar Hall fits 60 attendees.", suggestion.Reasoning)

	require.NotNil(t, ai.lastReq.GenerationConfig)
	assert.Equal(t, "application/json", ai.lastReq.GenerationConfig.ResponseMIMEType)
	require.NotNil(t, ai.lastReq.GenerationConfig.ResponseSchema)
	assert.Contains(t, ai.lastReq.GenerationConfig.ResponseSchema.Properties, "recommendedVenueIds")
}

func TestAssistantServiceSuggestVenue_DegradesOnFailure(t *testing.T) {
	svc := NewAssistantService(&fakeGemini{configured: true, err: errors.New("boom")}, newTestVenueRepo(), nil)

	suggestion, err := svc.SuggestVenue(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, suggestion.RecommendedVenueIDs)

	svc = NewAssistantService(&fakeGemini{configured: true, reply: "not json"}, newTestVenueRepo(), nil)
	suggestion, err = svc.SuggestVenue(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, suggestion.RecommendedVenueIDs)
}

func TestAssistantServiceSuggestVenue_RequiresInput(t *testing.T) {
	svc := NewAssistantService(&fakeGemini{configured: true}, newTestVenueRepo(), nil)
	_, err := svc.SuggestVenue(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssistantServiceAnalyzeReport(t *testing.T) {
	svc := NewAssistantService(&fakeGemini{configured: false}, newTestVenueRepo(), nil)
	out, err := svc.AnalyzeReport(context.Background(), "the event went well")
	require.NoError(t, err)
	assert.Equal(t, "AI analysis unavailable (No Key)", out)

	svc = NewAssistantService(&fakeGemini{configured: true, err: errors.New("boom")}, newTestVenueRepo(), nil)
	out, err = svc.AnalyzeReport(context.Background(), "the event went well")
	require.NoError(t, err)
	assert.Equal(t, "Could not generate analysis.", out)

	svc = NewAssistantService(&fakeGemini{configured: true, reply: ""}, newTestVenueRepo(), nil)
	out, err = svc.AnalyzeReport(context.Background(), "the event went well")
	require.NoError(t, err)
	assert.Equal(t, "Analysis failed.", out)

	svc = NewAssistantService(&fakeGemini{configured: true, reply: "Strong turnout; fix AV setup next time."}, newTestVenueRepo(), nil)
	out, err = svc.AnalyzeReport(context.Background(), "the event went well")
	require.NoError(t, err)
	assert.Equal(t, "Strong turnout; fix AV setup next time.", out)
}

func TestAssistantServiceChatSessionLifecycle(t *testing.T) {
	ai := &fakeGemini{configured: true, reply: "Here are three checklist items."}
	svc := NewAssistantService(ai, newTestVenueRepo(), nil)

	session, err := svc.CreateChatSession(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.Messages)

	reply, err := svc.SendChatMessage(context.Background(), session.ID, "What should I prepare for a workshop?")
	require.NoError(t, err)
	assert.Equal(t, "model", reply.Role)
	assert.Equal(t, "Here are three checklist items.", reply.Text)

	// The system prompt rides along on every turn.
	require.NotNil(t, ai.lastReq.SystemInstruction)
	assert.Contains(t, ai.lastReq.SystemInstruction.Parts[0].Text, "HelixFlow Assistant")

	stored, err := svc.GetChatSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, "user", stored.Messages[0].Role)
	assert.Equal(t, "model", stored.Messages[1].Role)
}

func TestAssistantServiceChat_OfflineAndMissing(t *testing.T) {
	svc := NewAssistantService(&fakeGemini{configured: false}, newTestVenueRepo(), nil)
	_, err := svc.CreateChatSession(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAssistantOffline.Code, appErrors.FromError(err).Code)

	svc = NewAssistantService(&fakeGemini{configured: true}, newTestVenueRepo(), nil)
	_, err = svc.GetChatSession(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.SendChatMessage(context.Background(), "missing", "hello")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssistantServiceChat_TransportFailureBecomesApology(t *testing.T) {
	ai := &fakeGemini{configured: true}
	svc := NewAssistantService(ai, newTestVenueRepo(), nil)

	session, err := svc.CreateChatSession(context.Background(), "u1")
	require.NoError(t, err)

	ai.err = errors.New("connection reset")
	reply, err := svc.SendChatMessage(context.Background(), session.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I'm having trouble connecting right now. Please try again later.", reply.Text)

	ai.err = nil
	ai.reply = ""
	reply, err = svc.SendChatMessage(context.Background(), session.ID, "hello again")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't generate a response.", reply.Text)

	stored, err := svc.GetChatSession(context.Background(), session.ID)
	require.NoError(t, err)
	// Both failed turns still appear in the transcript.
	assert.Len(t, stored.Messages, 4)
}
