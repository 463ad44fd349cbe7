package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNoCredential marks the defined degraded mode: no API key configured.
// Callers convert it into an empty/placeholder result, never a fault.
var ErrNoCredential = errors.New("gemini: no API key configured")

// GeminiClientInterface is the surface the assistant service consumes.
type GeminiClientInterface interface {
	Configured() bool
	GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GeminiClient is a thin REST client for the generateContent endpoint.
type GeminiClient struct {
	baseURL string
	model   string
	apiKey  string
	hc      *http.Client
}

// NewGeminiClient constructs a client. An empty apiKey is allowed and puts
// the client into the degraded mode.
func NewGeminiClient(baseURL, model, apiKey string, timeout time.Duration) *GeminiClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a credential is present.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// GenerateContent performs one request/response round trip.
func (c *GeminiClient) GenerateContent(ctx context.Context, reqBody GenerateRequest) (*GenerateResponse, error) {
	if !c.Configured() {
		return nil, ErrNoCredential
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, body)
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	return &out, nil
}
