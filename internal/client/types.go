package client

// Wire types for the Gemini generateContent endpoint. Only the subset the
// assistant features need is modelled.

// Part is one piece of message content.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a single conversational turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Schema describes the structured-output shape requested from the model.
type Schema struct {
	Type       string            `json:"type"`
	Properties map[string]Schema `json:"properties,omitempty"`
	Items      *Schema           `json:"items,omitempty"`
}

// GenerationConfig tunes the response format.
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// GenerateRequest is the generateContent request body.
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one model completion.
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is the generateContent response body.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text returns the first candidate's concatenated text, or "".
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	out := ""
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}
