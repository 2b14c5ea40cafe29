package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider owns the shared Gemini client used by all LLM-backed agents.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// sectionPayload is the JSON shape the model is instructed to return.
type sectionPayload struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
	Sources    []struct {
		URL   string `json:"url,omitempty"`
		Title string `json:"title,omitempty"`
	} `json:"sources,omitempty"`
}

// GenerateSection runs one prompt through the model and parses the section
// payload out of the response.
func (p *GeminiProvider) GenerateSection(ctx context.Context, prompt string) (*sectionPayload, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Strip potential markdown fences (JSON mode should prevent them, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var payload sectionPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return &payload, nil
}

// GeminiAgent is one LLM-backed domain agent. The agent type selects the
// prompt template; extra context (e.g. place lookups) is appended by callers
// that wrap this type.
type GeminiAgent struct {
	provider  *GeminiProvider
	agentType string
}

func NewGeminiAgent(provider *GeminiProvider, agentType string) *GeminiAgent {
	return &GeminiAgent{provider: provider, agentType: agentType}
}

func (a *GeminiAgent) Run(ctx context.Context, in Input) (*Result, error) {
	return a.runWithExtra(ctx, in, "")
}

func (a *GeminiAgent) runWithExtra(ctx context.Context, in Input, extraContext string) (*Result, error) {
	prompt := buildSectionPrompt(a.agentType, in.Snapshot, extraContext)
	payload, err := a.provider.GenerateSection(ctx, prompt)
	if err != nil {
		return nil, err
	}

	confidence := payload.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.5
	}

	now := time.Now().UTC()
	result := &Result{
		AgentType:   a.agentType,
		TripID:      in.TripID,
		GeneratedAt: now,
		Confidence:  confidence,
		Title:       payload.Title,
		Content:     payload.Content,
	}
	for _, s := range payload.Sources {
		result.Sources = append(result.Sources, Source{URL: s.URL, Title: s.Title, VerifiedAt: now})
	}
	return result, nil
}

func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
