package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Ensure GeminiCompletion implements CompletionService
var _ driven.CompletionService = (*GeminiCompletion)(nil)

// GeminiCompletion implements CompletionService using the Google GenAI SDK
type GeminiCompletion struct {
	client *genai.Client
	model  string
}

// NewGeminiCompletion creates a new Gemini completion service.
// baseURL is only set when talking to a proxy or test server.
func NewGeminiCompletion(ctx context.Context, apiKey, model, baseURL string) (driven.CompletionService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if model == "" {
		model = domain.CompletionProviderGemini.DefaultModel()
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiCompletion{
		client: client,
		model:  model,
	}, nil
}

// Complete maps assistant turns to the model role and returns the response text
func (g *GeminiCompletion) Complete(ctx context.Context, req driven.CompletionRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		contents = append(contents, genai.NewContentFromText(m.Content, geminiRole(m.Role)))
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned no text content")
	}
	return text, nil
}

// geminiRole maps chat roles onto the two roles GenAI accepts
func geminiRole(role domain.Role) genai.Role {
	if role == domain.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Model returns the model name being used
func (g *GeminiCompletion) Model() string {
	return g.model
}

// Ping fetches the model metadata to verify the key and model name
func (g *GeminiCompletion) Ping(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model, nil); err != nil {
		return fmt.Errorf("GenAI model lookup failed: %w", err)
	}
	return nil
}

// Close releases resources held by the completion service
func (g *GeminiCompletion) Close() error {
	return nil
}
