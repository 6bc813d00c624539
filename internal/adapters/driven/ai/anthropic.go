package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Ensure AnthropicCompletion implements CompletionService
var _ driven.CompletionService = (*AnthropicCompletion)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicCompletion implements CompletionService using the Anthropic Messages API
type AnthropicCompletion struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewAnthropicCompletion creates a new Anthropic completion service
func NewAnthropicCompletion(apiKey, model, baseURL string) (driven.CompletionService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	if model == "" {
		model = domain.CompletionProviderAnthropic.DefaultModel()
	}

	if baseURL == "" {
		baseURL = anthropicBaseURL
	}

	return &AnthropicCompletion{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// messagesRequest is the request body for the Messages API
type messagesRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system,omitempty"`
	Messages  []messageContent `json:"messages"`
}

type messageContent struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response from the Messages API
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the conversation and returns the concatenated text blocks
func (a *AnthropicCompletion) Complete(ctx context.Context, req driven.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.CompletionMaxTokens
	}

	body := messagesRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  make([]messageContent, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, messageContent{Role: string(m.Role), Content: m.Content})
	}

	respBody, status, err := a.do(ctx, http.MethodPost, "/v1/messages", body)
	if err != nil {
		return "", err
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBody, &msgResp); err != nil {
		if status != http.StatusOK {
			return "", fmt.Errorf("Anthropic API returned status %d", status)
		}
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if msgResp.Error != nil {
		return "", fmt.Errorf("Anthropic API error: %s (type: %s)", msgResp.Error.Message, msgResp.Error.Type)
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("Anthropic API returned status %d", status)
	}

	var answer strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}
	if answer.Len() == 0 {
		return "", fmt.Errorf("Anthropic API returned no text content")
	}

	return answer.String(), nil
}

// Model returns the model name being used
func (a *AnthropicCompletion) Model() string {
	return a.model
}

// Ping verifies the API key by listing models
func (a *AnthropicCompletion) Ping(ctx context.Context) error {
	_, status, err := a.do(ctx, http.MethodGet, "/v1/models", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("Anthropic API returned status %d", status)
	}
	return nil
}

// Close releases resources held by the completion service
func (a *AnthropicCompletion) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

func (a *AnthropicCompletion) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}
