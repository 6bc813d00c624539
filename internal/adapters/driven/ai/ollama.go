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

// Ensure OllamaCompletion implements CompletionService
var _ driven.CompletionService = (*OllamaCompletion)(nil)

const ollamaBaseURL = "http://localhost:11434"

// OllamaCompletion implements CompletionService against a local Ollama server
type OllamaCompletion struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllamaCompletion creates a new Ollama completion service
func NewOllamaCompletion(baseURL, model string) (driven.CompletionService, error) {
	if model == "" {
		model = domain.CompletionProviderOllama.DefaultModel()
	}
	if baseURL == "" {
		baseURL = ollamaBaseURL
	}

	return &OllamaCompletion{
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 300 * time.Second,
		},
	}, nil
}

// ollamaChatRequest is the /api/chat request format
type ollamaChatRequest struct {
	Model    string           `json:"model"`
	Messages []messageContent `json:"messages"`
	Stream   bool             `json:"stream"`
	Options  map[string]any   `json:"options,omitempty"`
}

// ollamaChatResponse is the /api/chat response format
type ollamaChatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`
}

// Complete sends the conversation with the system prompt as the first message
func (o *OllamaCompletion) Complete(ctx context.Context, req driven.CompletionRequest) (string, error) {
	body := ollamaChatRequest{
		Model:    o.model,
		Messages: make([]messageContent, 0, len(req.Messages)+1),
		Stream:   false,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, messageContent{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, messageContent{Role: string(m.Role), Content: m.Content})
	}
	if req.MaxTokens > 0 {
		body.Options = map[string]any{"num_predict": req.MaxTokens}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("Ollama returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != "" {
		return "", fmt.Errorf("Ollama error: %s", chatResp.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	return chatResp.Message.Content, nil
}

// Model returns the model name being used
func (o *OllamaCompletion) Model() string {
	return o.model
}

// Ping checks the server is up by listing local models
func (o *OllamaCompletion) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources held by the completion service
func (o *OllamaCompletion) Close() error {
	o.client.CloseIdleConnections()
	return nil
}
