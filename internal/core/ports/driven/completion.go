package driven

import (
	"context"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// CompletionRequest is a single chat completion call
type CompletionRequest struct {
	System    string
	Messages  []domain.ChatMessage
	MaxTokens int
}

// CompletionService produces a natural-language answer from a prompt.
// Implementations perform no retries; the answer is returned unmodified.
type CompletionService interface {
	// Complete returns the model's text answer
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the completion service is reachable
	Ping(ctx context.Context) error

	// Close releases resources held by the service
	Close() error
}
