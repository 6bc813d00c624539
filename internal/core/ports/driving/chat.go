package driving

import (
	"context"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// ChatService answers questions over the domain data
type ChatService interface {
	// Ask routes the question, assembles context and asks the completion service.
	// Uncertain routes return NeedsDomain without calling the completion service.
	Ask(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error)

	// Context routes (unless domains are given) and assembles the context only
	Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error)

	// History returns the stored turns of a conversation
	History(ctx context.Context, conversationID string) (*domain.Conversation, error)

	// Forget deletes a conversation
	Forget(ctx context.Context, conversationID string) error
}
