package driven

import (
	"context"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// ConversationStore persists chat turns per conversation (Redis, PostgreSQL or memory)
type ConversationStore interface {
	// Append adds a turn to the end of a conversation
	Append(ctx context.Context, conversationID string, turn domain.Turn) error

	// List returns all turns of a conversation, oldest first.
	// An unknown conversation yields an empty list.
	List(ctx context.Context, conversationID string) ([]domain.Turn, error)

	// Delete removes a conversation. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, conversationID string) error

	// Ping verifies the backing store is reachable
	Ping(ctx context.Context) error
}
