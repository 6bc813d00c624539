package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

const (
	// Key prefix for conversation turn lists
	conversationPrefix = "conversation:"

	// DefaultConversationTTL is how long an idle conversation is kept
	DefaultConversationTTL = 24 * time.Hour
)

// ConversationStore implements driven.ConversationStore using Redis.
// Each conversation is a list of JSON turns; the TTL is refreshed on every append.
type ConversationStore struct {
	client   *redis.Client
	ttl      time.Duration
	maxTurns int
}

// NewConversationStore creates a new Redis-backed ConversationStore.
// A non-positive ttl selects DefaultConversationTTL. When maxTurns is
// positive each conversation keeps only its most recent maxTurns turns.
func NewConversationStore(client *redis.Client, ttl time.Duration, maxTurns int) *ConversationStore {
	if ttl <= 0 {
		ttl = DefaultConversationTTL
	}
	return &ConversationStore{client: client, ttl: ttl, maxTurns: maxTurns}
}

// Append pushes a turn onto the conversation list and refreshes its TTL
func (s *ConversationStore) Append(ctx context.Context, conversationID string, turn domain.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	key := conversationPrefix + conversationID

	// Use pipeline so the list, its bound and its expiry are written together
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if s.maxTurns > 0 {
		pipe.LTrim(ctx, key, int64(-s.maxTurns), -1)
	}
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}

	return nil
}

// List returns every turn of the conversation, oldest first
func (s *ConversationStore) List(ctx context.Context, conversationID string) ([]domain.Turn, error) {
	items, err := s.client.LRange(ctx, conversationPrefix+conversationID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}

	turns := make([]domain.Turn, 0, len(items))
	for _, item := range items {
		var turn domain.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Skip corrupted entries
			continue
		}
		turns = append(turns, turn)
	}

	return turns, nil
}

// Delete removes a conversation
func (s *ConversationStore) Delete(ctx context.Context, conversationID string) error {
	n, err := s.client.Del(ctx, conversationPrefix+conversationID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping checks the Redis connection
func (s *ConversationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
