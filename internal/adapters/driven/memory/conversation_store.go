package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore keeps conversations in process memory.
// Used when neither Redis nor PostgreSQL is configured; history is lost on restart.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string][]domain.Turn
	maxTurns      int
}

// NewConversationStore creates an in-memory store. When maxTurns is positive
// each conversation keeps only its most recent maxTurns turns.
func NewConversationStore(maxTurns int) *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string][]domain.Turn),
		maxTurns:      maxTurns,
	}
}

func (s *ConversationStore) Append(ctx context.Context, conversationID string, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.conversations[conversationID], turn)
	if s.maxTurns > 0 && len(turns) > s.maxTurns {
		turns = append([]domain.Turn(nil), turns[len(turns)-s.maxTurns:]...)
	}
	s.conversations[conversationID] = turns
	return nil
}

func (s *ConversationStore) List(ctx context.Context, conversationID string) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.conversations[conversationID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *ConversationStore) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.conversations, conversationID)
	return nil
}

func (s *ConversationStore) Ping(ctx context.Context) error {
	return nil
}
