package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Ensure MockConversationStore implements ConversationStore
var _ driven.ConversationStore = (*MockConversationStore)(nil)

// MockConversationStore is a mock implementation of ConversationStore for testing
type MockConversationStore struct {
	mu            sync.RWMutex
	conversations map[string][]domain.Turn

	// Injected failures
	AppendErr error
	ListErr   error
	PingErr   error
}

// NewMockConversationStore creates a new MockConversationStore
func NewMockConversationStore() *MockConversationStore {
	return &MockConversationStore{
		conversations: make(map[string][]domain.Turn),
	}
}

func (m *MockConversationStore) Append(ctx context.Context, conversationID string, turn domain.Turn) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conversationID] = append(m.conversations[conversationID], turn)
	return nil
}

func (m *MockConversationStore) List(ctx context.Context, conversationID string) ([]domain.Turn, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := m.conversations[conversationID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (m *MockConversationStore) Delete(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conversations[conversationID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.conversations, conversationID)
	return nil
}

func (m *MockConversationStore) Ping(ctx context.Context) error {
	return m.PingErr
}
