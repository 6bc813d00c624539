package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Ensure MockCompletionService implements CompletionService
var _ driven.CompletionService = (*MockCompletionService)(nil)

// MockCompletionService records requests and returns a canned answer
type MockCompletionService struct {
	mu       sync.Mutex
	requests []driven.CompletionRequest

	Answer  string
	Err     error
	PingErr error
	Closed  bool
}

// NewMockCompletionService creates a mock that always answers with answer
func NewMockCompletionService(answer string) *MockCompletionService {
	return &MockCompletionService{Answer: answer}
}

func (m *MockCompletionService) Complete(ctx context.Context, req driven.CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

// Requests returns every request received so far
func (m *MockCompletionService) Requests() []driven.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]driven.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockCompletionService) Model() string {
	return "mock-model"
}

func (m *MockCompletionService) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockCompletionService) Close() error {
	m.Closed = true
	return nil
}
