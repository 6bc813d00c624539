package domain

import "sync"

// RuntimeConfig tracks which collaborators are available at runtime.
// The conversation backend is fixed at startup; the completion and dataset
// flags change as services are swapped or data is reloaded.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	ConversationBackend string // "redis", "postgres" or "memory"

	completionAvailable bool
	datasetTables       int
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(conversationBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		ConversationBackend: conversationBackend,
	}
}

// CompletionAvailable returns whether a completion service is configured
func (c *RuntimeConfig) CompletionAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.completionAvailable
}

// SetCompletionAvailable updates the completion availability flag
func (c *RuntimeConfig) SetCompletionAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completionAvailable = available
}

// DatasetTables returns how many tables the current snapshot holds
func (c *RuntimeConfig) DatasetTables() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.datasetTables
}

// SetDatasetTables records the table count of the current snapshot
func (c *RuntimeConfig) SetDatasetTables(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datasetTables = n
}

// CanAnswer returns true when questions can be answered end to end
func (c *RuntimeConfig) CanAnswer() bool {
	return c.CompletionAvailable() && c.DatasetTables() > 0
}
