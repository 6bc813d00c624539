package runtime

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// The completion service can be swapped at runtime; the catalog holds the
// current dataset snapshot.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config  *domain.RuntimeConfig
	catalog *Catalog

	// Dynamic services (can be nil, updated at runtime)
	completionService driven.CompletionService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config:  config,
		catalog: NewCatalog(config),
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// Catalog returns the dataset catalog
func (s *Services) Catalog() *Catalog {
	return s.catalog
}

// CompletionService returns the current completion service (may be nil)
func (s *Services) CompletionService() driven.CompletionService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completionService
}

// SetCompletionService updates the completion service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetCompletionService(svc driven.CompletionService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completionService != nil && s.completionService != svc {
		_ = s.completionService.Close()
	}

	s.completionService = svc
	s.config.SetCompletionAvailable(svc != nil)
}

// ValidateAndSetCompletion validates connectivity before setting the completion service
func (s *Services) ValidateAndSetCompletion(ctx context.Context, svc driven.CompletionService) error {
	if svc == nil {
		s.SetCompletionService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetCompletionService(svc)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completionService != nil {
		_ = s.completionService.Close()
		s.completionService = nil
	}
	s.config.SetCompletionAvailable(false)

	return nil
}
