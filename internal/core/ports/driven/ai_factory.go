package driven

import (
	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// CompletionFactory creates completion services based on configuration
type CompletionFactory interface {
	// CreateCompletionService creates a completion service from settings.
	// Returns nil, nil if settings are not configured.
	CreateCompletionService(settings *domain.CompletionSettings) (CompletionService, error)
}
