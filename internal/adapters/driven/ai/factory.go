package ai

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Ensure Factory implements CompletionFactory
var _ driven.CompletionFactory = (*Factory)(nil)

// Factory creates completion services based on configuration
type Factory struct{}

// NewFactory creates a new completion service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateCompletionService creates a completion service from settings
func (f *Factory) CreateCompletionService(settings *domain.CompletionSettings) (driven.CompletionService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.CompletionProviderAnthropic:
		return NewAnthropicCompletion(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.CompletionProviderOllama:
		return NewOllamaCompletion(settings.BaseURL, settings.Model)
	case domain.CompletionProviderGemini:
		return NewGeminiCompletion(context.Background(), settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
