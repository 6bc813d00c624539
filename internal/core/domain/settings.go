package domain

import "strings"

// CompletionProvider identifies a completion backend
type CompletionProvider string

const (
	CompletionProviderAnthropic CompletionProvider = "anthropic"
	CompletionProviderOllama    CompletionProvider = "ollama"
	CompletionProviderGemini    CompletionProvider = "gemini"
)

// IsValid reports whether the provider is supported
func (p CompletionProvider) IsValid() bool {
	switch p {
	case CompletionProviderAnthropic, CompletionProviderOllama, CompletionProviderGemini:
		return true
	}
	return false
}

// RequiresAPIKey reports whether the provider needs credentials
func (p CompletionProvider) RequiresAPIKey() bool {
	return p == CompletionProviderAnthropic || p == CompletionProviderGemini
}

// DefaultModel returns the model used when none is configured
func (p CompletionProvider) DefaultModel() string {
	switch p {
	case CompletionProviderAnthropic:
		return "claude-sonnet-4-5-20250929"
	case CompletionProviderOllama:
		return "llama3.2"
	case CompletionProviderGemini:
		return "gemini-2.5-flash"
	}
	return ""
}

// CompletionSettings configures the completion service
type CompletionSettings struct {
	Provider CompletionProvider `json:"provider"`
	Model    string             `json:"model"`
	APIKey   string             `json:"-"`
	BaseURL  string             `json:"base_url,omitempty"`
}

// IsConfigured returns true if the settings are usable
func (s *CompletionSettings) IsConfigured() bool {
	if s == nil || s.Provider == "" {
		return false
	}
	if s.Provider.RequiresAPIKey() && strings.TrimSpace(s.APIKey) == "" {
		return false
	}
	return true
}

// EffectiveModel returns the configured model or the provider default
func (s *CompletionSettings) EffectiveModel() string {
	if s.Model != "" {
		return s.Model
	}
	return s.Provider.DefaultModel()
}
