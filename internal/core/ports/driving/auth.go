package driving

import (
	"context"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// AuthService authenticates API callers
type AuthService interface {
	// ValidateToken validates a bearer JWT and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// ValidateAPIKey matches a service key against the configured hashes
	ValidateAPIKey(ctx context.Context, key string) (*domain.AuthContext, error)
}
