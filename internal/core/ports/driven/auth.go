package driven

import "github.com/custodia-labs/sercha-insight/internal/core/domain"

// AuthAdapter handles authentication cryptographic operations.
// Bearer tokens are issued by the identity provider; GenerateToken exists for
// local development and tests.
type AuthAdapter interface {
	// API key operations
	HashAPIKey(key string) (string, error)
	VerifyAPIKey(key, hash string) bool

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
