package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface.
// Tokens are issued elsewhere; this service only verifies them.
type authService struct {
	authAdapter driven.AuthAdapter
	apiKeys     []domain.APIKey
}

// NewAuthService creates a new AuthService
func NewAuthService(authAdapter driven.AuthAdapter, apiKeys []domain.APIKey) driving.AuthService {
	keys := make([]domain.APIKey, len(apiKeys))
	copy(keys, apiKeys)
	return &authService{
		authAdapter: authAdapter,
		apiKeys:     keys,
	}
}

// ValidateToken validates a bearer token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		Subject: claims.Subject,
		Email:   claims.Email,
		Method:  domain.AuthMethodToken,
	}, nil
}

// ValidateAPIKey matches the key against every configured hash
func (s *authService) ValidateAPIKey(ctx context.Context, key string) (*domain.AuthContext, error) {
	if key == "" {
		return nil, domain.ErrUnauthorized
	}

	for _, k := range s.apiKeys {
		if s.authAdapter.VerifyAPIKey(key, k.Hash) {
			return &domain.AuthContext{
				Subject: k.Name,
				Method:  domain.AuthMethodAPIKey,
			}, nil
		}
	}

	return nil, domain.ErrUnauthorized
}
