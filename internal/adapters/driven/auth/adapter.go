package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// Ensure Adapter implements AuthAdapter
var _ driven.AuthAdapter = (*Adapter)(nil)

// jwtClaims wraps domain.TokenClaims for JWT compatibility
type jwtClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Adapter verifies HS256 bearer tokens and bcrypt-hashed API keys
type Adapter struct {
	jwtSecret  []byte
	issuer     string
	audience   string
	bcryptCost int
}

// Option configures the adapter
type Option func(*Adapter)

// WithIssuer requires the iss claim to match
func WithIssuer(issuer string) Option {
	return func(a *Adapter) { a.issuer = issuer }
}

// WithAudience requires the aud claim to contain audience
func WithAudience(audience string) Option {
	return func(a *Adapter) { a.audience = audience }
}

// WithBcryptCost sets the cost used by HashAPIKey
func WithBcryptCost(cost int) Option {
	return func(a *Adapter) { a.bcryptCost = cost }
}

// NewAdapter creates a new auth adapter with the given JWT secret
func NewAdapter(jwtSecret string, opts ...Option) *Adapter {
	a := &Adapter{
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HashAPIKey generates a bcrypt hash of a service key
func (a *Adapter) HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey checks if a key matches a bcrypt hash
func (a *Adapter) VerifyAPIKey(key, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}

// ErrNoSecret is returned when tokens are used without a signing secret
var ErrNoSecret = errors.New("jwt secret not configured")

// GenerateToken creates a signed JWT from domain claims
func (a *Adapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	if len(a.jwtSecret) == 0 {
		return "", ErrNoSecret
	}
	jc := jwtClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
		},
	}
	if a.audience != "" {
		jc.Audience = jwt.ClaimStrings{a.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	return token.SignedString(a.jwtSecret)
}

// ParseToken validates a JWT and extracts domain claims
// An adapter without a secret rejects every token.
func (a *Adapter) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	if len(a.jwtSecret) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, ErrNoSecret)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	tc := &domain.TokenClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		tc.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		tc.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return tc, nil
}
