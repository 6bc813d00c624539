package domain

import (
	"fmt"
	"strings"
)

// AuthMethod records how a request was authenticated
type AuthMethod string

const (
	AuthMethodToken  AuthMethod = "token"
	AuthMethodAPIKey AuthMethod = "api_key"
	AuthMethodNone   AuthMethod = "none"
)

// AuthContext contains the authenticated caller for request context
type AuthContext struct {
	Subject string     `json:"subject"`
	Email   string     `json:"email,omitempty"`
	Method  AuthMethod `json:"method"`
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// APIKey is a named service credential stored as a bcrypt hash
type APIKey struct {
	Name string `json:"name"`
	Hash string `json:"-"`
}

// ParseAPIKeys reads "name:hash" pairs separated by commas.
// Blank entries are skipped.
func ParseAPIKeys(s string) ([]APIKey, error) {
	var keys []APIKey
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, hash, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		hash = strings.TrimSpace(hash)
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("%w: api key entry %q must be name:hash", ErrInvalidInput, entry)
		}
		keys = append(keys, APIKey{Name: name, Hash: hash})
	}
	return keys, nil
}
