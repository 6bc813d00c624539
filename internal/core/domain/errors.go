package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidProvider indicates an unknown completion provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates a collaborator (completion service, store) could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrCompletionFailed indicates the completion service returned no usable answer
	ErrCompletionFailed = errors.New("completion failed")

	// ErrUnknownDomain indicates a domain identifier outside the registry
	ErrUnknownDomain = errors.New("unknown domain")
)
