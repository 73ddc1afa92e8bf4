// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes provide
// clients with a stable, machine-readable error taxonomy that supplements
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, not_found) mirror common HTTP status
//     semantics to aid interoperability.
//   - invalid_argument is used for query parameters that parse but fall outside
//     their documented range (thresholds, limits).
package handlers

const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeInvalidArgument = "invalid_argument"
	ErrCodeNotFound        = "not_found"
	ErrCodeRateLimited     = "too_many_requests"
	ErrCodeInternal        = "internal_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"
)
