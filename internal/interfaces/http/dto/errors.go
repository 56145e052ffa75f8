package dto

import "net/http"

// Transport error codes returned in the "code" field of an error body

// General error codes
const (
	// ErrCodeInternal is used for uncaught errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeMethodNotAllowed is used when a known path does not accept the method
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	// ErrCodeRouteNotFound is used when no route matches the path
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeValidation is used when a field is missing or malformed
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidID is used when an :id path parameter is not a UUID
	ErrCodeInvalidID = "INVALID_ID"
	// ErrCodeInvalidInput is used for input rejected by a domain rule
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodePayloadTooLarge is used when the body exceeds the configured limit
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
	ErrCodeForbidden          = "FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource or a referenced record does not exist
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used for uniqueness violations
	ErrCodeConflict = "CONFLICT"
	// ErrCodeInvalidState is used when an operation is invalid for the current status
	ErrCodeInvalidState = "INVALID_STATE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Lookups of
// records that do not exist answer 400, not 404: the id the client sent is
// treated as bad input.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrCodeRouteNotFound:    http.StatusNotFound,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidID:       http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:     http.StatusBadRequest,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes that differ from their
// transport code. Domain codes not listed are already transport codes.
var DomainErrorCodeMapping = map[string]string{
	"ALREADY_EXISTS":      ErrCodeConflict,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its transport code
// If the code has no mapping it is returned as-is
func NormalizeErrorCode(code string) string {
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	return code
}
