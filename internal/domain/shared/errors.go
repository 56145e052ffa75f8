package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so errors.Is(err, ErrNotFound) holds for
// any not-found error regardless of its message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a missing or malformed field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError reports a missing resource by name, e.g. "Bank not found"
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NewReferenceError reports that a referenced record does not exist. The
// message names the referenced resource ("Bank not found") so the caller can
// tell which id was wrong.
func NewReferenceError(resource, field string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Field:   field,
	}
}

// NewAlreadyExistsError reports a uniqueness violation, e.g. "Bank with code BICEC already exists"
func NewAlreadyExistsError(resource, field, value string) *DomainError {
	return &DomainError{
		Code:    CodeAlreadyExists,
		Message: fmt.Sprintf("%s with %s %s already exists", resource, field, value),
		Field:   field,
	}
}

// Domain error codes
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidState       = "INVALID_STATE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)
