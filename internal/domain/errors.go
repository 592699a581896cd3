package domain

import (
	"fmt"
	"strings"
)

// Error types for consistent error handling across the client core.

// APIError is the normalized shape of every failure surfaced by the HTTP
// client: network errors, decode errors and non-2xx responses all end up
// here. Status defaults to 500 when no HTTP status is available.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsAuthFailure reports whether the error represents an authentication
// failure that tears down the session.
func (e *APIError) IsAuthFailure() bool {
	return e.Status == 401
}

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation carries the structured result of client-side form
// validation. It is raised before any request is built, so invalid form
// data never reaches the network layer.
type ErrValidation struct {
	Fields []FieldError
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
