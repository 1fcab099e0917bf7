package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents an error returned by the taskdeck API. Every
// transport or HTTP failure is normalized into this type so callers
// never branch on transport specifics.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error is a 404 Not Found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error.
// Invalid credentials and expired sessions surface this way.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsValidation returns true if the server rejected the request body.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == 400 || e.StatusCode == 422
}

// IsServerError returns true if the error is a 5xx server error.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// AsAPIError checks if an error is (or wraps) an APIError and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorMessage extracts the server's message field from an error body,
// falling back to the raw body when it is not the usual JSON shape.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
