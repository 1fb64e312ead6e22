package app

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Local validation errors, raised before any network call.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrRoleRequired     = errors.New("role is required")
)

// Collaborator errors
var (
	ErrNetworkUnavailable  = errors.New("backend unreachable")
	ErrSessionCreateFailed = errors.New("could not create chat session")
)

// APIError is a non-2xx response from the backend, carrying the message the
// server put in its error body so the UI can display it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the backend, meaning the
// stored token is no longer accepted.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 401
}

// UserMessage returns the display text for an error surfaced to the UI,
// preferring the backend's own wording when there is one.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
