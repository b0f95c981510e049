// Package provider defines the error types shared by the external
// collaborator clients (weather and advisory providers).
package provider

import "fmt"

// Error represents a failed call to an external provider: a transport
// failure or a non-success response. The provider's detail payload is
// carried when available so callers can surface it.
type Error struct {
	Provider   string
	StatusCode int
	Detail     string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s provider: status %d: %v", e.Provider, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s provider: status %d: %s", e.Provider, e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("%s provider: status %d", e.Provider, e.StatusCode)
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a provider error wrapping an underlying failure
func NewError(name string, err error) *Error {
	return &Error{Provider: name, Err: err}
}

// NewStatusError creates a provider error for a non-success HTTP response
func NewStatusError(name string, status int, detail string) *Error {
	return &Error{Provider: name, StatusCode: status, Detail: detail}
}

// ConfigError indicates a required credential or collaborator is not
// configured. Fatal for the operation attempted; never retried.
type ConfigError struct {
	Setting string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("not configured: %s", e.Setting)
}
