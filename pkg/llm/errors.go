package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies an AI call failure.
type ErrorType string

const (
	// ErrorTypeCredential means no usable API credential is configured, or
	// the provider rejected the one we sent. Callers prompt the operator to
	// re-select a key; never conflated with transient failures.
	ErrorTypeCredential ErrorType = "credential"

	// ErrorTypeTransport covers network and service failures.
	ErrorTypeTransport ErrorType = "transport"

	// ErrorTypeResponse covers malformed or unusable model output.
	ErrorTypeResponse ErrorType = "response"
)

// Error is a structured AI call error.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a structured AI call error.
func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// ErrCredentialMissing is returned before any network round-trip when no API
// key is configured.
func ErrCredentialMissing() *Error {
	return NewError(ErrorTypeCredential, "no API credential configured", nil)
}

// IsCredentialError reports whether err is a credential failure that should
// send the operator back to key selection.
func IsCredentialError(err error) bool {
	var aiErr *Error
	return errors.As(err, &aiErr) && aiErr.Type == ErrorTypeCredential
}

// ClassifyError wraps a provider error with a classified type. Credential
// rejections are recognized by the provider's status code or message; the
// Gemini endpoints also signal a bad key as "requested entity was not found".
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "entity was not found"):
		return NewError(ErrorTypeCredential, "provider rejected the API credential", err)
	default:
		return NewError(ErrorTypeTransport, "AI call failed", err)
	}
}
