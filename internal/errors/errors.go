package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Transport errors (NET-001 to NET-099)
	ErrCodeRequestTimeout     ErrorCode = "NET-001"
	ErrCodeNetworkUnavailable ErrorCode = "NET-002"
	ErrCodeNetworkError       ErrorCode = "NET-003"

	// Backend errors (HTTP-001 to HTTP-099)
	ErrCodeHTTPStatus       ErrorCode = "HTTP-001"
	ErrCodeBackendRejected  ErrorCode = "HTTP-002"
	ErrCodeRequestEncoding  ErrorCode = "HTTP-003"
	ErrCodeResponseDecoding ErrorCode = "HTTP-004"

	// Credential workflow errors (AUTH-001 to AUTH-099)
	ErrCodeInvalidAuthResponse ErrorCode = "AUTH-001"
	ErrCodeAccountNotFound     ErrorCode = "AUTH-002"
	ErrCodeFeatureUnavailable  ErrorCode = "AUTH-003"
	ErrCodeResetLinkInvalid    ErrorCode = "AUTH-004"
	ErrCodeResetEmailFailed    ErrorCode = "AUTH-005"
	ErrCodeResetPasswordFailed ErrorCode = "AUTH-006"
	ErrCodeNotAuthenticated    ErrorCode = "AUTH-007"
	ErrCodeRoleMismatch        ErrorCode = "AUTH-008"

	// Input validation errors, raised before any network call (INPUT-001 to INPUT-099)
	ErrCodeValidation       ErrorCode = "INPUT-001"
	ErrCodePasswordMismatch ErrorCode = "INPUT-002"

	// Durable storage errors (STORE-001 to STORE-099)
	ErrCodeStoreRead    ErrorCode = "STORE-001"
	ErrCodeStoreWrite   ErrorCode = "STORE-002"
	ErrCodeStoreCorrupt ErrorCode = "STORE-003"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigLoad    ErrorCode = "CONFIG-002"
)

const docsBase = "https://github.com/ShubhamSPawade/unbound#"

// UnboundError represents an enhanced error with code, suggestions, and documentation
type UnboundError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	// StatusCode is the HTTP status of the backend response, when there was one.
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *UnboundError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil && e.Cause.Error() != e.Message {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *UnboundError) Unwrap() error {
	return e.Cause
}

// New creates a new UnboundError
func New(code ErrorCode, message string) *UnboundError {
	return &UnboundError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new UnboundError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *UnboundError {
	return &UnboundError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *UnboundError) WithSuggestion(suggestion string) *UnboundError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *UnboundError) WithSuggestions(suggestions ...string) *UnboundError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *UnboundError) WithDocs(url string) *UnboundError {
	e.DocsURL = url
	return e
}

// WithStatus records the HTTP status the backend answered with
func (e *UnboundError) WithStatus(status int) *UnboundError {
	e.StatusCode = status
	return e
}

// As finds the first UnboundError in err's chain.
func As(err error) (*UnboundError, bool) {
	var ue *UnboundError
	if stderrors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// CodeOf returns the code of the first UnboundError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if ue, ok := As(err); ok {
		return ue.Code
	}
	return ""
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var ue *UnboundError
		if !stderrors.As(err, &ue) {
			return false
		}
		if ue.Code == code {
			return true
		}
		err = ue.Cause
	}
	return false
}

// MessageOf returns the human-readable message of err without code or suggestions.
// Classification of backend text matches against this value.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if ue, ok := As(err); ok {
		return ue.Message
	}
	return err.Error()
}

// IsTransport reports whether err is a timeout or network failure.
func IsTransport(err error) bool {
	switch CodeOf(err) {
	case ErrCodeRequestTimeout, ErrCodeNetworkUnavailable, ErrCodeNetworkError:
		return true
	}
	return false
}

// Common error constructors for frequently used errors

// NewTimeoutError creates a request timeout error
func NewTimeoutError(endpoint string, cause error) *UnboundError {
	return Wrap(ErrCodeRequestTimeout, "Request timeout", cause).
		WithSuggestion(fmt.Sprintf("The backend did not answer %s in time; try again", endpoint)).
		WithSuggestion("Raise UNBOUND_REQUEST_TIMEOUT if the backend is known to be slow")
}

// NewNetworkUnavailableError creates a connection failure error
func NewNetworkUnavailableError(cause error) *UnboundError {
	return Wrap(ErrCodeNetworkUnavailable, "Network unavailable", cause).
		WithSuggestion("Check that the backend is running and reachable").
		WithSuggestion("Verify UNBOUND_API_URL (or --api-url) points at the API base").
		WithSuggestion("Run 'unbound doctor' to diagnose connectivity").
		WithDocs(docsBase + "configuration")
}

// NewNetworkError creates a generic transport failure error
func NewNetworkError(cause error) *UnboundError {
	return Wrap(ErrCodeNetworkError, "Network error", cause)
}

// NewHTTPError creates an error for a completed response with a failure status
func NewHTTPError(status int, message string) *UnboundError {
	return New(ErrCodeHTTPStatus, message).WithStatus(status)
}

// NewNotAuthenticatedError creates an error for commands that need a session
func NewNotAuthenticatedError() *UnboundError {
	return New(ErrCodeNotAuthenticated, "not logged in").
		WithSuggestion("Run 'unbound auth login' first")
}

// NewRoleMismatchError creates an error for a session whose role cannot use a command
func NewRoleMismatchError(required, actual string) *UnboundError {
	return New(ErrCodeRoleMismatch, fmt.Sprintf("this action requires a %s account (logged in as %s)", required, actual)).
		WithSuggestion(fmt.Sprintf("Run 'unbound auth logout' and log in with a %s account", required))
}

// NewValidationError creates an input validation error
func NewValidationError(message string) *UnboundError {
	return New(ErrCodeValidation, message)
}

// NewPasswordMismatchError creates a password confirmation error
func NewPasswordMismatchError() *UnboundError {
	return New(ErrCodePasswordMismatch, "passwords do not match").
		WithSuggestion("Type the same password in both fields")
}

// NewStoreCorruptError creates an error for unreadable persisted state
func NewStoreCorruptError(key string, cause error) *UnboundError {
	return Wrap(ErrCodeStoreCorrupt, fmt.Sprintf("stored %q entry is not valid", key), cause).
		WithSuggestion("Run 'unbound auth logout' to reset local credentials")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *UnboundError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Run 'unbound config view' to inspect the effective configuration").
		WithDocs(docsBase + "configuration")
}
