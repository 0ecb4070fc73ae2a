package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// ErrorWithSuggestion wraps an error with a recovery suggestion.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error.
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion.
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a suggestion to uncoded errors it recognizes. Coded
// errors already carry their own suggestions and are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "config.yaml") && strings.Contains(msg, "no such file"):
		return NewErrorWithSuggestion(err, "Run 'unbound config init' to create a configuration file")
	case strings.Contains(msg, "permission denied"):
		return NewErrorWithSuggestion(err, "Check permissions on ~/.unbound and the files inside it")
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no route to host"):
		return NewErrorWithSuggestion(err, "Check that the backend is running, then run 'unbound doctor'")
	case strings.Contains(msg, "unknown format"):
		return NewErrorWithSuggestion(err, "Use --output text, json or yaml")
	case strings.Contains(msg, "--query"):
		return NewErrorWithSuggestion(err, "See https://jmespath.org for the query syntax")
	}
	return err
}

// FormatError enhances err and prefixes it with context.
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}

// RenderError writes err for people: message, code and suggestions.
func RenderError(w io.Writer, styles Styles, err error) {
	if err == nil {
		return
	}

	ue, ok := errors.As(err)
	if !ok {
		fmt.Fprintf(w, "%s %v\n", styles.Error.Render("Error:"), EnhanceError(err))
		return
	}

	fmt.Fprintf(w, "%s %s %s\n", styles.Error.Render("Error:"), ue.Message, styles.Muted.Render("["+string(ue.Code)+"]"))
	if ue.Cause != nil && ue.Cause.Error() != ue.Message {
		fmt.Fprintf(w, "  %s\n", styles.Muted.Render(ue.Cause.Error()))
	}
	for _, s := range ue.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", styles.Warning.Render("→"), s)
	}
	if ue.DocsURL != "" {
		fmt.Fprintf(w, "  %s %s\n", styles.Muted.Render("docs:"), ue.DocsURL)
	}
}
