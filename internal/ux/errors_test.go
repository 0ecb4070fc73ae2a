package ux

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	if NewErrorWithSuggestion(nil, "x") != nil {
		t.Error("NewErrorWithSuggestion(nil) should return nil")
	}

	base := stderrors.New("something failed")
	err := NewErrorWithSuggestion(base, "try this fix")
	if !strings.Contains(err.Error(), "something failed") || !strings.Contains(err.Error(), "try this fix") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !stderrors.Is(err, base) {
		t.Error("wrapped error should unwrap to the original")
	}

	if got := NewErrorWithSuggestion(base, "").Error(); got != "something failed" {
		t.Errorf("Error() without suggestion = %q", got)
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		suggestion string
	}{
		{"missing config", stderrors.New("open /home/u/.unbound/config.yaml: no such file or directory"), "unbound config init"},
		{"permission", stderrors.New("open storage.json: permission denied"), "~/.unbound"},
		{"refused", stderrors.New("dial tcp: connection refused"), "unbound doctor"},
		{"format", stderrors.New("unknown format: xml"), "--output"},
		{"query", stderrors.New("invalid --query expression"), "jmespath.org"},
		{"unrecognized", stderrors.New("something else"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnhanceError(tt.err)
			var ews *ErrorWithSuggestion
			if tt.suggestion == "" {
				if got != tt.err {
					t.Errorf("EnhanceError() = %v, want unchanged", got)
				}
				return
			}
			if !stderrors.As(got, &ews) || !strings.Contains(ews.Suggestion, tt.suggestion) {
				t.Errorf("EnhanceError() = %v, want suggestion containing %q", got, tt.suggestion)
			}
		})
	}

	coded := errors.NewNotAuthenticatedError()
	if EnhanceError(coded) != error(coded) {
		t.Error("coded errors should pass through unchanged")
	}
	if EnhanceError(nil) != nil {
		t.Error("EnhanceError(nil) should be nil")
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil, "ctx") != nil {
		t.Error("FormatError(nil) should be nil")
	}
	err := FormatError(stderrors.New("boom"), "loading fests")
	if err.Error() != "loading fests: boom" {
		t.Errorf("FormatError() = %q", err.Error())
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(true)

	RenderError(&buf, styles, errors.NewNetworkUnavailableError(stderrors.New("dial tcp 127.0.0.1:8081: connect: connection refused")))
	out := buf.String()

	for _, want := range []string{"Error: Network unavailable", "[NET-002]", "connection refused", "unbound doctor", "docs:"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderError output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	RenderError(&buf, styles, stderrors.New("plain failure"))
	if !strings.HasPrefix(buf.String(), "Error: plain failure") {
		t.Errorf("plain error output = %q", buf.String())
	}

	buf.Reset()
	RenderError(&buf, styles, nil)
	if buf.Len() != 0 {
		t.Errorf("nil error should print nothing, got %q", buf.String())
	}
}
