package log

import (
	"bytes"
	"os"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{" warning ", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"console", FormatText},
		{"", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if FormatJSON.String() != "json" || FormatText.String() != "text" {
		t.Error("Format.String() mismatch")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelWarn {
		t.Errorf("Level = %v, want WARN", cfg.Level)
	}
	if cfg.Format != FormatText {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
	if cfg.Output != os.Stderr {
		t.Error("Output should be stderr")
	}
}

func TestDefaultLogger(t *testing.T) {
	prev := defaultLogger.Load()
	t.Cleanup(func() { defaultLogger.Store(prev) })

	defaultLogger.Store(nil)
	first := DefaultLogger()
	if first == nil {
		t.Fatal("DefaultLogger() returned nil")
	}
	if DefaultLogger() != first {
		t.Error("DefaultLogger() should be stable")
	}

	var buf bytes.Buffer
	custom := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	SetDefaultLogger(custom)
	if OrDefault(nil) != custom {
		t.Error("OrDefault(nil) should return the installed default")
	}
	other := Discard()
	if OrDefault(other) != other {
		t.Error("OrDefault(l) should return l")
	}
}
