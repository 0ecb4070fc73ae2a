package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is a log severity.
type Level = slog.Level

// Levels, from request tracing up to failed calls.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ParseLevel maps a configuration value to a Level. Unknown values map to
// LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the record encoding.
type Format int

const (
	// FormatText is logfmt-style key=value output for terminals.
	FormatText Format = iota
	// FormatJSON is one JSON object per record, for log shippers.
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat maps a configuration value to a Format. Anything but "json"
// is text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format

	// Output receives the records. Command results own stdout, so the CLI
	// passes stderr. Nil means stderr.
	Output io.Writer

	// AddSource adds the file and line of the call site.
	AddSource bool

	// ServiceVersion is attached to every record as "version" when set.
	ServiceVersion string

	// Redact lists extra attribute keys whose values are never written.
	// DefaultRedactKeys always apply.
	Redact []string
}

// DefaultConfig logs warnings and errors as text to stderr, which keeps an
// interactive terminal quiet unless something goes wrong.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}
