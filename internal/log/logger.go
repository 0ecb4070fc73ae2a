// Package log is the client's structured logger, a thin layer over slog.
//
// Components take a *Logger at construction and tag themselves with
// Component. Credentials never reach the output: attributes named like
// DefaultRedactKeys are replaced before encoding, and callers log a token
// fingerprint (token_fp) instead of the token.
package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// Logger writes structured records.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger from config.
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:       config.Level,
		AddSource:   config.AddSource,
		ReplaceAttr: redactor(config.Redact),
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	base := slog.New(handler).With("service", "unbound")
	if config.ServiceVersion != "" {
		base = base.With("version", config.ServiceVersion)
	}
	return &Logger{slog: base}
}

// Discard returns a Logger that writes nowhere.
func Discard() *Logger {
	return &Logger{slog: slog.New(slog.DiscardHandler)}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// Component tags every record with the emitting component (gateway,
// session, storage, cli).
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// WithError adds err to every record. Coded errors contribute their code,
// HTTP status and cause.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	ue, ok := errors.As(err)
	if !ok {
		return l.With("error", err.Error())
	}

	args := []any{"error", ue.Message, "error_code", string(ue.Code)}
	if ue.StatusCode != 0 {
		args = append(args, "status", ue.StatusCode)
	}
	if ue.Cause != nil {
		args = append(args, "cause", ue.Cause.Error())
	}
	return l.With(args...)
}

// WithContext adds the request id carried by ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id, ok := RequestIDFrom(ctx); ok {
		return l.With("request_id", id)
	}
	return l
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Success logs a completed credential workflow at INFO with outcome=success.
func (l *Logger) Success(msg string, args ...any) {
	l.slog.Info(msg, append([]any{"outcome", "success"}, args...)...)
}

// Enabled reports whether records at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l.slog.Enabled(context.Background(), level)
}

type requestIDKey struct{}

// ContextWithRequestID stores the X-Request-ID of an outbound call.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by ContextWithRequestID.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
