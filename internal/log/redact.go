package log

import (
	"log/slog"
	"strings"
)

// Redacted replaces the value of a sensitive attribute.
const Redacted = "[REDACTED]"

// DefaultRedactKeys are attribute keys that carry credentials. Matching
// ignores case and applies inside groups too.
var DefaultRedactKeys = []string{
	"token",
	"password",
	"newpassword",
	"confirmation",
	"authorization",
}

// redactor builds a slog ReplaceAttr hook hiding the values of keys.
func redactor(extra []string) func(groups []string, a slog.Attr) slog.Attr {
	keys := make(map[string]struct{}, len(DefaultRedactKeys)+len(extra))
	for _, k := range DefaultRedactKeys {
		keys[k] = struct{}{}
	}
	for _, k := range extra {
		keys[strings.ToLower(k)] = struct{}{}
	}

	return func(_ []string, a slog.Attr) slog.Attr {
		if _, ok := keys[strings.ToLower(a.Key)]; ok && a.Value.Kind() != slog.KindGroup {
			return slog.String(a.Key, Redacted)
		}
		return a
	}
}
