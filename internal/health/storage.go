package health

import (
	"context"
	"time"

	"github.com/ShubhamSPawade/unbound/internal/storage"
)

// pinger is implemented by stores backed by a server.
type pinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker verifies the session store can be read. It never writes.
type StorageChecker struct {
	store   storage.Store
	backend string
}

// NewStorageChecker creates a checker for store. backend is reported as a detail.
func NewStorageChecker(store storage.Store, backend string) *StorageChecker {
	return &StorageChecker{store: store, backend: backend}
}

// Name returns the name of this health check.
func (c *StorageChecker) Name() string {
	return "session-storage"
}

// Check pings server-backed stores and reads both session keys. A session
// record without a token beside it is reported as degraded.
func (c *StorageChecker) Check(ctx context.Context) *Result {
	start := time.Now()

	if p, ok := c.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return failureResult(err).
				WithDetail("backend", c.backend).
				WithLatency(time.Since(start))
		}
	}

	_, hasToken, err := c.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return failureResult(err).WithDetail("backend", c.backend).WithLatency(time.Since(start))
	}
	_, hasUser, err := c.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return failureResult(err).WithDetail("backend", c.backend).WithLatency(time.Since(start))
	}

	var result *Result
	switch {
	case hasUser && !hasToken:
		result = Degraded("stored session has no token; it will be discarded on next start")
	case hasUser:
		result = Healthy("session stored")
	default:
		result = Healthy("no stored session")
	}

	if fs, ok := c.store.(*storage.FileStore); ok {
		result.WithDetail("path", fs.Path())
	}
	return result.
		WithDetail("backend", c.backend).
		WithDetail("session_present", hasUser).
		WithLatency(time.Since(start))
}
