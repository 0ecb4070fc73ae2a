package gateway

import (
	"context"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/ShubhamSPawade/unbound/internal/storage"
)

// Token returns the bearer token attached to outbound calls, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token and mirrors it to the store. The next
// call carries the new value.
func (c *Client) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return c.ClearToken(ctx)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if err := c.store.Set(ctx, storage.KeyToken, token); err != nil {
		return err
	}
	c.logger.Info("token set", "token_fp", Fingerprint(token))
	return nil
}

// ClearToken drops the bearer token and removes it from the store.
func (c *Client) ClearToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err := c.store.Remove(ctx, storage.KeyToken); err != nil {
		return err
	}
	c.logger.Info("token cleared")
	return nil
}

// Fingerprint returns a short, non-reversible identifier for token so it
// can be correlated in logs without being disclosed.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}
