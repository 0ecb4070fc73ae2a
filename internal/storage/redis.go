package storage

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// RedisStore keeps entries in Redis under a namespace so several independent
// sessions can share one server.
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisStore creates a store using client. Keys are stored as
// "unbound:<namespace>:<key>".
func NewRedisStore(client redis.UniversalClient, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStore{client: client, namespace: namespace}
}

func (r *RedisStore) key(k string) string {
	return fmt.Sprintf("unbound:%s:%s", r.namespace, k)
}

// Get returns the value for key.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	result, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errors.Wrap(errors.ErrCodeStoreRead, "redis get", err)
	}
	return result, true, nil
}

// Set writes a single entry without expiry.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "redis set", err)
	}
	return nil
}

// Remove deletes key.
func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "redis del", err)
	}
	return nil
}

// SetAll writes every entry inside MULTI/EXEC.
func (r *RedisStore) SetAll(ctx context.Context, entries map[string]string) error {
	for k := range entries {
		if err := validateKey(k); err != nil {
			return err
		}
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "redis multi set", err)
	}
	return nil
}

// RemoveAll deletes every listed key with one DEL.
func (r *RedisStore) RemoveAll(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.key(k))
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "redis del", err)
	}
	return nil
}

// Ping checks connectivity to the server.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreRead, "redis ping", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
