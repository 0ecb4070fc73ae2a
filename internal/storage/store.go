// Package storage provides the durable client storage that backs the session.
//
// The layout is two string entries, KeyToken and KeyUser, which are always
// written together and cleared together. Backends are interchangeable; pick
// one with Open.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/ShubhamSPawade/unbound/internal/errors"
	"github.com/ShubhamSPawade/unbound/internal/log"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is a small string key/value store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes a single entry.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// SetAll writes every entry in one step. Either all entries are
	// written or none are.
	SetAll(ctx context.Context, entries map[string]string) error

	// RemoveAll deletes every listed key in one step.
	RemoveAll(ctx context.Context, keys ...string) error

	// Close releases backend resources.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

// ParseBackend converts a configuration string to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendMemory, BackendFile, BackendRedis:
		return b, nil
	case "":
		return BackendFile, nil
	default:
		return "", errors.NewConfigInvalidError(fmt.Sprintf("unknown storage backend %q (want memory, file or redis)", s))
	}
}

// Config selects and configures a backend.
type Config struct {
	Backend   string `json:"backend" yaml:"backend" env:"BACKEND"`
	Path      string `json:"path" yaml:"path" env:"PATH"`
	RedisAddr string `json:"redis_addr" yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB   int    `json:"redis_db" yaml:"redis_db" env:"REDIS_DB"`
	Namespace string `json:"namespace" yaml:"namespace" env:"NAMESPACE"`
}

// DefaultPath returns ~/.unbound/storage.json, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".unbound", "storage.json")
	}
	return filepath.Join(home, ".unbound", "storage.json")
}

// DefaultConfig returns a file-backed configuration.
func DefaultConfig() Config {
	return Config{
		Backend:   string(BackendFile),
		Path:      DefaultPath(),
		RedisAddr: "localhost:6379",
		Namespace: "default",
	}
}

// Open builds the Store described by cfg.
func Open(cfg Config, logger *log.Logger) (Store, error) {
	backend, err := ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	logger = log.OrDefault(logger).Component("storage")

	switch backend {
	case BackendMemory:
		logger.Debug("using memory storage")
		return NewMemoryStore(), nil
	case BackendRedis:
		logger.Debug("using redis storage", "addr", cfg.RedisAddr, "db", cfg.RedisDB, "namespace", cfg.Namespace)
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return NewRedisStore(client, cfg.Namespace), nil
	default:
		path := cfg.Path
		if path == "" {
			path = DefaultPath()
		}
		logger.Debug("using file storage", "path", path)
		return NewFileStore(path), nil
	}
}

func validateKey(key string) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}
	return nil
}
