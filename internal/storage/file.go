package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ShubhamSPawade/unbound/internal/errors"
)

// FileStore persists entries as a single JSON object on disk.
//
// Every call re-reads the file so separate processes observe each other's
// writes. Writes go to a temp file in the same directory and are renamed
// into place, so readers never see a partial document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path. The file and its directory
// are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the value for key.
func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

// Set writes a single entry.
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	return f.SetAll(ctx, map[string]string{key: value})
}

// Remove deletes key.
func (f *FileStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return f.RemoveAll(ctx, key)
}

// SetAll writes every entry with a single file replace.
func (f *FileStore) SetAll(_ context.Context, entries map[string]string) error {
	for k := range entries {
		if err := validateKey(k); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	for k, v := range entries {
		doc[k] = v
	}
	return f.save(doc)
}

// RemoveAll deletes every listed key with a single file replace.
func (f *FileStore) RemoveAll(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}

	changed := false
	for _, k := range keys {
		if _, ok := doc[k]; ok {
			delete(doc, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.save(doc)
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrap(errors.ErrCodeStoreRead, fmt.Sprintf("failed to read %s", f.path), err)
	}

	doc := make(map[string]string)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreCorrupt, fmt.Sprintf("%s is not a valid storage document", f.path), err).
			WithSuggestion(fmt.Sprintf("Remove %s and log in again", f.path))
	}
	return doc, nil
}

func (f *FileStore) save(doc map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, fmt.Sprintf("failed to create %s", dir), err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to encode storage document", err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write temp file", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() //nolint:errcheck,gosec // chmod error takes precedence
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to set permissions", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to close temp file", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, fmt.Sprintf("failed to replace %s", f.path), err)
	}
	return nil
}
