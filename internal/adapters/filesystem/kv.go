package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"roadtrack/internal/ports"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
	kvSuffix  = ".json"
)

// KV implements ports.KeyValueStore with one file per key inside a directory.
// Every write replaces the file atomically.
type KV struct {
	mu  sync.Mutex
	dir string
}

// Ensure KV implements KeyValueStore
var _ ports.KeyValueStore = (*KV)(nil)

// NewKV creates a store rooted at dir, creating it if needed
func NewKV(dir string) (*KV, error) {
	dir = expandHome(dir)
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &KV{dir: dir}, nil
}

// Dir returns the directory holding the key files
func (s *KV) Dir() string {
	return s.dir
}

func (s *KV) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+kvSuffix), nil
}

// Get reads the value stored under key
func (s *KV) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set replaces the value for key
func (s *KV) Set(_ context.Context, key, value string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeKeyFile(path, value)
}

// Delete removes key; deleting a missing key is not an error
func (s *KV) Delete(_ context.Context, key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return removeKeyFile(path)
}

// BeginTx starts a transaction that buffers writes until Commit
func (s *KV) BeginTx(_ context.Context) (ports.KeyValueTx, error) {
	return &kvTx{store: s}, nil
}

// Close is a no-op; files are closed after every operation
func (s *KV) Close() error {
	return nil
}

func writeKeyFile(path, value string) error {
	if err := atomic.WriteFile(path, strings.NewReader(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	return nil
}

func removeKeyFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
	}
	return nil
}

type pendingWrite struct {
	path   string
	value  string
	delete bool
}

// kvTx implements ports.KeyValueTx.
// Each file is replaced atomically; the batch is applied under the store lock.
type kvTx struct {
	store  *KV
	writes []pendingWrite
	done   bool
}

var _ ports.KeyValueTx = (*kvTx)(nil)

var errTxDone = errors.New("transaction already finished")

func (t *kvTx) Set(key, value string) error {
	if t.done {
		return errTxDone
	}
	path, err := t.store.keyPath(key)
	if err != nil {
		return err
	}
	t.writes = append(t.writes, pendingWrite{path: path, value: value})
	return nil
}

func (t *kvTx) Delete(key string) error {
	if t.done {
		return errTxDone
	}
	path, err := t.store.keyPath(key)
	if err != nil {
		return err
	}
	t.writes = append(t.writes, pendingWrite{path: path, delete: true})
	return nil
}

func (t *kvTx) Commit() error {
	if t.done {
		return errTxDone
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, w := range t.writes {
		var err error
		if w.delete {
			err = removeKeyFile(w.path)
		} else {
			err = writeKeyFile(w.path, w.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *kvTx) Rollback() error {
	t.done = true
	t.writes = nil
	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
