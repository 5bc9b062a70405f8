package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	"roadtrack/internal/ports"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store closed")

// KV implements ports.KeyValueStore in memory. Nothing survives the process.
type KV struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool
}

// Ensure KV implements KeyValueStore
var _ ports.KeyValueStore = (*KV)(nil)

// NewKV creates an empty in-memory store
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

// Get returns the value stored under key
func (s *KV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key
func (s *KV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data[key] = value
	return nil
}

// Delete removes key; missing keys are not an error
func (s *KV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.data, key)
	return nil
}

// BeginTx starts a batch applied on Commit
func (s *KV) BeginTx(_ context.Context) (ports.KeyValueTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return &kvTx{store: s, writes: make(map[string]*string)}, nil
}

// Dump returns a copy of the stored data
func (s *KV) Dump() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}

// Close marks the store closed
func (s *KV) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// kvTx buffers writes; a nil value means delete
type kvTx struct {
	store  *KV
	writes map[string]*string
	order  []string
	done   bool
}

func (t *kvTx) record(key string, value *string) error {
	if t.done {
		return errors.New("transaction already finished")
	}
	if _, seen := t.writes[key]; !seen {
		t.order = append(t.order, key)
	}
	t.writes[key] = value
	return nil
}

func (t *kvTx) Set(key, value string) error {
	return t.record(key, &value)
}

func (t *kvTx) Delete(key string) error {
	return t.record(key, nil)
}

func (t *kvTx) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.closed {
		return ErrClosed
	}
	for _, key := range t.order {
		if v := t.writes[key]; v != nil {
			t.store.data[key] = *v
		} else {
			delete(t.store.data, key)
		}
	}
	return nil
}

func (t *kvTx) Rollback() error {
	t.done = true
	return nil
}
