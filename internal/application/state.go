package application

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"roadtrack/internal/domain"
	"roadtrack/internal/ports"
)

// Storage keys, shared with every backend
const (
	KeyRoadmap  = "roadmap"
	KeyProgress = "roadmapProgress"
)

// State owns the current roadmap, the progress store and the error banner.
// It is the single writer of both and mirrors them to a KeyValueStore.
type State struct {
	mu       sync.RWMutex
	kv       ports.KeyValueStore
	logger   *zap.Logger
	now      func() time.Time
	roadmap  *domain.Roadmap
	progress *domain.ProgressStore
	errMsg   string
}

// Option configures a State
type Option func(*State)

// WithClock overrides the time source used for exports
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithLogger sets the logger; a no-op logger is used otherwise
func WithLogger(logger *zap.Logger) Option {
	return func(s *State) { s.logger = logger }
}

// NewState creates an empty state backed by kv
func NewState(kv ports.KeyValueStore, opts ...Option) *State {
	s := &State{
		kv:       kv,
		logger:   zap.NewNop(),
		now:      time.Now,
		progress: domain.NewProgressStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the roadmap and progress from storage.
// Corrupt values are recovered locally: a bad roadmap is discarded and its
// key removed, bad progress is dropped leaving the store empty.
// Only storage access failures are returned.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, KeyRoadmap)
	if err != nil {
		return fmt.Errorf("failed to read roadmap: %w", err)
	}
	if ok {
		roadmap, err := ParseRoadmap(&ports.Document{Name: KeyRoadmap, Data: []byte(raw), Format: ports.FormatJSON})
		if err != nil {
			s.logger.Debug("discarding stored roadmap",
				zap.Error(&StorageDecodeError{Key: KeyRoadmap, Err: err}))
			if err := s.kv.Delete(ctx, KeyRoadmap); err != nil {
				s.logger.Warn("failed to remove corrupt roadmap", zap.Error(err))
			}
		} else {
			s.roadmap = roadmap
		}
	}

	raw, ok, err = s.kv.Get(ctx, KeyProgress)
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}
	if ok {
		store := domain.NewProgressStore()
		if err := json.Unmarshal([]byte(raw), store); err != nil {
			s.logger.Debug("discarding stored progress",
				zap.Error(&StorageDecodeError{Key: KeyProgress, Err: err}))
		} else {
			s.progress = store
		}
	}

	s.logger.Debug("state loaded",
		zap.Bool("roadmap", s.roadmap != nil),
		zap.Int("records", s.progress.Len()))
	return nil
}

// Roadmap returns a copy of the current roadmap, or nil when none is loaded
func (s *State) Roadmap() *domain.Roadmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRoadmap(s.roadmap)
}

// HasRoadmap reports whether a roadmap is loaded
func (s *State) HasRoadmap() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roadmap != nil
}

// Record returns the progress of a topic, defaulting when none is stored
func (s *State) Record(topicID string) domain.ProgressRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress.Get(topicID)
}

// Progress returns a copy of every stored record, orphans included
func (s *State) Progress() map[string]domain.ProgressRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress.Snapshot()
}

// Orphans returns stored record IDs that the current roadmap does not reference
func (s *State) Orphans() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress.Orphans(s.roadmap)
}

// Summary returns completion counters for the current roadmap
func (s *State) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.roadmap, s.progress)
}

// Snapshot is a consistent view of the roadmap and its progress
type Snapshot struct {
	Roadmap  *domain.Roadmap
	Progress map[string]domain.ProgressRecord
	Taken    time.Time
}

// Snapshot captures roadmap and progress under one lock
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Roadmap:  cloneRoadmap(s.roadmap),
		Progress: s.progress.Snapshot(),
		Taken:    s.now(),
	}
}

// Install makes roadmap current and seeds default records for its new topics.
// Existing records are never overwritten. The roadmap and the store are
// written in one transaction; a write failure is returned but the in-memory
// state keeps the import.
func (s *State) Install(ctx context.Context, roadmap *domain.Roadmap) (map[string]domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roadmap = cloneRoadmap(roadmap)
	seeded := s.progress.Seed(roadmap.Topics)

	s.logger.Info("roadmap imported",
		zap.String("title", roadmap.Title),
		zap.Int("topics", len(roadmap.Topics)),
		zap.Int("seeded", len(seeded)))

	if err := s.persistAll(ctx); err != nil {
		return seeded, err
	}
	return seeded, nil
}

// UpdateProgress merges patch into the topic's record and persists the store
func (s *State) UpdateProgress(ctx context.Context, topicID string, patch domain.ProgressPatch) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.progress.Update(topicID, patch)
	s.logger.Debug("progress updated",
		zap.String("topic", topicID),
		zap.String("status", string(rec.Status)))

	if err := s.persistProgress(ctx); err != nil {
		return rec, err
	}
	return rec, nil
}

// ReplaceProgress swaps the whole store and persists it
func (s *State) ReplaceProgress(ctx context.Context, records map[string]domain.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.Replace(records)
	return s.persistProgress(ctx)
}

// Reset forgets the roadmap and every progress record
func (s *State) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roadmap = nil
	s.progress.Clear()
	s.logger.Info("state reset")

	tx, err := s.kv.BeginTx(ctx)
	if err != nil {
		return s.storageFailure("begin reset", err)
	}
	if err := tx.Delete(KeyRoadmap); err != nil {
		tx.Rollback()
		return s.storageFailure("delete roadmap", err)
	}
	if err := tx.Delete(KeyProgress); err != nil {
		tx.Rollback()
		return s.storageFailure("delete progress", err)
	}
	if err := tx.Commit(); err != nil {
		return s.storageFailure("commit reset", err)
	}
	return nil
}

// Fail records err as the banner message and returns the message
func (s *State) Fail(err error) string {
	if err == nil {
		return ""
	}
	msg := UserMessage(err)
	s.logger.Info("operation failed", zap.Error(err))

	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	return msg
}

// ErrorMessage returns the current banner message, empty when none
func (s *State) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// DismissError clears the banner message
func (s *State) DismissError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// persistAll writes roadmap and progress together. Caller holds the lock.
func (s *State) persistAll(ctx context.Context) error {
	roadmapJSON, err := json.Marshal(s.roadmap)
	if err != nil {
		return fmt.Errorf("failed to encode roadmap: %w", err)
	}
	progressJSON, err := json.Marshal(s.progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	tx, err := s.kv.BeginTx(ctx)
	if err != nil {
		return s.storageFailure("begin import", err)
	}
	if err := tx.Set(KeyRoadmap, string(roadmapJSON)); err != nil {
		tx.Rollback()
		return s.storageFailure("write roadmap", err)
	}
	if s.progress.Len() > 0 {
		err = tx.Set(KeyProgress, string(progressJSON))
	} else {
		err = tx.Delete(KeyProgress)
	}
	if err != nil {
		tx.Rollback()
		return s.storageFailure("write progress", err)
	}
	if err := tx.Commit(); err != nil {
		return s.storageFailure("commit import", err)
	}
	return nil
}

// persistProgress writes the full store, removing the key when it is empty.
// Caller holds the lock.
func (s *State) persistProgress(ctx context.Context) error {
	if s.progress.Len() == 0 {
		if err := s.kv.Delete(ctx, KeyProgress); err != nil {
			return s.storageFailure("delete progress", err)
		}
		return nil
	}
	data, err := json.Marshal(s.progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := s.kv.Set(ctx, KeyProgress, string(data)); err != nil {
		return s.storageFailure("write progress", err)
	}
	return nil
}

func (s *State) storageFailure(op string, err error) error {
	s.logger.Warn("storage write failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", op, err)
}

func cloneRoadmap(r *domain.Roadmap) *domain.Roadmap {
	if r == nil {
		return nil
	}
	c := *r
	c.Topics = make([]domain.Topic, len(r.Topics))
	for i, t := range r.Topics {
		t.Resources = slices.Clone(t.Resources)
		c.Topics[i] = t
	}
	return &c
}
