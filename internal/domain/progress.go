package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Status is the completion state of a topic
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// Label returns a human-readable label for the status
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ProgressRecord is the tracked state of one topic
type ProgressRecord struct {
	Status   Status  `json:"status"`
	Note     string  `json:"note"`
	Deadline *string `json:"deadline"` // opaque date string, nil when unset
}

// DefaultRecord returns the implicit record of a topic that has no stored progress
func DefaultRecord() ProgressRecord {
	return ProgressRecord{Status: StatusNotStarted}
}

// HasDeadline reports whether a deadline is set
func (r ProgressRecord) HasDeadline() bool {
	return r.Deadline != nil && *r.Deadline != ""
}

// DeadlineValue returns the deadline or the empty string
func (r ProgressRecord) DeadlineValue() string {
	if r.Deadline == nil {
		return ""
	}
	return *r.Deadline
}

// ProgressPatch is a partial update of a ProgressRecord.
// Nil fields are left untouched.
type ProgressPatch struct {
	Status        *Status
	Note          *string
	Deadline      *string
	ClearDeadline bool
}

// Apply returns rec with the patch shallow-merged into it
func (p ProgressPatch) Apply(rec ProgressRecord) ProgressRecord {
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.Note != nil {
		rec.Note = *p.Note
	}
	switch {
	case p.ClearDeadline:
		rec.Deadline = nil
	case p.Deadline != nil:
		if *p.Deadline == "" {
			rec.Deadline = nil
		} else {
			d := *p.Deadline
			rec.Deadline = &d
		}
	}
	return rec
}

// ProgressStore maps topic IDs to their progress records.
// Topics without an entry are reported with DefaultRecord and only
// materialized by Seed or Update.
type ProgressStore struct {
	records map[string]ProgressRecord
}

// NewProgressStore creates an empty store
func NewProgressStore() *ProgressStore {
	return &ProgressStore{records: make(map[string]ProgressRecord)}
}

// Get returns the stored record or the default one; it never fails
func (s *ProgressStore) Get(topicID string) ProgressRecord {
	if rec, ok := s.records[topicID]; ok {
		return rec
	}
	return DefaultRecord()
}

// Has reports whether a record is stored for topicID
func (s *ProgressStore) Has(topicID string) bool {
	_, ok := s.records[topicID]
	return ok
}

// Update merges patch into the existing (or default) record and stores it
func (s *ProgressStore) Update(topicID string, patch ProgressPatch) ProgressRecord {
	rec := patch.Apply(s.Get(topicID))
	s.records[topicID] = rec
	return rec
}

// Seed creates default records for topics that have none yet.
// Existing records win. Returns only the newly created records.
func (s *ProgressStore) Seed(topics []Topic) map[string]ProgressRecord {
	seeded := make(map[string]ProgressRecord)
	for _, t := range topics {
		if t.ID == "" || s.Has(t.ID) {
			continue
		}
		if _, dup := seeded[t.ID]; dup {
			continue
		}
		seeded[t.ID] = DefaultRecord()
	}
	s.Merge(seeded)
	return seeded
}

// Merge adds records whose keys are not present yet
func (s *ProgressStore) Merge(records map[string]ProgressRecord) {
	for id, rec := range records {
		if !s.Has(id) {
			s.records[id] = rec
		}
	}
}

// Replace swaps the whole content of the store
func (s *ProgressStore) Replace(records map[string]ProgressRecord) {
	s.records = make(map[string]ProgressRecord, len(records))
	maps.Copy(s.records, records)
}

// Clear empties the store
func (s *ProgressStore) Clear() {
	clear(s.records)
}

// Len returns the number of stored records, orphans included
func (s *ProgressStore) Len() int {
	return len(s.records)
}

// Snapshot returns a copy of all stored records
func (s *ProgressStore) Snapshot() map[string]ProgressRecord {
	return maps.Clone(s.records)
}

// Orphans returns the sorted IDs of records that no topic of r refers to
func (s *ProgressStore) Orphans(r *Roadmap) []string {
	known := make(map[string]bool)
	for _, id := range r.TopicIDs() {
		known[id] = true
	}
	var orphans []string
	for id := range s.records {
		if !known[id] {
			orphans = append(orphans, id)
		}
	}
	slices.Sort(orphans)
	return orphans
}

// MarshalJSON encodes the store as a plain object keyed by topic ID
func (s *ProgressStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.records)
}

// UnmarshalJSON replaces the store content with the decoded object
func (s *ProgressStore) UnmarshalJSON(data []byte) error {
	var records map[string]ProgressRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	if records == nil {
		records = make(map[string]ProgressRecord)
	}
	s.records = records
	return nil
}
