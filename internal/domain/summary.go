package domain

import (
	"math"
	"time"
)

// Summary holds completion counters for a roadmap
type Summary struct {
	Total      int
	Completed  int
	InProgress int
	Remaining  int // Total - Completed
	Percent    int // rounded completion percentage
}

// Summarize counts the statuses of the roadmap's topics.
// Orphaned records are ignored.
func Summarize(r *Roadmap, store *ProgressStore) Summary {
	var s Summary
	if r == nil {
		return s
	}
	s.Total = len(r.Topics)
	for _, t := range r.Topics {
		switch store.Get(t.ID).Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		}
	}
	s.Remaining = s.Total - s.Completed
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// InvalidDate is shown for deadlines that cannot be parsed
const InvalidDate = "Invalid Date"

var deadlineLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04",
}

// FormatDeadline renders an opaque deadline string for display.
// Unparseable values render as InvalidDate; nothing is rejected.
func FormatDeadline(deadline string) string {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, deadline); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return InvalidDate
}
