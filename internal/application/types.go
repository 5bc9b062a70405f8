package application

import "roadtrack/internal/domain"

// Re-export domain types for use by adapters
type (
	Roadmap        = domain.Roadmap
	Topic          = domain.Topic
	Status         = domain.Status
	ProgressRecord = domain.ProgressRecord
	ProgressPatch  = domain.ProgressPatch
	Summary        = domain.Summary
)

const (
	StatusNotStarted = domain.StatusNotStarted
	StatusInProgress = domain.StatusInProgress
	StatusCompleted  = domain.StatusCompleted
)

// FormatDeadline renders a stored deadline for display
func FormatDeadline(deadline string) string {
	return domain.FormatDeadline(deadline)
}
