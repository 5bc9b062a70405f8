package cmd

import (
	"fmt"
	"io"
	"strings"

	"roadtrack/internal/application/commands"
	"roadtrack/internal/domain"
)

const notePreviewLen = 50

func statusMark(s domain.Status) string {
	switch s {
	case domain.StatusCompleted:
		return "[x]"
	case domain.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func printSummary(w io.Writer, s domain.Summary) {
	fmt.Fprintf(w, "%d%% complete  %d/%d topics  (%d in progress, %d remaining)\n",
		s.Percent, s.Completed, s.Total, s.InProgress, s.Remaining)
}

func printTopicLine(w io.Writer, t commands.TopicView) {
	title := t.Topic.Title
	if title == "" {
		title = t.Topic.ID
	}
	line := fmt.Sprintf("%s %-12s %s", statusMark(t.Progress.Status), t.Topic.ID, title)
	if t.Progress.HasDeadline() {
		line += "  due " + domain.FormatDeadline(t.Progress.DeadlineValue())
	}
	fmt.Fprintln(w, line)
	if t.Progress.Note != "" {
		fmt.Fprintf(w, "    %s\n", previewNote(t.Progress.Note))
	}
}

func printTopic(w io.Writer, t commands.TopicView) {
	fmt.Fprintf(w, "%s  %s\n", t.Topic.ID, t.Topic.Title)
	if t.Topic.Description != "" {
		fmt.Fprintf(w, "\n%s\n", t.Topic.Description)
	}
	if len(t.Topic.Resources) > 0 {
		fmt.Fprintln(w, "\nResources:")
		for _, r := range t.Topic.Resources {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	fmt.Fprintf(w, "\nStatus:   %s\n", t.Progress.Status.Label())
	if t.Progress.HasDeadline() {
		fmt.Fprintf(w, "Deadline: %s\n", domain.FormatDeadline(t.Progress.DeadlineValue()))
	}
	if t.Progress.Note != "" {
		fmt.Fprintf(w, "\nNote:\n%s\n", t.Progress.Note)
	}
}

func previewNote(note string) string {
	flat := strings.Join(strings.Fields(note), " ")
	runes := []rune(flat)
	if len(runes) <= notePreviewLen {
		return flat
	}
	return string(runes[:notePreviewLen]) + "..."
}
