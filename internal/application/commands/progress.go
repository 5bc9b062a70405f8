package commands

import (
	"context"
	"fmt"

	"roadtrack/internal/application"
	"roadtrack/internal/domain"
)

// ProgressResult contains the record of a topic after a mutation
type ProgressResult struct {
	TopicID string
	Record  domain.ProgressRecord
	Message string
}

// checkTopic verifies a roadmap is loaded and contains topicID
func checkTopic(state *application.State, topicID string) error {
	if topicID == "" {
		return &application.ValidationError{Field: "topicID", Message: "topic ID is required"}
	}
	roadmap := state.Roadmap()
	if roadmap == nil {
		return application.ErrNoRoadmap
	}
	if _, ok := roadmap.FindTopic(topicID); !ok {
		return &application.TopicError{TopicID: topicID}
	}
	return nil
}

// SetStatusCommand changes the status of a topic
type SetStatusCommand struct {
	state   *application.State
	TopicID string
	Status  string
}

// NewSetStatusCommand creates a new SetStatusCommand
func NewSetStatusCommand(state *application.State, topicID, status string) *SetStatusCommand {
	return &SetStatusCommand{
		state:   state,
		TopicID: topicID,
		Status:  status,
	}
}

// Validate checks the topic and the status value
func (c *SetStatusCommand) Validate() error {
	if _, err := application.ParseStatus(c.Status); err != nil {
		return err
	}
	return checkTopic(c.state, c.TopicID)
}

// Execute runs the set status command
func (c *SetStatusCommand) Execute(ctx context.Context) (*ProgressResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	status := domain.Status(c.Status)
	rec, err := c.state.UpdateProgress(ctx, c.TopicID, domain.ProgressPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	return &ProgressResult{
		TopicID: c.TopicID,
		Record:  rec,
		Message: fmt.Sprintf("%s -> %s", c.TopicID, status.Label()),
	}, nil
}

// SetNoteCommand replaces the note of a topic; an empty note deletes it
type SetNoteCommand struct {
	state   *application.State
	TopicID string
	Note    string
}

// NewSetNoteCommand creates a new SetNoteCommand
func NewSetNoteCommand(state *application.State, topicID, note string) *SetNoteCommand {
	return &SetNoteCommand{
		state:   state,
		TopicID: topicID,
		Note:    note,
	}
}

// Validate checks the topic
func (c *SetNoteCommand) Validate() error {
	return checkTopic(c.state, c.TopicID)
}

// Execute runs the set note command
func (c *SetNoteCommand) Execute(ctx context.Context) (*ProgressResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note := c.Note
	rec, err := c.state.UpdateProgress(ctx, c.TopicID, domain.ProgressPatch{Note: &note})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Saved note for %s", c.TopicID)
	if note == "" {
		msg = fmt.Sprintf("Deleted note for %s", c.TopicID)
	}
	return &ProgressResult{TopicID: c.TopicID, Record: rec, Message: msg}, nil
}

// SetDeadlineCommand sets or clears the deadline of a topic.
// The date is stored as given and only interpreted for display.
type SetDeadlineCommand struct {
	state    *application.State
	TopicID  string
	Deadline string
}

// NewSetDeadlineCommand creates a new SetDeadlineCommand
func NewSetDeadlineCommand(state *application.State, topicID, deadline string) *SetDeadlineCommand {
	return &SetDeadlineCommand{
		state:    state,
		TopicID:  topicID,
		Deadline: deadline,
	}
}

// Validate checks the topic
func (c *SetDeadlineCommand) Validate() error {
	return checkTopic(c.state, c.TopicID)
}

// Execute runs the set deadline command
func (c *SetDeadlineCommand) Execute(ctx context.Context) (*ProgressResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	patch := domain.ProgressPatch{ClearDeadline: c.Deadline == ""}
	if c.Deadline != "" {
		deadline := c.Deadline
		patch.Deadline = &deadline
	}

	rec, err := c.state.UpdateProgress(ctx, c.TopicID, patch)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Cleared deadline for %s", c.TopicID)
	if rec.HasDeadline() {
		msg = fmt.Sprintf("Deadline for %s: %s", c.TopicID, domain.FormatDeadline(rec.DeadlineValue()))
	}
	return &ProgressResult{TopicID: c.TopicID, Record: rec, Message: msg}, nil
}
