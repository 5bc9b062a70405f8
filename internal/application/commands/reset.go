package commands

import (
	"context"

	"roadtrack/internal/application"
)

// ResetCommand forgets the current roadmap and all stored progress
type ResetCommand struct {
	state *application.State
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand(state *application.State) *ResetCommand {
	return &ResetCommand{state: state}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context) (string, error) {
	if err := c.state.Reset(ctx); err != nil {
		return "", err
	}
	return "Roadmap and progress cleared", nil
}
