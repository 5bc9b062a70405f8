package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"roadtrack/internal/application"
	"roadtrack/internal/domain"
	"roadtrack/internal/ports"
)

// exportDateLayout matches JavaScript's Date.toISOString
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// ExportDocument is the roadmap with the user's progress attached
type ExportDocument struct {
	domain.Roadmap
	ExportDate   string                           `json:"exportDate"`
	UserProgress map[string]domain.ProgressRecord `json:"userProgress"`
}

// BuildExportDocument combines a snapshot into an export document
func BuildExportDocument(snap application.Snapshot) (*ExportDocument, error) {
	if snap.Roadmap == nil {
		return nil, &application.ExportError{Reason: application.ErrNothingToExport}
	}
	progress := snap.Progress
	if progress == nil {
		progress = map[string]domain.ProgressRecord{}
	}
	return &ExportDocument{
		Roadmap:      *snap.Roadmap,
		ExportDate:   snap.Taken.UTC().Format(exportDateLayout),
		UserProgress: progress,
	}, nil
}

// ExportFileName returns the download name for an export taken at snap.Taken
func ExportFileName(snap application.Snapshot) string {
	return fmt.Sprintf("roadmap-progress-%d.json", snap.Taken.UnixMilli())
}

// ExportProgressResult contains the result of an export
type ExportProgressResult struct {
	FileName string
	Location string // where the sink wrote the file, empty without a sink
	Data     []byte
	Message  string
}

// ExportProgressCommand serializes the roadmap and its progress
type ExportProgressCommand struct {
	state *application.State
	sink  ports.ExportSink
}

// NewExportProgressCommand creates a new ExportProgressCommand.
// A nil sink only returns the encoded document.
func NewExportProgressCommand(state *application.State, sink ports.ExportSink) *ExportProgressCommand {
	return &ExportProgressCommand{
		state: state,
		sink:  sink,
	}
}

// Execute runs the export command
func (c *ExportProgressCommand) Execute(ctx context.Context) (*ExportProgressResult, error) {
	snap := c.state.Snapshot()

	doc, err := BuildExportDocument(snap)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &application.ExportError{Reason: err}
	}

	result := &ExportProgressResult{
		FileName: ExportFileName(snap),
		Data:     data,
	}
	if c.sink == nil {
		result.Message = fmt.Sprintf("Exported %d topics", len(doc.Topics))
		return result, nil
	}

	location, err := c.sink.WriteExport(ctx, result.FileName, data)
	if err != nil {
		return nil, &application.ExportError{Reason: err}
	}
	result.Location = location
	result.Message = fmt.Sprintf("Saved progress to %s", location)
	return result, nil
}
