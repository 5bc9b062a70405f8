package commands

import (
	"context"
	"fmt"

	"roadtrack/internal/application"
	"roadtrack/internal/domain"
	"roadtrack/internal/ports"
)

// ImportRoadmapResult contains the result of importing a roadmap
type ImportRoadmapResult struct {
	Roadmap *domain.Roadmap
	Seeded  map[string]domain.ProgressRecord
	Message string
}

// ImportRoadmapCommand validates a roadmap document and makes it current.
// Progress already stored for the roadmap's topics is kept as is.
type ImportRoadmapCommand struct {
	state    *application.State
	reader   ports.DocumentReader
	Path     string
	Document *ports.Document
}

// NewImportRoadmapCommand creates a command that reads the document at path
func NewImportRoadmapCommand(state *application.State, reader ports.DocumentReader, path string) *ImportRoadmapCommand {
	return &ImportRoadmapCommand{
		state:  state,
		reader: reader,
		Path:   path,
	}
}

// NewImportDocumentCommand creates a command for an already loaded document
func NewImportDocumentCommand(state *application.State, doc *ports.Document) *ImportRoadmapCommand {
	return &ImportRoadmapCommand{
		state:    state,
		Document: doc,
	}
}

// Validate checks that there is something to import
func (c *ImportRoadmapCommand) Validate() error {
	if c.Document != nil {
		return nil
	}
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the import command
func (c *ImportRoadmapCommand) Execute(ctx context.Context) (*ImportRoadmapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	doc := c.Document
	if doc == nil {
		var err error
		doc, err = c.reader.ReadDocument(ctx, c.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", c.Path, err)
		}
	}

	roadmap, err := application.ParseRoadmap(doc)
	if err != nil {
		return nil, err
	}

	seeded, err := c.state.Install(ctx, roadmap)
	if err != nil {
		return nil, err
	}

	return &ImportRoadmapResult{
		Roadmap: roadmap,
		Seeded:  seeded,
		Message: fmt.Sprintf("Imported %q: %d topics, %d new progress records",
			roadmap.Title, len(roadmap.Topics), len(seeded)),
	}, nil
}
