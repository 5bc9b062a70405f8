package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"roadtrack/internal/application"
	"roadtrack/internal/application/commands"
	"roadtrack/internal/ports"
)

// Deps are the collaborators every view runs its commands against
type Deps struct {
	Ctx    context.Context
	State  *application.State
	Reader ports.DocumentReader
	Sink   ports.ExportSink
	Links  ports.LinkOpener
}

func (d Deps) context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// View switching messages
type (
	SwitchToUploadMsg   struct{}
	SwitchToOverviewMsg struct{}
	SwitchToHelpMsg     struct{}
	SwitchToResetMsg    struct{}
	OpenTopicMsg        struct{ TopicID string }
)

// LinkOpenedMsg reports the outcome of opening a resource link
type LinkOpenedMsg struct {
	URL string
	Err error
}

// OperationFailedMsg carries an error for the banner
type OperationFailedMsg struct {
	Err error
}

// ImportedMsg indicates a successful import
type ImportedMsg struct {
	Result *commands.ImportRoadmapResult
}

// ExportedMsg indicates a successful export
type ExportedMsg struct {
	Result *commands.ExportProgressResult
}

// ResetDoneMsg indicates roadmap and progress were cleared
type ResetDoneMsg struct {
	Message string
}

// ProgressUpdatedMsg indicates a topic record changed
type ProgressUpdatedMsg struct {
	Result *commands.ProgressResult
}

// EditNoteInEditorMsg asks the app to open the note in $EDITOR
type EditNoteInEditorMsg struct {
	TopicID string
	Note    string
}

// CopiedMsg reports the outcome of a clipboard copy
type CopiedMsg struct {
	Text string
	Err  error
}

func failed(err error) tea.Msg {
	return OperationFailedMsg{Err: err}
}

// ImportCmd imports the document at path
func ImportCmd(deps Deps, path string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewImportRoadmapCommand(deps.State, deps.Reader, path).Execute(deps.context())
		if err != nil {
			return failed(err)
		}
		return ImportedMsg{Result: result}
	}
}

// ExportCmd writes the progress export through the sink
func ExportCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewExportProgressCommand(deps.State, deps.Sink).Execute(deps.context())
		if err != nil {
			return failed(err)
		}
		return ExportedMsg{Result: result}
	}
}

// SetNoteCmd saves note for topicID
func SetNoteCmd(deps Deps, topicID, note string) tea.Cmd {
	return func() tea.Msg {
		return progressMsg(commands.NewSetNoteCommand(deps.State, topicID, note).Execute(deps.context()))
	}
}

func progressMsg(result *commands.ProgressResult, err error) tea.Msg {
	if err != nil {
		return failed(err)
	}
	return ProgressUpdatedMsg{Result: result}
}
