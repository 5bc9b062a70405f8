package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"roadtrack/internal/adapters/tui/views"
	"roadtrack/internal/application"
	"roadtrack/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewUpload ViewState = iota
	ViewOverview
	ViewDetail
	ViewHelp
	ViewReset
)

// App is the main TUI application model
type App struct {
	deps   views.Deps
	editor ports.EditorOpener
	logger *zap.Logger

	state    ViewState
	previous ViewState
	upload   *views.UploadModel
	overview *views.OverviewModel
	detail   *views.DetailModel
	help     *views.HelpModel
	reset    *views.ResetModel

	pendingImport string

	width  int
	height int
}

// NewApp creates a new TUI application. ed and links may be nil to
// disable $EDITOR and opening resource links.
func NewApp(ctx context.Context, state *application.State, reader ports.DocumentReader, sink ports.ExportSink, ed ports.EditorOpener, links ports.LinkOpener, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := views.Deps{Ctx: ctx, State: state, Reader: reader, Sink: sink, Links: links}

	a := &App{
		deps:     deps,
		editor:   ed,
		logger:   logger,
		state:    ViewUpload,
		upload:   views.NewUploadModel(deps),
		overview: views.NewOverviewModel(deps),
		detail:   views.NewDetailModel(deps),
		help:     views.NewHelpModel(),
		reset:    views.NewResetModel(deps),
	}
	if state.HasRoadmap() {
		a.state = ViewOverview
	}
	return a
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// QueueImport imports path as soon as the program starts
func (a *App) QueueImport(path string) {
	a.pendingImport = path
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	a.overview.Refresh()
	if a.pendingImport != "" {
		return tea.Batch(a.upload.Init(), views.ImportCmd(a.deps, a.pendingImport))
	}
	return a.upload.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.upload.SetSize(msg.Width, msg.Height)
		a.overview.SetSize(msg.Width, msg.Height)
		a.detail.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		a.reset.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToUploadMsg:
		a.upload.Reset()
		a.state = ViewUpload
		return a, a.upload.Init()

	case views.SwitchToOverviewMsg:
		a.overview.Refresh()
		a.state = ViewOverview
		return a, nil

	case views.OpenTopicMsg:
		a.detail.SetTopic(msg.TopicID)
		a.state = ViewDetail
		return a, nil

	case views.SwitchToHelpMsg:
		if a.state != ViewHelp {
			a.previous = a.state
		}
		a.state = ViewHelp
		return a, nil

	case views.CloseHelpMsg:
		a.state = a.previous
		return a, nil

	case views.SwitchToResetMsg:
		a.state = ViewReset
		return a, nil

	// Results
	case views.ImportedMsg:
		a.deps.State.DismissError()
		a.overview.Refresh()
		a.overview.SetMessage(msg.Result.Message, false)
		a.state = ViewOverview
		return a, nil

	case views.ResetDoneMsg:
		a.deps.State.DismissError()
		a.upload.Reset()
		a.upload.SetMessage(msg.Message, false)
		a.overview.Refresh()
		a.state = ViewUpload
		return a, a.upload.Init()

	case views.OperationFailedMsg:
		a.deps.State.Fail(msg.Err)
		if a.state == ViewReset {
			a.state = ViewOverview
		}

	case views.EditNoteInEditorMsg:
		return a, a.openEditor(msg.TopicID, msg.Note)

	case editorFinishedMsg:
		if msg.err != nil {
			a.logger.Warn("editor failed", zap.Error(msg.err))
			a.deps.State.Fail(fmt.Errorf("editor failed: %w", msg.err))
			return a, nil
		}
		return a, views.SetNoteCmd(a.deps, msg.topicID, msg.note)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewUpload:
		_, cmd = a.upload.Update(msg)
	case ViewOverview:
		_, cmd = a.overview.Update(msg)
	case ViewDetail:
		_, cmd = a.detail.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewReset:
		_, cmd = a.reset.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct {
	topicID string
	note    string
	err     error
}

// openEditor writes the note to a temporary file, hands the terminal to the
// editor and reads the file back when it exits
func (a *App) openEditor(topicID, note string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("no editor configured")}
		}
	}

	f, err := os.CreateTemp("", "roadtrack-note-*.md")
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}
	path := f.Name()
	_, err = f.WriteString(note)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		os.Remove(path)
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return editorFinishedMsg{topicID: topicID, err: err}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return editorFinishedMsg{topicID: topicID, err: err}
		}
		return editorFinishedMsg{topicID: topicID, note: strings.TrimRight(string(data), "\n")}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewOverview:
		return a.overview.View()
	case ViewDetail:
		return a.detail.View()
	case ViewHelp:
		return a.help.View()
	case ViewReset:
		return a.reset.View()
	default:
		return a.upload.View()
	}
}
