package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"roadtrack/internal/adapters/tui/styles"
	"roadtrack/internal/application/commands"
)

// ResetKeyMap defines key bindings for the reset confirmation
type ResetKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ResetKeys = ResetKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "forget everything"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "keep"),
	),
}

// ResetModel asks before forgetting the roadmap and all progress
type ResetModel struct {
	ViewState
	deps Deps
}

// NewResetModel creates a new reset confirmation view
func NewResetModel(deps Deps) *ResetModel {
	return &ResetModel{deps: deps}
}

// Init initializes the reset view
func (m *ResetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reset view
func (m *ResetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ResetKeys.Cancel):
			return m, func() tea.Msg { return SwitchToOverviewMsg{} }
		case key.Matches(msg, ResetKeys.Confirm):
			return m, resetCmd(m.deps)
		}
	}
	return m, nil
}

func resetCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		message, err := commands.NewResetCommand(deps.State).Execute(deps.context())
		if err != nil {
			return failed(err)
		}
		return ResetDoneMsg{Message: message}
	}
}

// View renders the reset confirmation view
func (m *ResetModel) View() string {
	summary := m.deps.State.Summary()

	v := NewViewBuilder().
		Title("Reset roadmap").
		Line(styles.ErrorMsg.Render("This cannot be undone.")).
		BlankLine()

	if roadmap := m.deps.State.Roadmap(); roadmap != nil {
		v.Line(RenderField("Roadmap", roadmap.Title))
	}
	v.Line(RenderField("Progress records", fmt.Sprint(len(m.deps.State.Progress())))).
		Muted(fmt.Sprintf("  %d of %d topics completed", summary.Completed, summary.Total)).
		BlankLine().
		Muted("Export first with e on the overview to keep a copy.").
		BlankLine().
		Line("Forget the roadmap and all progress?").
		Help(ResetKeys.Confirm, ResetKeys.Cancel)

	return v.String()
}
