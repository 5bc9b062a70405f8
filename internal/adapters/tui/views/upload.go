package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// UploadKeyMap defines key bindings for the upload view
type UploadKeyMap struct {
	Submit  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

var UploadKeys = UploadKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "load"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss/back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

const formatExample = `{
  "title": "Roadmap title",
  "description": "What the roadmap covers",
  "topics": [
    {
      "id": "topic-1",
      "title": "Topic 1",
      "description": "What to learn",
      "resources": ["https://example.com"]
    }
  ]
}`

// UploadModel asks for the path of a roadmap document
type UploadModel struct {
	ViewState
	deps    Deps
	path    *PathInput
	loading bool
}

// NewUploadModel creates a new upload view
func NewUploadModel(deps Deps) *UploadModel {
	return &UploadModel{
		deps: deps,
		path: NewPathInput("Roadmap file (JSON or YAML)", "~/roadmaps/go.json"),
	}
}

// Init initializes the upload view
func (m *UploadModel) Init() tea.Cmd {
	return m.path.Init()
}

// Reset clears the path input
func (m *UploadModel) Reset() {
	m.path.Reset()
	m.loading = false
	m.ClearMessage()
}

// Update handles messages for the upload view
func (m *UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case OperationFailedMsg:
		m.loading = false
		m.ClearMessage()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, UploadKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, UploadKeys.Dismiss):
			if m.deps.State.ErrorMessage() != "" {
				m.deps.State.DismissError()
				return m, nil
			}
			if m.deps.State.HasRoadmap() {
				return m, func() tea.Msg { return SwitchToOverviewMsg{} }
			}
			return m, nil

		case key.Matches(msg, UploadKeys.Submit):
			path := m.path.Value()
			if path == "" || m.loading {
				return m, nil
			}
			m.loading = true
			m.SetMessage("Loading "+path+"...", false)
			return m, ImportCmd(m.deps, path)
		}
	}

	return m, m.path.Update(msg)
}

// View renders the upload view
func (m *UploadModel) View() string {
	v := NewViewBuilder().
		Title("roadtrack").
		Subtitle("Load a learning roadmap to start tracking").
		Banner(m.deps.State.ErrorMessage())

	if m.deps.State.ErrorMessage() == "" {
		v.Message(m.Message, m.MessageErr)
	}

	v.Line(m.path.View()).
		BlankLine().
		Help(UploadKeys.Submit, completeKey, UploadKeys.Dismiss, UploadKeys.Quit).
		BlankLine().BlankLine().
		Section("Expected format").
		Muted(formatExample)

	return v.String()
}
