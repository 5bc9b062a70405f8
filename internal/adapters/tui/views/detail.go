package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"roadtrack/internal/adapters/tui/styles"
	"roadtrack/internal/application/commands"
	"roadtrack/internal/domain"
	"roadtrack/internal/ports"
)

// DetailKeyMap defines key bindings for the topic detail view
type DetailKeyMap struct {
	NotStarted    key.Binding
	InProgress    key.Binding
	Completed     key.Binding
	EditDeadline  key.Binding
	ClearDeadline key.Binding
	EditNote      key.Binding
	EditorNote    key.Binding
	DeleteNote    key.Binding
	Up            key.Binding
	Down          key.Binding
	Copy          key.Binding
	Open          key.Binding
	Back          key.Binding
	Help          key.Binding
	Save          key.Binding
	Cancel        key.Binding
}

var DetailKeys = DetailKeyMap{
	NotStarted: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "not started"),
	),
	InProgress: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "in progress"),
	),
	Completed: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "completed"),
	),
	EditDeadline: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deadline"),
	),
	ClearDeadline: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear deadline"),
	),
	EditNote: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "note"),
	),
	EditorNote: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "note in $EDITOR"),
	),
	DeleteNote: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete note"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "prev link"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next link"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open link"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

type detailMode int

const (
	modeView detailMode = iota
	modeDeadline
	modeNote
)

// DetailModel shows one topic and edits its progress
type DetailModel struct {
	ViewState
	deps     Deps
	topicID  string
	mode     detailMode
	resource int
	deadline textinput.Model
	note     textarea.Model
}

// NewDetailModel creates a new detail view
func NewDetailModel(deps Deps) *DetailModel {
	deadline := textinput.New()
	deadline.Placeholder = "YYYY-MM-DD"
	deadline.CharLimit = 32

	note := textarea.New()
	note.Placeholder = "Write your note..."
	note.ShowLineNumbers = false
	note.SetHeight(6)

	return &DetailModel{
		deps:     deps,
		deadline: deadline,
		note:     note,
	}
}

// Init initializes the detail view
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// SetTopic switches the view to topicID
func (m *DetailModel) SetTopic(topicID string) {
	m.topicID = topicID
	m.mode = modeView
	m.resource = 0
	m.deadline.Blur()
	m.note.Blur()
	m.ClearMessage()
}

// TopicID returns the topic being shown
func (m *DetailModel) TopicID() string {
	return m.topicID
}

// Editing reports whether an input has focus
func (m *DetailModel) Editing() bool {
	return m.mode != modeView
}

// SetSize updates the view dimensions
func (m *DetailModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.note.SetWidth(min(80, m.ContentWidth(80, 20)-4))
}

func (m *DetailModel) topic() (domain.Topic, bool) {
	roadmap := m.deps.State.Roadmap()
	topic, ok := roadmap.FindTopic(m.topicID)
	if !ok {
		return domain.Topic{}, false
	}
	return *topic, true
}

// Update handles messages for the detail view
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ProgressUpdatedMsg:
		m.SetMessage(msg.Result.Message, false)
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			msg.Err = fmt.Errorf("copy failed: %w", msg.Err)
		}
		m.SetResult("Copied "+msg.Text, msg.Err)
		return m, nil

	case LinkOpenedMsg:
		m.SetResult("Opened "+msg.URL, msg.Err)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeDeadline:
			return m.updateDeadline(msg)
		case modeNote:
			return m.updateNote(msg)
		}
		return m.updateView(msg)
	}

	return m.forward(msg)
}

func (m *DetailModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeDeadline:
		m.deadline, cmd = m.deadline.Update(msg)
	case modeNote:
		m.note, cmd = m.note.Update(msg)
	}
	return m, cmd
}

func (m *DetailModel) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, DetailKeys.Back) {
		if m.deps.State.ErrorMessage() != "" {
			m.deps.State.DismissError()
			return m, nil
		}
		return m, func() tea.Msg { return SwitchToOverviewMsg{} }
	}
	if key.Matches(msg, DetailKeys.Help) {
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	topic, ok := m.topic()
	if !ok {
		return m, nil
	}
	rec := m.deps.State.Record(topic.ID)
	m.ClearMessage()

	switch {
	case key.Matches(msg, DetailKeys.NotStarted):
		return m, m.setStatus(domain.StatusNotStarted)
	case key.Matches(msg, DetailKeys.InProgress):
		return m, m.setStatus(domain.StatusInProgress)
	case key.Matches(msg, DetailKeys.Completed):
		return m, m.setStatus(domain.StatusCompleted)

	case key.Matches(msg, DetailKeys.EditDeadline):
		m.mode = modeDeadline
		m.deadline.SetValue(rec.DeadlineValue())
		m.deadline.CursorEnd()
		return m, m.deadline.Focus()
	case key.Matches(msg, DetailKeys.ClearDeadline):
		return m, m.setDeadline("")

	case key.Matches(msg, DetailKeys.EditNote):
		m.mode = modeNote
		m.note.SetValue(rec.Note)
		return m, m.note.Focus()
	case key.Matches(msg, DetailKeys.EditorNote):
		topicID, note := topic.ID, rec.Note
		return m, func() tea.Msg { return EditNoteInEditorMsg{TopicID: topicID, Note: note} }
	case key.Matches(msg, DetailKeys.DeleteNote):
		if rec.Note == "" {
			return m, nil
		}
		return m, SetNoteCmd(m.deps, topic.ID, "")

	case key.Matches(msg, DetailKeys.Up):
		if m.resource > 0 {
			m.resource--
		}
	case key.Matches(msg, DetailKeys.Down):
		if m.resource < len(topic.Resources)-1 {
			m.resource++
		}
	case key.Matches(msg, DetailKeys.Copy):
		if m.resource < len(topic.Resources) {
			return m, copyCmd(topic.Resources[m.resource])
		}
	case key.Matches(msg, DetailKeys.Open):
		if m.resource < len(topic.Resources) {
			return m, openLinkCmd(m.deps.Links, topic.Resources[m.resource])
		}
	}
	return m, nil
}

func (m *DetailModel) updateDeadline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeView
		m.deadline.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeView
		m.deadline.Blur()
		return m, m.setDeadline(strings.TrimSpace(m.deadline.Value()))
	}
	return m.forward(msg)
}

func (m *DetailModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DetailKeys.Cancel):
		m.mode = modeView
		m.note.Blur()
		return m, nil
	case key.Matches(msg, DetailKeys.Save):
		m.mode = modeView
		m.note.Blur()
		return m, SetNoteCmd(m.deps, m.topicID, m.note.Value())
	}
	return m.forward(msg)
}

func (m *DetailModel) setStatus(status domain.Status) tea.Cmd {
	deps, topicID := m.deps, m.topicID
	return func() tea.Msg {
		return progressMsg(commands.NewSetStatusCommand(deps.State, topicID, string(status)).Execute(deps.context()))
	}
}

func (m *DetailModel) setDeadline(deadline string) tea.Cmd {
	deps, topicID := m.deps, m.topicID
	return func() tea.Msg {
		return progressMsg(commands.NewSetDeadlineCommand(deps.State, topicID, deadline).Execute(deps.context()))
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: copyToClipboard(text)}
	}
}

func openLinkCmd(links ports.LinkOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if links == nil {
			return LinkOpenedMsg{URL: url, Err: errors.New("opening links is not available")}
		}
		return LinkOpenedMsg{URL: url, Err: links.OpenURL(url)}
	}
}

// View renders the detail view
func (m *DetailModel) View() string {
	if !m.deps.State.HasRoadmap() {
		return NewViewBuilder().
			Title("No roadmap").
			Muted("No roadmap loaded. Import a JSON file first.").
			BlankLine().
			Help(DetailKeys.Back).
			String()
	}

	topic, ok := m.topic()
	if !ok {
		return NewViewBuilder().
			Title("Topic not found").
			Muted(fmt.Sprintf("No topic with id %q in this roadmap.", m.topicID)).
			BlankLine().
			Help(DetailKeys.Back).
			String()
	}
	rec := m.deps.State.Record(topic.ID)

	v := NewViewBuilder().Title(topicTitle(topic))
	if topic.Description != "" {
		v.Subtitle(topic.Description)
	}
	v.Banner(m.deps.State.ErrorMessage()).
		Message(m.Message, m.MessageErr)

	// Status
	v.Section("Status")
	buttons := make([]string, 0, len(domain.Statuses))
	for i, status := range domain.Statuses {
		buttons = append(buttons, fmt.Sprintf("%d %s", i+1, styles.StatusButton(status, rec.Status == status)))
	}
	v.Line(strings.Join(buttons, "  ")).BlankLine()

	// Deadline
	v.Section("Deadline")
	switch {
	case m.mode == modeDeadline:
		v.Line(styles.InputFocused.Render(m.deadline.View())).
			Help(
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
				DetailKeys.Cancel,
			).BlankLine()
	case rec.HasDeadline():
		v.Line("  Due " + domain.FormatDeadline(rec.DeadlineValue()) + "  " + RenderMuted("("+rec.DeadlineValue()+")"))
	default:
		v.Muted("  No deadline")
	}
	v.BlankLine()

	// Resources
	if len(topic.Resources) > 0 {
		v.Section("Resources")
		for i, url := range topic.Resources {
			marker := "  "
			if i == m.resource {
				marker = "> "
			}
			v.Line(marker + styles.Link.Render(url))
		}
		v.BlankLine()
	}

	// Note
	v.Section("Note")
	switch {
	case m.mode == modeNote:
		v.Line(m.note.View()).
			Help(DetailKeys.Save, DetailKeys.Cancel).BlankLine()
	case rec.Note != "":
		v.Line(rec.Note)
	default:
		v.Muted(`No notes yet. Press n to add one.`)
	}
	v.BlankLine()

	if m.mode == modeView {
		v.Help(
			DetailKeys.NotStarted, DetailKeys.InProgress, DetailKeys.Completed,
			DetailKeys.EditDeadline, DetailKeys.ClearDeadline,
		).BlankLine().Help(
			DetailKeys.EditNote, DetailKeys.EditorNote, DetailKeys.DeleteNote,
			DetailKeys.Copy, DetailKeys.Open, DetailKeys.Back,
		)
	}
	return v.String()
}
