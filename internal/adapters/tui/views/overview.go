package views

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"roadtrack/internal/adapters/tui/styles"
	"roadtrack/internal/domain"
)

// OverviewKeyMap defines key bindings for the roadmap overview
type OverviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	Export   key.Binding
	Import   key.Binding
	Reset    key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var OverviewKeys = OverviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "left", "h"),
		key.WithHelp("h/pgup", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "right", "l"),
		key.WithHelp("l/pgdn", "next page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const (
	notePreviewLen  = 50
	linesPerTopic   = 3
	overviewChrome  = 16
	defaultBarWidth = 40
)

// OverviewModel lists the roadmap's topics with overall progress
type OverviewModel struct {
	ViewState
	deps   Deps
	topics *topicWindow
}

// NewOverviewModel creates a new overview
func NewOverviewModel(deps Deps) *OverviewModel {
	return &OverviewModel{
		deps:   deps,
		topics: newTopicWindow(5),
	}
}

// Init initializes the overview
func (m *OverviewModel) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh re-reads the topic count from the state
func (m *OverviewModel) Refresh() {
	n := 0
	if roadmap := m.deps.State.Roadmap(); roadmap != nil {
		n = len(roadmap.Topics)
	}
	m.topics.SetLen(n)
}

// SetSize updates the view dimensions and page size
func (m *OverviewModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.topics.SetRows((height - overviewChrome) / linesPerTopic)
}

// SelectedTopic returns the topic under the cursor
func (m *OverviewModel) SelectedTopic() (domain.Topic, bool) {
	roadmap := m.deps.State.Roadmap()
	if roadmap == nil {
		return domain.Topic{}, false
	}
	i := m.topics.Cursor()
	if i < 0 || i >= len(roadmap.Topics) {
		return domain.Topic{}, false
	}
	return roadmap.Topics[i], true
}

// Update handles messages for the overview
func (m *OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ExportedMsg:
		m.SetMessage(msg.Result.Message, false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, OverviewKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, OverviewKeys.Up):
			m.topics.Move(-1)
		case key.Matches(msg, OverviewKeys.Down):
			m.topics.Move(1)
		case key.Matches(msg, OverviewKeys.PrevPage):
			m.topics.Turn(-1)
		case key.Matches(msg, OverviewKeys.NextPage):
			m.topics.Turn(1)
		case key.Matches(msg, OverviewKeys.Dismiss):
			m.deps.State.DismissError()
		case key.Matches(msg, OverviewKeys.Open):
			if topic, ok := m.SelectedTopic(); ok {
				return m, func() tea.Msg { return OpenTopicMsg{TopicID: topic.ID} }
			}
		case key.Matches(msg, OverviewKeys.Export):
			return m, ExportCmd(m.deps)
		case key.Matches(msg, OverviewKeys.Import):
			return m, func() tea.Msg { return SwitchToUploadMsg{} }
		case key.Matches(msg, OverviewKeys.Reset):
			return m, func() tea.Msg { return SwitchToResetMsg{} }
		case key.Matches(msg, OverviewKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

// View renders the overview
func (m *OverviewModel) View() string {
	snap := m.deps.State.Snapshot()
	if snap.Roadmap == nil {
		return NewViewBuilder().
			Title("roadtrack").
			Banner(m.deps.State.ErrorMessage()).
			Muted("No roadmap loaded. Press i to import one.").
			String()
	}

	summary := m.deps.State.Summary()
	v := NewViewBuilder().
		Title(snap.Roadmap.Title)
	if snap.Roadmap.Description != "" {
		v.Subtitle(snap.Roadmap.Description)
	}

	v.Banner(m.deps.State.ErrorMessage()).
		Message(m.Message, m.MessageErr).
		Line(m.renderProgressBar(summary.Percent)).
		Line(renderStats(summary)).
		BlankLine()

	m.topics.SetLen(len(snap.Roadmap.Topics))
	start, end := m.topics.Visible()
	if len(snap.Roadmap.Topics) == 0 {
		v.Muted("This roadmap has no topics.")
	}
	for i := start; i < end; i++ {
		topic := snap.Roadmap.Topics[i]
		rec, ok := snap.Progress[topic.ID]
		if !ok {
			rec = domain.DefaultRecord()
		}
		v.Raw(renderTopicRow(topic, rec, i == m.topics.Cursor()))
	}

	if m.topics.Pages() > 1 {
		v.Muted(fmt.Sprintf("page %d/%d", m.topics.Page(), m.topics.Pages()))
	}

	v.BlankLine().Help(
		OverviewKeys.Open,
		OverviewKeys.Export,
		OverviewKeys.Import,
		OverviewKeys.Reset,
		OverviewKeys.Help,
		OverviewKeys.Quit,
	)
	return v.String()
}

func (m *OverviewModel) renderProgressBar(percent int) string {
	width := min(defaultBarWidth, m.ContentWidth(defaultBarWidth, 26)-16)
	bar := progress.New(
		progress.WithSolidFill(string(styles.ProgressColor(percent))),
		progress.WithWidth(width),
	)
	return styles.StatLabel.Render("Progress ") + bar.ViewAs(float64(percent)/100)
}

func renderStats(s domain.Summary) string {
	stat := func(label string, value int, color lipgloss.Color) string {
		return styles.StatLabel.Render(label+" ") + styles.StatValue.Foreground(color).Render(fmt.Sprint(value))
	}
	return strings.Join([]string{
		stat("Total", s.Total, styles.White),
		stat("Completed", s.Completed, styles.StatusCompleted),
		stat("In progress", s.InProgress, styles.StatusInProgress),
		stat("Remaining", s.Remaining, styles.StatusNotStarted),
	}, styles.HelpSeparator.String())
}

func renderTopicRow(topic domain.Topic, rec domain.ProgressRecord, selected bool) string {
	var b strings.Builder

	marker := "  "
	title := styles.TopicTitle.Render(topicTitle(topic))
	if selected {
		marker = "> "
		title = styles.TopicSelected.Render(topicTitle(topic))
	}
	bar := lipgloss.NewStyle().Foreground(styles.StatusColor(rec.Status)).Render("┃ ")

	b.WriteString(marker + bar + title + "  " + styles.StatusBadge(rec.Status) + "\n")

	var details []string
	if topic.Description != "" {
		details = append(details, topic.Description)
	}
	if rec.Note != "" {
		details = append(details, styles.TopicNote.Render("Note: "+NotePreview(rec.Note)))
	}
	if rec.HasDeadline() {
		details = append(details, "Due "+domain.FormatDeadline(rec.DeadlineValue()))
	}
	if len(details) > 0 {
		b.WriteString("    " + bar + styles.MutedText.Render(strings.Join(details, "  ")) + "\n")
	}
	return b.String()
}

func topicTitle(topic domain.Topic) string {
	if topic.Title != "" {
		return topic.Title
	}
	return topic.ID
}

// NotePreview shortens a note for the topic list
func NotePreview(note string) string {
	note = strings.Join(strings.Fields(note), " ")
	if utf8.RuneCountInString(note) <= notePreviewLen {
		return note
	}
	return string([]rune(note)[:notePreviewLen]) + "..."
}
