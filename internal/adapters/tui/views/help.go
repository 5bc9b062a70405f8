package views

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"roadtrack/internal/adapters/tui/styles"
)

var helpClose = key.NewBinding(
	key.WithKeys("esc", "q", "?"),
	key.WithHelp("esc/q/?", "close"),
)

// CloseHelpMsg returns from the help view to the previous one
type CloseHelpMsg struct{}

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections is rendered from the live keymaps so the help never drifts
func helpSections() []helpSection {
	return []helpSection{
		{"Load", []key.Binding{UploadKeys.Submit, completeKey, UploadKeys.Dismiss}},
		{"Overview", []key.Binding{
			OverviewKeys.Up, OverviewKeys.Down, OverviewKeys.PrevPage, OverviewKeys.NextPage,
			OverviewKeys.Open, OverviewKeys.Export, OverviewKeys.Import, OverviewKeys.Reset,
		}},
		{"Topic", []key.Binding{
			DetailKeys.NotStarted, DetailKeys.InProgress, DetailKeys.Completed,
			DetailKeys.EditDeadline, DetailKeys.ClearDeadline,
			DetailKeys.EditNote, DetailKeys.EditorNote, DetailKeys.DeleteNote, DetailKeys.Save,
			DetailKeys.Up, DetailKeys.Down, DetailKeys.Copy, DetailKeys.Open, DetailKeys.Back,
		}},
		{"Everywhere", []key.Binding{OverviewKeys.Dismiss, OverviewKeys.Help, OverviewKeys.Quit}},
	}
}

// HelpModel lists every key binding
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, helpClose) {
			return m, func() tea.Msg { return CloseHelpMsg{} }
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("roadtrack help").
		Subtitle("Track your progress through a learning roadmap")

	for _, section := range helpSections() {
		v.Section(section.title)
		for _, b := range section.bindings {
			h := b.Help()
			v.Line("  " + styles.HelpKey.Render(padRight(h.Key, 12)) + styles.HelpDesc.Render(h.Desc))
		}
		v.BlankLine()
	}

	return v.Muted("Statuses: not-started, in-progress, completed. Every change is saved immediately.").
		Muted("Deadlines are YYYY-MM-DD; an empty deadline or note clears it.").
		BlankLine().
		Help(helpClose).
		String()
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
