package views

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"roadtrack/internal/adapters/tui/styles"
	"roadtrack/internal/config"
)

var completeKey = key.NewBinding(
	key.WithKeys("tab"),
	key.WithHelp("tab", "complete"),
)

// roadmapExts are the file extensions offered by completion
var roadmapExts = []string{".json", ".yaml", ".yml"}

// PathInput is a single-line path prompt with tab completion of
// directories and roadmap files
type PathInput struct {
	Label string
	input textinput.Model

	// candidates from the last completion, cycled by repeated tabs
	candidates []string
	next       int
}

// NewPathInput creates a focused path prompt
func NewPathInput(label, placeholder string) *PathInput {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()
	return &PathInput{Label: label, input: input}
}

// Init returns the cursor blink command
func (p *PathInput) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the entered path without surrounding spaces
func (p *PathInput) Value() string {
	return strings.TrimSpace(p.input.Value())
}

// SetValue replaces the entered path
func (p *PathInput) SetValue(path string) {
	p.input.SetValue(path)
	p.input.CursorEnd()
	p.candidates = nil
}

// Reset clears the prompt
func (p *PathInput) Reset() {
	p.SetValue("")
}

// Update completes on tab and forwards everything else to the text input
func (p *PathInput) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, completeKey) {
			p.Complete()
			return nil
		}
		p.candidates = nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// Complete fills in the next matching entry. The first tab completes to
// the longest common prefix when several entries match.
func (p *PathInput) Complete() {
	if len(p.candidates) > 0 {
		p.input.SetValue(p.candidates[p.next])
		p.input.CursorEnd()
		p.next = (p.next + 1) % len(p.candidates)
		return
	}

	matches := completePath(p.input.Value())
	switch len(matches) {
	case 0:
		return
	case 1:
		p.SetValue(matches[0])
		return
	}

	if prefix := commonPrefix(matches); len(prefix) > len(p.input.Value()) {
		p.SetValue(prefix)
		return
	}
	p.candidates = matches
	p.next = 0
	p.Complete()
}

// View renders the label and the input
func (p *PathInput) View() string {
	return styles.InputLabel.Render(p.Label) + "\n" + styles.InputFocused.Render(p.input.View())
}

// completePath lists directories and roadmap files starting with typed.
// Results keep the typed directory part, so "~/" stays unexpanded.
func completePath(typed string) []string {
	dirPart, base := typed, ""
	if !strings.HasSuffix(typed, "/") {
		dirPart = typed[:len(typed)-len(filepath.Base(typed))]
		base = filepath.Base(typed)
		if typed == "" {
			dirPart, base = "", ""
		}
	}

	dir := config.ExpandHome(dirPart)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		switch {
		case e.IsDir():
			matches = append(matches, dirPart+name+"/")
		case slices.Contains(roadmapExts, strings.ToLower(filepath.Ext(name))):
			matches = append(matches, dirPart+name)
		}
	}
	slices.Sort(matches)
	return matches
}

func commonPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
