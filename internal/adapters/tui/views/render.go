package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"roadtrack/internal/adapters/tui/styles"
)

// appMargin is the horizontal space taken by styles.App padding
const appMargin = 4

// RenderHelpLine renders key bindings as "key desc" pairs separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMuted renders secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// RenderField renders "label: value"
func RenderField(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// RenderBanner renders the error banner with its dismiss hint
func RenderBanner(message string) string {
	if message == "" {
		return ""
	}
	return styles.Banner.Render(message) + " " + styles.HelpDesc.Render("esc to dismiss")
}

// ViewBuilder assembles a view top to bottom
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the view title
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a line under the title
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Section adds a section heading
func (v *ViewBuilder) Section(label string) *ViewBuilder {
	return v.Line(styles.InputLabel.Render(label))
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds an empty line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds a line of secondary text
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(RenderMuted(text))
}

// Message adds the status line when set
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	v.b.WriteString(style.Render(message))
	v.b.WriteString("\n\n")
	return v
}

// Banner adds the error banner when set
func (v *ViewBuilder) Banner(message string) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderBanner(message))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a line of key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds text as is
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
