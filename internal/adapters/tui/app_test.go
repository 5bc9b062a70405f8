package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrack/internal/adapters/filesystem"
	"roadtrack/internal/adapters/memory"
	"roadtrack/internal/adapters/tui/views"
	"roadtrack/internal/application"
	"roadtrack/internal/domain"
)

func newTestApp(t *testing.T) (*App, *application.State) {
	t.Helper()
	state := application.NewState(memory.NewKV())
	app := NewApp(context.Background(), state,
		filesystem.NewDocumentReader(),
		filesystem.NewExportDir(t.TempDir()),
		nil, nil, nil)
	return app, state
}

func writeRoadmap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roadmap.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func typeText(app *App, s string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// drain runs cmd and feeds its message back into the app
func drain(t *testing.T, app *App, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	app.Update(msg)
	return msg
}

func TestApp_StartsOnUploadWithoutRoadmap(t *testing.T) {
	app, _ := newTestApp(t)
	app.Init()

	assert.Equal(t, ViewUpload, app.State())
	assert.Contains(t, app.View(), "Roadmap file")
}

func TestApp_ImportFlow(t *testing.T) {
	app, state := newTestApp(t)
	app.Init()
	path := writeRoadmap(t, `{"title":"Go","description":"Learn Go","topics":[{"id":"t1","title":"Syntax"}]}`)

	typeText(app, path)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := drain(t, app, cmd)

	require.IsType(t, views.ImportedMsg{}, msg)
	assert.Equal(t, ViewOverview, app.State())
	assert.True(t, state.HasRoadmap())
	assert.Contains(t, app.View(), "Syntax")
	assert.Equal(t, domain.DefaultRecord(), state.Record("t1"))
}

func TestApp_InvalidImportShowsBanner(t *testing.T) {
	app, state := newTestApp(t)
	app.Init()
	path := writeRoadmap(t, `{"title":"Go"}`)

	typeText(app, path)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, app, cmd)

	assert.Equal(t, ViewUpload, app.State())
	assert.False(t, state.HasRoadmap())
	assert.True(t, strings.HasPrefix(state.ErrorMessage(), "Invalid file format:"), state.ErrorMessage())
	assert.Contains(t, app.View(), "Invalid file format")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, state.ErrorMessage())
}

func TestApp_NavigationAndHelp(t *testing.T) {
	app, state := newTestApp(t)
	_, err := state.Install(context.Background(), &domain.Roadmap{Title: "Go", Topics: []domain.Topic{{ID: "t1", Title: "Syntax"}}})
	require.NoError(t, err)
	app.Init()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, app, cmd)
	assert.Equal(t, ViewDetail, app.State())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	drain(t, app, cmd)
	assert.Equal(t, ViewHelp, app.State())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(t, app, cmd)
	assert.Equal(t, ViewDetail, app.State(), "help returns to the view it was opened from")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(t, app, cmd)
	assert.Equal(t, ViewOverview, app.State())
}

func TestApp_ResetReturnsToUpload(t *testing.T) {
	app, state := newTestApp(t)
	_, err := state.Install(context.Background(), &domain.Roadmap{Title: "Go", Topics: []domain.Topic{{ID: "t1"}}})
	require.NoError(t, err)
	app.Init()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	drain(t, app, cmd)
	assert.Equal(t, ViewReset, app.State())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	drain(t, app, cmd)

	assert.Equal(t, ViewUpload, app.State())
	assert.False(t, state.HasRoadmap())
	assert.Empty(t, state.Progress())
}

func TestApp_EditorFinishedSavesNote(t *testing.T) {
	app, state := newTestApp(t)
	_, err := state.Install(context.Background(), &domain.Roadmap{Title: "Go", Topics: []domain.Topic{{ID: "t1"}}})
	require.NoError(t, err)

	_, cmd := app.Update(editorFinishedMsg{topicID: "t1", note: "from editor"})
	drain(t, app, cmd)

	assert.Equal(t, "from editor", state.Record("t1").Note)
}

func TestApp_EditorWithoutOpenerFails(t *testing.T) {
	app, state := newTestApp(t)

	_, cmd := app.Update(views.EditNoteInEditorMsg{TopicID: "t1"})
	drain(t, app, cmd)

	assert.Contains(t, state.ErrorMessage(), "no editor configured")
}

func TestApp_QueuedImportRunsOnInit(t *testing.T) {
	app, state := newTestApp(t)
	path := writeRoadmap(t, `{"title":"Go","topics":[{"id":"t1"}]}`)
	app.QueueImport(path)

	cmd := app.Init()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch of commands")

	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(views.ImportedMsg); ok {
			app.Update(msg)
		}
	}

	assert.True(t, state.HasRoadmap())
	assert.Equal(t, ViewOverview, app.State())
}
