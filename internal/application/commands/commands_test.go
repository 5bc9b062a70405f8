package commands

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrack/internal/adapters/memory"
	"roadtrack/internal/application"
	"roadtrack/internal/domain"
	"roadtrack/internal/ports"
)

const goRoadmap = `{
	"title": "Go Developer",
	"description": "From zero to production",
	"topics": [
		{"id": "t1", "title": "Syntax", "description": "Types and control flow", "resources": ["https://go.dev/tour"]},
		{"id": "t2", "title": "Concurrency", "description": "Goroutines and channels"}
	]
}`

// fakeReader serves documents from memory keyed by path
type fakeReader map[string]string

func (r fakeReader) ReadDocument(_ context.Context, path string) (*ports.Document, error) {
	data, ok := r[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &ports.Document{Name: path, Data: []byte(data), Format: ports.FormatJSON}, nil
}

// recordingSink keeps exported files in memory
type recordingSink struct {
	files map[string][]byte
	err   error
}

func (s *recordingSink) WriteExport(_ context.Context, name string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = data
	return "/exports/" + name, nil
}

var fixedNow = time.Date(2026, 10, 19, 8, 30, 0, 123_000_000, time.UTC)

func newState(t *testing.T) (*application.State, *memory.KV) {
	t.Helper()
	kv := memory.NewKV()
	state := application.NewState(kv, application.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, state.Load(context.Background()))
	return state, kv
}

func importGo(t *testing.T, state *application.State) {
	t.Helper()
	_, err := NewImportRoadmapCommand(state, fakeReader{"go.json": goRoadmap}, "go.json").Execute(context.Background())
	require.NoError(t, err)
}

func TestImportRoadmapCommand(t *testing.T) {
	ctx := context.Background()
	state, kv := newState(t)

	result, err := NewImportRoadmapCommand(state, fakeReader{"go.json": goRoadmap}, "go.json").Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Go Developer", result.Roadmap.Title)
	assert.Len(t, result.Seeded, 2)
	assert.Equal(t, domain.DefaultRecord(), state.Record("t1"))
	assert.Contains(t, result.Message, "2 topics")
	assert.Contains(t, kv.Dump(), application.KeyRoadmap)
}

func TestImportRoadmapCommand_InvalidLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing topics", doc: `{"title":"Other"}`},
		{name: "missing title", doc: `{"topics":[{"id":"t9"}]}`},
		{name: "broken JSON", doc: `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			state, kv := newState(t)
			importGo(t, state)
			_, err := NewSetStatusCommand(state, "t1", "completed").Execute(ctx)
			require.NoError(t, err)
			before := kv.Dump()

			_, err = NewImportRoadmapCommand(state, fakeReader{"bad.json": tt.doc}, "bad.json").Execute(ctx)

			var valErr *application.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, "Go Developer", state.Roadmap().Title)
			assert.Equal(t, domain.StatusCompleted, state.Record("t1").Status)
			assert.Len(t, state.Progress(), 2)
			assert.Equal(t, before, kv.Dump())
		})
	}
}

func TestImportRoadmapCommand_PreservesExistingRecord(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)
	_, err := NewSetStatusCommand(state, "t1", "in-progress").Execute(ctx)
	require.NoError(t, err)
	_, err = NewSetNoteCommand(state, "t1", "halfway").Execute(ctx)
	require.NoError(t, err)
	_, err = NewSetDeadlineCommand(state, "t1", "2026-11-01").Execute(ctx)
	require.NoError(t, err)

	result, err := NewImportDocumentCommand(state, &ports.Document{
		Name: "again.json", Data: []byte(goRoadmap), Format: ports.FormatJSON,
	}).Execute(ctx)
	require.NoError(t, err)

	assert.Empty(t, result.Seeded)
	rec := state.Record("t1")
	assert.Equal(t, domain.StatusInProgress, rec.Status)
	assert.Equal(t, "halfway", rec.Note)
	assert.Equal(t, "2026-11-01", rec.DeadlineValue())
}

func TestImportRoadmapCommand_Validate(t *testing.T) {
	state, _ := newState(t)

	_, err := NewImportRoadmapCommand(state, fakeReader{}, "  ").Execute(context.Background())
	assert.ErrorContains(t, err, "file path is required")

	_, err = NewImportRoadmapCommand(state, fakeReader{}, "missing.json").Execute(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExportProgressCommand_NothingToExport(t *testing.T) {
	state, _ := newState(t)
	sink := &recordingSink{}

	result, err := NewExportProgressCommand(state, sink).Execute(context.Background())

	assert.Nil(t, result)
	require.ErrorIs(t, err, application.ErrNothingToExport)
	var exportErr *application.ExportError
	assert.ErrorAs(t, err, &exportErr)
	assert.Empty(t, sink.files)
}

func TestExportProgressCommand(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)
	_, err := NewSetStatusCommand(state, "t1", "completed").Execute(ctx)
	require.NoError(t, err)
	sink := &recordingSink{}

	result, err := NewExportProgressCommand(state, sink).Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "roadmap-progress-1792398600123.json", result.FileName)
	assert.Equal(t, "/exports/"+result.FileName, result.Location)
	require.Contains(t, sink.files, result.FileName)

	var doc struct {
		Title        string                           `json:"title"`
		ExportDate   string                           `json:"exportDate"`
		UserProgress map[string]domain.ProgressRecord `json:"userProgress"`
	}
	require.NoError(t, json.Unmarshal(sink.files[result.FileName], &doc))

	assert.Equal(t, "Go Developer", doc.Title)
	assert.Equal(t, "2026-10-19T08:30:00.123Z", doc.ExportDate)
	_, err = time.Parse(time.RFC3339, doc.ExportDate)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, doc.UserProgress["t1"].Status)
	assert.Equal(t, domain.StatusNotStarted, doc.UserProgress["t2"].Status)
}

func TestExportProgressCommand_SinkFailure(t *testing.T) {
	state, _ := newState(t)
	importGo(t, state)
	sinkErr := errors.New("read-only file system")

	_, err := NewExportProgressCommand(state, &recordingSink{err: sinkErr}).Execute(context.Background())

	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, "Export failed: read-only file system", application.UserMessage(err))
}

func TestExportThenImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)
	original := state.Roadmap()

	exported, err := NewExportProgressCommand(state, nil).Execute(ctx)
	require.NoError(t, err)
	require.Empty(t, exported.Location)

	other, _ := newState(t)
	result, err := NewImportDocumentCommand(other, &ports.Document{
		Name: exported.FileName, Data: exported.Data, Format: ports.FormatJSON,
	}).Execute(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(original, result.Roadmap); diff != "" {
		t.Errorf("roadmap changed across export/import (-want +got):\n%s", diff)
	}
}

func TestExportThenImport_EmptyResources(t *testing.T) {
	ctx := context.Background()
	state, kv := newState(t)
	doc := `{"title":"Go","topics":[{"id":"t1","title":"Syntax","description":"","resources":[]}]}`
	imported, err := NewImportRoadmapCommand(state, fakeReader{"go.json": doc}, "go.json").Execute(ctx)
	require.NoError(t, err)
	assert.Nil(t, imported.Roadmap.Topics[0].Resources)

	exported, err := NewExportProgressCommand(state, nil).Execute(ctx)
	require.NoError(t, err)

	other, _ := newState(t)
	result, err := NewImportDocumentCommand(other, &ports.Document{
		Name: exported.FileName, Data: exported.Data, Format: ports.FormatJSON,
	}).Execute(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(state.Roadmap(), result.Roadmap); diff != "" {
		t.Errorf("roadmap changed across export/import (-want +got):\n%s", diff)
	}

	reloaded := application.NewState(kv)
	require.NoError(t, reloaded.Load(ctx))
	if diff := cmp.Diff(state.Roadmap(), reloaded.Roadmap()); diff != "" {
		t.Errorf("roadmap changed across reload (-want +got):\n%s", diff)
	}
}

func TestSetStatusCommand_BlankTopicID(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	doc := `{"title":"Go","topics":[{"id":" ","title":"Blank","description":""}]}`
	_, err := NewImportRoadmapCommand(state, fakeReader{"go.json": doc}, "go.json").Execute(ctx)
	require.NoError(t, err)

	_, err = NewSetStatusCommand(state, " ", "completed").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, state.Record(" ").Status)
}

func TestSetStatusCommand_Validate(t *testing.T) {
	state, _ := newState(t)
	importGo(t, state)

	tests := []struct {
		name    string
		topicID string
		status  string
		wantErr error
		errMsg  string
	}{
		{name: "valid", topicID: "t1", status: "completed"},
		{name: "empty topic", topicID: "", status: "completed", errMsg: "topic ID is required"},
		{name: "unknown topic", topicID: "t9", status: "completed", wantErr: application.ErrTopicNotFound},
		{name: "unknown status", topicID: "t1", status: "finished", errMsg: "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSetStatusCommand(state, tt.topicID, tt.status).Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				assert.ErrorContains(t, err, tt.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestMutators_RequireRoadmap(t *testing.T) {
	state, _ := newState(t)
	ctx := context.Background()

	_, err := NewSetNoteCommand(state, "t1", "x").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNoRoadmap)

	_, err = NewSetDeadlineCommand(state, "t1", "2026-01-01").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNoRoadmap)

	assert.Empty(t, state.Progress())
}

func TestSetStatusCommand_PreservesOtherFields(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)
	_, err := NewSetNoteCommand(state, "t2", "channels first").Execute(ctx)
	require.NoError(t, err)
	_, err = NewSetDeadlineCommand(state, "t2", "2026-12-24").Execute(ctx)
	require.NoError(t, err)

	result, err := NewSetStatusCommand(state, "t2", "completed").Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Record.Status)
	assert.Equal(t, "channels first", result.Record.Note)
	assert.Equal(t, "2026-12-24", result.Record.DeadlineValue())
	assert.Equal(t, "t2 -> Completed", result.Message)
}

func TestSetNoteAndDeadline_Clear(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)

	res, err := NewSetDeadlineCommand(state, "t1", "2026-12-24").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Deadline for t1: 24.12.2026", res.Message)

	res, err = NewSetDeadlineCommand(state, "t1", "").Execute(ctx)
	require.NoError(t, err)
	assert.False(t, res.Record.HasDeadline())
	assert.Equal(t, "Cleared deadline for t1", res.Message)

	_, err = NewSetNoteCommand(state, "t1", "some note").Execute(ctx)
	require.NoError(t, err)
	res, err = NewSetNoteCommand(state, "t1", "").Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Record.Note)
	assert.Equal(t, "Deleted note for t1", res.Message)
}

func TestSetDeadlineCommand_AcceptsOpaqueValues(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)

	res, err := NewSetDeadlineCommand(state, "t1", "someday").Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, "someday", res.Record.DeadlineValue())
	assert.Equal(t, "Deadline for t1: Invalid Date", res.Message)
}

func TestResetCommand(t *testing.T) {
	ctx := context.Background()
	state, kv := newState(t)
	importGo(t, state)

	msg, err := NewResetCommand(state).Execute(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, msg)
	assert.False(t, state.HasRoadmap())
	assert.Empty(t, kv.Dump())
}

func TestListTopicsCommand(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)

	_, err := NewListTopicsCommand(state).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrNoRoadmap)

	importGo(t, state)
	_, err = NewSetStatusCommand(state, "t2", "in-progress").Execute(ctx)
	require.NoError(t, err)

	views, err := NewListTopicsCommand(state).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "t1", views[0].Topic.ID)
	assert.Equal(t, domain.StatusNotStarted, views[0].Progress.Status)
	assert.Equal(t, domain.StatusInProgress, views[1].Progress.Status)
}

func TestGetTopicCommand(t *testing.T) {
	ctx := context.Background()
	state, _ := newState(t)
	importGo(t, state)

	view, err := NewGetTopicCommand(state, "t1").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://go.dev/tour"}, view.Topic.Resources)

	_, err = NewGetTopicCommand(state, "nope").Execute(ctx)
	assert.ErrorIs(t, err, application.ErrTopicNotFound)
}
