package views

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCompletePath(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "go.json"))
	touch(t, filepath.Join(dir, "go-advanced.yaml"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden.json"))
	touch(t, filepath.Join(dir, "guides", "rust.yml"))

	tests := []struct {
		name  string
		typed string
		want  []string
	}{
		{
			name:  "directory listing skips hidden and other files",
			typed: dir + "/",
			want:  []string{dir + "/go-advanced.yaml", dir + "/go.json", dir + "/guides/"},
		},
		{
			name:  "prefix",
			typed: dir + "/go",
			want:  []string{dir + "/go-advanced.yaml", dir + "/go.json"},
		},
		{
			name:  "hidden when asked",
			typed: dir + "/.h",
			want:  []string{dir + "/.hidden.json"},
		},
		{
			name:  "no match",
			typed: dir + "/zzz",
			want:  nil,
		},
		{
			name:  "missing directory",
			typed: dir + "/missing/x",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := completePath(tt.typed)
			if len(got) != len(tt.want) {
				t.Fatalf("completePath(%q) = %q, want %q", tt.typed, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("completePath(%q)[%d] = %q, want %q", tt.typed, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPathInput_Complete(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "roadmaps", "go.json"))
	touch(t, filepath.Join(dir, "roadmaps", "go.yaml"))

	p := NewPathInput("Roadmap file", "")
	p.SetValue(dir + "/road")

	p.Complete()
	if got := p.Value(); got != dir+"/roadmaps/" {
		t.Fatalf("expected single directory completed, got %q", got)
	}

	p.Complete()
	if got := p.Value(); got != dir+"/roadmaps/go." {
		t.Fatalf("expected common prefix, got %q", got)
	}

	p.Complete()
	if got := p.Value(); got != dir+"/roadmaps/go.json" {
		t.Errorf("expected first candidate, got %q", got)
	}
	p.Complete()
	if got := p.Value(); got != dir+"/roadmaps/go.yaml" {
		t.Errorf("expected second candidate, got %q", got)
	}
	p.Complete()
	if got := p.Value(); got != dir+"/roadmaps/go.json" {
		t.Errorf("expected candidates to cycle, got %q", got)
	}
}

func TestPathInput_TrimsValue(t *testing.T) {
	p := NewPathInput("Roadmap file", "")
	p.SetValue("  ~/go.json  ")

	if got := p.Value(); got != "~/go.json" {
		t.Errorf("Value() = %q", got)
	}
	p.Reset()
	if p.Value() != "" {
		t.Error("expected empty value after reset")
	}
}
