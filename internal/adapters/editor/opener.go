package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"roadtrack/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	preferred string
	getenv    func(string) string
	lookPath  func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener. preferred comes from the config
// file and wins over the environment when set.
func NewOpener(preferred string) *Opener {
	return &Opener{
		preferred: preferred,
		getenv:    os.Getenv,
		lookPath:  exec.LookPath,
	}
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// Allow editors with arguments, e.g. "code --wait"
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}
	args := append(parts[1:], path)

	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if strings.TrimSpace(o.preferred) != "" {
		return o.preferred
	}

	// Check $EDITOR first
	if editor := o.getenv("EDITOR"); strings.TrimSpace(editor) != "" {
		return editor
	}

	// Check $VISUAL
	if visual := o.getenv("VISUAL"); strings.TrimSpace(visual) != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
