package ports

import "os/exec"

// EditorOpener defines the interface for editing text in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd that opens path in the user's editor.
	// Used with bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
