package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"roadtrack/internal/ports"
)

// ExportDir implements ports.ExportSink by writing files into a directory
type ExportDir struct {
	dir string
}

var _ ports.ExportSink = (*ExportDir)(nil)

// NewExportDir creates a sink for dir. The directory is created on first write.
func NewExportDir(dir string) *ExportDir {
	return &ExportDir{dir: expandHome(dir)}
}

// WriteExport writes data atomically to dir/name and returns the full path
func (e *ExportDir) WriteExport(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid export file name %q", name)
	}

	if err := os.MkdirAll(e.dir, dirPerms); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Chmod(path, filePerms); err != nil {
		return "", fmt.Errorf("failed to set file permissions: %w", err)
	}
	return path, nil
}
