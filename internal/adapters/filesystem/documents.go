package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"roadtrack/internal/ports"
)

// StdinPath is the path that reads the document from standard input
const StdinPath = "-"

// DocumentReader implements ports.DocumentReader for local files and stdin
type DocumentReader struct {
	stdin io.Reader
}

var _ ports.DocumentReader = (*DocumentReader)(nil)

// NewDocumentReader creates a reader that uses os.Stdin for "-"
func NewDocumentReader() *DocumentReader {
	return &DocumentReader{stdin: os.Stdin}
}

// NewDocumentReaderFrom creates a reader that uses stdin for "-"
func NewDocumentReaderFrom(stdin io.Reader) *DocumentReader {
	return &DocumentReader{stdin: stdin}
}

// ReadDocument loads the document at path, detecting YAML by extension
func (r *DocumentReader) ReadDocument(ctx context.Context, path string) (*ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == StdinPath {
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &ports.Document{Name: "stdin", Data: data, Format: ports.FormatJSON}, nil
	}

	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &ports.Document{
		Name:   filepath.Base(path),
		Data:   data,
		Format: FormatForPath(path),
	}, nil
}

// FormatForPath picks the document format from the file extension
func FormatForPath(path string) ports.DocumentFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ports.FormatYAML
	default:
		return ports.FormatJSON
	}
}
