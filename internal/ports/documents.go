package ports

import "context"

// DocumentFormat identifies how a roadmap document is encoded
type DocumentFormat string

const (
	FormatJSON DocumentFormat = "json"
	FormatYAML DocumentFormat = "yaml"
)

// Document is a raw roadmap document read from somewhere
type Document struct {
	Name   string // file name or "stdin"
	Data   []byte
	Format DocumentFormat
}

// DocumentReader loads roadmap documents for import
type DocumentReader interface {
	// ReadDocument reads the document at path ("-" means stdin)
	ReadDocument(ctx context.Context, path string) (*Document, error)
}

// ExportSink persists exported progress documents
type ExportSink interface {
	// WriteExport stores data under name and returns where it was written
	WriteExport(ctx context.Context, name string, data []byte) (string, error)
}
