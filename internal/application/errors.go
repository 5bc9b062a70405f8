package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrNoRoadmap       = errors.New("no roadmap loaded")
	ErrTopicNotFound   = errors.New("topic not found")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	// Document is set when the failure is in an imported roadmap document
	Document bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExportError represents an export that could not produce a document
type ExportError struct {
	Reason error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("cannot export: %v", e.Reason)
}

func (e *ExportError) Unwrap() error {
	return e.Reason
}

// StorageDecodeError represents a persisted value that could not be decoded
type StorageDecodeError struct {
	Key string
	Err error
}

func (e *StorageDecodeError) Error() string {
	return fmt.Sprintf("corrupt value for %q: %v", e.Key, e.Err)
}

func (e *StorageDecodeError) Unwrap() error {
	return e.Err
}

// TopicError reports an operation on a topic ID the roadmap does not contain
type TopicError struct {
	TopicID string
}

func (e *TopicError) Error() string {
	return fmt.Sprintf("topic %q not found", e.TopicID)
}

func (e *TopicError) Is(target error) bool {
	return target == ErrTopicNotFound
}

// UserMessage converts err into the single line shown in the error banner
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var valErr *ValidationError
	var exportErr *ExportError
	switch {
	case errors.As(err, &valErr):
		if valErr.Document {
			return fmt.Sprintf("Invalid file format: %s", valErr.Message)
		}
		return valErr.Error()
	case errors.As(err, &exportErr):
		if errors.Is(err, ErrNothingToExport) {
			return "No roadmap loaded to export"
		}
		return fmt.Sprintf("Export failed: %v", exportErr.Reason)
	case errors.Is(err, ErrNoRoadmap):
		return "No roadmap loaded. Import a JSON file first."
	default:
		return err.Error()
	}
}
