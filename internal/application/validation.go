package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"roadtrack/internal/domain"
	"roadtrack/internal/ports"
)

// roadmapSchema describes the minimal shape of an importable roadmap.
// Only title and topics are required; unknown fields are ignored.
const roadmapSchema = `{
	"type": "object",
	"required": ["title", "topics"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": ["string", "null"]},
		"topics": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"title": {"type": ["string", "null"]},
					"description": {"type": ["string", "null"]},
					"resources": {
						"type": ["array", "null"],
						"items": {"type": "string"}
					}
				}
			}
		}
	}
}`

var loadRoadmapSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(roadmapSchema))
})

// ParseRoadmap validates a raw document and decodes it into a Roadmap.
// Any structural problem is reported as a *ValidationError.
func ParseRoadmap(doc *ports.Document) (*domain.Roadmap, error) {
	data, err := normalizeDocument(doc)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, &ValidationError{
			Document: true,
			Field:    "(root)",
			Message:  fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	if err := validateRoadmapShape(generic); err != nil {
		return nil, err
	}

	var roadmap domain.Roadmap
	if err := json.Unmarshal(data, &roadmap); err != nil {
		return nil, &ValidationError{
			Document: true,
			Field:    "(root)",
			Message:  fmt.Sprintf("cannot decode roadmap: %v", err),
		}
	}
	if roadmap.Topics == nil {
		roadmap.Topics = []domain.Topic{}
	}
	// "resources": [] is exported without the key
	for i := range roadmap.Topics {
		if len(roadmap.Topics[i].Resources) == 0 {
			roadmap.Topics[i].Resources = nil
		}
	}
	return &roadmap, nil
}

// normalizeDocument returns JSON bytes for doc, converting YAML when needed
func normalizeDocument(doc *ports.Document) ([]byte, error) {
	if doc == nil {
		return nil, &ValidationError{Document: true, Field: "(root)", Message: "no document given"}
	}
	if doc.Format != ports.FormatYAML {
		return doc.Data, nil
	}

	var generic any
	if err := yaml.Unmarshal(doc.Data, &generic); err != nil {
		return nil, &ValidationError{
			Document: true,
			Field:    "(root)",
			Message:  fmt.Sprintf("invalid YAML: %v", err),
		}
	}
	data, err := json.Marshal(generic)
	if err != nil {
		return nil, &ValidationError{
			Document: true,
			Field:    "(root)",
			Message:  fmt.Sprintf("YAML document cannot be represented as JSON: %v", err),
		}
	}
	return data, nil
}

func validateRoadmapShape(document any) error {
	schema, err := loadRoadmapSchema()
	if err != nil {
		return fmt.Errorf("failed to load roadmap schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return &ValidationError{Document: true, Field: "(root)", Message: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	fields := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		fields = append(fields, ValidationError{Field: field, Message: desc.Description()})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Field < fields[j].Field
	})

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Error())
	}
	return &ValidationError{
		Document: true,
		Field:    fields[0].Field,
		Message:  "expected fields: title, topics[] (" + strings.Join(msgs, "; ") + ")",
	}
}

var validate = validator.New()

type statusInput struct {
	Status string `validate:"required,oneof=not-started in-progress completed"`
}

// ParseStatus checks that s is one of the known statuses
func ParseStatus(s string) (domain.Status, error) {
	if err := validate.Struct(statusInput{Status: s}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return "", &ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("must be one of %s, got %q", statusList(), s),
			}
		}
		return "", err
	}
	return domain.Status(s), nil
}

func statusList() string {
	names := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "topicID" -> "topic ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"topicID": "topic ID",
		"path":    "file path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
