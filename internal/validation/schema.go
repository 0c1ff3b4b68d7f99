package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrRecordInvalid = errors.New("validation: block record failed schema validation")

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// RecordValidationError surfaces schema violations for one inbound record.
type RecordValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *RecordValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrRecordInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *RecordValidationError) Unwrap() error {
	return ErrRecordInvalid
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var recordErr *RecordValidationError
	if errors.As(err, &recordErr) && recordErr != nil {
		return recordErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// blockRecordSchema constrains the envelope of an inbound block record: the
// identifier, the integer type code, the parent reference, and the children
// array. Payload bodies stay open; the renderer owns their semantics.
var blockRecordSchema = map[string]any{
	"type":     "object",
	"required": []any{"block_id", "block_type"},
	"properties": map[string]any{
		"block_id":   map[string]any{"type": "string", "minLength": 1},
		"block_type": map[string]any{"type": "integer", "minimum": 1},
		"parent_id":  map[string]any{"type": "string"},
		"children": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidateRecord checks one decoded record envelope against the block record
// schema, returning a *RecordValidationError describing every violation.
func ValidateRecord(record map[string]any) error {
	compiled, err := recordSchema()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecordInvalid, err)
	}
	if record == nil {
		record = map[string]any{}
	}
	if err := compiled.Validate(normalizeNumbers(record)); err != nil {
		return &RecordValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func recordSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileSchema(blockRecordSchema)
	})
	return compiledSchema, compileErr
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// normalizeNumbers re-decodes the value through encoding/json so integers
// arrive as json.Number-compatible float64 values the validator accepts.
func normalizeNumbers(record map[string]any) any {
	encoded, err := json.Marshal(record)
	if err != nil {
		return record
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return record
	}
	return out
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
