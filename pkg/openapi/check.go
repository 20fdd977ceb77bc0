package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is one schema violation keyed by the JSON pointer of the offending
// value ("" for the payload root).
type Issue struct {
	Pointer string
	Field   string
	Keyword string
	Reason  string
}

// CheckPayload validates values against schema and returns every violation
// found. A nil slice means the payload conforms.
func CheckPayload(schema *openapi3.Schema, values map[string]any) ([]Issue, error) {
	if schema == nil {
		return nil, fmt.Errorf("openapi: schema is required")
	}
	payload, err := normalizePayload(values)
	if err != nil {
		return nil, err
	}

	err = schema.VisitJSON(payload, openapi3.MultiErrors())
	if err == nil {
		return nil, nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]Issue, 0, len(multi))
		for _, item := range multi {
			issues = append(issues, issueFromError(item))
		}
		return issues, nil
	}
	return []Issue{issueFromError(err)}, nil
}

// Payload groups issues by JSON pointer, the shape render.MapErrorPayload
// consumes.
func Payload(issues []Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(issues))
	for _, issue := range issues {
		out[issue.Pointer] = append(out[issue.Pointer], issue.Reason)
	}
	return out
}

func issueFromError(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		issue := Issue{
			Keyword: schemaErr.SchemaField,
			Reason:  schemaErr.Reason,
		}
		if len(pointer) > 0 {
			issue.Field = pointer[0]
			issue.Pointer = "#/" + strings.Join(pointer, "/")
		}
		if issue.Reason == "" {
			issue.Reason = schemaErr.Error()
		}
		return issue
	}
	return Issue{Reason: err.Error()}
}

// normalizePayload turns engine values into plain JSON values: dates become
// YYYY-MM-DD strings and typed slices become []any.
func normalizePayload(values map[string]any) (map[string]any, error) {
	prepared := make(map[string]any, len(values))
	for name, value := range values {
		switch v := value.(type) {
		case time.Time:
			if v.IsZero() {
				prepared[name] = nil
				continue
			}
			prepared[name] = v.Format(time.DateOnly)
		case *time.Time:
			if v == nil || v.IsZero() {
				prepared[name] = nil
				continue
			}
			prepared[name] = v.Format(time.DateOnly)
		default:
			prepared[name] = value
		}
	}

	raw, err := json.Marshal(prepared)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("openapi: decode payload: %w", err)
	}
	return out, nil
}

func marshalIndent(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("openapi: indent document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
