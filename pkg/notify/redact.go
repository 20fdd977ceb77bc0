package notify

import (
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// RedactedValue replaces secret values in written payloads.
const RedactedValue = "********"

// SecretFields lists the fields of definition whose values must not be
// written out: every password field.
func SecretFields(definition model.FormModel) []string {
	var names []string
	for _, field := range definition.Fields {
		if field.Kind == model.FieldKindPassword {
			names = append(names, field.Name)
		}
	}
	return names
}

// Redact returns a copy of values with the named non-empty entries replaced
// by RedactedValue.
func Redact(values map[string]any, names ...string) map[string]any {
	if len(names) == 0 {
		return values
	}
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	for _, name := range names {
		if value, ok := out[name]; ok && !validation.IsEmpty(value) {
			out[name] = RedactedValue
		}
	}
	return out
}
