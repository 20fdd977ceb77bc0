package registration

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ReadValuesFile reads submission values for form from a JSON or YAML file.
func ReadValuesFile(form model.FormModel, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registration: read %s: %w", path, err)
	}
	return ReadValues(form, data, path)
}

// ReadValues decodes a flat name -> value document and coerces each value to
// the shape the field kind expects: lists for multi-choice fields, YYYY-MM-DD
// strings for dates and strings for text fields. Booleans are kept as
// decoded so a quoted "true" still fails requiredTrue.
func ReadValues(form model.FormModel, data []byte, source string) (map[string]any, error) {
	raw := map[string]any{}
	if strings.TrimSpace(string(data)) != "" {
		var err error
		if isJSON(source, data) {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return nil, fmt.Errorf("registration: parse values %s: %w", source, err)
		}
	}

	out := make(map[string]any, len(raw))
	for name, value := range raw {
		field, ok := form.Field(name)
		if !ok {
			out[name] = value
			continue
		}
		out[name] = coerce(field, value)
	}
	return out, nil
}

func coerce(field model.Field, value any) any {
	if value == nil {
		return nil
	}
	switch field.Kind {
	case model.FieldKindMultiChoice:
		return append([]string{}, validation.StringList(value)...)
	case model.FieldKindDate:
		if t, ok := value.(time.Time); ok {
			return t.Format(time.DateOnly)
		}
		return validation.StringValue(value)
	case model.FieldKindBoolean:
		return value
	default:
		return validation.StringValue(value)
	}
}
