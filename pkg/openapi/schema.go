package openapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	// Version is the OpenAPI version emitted by Document.
	Version = "3.0.3"

	// ExtensionMaxDate carries the inclusive birth date cutoff of date fields.
	ExtensionMaxDate = "x-max-date"
	// ExtensionRules lists the engine rule kinds attached to a property.
	ExtensionRules = "x-rules"
	// ExtensionCrossRules lists the cross-field rules on the object schema.
	ExtensionCrossRules = "x-cross-rules"
)

// Schema converts the form definition into an object schema. Field rules map
// onto the closest OpenAPI keyword; rules without an equivalent are kept in
// the x-rules extension.
func Schema(form model.FormModel) (*openapi3.Schema, error) {
	object := openapi3.NewObjectSchema()
	object.Title = form.Title

	for _, field := range form.Fields {
		property, required, err := fieldSchema(field)
		if err != nil {
			return nil, fmt.Errorf("openapi: field %q: %w", field.Name, err)
		}
		object.WithProperty(field.Name, property)
		if required {
			object.Required = append(object.Required, field.Name)
		}
	}

	if len(form.CrossRules) > 0 {
		cross := make([]any, 0, len(form.CrossRules))
		for _, rule := range form.CrossRules {
			entry := map[string]any{"kind": rule.Kind}
			for key, value := range rule.Params {
				entry[key] = value
			}
			cross = append(cross, entry)
		}
		object.Extensions = map[string]any{ExtensionCrossRules: cross}
	}
	return object, nil
}

func fieldSchema(field model.Field) (*openapi3.Schema, bool, error) {
	var schema *openapi3.Schema
	switch field.Kind {
	case model.FieldKindBoolean:
		schema = openapi3.NewBoolSchema()
	case model.FieldKindMultiChoice:
		items := openapi3.NewStringSchema()
		if len(field.Options) > 0 {
			items.WithEnum(enumValues(field.Options)...)
		}
		schema = openapi3.NewArraySchema().WithItems(items)
	case model.FieldKindChoice:
		schema = openapi3.NewStringSchema().WithEnum(enumValues(field.Options)...)
	case model.FieldKindDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
		schema.Nullable = true
	case model.FieldKindEmail:
		schema = openapi3.NewStringSchema().WithFormat("email")
	case model.FieldKindPassword:
		schema = openapi3.NewStringSchema().WithFormat("password")
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	schema.Description = field.Help

	required := false
	var kinds []any
	for _, rule := range field.Validations {
		kinds = append(kinds, rule.Kind)
		switch rule.Kind {
		case model.ValidationRuleRequired:
			required = true
			if field.Kind == model.FieldKindMultiChoice {
				schema.WithMinItems(1)
			}
		case model.ValidationRuleRequiredTrue:
			required = true
			schema.WithEnum(true)
		case model.ValidationRuleMinLength:
			n, err := strconv.Atoi(strings.TrimSpace(rule.Params["value"]))
			if err != nil {
				return nil, false, fmt.Errorf("minLength value: %w", err)
			}
			if field.Kind == model.FieldKindMultiChoice {
				schema.WithMinItems(int64(n))
			} else {
				schema.WithMinLength(int64(n))
			}
		case model.ValidationRulePattern:
			schema.WithPattern(anchored(rule.Params["pattern"]))
		case model.ValidationRuleGitHubProfile:
			schema.WithPattern(validation.GitHubProfileRX.String())
		case model.ValidationRulePassword:
			schema.WithPattern(`^[A-Za-z][A-Za-z0-9]*$`)
			schema.WithMinLength(8)
		case model.ValidationRuleBirthdate:
			latest := strings.TrimSpace(rule.Params["max"])
			if latest == "" {
				latest = validation.DefaultMaxBirthDate.Format("2006-01-02")
			}
			setExtension(schema, ExtensionMaxDate, latest)
		}
	}
	if len(kinds) > 0 {
		setExtension(schema, ExtensionRules, kinds)
	}
	return schema, required, nil
}

func anchored(expr string) string {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "^") && strings.HasSuffix(expr, "$") {
		return expr
	}
	return "^(?:" + expr + ")$"
}

func enumValues(options []string) []any {
	out := make([]any, 0, len(options))
	for _, option := range options {
		out = append(out, option)
	}
	return out
}

func setExtension(schema *openapi3.Schema, key string, value any) {
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	schema.Extensions[key] = value
}
