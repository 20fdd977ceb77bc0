package model

import (
	"strings"
)

// Builder normalises raw form definitions (usually decoded from YAML) into
// FormModels the engine can compile.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build validates the definition and returns a normalised copy. Missing labels
// are derived from field names and option lists are trimmed and de-duplicated.
func (b *Builder) Build(def FormModel) (FormModel, error) {
	form := cloneForm(def)
	form.ID = strings.TrimSpace(form.ID)
	if form.Title == "" {
		form.Title = b.opts.Labeler(form.ID)
	}

	for i := range form.Fields {
		field := &form.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Kind == "" {
			field.Kind = FieldKindString
		}
		if strings.TrimSpace(field.Label) == "" {
			field.Label = b.opts.Labeler(field.Name)
		}
		field.Options = normaliseOptions(field.Options)
	}

	if err := validateForm(form); err != nil {
		return FormModel{}, err
	}
	return form, nil
}

func normaliseOptions(options []string) []string {
	if len(options) == 0 {
		return nil
	}
	out := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		trimmed := strings.TrimSpace(option)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func cloneForm(src FormModel) FormModel {
	out := src
	out.Metadata = cloneStringMap(src.Metadata)
	out.Fields = make([]Field, len(src.Fields))
	for i, field := range src.Fields {
		out.Fields[i] = cloneField(field)
	}
	if len(src.CrossRules) > 0 {
		out.CrossRules = make([]CrossRule, len(src.CrossRules))
		for i, rule := range src.CrossRules {
			out.CrossRules[i] = CrossRule{Kind: rule.Kind, Params: cloneStringMap(rule.Params)}
		}
	}
	return out
}

func cloneField(src Field) Field {
	out := src
	out.Options = append([]string(nil), src.Options...)
	out.Metadata = cloneStringMap(src.Metadata)
	if len(src.Validations) > 0 {
		out.Validations = make([]ValidationRule, len(src.Validations))
		for i, rule := range src.Validations {
			out.Validations[i] = ValidationRule{Kind: rule.Kind, Params: cloneStringMap(rule.Params)}
		}
	}
	return out
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
