// Package sanitize strips markup from free-text submission values before they
// leave the form engine.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Text removes every HTML element from raw and returns plain text. Entities
// escaped by the policy are decoded again so "O'Brien" survives untouched.
func Text(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	cleaned := textSanitizer().Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Sanitizer cleans the free-text fields of one form definition.
type Sanitizer struct {
	fields map[string]struct{}
}

// Option customises a Sanitizer.
type Option func(*Sanitizer)

// WithFields adds fields to the sanitised set regardless of their kind.
func WithFields(names ...string) Option {
	return func(s *Sanitizer) {
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				s.fields[name] = struct{}{}
			}
		}
	}
}

// WithoutFields removes fields from the sanitised set.
func WithoutFields(names ...string) Option {
	return func(s *Sanitizer) {
		for _, name := range names {
			delete(s.fields, strings.TrimSpace(name))
		}
	}
}

// New selects the string and email fields of the definition. Passwords,
// choices, booleans and dates are never rewritten.
func New(definition model.FormModel, options ...Option) *Sanitizer {
	s := &Sanitizer{fields: make(map[string]struct{})}
	for _, field := range definition.Fields {
		switch field.Kind {
		case model.FieldKindString, model.FieldKindEmail:
			s.fields[field.Name] = struct{}{}
		}
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Apply returns a copy of values with selected string values sanitised.
func (s *Sanitizer) Apply(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for name, value := range values {
		text, ok := value.(string)
		if _, selected := s.fields[name]; !selected || !ok {
			out[name] = value
			continue
		}
		out[name] = Text(text)
	}
	return out, nil
}

// Transformer adapts the sanitizer to the form submit pipeline.
func (s *Sanitizer) Transformer() form.Transformer {
	return s.Apply
}
