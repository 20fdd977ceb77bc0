// Package registration holds the membership registration form: its embedded
// definition, message catalogue, notification template and theme default, and
// the loader that reads overrides from JSON or YAML files.
package registration

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

//go:embed definitions/registration.yaml
var definitions embed.FS

// DefaultPath is the embedded definition consumed by Default.
const DefaultPath = "definitions/registration.yaml"

// Notification configures the post-submit message.
type Notification struct {
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
	Template     string `json:"template,omitempty" yaml:"template,omitempty"`
	Format       string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Theme selects the terminal theme variant ("light" or "dark").
type Theme struct {
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Registration is a loaded, validated registration configuration.
type Registration struct {
	Source       string
	Form         model.FormModel
	Messages     *render.Catalog
	Notification Notification
	Theme        Theme
}

type documentFile struct {
	Form         model.FormModel             `json:"form" yaml:"form"`
	Messages     map[string][]render.Message `json:"messages" yaml:"messages"`
	Notification Notification                `json:"notification" yaml:"notification"`
	Theme        Theme                       `json:"theme" yaml:"theme"`
}

// Option adjusts how a registration is loaded.
type Option func(*loadOptions)

type loadOptions struct {
	builder    []model.BuilderOption
	decorators []model.Decorator
}

// WithBuilderOptions forwards options to the form model builder.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(opts *loadOptions) {
		opts.builder = append(opts.builder, options...)
	}
}

// WithDecorators applies decorators to the built form model.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(opts *loadOptions) {
		opts.decorators = append(opts.decorators, decorators...)
	}
}

// WithMaxBirthDate overrides the inclusive cutoff of every birthdate rule.
func WithMaxBirthDate(latest time.Time) Option {
	return WithDecorators(MaxBirthDate(latest))
}

// MaxBirthDate returns a decorator rewriting the cutoff of birthdate rules.
func MaxBirthDate(latest time.Time) model.Decorator {
	cutoff := latest.Format(time.DateOnly)
	return model.DecoratorFunc(func(form *model.FormModel) error {
		for i := range form.Fields {
			for j := range form.Fields[i].Validations {
				rule := &form.Fields[i].Validations[j]
				if rule.Kind != model.ValidationRuleBirthdate {
					continue
				}
				params := make(map[string]string, len(rule.Params)+1)
				for key, value := range rule.Params {
					params[key] = value
				}
				params["max"] = cutoff
				rule.Params = params
			}
		}
		return nil
	})
}

// Default loads the embedded registration definition.
func Default(options ...Option) (Registration, error) {
	return LoadFS(definitions, DefaultPath, options...)
}

// MustDefault panics when the embedded definition cannot be loaded.
func MustDefault(options ...Option) Registration {
	reg, err := Default(options...)
	if err != nil {
		panic(err)
	}
	return reg
}

// LoadFile reads a definition from disk.
func LoadFile(path string, options ...Option) (Registration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registration{}, fmt.Errorf("registration: read %s: %w", path, err)
	}
	return Load(data, path, options...)
}

// LoadFS reads a definition from fsys.
func LoadFS(fsys fs.FS, path string, options ...Option) (Registration, error) {
	if fsys == nil {
		return Registration{}, fmt.Errorf("registration: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Registration{}, fmt.Errorf("registration: read %s: %w", path, err)
	}
	return Load(data, path, options...)
}

// Load parses a JSON or YAML definition, builds and decorates the form model
// and compiles the message catalogue.
func Load(data []byte, source string, options ...Option) (Registration, error) {
	cfg := loadOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc, err := parseDocument(data, source)
	if err != nil {
		return Registration{}, err
	}

	form, err := model.NewBuilder(cfg.builder...).Build(doc.Form)
	if err != nil {
		return Registration{}, fmt.Errorf("registration: %s: %w", source, err)
	}
	if err := model.Decorate(&form, cfg.decorators...); err != nil {
		return Registration{}, fmt.Errorf("registration: %s: decorate: %w", source, err)
	}

	catalog, err := buildCatalog(form, doc.Messages, source)
	if err != nil {
		return Registration{}, err
	}

	notification := doc.Notification
	if strings.TrimSpace(notification.Organization) == "" {
		notification.Organization = form.Title
	}

	theme := doc.Theme
	switch strings.ToLower(strings.TrimSpace(theme.Variant)) {
	case "", "light":
		theme.Variant = "light"
	case "dark":
		theme.Variant = "dark"
	default:
		return Registration{}, fmt.Errorf("registration: %s: unknown theme variant %q", source, theme.Variant)
	}

	return Registration{
		Source:       source,
		Form:         form,
		Messages:     catalog,
		Notification: notification,
		Theme:        theme,
	}, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("registration: file %s is empty", source)
	}

	if isJSON(source, data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("registration: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("registration: parse %s: %w", source, err)
	}
	return doc, nil
}

func isJSON(source string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(source), ".json") {
		return true
	}
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "{")
}

func buildCatalog(form model.FormModel, messages map[string][]render.Message, source string) (*render.Catalog, error) {
	for scope := range messages {
		switch scope {
		case render.DefaultScope, render.FormScope:
			continue
		}
		if _, ok := form.Field(scope); !ok {
			return nil, fmt.Errorf("registration: %s: messages reference unknown field %q", source, scope)
		}
	}
	catalog, err := render.NewCatalog(messages)
	if err != nil {
		return nil, fmt.Errorf("registration: %s: %w", source, err)
	}
	return catalog, nil
}
