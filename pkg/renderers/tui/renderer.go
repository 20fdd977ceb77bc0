package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/notify"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

const defaultMaxAttempts = 3

// Renderer drives a form through terminal prompts. Every answer is fed to the
// form engine, errors are shown once a field is touched, and submission is
// retried for the fields that are still invalid.
type Renderer struct {
	driver       PromptDriver
	outputFormat notify.Format
	logger       *slog.Logger
	maxAttempts  int

	manifest  *theme.Manifest
	selector  theme.ThemeSelector
	themeName string
	variant   string
	plain     bool
	palette   Palette
}

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// light theme).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: notify.FormatJSON,
		logger:       slog.Default(),
		maxAttempts:  defaultMaxAttempts,
		manifest:     DefaultManifest(),
		themeName:    ThemeName,
		variant:      VariantLight,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if err := r.applyTheme(); err != nil {
		return nil, err
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return r.outputFormat.ContentType()
}

// Variant reports the active theme variant.
func (r *Renderer) Variant() string {
	return r.variant
}

// ToggleTheme switches between the light and dark variants.
func (r *Renderer) ToggleTheme() error {
	previous := r.variant
	r.variant = otherVariant(r.variant)
	if err := r.applyTheme(); err != nil {
		r.variant = previous
		return err
	}
	r.logger.Debug("tui theme toggled", "variant", r.variant)
	return nil
}

func (r *Renderer) applyTheme() error {
	manifest, variant := r.manifest, r.variant
	if r.selector != nil {
		selection, err := r.selector.Select(r.themeName, r.variant)
		if err != nil {
			return fmt.Errorf("tui: select theme %q/%q: %w", r.themeName, r.variant, err)
		}
		if selection != nil && selection.Manifest != nil {
			manifest = selection.Manifest
			if selection.Variant != "" {
				variant = selection.Variant
			}
		}
	}
	palette, err := NewPalette(manifest, variant)
	if err != nil {
		return err
	}
	if r.plain {
		palette = palette.Plain()
	}
	r.palette = palette
	return nil
}

// Render prompts for every field, submits, and re-prompts the invalid fields
// until the submit is accepted or the attempts run out. It returns the
// accepted submission values serialized in the configured format, with
// password values masked.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}
	if err := render.ApplyValues(f, opts.Values); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	projector := opts.Projector()
	watcher := &crossFieldWatcher{renderer: r, form: f, projector: projector, ctx: ctx, shown: map[string]validation.Codes{}}
	unsubscribe := f.Subscribe(watcher.observe)
	defer unsubscribe()

	pending := r.initialFields(f, opts.Values)
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		for i := 0; i < len(pending); i++ {
			if err := r.promptField(ctx, f, pending[i], projector); err != nil {
				return nil, err
			}
			pending = appendBroken(f, pending, pending[i])
		}

		outcome, err := f.Submit(ctx)
		if err != nil {
			return nil, fmt.Errorf("tui: submit: %w", err)
		}
		if outcome.Accepted {
			values := notify.Redact(outcome.Submission.Values, notify.SecretFields(f.Definition())...)
			return notify.Encode(r.outputFormat, values)
		}

		r.logger.Info("tui submit rejected", "attempt", attempt, "invalid", outcome.Result.Invalid())
		if err := r.reportErrors(ctx, f, projector); err != nil {
			return nil, err
		}
		pending = inOrder(f.Fields(), outcome.Result.Invalid())
	}
	return nil, ErrNotSubmitted
}

// appendBroken queues the fields a change to name just invalidated, such as
// the confirmation after a new password. A field is queued once per pass.
func appendBroken(f *form.Form, pending []string, name string) []string {
	for _, dep := range f.Dependents(name) {
		if dep == name || f.Errors(dep).Empty() || slices.Contains(pending, dep) {
			continue
		}
		pending = append(pending, dep)
	}
	return pending
}

// initialFields skips prefilled fields that are already valid.
func (r *Renderer) initialFields(f *form.Form, prefilled map[string]any) []string {
	var out []string
	for _, name := range f.Fields() {
		if _, ok := prefilled[name]; ok && f.Errors(name).Empty() {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, name string, projector render.Projector) error {
	field, ok := f.Definition().Field(name)
	if !ok {
		return fmt.Errorf("tui: %w %q", form.ErrUnknownField, name)
	}
	current, _ := f.Value(name)

	var value any
	for {
		answer, toggled, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if !toggled {
			value = answer
			break
		}
		if err := r.ToggleTheme(); err != nil {
			return err
		}
		if err := r.driver.Info(ctx, r.palette.Info.Sprintf("Theme: %s", r.variant)); err != nil {
			return err
		}
	}

	if err := f.Set(name, value); err != nil {
		return err
	}
	if err := f.Touch(name); err != nil {
		return err
	}
	return r.showMessages(ctx, projector.Messages(name, f.VisibleErrors(name)))
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current any) (any, bool, error) {
	message := r.palette.Prompt.Sprint(displayLabel(field))
	switch field.Kind {
	case model.FieldKindBoolean:
		def, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: field.Help})
		return answer, false, err

	case model.FieldKindChoice:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, validation.StringValue(current)),
			Help:         field.Help,
			PageSize:     len(field.Options),
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", false, nil
		}
		return field.Options[idx], false, nil

	case model.FieldKindMultiChoice:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: -1,
			Defaults:     indicesOf(field.Options, validation.StringList(current)),
			Help:         field.Help,
			PageSize:     len(field.Options),
		})
		if err != nil {
			return nil, false, err
		}
		return valuesFromIndices(field.Options, indices), false, nil

	case model.FieldKindPassword:
		answer, err := r.driver.Password(ctx, InputConfig{Message: message, Help: field.Help})
		if err != nil {
			return nil, false, err
		}
		if answer == ThemeCommand {
			return nil, true, nil
		}
		return answer, false, nil

	default:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     validation.StringValue(current),
			Help:        field.Help,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return nil, false, err
		}
		if strings.TrimSpace(answer) == ThemeCommand {
			return nil, true, nil
		}
		if field.Kind == model.FieldKindDate && strings.TrimSpace(answer) == "" {
			return nil, false, nil
		}
		return answer, false, nil
	}
}

func (r *Renderer) showMessages(ctx context.Context, messages []string) error {
	for _, message := range messages {
		if err := r.driver.Info(ctx, r.palette.Error.Sprint("  x "+message)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) reportErrors(ctx context.Context, f *form.Form, projector render.Projector) error {
	mapping := render.VisibleErrors(f, projector)
	if mapping.Empty() {
		return nil
	}
	if err := r.driver.Info(ctx, r.palette.Error.Sprint("Please fix the following:")); err != nil {
		return err
	}
	definition := f.Definition()
	for _, name := range f.Fields() {
		messages := mapping.Fields[name]
		if len(messages) == 0 {
			continue
		}
		field, _ := definition.Field(name)
		for _, message := range messages {
			line := fmt.Sprintf("  %s: %s", displayLabel(field), message)
			if err := r.driver.Info(ctx, r.palette.Error.Sprint(line)); err != nil {
				return err
			}
		}
	}
	for _, message := range mapping.Form {
		if err := r.driver.Info(ctx, r.palette.Error.Sprint("  "+message)); err != nil {
			return err
		}
	}
	return nil
}

// crossFieldWatcher reports errors that appear on a touched field because a
// different field changed, e.g. a password edited after its confirmation.
type crossFieldWatcher struct {
	renderer  *Renderer
	form      *form.Form
	projector render.Projector
	ctx       context.Context
	shown     map[string]validation.Codes
}

func (w *crossFieldWatcher) observe(event form.Event) {
	switch event.Kind {
	case form.EventValueChanged:
	case form.EventSubmitted, form.EventReset:
		w.shown = map[string]validation.Codes{}
		return
	default:
		return
	}

	w.shown[event.Field] = w.form.VisibleErrors(event.Field)
	for _, name := range event.Affected {
		if name == event.Field {
			continue
		}
		visible := w.form.VisibleErrors(name)
		if equalCodes(visible, w.shown[name]) {
			continue
		}
		w.shown[name] = visible
		if visible.Empty() {
			continue
		}
		field, _ := w.form.Definition().Field(name)
		for _, message := range w.projector.Messages(name, visible) {
			line := fmt.Sprintf("  %s: %s", displayLabel(field), message)
			if err := w.renderer.driver.Info(w.ctx, w.renderer.palette.Error.Sprint(line)); err != nil {
				w.renderer.logger.Warn("tui info failed", "error", err)
			}
		}
	}
}

func equalCodes(a, b validation.Codes) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if field.Required() {
		label += " *"
	}
	return label
}

func valuesFromIndices(options []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}

func inOrder(order, subset []string) []string {
	wanted := make(map[string]struct{}, len(subset))
	for _, name := range subset {
		wanted[name] = struct{}{}
	}
	var out []string
	for _, name := range order {
		if _, ok := wanted[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
