package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

var (
	// ErrUnknownField is returned when an operation names a field the form
	// does not declare.
	ErrUnknownField = errors.New("form: unknown field")
)

// Phase is the orchestration state of a form.
type Phase string

const (
	PhaseEditing   Phase = "editing"
	PhaseSubmitted Phase = "submitted"
)

// Field is the runtime state of one input.
type Field struct {
	Name    string
	Value   any
	Touched bool
	Dirty   bool
	Errors  validation.Codes
}

// Submission is the payload handed to the submit side effect.
type Submission struct {
	ID          string
	FormID      string
	SubmittedAt time.Time
	Values      map[string]any
}

// Notifier performs the submit side effect. It runs at most once per
// successful submit.
type Notifier interface {
	Notify(ctx context.Context, submission Submission) error
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, submission Submission) error

// Notify calls the underlying function.
func (fn NotifierFunc) Notify(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// Transformer rewrites the validated values before they reach the notifier,
// for example to sanitise free text.
type Transformer func(map[string]any) (map[string]any, error)

// Form holds the FormState: named fields with values and rules, the form
// level cross rules, and the submitted flag. A Form is owned by a single
// event loop and is not safe for concurrent use.
type Form struct {
	definition model.FormModel
	rules      *validation.RuleSet

	order     []string
	fields    map[string]*Field
	initial   map[string]any
	formCodes validation.Codes
	submitted bool

	notifier    Notifier
	transformer Transformer
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string

	prefill    map[string]any
	listeners  map[int]Listener
	listenerID int
}

// New compiles the definition and returns a form in the Editing phase with
// every field at its initial value.
func New(definition model.FormModel, options ...Option) (*Form, error) {
	rules, err := validation.Compile(definition)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}

	f := &Form{
		definition: definition,
		rules:      rules,
		fields:     make(map[string]*Field, len(definition.Fields)),
		initial:    make(map[string]any, len(definition.Fields)),
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
		listeners:  make(map[int]Listener),
	}
	for _, field := range definition.Fields {
		f.order = append(f.order, field.Name)
		f.initial[field.Name] = InitialValue(field)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	for name, value := range f.prefill {
		if _, ok := f.initial[name]; !ok {
			return nil, fmt.Errorf("%w %q in initial values", ErrUnknownField, name)
		}
		f.initial[name] = validation.Clone(value)
	}

	f.resetFields()
	f.revalidate()
	return f, nil
}

// InitialValue returns the empty value a field starts from: false for
// booleans, an empty list for multi-choice, nil for dates and "" otherwise.
func InitialValue(field model.Field) any {
	switch field.Kind {
	case model.FieldKindBoolean:
		return false
	case model.FieldKindMultiChoice:
		return []string{}
	case model.FieldKindDate:
		return nil
	default:
		return ""
	}
}

// Definition returns the form definition the engine was built from.
func (f *Form) Definition() model.FormModel {
	return f.definition
}

// Phase reports the orchestration state.
func (f *Form) Phase() Phase {
	if f.submitted {
		return PhaseSubmitted
	}
	return PhaseEditing
}

// Submitted reports the form level submitted flag.
func (f *Form) Submitted() bool {
	return f.submitted
}

// Fields lists the field names in declaration order.
func (f *Form) Fields() []string {
	return append([]string(nil), f.order...)
}

// Field returns a copy of the named field's state.
func (f *Form) Field(name string) (Field, bool) {
	field, ok := f.fields[name]
	if !ok {
		return Field{}, false
	}
	out := *field
	out.Value = validation.Clone(field.Value)
	out.Errors = append(validation.Codes(nil), field.Errors...)
	return out, true
}

// Value returns the current value of the named field.
func (f *Form) Value(name string) (any, bool) {
	field, ok := f.fields[name]
	if !ok {
		return nil, false
	}
	return validation.Clone(field.Value), true
}

// Values returns a copy of every field's current value.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.order))
	for _, name := range f.order {
		out[name] = validation.Clone(f.fields[name].Value)
	}
	return out
}

// Set records a user input event: the value is stored, dirty tracking is
// updated and the field plus every cross rule reading it are re-evaluated
// before listeners are notified.
func (f *Form) Set(name string, value any) error {
	field, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	field.Value = validation.Clone(value)
	field.Dirty = !validation.Equal(field.Value, f.initial[name])
	f.revalidate()

	f.logger.Debug("form field changed",
		"form", f.definition.ID,
		"field", name,
		"dirty", field.Dirty,
		"errors", []string(field.Errors),
	)
	f.emit(Event{Kind: EventValueChanged, Field: name, Affected: f.rules.Dependents(name)})
	return nil
}

// Dependents returns the fields whose errors may change when name changes:
// the field itself and every target of a cross rule reading it.
func (f *Form) Dependents(name string) []string {
	return f.rules.Dependents(name)
}

// Touch marks the field as visited so its errors become visible.
func (f *Form) Touch(name string) error {
	field, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if field.Touched {
		return nil
	}
	field.Touched = true
	f.emit(Event{Kind: EventTouched, Field: name, Affected: []string{name}})
	return nil
}

// Validate re-runs every rule against the current values and returns the
// outcome. It has no effect beyond refreshing the cached error sets, so
// repeated calls on unchanged state return identical results.
func (f *Form) Validate() validation.Result {
	return f.revalidate()
}

// Valid reports whether every field's error set is empty.
func (f *Form) Valid() bool {
	for _, name := range f.order {
		if !f.fields[name].Errors.Empty() {
			return false
		}
	}
	return true
}

// Errors returns the named field's current error set.
func (f *Form) Errors(name string) validation.Codes {
	field, ok := f.fields[name]
	if !ok {
		return nil
	}
	return append(validation.Codes(nil), field.Errors...)
}

// FormErrors returns the codes raised by cross-field rules.
func (f *Form) FormErrors() validation.Codes {
	return append(validation.Codes(nil), f.formCodes...)
}

// VisibleErrors returns the field's errors when they should be surfaced: the
// field was touched or a submit was attempted. Otherwise it returns nil.
func (f *Form) VisibleErrors(name string) validation.Codes {
	field, ok := f.fields[name]
	if !ok {
		return nil
	}
	if !field.Touched && !f.submitted {
		return nil
	}
	return append(validation.Codes(nil), field.Errors...)
}

// Reset restores every field to its initial value and clears touched and
// dirty flags. The submitted flag is left alone: only a successful submit
// clears it.
func (f *Form) Reset() {
	f.resetFields()
	f.revalidate()
	f.emit(Event{Kind: EventReset, Affected: f.Fields()})
}

func (f *Form) resetFields() {
	for _, name := range f.order {
		f.fields[name] = &Field{
			Name:  name,
			Value: validation.Clone(f.initial[name]),
		}
	}
}

func (f *Form) revalidate() validation.Result {
	result := f.rules.Evaluate(f.currentValues())
	for _, name := range f.order {
		f.fields[name].Errors = result.Fields[name]
	}
	f.formCodes = result.Form
	return result
}

func (f *Form) currentValues() map[string]any {
	values := make(map[string]any, len(f.order))
	for _, name := range f.order {
		values[name] = f.fields[name].Value
	}
	return values
}

func (f *Form) snapshotErrors() map[string]validation.Codes {
	out := make(map[string]validation.Codes, len(f.order))
	for _, name := range f.order {
		out[name] = append(validation.Codes(nil), f.fields[name].Errors...)
	}
	return out
}
