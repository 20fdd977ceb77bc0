package form

import (
	"context"
	"fmt"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Outcome reports what a submit attempt did.
type Outcome struct {
	// Accepted is true when the form was valid and the notifier ran.
	Accepted bool
	// Submission is the payload delivered to the notifier when accepted.
	Submission *Submission
	// Result is the validation pass the decision was based on.
	Result validation.Result
}

// Submit runs the Editing -> Submitted transition. It sets the submitted flag
// and revalidates everything. An invalid form marks every field touched,
// notifies listeners and returns without side effects. A valid form runs the
// transformer, adopts the values it rewrote and validates again, so the
// notifier only ever receives values that pass their rules. It then hands a
// Submission to the notifier exactly once, resets every field and clears the
// submitted flag. When the notifier fails the state is kept so the user can
// retry.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	f.submitted = true
	result := f.revalidate()
	outcome := Outcome{Result: result}

	if !result.Valid() {
		f.reject(result)
		return outcome, nil
	}

	values := f.Values()
	if f.transformer != nil {
		transformed, err := f.transformer(values)
		if err != nil {
			return outcome, fmt.Errorf("form: submit transformer: %w", err)
		}
		values = transformed
		if f.adopt(values) {
			outcome.Result = f.revalidate()
			if !outcome.Result.Valid() {
				f.reject(outcome.Result)
				return outcome, nil
			}
		}
	}

	submission := Submission{
		ID:          f.newID(),
		FormID:      f.definition.ID,
		SubmittedAt: f.now(),
		Values:      values,
	}
	if f.notifier != nil {
		if err := f.notifier.Notify(ctx, submission); err != nil {
			f.logger.Error("form submit notification failed",
				"form", f.definition.ID,
				"submission", submission.ID,
				"error", err,
			)
			return outcome, fmt.Errorf("form: notify: %w", err)
		}
	}
	f.logger.Info("form submitted",
		"form", f.definition.ID,
		"submission", submission.ID,
	)

	outcome.Accepted = true
	outcome.Submission = &submission

	f.resetFields()
	f.submitted = false
	f.revalidate()
	f.emit(Event{Kind: EventSubmitted, Affected: f.Fields(), Submission: &submission})
	return outcome, nil
}

func (f *Form) reject(result validation.Result) {
	for _, name := range f.order {
		f.fields[name].Touched = true
	}
	f.logger.Info("form submit rejected",
		"form", f.definition.ID,
		"invalid", result.Invalid(),
	)
	f.emit(Event{Kind: EventRejected, Affected: f.Fields()})
}

// adopt stores transformed values back into their fields. Keys the form does
// not declare and keys the transformer dropped are ignored. It reports whether
// any field value changed.
func (f *Form) adopt(values map[string]any) bool {
	changed := false
	for _, name := range f.order {
		value, ok := values[name]
		if !ok {
			continue
		}
		field := f.fields[name]
		if validation.Equal(value, field.Value) {
			continue
		}
		field.Value = validation.Clone(value)
		field.Dirty = !validation.Equal(field.Value, f.initial[name])
		changed = true
	}
	return changed
}
