package form_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

func definition() model.FormModel {
	return model.FormModel{
		ID: "signup",
		Fields: []model.Field{
			{
				Name:        "fullName",
				Kind:        model.FieldKindString,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}},
			},
			{
				Name: "password",
				Kind: model.FieldKindPassword,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired},
					{Kind: model.ValidationRulePassword},
				},
			},
			{
				Name:        "confirmPassword",
				Kind:        model.FieldKindPassword,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}},
			},
			{
				Name:        "interests",
				Kind:        model.FieldKindMultiChoice,
				Options:     []string{"DevOps", "AI/ML"},
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}},
			},
			{
				Name:        "agreeToTerms",
				Kind:        model.FieldKindBoolean,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequiredTrue}},
			},
		},
		CrossRules: []model.CrossRule{{
			Kind:   model.CrossRulePasswordMatch,
			Params: map[string]string{"field": "password", "confirm": "confirmPassword"},
		}},
	}
}

type recordingNotifier struct {
	calls []form.Submission
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, submission form.Submission) error {
	n.calls = append(n.calls, submission)
	return n.err
}

func newForm(t *testing.T, opts ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(definition(), opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func fill(t *testing.T, f *form.Form) {
	t.Helper()
	values := map[string]any{
		"fullName":        "Ada Lovelace",
		"password":        "Secret123",
		"confirmPassword": "Secret123",
		"interests":       []string{"DevOps"},
		"agreeToTerms":    true,
	}
	for _, name := range f.Fields() {
		if err := f.Set(name, values[name]); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

func TestNew_StartsEmptyAndEditing(t *testing.T) {
	f := newForm(t)

	if f.Phase() != form.PhaseEditing || f.Submitted() {
		t.Fatalf("expected editing phase")
	}
	want := map[string]any{
		"fullName":        "",
		"password":        "",
		"confirmPassword": "",
		"interests":       []string{},
		"agreeToTerms":    false,
	}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
	if f.Valid() {
		t.Fatalf("expected empty form to be invalid")
	}
	if got := f.VisibleErrors("fullName"); got != nil {
		t.Fatalf("expected untouched field to hide errors, got %v", got)
	}
	if got := f.Errors("fullName"); !got.Has(validation.CodeRequired) {
		t.Fatalf("expected required error to be computed, got %v", got)
	}
}

func TestSet_TracksDirtyAndRevalidates(t *testing.T) {
	f := newForm(t)

	if err := f.Set("fullName", "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}
	field, _ := f.Field("fullName")
	if !field.Dirty || field.Errors != nil {
		t.Fatalf("expected dirty valid field, got %+v", field)
	}

	if err := f.Set("fullName", ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	field, _ = f.Field("fullName")
	if field.Dirty {
		t.Fatalf("expected field back at its initial value to be clean")
	}

	if err := f.Set("nope", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestPasswordMismatch_FollowsEitherField(t *testing.T) {
	f := newForm(t)
	var events []form.Event
	f.Subscribe(func(e form.Event) { events = append(events, e) })

	_ = f.Set("password", "Secret123")
	_ = f.Set("confirmPassword", "Other456")

	if got := f.Errors("confirmPassword"); !got.Has(validation.CodePasswordMismatch) {
		t.Fatalf("expected mismatch on confirmPassword, got %v", got)
	}
	if got := f.FormErrors(); !got.Has(validation.CodePasswordMismatch) {
		t.Fatalf("expected mismatch at form level, got %v", got)
	}

	// changing the other side clears the error immediately
	_ = f.Set("password", "Other456")
	if got := f.Errors("confirmPassword"); got.Has(validation.CodePasswordMismatch) {
		t.Fatalf("expected mismatch to clear, got %v", got)
	}
	if got := f.FormErrors(); got != nil {
		t.Fatalf("expected no form errors, got %v", got)
	}

	last := events[len(events)-1]
	if last.Kind != form.EventValueChanged || last.Field != "password" {
		t.Fatalf("unexpected last event %+v", last)
	}
	if diff := cmp.Diff([]string{"password", "confirmPassword"}, last.Affected); diff != "" {
		t.Fatalf("affected mismatch (-want +got):\n%s", diff)
	}
	if last.Errors["confirmPassword"] != nil {
		t.Fatalf("expected event snapshot without mismatch, got %v", last.Errors["confirmPassword"])
	}
}

func TestSubmit_InvalidMarksEveryFieldTouched(t *testing.T) {
	notifier := &recordingNotifier{}
	f := newForm(t, form.WithNotifier(notifier))
	_ = f.Set("fullName", "Ada")

	var kinds []form.EventKind
	f.Subscribe(func(e form.Event) { kinds = append(kinds, e.Kind) })

	outcome, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted {
		t.Fatalf("expected submit to be rejected")
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("expected no side effect, got %d calls", len(notifier.calls))
	}
	if f.Phase() != form.PhaseSubmitted || !f.Submitted() {
		t.Fatalf("expected submitted flag to stay set")
	}
	for _, name := range f.Fields() {
		field, _ := f.Field(name)
		if !field.Touched {
			t.Fatalf("expected %s to be touched", name)
		}
	}
	if got := f.VisibleErrors("agreeToTerms"); !got.Has(validation.CodeRequired) {
		t.Fatalf("expected agreeToTerms errors to be visible, got %v", got)
	}
	if diff := cmp.Diff([]form.EventKind{form.EventRejected}, kinds); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ValidFiresOnceAndResets(t *testing.T) {
	notifier := &recordingNotifier{}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newForm(t,
		form.WithNotifier(notifier),
		form.WithClock(func() time.Time { return stamp }),
		form.WithIDGenerator(func() string { return "sub-1" }),
	)
	fill(t, f)
	_ = f.Touch("fullName")

	outcome, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted || outcome.Submission == nil {
		t.Fatalf("expected submit to be accepted")
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.calls))
	}

	want := form.Submission{
		ID:          "sub-1",
		FormID:      "signup",
		SubmittedAt: stamp,
		Values: map[string]any{
			"fullName":        "Ada Lovelace",
			"password":        "Secret123",
			"confirmPassword": "Secret123",
			"interests":       []string{"DevOps"},
			"agreeToTerms":    true,
		},
	}
	if diff := cmp.Diff(want, notifier.calls[0]); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	if f.Submitted() || f.Phase() != form.PhaseEditing {
		t.Fatalf("expected submitted flag to clear")
	}
	for _, name := range f.Fields() {
		field, _ := f.Field(name)
		if field.Touched || field.Dirty {
			t.Fatalf("expected %s to be reset, got %+v", name, field)
		}
	}
	if got, _ := f.Value("fullName"); got != "" {
		t.Fatalf("expected fullName reset, got %v", got)
	}
}

func TestSubmit_NotifierFailureKeepsState(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("toast unavailable")}
	f := newForm(t, form.WithNotifier(notifier))
	fill(t, f)

	_, err := f.Submit(context.Background())
	if err == nil {
		t.Fatalf("expected notifier error")
	}
	if got, _ := f.Value("fullName"); got != "Ada Lovelace" {
		t.Fatalf("expected values to survive a failed notification, got %v", got)
	}
	if !f.Submitted() {
		t.Fatalf("expected submitted flag to remain set")
	}
}

func TestSubmit_TransformerFeedsNotifier(t *testing.T) {
	notifier := &recordingNotifier{}
	f := newForm(t,
		form.WithNotifier(notifier),
		form.WithTransformer(func(values map[string]any) (map[string]any, error) {
			delete(values, "confirmPassword")
			return values, nil
		}),
	)
	fill(t, f)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, ok := notifier.calls[0].Values["confirmPassword"]; ok {
		t.Fatalf("expected transformer to drop confirmPassword")
	}
}

func TestSubmit_TransformedValuesAreValidatedAgain(t *testing.T) {
	notifier := &recordingNotifier{}
	strip := strings.NewReplacer("<i>", "", "</i>", "")
	f := newForm(t,
		form.WithNotifier(notifier),
		form.WithTransformer(func(values map[string]any) (map[string]any, error) {
			values["fullName"] = strip.Replace(values["fullName"].(string))
			return values, nil
		}),
	)
	fill(t, f)
	_ = f.Set("fullName", "<i></i>")

	var kinds []form.EventKind
	f.Subscribe(func(e form.Event) { kinds = append(kinds, e.Kind) })

	outcome, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted || len(notifier.calls) != 0 {
		t.Fatalf("expected transformed invalid values to be rejected, got %+v", outcome)
	}
	if diff := cmp.Diff([]string{"fullName"}, outcome.Result.Invalid()); diff != "" {
		t.Fatalf("invalid fields mismatch (-want +got):\n%s", diff)
	}
	if got, _ := f.Value("fullName"); got != "" {
		t.Fatalf("expected the transformed value to be kept, got %q", got)
	}
	if got := f.VisibleErrors("fullName"); !got.Has(validation.CodeRequired) {
		t.Fatalf("expected required to be visible, got %v", got)
	}
	if !f.Submitted() {
		t.Fatalf("expected the form to stay submitted")
	}
	if diff := cmp.Diff([]form.EventKind{form.EventRejected}, kinds); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	f := newForm(t)
	_ = f.Set("password", "1bc!")

	first := f.Validate()
	second := f.Validate()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validate not idempotent (-first +second):\n%s", diff)
	}
}

func TestReset_KeepsSubmittedFlag(t *testing.T) {
	f := newForm(t)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_ = f.Set("fullName", "Ada")
	f.Reset()

	if !f.Submitted() {
		t.Fatalf("expected reset to leave the submitted flag alone")
	}
	field, _ := f.Field("fullName")
	if field.Touched || field.Dirty || field.Value != "" {
		t.Fatalf("expected field to be reset, got %+v", field)
	}
}

func TestWithInitialValues(t *testing.T) {
	f := newForm(t, form.WithInitialValues(map[string]any{"fullName": "Guest"}))
	if got, _ := f.Value("fullName"); got != "Guest" {
		t.Fatalf("expected prefilled value, got %v", got)
	}
	field, _ := f.Field("fullName")
	if field.Dirty {
		t.Fatalf("expected prefilled field to be clean")
	}

	_, err := form.New(definition(), form.WithInitialValues(map[string]any{"ghost": 1}))
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	f := newForm(t)
	calls := 0
	unsubscribe := f.Subscribe(func(form.Event) { calls++ })

	_ = f.Touch("fullName")
	_ = f.Touch("fullName")
	unsubscribe()
	_ = f.Touch("password")

	if calls != 1 {
		t.Fatalf("expected a single delivered event, got %d", calls)
	}
}
