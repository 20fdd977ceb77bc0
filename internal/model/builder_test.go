package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuilder_NormalisesDefinition(t *testing.T) {
	def := FormModel{
		ID: " registration ",
		Fields: []Field{
			{Name: "fullName", Validations: []ValidationRule{{Kind: ValidationRuleRequired}}},
			{Name: "githubProfile", Kind: FieldKindString},
			{Name: "primaryLanguage", Kind: FieldKindChoice, Options: []string{" Go ", "Rust", "Go", ""}},
		},
	}

	form, err := New(Options{}).Build(def)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.ID != "registration" || form.Title != "Registration" {
		t.Fatalf("unexpected id/title: %q / %q", form.ID, form.Title)
	}

	gotLabels := []string{}
	for _, field := range form.Fields {
		gotLabels = append(gotLabels, field.Label)
	}
	wantLabels := []string{"Full Name", "GitHub Profile", "Primary Language"}
	if diff := cmp.Diff(wantLabels, gotLabels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	if form.Fields[0].Kind != FieldKindString {
		t.Fatalf("expected default kind string, got %q", form.Fields[0].Kind)
	}
	if diff := cmp.Diff([]string{"Go", "Rust"}, form.Fields[2].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	// the input definition must not be mutated
	if def.Fields[2].Options[0] != " Go " {
		t.Fatalf("expected source definition to stay untouched")
	}
}

func TestBuilder_RejectsInvalidDefinitions(t *testing.T) {
	cases := []struct {
		name string
		def  FormModel
		want string
	}{
		{
			name: "missing id",
			def:  FormModel{Fields: []Field{{Name: "a"}}},
			want: "form id is required",
		},
		{
			name: "duplicate field",
			def:  FormModel{ID: "f", Fields: []Field{{Name: "a"}, {Name: "a"}}},
			want: `duplicate field "a"`,
		},
		{
			name: "choice without options",
			def:  FormModel{ID: "f", Fields: []Field{{Name: "a", Kind: FieldKindChoice}}},
			want: "choice fields require options",
		},
		{
			name: "bad min length",
			def: FormModel{ID: "f", Fields: []Field{{
				Name:        "a",
				Validations: []ValidationRule{{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "x"}}},
			}}},
			want: "minLength requires a non-negative value",
		},
		{
			name: "bad pattern",
			def: FormModel{ID: "f", Fields: []Field{{
				Name:        "a",
				Validations: []ValidationRule{{Kind: ValidationRulePattern, Params: map[string]string{"pattern": "("}}},
			}}},
			want: "pattern",
		},
		{
			name: "unknown rule",
			def: FormModel{ID: "f", Fields: []Field{{
				Name:        "a",
				Validations: []ValidationRule{{Kind: "nope"}},
			}}},
			want: `unknown validation "nope"`,
		},
		{
			name: "cross rule references unknown field",
			def: FormModel{
				ID:     "f",
				Fields: []Field{{Name: "password"}},
				CrossRules: []CrossRule{{
					Kind:   CrossRulePasswordMatch,
					Params: map[string]string{"field": "password", "confirm": "confirmPassword"},
				}},
			},
			want: `unknown field "confirmPassword"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Options{}).Build(tc.def)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"fullName":        "Full Name",
		"confirmPassword": "Confirm Password",
		"agree_to_terms":  "Agree To Terms",
		"githubProfile":   "GitHub Profile",
		"":                "",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
