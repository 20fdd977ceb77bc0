package validation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRequired(t *testing.T) {
	rule := Required()

	empty := []any{nil, "", false, []string{}, []any{}, time.Time{}}
	for _, value := range empty {
		if got := rule(value); !got.Has(CodeRequired) {
			t.Fatalf("expected required for %#v, got %v", value, got)
		}
	}

	filled := []any{"x", " ", true, []string{"Go"}, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 0}
	for _, value := range filled {
		if got := rule(value); !got.Empty() {
			t.Fatalf("expected %#v to satisfy required, got %v", value, got)
		}
	}
}

func TestRequiredTrue(t *testing.T) {
	rule := RequiredTrue()
	if got := rule(true); !got.Empty() {
		t.Fatalf("expected true to pass, got %v", got)
	}
	for _, value := range []any{false, nil, "true", 1} {
		if got := rule(value); !got.Has(CodeRequired) {
			t.Fatalf("expected required for %#v, got %v", value, got)
		}
	}
}

func TestMinLength(t *testing.T) {
	rule := MinLength(3)
	cases := []struct {
		value any
		want  Codes
	}{
		{value: "", want: nil},
		{value: "ab", want: Codes{CodeMinLength}},
		{value: "abc", want: nil},
		{value: "äöü", want: nil},
		{value: []string{"a", "b"}, want: Codes{CodeMinLength}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, rule(tc.value)); diff != "" {
			t.Fatalf("MinLength(3)(%#v) mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestPattern_FullMatch(t *testing.T) {
	rule, err := CompilePattern(`[a-zA-Z0-9_]+`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := rule("user_01"); !got.Empty() {
		t.Fatalf("expected match, got %v", got)
	}
	if got := rule("user-01"); !got.Has(CodePattern) {
		t.Fatalf("expected partial match to fail, got %v", got)
	}
	if got := rule(""); !got.Empty() {
		t.Fatalf("expected empty value to be left to required, got %v", got)
	}
}

func TestEmail(t *testing.T) {
	rule := Email()
	valid := []string{"", "ada@example.com", "first.last+tag@sub.example.org", "a@b"}
	for _, value := range valid {
		if got := rule(value); !got.Empty() {
			t.Fatalf("expected %q to be valid, got %v", value, got)
		}
	}
	invalid := []string{"ada", "@example.com", "ada@", "ada@@example.com", "a b@example.com", "ada@-example.com", ".ada@example.com"}
	for _, value := range invalid {
		if got := rule(value); !got.Has(CodeEmail) {
			t.Fatalf("expected %q to be invalid, got %v", value, got)
		}
	}
}

func TestPassword(t *testing.T) {
	rule := Password()
	cases := []struct {
		value string
		want  Codes
	}{
		{value: "", want: nil},
		{value: "abc12345", want: nil},
		{value: "12345678", want: Codes{CodeStartsWithLetter}},
		{value: "Abc$1234", want: Codes{CodeAlphanumeric}},
		{value: "Abc12", want: Codes{CodeMinLength}},
		{value: "1bc!", want: NewCodes(CodeStartsWithLetter, CodeAlphanumeric, CodeMinLength)},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, rule(tc.value)); diff != "" {
			t.Fatalf("Password(%q) mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestBirthdate(t *testing.T) {
	rule := Birthdate(DefaultMaxBirthDate)
	cases := []struct {
		value any
		want  Codes
	}{
		{value: nil, want: nil},
		{value: "", want: nil},
		{value: "2006-12-31", want: nil},
		{value: "2007-01-01", want: Codes{CodeTooYoung}},
		{value: time.Date(2006, 12, 31, 23, 59, 0, 0, time.UTC), want: nil},
		{value: time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC), want: Codes{CodeTooYoung}},
		{value: "1990-02-30", want: Codes{CodeInvalidDate}},
		{value: "yesterday", want: Codes{CodeInvalidDate}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, rule(tc.value)); diff != "" {
			t.Fatalf("Birthdate(%#v) mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestGitHubProfile(t *testing.T) {
	rule := GitHubProfile()
	for _, value := range []string{"", "https://github.com/ada", "http://www.github.com/ada_l-1/"} {
		if got := rule(value); !got.Empty() {
			t.Fatalf("expected %q to be valid, got %v", value, got)
		}
	}
	for _, value := range []string{"github.com/ada", "https://gitlab.com/ada", "https://github.com/ada/repo"} {
		if got := rule(value); !got.Has(CodePattern) {
			t.Fatalf("expected %q to be invalid, got %v", value, got)
		}
	}
}

func TestOneOf(t *testing.T) {
	rule := OneOf([]string{"Go", "Rust"})
	if got := rule([]string{"Go", "Rust"}); !got.Empty() {
		t.Fatalf("expected known options to pass, got %v", got)
	}
	if got := rule("Cobol"); !got.Has(CodeInvalidChoice) {
		t.Fatalf("expected unknown option to fail, got %v", got)
	}
	if got := rule(nil); !got.Empty() {
		t.Fatalf("expected empty value to be left to required, got %v", got)
	}
}

func TestPasswordMatch(t *testing.T) {
	rule := NewPasswordMatch("password", "confirmPassword")

	if got := rule.Evaluate(map[string]any{"password": "Secret123", "confirmPassword": "Secret123"}); len(got) != 0 {
		t.Fatalf("expected no mismatch, got %v", got)
	}

	got := rule.Evaluate(map[string]any{"password": "Secret123", "confirmPassword": "Other456"})
	want := map[string]Codes{"confirmPassword": {CodePasswordMismatch}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if got := rule.Evaluate(map[string]any{"password": "Secret123", "confirmPassword": ""}); len(got) != 0 {
		t.Fatalf("expected empty confirmation to be left to required, got %v", got)
	}
}

func TestUnion(t *testing.T) {
	got := Union([]string{"b", "a"}, Codes{"a", "c"}, nil, []string{""})
	if diff := cmp.Diff(Codes{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("union mismatch (-want +got):\n%s", diff)
	}
	if Union() != nil {
		t.Fatalf("expected empty union to be nil")
	}
}
