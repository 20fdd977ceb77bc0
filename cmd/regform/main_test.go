package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `fullName: Ada Lovelace
username: ada_l
email: ada@example.com
password: Secret123
confirmPassword: Secret123
birthDate: "1990-05-01"
primaryLanguage: Go
experienceLevel: Expert (5+ years)
interests:
  - DevOps
githubProfile: https://github.com/ada
agreeToTerms: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestValidate_Accepts(t *testing.T) {
	path := writeFile(t, "values.yaml", validYAML)

	out, err := run(t, "validate", "--format", "pretty", "--strict", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "username=ada_l\n") {
		t.Fatalf("expected pretty payload, got %q", out)
	}
	if strings.Contains(out, "Secret123") || !strings.Contains(out, "password=********\n") {
		t.Fatalf("expected masked passwords, got %q", out)
	}
	if !strings.HasSuffix(out, "Membership registration successful! Welcome to Code Geeks!\n") {
		t.Fatalf("expected success message, got %q", out)
	}
}

func TestValidate_RejectsWithMessages(t *testing.T) {
	values := strings.Replace(validYAML, "confirmPassword: Secret123", "confirmPassword: Other456", 1)
	values = strings.Replace(values, "password: Secret123", "password: 12345678", 1)
	path := writeFile(t, "values.yaml", values)

	out, err := run(t, "validate", path)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	want := "password: Must start with a letter\n" +
		"confirmPassword: Passwords do not match\n" +
		"form: Passwords do not match\n"
	if out != want {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestValidate_StrictSchema(t *testing.T) {
	values := strings.Replace(validYAML, "primaryLanguage: Go", "primaryLanguage: Cobol", 1)
	path := writeFile(t, "values.yaml", values)

	out, err := run(t, "validate", "--strict", path)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if !strings.HasPrefix(out, "schema primaryLanguage: ") {
		t.Fatalf("expected schema issue for primaryLanguage, got %q", out)
	}
}

func TestValidate_Errors(t *testing.T) {
	if _, err := run(t, "validate"); err == nil {
		t.Fatalf("expected missing argument error")
	}
	if _, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.yaml")); err == nil || errors.Is(err, errInvalid) {
		t.Fatalf("expected read error, got %v", err)
	}
	path := writeFile(t, "values.yaml", validYAML)
	if _, err := run(t, "validate", "--format", "xml", path); err == nil {
		t.Fatalf("expected format error")
	}
	if _, err := run(t, "--log-level", "loud", "validate", path); err == nil {
		t.Fatalf("expected log level error")
	}
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema", "--api-version", "3.1.4")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out, `"version": "3.1.4"`) || !strings.Contains(out, `"CodeGeeks"`) {
		t.Fatalf("unexpected schema output:\n%s", out)
	}
}

func TestConfigOverride(t *testing.T) {
	config := writeFile(t, "mini.yaml", `form:
  id: mini
  fields:
    - name: nickname
      validations:
        - kind: required
messages:
  nickname:
    - code: required
      text: Pick a nickname
`)
	values := writeFile(t, "values.json", `{"nickname": ""}`)

	out, err := run(t, "--config", config, "validate", values)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if out != "nickname: Pick a nickname\n" {
		t.Fatalf("unexpected report %q", out)
	}
}
