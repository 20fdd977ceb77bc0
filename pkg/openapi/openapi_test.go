package openapi_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
)

func definition() model.FormModel {
	return model.FormModel{
		ID:    "code-geeks",
		Title: "Membership",
		Fields: []model.Field{
			{
				Name:  "username",
				Kind:  model.FieldKindString,
				Label: "Username",
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired},
					{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
					{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "[a-zA-Z0-9_]+"}},
				},
			},
			{
				Name:        "primaryLanguage",
				Kind:        model.FieldKindChoice,
				Options:     []string{"Go", "Rust"},
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}},
			},
			{
				Name:        "interests",
				Kind:        model.FieldKindMultiChoice,
				Options:     []string{"DevOps", "AI/ML"},
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequired}},
			},
			{
				Name:        "birthDate",
				Kind:        model.FieldKindDate,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleBirthdate}},
			},
			{
				Name:        "agreeToTerms",
				Kind:        model.FieldKindBoolean,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleRequiredTrue}},
			},
		},
		CrossRules: []model.CrossRule{{Kind: model.CrossRulePasswordMatch, Params: map[string]string{"field": "a", "confirm": "b"}}},
	}
}

func TestSchema_MapsRules(t *testing.T) {
	schema, err := openapi.Schema(definition())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	if diff := cmp.Diff([]string{"username", "primaryLanguage", "interests", "agreeToTerms"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	username := schema.Properties["username"].Value
	if username.MinLength != 3 {
		t.Fatalf("expected minLength 3, got %d", username.MinLength)
	}
	if username.Pattern != "^(?:[a-zA-Z0-9_]+)$" {
		t.Fatalf("expected anchored pattern, got %q", username.Pattern)
	}

	language := schema.Properties["primaryLanguage"].Value
	if diff := cmp.Diff([]any{"Go", "Rust"}, language.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	interests := schema.Properties["interests"].Value
	if interests.MinItems != 1 || interests.Items == nil {
		t.Fatalf("expected non-empty array schema, got %+v", interests)
	}

	birth := schema.Properties["birthDate"].Value
	if birth.Extensions[openapi.ExtensionMaxDate] != "2006-12-31" {
		t.Fatalf("expected default cutoff extension, got %v", birth.Extensions)
	}
	if _, ok := schema.Extensions[openapi.ExtensionCrossRules]; !ok {
		t.Fatalf("expected cross rules extension")
	}
}

func TestCheckPayload(t *testing.T) {
	schema, err := openapi.Schema(definition())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	issues, err := openapi.CheckPayload(schema, map[string]any{
		"username":        "ada_l",
		"primaryLanguage": "Go",
		"interests":       []string{"DevOps"},
		"birthDate":       time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		"agreeToTerms":    true,
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected conforming payload, got %+v", issues)
	}

	issues, err = openapi.CheckPayload(schema, map[string]any{
		"username":        "ada_l",
		"primaryLanguage": "Cobol",
		"interests":       []string{"DevOps"},
		"birthDate":       nil,
		"agreeToTerms":    true,
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(issues) != 1 || issues[0].Field != "primaryLanguage" {
		t.Fatalf("expected a single primaryLanguage issue, got %+v", issues)
	}
	payload := openapi.Payload(issues)
	if _, ok := payload["#/primaryLanguage"]; !ok {
		t.Fatalf("expected issue keyed by pointer, got %v", payload)
	}
}

func TestDocument(t *testing.T) {
	doc, err := openapi.Document(definition(), openapi.WithAPIVersion("2.0.0"))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	raw, err := openapi.MarshalJSON(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.OpenAPI != openapi.Version || decoded.Info.Version != "2.0.0" || decoded.Info.Title != "Membership" {
		t.Fatalf("unexpected header: %+v", decoded)
	}
	if _, ok := decoded.Paths["/code-geeks"]["post"]; !ok {
		t.Fatalf("expected POST /code-geeks, got %v", decoded.Paths)
	}
	if _, ok := decoded.Components.Schemas["CodeGeeks"]; !ok {
		t.Fatalf("expected CodeGeeks component, got %v", decoded.Components.Schemas)
	}
}
