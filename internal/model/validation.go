package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	errFormIDMissing    = errors.New("model builder: form id is required")
	errFormFieldsEmpty  = errors.New("model builder: form declares no fields")
	errFieldNameMissing = errors.New("model builder: field name is required")
)

var knownKinds = map[FieldKind]struct{}{
	FieldKindString:      {},
	FieldKindPassword:    {},
	FieldKindEmail:       {},
	FieldKindChoice:      {},
	FieldKindMultiChoice: {},
	FieldKindBoolean:     {},
	FieldKindDate:        {},
}

func validateForm(form FormModel) error {
	if strings.TrimSpace(form.ID) == "" {
		return errFormIDMissing
	}
	if len(form.Fields) == 0 {
		return errFormFieldsEmpty
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return errFieldNameMissing
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("model builder: duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
		if err := validateField(field); err != nil {
			return fmt.Errorf("model builder: field %q: %w", field.Name, err)
		}
	}

	for _, rule := range form.CrossRules {
		if err := validateCrossRule(rule, seen); err != nil {
			return fmt.Errorf("model builder: cross rule %q: %w", rule.Kind, err)
		}
	}
	return nil
}

func validateField(field Field) error {
	if _, ok := knownKinds[field.Kind]; !ok {
		return fmt.Errorf("unknown kind %q", field.Kind)
	}
	if (field.Kind == FieldKindChoice || field.Kind == FieldKindMultiChoice) && len(field.Options) == 0 {
		return errors.New("choice fields require options")
	}
	for _, rule := range field.Validations {
		if err := validateRule(rule); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(rule ValidationRule) error {
	switch rule.Kind {
	case ValidationRuleRequired, ValidationRuleRequiredTrue, ValidationRuleEmail,
		ValidationRulePassword, ValidationRuleGitHubProfile, ValidationRuleOneOf:
		return nil
	case ValidationRuleMinLength:
		n, err := strconv.Atoi(strings.TrimSpace(rule.Params["value"]))
		if err != nil || n < 0 {
			return fmt.Errorf("minLength requires a non-negative value, got %q", rule.Params["value"])
		}
		return nil
	case ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return errors.New("pattern requires an expression")
		}
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("pattern %q: %w", expr, err)
		}
		return nil
	case ValidationRuleBirthdate:
		if raw := strings.TrimSpace(rule.Params["max"]); raw != "" {
			if _, err := time.Parse(time.DateOnly, raw); err != nil {
				return fmt.Errorf("birthdate max %q: %w", raw, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown validation %q", rule.Kind)
	}
}

func validateCrossRule(rule CrossRule, fields map[string]struct{}) error {
	switch rule.Kind {
	case CrossRulePasswordMatch:
		for _, key := range []string{"field", "confirm"} {
			name := rule.Params[key]
			if name == "" {
				return fmt.Errorf("param %q is required", key)
			}
			if _, ok := fields[name]; !ok {
				return fmt.Errorf("param %q references unknown field %q", key, name)
			}
		}
		return nil
	default:
		return errors.New("unknown cross rule")
	}
}
