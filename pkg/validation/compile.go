package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrUnknownRule is returned when a definition names a rule kind the compiler
// does not know.
var ErrUnknownRule = errors.New("validation: unknown rule")

// RuleSet is the compiled, declarative rule table of a form: field rules keyed
// by field name plus the form level cross rules.
type RuleSet struct {
	order  []string
	fields map[string][]Rule
	cross  []CrossRule
}

// Compile turns a form definition into a RuleSet. Choice fields implicitly get
// a oneOf rule against their option list.
func Compile(form model.FormModel) (*RuleSet, error) {
	set := &RuleSet{
		fields: make(map[string][]Rule, len(form.Fields)),
	}
	for _, field := range form.Fields {
		rules, err := CompileField(field)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: %w", field.Name, err)
		}
		set.order = append(set.order, field.Name)
		set.fields[field.Name] = rules
	}
	for _, raw := range form.CrossRules {
		rule, err := CompileCross(raw)
		if err != nil {
			return nil, err
		}
		set.cross = append(set.cross, rule)
	}
	return set, nil
}

// CompileField builds the rules attached to a single field.
func CompileField(field model.Field) ([]Rule, error) {
	var (
		rules    []Rule
		hasOneOf bool
	)
	for _, v := range field.Validations {
		switch v.Kind {
		case model.ValidationRuleRequired:
			rules = append(rules, Required())
		case model.ValidationRuleRequiredTrue:
			rules = append(rules, RequiredTrue())
		case model.ValidationRuleMinLength:
			n, err := strconv.Atoi(strings.TrimSpace(v.Params["value"]))
			if err != nil {
				return nil, fmt.Errorf("minLength value %q: %w", v.Params["value"], err)
			}
			rules = append(rules, MinLength(n))
		case model.ValidationRulePattern:
			rule, err := CompilePattern(v.Params["pattern"])
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", v.Params["pattern"], err)
			}
			rules = append(rules, rule)
		case model.ValidationRuleEmail:
			rules = append(rules, Email())
		case model.ValidationRulePassword:
			rules = append(rules, Password())
		case model.ValidationRuleBirthdate:
			latest := DefaultMaxBirthDate
			if raw := strings.TrimSpace(v.Params["max"]); raw != "" {
				parsed, err := time.Parse(time.DateOnly, raw)
				if err != nil {
					return nil, fmt.Errorf("birthdate max %q: %w", raw, err)
				}
				latest = parsed
			}
			rules = append(rules, Birthdate(latest))
		case model.ValidationRuleGitHubProfile:
			rules = append(rules, GitHubProfile())
		case model.ValidationRuleOneOf:
			hasOneOf = true
			rules = append(rules, OneOf(field.Options))
		default:
			return nil, fmt.Errorf("%w %q", ErrUnknownRule, v.Kind)
		}
	}
	if !hasOneOf && len(field.Options) > 0 &&
		(field.Kind == model.FieldKindChoice || field.Kind == model.FieldKindMultiChoice) {
		rules = append(rules, OneOf(field.Options))
	}
	return rules, nil
}

// CompileCross builds a cross-field rule from its declaration.
func CompileCross(rule model.CrossRule) (CrossRule, error) {
	switch rule.Kind {
	case model.CrossRulePasswordMatch:
		return NewPasswordMatch(rule.Params["field"], rule.Params["confirm"]), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, rule.Kind)
	}
}

// Fields lists the field names in declaration order.
func (s *RuleSet) Fields() []string {
	return append([]string(nil), s.order...)
}

// Has reports whether the rule set declares the field.
func (s *RuleSet) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Field evaluates the field's own rules only.
func (s *RuleSet) Field(name string, value any) Codes {
	return Run(value, s.fields[name]...)
}

// Dependents returns the fields whose error sets may change when name changes:
// the field itself plus every target of a cross rule reading it.
func (s *RuleSet) Dependents(name string) []string {
	out := []string{name}
	for _, rule := range s.cross {
		if !reads(rule, name) {
			continue
		}
		out = append(out, rule.Reads()...)
	}
	return dedupe(out)
}

// Evaluate computes every field's error set and the form level codes in one
// pass. Field errors are the union of the field's own rule codes and the codes
// of every cross rule targeting it.
func (s *RuleSet) Evaluate(values map[string]any) Result {
	result := Result{Fields: make(map[string]Codes, len(s.order))}
	for _, name := range s.order {
		result.Fields[name] = s.Field(name, values[name])
	}

	var formCodes []string
	for _, rule := range s.cross {
		for target, codes := range rule.Evaluate(values) {
			if _, ok := result.Fields[target]; !ok {
				continue
			}
			result.Fields[target] = Union(result.Fields[target], codes)
			formCodes = append(formCodes, codes...)
		}
	}
	result.Form = Union(formCodes)
	return result
}

func reads(rule CrossRule, name string) bool {
	for _, field := range rule.Reads() {
		if field == name {
			return true
		}
	}
	return false
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
