package model

// FieldKind is the simplified enum for the inputs a registration form offers.
type FieldKind string

const (
	FieldKindString      FieldKind = "string"
	FieldKindPassword    FieldKind = "password"
	FieldKindEmail       FieldKind = "email"
	FieldKindChoice      FieldKind = "choice"
	FieldKindMultiChoice FieldKind = "multiChoice"
	FieldKindBoolean     FieldKind = "boolean"
	FieldKindDate        FieldKind = "date"
)

const (
	ValidationRuleRequired      = "required"
	ValidationRuleRequiredTrue  = "requiredTrue"
	ValidationRuleMinLength     = "minLength"
	ValidationRulePattern       = "pattern"
	ValidationRuleEmail         = "email"
	ValidationRulePassword      = "password"
	ValidationRuleBirthdate     = "birthdate"
	ValidationRuleGitHubProfile = "githubProfile"
	ValidationRuleOneOf         = "oneOf"
)

const (
	CrossRulePasswordMatch = "passwordMatch"
)

// ValidationRule represents a single validation constraint applied to a field.
// Use the ValidationRule* constants to reference the supported kinds. Length
// limits encode their threshold in Params["value"], pattern rules keep the
// expression in Params["pattern"] and the birthdate rule reads its inclusive
// cutoff (YYYY-MM-DD) from Params["max"]. Parameters stay strings so YAML and
// JSON definitions round-trip without type coercion.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// CrossRule declares a validation that reads more than one field. Params name
// the participating fields (for passwordMatch: "field" and "confirm").
type CrossRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input of the form.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        FieldKind         `json:"kind" yaml:"kind"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Help        string            `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FormModel is the top-level definition the form engine and renderers consume.
type FormModel struct {
	ID         string            `json:"id" yaml:"id"`
	Title      string            `json:"title,omitempty" yaml:"title,omitempty"`
	Fields     []Field           `json:"fields" yaml:"fields"`
	CrossRules []CrossRule       `json:"crossRules,omitempty" yaml:"crossRules,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the field with the supplied name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Rule returns the first validation of the given kind attached to the field.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// Required reports whether the field carries a required or requiredTrue rule.
func (f Field) Required() bool {
	for _, rule := range f.Validations {
		if rule.Kind == ValidationRuleRequired || rule.Kind == ValidationRuleRequiredTrue {
			return true
		}
	}
	return false
}
