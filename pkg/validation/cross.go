package validation

// CrossRule validates a relationship between several fields. Evaluate returns
// the codes to attach to each target field; the same codes surface at form
// level. Rules never touch form state themselves.
type CrossRule interface {
	// Reads lists the fields whose changes require re-evaluation.
	Reads() []string
	// Evaluate inspects the full value map.
	Evaluate(values map[string]any) map[string]Codes
}

// PasswordMatch attaches passwordMismatch to Confirm when both fields are set
// and differ.
type PasswordMatch struct {
	Field   string
	Confirm string
}

// NewPasswordMatch constructs the rule for the given field names.
func NewPasswordMatch(field, confirm string) PasswordMatch {
	return PasswordMatch{Field: field, Confirm: confirm}
}

// Reads implements CrossRule.
func (r PasswordMatch) Reads() []string {
	return []string{r.Field, r.Confirm}
}

// Evaluate implements CrossRule.
func (r PasswordMatch) Evaluate(values map[string]any) map[string]Codes {
	password, confirm := values[r.Field], values[r.Confirm]
	if IsEmpty(password) || IsEmpty(confirm) {
		return nil
	}
	if StringValue(password) == StringValue(confirm) {
		return nil
	}
	return map[string]Codes{r.Confirm: {CodePasswordMismatch}}
}
