package validation

import (
	"sort"
)

// Violation codes reported by the built-in rules.
const (
	CodeRequired         = "required"
	CodeMinLength        = "minLength"
	CodePattern          = "pattern"
	CodeEmail            = "email"
	CodeStartsWithLetter = "startsWithLetter"
	CodeAlphanumeric     = "alphanumeric"
	CodeTooYoung         = "tooYoung"
	CodeInvalidDate      = "invalidDate"
	CodeInvalidChoice    = "invalidChoice"
	CodePasswordMismatch = "passwordMismatch"
)

// Codes is a set of violation codes kept sorted and free of duplicates. A nil
// or empty Codes means "valid".
type Codes []string

// NewCodes builds a normalised set from the supplied codes.
func NewCodes(codes ...string) Codes {
	return Union(nil, codes)
}

// Has reports whether code is part of the set.
func (c Codes) Has(code string) bool {
	idx := sort.SearchStrings(c, code)
	return idx < len(c) && c[idx] == code
}

// Empty reports whether the set has no violations.
func (c Codes) Empty() bool {
	return len(c) == 0
}

// Union merges any number of code lists into a new normalised set. It returns
// nil when the result is empty so valid fields compare equal to nil.
func Union(sets ...[]string) Codes {
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, code := range set {
			if code == "" {
				continue
			}
			seen[code] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make(Codes, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Result captures one validation pass over a whole form.
type Result struct {
	// Fields maps every field name to its error set. Valid fields map to nil.
	Fields map[string]Codes
	// Form holds the codes raised by cross-field rules.
	Form Codes
}

// Valid reports whether no field carries an error.
func (r Result) Valid() bool {
	for _, codes := range r.Fields {
		if !codes.Empty() {
			return false
		}
	}
	return true
}

// Invalid lists the names of fields carrying errors, sorted.
func (r Result) Invalid() []string {
	var out []string
	for name, codes := range r.Fields {
		if !codes.Empty() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
