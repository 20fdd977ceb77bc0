package validation

import (
	"regexp"
	"strings"
	"time"
)

// Rule validates a single field value. Rules are pure and total: every input
// yields a code set, never a panic or an error.
type Rule func(value any) Codes

var (
	// emailLocalRX and emailHostRX follow the WHATWG "valid e-mail address"
	// grammar; RE2 has no lookahead so the length limits are checked apart.
	emailLocalRX = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*$")
	emailHostRX  = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

	// GitHubProfileRX matches optional GitHub profile URLs.
	GitHubProfileRX = regexp.MustCompile(`^https?://(www\.)?github\.com/[A-Za-z0-9_-]+/?$`)
)

// DefaultMaxBirthDate is the latest accepted birth date (inclusive).
var DefaultMaxBirthDate = time.Date(2006, time.December, 31, 0, 0, 0, 0, time.UTC)

const passwordMinLength = 8

// Required flags unset values: nil, "", empty lists, the zero time and false.
func Required() Rule {
	return func(value any) Codes {
		if IsEmpty(value) {
			return Codes{CodeRequired}
		}
		return nil
	}
}

// RequiredTrue only accepts the boolean true. Violations report "required".
func RequiredTrue() Rule {
	return func(value any) Codes {
		if b, ok := value.(bool); ok && b {
			return nil
		}
		return Codes{CodeRequired}
	}
}

// MinLength flags values shorter than n runes (or lists with fewer than n
// items). Empty values are left to Required.
func MinLength(n int) Rule {
	return func(value any) Codes {
		if IsEmpty(value) {
			return nil
		}
		length, ok := Length(value)
		if !ok {
			length = len([]rune(StringValue(value)))
		}
		if length < n {
			return Codes{CodeMinLength}
		}
		return nil
	}
}

// Pattern flags non-empty values that do not fully match re.
func Pattern(re *regexp.Regexp) Rule {
	anchored := anchor(re)
	return func(value any) Codes {
		if IsEmpty(value) {
			return nil
		}
		if !anchored.MatchString(StringValue(value)) {
			return Codes{CodePattern}
		}
		return nil
	}
}

// CompilePattern compiles expr into a full-match Pattern rule.
func CompilePattern(expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return Pattern(re), nil
}

func anchor(re *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + re.String() + `)$`)
}

// Email flags non-empty values that are not syntactically valid addresses.
func Email() Rule {
	return func(value any) Codes {
		if IsEmpty(value) {
			return nil
		}
		if !IsEmail(StringValue(value)) {
			return Codes{CodeEmail}
		}
		return nil
	}
}

// IsEmail reports whether s is a syntactically valid e-mail address.
func IsEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, host := s[:at], s[at+1:]
	if len(local) > 64 {
		return false
	}
	return emailLocalRX.MatchString(local) && emailHostRX.MatchString(host)
}

// Password evaluates the composite password policy on non-empty values and
// reports every failing predicate: the first character must be an ASCII
// letter, every character ASCII alphanumeric, and the length at least 8.
func Password() Rule {
	return func(value any) Codes {
		if IsEmpty(value) {
			return nil
		}
		s := StringValue(value)
		if s == "" {
			return nil
		}

		var codes []string
		if !isASCIILetter(s[0]) {
			codes = append(codes, CodeStartsWithLetter)
		}
		if !isASCIIAlphanumeric(s) {
			codes = append(codes, CodeAlphanumeric)
		}
		if len([]rune(s)) < passwordMinLength {
			codes = append(codes, CodeMinLength)
		}
		return Union(codes)
	}
}

// Birthdate flags non-empty dates strictly after latest. Values that cannot be
// read as a calendar date report invalidDate.
func Birthdate(latest time.Time) Rule {
	limit := calendarDate(latest)
	return func(value any) Codes {
		if IsEmpty(value) {
			return nil
		}
		date, err := ParseDate(value)
		if err != nil {
			return Codes{CodeInvalidDate}
		}
		if date.After(limit) {
			return Codes{CodeTooYoung}
		}
		return nil
	}
}

// GitHubProfile accepts empty values or GitHub profile URLs.
func GitHubProfile() Rule {
	return Pattern(GitHubProfileRX)
}

// OneOf flags values (or list items) outside the closed option list.
func OneOf(options []string) Rule {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	return func(value any) Codes {
		if IsEmpty(value) {
			return nil
		}
		for _, item := range StringList(value) {
			if _, ok := allowed[item]; !ok {
				return Codes{CodeInvalidChoice}
			}
		}
		return nil
	}
}

// Run evaluates rules against value and unions their codes.
func Run(value any, rules ...Rule) Codes {
	var all []string
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		all = append(all, rule(value)...)
	}
	return Union(all)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !isASCIILetter(b) && !(b >= '0' && b <= '9') {
			return false
		}
	}
	return true
}
