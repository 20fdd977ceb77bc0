package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// IsEmpty reports whether a field value counts as unset: nil, the empty
// string, an empty list, the zero time or false.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case bool:
		return !v
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	default:
		return false
	}
}

// Length returns the rune length of strings or the number of items in a list.
// Other values report ok=false.
func Length(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	default:
		return 0, false
	}
}

// StringValue renders scalar values as strings for the text based rules.
func StringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.DateOnly)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// StringList normalises multi-select values into a string slice.
func StringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, StringValue(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return []string{StringValue(v)}
	}
}

// ParseDate turns a date field value into a calendar date at UTC midnight.
// Accepted inputs are time.Time and strings in YYYY-MM-DD form (RFC 3339
// timestamps are accepted and truncated to their date).
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return calendarDate(v), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("validation: nil date")
		}
		return calendarDate(*v), nil
	case string:
		raw := strings.TrimSpace(v)
		if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
			return parsed, nil
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("validation: parse date %q: %w", v, err)
		}
		return calendarDate(parsed), nil
	default:
		return time.Time{}, fmt.Errorf("validation: unsupported date value %T", value)
	}
}

func calendarDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Equal compares two field values the way dirty tracking needs: unset values
// are all alike, lists compare by element, times by instant.
func Equal(a, b any) bool {
	if IsEmpty(a) || IsEmpty(b) {
		return IsEmpty(a) && IsEmpty(b)
	}
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case []string, []any:
		switch b.(type) {
		case []string, []any:
		default:
			return false
		}
		al, bl := StringList(a), StringList(b)
		if len(al) != len(bl) {
			return false
		}
		for i := range al {
			if al[i] != bl[i] {
				return false
			}
		}
		return true
	case string, bool:
		return a == b
	default:
		return fmt.Sprint(a) == fmt.Sprint(b)
	}
}

// Clone copies list values so callers cannot mutate form state through them.
func Clone(value any) any {
	switch v := value.(type) {
	case []string:
		if v == nil {
			return []string(nil)
		}
		return append([]string{}, v...)
	case []any:
		if v == nil {
			return []any(nil)
		}
		return append([]any{}, v...)
	default:
		return v
	}
}
