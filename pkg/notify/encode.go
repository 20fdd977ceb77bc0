package notify

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Format controls how submission values are serialized.
type Format string

const (
	// FormatJSON emits application/json payloads.
	FormatJSON Format = "json"
	// FormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	FormatFormURLEncoded Format = "form"
	// FormatPrettyText emits a human-friendly key=value summary.
	FormatPrettyText Format = "pretty"
)

// ParseFormat maps a flag value onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatFormURLEncoded:
		return FormatFormURLEncoded, nil
	case FormatPrettyText:
		return FormatPrettyText, nil
	default:
		return "", fmt.Errorf("notify: unknown format %q", raw)
	}
}

// ContentType reports the media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case FormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Encode serializes values in the given format. Dates are written as
// YYYY-MM-DD and keys are emitted in sorted order.
func Encode(format Format, values map[string]any) ([]byte, error) {
	plain := plainValues(values)
	switch format {
	case FormatFormURLEncoded:
		return []byte(flattenForm(plain)), nil
	case FormatPrettyText:
		return []byte(prettyPrint(plain)), nil
	case FormatJSON, "":
		return json.Marshal(plain)
	default:
		return nil, fmt.Errorf("notify: unknown format %q", format)
	}
}

func plainValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = plainValue(value)
	}
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return v.Format(time.DateOnly)
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return v.Format(time.DateOnly)
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	default:
		return value
	}
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for _, key := range sortedKeys(values) {
		switch v := values[key].(type) {
		case []any:
			for _, item := range v {
				flattened.Add(key+"[]", fmt.Sprint(item))
			}
		case nil:
			flattened.Set(key, "")
		default:
			flattened.Set(key, fmt.Sprint(v))
		}
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	for _, key := range sortedKeys(values) {
		switch v := values[key].(type) {
		case []any:
			for idx, item := range v {
				fmt.Fprintf(&b, "%s[%d]=%v\n", key, idx, item)
			}
		case nil:
			fmt.Fprintf(&b, "%s=\n", key)
		default:
			fmt.Fprintf(&b, "%s=%v\n", key, v)
		}
	}
	return b.String()
}
