package common

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// BuildURL appends every non-nil parameter to base as an encoded key=value
// pair. Keys are emitted in sorted order so the same input always yields the
// same URL, which lets callers use the result as a cache key.
// An empty or all-nil parameter map returns base unchanged.
func BuildURL(base string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if _, ok := formatParam(v); ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return base
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := formatParam(params[k])
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(v))
	}

	sep := "?"
	switch {
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
		sep = ""
	case strings.Contains(base, "?"):
		sep = "&"
	}
	return base + sep + strings.Join(pairs, "&")
}

// formatParam renders a parameter value. The boolean result is false for
// values that must be omitted (nil or a nil pointer).
func formatParam(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	case int:
		return strconv.Itoa(t), true
	case *int:
		if t == nil {
			return "", false
		}
		return strconv.Itoa(*t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case *float64:
		if t == nil {
			return "", false
		}
		return strconv.FormatFloat(*t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return fmt.Sprint(t), true
	}
}
