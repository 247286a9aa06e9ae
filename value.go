package skemaform

import (
	"fmt"
	"strconv"

	"github.com/reoring/skemaform/jsonschema"
)

// Values are JSON-shaped: nil, bool, float64, string, []any and
// map[string]any. Helpers here never mutate their input.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func withKey(m map[string]any, key string, v any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	out[key] = v
	return out
}

func withIndex(list []any, i int, v any) []any {
	out := append([]any(nil), list...)
	out[i] = v
	return out
}

func withoutIndex(list []any, i int) []any {
	out := make([]any, 0, len(list))
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func appended(list []any, v any) []any {
	out := make([]any, 0, len(list)+1)
	out = append(out, list...)
	return append(out, v)
}

// cloneValue deep-copies containers; scalars are immutable already.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	}
	return v
}

// keyString is the identity string of a scalar, used to compare options.
func keyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// normalizeValue lifts common Go shapes returned by lookups into JSON shapes.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = normalizeValue(m)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case int32:
		return float64(t)
	case uint:
		return float64(t)
	case float32:
		return float64(t)
	}
	return jsonschema.Normalize(v)
}
