package utils

import (
	"strconv"
	"strings"
)

// NotAvailable is the uniform placeholder for any field that cannot be
// resolved from a loosely-typed record.
const NotAvailable = "N/A"

// Extract walks a dotted path through nested maps and slices and returns
// the value found there. Numeric path segments index into slices
// ("aircraft.images.medium.0.link"). Any missing key, wrong type, nil value
// or out-of-range index yields (nil, false); the reason is deliberately not
// distinguished, since every failure degrades to the same placeholder.
func Extract(record any, path string) (any, bool) {
	current := record
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}

	return current, true
}

// ExtractString extracts a non-empty string value at path.
func ExtractString(record any, path string) (string, bool) {
	value, ok := Extract(record, path)
	if !ok {
		return "", false
	}

	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}

	return s, true
}

// ExtractFloat extracts a numeric value at path. JSON decoding produces
// float64 but values attached programmatically may be int-typed.
func ExtractFloat(record any, path string) (float64, bool) {
	value, ok := Extract(record, path)
	if !ok {
		return 0, false
	}

	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ExtractInt extracts an integral value at path, truncating JSON floats.
func ExtractInt(record any, path string) (int64, bool) {
	value, ok := ExtractFloat(record, path)
	if !ok {
		return 0, false
	}

	return int64(value), true
}

// StringOr extracts a string value at path, returning fallback on any
// failure. This is the single fallback combinator applied at every
// formatting call site, so per-field fault isolation never has to be
// re-implemented inline.
func StringOr(record any, path, fallback string) string {
	value, ok := ExtractString(record, path)
	if !ok {
		return fallback
	}

	return value
}
