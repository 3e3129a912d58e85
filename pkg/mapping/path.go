package mapping

import (
	"strconv"
	"strings"
)

// maxPathSegments caps traversal depth so an adversarial payload or path
// cannot make resolution unbounded.
const maxPathSegments = 64

// Resolve evaluates a dotted/indexed path expression against an arbitrary
// decoded JSON value. Each segment is an object-key lookup or, if numeric,
// an array-index lookup. It returns (nil, false) when any intermediate
// segment is missing, is null, or type-mismatches; absence is the only
// failure signal for malformed paths.
func Resolve(payload any, path string) (any, bool) {
	if strings.TrimSpace(path) == "" {
		return nil, false
	}
	segments := strings.Split(path, ".")
	if len(segments) > maxPathSegments {
		return nil, false
	}

	current := payload
	for _, seg := range segments {
		if current == nil {
			return nil, false
		}
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			current = v[idx]
		default:
			// Indexing into a scalar.
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// Stringify renders a resolved scalar as the string handed to downstream
// consumers. Composite values (objects, arrays) are not extractable and
// report absent.
func Stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		// JSON numbers decode as float64; keep integers clean.
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
