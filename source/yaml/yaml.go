// Package yaml parses YAML input into the primitive value tree the decoder
// consumes. Keys and integer widths are normalized to the same shapes the
// JSON source produces.
package yaml

import (
	"gopkg.in/yaml.v3"

	recast "github.com/recastlab/recast"
)

// Bytes parses a single YAML document from a byte slice.
func Bytes(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, recast.Issues{recast.IssueAt("/", recast.CodeParseError, map[string]any{"cause": err.Error()})}
	}
	return normalize(v), nil
}

// normalize converts YAML-decoded values (which may contain map[any]any and
// machine-width ints) into the JSON-like tree shape recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				// Non-string keys survive as a generic map.
				gen := make(map[any]any, len(t))
				for k2, e2 := range t {
					gen[normalize(k2)] = normalize(e2)
				}
				return gen
			}
			out[ks] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case int:
		return int64(t)
	default:
		return v
	}
}
