// Package json parses JSON input into the primitive value tree the decoder
// consumes: nil, bool, int64/float64, string, []any and map[string]any.
package json

import (
	"bytes"
	"io"
	"strings"

	j "github.com/goccy/go-json"

	recast "github.com/recastlab/recast"
)

// Bytes parses a JSON document from a byte slice.
func Bytes(b []byte) (any, error) { return Reader(bytes.NewReader(b)) }

// Reader parses a JSON document from r.
func Reader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, recast.Issues{recast.IssueAt("/", recast.CodeParseError, map[string]any{"cause": err.Error()})}
	}
	return normalize(v), nil
}

// normalize rewrites json.Number into int64 when the text is integral, and
// float64 otherwise, so the decoder sees exactly two numeric kinds.
func normalize(v any) any {
	switch t := v.(type) {
	case j.Number:
		return normalizeNumber(string(t))
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}

func normalizeNumber(s string) any {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := j.Number(s).Int64(); err == nil {
			return i
		}
	}
	f, err := j.Number(s).Float64()
	if err != nil {
		// Unreachable for decoder-produced numbers; keep the text.
		return s
	}
	return f
}
