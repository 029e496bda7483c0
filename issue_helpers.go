package recast

import (
	"fmt"

	"github.com/recastlab/recast/i18n"
)

// IssueAt creates an Issue at the given path with the provided code and
// params map. The message is resolved through the current translator.
// This is a convenience helper to improve readability at call sites with
// many parameters.
func IssueAt(path, code string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: i18n.T(code, nil), Params: params}
}

// failGot builds a single-issue failure with the offending value rendered
// into the hint.
func failGot(path, code, expected string, got any) error {
	return Issues{Issue{
		Path:    path,
		Code:    code,
		Message: i18n.T(code, nil),
		Hint:    fmt.Sprintf("expected %s, got %T(%v)", expected, got, got),
		Params:  map[string]any{"expected": expected, "got": got},
	}}
}

// childPath extends a JSON Pointer by one segment.
func childPath(path, seg string) string {
	if path == "/" {
		return "/" + seg
	}
	return path + "/" + seg
}
