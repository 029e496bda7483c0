package recast

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Convert-class codes: the input value does not fit the schema node.
	CodeInvalidType       = "invalid_type"
	CodeRequired          = "required"
	CodeInvalidEnum       = "invalid_enum"
	CodeUnknownSymbol     = "unknown_symbol"
	CodeInvalidFormat     = "invalid_format"
	CodeLengthMismatch    = "length_mismatch"
	CodeUnionNoMatch      = "union_no_match"
	CodeNeverMatches      = "never_matches"
	CodeModuleNotLoadable = "module_not_loadable"

	// Schema-class codes: the catalog, not the data, is at fault.
	CodeSchemaNotFound = "schema_not_found"
	CodeTypeNotFound   = "type_not_found"
	CodeTypeArity      = "type_arity"
	CodeUnboundTypeVar = "unbound_type_var"

	// Source-class codes (wire parsing, before decoding starts).
	CodeParseError = "parse_error"
)

// Issue represents a single decoding failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected shapes, offending values, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"int", "got":"x"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of decoding failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrNoCatalog is returned by providers when a module has no type catalog at
// all. The Catalog maps it to CodeSchemaNotFound.
var ErrNoCatalog = errors.New("recast: module has no type catalog")

// IsSchemaNotFound reports whether err is a schema_not_found failure.
func IsSchemaNotFound(err error) bool { return hasCode(err, CodeSchemaNotFound) }

// IsTypeNotFound reports whether err is a type_not_found failure.
func IsTypeNotFound(err error) bool { return hasCode(err, CodeTypeNotFound) }

// IsConvertError reports whether err carries at least one convert-class
// issue, i.e. the input value did not fit the schema.
func IsConvertError(err error) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		switch it.Code {
		case CodeSchemaNotFound, CodeTypeNotFound, CodeParseError:
		default:
			return true
		}
	}
	return false
}

func hasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
