package recast

import (
	"context"
	"fmt"
	"strconv"

	"github.com/recastlab/recast/i18n"
	"github.com/recastlab/recast/schema"
	"github.com/recastlab/recast/sym"
)

func (d *Decoder) decodeTuple(ctx context.Context, path string, v any, t schema.TupleType, module string, env typeEnv) (any, error) {
	var elems []any
	switch s := v.(type) {
	case Tuple:
		elems = s
	case []any:
		elems = s
	default:
		return nil, failGot(path, CodeInvalidType, "tuple", v)
	}
	if t.AnyArity {
		if tv, ok := v.(Tuple); ok {
			return tv, nil
		}
		out := make(Tuple, len(elems))
		copy(out, elems)
		return out, nil
	}
	if len(elems) != len(t.Elems) {
		return nil, Issues{IssueAt(path, CodeLengthMismatch, map[string]any{
			"expected": len(t.Elems), "got": len(elems),
		})}
	}
	out := make(Tuple, len(elems))
	for i, el := range elems {
		dv, err := d.decodeNode(ctx, childPath(path, strconv.Itoa(i)), el, t.Elems[i], module, env)
		if err != nil {
			return nil, err
		}
		out[i] = dv
	}
	return out, nil
}

func (d *Decoder) decodeList(ctx context.Context, path string, v any, t schema.ListType, module string, env typeEnv) (any, error) {
	s, ok := v.([]any)
	if !ok {
		return nil, failGot(path, CodeInvalidType, "list", v)
	}
	switch t.Shape {
	case schema.ListEmpty:
		if len(s) != 0 {
			return nil, Issues{IssueAt(path, CodeLengthMismatch, map[string]any{"expected": 0, "got": len(s)})}
		}
		return s, nil
	case schema.ListAny:
		return s, nil
	default:
		out := make([]any, len(s))
		for i, el := range s {
			dv, err := d.decodeNode(ctx, childPath(path, strconv.Itoa(i)), el, t.Elem, module, env)
			if err != nil {
				return nil, err
			}
			out[i] = dv
		}
		return out, nil
	}
}

func (d *Decoder) decodeMap(ctx context.Context, path string, v any, t schema.MapType, module string, env typeEnv) (any, error) {
	entries, ok := mapEntries(v)
	if !ok {
		return nil, failGot(path, CodeInvalidType, "map", v)
	}
	switch t.Shape {
	case schema.MapEmpty:
		if len(entries) != 0 {
			return nil, Issues{IssueAt(path, CodeLengthMismatch, map[string]any{"expected": 0, "got": len(entries)})}
		}
		return v, nil
	case schema.MapAny:
		return v, nil
	case schema.MapHomogeneous:
		// Rebuild pairwise. Two input keys decoding to the same output key
		// collapse last-write-wins, as plain map construction would.
		out := make(map[any]any, len(entries))
		for _, e := range entries {
			seg := fmt.Sprintf("%v", e.key)
			dk, err := d.decodeNode(ctx, childPath(path, seg), e.key, t.Key, module, env)
			if err != nil {
				return nil, err
			}
			dv, err := d.decodeNode(ctx, childPath(path, seg), e.val, t.Value, module, env)
			if err != nil {
				return nil, err
			}
			out[dk] = dv
		}
		return out, nil
	default: // MapFields
		return d.decodeFields(ctx, path, v, t.Fields, module, env)
	}
}

// decodeFields implements the plain field-set rule: required fields must be
// present, optional ones are omitted when absent. Defaults are never
// materialized here; that is record behavior.
func (d *Decoder) decodeFields(ctx context.Context, path string, v any, fields []schema.Field, module string, env typeEnv) (map[sym.Symbol]any, error) {
	out := make(map[sym.Symbol]any, len(fields))
	for _, f := range fields {
		fv, ok := fieldLookup(v, f.Key)
		if !ok {
			if f.Required {
				return nil, Issues{IssueAt(childPath(path, f.Key.String()), CodeRequired, map[string]any{"key": f.Key.String()})}
			}
			continue
		}
		dv, err := d.decodeNode(ctx, childPath(path, f.Key.String()), fv, f.Type, module, env)
		if err != nil {
			return nil, err
		}
		out[f.Key] = dv
	}
	return out, nil
}

func (d *Decoder) decodeRecord(ctx context.Context, path string, v any, t schema.RecordType, module string, env typeEnv) (any, error) {
	if !t.Name.Valid() {
		// "Some record, shape unknown": accept an already-tagged value
		// without rebuilding a specific shape. Record fields are symbol-keyed
		// by construction, so the key set needs no further normalization.
		rec, ok := v.(Record)
		if !ok {
			return nil, failGot(path, CodeInvalidType, "record", v)
		}
		return rec, nil
	}
	var source any
	switch in := v.(type) {
	case Record:
		if in.Name != t.Name {
			return nil, failGot(path, CodeInvalidType, "record "+t.Name.String(), in.Name.String())
		}
		source = in.Fields
	default:
		if _, ok := mapEntries(v); !ok {
			return nil, failGot(path, CodeInvalidType, "record "+t.Name.String(), v)
		}
		source = v
	}
	fields := make(map[sym.Symbol]any, len(t.Fields))
	for _, f := range t.Fields {
		fv, ok := fieldLookup(source, f.Key)
		if !ok {
			// Records are total: absent fields take their declared default.
			fields[f.Key] = f.Default
			continue
		}
		dv, err := d.decodeNode(ctx, childPath(path, f.Key.String()), fv, f.Type, module, env)
		if err != nil {
			return nil, err
		}
		fields[f.Key] = dv
	}
	return Record{Name: t.Name, Fields: fields}, nil
}

// decodeUnion folds the alternatives in declaration order; each failure is
// absorbed locally and only the fold's exhaustion surfaces as an error.
func (d *Decoder) decodeUnion(ctx context.Context, path string, v any, t schema.UnionType, module string, env typeEnv) (any, error) {
	for _, alt := range t.Alts {
		if out, err := d.decodeNode(ctx, path, v, alt, module, env); err == nil {
			return out, nil
		}
	}
	return nil, Issues{Issue{
		Path:    path,
		Code:    CodeUnionNoMatch,
		Message: i18n.T(CodeUnionNoMatch, nil),
		Hint:    fmt.Sprintf("no match among %d alternatives for %T(%v)", len(t.Alts), v, v),
		Params:  map[string]any{"alternatives": len(t.Alts), "got": v},
	}}
}

func (d *Decoder) decodeRef(ctx context.Context, path string, v any, t schema.RefType, module string, env typeEnv) (any, error) {
	if out, ok, err := decodeTemporal(path, v, t); ok {
		return out, err
	}
	target := t.Module
	if target == "" {
		target = module
	}
	def, err := d.cat.Resolve(ctx, target, t.Name)
	if err != nil {
		return nil, err
	}
	// Fresh environment per instantiation; arguments are interpreted in the
	// caller's environment and module.
	nested, err := bindParams(path, def.Params, t.Args, module, env)
	if err != nil {
		return nil, err
	}
	return d.decodeNode(ctx, path, v, def.Node, target, nested)
}

// ---- mapping input helpers ----

// The wire format has no symbolic keys, so producers hand us string-keyed
// maps while schemas declare symbol keys; re-decoded data may already carry
// symbol or mixed keys. fieldLookup is the single normalization rule used by
// every field access: typed key first, then its string form.
func fieldLookup(m any, key sym.Symbol) (any, bool) {
	switch t := m.(type) {
	case map[sym.Symbol]any:
		v, ok := t[key]
		return v, ok
	case map[string]any:
		v, ok := t[key.String()]
		return v, ok
	case map[any]any:
		if v, ok := t[key]; ok {
			return v, true
		}
		v, ok := t[key.String()]
		return v, ok
	default:
		return nil, false
	}
}

type mapEntry struct {
	key any
	val any
}

func mapEntries(m any) ([]mapEntry, bool) {
	switch t := m.(type) {
	case map[string]any:
		out := make([]mapEntry, 0, len(t))
		for k, v := range t {
			out = append(out, mapEntry{key: k, val: v})
		}
		return out, true
	case map[any]any:
		out := make([]mapEntry, 0, len(t))
		for k, v := range t {
			out = append(out, mapEntry{key: k, val: v})
		}
		return out, true
	case map[sym.Symbol]any:
		out := make([]mapEntry, 0, len(t))
		for k, v := range t {
			out = append(out, mapEntry{key: k, val: v})
		}
		return out, true
	default:
		return nil, false
	}
}
