// Package schemayaml compiles hand-authored YAML documents into a type
// catalog. One document declares one module:
//
//	module: users
//	types:
//	  t:
//	    fields:
//	      id: {type: int, required: true}
//	      name: string
//	      tags: {type: {list: string}}
//	  box:
//	    params: [a]
//	    type:
//	      fields:
//	        value: {type: {var: a}, required: true}
//
// Type expressions are either shorthand strings (primitives, temporal
// builtins, or "name" / "module.name" references) or single-key mappings:
// list, tuple, union, map, literal, symbol, fields, record, ref, var.
package schemayaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	recast "github.com/recastlab/recast"
	"github.com/recastlab/recast/schema"
	"github.com/recastlab/recast/sym"
)

// Load compiles a multi-document YAML catalog into a static Provider.
func Load(data []byte) (recast.Provider, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	modules := map[string]map[string]recast.TypeDef{}
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schemayaml: %w", err)
		}
		m, ok := doc.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["module"].(string)
		if name == "" {
			return nil, errors.New("schemayaml: document missing module name")
		}
		if _, dup := modules[name]; dup {
			return nil, fmt.Errorf("schemayaml: duplicate module %q", name)
		}
		types, err := compileModule(name, m)
		if err != nil {
			return nil, err
		}
		modules[name] = types
	}
	return &provider{modules: modules}, nil
}

// Expr compiles a single type expression, e.g. "date" or "{list: int}".
// Useful for building type arguments outside a module document.
func Expr(src string) (schema.Node, error) {
	var v any
	if err := yaml.Unmarshal([]byte(src), &v); err != nil {
		return nil, fmt.Errorf("schemayaml: %w", err)
	}
	return compileExpr("", "expr", v)
}

type provider struct {
	modules map[string]map[string]recast.TypeDef
}

func (p *provider) FetchTypeCatalog(_ context.Context, module string) (map[string]recast.TypeDef, error) {
	types, ok := p.modules[module]
	if !ok {
		return nil, recast.ErrNoCatalog
	}
	return types, nil
}

func compileModule(module string, doc map[string]any) (map[string]recast.TypeDef, error) {
	raw, ok := doc["types"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemayaml: module %q has no types section", module)
	}
	types := make(map[string]recast.TypeDef, len(raw))
	for name, def := range raw {
		td, err := compileTypeDef(module, name, def)
		if err != nil {
			return nil, err
		}
		types[name] = td
	}
	return types, nil
}

func compileTypeDef(module, name string, def any) (recast.TypeDef, error) {
	// {params: [...], type: expr} wraps generics; anything else is a bare
	// type expression.
	if m, ok := def.(map[string]any); ok {
		if _, hasType := m["type"]; hasType {
			var params []string
			if raw, ok := m["params"].([]any); ok {
				for _, p := range raw {
					s, ok := p.(string)
					if !ok {
						return recast.TypeDef{}, fmt.Errorf("schemayaml: %s.%s: param tokens must be strings", module, name)
					}
					params = append(params, s)
				}
			}
			node, err := compileExpr(module, name, m["type"])
			if err != nil {
				return recast.TypeDef{}, err
			}
			return recast.TypeDef{Node: node, Params: params}, nil
		}
	}
	node, err := compileExpr(module, name, def)
	if err != nil {
		return recast.TypeDef{}, err
	}
	return recast.TypeDef{Node: node}, nil
}

func compileExpr(module, name string, expr any) (schema.Node, error) {
	switch t := expr.(type) {
	case string:
		return compileShorthand(t), nil
	case map[string]any:
		return compileTagged(module, name, t)
	default:
		return nil, fmt.Errorf("schemayaml: %s.%s: cannot compile %T as a type expression", module, name, expr)
	}
}

func compileShorthand(s string) schema.Node {
	switch s {
	case "any":
		return schema.Any()
	case "none":
		return schema.None()
	case "symbol":
		return schema.Symbol()
	case "bool":
		return schema.Bool()
	case "int", "integer":
		return schema.Int()
	case "float":
		return schema.Float()
	case "number":
		return schema.Number()
	case "neg_int":
		return schema.NegInt()
	case "non_neg_int":
		return schema.NonNegInt()
	case "pos_int":
		return schema.PosInt()
	case "string":
		return schema.String()
	case "module_ref":
		return schema.Module()
	case "any_list":
		return schema.AnyList()
	case "empty_list":
		return schema.EmptyList()
	case "any_map":
		return schema.AnyMap()
	case "empty_map":
		return schema.EmptyMap()
	case "any_tuple":
		return schema.TupleAny()
	case "any_record":
		return schema.AnyRecord()
	case "date":
		return schema.Date()
	case "datetime":
		return schema.DateTime()
	case "utc_datetime":
		return schema.UTCDateTime()
	}
	if mod, typ, ok := strings.Cut(s, "."); ok {
		return schema.Ref(mod, typ)
	}
	return schema.LocalRef(s)
}

func compileTagged(module, name string, m map[string]any) (schema.Node, error) {
	if raw, ok := m["literal"]; ok {
		return schema.Lit(normalizeScalar(raw)), nil
	}
	if raw, ok := m["symbol"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: symbol literal must be a string", module, name)
		}
		return schema.SymLit(s), nil
	}
	if raw, ok := m["var"]; ok {
		tok, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: var token must be a string", module, name)
		}
		return schema.Var(tok), nil
	}
	if raw, ok := m["list"]; ok {
		elem, err := compileExpr(module, name, raw)
		if err != nil {
			return nil, err
		}
		return schema.ListOf(elem), nil
	}
	if raw, ok := m["tuple"]; ok {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: tuple expects a sequence", module, name)
		}
		elems, err := compileExprs(module, name, items)
		if err != nil {
			return nil, err
		}
		return schema.Tuple(elems...), nil
	}
	if raw, ok := m["union"]; ok {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: union expects a sequence", module, name)
		}
		alts, err := compileExprs(module, name, items)
		if err != nil {
			return nil, err
		}
		return schema.Union(alts...), nil
	}
	if raw, ok := m["map"]; ok {
		spec, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: map expects key/value", module, name)
		}
		key, err := compileExpr(module, name, spec["key"])
		if err != nil {
			return nil, err
		}
		val, err := compileExpr(module, name, spec["value"])
		if err != nil {
			return nil, err
		}
		return schema.MapOf(key, val), nil
	}
	if raw, ok := m["fields"]; ok {
		fields, err := compileFields(module, name, raw)
		if err != nil {
			return nil, err
		}
		return schema.Fields(fields...), nil
	}
	if raw, ok := m["record"]; ok {
		spec, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: record expects name/fields", module, name)
		}
		tag, _ := spec["name"].(string)
		if tag == "" {
			return nil, fmt.Errorf("schemayaml: %s.%s: record requires a name", module, name)
		}
		fields, err := compileFields(module, name, spec["fields"])
		if err != nil {
			return nil, err
		}
		return schema.Record(tag, fields...), nil
	}
	if raw, ok := m["ref"]; ok {
		spec, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemayaml: %s.%s: ref expects module/name/args", module, name)
		}
		mod, _ := spec["module"].(string)
		typ, _ := spec["name"].(string)
		if typ == "" {
			return nil, fmt.Errorf("schemayaml: %s.%s: ref requires a name", module, name)
		}
		var args []schema.Node
		if rawArgs, ok := spec["args"].([]any); ok {
			var err error
			args, err = compileExprs(module, name, rawArgs)
			if err != nil {
				return nil, err
			}
		}
		return schema.Ref(mod, typ, args...), nil
	}
	return nil, fmt.Errorf("schemayaml: %s.%s: unrecognized type expression", module, name)
}

func compileExprs(module, name string, items []any) ([]schema.Node, error) {
	out := make([]schema.Node, len(items))
	for i, it := range items {
		n, err := compileExpr(module, name, it)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func compileFields(module, name string, raw any) ([]schema.Field, error) {
	spec, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemayaml: %s.%s: fields expects a mapping", module, name)
	}
	fields := make([]schema.Field, 0, len(spec))
	for key, def := range spec {
		f := schema.Field{Key: sym.Intern(key)}
		switch d := def.(type) {
		case map[string]any:
			if inner, hasType := d["type"]; hasType {
				node, err := compileExpr(module, name, inner)
				if err != nil {
					return nil, err
				}
				f.Type = node
				f.Required, _ = d["required"].(bool)
				if dv, ok := d["default"]; ok {
					f.Default = normalizeScalar(dv)
				}
				break
			}
			// A mapping without "type" is itself a type expression.
			node, err := compileTagged(module, name, d)
			if err != nil {
				return nil, err
			}
			f.Type = node
		default:
			node, err := compileExpr(module, name, def)
			if err != nil {
				return nil, err
			}
			f.Type = node
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// normalizeScalar keeps literal and default values in the same shape the
// wire sources produce.
func normalizeScalar(v any) any {
	if i, ok := v.(int); ok {
		return int64(i)
	}
	return v
}
