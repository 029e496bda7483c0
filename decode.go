package recast

import (
	"context"
	"fmt"
	"reflect"

	"github.com/recastlab/recast/schema"
	"github.com/recastlab/recast/sym"
)

// Decoder converts loosely-typed values (the output of a wire-format parser)
// into the typed shapes a module's catalog declares. It holds no per-call
// state; the only shared resource is the catalog cache, so a single Decoder
// may be used from any number of goroutines.
type Decoder struct {
	cat *Catalog
}

// NewDecoder builds a Decoder over the given schema provider.
func NewDecoder(p Provider) *Decoder { return &Decoder{cat: NewCatalog(p)} }

// Catalog exposes the decoder's memoizing catalog so callers can pre-warm or
// share it.
func (d *Decoder) Catalog() *Catalog { return d.cat }

// Decode decodes v against the module's principal type (DefaultTypeName).
func (d *Decoder) Decode(ctx context.Context, v any, module string) (any, error) {
	return d.DecodeType(ctx, v, module, DefaultTypeName)
}

// DecodeType decodes v against the named type of module, instantiating its
// generic parameters with args. It never panics; failures are returned as
// Issues.
func (d *Decoder) DecodeType(ctx context.Context, v any, module, name string, args ...schema.Node) (any, error) {
	def, err := d.cat.Resolve(ctx, module, name)
	if err != nil {
		return nil, err
	}
	env, err := bindParams("/", def.Params, args, module, nil)
	if err != nil {
		return nil, err
	}
	return d.decodeNode(ctx, "/", v, def.Node, module, env)
}

// MustDecode is Decode for callers that treat failure as a programming
// error; it panics with the structured error.
func (d *Decoder) MustDecode(ctx context.Context, v any, module string) any {
	out, err := d.Decode(ctx, v, module)
	if err != nil {
		panic(err)
	}
	return out
}

// MustDecodeType is the panicking form of DecodeType.
func (d *Decoder) MustDecodeType(ctx context.Context, v any, module, name string, args ...schema.Node) any {
	out, err := d.DecodeType(ctx, v, module, name, args...)
	if err != nil {
		panic(err)
	}
	return out
}

// decodeNode dispatches on the schema variant, never on the input's shape:
// the schema selects the rule, the input is only checked against it.
func (d *Decoder) decodeNode(ctx context.Context, path string, v any, n schema.Node, module string, env typeEnv) (any, error) {
	switch t := n.(type) {
	case schema.AnyType:
		return v, nil
	case schema.NoneType:
		return nil, failGot(path, CodeNeverMatches, "nothing", v)
	case schema.Literal:
		return d.decodeLiteral(path, v, t.Value)
	case schema.Prim:
		return d.decodePrim(ctx, path, v, t.Kind)
	case schema.TupleType:
		return d.decodeTuple(ctx, path, v, t, module, env)
	case schema.ListType:
		return d.decodeList(ctx, path, v, t, module, env)
	case schema.MapType:
		return d.decodeMap(ctx, path, v, t, module, env)
	case schema.RecordType:
		return d.decodeRecord(ctx, path, v, t, module, env)
	case schema.UnionType:
		return d.decodeUnion(ctx, path, v, t, module, env)
	case schema.RefType:
		return d.decodeRef(ctx, path, v, t, module, env)
	case schema.VarType:
		b, ok := env[t.Token]
		if !ok {
			return nil, Issues{IssueAt(path, CodeUnboundTypeVar, map[string]any{"token": t.Token})}
		}
		return d.decodeNode(ctx, path, v, b.node, b.module, b.env)
	default:
		return nil, failGot(path, CodeInvalidType, fmt.Sprintf("unhandled schema node %T", n), v)
	}
}

func (d *Decoder) decodeLiteral(path string, v, want any) (any, error) {
	if ws, ok := want.(sym.Symbol); ok {
		got, err := resolveSymbol(path, v)
		if err != nil {
			return nil, err
		}
		if got != ws {
			return nil, failGot(path, CodeInvalidEnum, ws.String(), v)
		}
		return got, nil
	}
	if literalEqual(v, want) {
		return v, nil
	}
	return nil, failGot(path, CodeInvalidEnum, fmt.Sprintf("%v", want), v)
}

func (d *Decoder) decodePrim(ctx context.Context, path string, v any, k schema.PrimKind) (any, error) {
	switch k {
	case schema.Sym:
		return resolveSymbol(path, v)
	case schema.Boolean:
		if _, ok := v.(bool); ok {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "bool", v)
	case schema.Str:
		if _, ok := v.(string); ok {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "string", v)
	case schema.Integer:
		if _, ok := asInt(v); ok {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "integer", v)
	case schema.NegInteger:
		if i, ok := asInt(v); ok && i < 0 {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "negative integer", v)
	case schema.NonNegInteger:
		if i, ok := asInt(v); ok && i >= 0 {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "non-negative integer", v)
	case schema.PosInteger:
		if i, ok := asInt(v); ok && i > 0 {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "positive integer", v)
	case schema.Float64:
		if f, ok := v.(float64); ok {
			return f, nil
		}
		// floats widen integers; the reverse is never done
		if i, ok := asInt(v); ok {
			return float64(i), nil
		}
		return nil, failGot(path, CodeInvalidType, "float", v)
	case schema.Numeric:
		if _, ok := asInt(v); ok {
			return v, nil
		}
		if _, ok := v.(float64); ok {
			return v, nil
		}
		return nil, failGot(path, CodeInvalidType, "number", v)
	case schema.ModuleRef:
		s, err := resolveSymbol(path, v)
		if err != nil {
			return nil, err
		}
		if !d.cat.Loadable(ctx, s.String()) {
			return nil, failGot(path, CodeModuleNotLoadable, "loadable module", v)
		}
		return s, nil
	default:
		return nil, failGot(path, CodeInvalidType, "primitive", v)
	}
}

// resolveSymbol accepts an existing symbol or a string naming one. It never
// interns: unknown names fail, so untrusted input cannot grow the symbol
// table.
func resolveSymbol(path string, v any) (sym.Symbol, error) {
	switch t := v.(type) {
	case sym.Symbol:
		return t, nil
	case string:
		s, ok := sym.Lookup(t)
		if !ok {
			return sym.Symbol{}, failGot(path, CodeUnknownSymbol, "existing symbol", v)
		}
		return s, nil
	default:
		return sym.Symbol{}, failGot(path, CodeInvalidType, "symbol", v)
	}
}

// asInt recognizes the integer kinds wire sources and callers produce.
func asInt(v any) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int64:
		return i, true
	case int32:
		return int64(i), true
	default:
		return 0, false
	}
}

// literalEqual compares an input against a literal value, normalizing
// integer widths but never crossing kinds.
func literalEqual(v, want any) bool {
	if wi, ok := asInt(want); ok {
		vi, ok := asInt(v)
		return ok && vi == wi
	}
	switch w := want.(type) {
	case float64:
		f, ok := v.(float64)
		return ok && f == w
	case string:
		s, ok := v.(string)
		return ok && s == w
	case bool:
		b, ok := v.(bool)
		return ok && b == w
	case nil:
		return v == nil
	default:
		return reflect.DeepEqual(v, want)
	}
}
