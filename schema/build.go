package schema

import "github.com/recastlab/recast/sym"

// Constructors below exist so schema trees read like declarations. They
// allocate nothing beyond the node itself.

func Lit(v any) Node          { return Literal{Value: v} }
func Any() Node               { return AnyType{} }
func None() Node              { return NoneType{} }
func Symbol() Node            { return Prim{Kind: Sym} }
func Bool() Node              { return Prim{Kind: Boolean} }
func Int() Node               { return Prim{Kind: Integer} }
func Float() Node             { return Prim{Kind: Float64} }
func Number() Node            { return Prim{Kind: Numeric} }
func NegInt() Node            { return Prim{Kind: NegInteger} }
func NonNegInt() Node         { return Prim{Kind: NonNegInteger} }
func PosInt() Node            { return Prim{Kind: PosInteger} }
func String() Node            { return Prim{Kind: Str} }
func Module() Node            { return Prim{Kind: ModuleRef} }
func Tuple(elems ...Node) Node { return TupleType{Elems: elems} }
func TupleAny() Node          { return TupleType{AnyArity: true} }
func ListOf(elem Node) Node   { return ListType{Shape: ListTyped, Elem: elem} }
func EmptyList() Node         { return ListType{Shape: ListEmpty} }
func AnyList() Node           { return ListType{Shape: ListAny} }
func MapOf(key, value Node) Node {
	return MapType{Shape: MapHomogeneous, Key: key, Value: value}
}
func EmptyMap() Node { return MapType{Shape: MapEmpty} }
func AnyMap() Node   { return MapType{Shape: MapAny} }
func Fields(fields ...Field) Node {
	return MapType{Shape: MapFields, Fields: fields}
}
func Record(name string, fields ...Field) Node {
	return RecordType{Name: sym.Intern(name), Fields: fields}
}

// AnyRecord matches any already-tagged record value.
func AnyRecord() Node { return RecordType{} }

func Union(alts ...Node) Node { return UnionType{Alts: alts} }

// Ref references name in another module.
func Ref(module, name string, args ...Node) Node {
	return RefType{Module: module, Name: name, Args: args}
}

// LocalRef references name in the module currently being decoded.
func LocalRef(name string, args ...Node) Node {
	return RefType{Name: name, Args: args}
}

func Var(token string) Node { return VarType{Token: token} }

// Temporal builtins. These resolve to bespoke leaf parsers in the decoder,
// never to a catalog entry.
func Date() Node        { return RefType{Module: "date", Name: "t"} }
func DateTime() Node    { return RefType{Module: "datetime", Name: "t"} }
func UTCDateTime() Node { return RefType{Module: "utc_datetime", Name: "t"} }

// F declares a required field.
func F(key string, t Node) Field {
	return Field{Key: sym.Intern(key), Type: t, Required: true}
}

// Opt declares an optional field, omitted from field-set output when absent.
func Opt(key string, t Node) Field {
	return Field{Key: sym.Intern(key), Type: t}
}

// FD declares a record field with a default used when the input omits it.
func FD(key string, t Node, def any) Field {
	return Field{Key: sym.Intern(key), Type: t, Default: def}
}

// SymLit interns name and returns a literal matching exactly that symbol.
func SymLit(name string) Node { return Literal{Value: sym.Intern(name)} }
