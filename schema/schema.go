// Package schema defines the type-node tree the decoder interprets. Nodes
// form a closed sum; they are pure data and immutable once built. How a tree
// is produced is up to the caller: the dsl package builds trees in Go, the
// schemayaml package compiles them from YAML documents, and providers may
// construct them any other way.
//
// A tree may reference other named types only through Ref nodes; cycles go
// through the catalog, never through direct self-reference.
package schema

import "github.com/recastlab/recast/sym"

// Node is one type-node in a schema tree.
type Node interface{ isNode() }

// Literal matches only an input equal to Value. A sym.Symbol literal also
// matches the string naming it, provided the symbol already exists.
type Literal struct{ Value any }

// AnyType matches every input unchanged.
type AnyType struct{}

// NoneType matches nothing.
type NoneType struct{}

// PrimKind enumerates the primitive scalar kinds.
type PrimKind int

const (
	Sym PrimKind = iota
	Boolean
	Integer
	Float64
	Numeric // integer or float
	NegInteger
	NonNegInteger
	PosInteger
	Str
	ModuleRef // a symbol naming a module with a fetchable catalog
)

// Prim matches a scalar of the given kind.
type Prim struct{ Kind PrimKind }

// TupleType matches a fixed-arity positional value. When AnyArity is set,
// Elems is ignored and any arity is accepted.
type TupleType struct {
	Elems    []Node
	AnyArity bool
}

// ListShape selects how a ListType constrains its input.
type ListShape int

const (
	ListEmpty ListShape = iota
	ListAny
	ListTyped
)

// ListType matches an ordered sequence.
type ListType struct {
	Shape ListShape
	Elem  Node // set when Shape == ListTyped
}

// MapShape selects how a MapType constrains its input.
type MapShape int

const (
	MapEmpty MapShape = iota
	MapAny
	MapHomogeneous
	MapFields
)

// MapType matches a mapping. Key/Value are set for MapHomogeneous; Fields
// for MapFields.
type MapType struct {
	Shape  MapShape
	Key    Node
	Value  Node
	Fields []Field
}

// RecordType matches a tagged record. A zero Name accepts any already-tagged
// record without rebuilding a specific shape. Absent fields are filled from
// Field.Default.
type RecordType struct {
	Name   sym.Symbol
	Fields []Field
}

// UnionType matches the first alternative that decodes; order is
// significant.
type UnionType struct{ Alts []Node }

// RefType references a named type in a catalog module. An empty Module means
// the module currently being decoded. Args instantiate the target's generic
// parameters.
type RefType struct {
	Module string
	Name   string
	Args   []Node
}

// VarType is a generic type parameter, resolved through the parameter
// environment of the enclosing instantiation.
type VarType struct{ Token string }

// Field is one declared entry of a field-set or record.
type Field struct {
	Key      sym.Symbol
	Type     Node
	Required bool
	Default  any // consulted by record decoding only
}

func (Literal) isNode()    {}
func (AnyType) isNode()    {}
func (NoneType) isNode()   {}
func (Prim) isNode()       {}
func (TupleType) isNode()  {}
func (ListType) isNode()   {}
func (MapType) isNode()    {}
func (RecordType) isNode() {}
func (UnionType) isNode()  {}
func (RefType) isNode()    {}
func (VarType) isNode()    {}
