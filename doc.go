package recast

// Package recast converts loosely-typed values, as produced by JSON-like
// wire parsers, into the typed shapes a module's type catalog declares.
//
// - Schema-directed decoding: the schema tree selects every rule; the input
//   is only checked against the rule selected
// - A stable error model via Issues (JSON Pointer, code, message)
// - A memoizing Catalog over a pluggable Provider SPI, safe for concurrent
//   first access
// - Generic named types instantiated through per-call parameter environments
//
// Design policy:
// - Keep only public APIs in the root package; schema nodes live in schema/,
//   interned symbols in sym/.
// - Place the in-Go catalog builder under dsl/, the YAML catalog syntax
//   under schemayaml/, and wire parsers under source/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	d := recast.NewDecoder(provider)
//	v, err := source_json.Bytes(data)
//	out, err := d.Decode(ctx, v, "users")
//	out, err := d.DecodeType(ctx, v, "container", "box", schema.Int())
