// Package dsl builds type catalogs in Go. A ModuleBuilder collects named
// type definitions; Registry bundles finished modules into a static
// recast.Provider, the simplest schema source for tests and embedded use.
package dsl

import (
	"context"
	"fmt"

	recast "github.com/recastlab/recast"
	"github.com/recastlab/recast/schema"
)

// ModuleBuilder accumulates the named types of one module.
type ModuleBuilder struct {
	name  string
	types map[string]recast.TypeDef
}

// Module starts a builder for the named module.
func Module(name string) *ModuleBuilder {
	return &ModuleBuilder{name: name, types: map[string]recast.TypeDef{}}
}

// Type declares a non-generic named type. Redeclaring a name panics: catalog
// entries are write-once and a duplicate is a programming error.
func (b *ModuleBuilder) Type(name string, n schema.Node) *ModuleBuilder {
	return b.Generic(name, nil, n)
}

// Generic declares a named type with generic parameter tokens.
func (b *ModuleBuilder) Generic(name string, params []string, n schema.Node) *ModuleBuilder {
	if _, ok := b.types[name]; ok {
		panic(fmt.Sprintf("dsl: duplicate type %s.%s", b.name, name))
	}
	b.types[name] = recast.TypeDef{Node: n, Params: params}
	return b
}

// registry is an in-memory Provider over finished modules.
type registry struct {
	modules map[string]map[string]recast.TypeDef
}

// Registry bundles modules into a recast.Provider. Duplicate module names
// panic for the same reason duplicate types do.
func Registry(mods ...*ModuleBuilder) recast.Provider {
	r := &registry{modules: make(map[string]map[string]recast.TypeDef, len(mods))}
	for _, m := range mods {
		if _, ok := r.modules[m.name]; ok {
			panic("dsl: duplicate module " + m.name)
		}
		r.modules[m.name] = m.types
	}
	return r
}

func (r *registry) FetchTypeCatalog(_ context.Context, module string) (map[string]recast.TypeDef, error) {
	types, ok := r.modules[module]
	if !ok {
		return nil, recast.ErrNoCatalog
	}
	return types, nil
}
