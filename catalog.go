package recast

import (
	"context"
	"errors"
	"sync"

	"github.com/recastlab/recast/i18n"
	"github.com/recastlab/recast/schema"
)

// DefaultTypeName is the conventional principal type of a module; Decode
// resolves it when no explicit name is given.
const DefaultTypeName = "t"

// TypeDef is one catalog entry: a schema tree plus its declared generic
// parameter tokens, in order.
type TypeDef struct {
	Node   schema.Node
	Params []string
}

// Provider is the schema source SPI. FetchTypeCatalog enumerates every named
// type of a module; it returns ErrNoCatalog when the module has no catalog
// at all. Implementations may do I/O and must be safe for concurrent use.
type Provider interface {
	FetchTypeCatalog(ctx context.Context, module string) (map[string]TypeDef, error)
}

// Catalog resolves (module, name) to a TypeDef, memoizing each module's
// fetched catalog for the process lifetime. Reads vastly outnumber writes;
// concurrent first lookups of the same module may fetch more than once, but
// LoadOrStore guarantees every caller observes the same stored entry.
type Catalog struct {
	provider Provider
	modules  sync.Map // module string -> map[string]TypeDef
}

// NewCatalog wraps a Provider in a memoizing catalog.
func NewCatalog(p Provider) *Catalog { return &Catalog{provider: p} }

// Resolve returns the definition of name in module. It fails with
// schema_not_found when the module has no catalog and type_not_found when
// the module exists but declares no such name.
func (c *Catalog) Resolve(ctx context.Context, module, name string) (TypeDef, error) {
	types, err := c.load(ctx, module)
	if err != nil {
		return TypeDef{}, err
	}
	def, ok := types[name]
	if !ok {
		return TypeDef{}, Issues{Issue{
			Path:    "/",
			Code:    CodeTypeNotFound,
			Message: i18n.T(CodeTypeNotFound, nil),
			Hint:    module + "." + name,
			Params:  map[string]any{"module": module, "name": name},
		}}
	}
	return def, nil
}

// Loadable reports whether module has a fetchable type catalog. Used by the
// module_ref primitive.
func (c *Catalog) Loadable(ctx context.Context, module string) bool {
	_, err := c.load(ctx, module)
	return err == nil
}

func (c *Catalog) load(ctx context.Context, module string) (map[string]TypeDef, error) {
	if v, ok := c.modules.Load(module); ok {
		return v.(map[string]TypeDef), nil
	}
	types, err := c.provider.FetchTypeCatalog(ctx, module)
	if err != nil {
		if errors.Is(err, ErrNoCatalog) {
			return nil, Issues{Issue{
				Path:    "/",
				Code:    CodeSchemaNotFound,
				Message: i18n.T(CodeSchemaNotFound, nil),
				Hint:    module,
				Cause:   err,
			}}
		}
		return nil, err
	}
	// Losers of the race adopt the winner's entry so later reads are stable.
	actual, _ := c.modules.LoadOrStore(module, types)
	return actual.(map[string]TypeDef), nil
}
