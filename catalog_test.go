package recast_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	recast "github.com/recastlab/recast"
	"github.com/recastlab/recast/schema"
)

// countingProvider counts catalog fetches per module.
type countingProvider struct {
	fetches atomic.Int64
	types   map[string]map[string]recast.TypeDef
}

func (p *countingProvider) FetchTypeCatalog(_ context.Context, module string) (map[string]recast.TypeDef, error) {
	p.fetches.Add(1)
	types, ok := p.types[module]
	if !ok {
		return nil, recast.ErrNoCatalog
	}
	return types, nil
}

func TestCatalog_MemoizesPerModule(t *testing.T) {
	ctx := context.Background()
	p := &countingProvider{types: map[string]map[string]recast.TypeDef{
		"memo": {"t": {Node: schema.Int()}},
	}}
	d := recast.NewDecoder(p)

	for i := 0; i < 10; i++ {
		if _, err := d.Decode(ctx, int64(i), "memo"); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if n := p.fetches.Load(); n != 1 {
		t.Fatalf("expected a single fetch, got %d", n)
	}
}

func TestCatalog_ConcurrentFirstAccessConverges(t *testing.T) {
	ctx := context.Background()
	p := &countingProvider{types: map[string]map[string]recast.TypeDef{
		"racy": {"t": {Node: schema.String()}},
	}}
	d := recast.NewDecoder(p)

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Decode(ctx, "hello", "racy")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	// Racing fillers may fetch more than once, but afterwards the entry is
	// stable and no further fetches happen.
	after := p.fetches.Load()
	if after < 1 || after > n {
		t.Fatalf("implausible fetch count %d", after)
	}
	if _, err := d.Decode(ctx, "again", "racy"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.fetches.Load() != after {
		t.Fatalf("cache must serve later reads without refetching")
	}
}

func TestCatalog_SchemaNotFound(t *testing.T) {
	ctx := context.Background()
	p := &countingProvider{types: map[string]map[string]recast.TypeDef{}}
	d := recast.NewDecoder(p)

	_, err := d.Decode(ctx, int64(1), "missing_module")
	if !recast.IsSchemaNotFound(err) {
		t.Fatalf("expected schema_not_found, got: %v", err)
	}
	if recast.IsConvertError(err) {
		t.Fatalf("schema_not_found is not a convert error")
	}
}

func TestCatalog_TypeNotFound(t *testing.T) {
	ctx := context.Background()
	p := &countingProvider{types: map[string]map[string]recast.TypeDef{
		"mod": {"present": {Node: schema.Int()}},
	}}
	d := recast.NewDecoder(p)

	_, err := d.DecodeType(ctx, int64(1), "mod", "absent")
	if !recast.IsTypeNotFound(err) {
		t.Fatalf("expected type_not_found, got: %v", err)
	}
}
