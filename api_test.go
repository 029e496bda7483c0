package recast_test

import (
	"context"
	"reflect"
	"testing"

	recast "github.com/recastlab/recast"
	"github.com/recastlab/recast/dsl"
	"github.com/recastlab/recast/schema"
)

func TestDecode_UsesPrincipalTypeName(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("acct").
		Type("t", schema.Fields(schema.F("id", schema.Int()))).
		Type("other", schema.String()))

	out, err := d.Decode(ctx, map[string]any{"id": int64(1)}, "acct")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out2, err := d.DecodeType(ctx, map[string]any{"id": int64(1)}, "acct", recast.DefaultTypeName)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(out, out2) {
		t.Fatalf("Decode must resolve %q: %#v vs %#v", recast.DefaultTypeName, out, out2)
	}
}

func TestMustDecode_PanicsWithIssues(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("acct").Type("t", schema.Int()))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value must be the structured error, got %T", r)
		}
		if !recast.IsConvertError(err) {
			t.Fatalf("expected convert error, got: %v", err)
		}
	}()
	d.MustDecode(ctx, "not an int", "acct")
}

func TestMustDecode_ReturnsOnSuccess(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("acct").Type("t", schema.Int()))

	if out := d.MustDecode(ctx, int64(3), "acct"); out != int64(3) {
		t.Fatalf("unexpected out: %#v", out)
	}
}

func TestDecode_IdempotentOnSuccess(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("acct").
		Type("t", schema.Fields(
			schema.F("id", schema.Int()),
			schema.F("tags", schema.ListOf(schema.Symbol())),
			schema.Opt("pos", schema.Tuple(schema.Int(), schema.Int())),
			schema.Opt("born", schema.Date()),
		)))

	// Declaration side interns; the input below only references.
	schema.SymLit("tag_a")
	schema.SymLit("tag_b")

	in := map[string]any{
		"id":   int64(12),
		"tags": []any{"tag_a", "tag_b"},
		"pos":  []any{int64(3), int64(4)},
		"born": "1999-12-31",
	}
	once, err := d.Decode(ctx, in, "acct")
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	twice, err := d.Decode(ctx, once, "acct")
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("decode must be idempotent on success:\n%#v\n%#v", once, twice)
	}
}

func TestDecoder_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("acct").Type("t", schema.ListOf(schema.Int())))

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := d.Decode(ctx, []any{int64(1), int64(2)}, "acct")
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
}
