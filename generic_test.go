package recast_test

import (
	"context"
	"testing"

	recast "github.com/recastlab/recast"
	"github.com/recastlab/recast/dsl"
	"github.com/recastlab/recast/schema"
	"github.com/recastlab/recast/sym"
)

func TestGeneric_BoxOfInt(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("container").
		Generic("box", []string{"a"}, schema.Fields(
			schema.F("value", schema.Var("a")),
		)))

	value := sym.Intern("value")

	out, err := d.DecodeType(ctx, map[string]any{"value": int64(5)}, "container", "box", schema.Int())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.(map[sym.Symbol]any)[value] != int64(5) {
		t.Fatalf("unexpected box: %#v", out)
	}

	_, err = d.DecodeType(ctx, map[string]any{"value": "x"}, "container", "box", schema.Int())
	wantCode(t, err, recast.CodeInvalidType)
}

func TestGeneric_NestedInstantiation(t *testing.T) {
	ctx := context.Background()
	// pairbox wraps box with its own variable: the inner instantiation must
	// interpret the argument in the outer environment.
	d := newDecoder(dsl.Module("container").
		Generic("box", []string{"a"}, schema.Fields(
			schema.F("value", schema.Var("a")),
		)).
		Generic("listbox", []string{"e"}, schema.LocalRef("box", schema.ListOf(schema.Var("e")))))

	value := sym.Intern("value")

	out, err := d.DecodeType(ctx, map[string]any{"value": []any{int64(1), int64(2)}}, "container", "listbox", schema.Int())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := out.(map[sym.Symbol]any)[value].([]any)
	if len(got) != 2 || got[0] != int64(1) {
		t.Fatalf("unexpected nested decode: %#v", out)
	}

	_, err = d.DecodeType(ctx, map[string]any{"value": []any{"x"}}, "container", "listbox", schema.Int())
	wantCode(t, err, recast.CodeInvalidType)
}

func TestGeneric_CrossModuleArgs(t *testing.T) {
	ctx := context.Background()
	// The argument is a reference resolved relative to the module that wrote
	// it, not the module that declares the generic.
	d := newDecoder(
		dsl.Module("container").Generic("box", []string{"a"}, schema.Fields(
			schema.F("value", schema.Var("a")),
		)),
		dsl.Module("ids").
			Type("t", schema.LocalRef("id")).
			Type("id", schema.PosInt()).
			Type("boxed", schema.Ref("container", "box", schema.LocalRef("id"))),
	)

	value := sym.Intern("value")

	out, err := d.DecodeType(ctx, map[string]any{"value": int64(9)}, "ids", "boxed")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.(map[sym.Symbol]any)[value] != int64(9) {
		t.Fatalf("unexpected decode: %#v", out)
	}

	_, err = d.DecodeType(ctx, map[string]any{"value": int64(-9)}, "ids", "boxed")
	wantCode(t, err, recast.CodeInvalidType)
}

func TestGeneric_ArityMismatch(t *testing.T) {
	ctx := context.Background()
	d := newDecoder(dsl.Module("container").
		Generic("box", []string{"a"}, schema.Fields(
			schema.F("value", schema.Var("a")),
		)))

	_, err := d.DecodeType(ctx, map[string]any{"value": int64(5)}, "container", "box")
	wantCode(t, err, recast.CodeTypeArity)

	_, err = d.DecodeType(ctx, map[string]any{"value": int64(5)}, "container", "box", schema.Int(), schema.Int())
	wantCode(t, err, recast.CodeTypeArity)
}

func TestGeneric_UnboundVariable(t *testing.T) {
	ctx := context.Background()
	// A bare variable with no enclosing instantiation is a schema bug, not a
	// data error.
	d := newDecoder(dsl.Module("broken").Type("t", schema.Var("a")))

	_, err := d.Decode(ctx, int64(1), "broken")
	wantCode(t, err, recast.CodeUnboundTypeVar)
}

func TestRecursive_NamedType(t *testing.T) {
	ctx := context.Background()
	// Recursion terminates on input structure: each hop consumes one layer.
	d := newDecoder(dsl.Module("tree").
		Type("t", schema.Fields(
			schema.F("label", schema.String()),
			schema.Opt("children", schema.ListOf(schema.LocalRef("t"))),
		)))

	label := sym.Intern("label")
	children := sym.Intern("children")

	in := map[string]any{
		"label": "root",
		"children": []any{
			map[string]any{"label": "leaf"},
		},
	}
	out, err := d.Decode(ctx, in, "tree")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	root := out.(map[sym.Symbol]any)
	if root[label] != "root" {
		t.Fatalf("unexpected root: %#v", root)
	}
	kids := root[children].([]any)
	if kids[0].(map[sym.Symbol]any)[label] != "leaf" {
		t.Fatalf("unexpected child: %#v", kids)
	}
}
