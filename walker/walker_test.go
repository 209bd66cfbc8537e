package walker

import (
	"testing"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

// recorder returns hooks that log every visited handle in order.
func recorder(seen *[]ir.Ref) *Hooks {
	return &Hooks{
		Any: func(ref ir.Ref) ir.Ref {
			*seen = append(*seen, ref)
			return ref
		},
	}
}

func equalRefs(t *testing.T, got, want []ir.Ref) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("visit %d = %s, want %s (full %v)", i, got[i], want[i], got)
		}
	}
}

func TestWalk_ChildOrder(t *testing.T) {
	ft := &ir.FunctionType{Name: "v", Result: ir.None}

	tests := []struct {
		name  string
		build func(a *ir.Arena, leaf func() ir.Ref) (root ir.Ref, children []ir.Ref)
	}{
		{"nop", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			return a.NewNop(), nil
		}},
		{"block", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			x, y, z := leaf(), leaf(), leaf()
			return a.NewBlock(ir.None, "b", x, y, z), []ir.Ref{x, y, z}
		}},
		{"if", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			c, tr, f := leaf(), leaf(), leaf()
			return a.NewIf(ir.I32, c, tr, f), []ir.Ref{c, tr, f}
		}},
		{"loop", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			b := leaf()
			return a.NewLoop(ir.None, "out", "in", b), []ir.Ref{b}
		}},
		{"label", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			return a.NewLabel("l"), nil
		}},
		{"break", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			c, v := leaf(), leaf()
			return a.NewBreak(ir.None, "l", c, v), []ir.Ref{c, v}
		}},
		{"switch", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			v, c0, c1, d := leaf(), leaf(), leaf(), leaf()
			cases := []ir.Case{
				{Value: ir.Int32(0), Body: c0, Fallthrough: true},
				{Value: ir.Int32(1), Body: c1},
			}
			return a.NewSwitch(ir.None, "s", v, cases, d), []ir.Ref{v, c0, c1, d}
		}},
		{"call", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			x, y := leaf(), leaf()
			return a.NewCall(ir.I32, "f", x, y), []ir.Ref{x, y}
		}},
		{"call_import", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			x, y := leaf(), leaf()
			return a.NewCallImport(ir.None, "print", x, y), []ir.Ref{x, y}
		}},
		{"call_indirect", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			target, x, y := leaf(), leaf(), leaf()
			return a.NewCallIndirect(ft, target, x, y), []ir.Ref{target, x, y}
		}},
		{"get_local", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			return a.NewGetLocal(ir.I32, "x"), nil
		}},
		{"set_local", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			v := leaf()
			return a.NewSetLocal(ir.I32, "x", v), []ir.Ref{v}
		}},
		{"load", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			p := leaf()
			return a.NewLoad(4, false, false, p), []ir.Ref{p}
		}},
		{"store", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			p, v := leaf(), leaf()
			return a.NewStore(4, false, p, v), []ir.Ref{p, v}
		}},
		{"const", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			return a.NewConst(ir.Int64(3)), nil
		}},
		{"unary", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			v := leaf()
			return a.NewUnary(ir.Clz, ir.I32, v), []ir.Ref{v}
		}},
		{"binary", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			l, r := leaf(), leaf()
			return a.NewBinary(ir.Sub, ir.I32, l, r), []ir.Ref{l, r}
		}},
		{"compare", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			l, r := leaf(), leaf()
			return a.NewCompare(ir.LtS, ir.I32, l, r), []ir.Ref{l, r}
		}},
		{"convert", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			v := leaf()
			return a.NewConvert(ir.WrapInt64, ir.I32, v), []ir.Ref{v}
		}},
		{"host", func(a *ir.Arena, leaf func() ir.Ref) (ir.Ref, []ir.Ref) {
			v := leaf()
			return a.NewHost(ir.GrowMemory, ir.I32, v), []ir.Ref{v}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ir.NewArena()
			n := int32(0)
			leaf := func() ir.Ref {
				n++
				return a.NewConst(ir.Int32(n))
			}
			root, children := tt.build(a, leaf)

			var seen []ir.Ref
			got := Walk(a, root, recorder(&seen))

			if got != root {
				t.Errorf("Walk returned %s, want %s", got, root)
			}
			equalRefs(t, seen, append(children, root))
		})
	}
}

func TestWalk_NestedPostOrder(t *testing.T) {
	a := ir.NewArena()
	x := a.NewGetLocal(ir.I32, "x")
	one := a.NewConst(ir.Int32(1))
	add := a.NewBinary(ir.Add, ir.I32, x, one)
	set := a.NewSetLocal(ir.I32, "x", add)
	nop := a.NewNop()
	blk := a.NewBlock(ir.None, "", set, nop)

	var seen []ir.Ref
	Walk(a, blk, recorder(&seen))
	equalRefs(t, seen, []ir.Ref{x, one, add, set, nop, blk})
}

func TestWalk_AbsentOptionalChildren(t *testing.T) {
	a := ir.NewArena()
	c := a.NewConst(ir.Int32(1))
	tr := a.NewNop()
	iff := a.NewIf(ir.None, c, tr, ir.NoRef)
	br := a.NewBreak(ir.None, "out", ir.NoRef, ir.NoRef)
	loop := a.NewLoop(ir.None, "", "", a.NewBlock(ir.None, "", iff, br))
	body := ir.As[ir.Loop](a, loop).Body

	var seen []ir.Ref
	Walk(a, loop, recorder(&seen))
	equalRefs(t, seen, []ir.Ref{c, tr, iff, br, body, loop})

	if ir.As[ir.If](a, iff).IfFalse != ir.NoRef {
		t.Error("absent false arm should stay absent")
	}
	b := ir.As[ir.Break](a, br)
	if b.Condition != ir.NoRef || b.Value != ir.NoRef {
		t.Error("absent break children should stay absent")
	}
}

func TestWalk_ReplaceConstsWithZero(t *testing.T) {
	a := ir.NewArena()
	five := a.NewConst(ir.Int32(5))
	three := a.NewConst(ir.Int32(3))
	add := a.NewBinary(ir.Add, ir.I32, five, three)

	zero := &Hooks{
		Const: func(ref ir.Ref, e *ir.Const) ir.Ref {
			return a.NewConst(ir.Zero(e.Type))
		},
	}
	root := Walk(a, add, zero)

	if root != add {
		t.Fatalf("root replaced: %s", root)
	}
	b := ir.As[ir.Binary](a, root)
	for _, side := range []ir.Ref{b.Left, b.Right} {
		if side == five || side == three {
			t.Errorf("operand %s not replaced", side)
		}
		c := ir.As[ir.Const](a, side)
		if c.Type != ir.I32 || c.Value.I32() != 0 {
			t.Errorf("operand = %+v, want i32 0", c)
		}
	}
}

func TestWalk_MutateInPlace(t *testing.T) {
	a := ir.NewArena()
	ref := a.NewBinary(ir.Add, ir.I32, a.NewConst(ir.Int32(1)), a.NewConst(ir.Int32(2)))

	swap := &Hooks{
		Binary: func(ref ir.Ref, e *ir.Binary) ir.Ref {
			e.Left, e.Right = e.Right, e.Left
			e.Op = ir.Sub
			return ref
		},
	}
	got := Walk(a, ref, swap)

	b := ir.As[ir.Binary](a, got)
	if got != ref || b.Op != ir.Sub {
		t.Errorf("in-place mutation lost: %+v", b)
	}
	if ir.As[ir.Const](a, b.Left).Value.I32() != 2 {
		t.Error("operands not swapped")
	}
}

type nopEliminator struct {
	Identity
	arena   *ir.Arena
	removed int
}

func (v *nopEliminator) VisitBlock(ref ir.Ref, e *ir.Block) ir.Ref {
	kept := e.List[:0]
	for _, child := range e.List {
		if child.Kind() == ir.KindNop {
			v.removed++
			continue
		}
		kept = append(kept, child)
	}
	e.List = kept
	if len(e.List) == 1 && !e.Name.IsSet() {
		return e.List[0]
	}
	return ref
}

func TestWalkFunction_ReplacesBody(t *testing.T) {
	a := ir.NewArena()
	ret := a.NewGetLocal(ir.I32, "x")
	fn := &ir.Function{
		Name:   "id",
		Result: ir.I32,
		Params: []ir.NameType{{Name: "x", Type: ir.I32}},
		Body:   a.NewBlock(ir.I32, "", a.NewNop(), ret, a.NewNop()),
	}

	v := &nopEliminator{arena: a}
	WalkFunction(a, fn, v)

	if fn.Body != ret {
		t.Errorf("Body = %s, want %s", fn.Body, ret)
	}
	if v.removed != 2 {
		t.Errorf("removed = %d, want 2", v.removed)
	}
}

func TestWalkModule(t *testing.T) {
	a := ir.NewArena()
	m := ir.NewModule()
	for _, name := range []ir.Name{"f", "g"} {
		_ = m.AddFunction(&ir.Function{Name: name, Body: a.NewNop()})
	}

	replacement := a.NewLabel("done")
	WalkModule(a, m, &Hooks{
		Nop: func(ir.Ref, *ir.Nop) ir.Ref { return replacement },
	})

	for _, fn := range m.Functions {
		if fn.Body != replacement {
			t.Errorf("%s body = %s, want %s", fn.Name, fn.Body, replacement)
		}
	}
}

func TestWalk_AllocationDuringWalk(t *testing.T) {
	a := ir.NewArenaWithOptions(ir.ArenaOptions{ChunkBytes: 32})
	var ops []ir.Ref
	for i := int32(0); i < 50; i++ {
		ops = append(ops, a.NewConst(ir.Int32(i)))
	}
	call := a.NewCall(ir.None, "sink", ops...)

	wrap := &Hooks{
		Const: func(ref ir.Ref, e *ir.Const) ir.Ref {
			// Allocates fresh chunks while the walker holds the call node.
			return a.NewUnary(ir.Popcnt, ir.I32, ref)
		},
	}
	Walk(a, call, wrap)

	c := ir.As[ir.Call](a, call)
	if len(c.Operands) != 50 {
		t.Fatalf("operands = %d", len(c.Operands))
	}
	for i, op := range c.Operands {
		u := ir.As[ir.Unary](a, op)
		if ir.As[ir.Const](a, u.Value).Value.I32() != int32(i) {
			t.Errorf("operand %d wrapped the wrong const", i)
		}
	}
}

func TestWalk_NoRefRoot(t *testing.T) {
	a := ir.NewArena()
	if got := Walk(a, ir.NoRef, Identity{}); got != ir.NoRef {
		t.Errorf("Walk(NoRef) = %s", got)
	}
}

func TestWalk_DanglingHandlePanics(t *testing.T) {
	a := ir.NewArena()
	other := ir.NewArena()
	other.NewNop()
	ref := other.NewNop()

	defer func() {
		if r := recover(); !errors.IsInvariant(r) {
			t.Fatalf("recovered %v, want invariant error", r)
		}
	}()
	Walk(a, ref, Identity{})
}
