package ir

import (
	"testing"
	"unsafe"
)

func TestArena_AllocIsZeroed(t *testing.T) {
	a := NewArena()
	ref, b := Alloc[Binary](a)

	if ref.Kind() != KindBinary {
		t.Fatalf("Kind = %s, want binary", ref.Kind())
	}
	if b.Type != None || b.Left != NoRef || b.Right != NoRef || b.Op != Add {
		t.Errorf("node not zeroed: %+v", b)
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}
}

func TestArena_GetReturnsSameNode(t *testing.T) {
	a := NewArena()
	ref, c := Alloc[Const](a)
	c.Type = I32
	c.Value = Int32(9)

	got, ok := a.Get(ref).(*Const)
	if !ok {
		t.Fatalf("Get returned %T", a.Get(ref))
	}
	if got != c {
		t.Error("Get should return the allocated pointer")
	}
	if got.Value.I32() != 9 {
		t.Errorf("Value = %d, want 9", got.Value.I32())
	}
}

func TestArena_PointersSurviveGrowth(t *testing.T) {
	a := NewArenaWithOptions(ArenaOptions{ChunkBytes: 64})
	first, c := Alloc[Const](a)
	c.Value = Int32(1)

	for i := 0; i < 1000; i++ {
		a.NewConst(Int32(int32(i)))
	}

	if a.Get(first) != Expression(c) {
		t.Fatal("first node moved after growth")
	}
	if c.Value.I32() != 1 {
		t.Errorf("Value = %d, want 1", c.Value.I32())
	}
	if a.Chunks() < 2 {
		t.Errorf("Chunks = %d, expected growth", a.Chunks())
	}
}

func TestArena_ChunkCapacity(t *testing.T) {
	a := NewArena()
	per := DefaultChunkBytes / int(unsafe.Sizeof(Nop{}))
	if per < 1 {
		per = 1
	}
	for i := 0; i < per; i++ {
		a.NewNop()
	}
	if a.Chunks() != 1 {
		t.Fatalf("Chunks = %d after %d nops, want 1", a.Chunks(), per)
	}
	a.NewNop()
	if a.Chunks() != 2 {
		t.Errorf("Chunks = %d after overflow, want 2", a.Chunks())
	}
}

func TestArena_TinyChunksHoldOneNode(t *testing.T) {
	a := NewArenaWithOptions(ArenaOptions{ChunkBytes: 1})
	a.NewNop()
	a.NewNop()
	if a.Chunks() != 2 {
		t.Errorf("Chunks = %d, want 2", a.Chunks())
	}
}

func TestArena_KindsAreSeparate(t *testing.T) {
	a := NewArena()
	c := a.NewConst(Int32(1))
	g := a.NewGetLocal(I32, "x")

	if c.Slot() != 0 || g.Slot() != 0 {
		t.Errorf("first node of each kind should take slot 0: %s %s", c, g)
	}
	if c == g {
		t.Error("handles of different kinds must differ")
	}
	if c.String() != "const#0" {
		t.Errorf("String() = %q, want const#0", c.String())
	}
}

func TestArena_GetInvalid(t *testing.T) {
	a := NewArena()
	a.NewNop()

	expectInvariant(t, func() { a.Get(NoRef) })
	expectInvariant(t, func() { a.Get(makeRef(KindNop, 5)) })
	expectInvariant(t, func() { a.Get(makeRef(KindBinary, 0)) })
}

func TestArena_As(t *testing.T) {
	a := NewArena()
	ref := a.NewGetLocal(I64, "n")

	g := As[GetLocal](a, ref)
	if g.ID != "n" || g.Type != I64 {
		t.Errorf("As returned %+v", g)
	}
	expectInvariant(t, func() { As[Const](a, ref) })
}

func TestArena_Release(t *testing.T) {
	a := NewArena()
	ref := a.NewNop()
	a.Release()

	if a.Len() != 0 || a.Chunks() != 0 {
		t.Errorf("Len=%d Chunks=%d after release", a.Len(), a.Chunks())
	}
	expectInvariant(t, func() { a.Get(ref) })

	// The arena is reusable.
	again := a.NewNop()
	if _, ok := a.Get(again).(*Nop); !ok {
		t.Error("arena not reusable after release")
	}
}

func TestArena_CallImportIsDistinct(t *testing.T) {
	a := NewArena()
	ref := a.NewCallImport(I32, "print", a.NewConst(Int32(1)))

	ci, ok := a.Get(ref).(*CallImport)
	if !ok {
		t.Fatalf("Get returned %T", a.Get(ref))
	}
	if ci.Kind() != KindCallImport || ci.Target != "print" || len(ci.Operands) != 1 {
		t.Errorf("unexpected call_import: %+v", ci)
	}
	if ci.ResultType() != I32 {
		t.Errorf("ResultType = %s", ci.ResultType())
	}
}

func TestConstructors(t *testing.T) {
	a := NewArena()

	load := As[Load](a, a.NewLoad(2, true, false, a.NewConst(Int32(0))))
	if load.Type != I32 || load.Bytes != 2 || load.Align != 2 || !load.Signed {
		t.Errorf("load = %+v", load)
	}

	store := As[Store](a, a.NewStore(8, true, a.NewConst(Int32(0)), a.NewConst(Float64(1))))
	if store.Type != F64 || store.Align != 8 || !store.Float {
		t.Errorf("store = %+v", store)
	}

	cmp := As[Compare](a, a.NewCompare(Lt, F64, a.NewConst(Float64(1)), a.NewConst(Float64(2))))
	if cmp.Type != I32 || cmp.InputType != F64 {
		t.Errorf("compare = %+v", cmp)
	}

	ft := &FunctionType{Name: "ii", Result: I64, Params: []Type{I32}}
	ci := As[CallIndirect](a, a.NewCallIndirect(ft, a.NewConst(Int32(0))))
	if ci.Type != I64 || ci.FuncType != ft {
		t.Errorf("call_indirect = %+v", ci)
	}

	hf := As[Host](a, a.NewHasFeature("simd"))
	if hf.Op != HasFeature || hf.Feature != "simd" || hf.Type != I32 {
		t.Errorf("has_feature = %+v", hf)
	}
}
