package printer

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/wippyai/wasm-ir/ir"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleModule(t *testing.T, a *ir.Arena) *ir.Module {
	t.Helper()
	m := ir.NewModule()
	ii := &ir.FunctionType{Name: "ii", Result: ir.I32, Params: []ir.Type{ir.I32, ir.I32}}
	for _, ft := range []*ir.FunctionType{ii, {Name: "v"}} {
		if err := m.AddFunctionType(ft); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.AddImport(&ir.Import{Name: "print", Module: "env", Base: "print", Type: m.FunctionTypes["v"]}); err != nil {
		t.Fatal(err)
	}
	m.AddExport(ir.Export{Name: "add", Value: "add"})
	m.Table.Names = []ir.Name{"add"}

	add := &ir.Function{
		Name:   "add",
		Result: ir.I32,
		Params: []ir.NameType{{Name: "x", Type: ir.I32}, {Name: "y", Type: ir.I32}},
		Body: a.NewBinary(ir.Add, ir.I32,
			a.NewGetLocal(ir.I32, "x"), a.NewGetLocal(ir.I32, "y")),
	}
	main := &ir.Function{
		Name: "main",
		Body: a.NewBlock(ir.None, "",
			a.NewCallImport(ir.None, "print", a.NewConst(ir.Int32(42))),
			a.NewCallIndirect(ii, a.NewConst(ir.Int32(0)),
				a.NewConst(ir.Int32(1)), a.NewConst(ir.Int32(2))),
		),
	}
	for _, fn := range []*ir.Function{add, main} {
		if err := m.AddFunction(fn); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func countFunction(a *ir.Arena) *ir.Function {
	local := func(name ir.Name) ir.Ref { return a.NewGetLocal(ir.I32, name) }
	return &ir.Function{
		Name:   "count",
		Params: []ir.NameType{{Name: "n", Type: ir.I32}},
		Locals: []ir.NameType{{Name: "i", Type: ir.I32}},
		Body: a.NewLoop(ir.None, "done", "next",
			a.NewBlock(ir.None, "",
				a.NewBreak(ir.None, "done", a.NewCompare(ir.GeS, ir.I32, local("i"), local("n")), ir.NoRef),
				a.NewSetLocal(ir.I32, "i", a.NewBinary(ir.Add, ir.I32, local("i"), a.NewConst(ir.Int32(1)))),
				a.NewStore(4, false, local("i"), a.NewHost(ir.PageSize, ir.I32)),
				a.NewBreak(ir.None, "next", ir.NoRef, ir.NoRef),
			),
		),
	}
}

func TestGolden_Module(t *testing.T) {
	a := ir.NewArena()
	out, err := New(a, DefaultOptions()).Module(sampleModule(t, a))
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if err := Lint(out); err != nil {
		t.Fatalf("lint: %v", err)
	}
	newGoldie(t).Assert(t, "module", []byte(out))
}

func TestGolden_ControlFlow(t *testing.T) {
	a := ir.NewArena()
	out, err := New(a, DefaultOptions()).Function(countFunction(a))
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if err := Lint(out); err != nil {
		t.Fatalf("lint: %v", err)
	}
	newGoldie(t).Assert(t, "count", []byte(out+"\n"))
}
