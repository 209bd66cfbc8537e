package printer

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/wippyai/wasm-ir/ir"
)

func TestStyled_StripsToPlain(t *testing.T) {
	a := ir.NewArena()
	fn := countFunction(a)

	plainOut, err := New(a, DefaultOptions()).Function(fn)
	if err != nil {
		t.Fatal(err)
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	opts := DefaultOptions()
	opts.Decorator = NewStyled(r)
	styled, err := New(a, opts).Function(fn)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(styled, "\x1b[") {
		t.Fatalf("expected escape sequences in styled output:\n%s", styled)
	}
	if got := ansi.Strip(styled); got != plainOut {
		t.Errorf("stripped output differs:\n%s\n---\n%s", got, plainOut)
	}
	if err := Lint(ansi.Strip(styled)); err != nil {
		t.Errorf("lint: %v", err)
	}
}

func TestStyled_AsciiProfileIsPlain(t *testing.T) {
	a := ir.NewArena()
	ref := a.NewBinary(ir.Mul, ir.F64, a.NewConst(ir.Float64(0.5)), a.NewConst(ir.Float64(2)))

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	opts := DefaultOptions()
	opts.Decorator = NewStyled(r)
	got, err := New(a, opts).Expression(ref)
	if err != nil {
		t.Fatal(err)
	}
	if want := printExpr(t, a, ref); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecoratorFunc(t *testing.T) {
	var classes []TokenClass
	deco := DecoratorFunc(func(class TokenClass, token string) string {
		classes = append(classes, class)
		if class == TokenMajor {
			return strings.ToUpper(token)
		}
		return token
	})

	a := ir.NewArena()
	fn := &ir.Function{
		Name:   "f",
		Params: []ir.NameType{{Name: "p", Type: ir.I32}},
		Body:   a.NewNop(),
	}
	opts := DefaultOptions()
	opts.Decorator = deco
	got, err := New(a, opts).Function(fn)
	if err != nil {
		t.Fatal(err)
	}

	want := "(FUNC $f (param $p i32)\n  (nop)\n)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	wantClasses := []TokenClass{TokenMajor, TokenMinor, TokenMinor}
	if len(classes) != len(wantClasses) {
		t.Fatalf("classes = %v, want %v", classes, wantClasses)
	}
	for i := range classes {
		if classes[i] != wantClasses[i] {
			t.Errorf("class %d = %d, want %d", i, classes[i], wantClasses[i])
		}
	}
}
