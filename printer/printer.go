package printer

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

// Options configures a Printer.
type Options struct {
	// Decorator wraps tokens for presentation. Plain leaves them untouched.
	Decorator Decorator

	// Indent is the text written once per nesting level.
	Indent string

	// OnUnsupported is consulted for every input this printer cannot render:
	// a memory access with an offset, an unknown operator, an operator
	// applied outside its type class. Returning nil writes a block comment
	// in place of the expression and continues; returning an error stops
	// printing and returns it. A nil OnUnsupported stops on the first one.
	OnUnsupported func(err *errors.Error) error
}

// DefaultOptions returns plain text with two-space indentation that stops at
// the first unsupported expression.
func DefaultOptions() Options {
	return Options{
		Decorator: Plain,
		Indent:    "  ",
	}
}

// Printer renders trees of one arena to canonical text. Printing only reads
// the tree.
type Printer struct {
	arena *ir.Arena
	opts  Options
}

// New creates a printer for expressions owned by a.
func New(a *ir.Arena, opts Options) *Printer {
	if opts.Decorator == nil {
		opts.Decorator = Plain
	}
	return &Printer{arena: a, opts: opts}
}

// Annotate returns an OnUnsupported policy that logs every unsupported
// expression at warn level and keeps printing.
func Annotate(log *zap.Logger) func(*errors.Error) error {
	return func(err *errors.Error) error {
		l := log
		if l == nil {
			l = Logger()
		}
		l.Warn("unsupported expression",
			zap.String("node", err.Node),
			zap.String("kind", string(err.Kind)),
			zap.String("detail", err.Detail))
		return nil
	}
}

// Expression renders the subtree rooted at ref starting at indent level 0.
func (p *Printer) Expression(ref ir.Ref) (string, error) {
	s := p.state()
	s.expr(ref)
	return s.result()
}

// Function renders a function definition.
func (p *Printer) Function(fn *ir.Function) (string, error) {
	s := p.state()
	s.function(fn)
	return s.result()
}

// FunctionType renders a signature. With full set it renders the complete
// type definition, otherwise only the param and result clauses.
func (p *Printer) FunctionType(ft *ir.FunctionType, full bool) string {
	s := p.state()
	s.functionType(ft, full)
	return s.b.String()
}

// Import renders an import declaration.
func (p *Printer) Import(imp *ir.Import) string {
	s := p.state()
	s.importDecl(imp)
	return s.b.String()
}

// Export renders an export declaration.
func (p *Printer) Export(exp ir.Export) string {
	s := p.state()
	s.export(exp)
	return s.b.String()
}

// Table renders the indirect call table.
func (p *Printer) Table(t ir.Table) string {
	s := p.state()
	s.table(t)
	return s.b.String()
}

// Module renders a whole compilation unit: memory, types, exports, the
// table when it has entries, then functions.
func (p *Printer) Module(m *ir.Module) (string, error) {
	s := p.state()
	s.module(m)
	return s.result()
}

func (p *Printer) state() *state {
	return &state{p: p, arena: p.arena}
}

// state is the output buffer and indentation of one print call.
type state struct {
	p      *Printer
	arena  *ir.Arena
	err    error
	b      strings.Builder
	indent int
}

func (s *state) result() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.b.String(), nil
}

func (s *state) w(text string) {
	s.b.WriteString(text)
}

func (s *state) deco(class TokenClass, token string) {
	s.b.WriteString(s.p.opts.Decorator.Decorate(class, token))
}

// open writes "(" and the decorated head token of a form.
func (s *state) open(class TokenClass, token string) {
	s.b.WriteByte('(')
	s.deco(class, token)
}

func (s *state) doIndent() {
	for i := 0; i < s.indent; i++ {
		s.b.WriteString(s.p.opts.Indent)
	}
}

func (s *state) incIndent() {
	s.b.WriteByte('\n')
	s.indent++
}

func (s *state) decIndent() {
	s.indent--
	s.doIndent()
	s.b.WriteByte(')')
}

func (s *state) fullLine(ref ir.Ref) {
	s.doIndent()
	s.expr(ref)
	s.b.WriteByte('\n')
}

// children writes each present child on its own line one level deeper and
// closes the form on a line of its own, even when no child is present.
func (s *state) children(refs ...ir.Ref) {
	s.incIndent()
	for _, r := range refs {
		if r.IsSet() {
			s.fullLine(r)
		}
	}
	s.decIndent()
}

// operands is children for call-like forms, which close on the same line
// when they have nothing to pass.
func (s *state) operands(refs ...ir.Ref) {
	if len(refs) == 0 {
		s.b.WriteByte(')')
		return
	}
	s.children(refs...)
}

func (s *state) name(n ir.Name) {
	s.b.WriteByte('$')
	s.b.WriteString(string(n))
}

// quote writes a string literal, escaping quotes, backslashes and control
// bytes with two-digit hex escapes.
func (s *state) quote(text string) {
	s.b.WriteByte('"')
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"' || c == '\\':
			s.b.WriteByte('\\')
			s.b.WriteByte(c)
		case c < 0x20 || c == 0x7f:
			s.b.WriteByte('\\')
			s.b.WriteString(strconv.FormatUint(uint64(c)>>4, 16))
			s.b.WriteString(strconv.FormatUint(uint64(c)&0xf, 16))
		default:
			s.b.WriteByte(c)
		}
	}
	s.b.WriteByte('"')
}

// unsupported applies the configured policy to err. Either printing stops or
// a block comment takes the place of the expression.
func (s *state) unsupported(err *errors.Error) {
	if s.p.opts.OnUnsupported == nil {
		s.err = err
		return
	}
	if cbErr := s.p.opts.OnUnsupported(err); cbErr != nil {
		s.err = cbErr
		return
	}
	s.w("(; unsupported ")
	s.w(err.Node)
	s.w(": ")
	s.w(strings.ReplaceAll(err.Detail, ";)", "; )"))
	s.w(" ;)")
}

func (s *state) function(fn *ir.Function) {
	s.open(TokenMajor, "func")
	s.w(" ")
	s.name(fn.Name)
	for _, param := range fn.Params {
		s.w(" ")
		s.open(TokenMinor, "param")
		s.w(" ")
		s.name(param.Name)
		s.w(" ")
		s.w(param.Type.String())
		s.w(")")
	}
	if fn.Result != ir.None {
		s.w(" ")
		s.open(TokenMinor, "result")
		s.w(" ")
		s.w(fn.Result.String())
		s.w(")")
	}
	s.incIndent()
	for _, local := range fn.Locals {
		s.doIndent()
		s.open(TokenMinor, "local")
		s.w(" ")
		s.name(local.Name)
		s.w(" ")
		s.w(local.Type.String())
		s.w(")\n")
	}
	if fn.Body.IsSet() {
		s.fullLine(fn.Body)
	}
	s.decIndent()
}

func (s *state) functionType(ft *ir.FunctionType, full bool) {
	if full {
		s.open(TokenKeyword, "type")
		s.w(" ")
		s.name(ft.Name)
		s.w(" (func")
	}
	if len(ft.Params) > 0 {
		s.w(" ")
		s.open(TokenMinor, "param")
		for _, param := range ft.Params {
			s.w(" ")
			s.w(param.String())
		}
		s.w(")")
	}
	if ft.Result != ir.None {
		s.w(" ")
		s.open(TokenMinor, "result")
		s.w(" ")
		s.w(ft.Result.String())
		s.w(")")
	}
	if full {
		s.w("))")
	}
}

func (s *state) importDecl(imp *ir.Import) {
	if imp.Type == nil {
		errors.Invariant(errors.PhasePrint, "import %s has no function type", imp.Name)
	}
	s.open(TokenKeyword, "import")
	s.w(" ")
	s.name(imp.Name)
	s.w(" ")
	s.quote(imp.Module)
	s.w(" ")
	s.quote(imp.Base)
	s.w(" ")
	s.functionType(imp.Type, false)
	s.w(")")
}

func (s *state) export(exp ir.Export) {
	s.open(TokenKeyword, "export")
	s.w(" ")
	s.quote(exp.Name)
	s.w(" ")
	s.name(exp.Value)
	s.w(")")
}

func (s *state) table(t ir.Table) {
	s.open(TokenKeyword, "table")
	for _, n := range t.Names {
		s.w(" ")
		s.name(n)
	}
	s.w(")")
}

func (s *state) module(m *ir.Module) {
	s.open(TokenMajor, "module")
	s.incIndent()

	s.doIndent()
	s.open(TokenKeyword, "memory")
	s.w(" ")
	s.w(strconv.FormatUint(uint64(m.Memory), 10))
	s.w(")\n")

	for _, ft := range m.SortedFunctionTypes() {
		s.doIndent()
		s.functionType(ft, true)
		s.w("\n")
	}
	for _, exp := range m.Exports {
		s.doIndent()
		s.export(exp)
		s.w("\n")
	}
	if len(m.Table.Names) > 0 {
		s.doIndent()
		s.table(m.Table)
		s.w("\n")
	}
	for _, fn := range m.Functions {
		if s.err != nil {
			return
		}
		s.doIndent()
		s.function(fn)
		s.w("\n")
	}

	s.decIndent()
	s.w("\n")
}
