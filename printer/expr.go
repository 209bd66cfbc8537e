package printer

import (
	"strconv"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

// expr writes the expression at ref at the current position. The caller
// writes the indentation before it and the newline after it.
func (s *state) expr(ref ir.Ref) {
	if s.err != nil {
		return
	}

	switch e := s.arena.Get(ref).(type) {
	case *ir.Nop:
		s.open(TokenMinor, "nop")
		s.w(")")
	case *ir.Block:
		s.open(TokenKeyword, "block")
		if e.Name.IsSet() {
			s.w(" ")
			s.name(e.Name)
		}
		s.children(e.List...)
	case *ir.If:
		s.open(TokenKeyword, "if")
		s.children(e.Condition, e.IfTrue, e.IfFalse)
	case *ir.Loop:
		// Labels are positional: the continue label only follows an exit label.
		if e.In.IsSet() && !e.Out.IsSet() {
			s.unsupported(errors.Unsupported(errors.PhasePrint, ref.String(),
				"loop continue label without an exit label not yet supported"))
			return
		}
		s.open(TokenKeyword, "loop")
		if e.Out.IsSet() {
			s.w(" ")
			s.name(e.Out)
			if e.In.IsSet() {
				s.w(" ")
				s.name(e.In)
			}
		}
		s.children(e.Body)
	case *ir.Label:
		s.open(TokenKeyword, "label")
		s.w(" ")
		s.name(e.Name)
		s.w(")")
	case *ir.Break:
		s.open(TokenKeyword, "break")
		s.w(" ")
		s.name(e.Name)
		s.children(e.Condition, e.Value)
	case *ir.Switch:
		s.switchExpr(ref, e)
	case *ir.Call:
		s.call("call", e)
	case *ir.CallImport:
		s.call("call_import", &e.Call)
	case *ir.CallIndirect:
		if e.FuncType == nil {
			errors.Invariant(errors.PhasePrint, "%s has no function type", ref)
		}
		s.open(TokenKeyword, "call_indirect")
		s.w(" ")
		s.name(e.FuncType.Name)
		s.children(append([]ir.Ref{e.Target}, e.Operands...)...)
	case *ir.GetLocal:
		s.open(TokenKeyword, "get_local")
		s.w(" ")
		s.name(e.ID)
		s.w(")")
	case *ir.SetLocal:
		s.open(TokenKeyword, "set_local")
		s.w(" ")
		s.name(e.ID)
		s.children(e.Value)
	case *ir.Load:
		m, err := loadMnemonic(ref, e)
		if err != nil {
			s.unsupported(err)
			return
		}
		s.open(TokenKeyword, m)
		s.align(e.Align)
		s.children(e.Ptr)
	case *ir.Store:
		m, err := storeMnemonic(ref, e)
		if err != nil {
			s.unsupported(err)
			return
		}
		s.open(TokenKeyword, m)
		s.align(e.Align)
		s.children(e.Ptr, e.Value)
	case *ir.Const:
		text, ok := literalText(e.Value)
		if !ok {
			s.unsupported(errors.Unsupported(errors.PhasePrint, ref.String(),
				"constant of type none not yet supported"))
			return
		}
		s.open(TokenMinor, e.Value.Type.String()+".const")
		s.w(" ")
		s.w(text)
		s.w(")")
	case *ir.Unary:
		s.operator(unaryMnemonic(ref, e))(e.Value)
	case *ir.Binary:
		s.operator(binaryMnemonic(ref, e))(e.Left, e.Right)
	case *ir.Compare:
		s.operator(compareMnemonic(ref, e))(e.Left, e.Right)
	case *ir.Convert:
		s.operator(convertMnemonic(ref, e))(e.Value)
	case *ir.Host:
		m, err := hostOpMnemonic(ref, e)
		if err != nil {
			s.unsupported(err)
			return
		}
		s.open(TokenKeyword, m)
		if e.Op == ir.HasFeature {
			s.w(" ")
			s.name(e.Feature)
		}
		s.operands(e.Operands...)
	default:
		errors.Invariant(errors.PhasePrint, "unhandled expression kind %s", ref.Kind())
	}
}

// operator opens a form headed by a computed mnemonic and returns the
// function writing its operands. On error the policy has already run and the
// returned function writes nothing.
func (s *state) operator(mnemonic string, err *errors.Error) func(operands ...ir.Ref) {
	if err != nil {
		s.unsupported(err)
		return func(...ir.Ref) {}
	}
	s.open(TokenKeyword, mnemonic)
	return s.children
}

func (s *state) call(head string, e *ir.Call) {
	s.open(TokenKeyword, head)
	s.w(" ")
	s.name(e.Target)
	s.operands(e.Operands...)
}

func (s *state) align(n uint32) {
	s.w(" align=")
	s.w(strconv.FormatUint(uint64(n), 10))
}

func (s *state) switchExpr(ref ir.Ref, e *ir.Switch) {
	s.open(TokenKeyword, "switch")
	s.w(" ")
	s.name(e.Name)
	s.incIndent()
	s.fullLine(e.Value)
	for i, c := range e.Cases {
		if s.err != nil {
			return
		}
		text, ok := literalText(c.Value)
		if !ok {
			s.doIndent()
			s.unsupported(errors.Unsupported(errors.PhasePrint, ref.String(),
				"case "+strconv.Itoa(i)+" has a value of type none"))
			s.w("\n")
			continue
		}
		s.doIndent()
		s.open(TokenKeyword, "case")
		s.w(" ")
		s.w(text)
		s.incIndent()
		if c.Body.IsSet() {
			s.fullLine(c.Body)
		}
		if c.Fallthrough {
			s.doIndent()
			s.open(TokenKeyword, "fallthrough")
			s.w(")\n")
		}
		s.decIndent()
		s.w("\n")
	}
	if e.Default.IsSet() {
		s.doIndent()
		s.open(TokenKeyword, "default")
		s.incIndent()
		s.fullLine(e.Default)
		s.decIndent()
		s.w("\n")
	}
	s.decIndent()
}
