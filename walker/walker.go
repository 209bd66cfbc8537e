package walker

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

// Visitor receives every node of a tree after its children. Each hook
// returns the handle that replaces the node: ref itself to keep it (possibly
// mutated in place), or a different handle to substitute a new subtree.
type Visitor interface {
	VisitNop(ref ir.Ref, e *ir.Nop) ir.Ref
	VisitBlock(ref ir.Ref, e *ir.Block) ir.Ref
	VisitIf(ref ir.Ref, e *ir.If) ir.Ref
	VisitLoop(ref ir.Ref, e *ir.Loop) ir.Ref
	VisitLabel(ref ir.Ref, e *ir.Label) ir.Ref
	VisitBreak(ref ir.Ref, e *ir.Break) ir.Ref
	VisitSwitch(ref ir.Ref, e *ir.Switch) ir.Ref
	VisitCall(ref ir.Ref, e *ir.Call) ir.Ref
	VisitCallImport(ref ir.Ref, e *ir.CallImport) ir.Ref
	VisitCallIndirect(ref ir.Ref, e *ir.CallIndirect) ir.Ref
	VisitGetLocal(ref ir.Ref, e *ir.GetLocal) ir.Ref
	VisitSetLocal(ref ir.Ref, e *ir.SetLocal) ir.Ref
	VisitLoad(ref ir.Ref, e *ir.Load) ir.Ref
	VisitStore(ref ir.Ref, e *ir.Store) ir.Ref
	VisitConst(ref ir.Ref, e *ir.Const) ir.Ref
	VisitUnary(ref ir.Ref, e *ir.Unary) ir.Ref
	VisitBinary(ref ir.Ref, e *ir.Binary) ir.Ref
	VisitCompare(ref ir.Ref, e *ir.Compare) ir.Ref
	VisitConvert(ref ir.Ref, e *ir.Convert) ir.Ref
	VisitHost(ref ir.Ref, e *ir.Host) ir.Ref
}

// Walk rewrites the tree rooted at root bottom-up and returns the handle of
// the new root. Children are visited in evaluation order and each child slot
// is overwritten with the handle its hook returned. Absent optional children
// are left as they are and no hook runs for them.
func Walk(a *ir.Arena, root ir.Ref, v Visitor) ir.Ref {
	w := &walker{arena: a, v: v}
	return w.walk(root)
}

// WalkFunction rewrites the body of fn and stores the result back.
func WalkFunction(a *ir.Arena, fn *ir.Function, v Visitor) {
	Logger().Debug("walking function", zap.String("function", string(fn.Name)))
	fn.Body = Walk(a, fn.Body, v)
}

// WalkModule rewrites every function of m in declaration order.
func WalkModule(a *ir.Arena, m *ir.Module, v Visitor) {
	for _, fn := range m.Functions {
		WalkFunction(a, fn, v)
	}
}

type walker struct {
	arena *ir.Arena
	v     Visitor
}

func (w *walker) walk(ref ir.Ref) ir.Ref {
	if ref == ir.NoRef {
		return ref
	}

	switch e := w.arena.Get(ref).(type) {
	case *ir.Nop:
		return w.v.VisitNop(ref, e)
	case *ir.Block:
		w.walkList(e.List)
		return w.v.VisitBlock(ref, e)
	case *ir.If:
		e.Condition = w.walk(e.Condition)
		e.IfTrue = w.walk(e.IfTrue)
		e.IfFalse = w.walk(e.IfFalse)
		return w.v.VisitIf(ref, e)
	case *ir.Loop:
		e.Body = w.walk(e.Body)
		return w.v.VisitLoop(ref, e)
	case *ir.Label:
		return w.v.VisitLabel(ref, e)
	case *ir.Break:
		e.Condition = w.walk(e.Condition)
		e.Value = w.walk(e.Value)
		return w.v.VisitBreak(ref, e)
	case *ir.Switch:
		e.Value = w.walk(e.Value)
		for i := range e.Cases {
			e.Cases[i].Body = w.walk(e.Cases[i].Body)
		}
		e.Default = w.walk(e.Default)
		return w.v.VisitSwitch(ref, e)
	case *ir.Call:
		w.walkList(e.Operands)
		return w.v.VisitCall(ref, e)
	case *ir.CallImport:
		w.walkList(e.Operands)
		return w.v.VisitCallImport(ref, e)
	case *ir.CallIndirect:
		e.Target = w.walk(e.Target)
		w.walkList(e.Operands)
		return w.v.VisitCallIndirect(ref, e)
	case *ir.GetLocal:
		return w.v.VisitGetLocal(ref, e)
	case *ir.SetLocal:
		e.Value = w.walk(e.Value)
		return w.v.VisitSetLocal(ref, e)
	case *ir.Load:
		e.Ptr = w.walk(e.Ptr)
		return w.v.VisitLoad(ref, e)
	case *ir.Store:
		e.Ptr = w.walk(e.Ptr)
		e.Value = w.walk(e.Value)
		return w.v.VisitStore(ref, e)
	case *ir.Const:
		return w.v.VisitConst(ref, e)
	case *ir.Unary:
		e.Value = w.walk(e.Value)
		return w.v.VisitUnary(ref, e)
	case *ir.Binary:
		e.Left = w.walk(e.Left)
		e.Right = w.walk(e.Right)
		return w.v.VisitBinary(ref, e)
	case *ir.Compare:
		e.Left = w.walk(e.Left)
		e.Right = w.walk(e.Right)
		return w.v.VisitCompare(ref, e)
	case *ir.Convert:
		e.Value = w.walk(e.Value)
		return w.v.VisitConvert(ref, e)
	case *ir.Host:
		w.walkList(e.Operands)
		return w.v.VisitHost(ref, e)
	default:
		errors.Invariant(errors.PhaseWalk, "unhandled expression kind %s", ref.Kind())
		return ref
	}
}

func (w *walker) walkList(list []ir.Ref) {
	for i, child := range list {
		list[i] = w.walk(child)
	}
}
