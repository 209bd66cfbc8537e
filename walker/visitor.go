package walker

import "github.com/wippyai/wasm-ir/ir"

// Identity keeps every node. Embed it in a visitor that overrides only the
// hooks it needs.
type Identity struct{}

func (Identity) VisitNop(ref ir.Ref, _ *ir.Nop) ir.Ref                   { return ref }
func (Identity) VisitBlock(ref ir.Ref, _ *ir.Block) ir.Ref               { return ref }
func (Identity) VisitIf(ref ir.Ref, _ *ir.If) ir.Ref                     { return ref }
func (Identity) VisitLoop(ref ir.Ref, _ *ir.Loop) ir.Ref                 { return ref }
func (Identity) VisitLabel(ref ir.Ref, _ *ir.Label) ir.Ref               { return ref }
func (Identity) VisitBreak(ref ir.Ref, _ *ir.Break) ir.Ref               { return ref }
func (Identity) VisitSwitch(ref ir.Ref, _ *ir.Switch) ir.Ref             { return ref }
func (Identity) VisitCall(ref ir.Ref, _ *ir.Call) ir.Ref                 { return ref }
func (Identity) VisitCallImport(ref ir.Ref, _ *ir.CallImport) ir.Ref     { return ref }
func (Identity) VisitCallIndirect(ref ir.Ref, _ *ir.CallIndirect) ir.Ref { return ref }
func (Identity) VisitGetLocal(ref ir.Ref, _ *ir.GetLocal) ir.Ref         { return ref }
func (Identity) VisitSetLocal(ref ir.Ref, _ *ir.SetLocal) ir.Ref         { return ref }
func (Identity) VisitLoad(ref ir.Ref, _ *ir.Load) ir.Ref                 { return ref }
func (Identity) VisitStore(ref ir.Ref, _ *ir.Store) ir.Ref               { return ref }
func (Identity) VisitConst(ref ir.Ref, _ *ir.Const) ir.Ref               { return ref }
func (Identity) VisitUnary(ref ir.Ref, _ *ir.Unary) ir.Ref               { return ref }
func (Identity) VisitBinary(ref ir.Ref, _ *ir.Binary) ir.Ref             { return ref }
func (Identity) VisitCompare(ref ir.Ref, _ *ir.Compare) ir.Ref           { return ref }
func (Identity) VisitConvert(ref ir.Ref, _ *ir.Convert) ir.Ref           { return ref }
func (Identity) VisitHost(ref ir.Ref, _ *ir.Host) ir.Ref                 { return ref }

// Hooks adapts a set of optional functions to the Visitor interface. A nil
// function keeps the node. Any, when set, runs for every node after the
// specific hook and sees its result.
type Hooks struct {
	Nop          func(ref ir.Ref, e *ir.Nop) ir.Ref
	Block        func(ref ir.Ref, e *ir.Block) ir.Ref
	If           func(ref ir.Ref, e *ir.If) ir.Ref
	Loop         func(ref ir.Ref, e *ir.Loop) ir.Ref
	Label        func(ref ir.Ref, e *ir.Label) ir.Ref
	Break        func(ref ir.Ref, e *ir.Break) ir.Ref
	Switch       func(ref ir.Ref, e *ir.Switch) ir.Ref
	Call         func(ref ir.Ref, e *ir.Call) ir.Ref
	CallImport   func(ref ir.Ref, e *ir.CallImport) ir.Ref
	CallIndirect func(ref ir.Ref, e *ir.CallIndirect) ir.Ref
	GetLocal     func(ref ir.Ref, e *ir.GetLocal) ir.Ref
	SetLocal     func(ref ir.Ref, e *ir.SetLocal) ir.Ref
	Load         func(ref ir.Ref, e *ir.Load) ir.Ref
	Store        func(ref ir.Ref, e *ir.Store) ir.Ref
	Const        func(ref ir.Ref, e *ir.Const) ir.Ref
	Unary        func(ref ir.Ref, e *ir.Unary) ir.Ref
	Binary       func(ref ir.Ref, e *ir.Binary) ir.Ref
	Compare      func(ref ir.Ref, e *ir.Compare) ir.Ref
	Convert      func(ref ir.Ref, e *ir.Convert) ir.Ref
	Host         func(ref ir.Ref, e *ir.Host) ir.Ref
	Any          func(ref ir.Ref) ir.Ref
}

func apply[T any](h *Hooks, fn func(ir.Ref, *T) ir.Ref, ref ir.Ref, e *T) ir.Ref {
	if fn != nil {
		ref = fn(ref, e)
	}
	if h.Any != nil {
		ref = h.Any(ref)
	}
	return ref
}

func (h *Hooks) VisitNop(ref ir.Ref, e *ir.Nop) ir.Ref       { return apply(h, h.Nop, ref, e) }
func (h *Hooks) VisitBlock(ref ir.Ref, e *ir.Block) ir.Ref   { return apply(h, h.Block, ref, e) }
func (h *Hooks) VisitIf(ref ir.Ref, e *ir.If) ir.Ref         { return apply(h, h.If, ref, e) }
func (h *Hooks) VisitLoop(ref ir.Ref, e *ir.Loop) ir.Ref     { return apply(h, h.Loop, ref, e) }
func (h *Hooks) VisitLabel(ref ir.Ref, e *ir.Label) ir.Ref   { return apply(h, h.Label, ref, e) }
func (h *Hooks) VisitBreak(ref ir.Ref, e *ir.Break) ir.Ref   { return apply(h, h.Break, ref, e) }
func (h *Hooks) VisitSwitch(ref ir.Ref, e *ir.Switch) ir.Ref { return apply(h, h.Switch, ref, e) }
func (h *Hooks) VisitCall(ref ir.Ref, e *ir.Call) ir.Ref     { return apply(h, h.Call, ref, e) }
func (h *Hooks) VisitCallImport(ref ir.Ref, e *ir.CallImport) ir.Ref {
	return apply(h, h.CallImport, ref, e)
}
func (h *Hooks) VisitCallIndirect(ref ir.Ref, e *ir.CallIndirect) ir.Ref {
	return apply(h, h.CallIndirect, ref, e)
}
func (h *Hooks) VisitGetLocal(ref ir.Ref, e *ir.GetLocal) ir.Ref {
	return apply(h, h.GetLocal, ref, e)
}
func (h *Hooks) VisitSetLocal(ref ir.Ref, e *ir.SetLocal) ir.Ref {
	return apply(h, h.SetLocal, ref, e)
}
func (h *Hooks) VisitLoad(ref ir.Ref, e *ir.Load) ir.Ref       { return apply(h, h.Load, ref, e) }
func (h *Hooks) VisitStore(ref ir.Ref, e *ir.Store) ir.Ref     { return apply(h, h.Store, ref, e) }
func (h *Hooks) VisitConst(ref ir.Ref, e *ir.Const) ir.Ref     { return apply(h, h.Const, ref, e) }
func (h *Hooks) VisitUnary(ref ir.Ref, e *ir.Unary) ir.Ref     { return apply(h, h.Unary, ref, e) }
func (h *Hooks) VisitBinary(ref ir.Ref, e *ir.Binary) ir.Ref   { return apply(h, h.Binary, ref, e) }
func (h *Hooks) VisitCompare(ref ir.Ref, e *ir.Compare) ir.Ref { return apply(h, h.Compare, ref, e) }
func (h *Hooks) VisitConvert(ref ir.Ref, e *ir.Convert) ir.Ref { return apply(h, h.Convert, ref, e) }
func (h *Hooks) VisitHost(ref ir.Ref, e *ir.Host) ir.Ref       { return apply(h, h.Host, ref, e) }

var (
	_ Visitor = Identity{}
	_ Visitor = (*Hooks)(nil)
)
