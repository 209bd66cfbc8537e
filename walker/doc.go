// Package walker traverses and rewrites ir expression trees.
//
// Walk visits children before their parent, in evaluation order, and
// replaces every node with the handle its hook returns:
//
//	zero := &walker.Hooks{
//		Const: func(ref ir.Ref, e *ir.Const) ir.Ref {
//			return a.NewConst(ir.Zero(e.Type))
//		},
//	}
//	walker.WalkFunction(a, fn, zero)
//
// Child order per variant:
//
//	Block          list elements
//	If             condition, true arm, false arm
//	Loop           body
//	Break          condition, value
//	Switch         value, case bodies, default
//	Call           operands
//	CallImport     operands
//	CallIndirect   target, operands
//	SetLocal       value
//	Load           pointer
//	Store          pointer, value
//	Unary          operand
//	Binary         left, right
//	Compare        left, right
//	Convert        operand
//	Host           operands
//
// Hooks may allocate new nodes from the arena while the walk is running;
// arena chunks never move, so nodes already being visited stay valid.
package walker
