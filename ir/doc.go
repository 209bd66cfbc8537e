// Package ir defines the in-memory representation of a structured,
// stack-typed bytecode function: value types, literals, operator
// enumerations, the closed set of expression variants, and the Arena that
// owns every node of a compilation unit.
//
// # Nodes and handles
//
// Expressions are allocated from an Arena and referred to by Ref handles.
// A Ref records the variant kind and a slot; children are stored as Refs, so
// a tree is a set of nodes in one arena linked by handles. NoRef marks an
// absent optional child (the false arm of an If, the condition or value of a
// Break, the labels of a Loop).
//
//	a := ir.NewArena()
//	body := a.NewBinary(ir.Add, ir.I32,
//		a.NewGetLocal(ir.I32, "x"),
//		a.NewConst(ir.Int32(1)))
//	fn := &ir.Function{Name: "inc", Result: ir.I32,
//		Params: []ir.NameType{{Name: "x", Type: ir.I32}}, Body: body}
//
// Resolve a handle with Get and a type switch, or with As when the variant
// is known:
//
//	switch e := a.Get(ref).(type) {
//	case *ir.Binary:
//		...
//	}
//
// # Types
//
// Every expression carries its output type, which need not match the
// types of its operands: a Compare of two f64 values produces i32.
// Operators are partitioned into integer, float and shared classes;
// Accepts reports whether an operator applies to a type.
//
// # Ownership
//
// The arena owns all nodes for the lifetime of the compilation unit and
// releases them together. An arena is single-threaded; independent units
// processed concurrently each need their own.
package ir
