// Package wasmir is an in-memory instruction tree for a stack-free,
// expression-based WebAssembly dialect, together with the tools to build,
// rewrite and print it.
//
// # Architecture Overview
//
//	wasmir/
//	├── ir/              Value types, literals, operators, expression nodes and the arena
//	├── walker/          Children-first traversal with per-variant rewrite hooks
//	├── printer/         Canonical S-expression rendering and output lint
//	├── errors/          Structured error types shared by every stage
//	├── internal/irfile/ YAML module descriptions for tests and the CLI
//	├── internal/token/  Tokenizer backing printer.Lint
//	└── cmd/irprint/     Command line front end
//
// # Quick Start
//
//	a := ir.NewArena()
//	defer a.Release()
//
//	fn := &ir.Function{
//	    Name:   "inc",
//	    Result: ir.I32,
//	    Params: []ir.NameType{{Name: "x", Type: ir.I32}},
//	    Body: a.NewBinary(ir.Add, ir.I32,
//	        a.NewGetLocal(ir.I32, "x"),
//	        a.NewConst(ir.Int32(1))),
//	}
//
//	text, err := printer.New(a, printer.DefaultOptions()).Function(fn)
//
// # Ownership
//
// Every node belongs to the arena it was allocated from and is addressed by
// an ir.Ref handle. Nodes are never freed one by one; Release drops all of
// them at the end of a compilation unit. An arena must not be shared between
// goroutines; use one per unit when processing units concurrently.
//
// # Failure Classes
//
// Malformed trees, such as a dangling handle or an unknown node kind, are
// programming errors and panic with an *errors.Error of kind invariant.
// Representable input the printer does not handle yet, such as a load with a
// non-zero offset, is returned as an *errors.Error of kind unsupported or
// type_mismatch naming the offending node.
package wasmir
