package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild Phase = "build" // arena allocation and node construction
	PhaseWalk  Phase = "walk"  // traversal and rewriting
	PhasePrint Phase = "print" // canonical text rendering
	PhaseCheck Phase = "check" // grammar checks over printed text
	PhaseLoad  Phase = "load"  // fixture loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupported  Kind = "unsupported"
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalidData  Kind = "invalid_data"
	KindNotFound     Kind = "not_found"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindDuplicate    Kind = "duplicate"
	KindSyntax       Kind = "syntax"
	KindInvariant    Kind = "invariant"
)

// Error is the structured error type used throughout the module.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Node   string // offending node, e.g. "load#3"
	Detail string
	Path   []string
	Line   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Node != "" {
		b.WriteString(" at ")
		b.WriteString(e.Node)
	} else if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Node sets the offending node identity
func (b *Builder) Node(node string) *Builder {
	b.err.Node = node
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Line sets the source line
func (b *Builder) Line(line int) *Builder {
	b.err.Line = line
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Unsupported creates an error for a representable input the current stage
// does not handle yet.
func Unsupported(phase Phase, node string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Node:   node,
		Detail: what,
	}
}

// TypeMismatch creates an error for an operator applied outside its value
// type class.
func TypeMismatch(phase Phase, node string, op string, typ string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Node:   node,
		Detail: fmt.Sprintf("operator %s does not apply to %s", op, typ),
		Value:  op,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Duplicate creates an error for a name defined twice
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q already defined", what, name),
		Value:  name,
	}
}

// Syntax creates a grammar error at a line of printed text
func Syntax(line int, detail string) *Error {
	return &Error{
		Phase:  PhaseCheck,
		Kind:   KindSyntax,
		Line:   line,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a fixture loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Invariant panics with a structural error. It marks conditions a
// well-formed tree can never reach: an unknown node kind, a dangling
// handle, a size query on the none type.
func Invariant(phase Phase, format string, args ...any) {
	panic(&Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Detail: fmt.Sprintf(format, args...),
	})
}

// IsInvariant reports whether a recovered panic value is an invariant error.
func IsInvariant(v any) bool {
	e, ok := v.(*Error)
	return ok && e.Kind == KindInvariant
}
