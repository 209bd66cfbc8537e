package ir

import (
	"math"

	"github.com/wippyai/wasm-ir/errors"
)

// Literal is a constant of one value type. The payload is kept as raw bits
// so the tag and the stored value cannot disagree.
type Literal struct {
	bits uint64
	Type Type
}

// Int32 returns an i32 literal.
func Int32(v int32) Literal {
	return Literal{Type: I32, bits: uint64(uint32(v))}
}

// Int64 returns an i64 literal.
func Int64(v int64) Literal {
	return Literal{Type: I64, bits: uint64(v)}
}

// Float32 returns an f32 literal.
func Float32(v float32) Literal {
	return Literal{Type: F32, bits: uint64(math.Float32bits(v))}
}

// Float64 returns an f64 literal.
func Float64(v float64) Literal {
	return Literal{Type: F64, bits: math.Float64bits(v)}
}

// Zero returns the zero literal of t.
func Zero(t Type) Literal {
	switch t {
	case I32, I64, F32, F64:
		return Literal{Type: t}
	}
	errors.Invariant(errors.PhaseBuild, "zero literal of type %s", t)
	return Literal{}
}

// I32 returns the payload of an i32 literal.
func (l Literal) I32() int32 {
	l.expect(I32)
	return int32(uint32(l.bits))
}

// I64 returns the payload of an i64 literal.
func (l Literal) I64() int64 {
	l.expect(I64)
	return int64(l.bits)
}

// F32 returns the payload of an f32 literal.
func (l Literal) F32() float32 {
	l.expect(F32)
	return math.Float32frombits(uint32(l.bits))
}

// F64 returns the payload of an f64 literal.
func (l Literal) F64() float64 {
	l.expect(F64)
	return math.Float64frombits(l.bits)
}

// IsZero reports whether all payload bits are zero. Negative zero is not zero.
func (l Literal) IsZero() bool {
	return l.bits == 0
}

// Equal compares tag and bits, so NaNs with equal payloads are equal.
func (l Literal) Equal(other Literal) bool {
	return l.Type == other.Type && l.bits == other.bits
}

func (l Literal) expect(t Type) {
	if l.Type != t {
		errors.Invariant(errors.PhaseBuild, "literal of type %s read as %s", l.Type, t)
	}
}
