package ir

import (
	"github.com/wippyai/wasm-ir/errors"
)

// Type is a value type. None is the type of expressions producing no value.
type Type uint8

const (
	None Type = iota
	I32
	I64
	F32
	F64
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "unknown"
	}
}

// Size returns the width of the type in bytes. None has no size.
func (t Type) Size() uint32 {
	switch t {
	case I32, F32:
		return 4
	case I64, F64:
		return 8
	}
	errors.Invariant(errors.PhaseBuild, "size of value type %s", t)
	return 0
}

// IsFloat reports whether t is f32 or f64.
func (t Type) IsFloat() bool {
	return t == F32 || t == F64
}

// IsValid reports whether t is one of the five defined types.
func (t Type) IsValid() bool {
	return t <= F64
}

// TypeFromSizeAndKind derives the value type holding an access of the given
// byte width. Widths below 4 are carried in i32 whatever the float flag.
func TypeFromSizeAndKind(bytes uint32, isFloat bool) Type {
	switch {
	case bytes < 4:
		return I32
	case bytes == 4:
		if isFloat {
			return F32
		}
		return I32
	case bytes == 8:
		if isFloat {
			return F64
		}
		return I64
	}
	errors.Invariant(errors.PhaseBuild, "no value type is %d bytes wide", bytes)
	return None
}

// ParseType maps a type name back to its Type.
func ParseType(s string) (Type, bool) {
	for t := None; t <= F64; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return None, false
}

// Name identifies functions, locals, labels and types. The empty name is unset.
type Name string

// IsSet reports whether the name has been given a value.
func (n Name) IsSet() bool {
	return n != ""
}

// NameType is a named, typed slot such as a parameter or a local.
type NameType struct {
	Name Name
	Type Type
}
