package printer

import (
	"fmt"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

var unarySuffix = [...]string{
	ir.Clz:     "clz",
	ir.Ctz:     "ctz",
	ir.Popcnt:  "popcnt",
	ir.Neg:     "neg",
	ir.Abs:     "abs",
	ir.Ceil:    "ceil",
	ir.Floor:   "floor",
	ir.Trunc:   "trunc",
	ir.Nearest: "nearest",
	ir.Sqrt:    "sqrt",
}

var binarySuffix = [...]string{
	ir.Add:      "add",
	ir.Sub:      "sub",
	ir.Mul:      "mul",
	ir.DivS:     "div_s",
	ir.DivU:     "div_u",
	ir.RemS:     "rem_s",
	ir.RemU:     "rem_u",
	ir.And:      "and",
	ir.Or:       "or",
	ir.Xor:      "xor",
	ir.Shl:      "shl",
	ir.ShrU:     "shr_u",
	ir.ShrS:     "shr_s",
	ir.Div:      "div",
	ir.CopySign: "copysign",
	ir.Min:      "min",
	ir.Max:      "max",
}

var compareSuffix = [...]string{
	ir.Eq:  "eq",
	ir.Ne:  "ne",
	ir.LtS: "lt_s",
	ir.LtU: "lt_u",
	ir.LeS: "le_s",
	ir.LeU: "le_u",
	ir.GtS: "gt_s",
	ir.GtU: "gt_u",
	ir.GeS: "ge_s",
	ir.GeU: "ge_u",
	ir.Lt:  "lt",
	ir.Le:  "le",
	ir.Gt:  "gt",
	ir.Ge:  "ge",
}

func convertSuffix(op ir.ConvertOp, t ir.Type) string {
	switch op {
	case ir.ExtendSInt32:
		return "extend_s/i32"
	case ir.ExtendUInt32:
		return "extend_u/i32"
	case ir.WrapInt64:
		return "wrap/i64"
	case ir.TruncSFloat32:
		return "trunc_s/f32"
	case ir.TruncUFloat32:
		return "trunc_u/f32"
	case ir.TruncSFloat64:
		return "trunc_s/f64"
	case ir.TruncUFloat64:
		return "trunc_u/f64"
	case ir.ReinterpretFloat:
		if t == ir.I64 {
			return "reinterpret/f64"
		}
		return "reinterpret/f32"
	case ir.ConvertSInt32:
		return "convert_s/i32"
	case ir.ConvertUInt32:
		return "convert_u/i32"
	case ir.ConvertSInt64:
		return "convert_s/i64"
	case ir.ConvertUInt64:
		return "convert_u/i64"
	case ir.PromoteFloat32:
		return "promote/f32"
	case ir.DemoteFloat64:
		return "demote/f64"
	case ir.ReinterpretInt:
		if t == ir.F64 {
			return "reinterpret/i64"
		}
		return "reinterpret/i32"
	}
	return ""
}

var hostMnemonic = [...]string{
	ir.PageSize:   "page_size",
	ir.MemorySize: "memory_size",
	ir.GrowMemory: "grow_memory",
	ir.HasFeature: "has_feature",
}

// operatorMnemonic joins the value type and the operator suffix, rejecting
// operators outside the enumeration and types the operator does not apply to.
func operatorMnemonic(ref ir.Ref, op fmt.Stringer, valid, accepts bool, t ir.Type, suffix func() string) (string, *errors.Error) {
	if !valid {
		return "", errors.Unsupported(errors.PhasePrint, ref.String(),
			fmt.Sprintf("%s operator %s not yet supported", ref.Kind(), op))
	}
	if !accepts || t == ir.None || !t.IsValid() {
		return "", errors.TypeMismatch(errors.PhasePrint, ref.String(), op.String(), t.String())
	}
	return t.String() + "." + suffix(), nil
}

func unaryMnemonic(ref ir.Ref, e *ir.Unary) (string, *errors.Error) {
	return operatorMnemonic(ref, e.Op, e.Op.IsValid(), e.Op.Accepts(e.Type), e.Type,
		func() string { return unarySuffix[e.Op] })
}

func binaryMnemonic(ref ir.Ref, e *ir.Binary) (string, *errors.Error) {
	return operatorMnemonic(ref, e.Op, e.Op.IsValid(), e.Op.Accepts(e.Type), e.Type,
		func() string { return binarySuffix[e.Op] })
}

func compareMnemonic(ref ir.Ref, e *ir.Compare) (string, *errors.Error) {
	return operatorMnemonic(ref, e.Op, e.Op.IsValid(), e.Op.Accepts(e.InputType), e.InputType,
		func() string { return compareSuffix[e.Op] })
}

func convertMnemonic(ref ir.Ref, e *ir.Convert) (string, *errors.Error) {
	return operatorMnemonic(ref, e.Op, e.Op.IsValid(), e.Op.Accepts(e.Type), e.Type,
		func() string { return convertSuffix(e.Op, e.Type) })
}

func hostOpMnemonic(ref ir.Ref, e *ir.Host) (string, *errors.Error) {
	if !e.Op.IsValid() {
		return "", errors.Unsupported(errors.PhasePrint, ref.String(),
			fmt.Sprintf("host operator %s not yet supported", e.Op))
	}
	return hostMnemonic[e.Op], nil
}

// memoryType derives the value type and width suffix of a memory access
// from its byte width and float flag. The node's own result type plays no
// part: an 8-bit load into i64 still reads as i32.load8.
func memoryType(ref ir.Ref, bytes uint32, float bool) (ir.Type, string, *errors.Error) {
	switch bytes {
	case 1:
		return ir.I32, "8", nil
	case 2:
		return ir.I32, "16", nil
	case 4, 8:
		return ir.TypeFromSizeAndKind(bytes, float), "", nil
	}
	return ir.None, "", errors.Unsupported(errors.PhasePrint, ref.String(),
		fmt.Sprintf("memory access of %d bytes not yet supported", bytes))
}

func loadMnemonic(ref ir.Ref, e *ir.Load) (string, *errors.Error) {
	if e.Offset != 0 {
		return "", errors.Unsupported(errors.PhasePrint, ref.String(),
			fmt.Sprintf("load offset %d not yet supported", e.Offset))
	}
	t, width, err := memoryType(ref, e.Bytes, e.Float)
	if err != nil {
		return "", err
	}
	m := t.String() + ".load" + width
	if width != "" {
		if e.Signed {
			m += "_s"
		} else {
			m += "_u"
		}
	}
	return m, nil
}

func storeMnemonic(ref ir.Ref, e *ir.Store) (string, *errors.Error) {
	if e.Offset != 0 {
		return "", errors.Unsupported(errors.PhasePrint, ref.String(),
			fmt.Sprintf("store offset %d not yet supported", e.Offset))
	}
	t, width, err := memoryType(ref, e.Bytes, e.Float)
	if err != nil {
		return "", err
	}
	return t.String() + ".store" + width, nil
}
