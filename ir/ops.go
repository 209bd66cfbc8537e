package ir

// OpClass partitions operators by the value types they apply to.
type OpClass uint8

const (
	ClassBoth OpClass = iota
	ClassInt
	ClassFloat
)

// Accepts reports whether an operator of class c applies to values of type t.
func (c OpClass) Accepts(t Type) bool {
	switch c {
	case ClassBoth:
		return t != None && t.IsValid()
	case ClassInt:
		return t == I32 || t == I64
	case ClassFloat:
		return t.IsFloat()
	}
	return false
}

func (c OpClass) String() string {
	switch c {
	case ClassBoth:
		return "int|float"
	case ClassInt:
		return "int"
	case ClassFloat:
		return "float"
	}
	return "unknown"
}

// UnaryOp is a single-operand arithmetic operator.
type UnaryOp uint8

const (
	Clz UnaryOp = iota
	Ctz
	Popcnt
	Neg
	Abs
	Ceil
	Floor
	Trunc
	Nearest
	Sqrt
)

var unaryNames = [...]string{
	Clz:     "Clz",
	Ctz:     "Ctz",
	Popcnt:  "Popcnt",
	Neg:     "Neg",
	Abs:     "Abs",
	Ceil:    "Ceil",
	Floor:   "Floor",
	Trunc:   "Trunc",
	Nearest: "Nearest",
	Sqrt:    "Sqrt",
}

func (op UnaryOp) String() string { return opName(unaryNames[:], int(op)) }

// IsValid reports whether op is a member of the enumeration.
func (op UnaryOp) IsValid() bool { return int(op) < len(unaryNames) }

// Class reports the value types op applies to.
func (op UnaryOp) Class() OpClass {
	if op <= Popcnt {
		return ClassInt
	}
	return ClassFloat
}

// Accepts reports whether op applies to operands of type t.
func (op UnaryOp) Accepts(t Type) bool { return op.IsValid() && op.Class().Accepts(t) }

// ParseUnaryOp looks an operator up by name.
func ParseUnaryOp(s string) (UnaryOp, bool) {
	i, ok := lookupOp(unaryNames[:], s)
	return UnaryOp(i), ok
}

// BinaryOp is a two-operand arithmetic or bitwise operator.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	DivS
	DivU
	RemS
	RemU
	And
	Or
	Xor
	Shl
	ShrU
	ShrS
	Div
	CopySign
	Min
	Max
)

var binaryNames = [...]string{
	Add:      "Add",
	Sub:      "Sub",
	Mul:      "Mul",
	DivS:     "DivS",
	DivU:     "DivU",
	RemS:     "RemS",
	RemU:     "RemU",
	And:      "And",
	Or:       "Or",
	Xor:      "Xor",
	Shl:      "Shl",
	ShrU:     "ShrU",
	ShrS:     "ShrS",
	Div:      "Div",
	CopySign: "CopySign",
	Min:      "Min",
	Max:      "Max",
}

func (op BinaryOp) String() string { return opName(binaryNames[:], int(op)) }

// IsValid reports whether op is a member of the enumeration.
func (op BinaryOp) IsValid() bool { return int(op) < len(binaryNames) }

// Class reports the value types op applies to.
func (op BinaryOp) Class() OpClass {
	switch {
	case op <= Mul:
		return ClassBoth
	case op <= ShrS:
		return ClassInt
	}
	return ClassFloat
}

// Accepts reports whether op applies to operands of type t.
func (op BinaryOp) Accepts(t Type) bool { return op.IsValid() && op.Class().Accepts(t) }

// ParseBinaryOp looks an operator up by name.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	i, ok := lookupOp(binaryNames[:], s)
	return BinaryOp(i), ok
}

// RelationalOp is a comparison operator. Comparisons always produce i32.
type RelationalOp uint8

const (
	Eq RelationalOp = iota
	Ne
	LtS
	LtU
	LeS
	LeU
	GtS
	GtU
	GeS
	GeU
	Lt
	Le
	Gt
	Ge
)

var relationalNames = [...]string{
	Eq:  "Eq",
	Ne:  "Ne",
	LtS: "LtS",
	LtU: "LtU",
	LeS: "LeS",
	LeU: "LeU",
	GtS: "GtS",
	GtU: "GtU",
	GeS: "GeS",
	GeU: "GeU",
	Lt:  "Lt",
	Le:  "Le",
	Gt:  "Gt",
	Ge:  "Ge",
}

func (op RelationalOp) String() string { return opName(relationalNames[:], int(op)) }

// IsValid reports whether op is a member of the enumeration.
func (op RelationalOp) IsValid() bool { return int(op) < len(relationalNames) }

// Class reports the operand types op compares.
func (op RelationalOp) Class() OpClass {
	switch {
	case op <= Ne:
		return ClassBoth
	case op <= GeU:
		return ClassInt
	}
	return ClassFloat
}

// Accepts reports whether op compares operands of type t.
func (op RelationalOp) Accepts(t Type) bool { return op.IsValid() && op.Class().Accepts(t) }

// ParseRelationalOp looks an operator up by name.
func ParseRelationalOp(s string) (RelationalOp, bool) {
	i, ok := lookupOp(relationalNames[:], s)
	return RelationalOp(i), ok
}

// ConvertOp changes representation between int and float and between
// 32 and 64 bit widths. The class is that of the result.
type ConvertOp uint8

const (
	ExtendSInt32 ConvertOp = iota
	ExtendUInt32
	WrapInt64
	TruncSFloat32
	TruncUFloat32
	TruncSFloat64
	TruncUFloat64
	ReinterpretFloat
	ConvertSInt32
	ConvertUInt32
	ConvertSInt64
	ConvertUInt64
	PromoteFloat32
	DemoteFloat64
	ReinterpretInt
)

var convertNames = [...]string{
	ExtendSInt32:     "ExtendSInt32",
	ExtendUInt32:     "ExtendUInt32",
	WrapInt64:        "WrapInt64",
	TruncSFloat32:    "TruncSFloat32",
	TruncUFloat32:    "TruncUFloat32",
	TruncSFloat64:    "TruncSFloat64",
	TruncUFloat64:    "TruncUFloat64",
	ReinterpretFloat: "ReinterpretFloat",
	ConvertSInt32:    "ConvertSInt32",
	ConvertUInt32:    "ConvertUInt32",
	ConvertSInt64:    "ConvertSInt64",
	ConvertUInt64:    "ConvertUInt64",
	PromoteFloat32:   "PromoteFloat32",
	DemoteFloat64:    "DemoteFloat64",
	ReinterpretInt:   "ReinterpretInt",
}

func (op ConvertOp) String() string { return opName(convertNames[:], int(op)) }

// IsValid reports whether op is a member of the enumeration.
func (op ConvertOp) IsValid() bool { return int(op) < len(convertNames) }

// Class reports the result types op produces.
func (op ConvertOp) Class() OpClass {
	if op <= ReinterpretFloat {
		return ClassInt
	}
	return ClassFloat
}

// Accepts reports whether op can produce a result of type t.
func (op ConvertOp) Accepts(t Type) bool {
	switch op {
	case ExtendSInt32, ExtendUInt32:
		return t == I64
	case WrapInt64:
		return t == I32
	case PromoteFloat32:
		return t == F64
	case DemoteFloat64:
		return t == F32
	}
	return op.IsValid() && op.Class().Accepts(t)
}

// ParseConvertOp looks an operator up by name.
func ParseConvertOp(s string) (ConvertOp, bool) {
	i, ok := lookupOp(convertNames[:], s)
	return ConvertOp(i), ok
}

// HostOp queries or changes the host environment.
type HostOp uint8

const (
	PageSize HostOp = iota
	MemorySize
	GrowMemory
	HasFeature
)

var hostNames = [...]string{
	PageSize:   "PageSize",
	MemorySize: "MemorySize",
	GrowMemory: "GrowMemory",
	HasFeature: "HasFeature",
}

func (op HostOp) String() string { return opName(hostNames[:], int(op)) }

// IsValid reports whether op is a member of the enumeration.
func (op HostOp) IsValid() bool { return int(op) < len(hostNames) }

// ParseHostOp looks an operator up by name.
func ParseHostOp(s string) (HostOp, bool) {
	i, ok := lookupOp(hostNames[:], s)
	return HostOp(i), ok
}

func opName(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return "unknown"
}

func lookupOp(names []string, s string) (int, bool) {
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
