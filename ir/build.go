package ir

// Constructors allocate a node and fill its fields. They do not check that
// operators match their types; the printer reports such mismatches.

func (a *Arena) NewNop() Ref {
	ref, _ := Alloc[Nop](a)
	return ref
}

func (a *Arena) NewBlock(ty Type, name Name, list ...Ref) Ref {
	ref, e := Alloc[Block](a)
	e.Type = ty
	e.Name = name
	e.List = list
	return ref
}

// NewIf builds an if; pass NoRef as ifFalse for a one-armed if.
func (a *Arena) NewIf(ty Type, condition, ifTrue, ifFalse Ref) Ref {
	ref, e := Alloc[If](a)
	e.Type = ty
	e.Condition = condition
	e.IfTrue = ifTrue
	e.IfFalse = ifFalse
	return ref
}

func (a *Arena) NewLoop(ty Type, out, in Name, body Ref) Ref {
	ref, e := Alloc[Loop](a)
	e.Type = ty
	e.Out = out
	e.In = in
	e.Body = body
	return ref
}

func (a *Arena) NewLabel(name Name) Ref {
	ref, e := Alloc[Label](a)
	e.Name = name
	return ref
}

// NewBreak builds a branch; condition and value may be NoRef.
func (a *Arena) NewBreak(ty Type, name Name, condition, value Ref) Ref {
	ref, e := Alloc[Break](a)
	e.Type = ty
	e.Name = name
	e.Condition = condition
	e.Value = value
	return ref
}

func (a *Arena) NewSwitch(ty Type, name Name, value Ref, cases []Case, def Ref) Ref {
	ref, e := Alloc[Switch](a)
	e.Type = ty
	e.Name = name
	e.Value = value
	e.Cases = cases
	e.Default = def
	return ref
}

func (a *Arena) NewCall(ty Type, target Name, operands ...Ref) Ref {
	ref, e := Alloc[Call](a)
	e.Type = ty
	e.Target = target
	e.Operands = operands
	return ref
}

func (a *Arena) NewCallImport(ty Type, target Name, operands ...Ref) Ref {
	ref, e := Alloc[CallImport](a)
	e.Type = ty
	e.Target = target
	e.Operands = operands
	return ref
}

// NewCallIndirect builds an indirect call whose result type is that of ft.
func (a *Arena) NewCallIndirect(ft *FunctionType, target Ref, operands ...Ref) Ref {
	ref, e := Alloc[CallIndirect](a)
	if ft != nil {
		e.Type = ft.Result
	}
	e.FuncType = ft
	e.Target = target
	e.Operands = operands
	return ref
}

func (a *Arena) NewGetLocal(ty Type, id Name) Ref {
	ref, e := Alloc[GetLocal](a)
	e.Type = ty
	e.ID = id
	return ref
}

func (a *Arena) NewSetLocal(ty Type, id Name, value Ref) Ref {
	ref, e := Alloc[SetLocal](a)
	e.Type = ty
	e.ID = id
	e.Value = value
	return ref
}

// NewLoad builds a zero-offset load whose result type is derived from the
// access width and float flag.
func (a *Arena) NewLoad(bytes uint32, signed, float bool, ptr Ref) Ref {
	ref, e := Alloc[Load](a)
	e.Type = TypeFromSizeAndKind(bytes, float)
	e.Bytes = bytes
	e.Align = bytes
	e.Signed = signed
	e.Float = float
	e.Ptr = ptr
	return ref
}

// NewStore builds a zero-offset store. Its result type is that of the stored
// value's slot.
func (a *Arena) NewStore(bytes uint32, float bool, ptr, value Ref) Ref {
	ref, e := Alloc[Store](a)
	e.Type = TypeFromSizeAndKind(bytes, float)
	e.Bytes = bytes
	e.Align = bytes
	e.Float = float
	e.Ptr = ptr
	e.Value = value
	return ref
}

func (a *Arena) NewConst(value Literal) Ref {
	ref, e := Alloc[Const](a)
	e.Type = value.Type
	e.Value = value
	return ref
}

func (a *Arena) NewUnary(op UnaryOp, ty Type, value Ref) Ref {
	ref, e := Alloc[Unary](a)
	e.Type = ty
	e.Op = op
	e.Value = value
	return ref
}

func (a *Arena) NewBinary(op BinaryOp, ty Type, left, right Ref) Ref {
	ref, e := Alloc[Binary](a)
	e.Type = ty
	e.Op = op
	e.Left = left
	e.Right = right
	return ref
}

// NewCompare builds a comparison of two inputType operands producing i32.
func (a *Arena) NewCompare(op RelationalOp, inputType Type, left, right Ref) Ref {
	ref, e := Alloc[Compare](a)
	e.Type = I32
	e.Op = op
	e.InputType = inputType
	e.Left = left
	e.Right = right
	return ref
}

func (a *Arena) NewConvert(op ConvertOp, ty Type, value Ref) Ref {
	ref, e := Alloc[Convert](a)
	e.Type = ty
	e.Op = op
	e.Value = value
	return ref
}

func (a *Arena) NewHost(op HostOp, ty Type, operands ...Ref) Ref {
	ref, e := Alloc[Host](a)
	e.Type = ty
	e.Op = op
	e.Operands = operands
	return ref
}

// NewHasFeature builds a HasFeature host query for the named feature.
func (a *Arena) NewHasFeature(feature Name) Ref {
	ref, e := Alloc[Host](a)
	e.Type = I32
	e.Op = HasFeature
	e.Feature = feature
	return ref
}
