package ir

// Kind identifies an expression variant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNop
	KindBlock
	KindIf
	KindLoop
	KindLabel
	KindBreak
	KindSwitch
	KindCall
	KindCallImport
	KindCallIndirect
	KindGetLocal
	KindSetLocal
	KindLoad
	KindStore
	KindConst
	KindUnary
	KindBinary
	KindCompare
	KindConvert
	KindHost

	numKinds
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindNop:          "nop",
	KindBlock:        "block",
	KindIf:           "if",
	KindLoop:         "loop",
	KindLabel:        "label",
	KindBreak:        "break",
	KindSwitch:       "switch",
	KindCall:         "call",
	KindCallImport:   "call_import",
	KindCallIndirect: "call_indirect",
	KindGetLocal:     "get_local",
	KindSetLocal:     "set_local",
	KindLoad:         "load",
	KindStore:        "store",
	KindConst:        "const",
	KindUnary:        "unary",
	KindBinary:       "binary",
	KindCompare:      "compare",
	KindConvert:      "convert",
	KindHost:         "host",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Expression is an instruction node. The set of implementations is closed:
// only the variant types in this package satisfy it.
type Expression interface {
	Kind() Kind
	ResultType() Type
	expression()
}

// Node holds the state shared by every variant: the type of the value the
// expression produces, which need not be the type of its operands.
type Node struct {
	Type Type
}

// ResultType returns the output type of the expression.
func (n *Node) ResultType() Type { return n.Type }

func (*Node) expression() {}

type Nop struct {
	Node
}

// Block is a sequence of expressions, optionally named as a break target.
type Block struct {
	Node
	Name Name
	List []Ref
}

// If evaluates IfTrue or IfFalse depending on Condition. IfFalse is optional.
type If struct {
	Node
	Condition Ref
	IfTrue    Ref
	IfFalse   Ref
}

// Loop repeats Body. Out names the exit label and In the continue label.
// Both are optional, but In is only meaningful alongside Out: labels are
// written positionally, exit first.
type Loop struct {
	Node
	Out  Name
	In   Name
	Body Ref
}

type Label struct {
	Node
	Name Name
}

// Break transfers control to the named label. Condition and Value are optional.
type Break struct {
	Node
	Name      Name
	Condition Ref
	Value     Ref
}

// Case is one arm of a Switch.
type Case struct {
	Value       Literal
	Body        Ref
	Fallthrough bool
}

type Switch struct {
	Node
	Name    Name
	Value   Ref
	Cases   []Case
	Default Ref
}

// Call invokes a function of the module by name.
type Call struct {
	Node
	Target   Name
	Operands []Ref
}

// CallImport invokes an imported function.
type CallImport struct {
	Call
}

// CallIndirect invokes the function whose table index Target computes.
type CallIndirect struct {
	Node
	FuncType *FunctionType
	Target   Ref
	Operands []Ref
}

type GetLocal struct {
	Node
	ID Name
}

type SetLocal struct {
	Node
	ID    Name
	Value Ref
}

// Load reads Bytes bytes at Ptr+Offset. Signed applies to 1- and 2-byte
// accesses, which are extended to i32.
type Load struct {
	Node
	Bytes  uint32
	Signed bool
	Float  bool
	Offset uint32
	Align  uint32
	Ptr    Ref
}

type Store struct {
	Node
	Bytes  uint32
	Float  bool
	Offset uint32
	Align  uint32
	Ptr    Ref
	Value  Ref
}

type Const struct {
	Node
	Value Literal
}

type Unary struct {
	Node
	Op    UnaryOp
	Value Ref
}

type Binary struct {
	Node
	Op    BinaryOp
	Left  Ref
	Right Ref
}

// Compare applies a relational operator to two operands of InputType. The
// result type is always i32.
type Compare struct {
	Node
	Op        RelationalOp
	InputType Type
	Left      Ref
	Right     Ref
}

type Convert struct {
	Node
	Op    ConvertOp
	Value Ref
}

// Host performs an environment operation. Feature names the queried feature
// for HasFeature.
type Host struct {
	Node
	Op       HostOp
	Feature  Name
	Operands []Ref
}

func (*Nop) Kind() Kind          { return KindNop }
func (*Block) Kind() Kind        { return KindBlock }
func (*If) Kind() Kind           { return KindIf }
func (*Loop) Kind() Kind         { return KindLoop }
func (*Label) Kind() Kind        { return KindLabel }
func (*Break) Kind() Kind        { return KindBreak }
func (*Switch) Kind() Kind       { return KindSwitch }
func (*Call) Kind() Kind         { return KindCall }
func (*CallImport) Kind() Kind   { return KindCallImport }
func (*CallIndirect) Kind() Kind { return KindCallIndirect }
func (*GetLocal) Kind() Kind     { return KindGetLocal }
func (*SetLocal) Kind() Kind     { return KindSetLocal }
func (*Load) Kind() Kind         { return KindLoad }
func (*Store) Kind() Kind        { return KindStore }
func (*Const) Kind() Kind        { return KindConst }
func (*Unary) Kind() Kind        { return KindUnary }
func (*Binary) Kind() Kind       { return KindBinary }
func (*Compare) Kind() Kind      { return KindCompare }
func (*Convert) Kind() Kind      { return KindConvert }
func (*Host) Kind() Kind         { return KindHost }
