package irfile

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

// variantFields lists the keys each expression form accepts.
var variantFields = map[string][]string{
	"nop":           {},
	"block":         {"type", "name", "list"},
	"if":            {"type", "cond", "then", "else"},
	"loop":          {"type", "out", "in", "body"},
	"label":         {"name"},
	"br":            {"type", "name", "cond", "value"},
	"switch":        {"type", "name", "value", "cases", "default"},
	"call":          {"type", "target", "operands"},
	"call_import":   {"type", "target", "operands"},
	"call_indirect": {"signature", "target", "operands"},
	"get_local":     {"type", "id"},
	"set_local":     {"type", "id", "value"},
	"load":          {"bytes", "signed", "float", "offset", "align", "ptr"},
	"store":         {"bytes", "float", "offset", "align", "ptr", "value"},
	"const":         {"type", "value"},
	"unary":         {"op", "type", "value"},
	"binary":        {"op", "type", "left", "right"},
	"compare":       {"op", "type", "left", "right"},
	"convert":       {"op", "type", "value"},
	"host":          {"op", "type", "feature", "operands"},
}

var caseFields = []string{"type", "value", "body", "fallthrough"}

// fields is the field mapping of one expression form, checked against the
// keys the form accepts.
type fields struct {
	l     *loader
	path  []string
	node  *yaml.Node
	byKey map[string]*yaml.Node
}

func (l *loader) fields(path []string, n *yaml.Node, allowed []string) (*fields, error) {
	f := &fields{l: l, path: path, node: n, byKey: make(map[string]*yaml.Node)}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return f, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, l.fail(errors.KindInvalidData, path, n.Line, "expected a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !contains(allowed, key.Value) {
			return nil, l.fail(errors.KindInvalidData, path, key.Line, "field %q not allowed here", key.Value)
		}
		if _, dup := f.byKey[key.Value]; dup {
			return nil, l.fail(errors.KindDuplicate, path, key.Line, "field %q repeated", key.Value)
		}
		f.byKey[key.Value] = n.Content[i+1]
	}
	return f, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (f *fields) fail(key string, n *yaml.Node, format string, args ...any) error {
	line := f.node.Line
	if n != nil {
		line = n.Line
	}
	return f.l.fail(errors.KindInvalidData, extend(f.path, key), line, format, args...)
}

func (f *fields) scalar(key string, required bool) (string, *yaml.Node, error) {
	n, ok := f.byKey[key]
	if !ok {
		if required {
			return "", nil, f.fail(key, nil, "field is required")
		}
		return "", nil, nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", n, f.fail(key, n, "expected a scalar")
	}
	return n.Value, n, nil
}

func (f *fields) name(key string, required bool) (ir.Name, error) {
	s, n, err := f.scalar(key, required)
	if err != nil {
		return "", err
	}
	if required && s == "" {
		return "", f.fail(key, n, "name must not be empty")
	}
	return ir.Name(s), nil
}

func (f *fields) valueType(key string, required bool) (ir.Type, error) {
	s, n, err := f.scalar(key, required)
	if err != nil || s == "" {
		return ir.None, err
	}
	t, ok := ir.ParseType(s)
	if !ok {
		return ir.None, f.fail(key, n, "unknown value type %q", s)
	}
	return t, nil
}

func (f *fields) uint32(key string, required bool) (uint32, error) {
	s, n, err := f.scalar(key, required)
	if err != nil || n == nil {
		return 0, err
	}
	v, perr := strconv.ParseUint(s, 0, 32)
	if perr != nil {
		return 0, f.fail(key, n, "expected an unsigned integer, got %q", s)
	}
	return uint32(v), nil
}

func (f *fields) boolean(key string) (bool, error) {
	s, n, err := f.scalar(key, false)
	if err != nil || n == nil {
		return false, err
	}
	v, perr := strconv.ParseBool(s)
	if perr != nil {
		return false, f.fail(key, n, "expected a boolean, got %q", s)
	}
	return v, nil
}

func (f *fields) literal(typeKey, valueKey string, def ir.Type) (ir.Literal, error) {
	t, err := f.valueType(typeKey, false)
	if err != nil {
		return ir.Literal{}, err
	}
	if t == ir.None {
		t = def
	}
	if t == ir.None {
		return ir.Literal{}, f.fail(typeKey, nil, "field is required")
	}
	s, n, err := f.scalar(valueKey, true)
	if err != nil {
		return ir.Literal{}, err
	}
	lit, perr := parseLiteral(t, s)
	if perr != nil {
		return ir.Literal{}, f.fail(valueKey, n, "invalid %s literal %q", t, s)
	}
	return lit, nil
}

func (f *fields) child(key string, required bool) (ir.Ref, error) {
	n, ok := f.byKey[key]
	if !ok {
		if required {
			return ir.NoRef, f.fail(key, nil, "field is required")
		}
		return ir.NoRef, nil
	}
	return f.l.expr(extend(f.path, key), n)
}

func (f *fields) list(key string) ([]ir.Ref, error) {
	n, ok := f.byKey[key]
	if !ok {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, f.fail(key, n, "expected a list of expressions")
	}
	refs := make([]ir.Ref, 0, len(n.Content))
	for i, elem := range n.Content {
		ref, err := f.l.expr(extend(f.path, key+"["+strconv.Itoa(i)+"]"), elem)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (f *fields) op(parse func(string) (int, bool)) (int, error) {
	s, n, err := f.scalar("op", true)
	if err != nil {
		return 0, err
	}
	v, ok := parse(s)
	if !ok {
		return 0, f.fail("op", n, "unknown operator %q", s)
	}
	return v, nil
}

// parser adapts a typed operator lookup to op.
func parser[T ~uint8](parse func(string) (T, bool)) func(string) (int, bool) {
	return func(s string) (int, bool) {
		v, ok := parse(s)
		return int(v), ok
	}
}

// expr decodes a single-key mapping naming an expression form.
func (l *loader) expr(path []string, n *yaml.Node) (ir.Ref, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return ir.NoRef, l.fail(errors.KindInvalidData, path, n.Line,
			"expression must be a mapping with exactly one form key")
	}
	form := n.Content[0].Value
	allowed, ok := variantFields[form]
	if !ok {
		return ir.NoRef, l.fail(errors.KindInvalidData, path, n.Content[0].Line, "unknown expression form %q", form)
	}
	f, err := l.fields(extend(path, form), n.Content[1], allowed)
	if err != nil {
		return ir.NoRef, err
	}
	return f.build(form)
}

func (f *fields) build(form string) (ir.Ref, error) {
	a := f.l.arena
	// compare reads type as its operand type; every other form as its result.
	ty, err := f.valueType("type", false)
	if err != nil {
		return ir.NoRef, err
	}

	switch form {
	case "nop":
		return a.NewNop(), nil

	case "block":
		var name ir.Name
		var list []ir.Ref
		if name, err = f.name("name", false); err != nil {
			return ir.NoRef, err
		}
		if list, err = f.list("list"); err != nil {
			return ir.NoRef, err
		}
		return a.NewBlock(ty, name, list...), nil

	case "if":
		var cond, ifTrue, ifFalse ir.Ref
		if cond, err = f.child("cond", true); err != nil {
			return ir.NoRef, err
		}
		if ifTrue, err = f.child("then", true); err != nil {
			return ir.NoRef, err
		}
		if ifFalse, err = f.child("else", false); err != nil {
			return ir.NoRef, err
		}
		return a.NewIf(ty, cond, ifTrue, ifFalse), nil

	case "loop":
		var out, in ir.Name
		var body ir.Ref
		if out, err = f.name("out", false); err != nil {
			return ir.NoRef, err
		}
		if in, err = f.name("in", false); err != nil {
			return ir.NoRef, err
		}
		if body, err = f.child("body", true); err != nil {
			return ir.NoRef, err
		}
		return a.NewLoop(ty, out, in, body), nil

	case "label":
		name, err := f.name("name", true)
		if err != nil {
			return ir.NoRef, err
		}
		return a.NewLabel(name), nil

	case "br":
		var name ir.Name
		var cond, value ir.Ref
		if name, err = f.name("name", true); err != nil {
			return ir.NoRef, err
		}
		if cond, err = f.child("cond", false); err != nil {
			return ir.NoRef, err
		}
		if value, err = f.child("value", false); err != nil {
			return ir.NoRef, err
		}
		return a.NewBreak(ty, name, cond, value), nil

	case "switch":
		return f.switchExpr(ty)

	case "call", "call_import":
		var target ir.Name
		var operands []ir.Ref
		if target, err = f.name("target", true); err != nil {
			return ir.NoRef, err
		}
		if operands, err = f.list("operands"); err != nil {
			return ir.NoRef, err
		}
		if form == "call" {
			return a.NewCall(ty, target, operands...), nil
		}
		return a.NewCallImport(ty, target, operands...), nil

	case "call_indirect":
		sig, n, err := f.scalar("signature", true)
		if err != nil {
			return ir.NoRef, err
		}
		ft, ok := f.l.module.FunctionTypes[ir.Name(sig)]
		if !ok {
			return ir.NoRef, f.l.fail(errors.KindNotFound, extend(f.path, "signature"), n.Line,
				"function type %q not found", sig)
		}
		var target ir.Ref
		var operands []ir.Ref
		if target, err = f.child("target", true); err != nil {
			return ir.NoRef, err
		}
		if operands, err = f.list("operands"); err != nil {
			return ir.NoRef, err
		}
		return a.NewCallIndirect(ft, target, operands...), nil

	case "get_local":
		id, err := f.name("id", true)
		if err != nil {
			return ir.NoRef, err
		}
		return a.NewGetLocal(ty, id), nil

	case "set_local":
		var id ir.Name
		var value ir.Ref
		if id, err = f.name("id", true); err != nil {
			return ir.NoRef, err
		}
		if value, err = f.child("value", true); err != nil {
			return ir.NoRef, err
		}
		return a.NewSetLocal(ty, id, value), nil

	case "load", "store":
		return f.memoryAccess(form)

	case "const":
		lit, err := f.literal("type", "value", ir.None)
		if err != nil {
			return ir.NoRef, err
		}
		return a.NewConst(lit), nil

	case "unary":
		op, err := f.op(parser(ir.ParseUnaryOp))
		if err != nil {
			return ir.NoRef, err
		}
		value, err := f.child("value", true)
		if err != nil {
			return ir.NoRef, err
		}
		return a.NewUnary(ir.UnaryOp(op), ty, value), nil

	case "binary", "compare":
		parse := parser(ir.ParseBinaryOp)
		if form == "compare" {
			parse = parser(ir.ParseRelationalOp)
		}
		op, err := f.op(parse)
		if err != nil {
			return ir.NoRef, err
		}
		left, err := f.child("left", true)
		if err != nil {
			return ir.NoRef, err
		}
		right, err := f.child("right", true)
		if err != nil {
			return ir.NoRef, err
		}
		if form == "compare" {
			return a.NewCompare(ir.RelationalOp(op), ty, left, right), nil
		}
		return a.NewBinary(ir.BinaryOp(op), ty, left, right), nil

	case "convert":
		op, err := f.op(parser(ir.ParseConvertOp))
		if err != nil {
			return ir.NoRef, err
		}
		value, err := f.child("value", true)
		if err != nil {
			return ir.NoRef, err
		}
		return a.NewConvert(ir.ConvertOp(op), ty, value), nil

	case "host":
		op, err := f.op(parser(ir.ParseHostOp))
		if err != nil {
			return ir.NoRef, err
		}
		if ir.HostOp(op) == ir.HasFeature {
			feature, err := f.name("feature", true)
			if err != nil {
				return ir.NoRef, err
			}
			return a.NewHasFeature(feature), nil
		}
		operands, err := f.list("operands")
		if err != nil {
			return ir.NoRef, err
		}
		return a.NewHost(ir.HostOp(op), ty, operands...), nil
	}

	return ir.NoRef, f.fail(form, nil, "unknown expression form")
}

func (f *fields) switchExpr(ty ir.Type) (ir.Ref, error) {
	name, err := f.name("name", true)
	if err != nil {
		return ir.NoRef, err
	}
	value, err := f.child("value", true)
	if err != nil {
		return ir.NoRef, err
	}

	var cases []ir.Case
	if n, ok := f.byKey["cases"]; ok {
		if n.Kind != yaml.SequenceNode {
			return ir.NoRef, f.fail("cases", n, "expected a list of cases")
		}
		for i, elem := range n.Content {
			cf, err := f.l.fields(extend(f.path, "cases["+strconv.Itoa(i)+"]"), elem, caseFields)
			if err != nil {
				return ir.NoRef, err
			}
			var c ir.Case
			if c.Value, err = cf.literal("type", "value", ir.I32); err != nil {
				return ir.NoRef, err
			}
			if c.Body, err = cf.child("body", false); err != nil {
				return ir.NoRef, err
			}
			if c.Fallthrough, err = cf.boolean("fallthrough"); err != nil {
				return ir.NoRef, err
			}
			cases = append(cases, c)
		}
	}

	def, err := f.child("default", false)
	if err != nil {
		return ir.NoRef, err
	}
	return f.l.arena.NewSwitch(ty, name, value, cases, def), nil
}

func (f *fields) memoryAccess(form string) (ir.Ref, error) {
	bytes, err := f.uint32("bytes", true)
	if err != nil {
		return ir.NoRef, err
	}
	switch bytes {
	case 1, 2, 4, 8:
	default:
		return ir.NoRef, f.fail("bytes", f.byKey["bytes"], "access width must be 1, 2, 4 or 8, got %d", bytes)
	}
	float, err := f.boolean("float")
	if err != nil {
		return ir.NoRef, err
	}
	offset, err := f.uint32("offset", false)
	if err != nil {
		return ir.NoRef, err
	}
	// Without an align key the access keeps its natural alignment.
	align, err := f.uint32("align", false)
	if err != nil {
		return ir.NoRef, err
	}
	if _, ok := f.byKey["align"]; !ok {
		align = bytes
	}
	ptr, err := f.child("ptr", true)
	if err != nil {
		return ir.NoRef, err
	}

	a := f.l.arena
	if form == "load" {
		signed, err := f.boolean("signed")
		if err != nil {
			return ir.NoRef, err
		}
		ref := a.NewLoad(bytes, signed, float, ptr)
		e := ir.As[ir.Load](a, ref)
		e.Offset, e.Align = offset, align
		return ref, nil
	}

	value, err := f.child("value", true)
	if err != nil {
		return ir.NoRef, err
	}
	ref := a.NewStore(bytes, float, ptr, value)
	e := ir.As[ir.Store](a, ref)
	e.Offset, e.Align = offset, align
	return ref, nil
}
