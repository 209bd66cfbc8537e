// Package irfile builds ir modules from YAML descriptions. It is the
// upstream producer used by the irprint command and by tests that want a
// readable fixture instead of constructor calls.
package irfile

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/wasm-ir/errors"
	"github.com/wippyai/wasm-ir/ir"
)

type document struct {
	Memory    *uint32        `yaml:"memory"`
	Types     []typeDecl     `yaml:"types"`
	Imports   []importDecl   `yaml:"imports"`
	Exports   []exportDecl   `yaml:"exports"`
	Table     []string       `yaml:"table"`
	Functions []functionDecl `yaml:"functions"`
}

type typeDecl struct {
	Name   string   `yaml:"name"`
	Result string   `yaml:"result"`
	Params []string `yaml:"params"`
}

type importDecl struct {
	Name   string `yaml:"name"`
	Module string `yaml:"module"`
	Base   string `yaml:"base"`
	Type   string `yaml:"type"`
}

type exportDecl struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type nameType struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type functionDecl struct {
	Name   string     `yaml:"name"`
	Result string     `yaml:"result"`
	Params []nameType `yaml:"params"`
	Locals []nameType `yaml:"locals"`
	Body   yaml.Node  `yaml:"body"`
}

// LoadFile reads a module description from path. Expressions are allocated
// in a.
func LoadFile(path string, a *ir.Arena) (*ir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return LoadBytes(data, a)
}

// Load reads a module description from r.
func Load(r io.Reader, a *ir.Arena) (*ir.Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Load("read input", err)
	}
	return LoadBytes(data, a)
}

// LoadBytes parses a module description. Unknown fields are rejected.
func LoadBytes(data []byte, a *ir.Arena) (*ir.Module, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.Load("empty document", nil)
		}
		return nil, errors.Load("parse YAML", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Load("parse YAML", err)
	}

	l := &loader{arena: a, module: ir.NewModule(), lines: sectionLines(&root)}
	if err := l.build(&doc); err != nil {
		return nil, err
	}
	return l.module, nil
}

type loader struct {
	arena  *ir.Arena
	module *ir.Module
	lines  map[string][]int
}

// sectionLines records the line of every element of each top-level
// sequence, so errors in typed declarations can still point at the source.
func sectionLines(root *yaml.Node) map[string][]int {
	lines := make(map[string][]int)
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return lines
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return lines
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		if val.Kind != yaml.SequenceNode {
			continue
		}
		for _, elem := range val.Content {
			lines[key.Value] = append(lines[key.Value], elem.Line)
		}
	}
	return lines
}

func (l *loader) line(section string, i int) int {
	if ls := l.lines[section]; i < len(ls) {
		return ls[i]
	}
	return 0
}

func (l *loader) fail(kind errors.Kind, path []string, line int, format string, args ...any) *errors.Error {
	return errors.New(errors.PhaseLoad, kind).Path(path...).Line(line).Detail(format, args...).Build()
}

func (l *loader) build(doc *document) error {
	if doc.Memory != nil {
		l.module.Memory = *doc.Memory
	}

	for i, td := range doc.Types {
		path := []string{fmt.Sprintf("types[%d]", i)}
		line := l.line("types", i)
		if td.Name == "" {
			return l.fail(errors.KindInvalidData, path, line, "name is required")
		}
		ft := &ir.FunctionType{Name: ir.Name(td.Name)}
		var err error
		if ft.Result, err = l.valueType(td.Result, path, line); err != nil {
			return err
		}
		for _, p := range td.Params {
			t, err := l.valueType(p, path, line)
			if err != nil {
				return err
			}
			ft.Params = append(ft.Params, t)
		}
		if err := l.module.AddFunctionType(ft); err != nil {
			return l.fail(errors.KindDuplicate, path, line, "function type %q already defined", td.Name)
		}
	}

	for i, id := range doc.Imports {
		path := []string{fmt.Sprintf("imports[%d]", i)}
		line := l.line("imports", i)
		if id.Name == "" {
			return l.fail(errors.KindInvalidData, path, line, "name is required")
		}
		ft, err := l.functionType(id.Type, path, line)
		if err != nil {
			return err
		}
		imp := &ir.Import{Name: ir.Name(id.Name), Module: id.Module, Base: id.Base, Type: ft}
		if err := l.module.AddImport(imp); err != nil {
			return l.fail(errors.KindDuplicate, path, line, "import %q already defined", id.Name)
		}
	}

	for i, ed := range doc.Exports {
		if ed.Name == "" || ed.Value == "" {
			return l.fail(errors.KindInvalidData, []string{fmt.Sprintf("exports[%d]", i)},
				l.line("exports", i), "name and value are required")
		}
		l.module.AddExport(ir.Export{Name: ed.Name, Value: ir.Name(ed.Value)})
	}

	for _, n := range doc.Table {
		l.module.Table.Names = append(l.module.Table.Names, ir.Name(n))
	}

	for i := range doc.Functions {
		fn, err := l.function(&doc.Functions[i], i)
		if err != nil {
			return err
		}
		if err := l.module.AddFunction(fn); err != nil {
			return l.fail(errors.KindDuplicate, []string{fmt.Sprintf("functions[%d]", i)},
				l.line("functions", i), "function %q already defined", fn.Name)
		}
	}
	return nil
}

func (l *loader) function(fd *functionDecl, i int) (*ir.Function, error) {
	path := []string{fmt.Sprintf("functions[%d]", i)}
	line := l.line("functions", i)
	if fd.Name == "" {
		return nil, l.fail(errors.KindInvalidData, path, line, "name is required")
	}

	fn := &ir.Function{Name: ir.Name(fd.Name)}
	var err error
	if fn.Result, err = l.valueType(fd.Result, path, line); err != nil {
		return nil, err
	}
	if fn.Params, err = l.nameTypes(fd.Params, path, line); err != nil {
		return nil, err
	}
	if fn.Locals, err = l.nameTypes(fd.Locals, path, line); err != nil {
		return nil, err
	}
	if !fd.Body.IsZero() {
		if fn.Body, err = l.expr(extend(path, "body"), &fd.Body); err != nil {
			return nil, err
		}
	}
	return fn, nil
}

func (l *loader) nameTypes(decls []nameType, path []string, line int) ([]ir.NameType, error) {
	var out []ir.NameType
	for _, d := range decls {
		if d.Name == "" {
			return nil, l.fail(errors.KindInvalidData, path, line, "parameter or local without a name")
		}
		t, err := l.valueType(d.Type, path, line)
		if err != nil {
			return nil, err
		}
		if t == ir.None {
			return nil, l.fail(errors.KindInvalidData, path, line, "%s has no type", d.Name)
		}
		out = append(out, ir.NameType{Name: ir.Name(d.Name), Type: t})
	}
	return out, nil
}

// valueType parses a type name; the empty string means none.
func (l *loader) valueType(s string, path []string, line int) (ir.Type, error) {
	if s == "" {
		return ir.None, nil
	}
	t, ok := ir.ParseType(s)
	if !ok {
		return ir.None, l.fail(errors.KindInvalidData, path, line, "unknown value type %q", s)
	}
	return t, nil
}

func (l *loader) functionType(name string, path []string, line int) (*ir.FunctionType, error) {
	ft, ok := l.module.FunctionTypes[ir.Name(name)]
	if !ok {
		return nil, l.fail(errors.KindNotFound, path, line, "function type %q not found", name)
	}
	return ft, nil
}

func extend(path []string, elem string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}

// parseLiteral reads a scalar as a literal of type t. Integers accept any
// Go integer prefix; floats also accept nan and signed infinity.
func parseLiteral(t ir.Type, s string) (ir.Literal, error) {
	switch t {
	case ir.I32:
		v, err := strconv.ParseInt(s, 0, 32)
		return ir.Int32(int32(v)), err
	case ir.I64:
		v, err := strconv.ParseInt(s, 0, 64)
		return ir.Int64(v), err
	case ir.F32:
		v, err := strconv.ParseFloat(s, 32)
		return ir.Float32(float32(v)), err
	case ir.F64:
		v, err := strconv.ParseFloat(s, 64)
		return ir.Float64(v), err
	}
	return ir.Literal{}, fmt.Errorf("no literal of type %s", t)
}

