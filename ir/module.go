package ir

import (
	"slices"
	"sort"

	"github.com/wippyai/wasm-ir/errors"
)

// DefaultMemory is the memory size, in bytes, declared by a module.
const DefaultMemory = 16 * 1024 * 1024

// FunctionType is a named signature.
type FunctionType struct {
	Name   Name
	Result Type
	Params []Type
}

// Equal compares name, result and parameters. Two signatures that differ
// only in name are not equal; use SameSignature for structural comparison.
func (ft *FunctionType) Equal(other *FunctionType) bool {
	return ft.Name == other.Name && ft.SameSignature(other)
}

// SameSignature compares result and parameter types, ignoring names.
func (ft *FunctionType) SameSignature(other *FunctionType) bool {
	return ft.Result == other.Result && slices.Equal(ft.Params, other.Params)
}

// Function is a function definition. Body is owned by the arena the
// function was built in.
type Function struct {
	Name   Name
	Result Type
	Params []NameType
	Locals []NameType
	Body   Ref
}

// Import binds a name to a function provided by the host.
type Import struct {
	Name   Name
	Module string
	Base   string
	Type   *FunctionType
}

// Export publishes an internal function under an external name.
type Export struct {
	Name  string
	Value Name
}

// Table lists the functions reachable through call_indirect, in index order.
type Table struct {
	Names []Name
}

// Module aggregates the entities of one compilation unit.
type Module struct {
	Memory        uint32
	FunctionTypes map[Name]*FunctionType
	Imports       map[Name]*Import
	Exports       []Export
	Table         Table
	Functions     []*Function
}

// NewModule creates an empty module declaring DefaultMemory.
func NewModule() *Module {
	return &Module{
		Memory:        DefaultMemory,
		FunctionTypes: make(map[Name]*FunctionType),
		Imports:       make(map[Name]*Import),
	}
}

// AddFunctionType registers ft under its name.
func (m *Module) AddFunctionType(ft *FunctionType) error {
	if _, ok := m.FunctionTypes[ft.Name]; ok {
		return errors.Duplicate(errors.PhaseBuild, "function type", string(ft.Name))
	}
	m.FunctionTypes[ft.Name] = ft
	return nil
}

// AddImport registers imp under its name.
func (m *Module) AddImport(imp *Import) error {
	if _, ok := m.Imports[imp.Name]; ok {
		return errors.Duplicate(errors.PhaseBuild, "import", string(imp.Name))
	}
	m.Imports[imp.Name] = imp
	return nil
}

// AddExport appends an export.
func (m *Module) AddExport(exp Export) {
	m.Exports = append(m.Exports, exp)
}

// AddFunction appends fn, rejecting a second function of the same name.
func (m *Module) AddFunction(fn *Function) error {
	if m.GetFunction(fn.Name) != nil {
		return errors.Duplicate(errors.PhaseBuild, "function", string(fn.Name))
	}
	m.Functions = append(m.Functions, fn)
	return nil
}

// GetFunction returns the function named name, or nil.
func (m *Module) GetFunction(name Name) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// SortedFunctionTypes returns the function types ordered by name.
func (m *Module) SortedFunctionTypes() []*FunctionType {
	out := make([]*FunctionType, 0, len(m.FunctionTypes))
	for _, ft := range m.FunctionTypes {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SortedImports returns the imports ordered by name.
func (m *Module) SortedImports() []*Import {
	out := make([]*Import, 0, len(m.Imports))
	for _, imp := range m.Imports {
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
