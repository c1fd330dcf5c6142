package idl

import (
	"errors"
	"fmt"

	"github.com/thriftkit/idl/ast"
)

/*
	Symbol tables are built in a single linear pass over a program's
	headers and definitions. Include aliases share the name table with
	definitions, so an alias colliding with anything else surfaces as a
	duplicate definition. Reference resolution runs afterwards, once every
	name is registered, so forward references within a file need no special
	handling.
*/

type symbolBuilder struct {
	m       *Module
	strict  bool
	warn    func(string)
	defined map[string]int
	errs    []error
}

func buildSymbols(m *Module, prog *ast.Program, includes []*IncludedModule, strict bool, warn func(string)) error {
	b := &symbolBuilder{
		m:       m,
		strict:  strict,
		warn:    warn,
		defined: make(map[string]int),
	}

	for _, inc := range includes {
		if !b.register(inc.Name, inc.Line) {
			continue
		}
		m.Includes[inc.Name] = inc
		m.includeOrder = append(m.includeOrder, inc.Name)
	}

	for _, def := range prog.Definitions {
		b.registerDefinition(def)
	}

	return errors.Join(b.errs...)
}

// register claims a name in the module-wide table. In strict mode a clash
// is an error; otherwise the first registration wins and the duplicate is
// reported as a warning and skipped.
func (b *symbolBuilder) register(name string, line int) bool {
	prev, ok := b.defined[name]
	if !ok {
		b.defined[name] = line
		return true
	}
	err := &DuplicateDefinitionError{
		Name:     name,
		Line:     line,
		PrevLine: prev,
		Module:   b.m.SourcePath,
	}
	if b.strict {
		b.errs = append(b.errs, err)
	} else {
		b.warn(err.Error())
	}
	return false
}

func (b *symbolBuilder) registerDefinition(def ast.Definition) {
	info := def.Info()
	if !b.register(info.Name, info.Line) {
		return
	}

	switch d := def.(type) {
	case *ast.Constant:
		b.m.Constants[d.Name] = &ConstantSpec{
			Name:   d.Name,
			Line:   d.Line,
			Type:   d.Type,
			Value:  d.Value,
			Module: b.m,
		}
		b.m.constantOrder = append(b.m.constantOrder, d.Name)
	case *ast.Enum:
		b.checkEnumItems(d)
		b.registerType(def, info)
	case *ast.Struct, *ast.Typedef:
		b.registerType(def, info)
	case *ast.Service:
		b.m.Services[d.Name] = &ServiceSpec{
			Name:   d.Name,
			Line:   d.Line,
			Def:    d,
			Module: b.m,
		}
		b.m.serviceOrder = append(b.m.serviceOrder, d.Name)
	default:
		b.errs = append(b.errs, fmt.Errorf("BUG: unknown definition kind %T", def))
	}
}

// Typedefs, enums and structures all land in the Types table: from another
// file's perspective they are all nameable types.
func (b *symbolBuilder) registerType(def ast.Definition, info ast.DefinitionInfo) {
	b.m.Types[info.Name] = &TypeSpec{
		Name:   info.Name,
		Line:   info.Line,
		Def:    def,
		Module: b.m,
	}
	b.m.typeOrder = append(b.m.typeOrder, info.Name)
}

func (b *symbolBuilder) checkEnumItems(e *ast.Enum) {
	seen := make(map[string]int)
	for _, item := range e.Items {
		prev, ok := seen[item.Name]
		if !ok {
			seen[item.Name] = item.Line
			continue
		}
		err := &DuplicateDefinitionError{
			Name:     e.Name + "." + item.Name,
			Line:     item.Line,
			PrevLine: prev,
			Module:   b.m.SourcePath,
		}
		if b.strict {
			b.errs = append(b.errs, err)
		} else {
			b.warn(err.Error())
		}
	}
}
