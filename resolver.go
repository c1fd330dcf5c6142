package idl

import (
	"errors"
	"strings"

	"github.com/thriftkit/idl/ast"
)

/*
	Resolution is the link half of a build-then-link pass: every name is
	already registered, so references are rewritten in place to their
	targets. Bare names resolve against the local module only; reaching
	into an included module requires the include's local name as an
	explicit qualifier. The resolver is an ast.Visitor, so it reaches
	references wherever they appear: inside container types, field
	defaults, constant values, and service extends clauses.
*/

type resolver struct {
	m    *Module
	errs []error
}

func resolveReferences(m *Module, prog *ast.Program) error {
	r := &resolver{m: m}
	ast.Visit(r, prog)
	return errors.Join(r.errs...)
}

func (r *resolver) Visit(w ast.Walker, n ast.Node) ast.Visitor {
	switch n := n.(type) {
	case *ast.TypeReference:
		r.resolveType(n)
	case *ast.ConstantReference:
		r.resolveConstant(n)
	case *ast.ServiceReference:
		r.resolveServiceParent(w, n)
	}
	return r
}

func (r *resolver) unresolved(name string, line int) {
	r.errs = append(r.errs, &UnresolvedReferenceError{
		Name:   name,
		Line:   line,
		Module: r.m.SourcePath,
	})
}

func (r *resolver) resolveType(t *ast.TypeReference) {
	comps := strings.Split(t.Name, ".")
	switch len(comps) {
	case 1:
		if spec, ok := r.m.Types[comps[0]]; ok {
			t.Target = spec.Def
			return
		}
	case 2:
		if inc, ok := r.m.Includes[comps[0]]; ok {
			if spec, ok := inc.Module.Types[comps[1]]; ok {
				t.Target = spec.Def
				return
			}
		}
	}
	r.unresolved(t.Name, t.Line)
}

func (r *resolver) resolveConstant(c *ast.ConstantReference) {
	comps := strings.Split(c.Name, ".")
	switch len(comps) {
	case 1:
		if spec, ok := r.m.Constants[comps[0]]; ok {
			c.Target = spec.Value
			return
		}
	case 2:
		// "Enum.Item" before "alias.constant"; registration rejects an
		// include alias sharing a local type's name, so at most one can
		// match.
		if v, ok := r.enumItem(r.m, comps[0], comps[1], c.Line); ok {
			c.Target = v
			return
		}
		if inc, ok := r.m.Includes[comps[0]]; ok {
			if spec, ok := inc.Module.Constants[comps[1]]; ok {
				c.Target = spec.Value
				return
			}
		}
	case 3:
		if inc, ok := r.m.Includes[comps[0]]; ok {
			if v, ok := r.enumItem(inc.Module, comps[1], comps[2], c.Line); ok {
				c.Target = v
				return
			}
		}
	}
	r.unresolved(c.Name, c.Line)
}

// enumItem resolves "Enum.Item" within one module to the item's integer
// value, not the enum type. Items without explicit values count up from
// the previous item, starting at zero.
func (r *resolver) enumItem(m *Module, enumName, itemName string, line int) (ast.ConstantValue, bool) {
	spec, ok := m.Types[enumName]
	if !ok {
		return nil, false
	}
	e, ok := spec.Def.(*ast.Enum)
	if !ok {
		return nil, false
	}
	next := 0
	for _, item := range e.Items {
		value := next
		if item.Value != nil {
			value = *item.Value
		}
		next = value + 1
		if item.Name == itemName {
			return &ast.ConstantInt{Value: int64(value), Line: line}, true
		}
	}
	return nil, false
}

func (r *resolver) resolveServiceParent(w ast.Walker, ref *ast.ServiceReference) {
	comps := strings.Split(ref.Name, ".")
	var spec *ServiceSpec
	switch len(comps) {
	case 1:
		spec = r.m.Services[comps[0]]
	case 2:
		if inc, ok := r.m.Includes[comps[0]]; ok {
			spec = inc.Module.Services[comps[1]]
		}
	}
	if spec == nil {
		r.unresolved(ref.Name, ref.Line)
		return
	}
	ref.Target = spec.Def

	// The extends clause is a direct child of its service, so the walker's
	// parent is the owning declaration.
	owner, ok := w.Parent().(*ast.Service)
	if !ok {
		return
	}
	if ownerSpec, ok := r.m.Services[owner.Name]; ok && ownerSpec.Def == owner {
		ownerSpec.Parent = spec
	}
}
