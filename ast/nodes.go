// Package ast holds the syntax tree produced by the parser. Nodes are
// passive records: resolution and validation happen in the compiler, and
// generic traversal goes through Visit.
package ast

// Node is implemented by every syntactic construct. The set of
// implementations is closed; child enumeration always follows declaration
// order, with trailing annotations visited last.
type Node interface {
	// Pos reports the 1-based source line the construct was declared on.
	Pos() int

	forEachChild(fn func(Node))
}

// Program is the parse root for a single source file: its headers followed
// by its definitions, in the order they were written.
type Program struct {
	Headers     []Header
	Definitions []Definition
}

func (p *Program) Pos() int { return 1 }

func (p *Program) forEachChild(fn func(Node)) {
	for _, h := range p.Headers {
		fn(h)
	}
	for _, d := range p.Definitions {
		fn(d)
	}
}

// Header is either an Include or a Namespace.
type Header interface {
	Node
	header()
}

// Include pulls another file's definitions into scope under a local module
// name. Name is empty when the file was included without a rename; the
// compiler then derives it from the path's basename.
type Include struct {
	Path string
	Name string
	Line int
}

func (i *Include) header()  {}
func (i *Include) Pos() int { return i.Line }

func (i *Include) forEachChild(fn func(Node)) {}

// Namespace picks the package name generated code should use for a given
// target-language scope ("*" applies to every scope without its own entry).
type Namespace struct {
	Scope string
	Name  string
	Line  int
}

func (n *Namespace) header()  {}
func (n *Namespace) Pos() int { return n.Line }

func (n *Namespace) forEachChild(fn func(Node)) {}

// Definition is any named top-level construct: a constant, enum,
// struct/union/exception, service, or typedef.
type Definition interface {
	Node
	Info() DefinitionInfo
}

// DefinitionInfo is the uniform descriptor every definition exposes for
// lookup and diagnostics.
type DefinitionInfo struct {
	Name string
	Line int
}

// Constant is a named constant declaration.
type Constant struct {
	Name  string
	Type  Type
	Value ConstantValue
	Line  int
}

func (c *Constant) Pos() int             { return c.Line }
func (c *Constant) Info() DefinitionInfo { return DefinitionInfo{Name: c.Name, Line: c.Line} }

func (c *Constant) forEachChild(fn func(Node)) {
	fn(c.Type)
	fn(c.Value)
}

// Typedef declares an alias for another type.
type Typedef struct {
	Name        string
	Type        Type
	Annotations Annotations
	Line        int
}

func (t *Typedef) Pos() int             { return t.Line }
func (t *Typedef) Info() DefinitionInfo { return DefinitionInfo{Name: t.Name, Line: t.Line} }

func (t *Typedef) forEachChild(fn func(Node)) {
	fn(t.Type)
	for _, a := range t.Annotations {
		fn(a)
	}
}

// Enum is a named set of integer items.
type Enum struct {
	Name        string
	Items       []*EnumItem
	Annotations Annotations
	Line        int
}

func (e *Enum) Pos() int             { return e.Line }
func (e *Enum) Info() DefinitionInfo { return DefinitionInfo{Name: e.Name, Line: e.Line} }

func (e *Enum) forEachChild(fn func(Node)) {
	for _, i := range e.Items {
		fn(i)
	}
	for _, a := range e.Annotations {
		fn(a)
	}
}

// EnumItem is a single member of an Enum. Value is nil when the source did
// not spell one out; the effective value is then previous item + 1,
// starting at zero.
type EnumItem struct {
	Name        string
	Value       *int
	Annotations Annotations
	Line        int
}

func (i *EnumItem) Pos() int { return i.Line }

func (i *EnumItem) forEachChild(fn func(Node)) {
	for _, a := range i.Annotations {
		fn(a)
	}
}

// StructureType discriminates the three brace-bodied field containers.
type StructureType int

const (
	StructType StructureType = iota
	UnionType
	ExceptionType
)

func (s StructureType) String() string {
	switch s {
	case UnionType:
		return "union"
	case ExceptionType:
		return "exception"
	default:
		return "struct"
	}
}

// Struct is a struct, union, or exception declaration, discriminated by
// Type.
type Struct struct {
	Name        string
	Type        StructureType
	Fields      []*Field
	Annotations Annotations
	Line        int
}

func (s *Struct) Pos() int             { return s.Line }
func (s *Struct) Info() DefinitionInfo { return DefinitionInfo{Name: s.Name, Line: s.Line} }

func (s *Struct) forEachChild(fn func(Node)) {
	for _, f := range s.Fields {
		fn(f)
	}
	for _, a := range s.Annotations {
		fn(a)
	}
}

// Requiredness is the presence marker on a field.
type Requiredness int

const (
	Unspecified Requiredness = iota
	Required
	Optional
)

func (r Requiredness) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return "unspecified"
	}
}

// Field is a member of a struct body, a function parameter, or a function
// exception. Fields the source declared without an ID carry implicit
// negative IDs assigned in declaration order.
type Field struct {
	ID           int
	Name         string
	Type         Type
	Requiredness Requiredness
	Default      ConstantValue
	Annotations  Annotations
	Line         int
}

func (f *Field) Pos() int { return f.Line }

func (f *Field) forEachChild(fn func(Node)) {
	fn(f.Type)
	if f.Default != nil {
		fn(f.Default)
	}
	for _, a := range f.Annotations {
		fn(a)
	}
}

// Service is a named set of functions, optionally inheriting from a parent
// service.
type Service struct {
	Name        string
	Parent      *ServiceReference
	Functions   []*Function
	Annotations Annotations
	Line        int
}

func (s *Service) Pos() int             { return s.Line }
func (s *Service) Info() DefinitionInfo { return DefinitionInfo{Name: s.Name, Line: s.Line} }

func (s *Service) forEachChild(fn func(Node)) {
	if s.Parent != nil {
		fn(s.Parent)
	}
	for _, f := range s.Functions {
		fn(f)
	}
	for _, a := range s.Annotations {
		fn(a)
	}
}

// ServiceReference names the parent in a service's extends clause. The
// compiler rewrites Target to the resolved service.
type ServiceReference struct {
	Name   string
	Line   int
	Target *Service
}

func (r *ServiceReference) Pos() int { return r.Line }

func (r *ServiceReference) forEachChild(fn func(Node)) {}

// Function is a single operation on a Service. ReturnType is nil for void
// functions.
type Function struct {
	Name        string
	OneWay      bool
	ReturnType  Type
	Parameters  []*Field
	Exceptions  []*Field
	Annotations Annotations
	Line        int
}

func (f *Function) Pos() int { return f.Line }

func (f *Function) forEachChild(fn func(Node)) {
	if f.ReturnType != nil {
		fn(f.ReturnType)
	}
	for _, p := range f.Parameters {
		fn(p)
	}
	for _, e := range f.Exceptions {
		fn(e)
	}
	for _, a := range f.Annotations {
		fn(a)
	}
}

// Annotation is a key/value pair steering generated code without affecting
// wire semantics.
type Annotation struct {
	Name  string
	Value string
	Line  int
}

func (a *Annotation) Pos() int { return a.Line }

func (a *Annotation) forEachChild(fn func(Node)) {}

// Annotations is an ordered annotation list.
type Annotations []*Annotation

// ByName returns the first annotation with the given name, or nil.
func (a Annotations) ByName(name string) *Annotation {
	for _, an := range a {
		if an.Name == name {
			return an
		}
	}
	return nil
}
