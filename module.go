package idl

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"

	"github.com/thriftkit/idl/ast"
)

// Module is the fully compiled, cross-referenced representation of one
// source file. All name maps have unique keys; the *Names methods iterate
// them in declaration order.
type Module struct {
	Name       string
	SourcePath string
	Includes   map[string]*IncludedModule
	Constants  map[string]*ConstantSpec
	Types      map[string]*TypeSpec
	Services   map[string]*ServiceSpec
	Raw        []byte

	// Digest is the hex blake3 hash of Raw, stable input identity for
	// downstream codegen caches.
	Digest string

	includeOrder  []string
	constantOrder []string
	typeOrder     []string
	serviceOrder  []string
}

// IncludedModule binds an include's local name to the compiled module it
// refers to. Diamond-shaped include graphs share Module instances.
type IncludedModule struct {
	Name   string
	Line   int
	Module *Module
}

// TypeSpec is a named type declared by a module: an enum, a
// struct/union/exception, or a typedef.
type TypeSpec struct {
	Name   string
	Line   int
	Def    ast.Definition
	Module *Module
}

// ConstantSpec is a named constant with its resolved value.
type ConstantSpec struct {
	Name   string
	Line   int
	Type   ast.Type
	Value  ast.ConstantValue
	Module *Module
}

// ServiceSpec is a named service; Parent links to the resolved parent
// service when the declaration has an extends clause.
type ServiceSpec struct {
	Name   string
	Line   int
	Def    *ast.Service
	Parent *ServiceSpec
	Module *Module
}

func newModule(path string, raw []byte) *Module {
	sum := blake3.Sum256(raw)
	return &Module{
		Name:       moduleName(path),
		SourcePath: path,
		Includes:   make(map[string]*IncludedModule),
		Constants:  make(map[string]*ConstantSpec),
		Types:      make(map[string]*TypeSpec),
		Services:   make(map[string]*ServiceSpec),
		Raw:        raw,
		Digest:     hex.EncodeToString(sum[:]),
	}
}

// moduleName derives a module's default name from its path: the basename
// without extension.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IncludeNames returns the include aliases in declaration order.
func (m *Module) IncludeNames() []string { return m.includeOrder }

// ConstantNames returns the constant names in declaration order.
func (m *Module) ConstantNames() []string { return m.constantOrder }

// TypeNames returns the type names in declaration order.
func (m *Module) TypeNames() []string { return m.typeOrder }

// ServiceNames returns the service names in declaration order.
func (m *Module) ServiceNames() []string { return m.serviceOrder }
