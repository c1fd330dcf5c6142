package idl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thriftkit/idl/ast"
)

// mapFS serves sources from memory so include graphs can be laid out
// per-test.
type mapFS map[string]string

func (m mapFS) Read(path string) ([]byte, error) {
	src, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("file not found")
	}
	return []byte(src), nil
}

func TestCompileFixture(t *testing.T) {
	m, err := Compile("fixtures/full.thrift")
	require.NoError(t, err)

	require.Equal(t, "full", m.Name)
	require.Len(t, m.Includes, 1)
	shared := m.Includes["shared"]
	require.NotNil(t, shared)
	require.Equal(t, "shared", shared.Module.Name)

	require.Contains(t, m.Types, "i128")
	require.Contains(t, m.Types, "Record")
	require.Contains(t, m.Types, "Status")
	require.Contains(t, m.Types, "Timestamp")
	require.Contains(t, m.Constants, "DEFAULT_PORT")
	require.Contains(t, m.Services, "Lookup")

	// Declaration order is preserved for reproducible output.
	require.Equal(t, []string{"DEFAULT_PORT", "GREETING", "PI", "VERBOSE", "FIB", "LIMITS", "MIRROR", "OK_VALUE"}, m.ConstantNames())

	// The service's extends clause links to the included module's service.
	lookup := m.Services["Lookup"]
	require.NotNil(t, lookup.Parent)
	require.Same(t, shared.Module.Services["Base"], lookup.Parent)

	// Cross-file typedef target resolved through the include alias.
	reqID := m.Types["RequestID"].Def.(*ast.Typedef)
	ref := reqID.Type.(*ast.TypeReference)
	require.Same(t, shared.Module.Types["UUID"].Def, ref.Target)

	// A constant referencing another constant links to its value.
	mirror := m.Constants["MIRROR"].Value.(*ast.ConstantReference)
	require.Equal(t, int64(8080), mirror.Target.(*ast.ConstantInt).Value)

	// Enum item references resolve to the item's value, not the enum.
	ok := m.Constants["OK_VALUE"].Value.(*ast.ConstantReference)
	require.Equal(t, int64(200), ok.Target.(*ast.ConstantInt).Value)

	require.Len(t, m.Digest, 64)
}

func TestCompileConstScenario(t *testing.T) {
	fs := mapFS{"a.thrift": `const i32 foo = 42`}
	m, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)

	c := m.Constants["foo"]
	require.NotNil(t, c)
	require.Equal(t, ast.I32TypeID, c.Type.(*ast.BaseType).ID)
	require.Equal(t, int64(42), c.Value.(*ast.ConstantInt).Value)
}

func TestCompileStructScenario(t *testing.T) {
	fs := mapFS{"a.thrift": `
struct i128 {
  1: required i64 high;
  2: required i64 low;
} (py.serializer = "foo.Int128Serializer")
`}
	m, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)

	s := m.Types["i128"].Def.(*ast.Struct)
	require.Equal(t, ast.StructType, s.Type)
	require.Len(t, s.Fields, 2)
	require.Equal(t, 1, s.Fields[0].ID)
	require.Equal(t, ast.Required, s.Fields[0].Requiredness)
	require.Equal(t, 2, s.Fields[1].ID)
	require.Equal(t, ast.Required, s.Fields[1].Requiredness)
	require.Equal(t, "foo.Int128Serializer", s.Annotations.ByName("py.serializer").Value)
}

func TestCompileCyclicInclude(t *testing.T) {
	fs := mapFS{
		"a.thrift": `include "b.thrift"`,
		"b.thrift": `include "a.thrift"`,
	}
	_, err := Compile("a.thrift", WithFilesystem(fs))
	require.Error(t, err)

	var cyclic *CyclicIncludeError
	require.ErrorAs(t, err, &cyclic)
	require.Contains(t, cyclic.Paths, "a.thrift")
	require.Contains(t, cyclic.Paths, "b.thrift")
	// The include chain leading to the cycle is reported too.
	require.Contains(t, err.Error(), "a.thrift includes b.thrift")
}

func TestCompileDiamondInclude(t *testing.T) {
	fs := mapFS{
		"a.thrift": "include \"b.thrift\"\ninclude \"c.thrift\"\n",
		"b.thrift": "include \"d.thrift\"\ntypedef d.Base LeftAlias\n",
		"c.thrift": "include \"d.thrift\"\ntypedef d.Base RightAlias\n",
		"d.thrift": "typedef i64 Base\n",
	}
	m, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)

	b := m.Includes["b"].Module
	c := m.Includes["c"].Module
	require.Same(t, b.Includes["d"].Module, c.Includes["d"].Module)

	// Both sides' resolved references point into the one shared module.
	left := b.Types["LeftAlias"].Def.(*ast.Typedef).Type.(*ast.TypeReference)
	right := c.Types["RightAlias"].Def.(*ast.Typedef).Type.(*ast.TypeReference)
	require.Same(t, left.Target, right.Target)
}

func TestCompileDuplicateDefinition(t *testing.T) {
	fs := mapFS{"a.thrift": "struct S { 1: i32 x }\nenum S { A }\n"}

	_, err := Compile("a.thrift", WithFilesystem(fs))
	var dup *DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "S", dup.Name)
	require.Equal(t, 2, dup.Line)
	require.Equal(t, 1, dup.PrevLine)

	// Non-strict: first definition wins, duplicate becomes a warning.
	var warnings []string
	m, err := Compile("a.thrift",
		WithFilesystem(fs),
		Strict(false),
		OnWarning(func(msg string) { warnings = append(warnings, msg) }),
	)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.IsType(t, &ast.Struct{}, m.Types["S"].Def)
}

func TestCompileIncludeAliasCollision(t *testing.T) {
	fs := mapFS{
		"a.thrift": "include \"b.thrift\" as S\nstruct S { 1: i32 x }\n",
		"b.thrift": "typedef i32 T\n",
	}
	_, err := Compile("a.thrift", WithFilesystem(fs))
	var dup *DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "S", dup.Name)
}

func TestCompileUnresolvedType(t *testing.T) {
	fs := mapFS{"a.thrift": "struct S {\n  1: Missing field\n}\n"}
	_, err := Compile("a.thrift", WithFilesystem(fs))

	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "Missing", unresolved.Name)
	require.Equal(t, 2, unresolved.Line)
}

func TestCompileUnresolvedServiceParent(t *testing.T) {
	fs := mapFS{"a.thrift": "service S extends Ghost {\n  void ping()\n}\n"}
	_, err := Compile("a.thrift", WithFilesystem(fs))

	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "Ghost", unresolved.Name)
	require.Equal(t, 1, unresolved.Line)
}

func TestCompileBareCrossModuleNameFails(t *testing.T) {
	// Cross-module lookups require explicit alias qualification.
	fs := mapFS{
		"a.thrift": "include \"b.thrift\"\nstruct S { 1: Point p }\n",
		"b.thrift": "struct Point { 1: double x }\n",
	}
	_, err := Compile("a.thrift", WithFilesystem(fs))
	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	require.Equal(t, "Point", unresolved.Name)

	fs["a.thrift"] = "include \"b.thrift\"\nstruct S { 1: b.Point p }\n"
	_, err = Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)
}

func TestCompileFieldIDValidation(t *testing.T) {
	duplicate := mapFS{"a.thrift": "struct S {\n  1: i32 x\n  1: i32 y\n}\n"}
	_, err := Compile("a.thrift", WithFilesystem(duplicate))
	var dupID *DuplicateFieldIDError
	require.ErrorAs(t, err, &dupID)
	require.Equal(t, "S", dupID.Owner)
	require.Equal(t, 1, dupID.ID)
	require.Equal(t, "y", dupID.Name)

	zero := mapFS{"a.thrift": "struct S {\n  0: i32 x\n}\n"}
	_, err = Compile("a.thrift", WithFilesystem(zero))
	var invalid *InvalidFieldIDError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, 0, invalid.ID)

	implicit := mapFS{"a.thrift": "struct S {\n  i32 x\n}\n"}
	_, err = Compile("a.thrift", WithFilesystem(implicit))
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, -1, invalid.ID)

	// Non-strict tolerates all of the above.
	for _, fs := range []mapFS{duplicate, zero, implicit} {
		_, err = Compile("a.thrift", WithFilesystem(fs), Strict(false))
		require.NoError(t, err)
	}
}

func TestCompileFunctionFieldIDs(t *testing.T) {
	fs := mapFS{"a.thrift": "service S {\n  void f(1: i32 a, 1: i32 b)\n}\n"}
	_, err := Compile("a.thrift", WithFilesystem(fs))
	var dupID *DuplicateFieldIDError
	require.ErrorAs(t, err, &dupID)
	require.Equal(t, "S.f", dupID.Owner)
}

func TestCompileEnumItemValues(t *testing.T) {
	fs := mapFS{"a.thrift": "enum E { A, B = 5, C }\nconst i32 X = E.C\nconst i32 Y = E.A\n"}
	m, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)

	x := m.Constants["X"].Value.(*ast.ConstantReference)
	require.Equal(t, int64(6), x.Target.(*ast.ConstantInt).Value)
	y := m.Constants["Y"].Value.(*ast.ConstantReference)
	require.Equal(t, int64(0), y.Target.(*ast.ConstantInt).Value)
}

func TestCompileForwardReference(t *testing.T) {
	fs := mapFS{"a.thrift": "struct Outer { 1: Inner inner }\nstruct Inner { 1: i32 x }\n"}
	m, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)

	outer := m.Types["Outer"].Def.(*ast.Struct)
	ref := outer.Fields[0].Type.(*ast.TypeReference)
	require.Same(t, m.Types["Inner"].Def, ref.Target)
}

func TestCompileMutualReference(t *testing.T) {
	fs := mapFS{"a.thrift": "struct A { 1: optional B b }\nstruct B { 1: optional A a }\n"}
	m, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)

	a := m.Types["A"].Def.(*ast.Struct)
	b := m.Types["B"].Def.(*ast.Struct)
	require.Same(t, b, a.Fields[0].Type.(*ast.TypeReference).Target)
	require.Same(t, a, b.Fields[0].Type.(*ast.TypeReference).Target)
}

func TestCompileIncludeErrorChain(t *testing.T) {
	fs := mapFS{
		"a.thrift": `include "b.thrift"`,
		"b.thrift": `struct {`,
	}
	_, err := Compile("a.thrift", WithFilesystem(fs))
	require.Error(t, err)
	require.Contains(t, err.Error(), "a.thrift includes b.thrift")

	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	require.Equal(t, "b.thrift", syntax.Path)
}

func TestCompileMissingFile(t *testing.T) {
	_, err := Compile("nope.thrift", WithFilesystem(mapFS{}))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "nope.thrift", ioErr.Path)

	fs := mapFS{"a.thrift": `include "gone.thrift"`}
	_, err = Compile("a.thrift", WithFilesystem(fs))
	require.ErrorAs(t, err, &ioErr)
	require.Contains(t, err.Error(), "a.thrift includes gone.thrift")
}

func TestCompileSessionsAreIndependent(t *testing.T) {
	fs := mapFS{"a.thrift": "typedef i32 T\n"}
	first, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)
	second, err := Compile("a.thrift", WithFilesystem(fs))
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.Equal(t, first.Digest, second.Digest)
}

func TestCompileStrictIsDefault(t *testing.T) {
	fs := mapFS{"a.thrift": "struct S { i32 x }\n"}
	_, err := Compile("a.thrift", WithFilesystem(fs))
	require.Error(t, err)

	var invalid *InvalidFieldIDError
	require.True(t, errors.As(err, &invalid))
}
