package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderBaseTypes(t *testing.T) {
	cases := map[BaseTypeID]string{
		BoolTypeID:   "bool",
		I8TypeID:     "i8",
		I16TypeID:    "i16",
		I32TypeID:    "i32",
		I64TypeID:    "i64",
		DoubleTypeID: "double",
		StringTypeID: "string",
		BinaryTypeID: "binary",
	}
	for id, want := range cases {
		require.Equal(t, want, (&BaseType{ID: id}).String())
	}
}

func TestRenderAnnotatedMap(t *testing.T) {
	typ := &MapType{
		KeyType: &BaseType{ID: StringTypeID},
		ValueType: &ListType{
			ValueType: &BaseType{ID: I32TypeID},
		},
		Annotations: Annotations{
			{Name: "java.type", Value: "MultiMap"},
		},
	}
	require.Equal(t, `map<string, list<i32>> (java.type = "MultiMap")`, typ.String())
}

func TestRenderAnnotation(t *testing.T) {
	a := &Annotation{Name: "py.serializer", Value: "foo.Int128Serializer"}
	require.Equal(t, `py.serializer = "foo.Int128Serializer"`, a.String())

	list := Annotations{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "two"},
	}
	require.Equal(t, ` (a = "1", b = "two")`, list.String())
	require.Equal(t, "", Annotations(nil).String())
}

func TestRenderContainers(t *testing.T) {
	set := &SetType{ValueType: &BaseType{ID: StringTypeID}}
	require.Equal(t, "set<string>", set.String())

	list := &ListType{
		ValueType:   &TypeReference{Name: "shared.UUID"},
		Annotations: Annotations{{Name: "cpp.template", Value: "std::deque"}},
	}
	require.Equal(t, `list<shared.UUID> (cpp.template = "std::deque")`, list.String())
}

func TestRenderConstantValues(t *testing.T) {
	require.Equal(t, "42", (&ConstantInt{Value: 42}).String())
	require.Equal(t, "true", (&ConstantBool{Value: true}).String())
	require.Equal(t, `"hi"`, (&ConstantString{Value: "hi"}).String())
	require.Equal(t, "3.25", (&ConstantDouble{Value: 3.25}).String())

	list := &ConstantList{Items: []ConstantValue{
		&ConstantInt{Value: 1},
		&ConstantReference{Name: "Status.OK"},
	}}
	require.Equal(t, "[1, Status.OK]", list.String())

	m := &ConstantMap{Items: []*ConstantMapItem{
		{Key: &ConstantString{Value: "low"}, Value: &ConstantInt{Value: 1}},
		{Key: &ConstantString{Value: "high"}, Value: &ConstantInt{Value: 32}},
	}}
	require.Equal(t, `{"low": 1, "high": 32}`, m.String())
}
