package ast

// Type is the closed set of type forms a declaration can use.
type Type interface {
	Node
	String() string

	typ()
}

// BaseTypeID enumerates the scalar base types.
type BaseTypeID int

const (
	BoolTypeID BaseTypeID = iota
	I8TypeID
	I16TypeID
	I32TypeID
	I64TypeID
	DoubleTypeID
	StringTypeID
	BinaryTypeID
)

var baseTypeNames = map[BaseTypeID]string{
	BoolTypeID:   "bool",
	I8TypeID:     "i8",
	I16TypeID:    "i16",
	I32TypeID:    "i32",
	I64TypeID:    "i64",
	DoubleTypeID: "double",
	StringTypeID: "string",
	BinaryTypeID: "binary",
}

// BaseType is a scalar type such as i32 or string.
type BaseType struct {
	ID          BaseTypeID
	Annotations Annotations
	Line        int
}

func (t *BaseType) typ()     {}
func (t *BaseType) Pos() int { return t.Line }

func (t *BaseType) forEachChild(fn func(Node)) {
	for _, a := range t.Annotations {
		fn(a)
	}
}

// ListType is list<ValueType>.
type ListType struct {
	ValueType   Type
	Annotations Annotations
	Line        int
}

func (t *ListType) typ()     {}
func (t *ListType) Pos() int { return t.Line }

func (t *ListType) forEachChild(fn func(Node)) {
	fn(t.ValueType)
	for _, a := range t.Annotations {
		fn(a)
	}
}

// SetType is set<ValueType>.
type SetType struct {
	ValueType   Type
	Annotations Annotations
	Line        int
}

func (t *SetType) typ()     {}
func (t *SetType) Pos() int { return t.Line }

func (t *SetType) forEachChild(fn func(Node)) {
	fn(t.ValueType)
	for _, a := range t.Annotations {
		fn(a)
	}
}

// MapType is map<KeyType, ValueType>.
type MapType struct {
	KeyType     Type
	ValueType   Type
	Annotations Annotations
	Line        int
}

func (t *MapType) typ()     {}
func (t *MapType) Pos() int { return t.Line }

func (t *MapType) forEachChild(fn func(Node)) {
	fn(t.KeyType)
	fn(t.ValueType)
	for _, a := range t.Annotations {
		fn(a)
	}
}

// TypeReference names a user-declared type, either bare ("Point") or
// qualified through an include ("shared.Point"). The compiler rewrites
// Target in place to the resolved definition.
type TypeReference struct {
	Name        string
	Annotations Annotations
	Line        int
	Target      Definition
}

func (t *TypeReference) typ()     {}
func (t *TypeReference) Pos() int { return t.Line }

func (t *TypeReference) forEachChild(fn func(Node)) {
	for _, a := range t.Annotations {
		fn(a)
	}
}
