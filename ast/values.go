package ast

// ConstantValue is the closed set of forms a constant or default value can
// take.
type ConstantValue interface {
	Node

	constantValue()
}

// ConstantBool is a true/false literal.
type ConstantBool struct {
	Value bool
	Line  int
}

func (c *ConstantBool) constantValue() {}
func (c *ConstantBool) Pos() int       { return c.Line }

func (c *ConstantBool) forEachChild(fn func(Node)) {}

// ConstantInt is an integer literal.
type ConstantInt struct {
	Value int64
	Line  int
}

func (c *ConstantInt) constantValue() {}
func (c *ConstantInt) Pos() int       { return c.Line }

func (c *ConstantInt) forEachChild(fn func(Node)) {}

// ConstantDouble is a floating-point literal.
type ConstantDouble struct {
	Value float64
	Line  int
}

func (c *ConstantDouble) constantValue() {}
func (c *ConstantDouble) Pos() int       { return c.Line }

func (c *ConstantDouble) forEachChild(fn func(Node)) {}

// ConstantString is a string literal.
type ConstantString struct {
	Value string
	Line  int
}

func (c *ConstantString) constantValue() {}
func (c *ConstantString) Pos() int       { return c.Line }

func (c *ConstantString) forEachChild(fn func(Node)) {}

// ConstantList is a [ ... ] literal.
type ConstantList struct {
	Items []ConstantValue
	Line  int
}

func (c *ConstantList) constantValue() {}
func (c *ConstantList) Pos() int       { return c.Line }

func (c *ConstantList) forEachChild(fn func(Node)) {
	for _, i := range c.Items {
		fn(i)
	}
}

// ConstantMap is a { k: v, ... } literal. Items keep source order.
type ConstantMap struct {
	Items []*ConstantMapItem
	Line  int
}

func (c *ConstantMap) constantValue() {}
func (c *ConstantMap) Pos() int       { return c.Line }

func (c *ConstantMap) forEachChild(fn func(Node)) {
	for _, i := range c.Items {
		fn(i)
	}
}

// ConstantMapItem is a single key/value pair of a ConstantMap.
type ConstantMapItem struct {
	Key   ConstantValue
	Value ConstantValue
	Line  int
}

func (c *ConstantMapItem) Pos() int { return c.Line }

func (c *ConstantMapItem) forEachChild(fn func(Node)) {
	fn(c.Key)
	fn(c.Value)
}

// ConstantReference names another constant or an enum item ("Name",
// "Enum.Item", "alias.Name", "alias.Enum.Item"). The compiler rewrites
// Target in place: for enum items it is the item's integer value, not the
// enum type.
type ConstantReference struct {
	Name   string
	Line   int
	Target ConstantValue
}

func (c *ConstantReference) constantValue() {}
func (c *ConstantReference) Pos() int       { return c.Line }

func (c *ConstantReference) forEachChild(fn func(Node)) {}
