package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the annotation in its canonical source form.
func (a *Annotation) String() string {
	return fmt.Sprintf("%s = %s", a.Name, strconv.Quote(a.Value))
}

// String renders the list as a parenthesized, comma-separated suffix, with
// a leading space so it can be appended to a declaration. Empty lists
// render as "".
func (a Annotations) String() string {
	if len(a) == 0 {
		return ""
	}
	parts := make([]string, len(a))
	for i, an := range a {
		parts[i] = an.String()
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (t *BaseType) String() string {
	return baseTypeNames[t.ID] + t.Annotations.String()
}

func (t *ListType) String() string {
	return fmt.Sprintf("list<%s>%s", t.ValueType, t.Annotations)
}

func (t *SetType) String() string {
	return fmt.Sprintf("set<%s>%s", t.ValueType, t.Annotations)
}

func (t *MapType) String() string {
	return fmt.Sprintf("map<%s, %s>%s", t.KeyType, t.ValueType, t.Annotations)
}

func (t *TypeReference) String() string {
	return t.Name + t.Annotations.String()
}

func (c *ConstantBool) String() string {
	return strconv.FormatBool(c.Value)
}

func (c *ConstantInt) String() string {
	return strconv.FormatInt(c.Value, 10)
}

func (c *ConstantDouble) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

func (c *ConstantString) String() string {
	return strconv.Quote(c.Value)
}

func (c *ConstantList) String() string {
	parts := make([]string, len(c.Items))
	for i, v := range c.Items {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *ConstantMap) String() string {
	parts := make([]string, len(c.Items))
	for i, kv := range c.Items {
		parts[i] = fmt.Sprintf("%v: %v", kv.Key, kv.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (c *ConstantReference) String() string {
	return c.Name
}
