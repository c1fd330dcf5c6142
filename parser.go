package idl

import (
	"fmt"
	"strconv"

	"github.com/thriftkit/idl/ast"
)

var baseTypeIDs = map[string]ast.BaseTypeID{
	"bool":   ast.BoolTypeID,
	"byte":   ast.I8TypeID,
	"i8":     ast.I8TypeID,
	"i16":    ast.I16TypeID,
	"i32":    ast.I32TypeID,
	"i64":    ast.I64TypeID,
	"double": ast.DoubleTypeID,
	"string": ast.StringTypeID,
	"binary": ast.BinaryTypeID,
}

var reservedNames = map[string]struct{}{
	"include":   {},
	"namespace": {},
	"const":     {},
	"typedef":   {},
	"enum":      {},
	"struct":    {},
	"union":     {},
	"exception": {},
	"service":   {},
	"extends":   {},
	"throws":    {},
	"oneway":    {},
	"void":      {},
	"required":  {},
	"optional":  {},
	"list":      {},
	"set":       {},
	"map":       {},
	"bool":      {},
	"byte":      {},
	"i8":        {},
	"i16":       {},
	"i32":       {},
	"i64":       {},
	"double":    {},
	"string":    {},
	"binary":    {},
}

func parse(filepath string, tokens []token, onError func(error)) (*ast.Program, []error) {
	var errors []error
	p := parser{
		tokens: tokens,
		length: len(tokens),
		onError: func(err error) {
			errors = append(errors, err)
			if onError != nil {
				onError(err)
			}
		},
	}
	p.parse()
	if len(errors) > 0 {
		return nil, errors
	}
	return &p.prog, nil
}

type parser struct {
	tokens  []token
	pos     int
	length  int
	prog    ast.Program
	onError func(error)
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.onError(fmt.Errorf(format, args...))
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < p.length-1 {
		p.pos++
	}
	return t
}

func (p *parser) eof() bool {
	return p.pos >= p.length || p.peek().Type == tokenTypeEOF
}

func (p *parser) expect(expected tokenType) *token {
	pk := p.peek()
	if pk.Type != expected {
		p.errorf("Expected %s but got %s at line %d, column %d", expected, pk.Type, pk.Line, pk.Column)
		return nil
	}
	p.advance()
	return &pk
}

func (p *parser) expectKeyword(word string) *token {
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier || pk.Value != word {
		p.errorf("Expected %s but got %s at line %d, column %d", word, pk.Value, pk.Line, pk.Column)
		return nil
	}
	p.advance()
	return &pk
}

// expectName consumes an identifier that names a new construct, rejecting
// keywords.
func (p *parser) expectName() *token {
	name := p.expect(tokenTypeIdentifier)
	if name == nil {
		return nil
	}
	if _, ok := reservedNames[name.Value]; ok {
		p.errorf("Cannot use reserved word %s as a name at line %d, column %d", name.Value, name.Line, name.Column)
		return nil
	}
	return name
}

func (p *parser) discardComments() {
	for p.peek().Type == tokenTypeComment {
		p.advance()
	}
}

// consumeSeparator eats an optional "," or ";" after a list element.
func (p *parser) consumeSeparator() {
	if t := p.peek().Type; t == tokenTypeComma || t == tokenTypeSemi {
		p.advance()
	}
}

func (p *parser) consumeUntilSemiOrLinebreak() {
	currentLine := p.peek().Line
	for !p.eof() {
		if p.peek().Type == tokenTypeSemi {
			p.advance()
			break
		}
		if p.peek().Line != currentLine {
			break
		}
		p.advance()
	}
}

func (p *parser) parse() {
	// Headers first, as written; a header after the first definition is an
	// error but parsing continues.
	for !p.eof() {
		p.discardComments()
		if p.eof() {
			break
		}
		pk := p.peek()
		if pk.Type != tokenTypeIdentifier {
			p.errorf("Unexpected %s at line %d, column %d; expected include, namespace, or a definition", pk.Type, pk.Line, pk.Column)
			p.consumeUntilSemiOrLinebreak()
			continue
		}
		switch pk.Value {
		case "include", "namespace":
			if len(p.prog.Definitions) > 0 {
				p.errorf("Unexpected %s at line %d, column %d; headers must precede definitions", pk.Value, pk.Line, pk.Column)
			}
			p.parseHeader()
		case "const":
			p.prog.Definitions = append(p.prog.Definitions, p.parseConst())
		case "typedef":
			p.prog.Definitions = append(p.prog.Definitions, p.parseTypedef())
		case "enum":
			p.prog.Definitions = append(p.prog.Definitions, p.parseEnum())
		case "struct":
			p.prog.Definitions = append(p.prog.Definitions, p.parseStruct(ast.StructType))
		case "union":
			p.prog.Definitions = append(p.prog.Definitions, p.parseStruct(ast.UnionType))
		case "exception":
			p.prog.Definitions = append(p.prog.Definitions, p.parseStruct(ast.ExceptionType))
		case "service":
			p.prog.Definitions = append(p.prog.Definitions, p.parseService())
		default:
			p.errorf("Unexpected %s at line %d, column %d; expected const, typedef, enum, struct, union, exception, or service", pk.Value, pk.Line, pk.Column)
			p.consumeUntilSemiOrLinebreak()
		}
	}
}

func (p *parser) parseHeader() {
	switch p.peek().Value {
	case "include":
		p.prog.Headers = append(p.prog.Headers, p.parseInclude())
	case "namespace":
		p.prog.Headers = append(p.prog.Headers, p.parseNamespace())
	}
}

func (p *parser) parseInclude() *ast.Include {
	tk := p.advance() // consume "include"
	str := p.expect(tokenTypeString)
	if str == nil {
		p.consumeUntilSemiOrLinebreak()
		return &ast.Include{Line: tk.Line}
	}
	inc := &ast.Include{Path: str.Value, Line: tk.Line}
	if pk := p.peek(); pk.Type == tokenTypeIdentifier && pk.Value == "as" {
		p.advance() // consume "as"
		if name := p.expectName(); name != nil {
			inc.Name = name.Value
		}
	}
	p.consumeSeparator()
	return inc
}

func (p *parser) parseNamespace() *ast.Namespace {
	tk := p.advance() // consume "namespace"
	ns := &ast.Namespace{Line: tk.Line}
	scope := p.peek()
	if scope.Type == tokenTypeIdentifier {
		p.advance()
		ns.Scope = scope.Value
	} else {
		p.errorf("Expected namespace scope at line %d, column %d", scope.Line, scope.Column)
		p.consumeUntilSemiOrLinebreak()
		return ns
	}
	if name := p.expect(tokenTypeIdentifier); name != nil {
		ns.Name = name.Value
	}
	p.consumeSeparator()
	return ns
}

func (p *parser) parseConst() *ast.Constant {
	tk := p.advance() // consume "const"
	c := &ast.Constant{Line: tk.Line}
	c.Type = p.parseType()
	if name := p.expectName(); name != nil {
		c.Name = name.Value
	}
	if p.expect(tokenTypeEqual) == nil {
		p.consumeUntilSemiOrLinebreak()
		return c
	}
	c.Value = p.parseConstValue()
	p.consumeSeparator()
	return c
}

func (p *parser) parseTypedef() *ast.Typedef {
	tk := p.advance() // consume "typedef"
	t := &ast.Typedef{Line: tk.Line}
	t.Type = p.parseType()
	if name := p.expectName(); name != nil {
		t.Name = name.Value
	}
	t.Annotations = p.parseAnnotations()
	p.consumeSeparator()
	return t
}

func (p *parser) parseEnum() *ast.Enum {
	tk := p.advance() // consume "enum"
	en := &ast.Enum{Line: tk.Line}
	if name := p.expectName(); name != nil {
		en.Name = name.Value
	}
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return en
	}
	for !p.eof() && p.peek().Type != tokenTypeRightCurly {
		p.discardComments()
		if p.peek().Type == tokenTypeRightCurly {
			break
		}
		if item := p.parseEnumItem(); item != nil {
			en.Items = append(en.Items, item)
		}
	}
	p.expect(tokenTypeRightCurly)
	en.Annotations = p.parseAnnotations()
	return en
}

func (p *parser) parseEnumItem() *ast.EnumItem {
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	item := &ast.EnumItem{Name: name.Value, Line: name.Line}
	if p.peek().Type == tokenTypeEqual {
		p.advance() // consume =
		if value := p.expect(tokenTypeInteger); value != nil {
			v, err := strconv.ParseInt(value.Value, 0, 64)
			if err != nil {
				p.errorf("Failed parsing enum item value %s at line %d, column %d: %s", value.Value, value.Line, value.Column, err)
			} else {
				vi := int(v)
				item.Value = &vi
			}
		}
	}
	item.Annotations = p.parseAnnotations()
	p.consumeSeparator()
	return item
}

func (p *parser) parseStruct(st ast.StructureType) *ast.Struct {
	tk := p.advance() // consume "struct"/"union"/"exception"
	str := &ast.Struct{Type: st, Line: tk.Line}
	if name := p.expectName(); name != nil {
		str.Name = name.Value
	}
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return str
	}
	str.Fields = p.parseFieldList(tokenTypeRightCurly)
	p.expect(tokenTypeRightCurly)
	str.Annotations = p.parseAnnotations()
	return str
}

// parseFieldList consumes fields until the closing token. Fields declared
// without an explicit ID receive implicit negative IDs in declaration
// order, which only non-strict compilation tolerates.
func (p *parser) parseFieldList(until tokenType) []*ast.Field {
	var fields []*ast.Field
	implicit := 0
	for !p.eof() && p.peek().Type != until {
		p.discardComments()
		if p.peek().Type == until {
			break
		}
		implicit--
		if f := p.parseField(implicit); f != nil {
			fields = append(fields, f)
		}
	}
	return fields
}

func (p *parser) parseField(implicitID int) *ast.Field {
	pk := p.peek()
	f := &ast.Field{ID: implicitID, Line: pk.Line}
	if pk.Type == tokenTypeInteger {
		p.advance()
		id, err := strconv.ParseInt(pk.Value, 0, 64)
		if err != nil {
			p.errorf("Failed parsing field ID %s at line %d, column %d: %s", pk.Value, pk.Line, pk.Column, err)
		} else {
			f.ID = int(id)
		}
		if p.expect(tokenTypeColon) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
	}

	if pk := p.peek(); pk.Type == tokenTypeIdentifier {
		switch pk.Value {
		case "required":
			f.Requiredness = ast.Required
			p.advance()
		case "optional":
			f.Requiredness = ast.Optional
			p.advance()
		}
	}

	f.Type = p.parseType()
	if f.Type == nil {
		return nil
	}
	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	f.Name = name.Value

	if p.peek().Type == tokenTypeEqual {
		p.advance() // consume =
		f.Default = p.parseConstValue()
	}
	f.Annotations = p.parseAnnotations()
	p.consumeSeparator()
	return f
}

func (p *parser) parseService() *ast.Service {
	tk := p.advance() // consume "service"
	svc := &ast.Service{Line: tk.Line}
	if name := p.expectName(); name != nil {
		svc.Name = name.Value
	}
	if pk := p.peek(); pk.Type == tokenTypeIdentifier && pk.Value == "extends" {
		p.advance() // consume "extends"
		if parent := p.expect(tokenTypeIdentifier); parent != nil {
			svc.Parent = &ast.ServiceReference{Name: parent.Value, Line: parent.Line}
		}
	}
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return svc
	}
	for !p.eof() && p.peek().Type != tokenTypeRightCurly {
		p.discardComments()
		if p.peek().Type == tokenTypeRightCurly {
			break
		}
		if fn := p.parseFunction(); fn != nil {
			svc.Functions = append(svc.Functions, fn)
		}
	}
	p.expect(tokenTypeRightCurly)
	svc.Annotations = p.parseAnnotations()
	return svc
}

func (p *parser) parseFunction() *ast.Function {
	pk := p.peek()
	fn := &ast.Function{Line: pk.Line}
	if pk.Type == tokenTypeIdentifier && pk.Value == "oneway" {
		fn.OneWay = true
		p.advance()
	}

	if ret := p.peek(); ret.Type == tokenTypeIdentifier && ret.Value == "void" {
		p.advance()
	} else {
		fn.ReturnType = p.parseType()
		if fn.ReturnType == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
	}

	name := p.expectName()
	if name == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	fn.Name = name.Value

	if p.expect(tokenTypeLeftParen) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	fn.Parameters = p.parseFieldList(tokenTypeRightParen)
	p.expect(tokenTypeRightParen)

	if pk := p.peek(); pk.Type == tokenTypeIdentifier && pk.Value == "throws" {
		p.advance() // consume "throws"
		if p.expect(tokenTypeLeftParen) != nil {
			fn.Exceptions = p.parseFieldList(tokenTypeRightParen)
			p.expect(tokenTypeRightParen)
		}
	}

	fn.Annotations = p.parseAnnotations()
	p.consumeSeparator()
	return fn
}

func (p *parser) parseType() ast.Type {
	typeName := p.expect(tokenTypeIdentifier)
	if typeName == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	switch typeName.Value {
	case "map":
		if p.expect(tokenTypeLeftAngled) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		k := p.parseType()
		if p.expect(tokenTypeComma) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		v := p.parseType()
		if p.expect(tokenTypeRightAngled) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		return &ast.MapType{Line: typeName.Line, KeyType: k, ValueType: v, Annotations: p.parseAnnotations()}
	case "list", "set":
		if p.expect(tokenTypeLeftAngled) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		t := p.parseType()
		if p.expect(tokenTypeRightAngled) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		if typeName.Value == "list" {
			return &ast.ListType{Line: typeName.Line, ValueType: t, Annotations: p.parseAnnotations()}
		}
		return &ast.SetType{Line: typeName.Line, ValueType: t, Annotations: p.parseAnnotations()}
	default:
		if id, ok := baseTypeIDs[typeName.Value]; ok {
			return &ast.BaseType{ID: id, Line: typeName.Line, Annotations: p.parseAnnotations()}
		}
		if _, ok := reservedNames[typeName.Value]; ok {
			p.errorf("Unexpected %s at line %d, column %d; expected a type", typeName.Value, typeName.Line, typeName.Column)
			return nil
		}
		return &ast.TypeReference{Name: typeName.Value, Line: typeName.Line, Annotations: p.parseAnnotations()}
	}
}

func (p *parser) parseConstValue() ast.ConstantValue {
	pk := p.peek()
	switch pk.Type {
	case tokenTypeInteger:
		p.advance()
		v, err := strconv.ParseInt(pk.Value, 0, 64)
		if err != nil {
			p.errorf("Failed parsing integer %s at line %d, column %d: %s", pk.Value, pk.Line, pk.Column, err)
			return nil
		}
		return &ast.ConstantInt{Value: v, Line: pk.Line}
	case tokenTypeFloat:
		p.advance()
		v, err := strconv.ParseFloat(pk.Value, 64)
		if err != nil {
			p.errorf("Failed parsing double %s at line %d, column %d: %s", pk.Value, pk.Line, pk.Column, err)
			return nil
		}
		return &ast.ConstantDouble{Value: v, Line: pk.Line}
	case tokenTypeString:
		p.advance()
		return &ast.ConstantString{Value: pk.Value, Line: pk.Line}
	case tokenTypeIdentifier:
		p.advance()
		switch pk.Value {
		case "true":
			return &ast.ConstantBool{Value: true, Line: pk.Line}
		case "false":
			return &ast.ConstantBool{Value: false, Line: pk.Line}
		}
		if _, ok := reservedNames[pk.Value]; ok {
			p.errorf("Unexpected %s at line %d, column %d; expected a constant value", pk.Value, pk.Line, pk.Column)
			return nil
		}
		return &ast.ConstantReference{Name: pk.Value, Line: pk.Line}
	case tokenTypeLeftSquare:
		return p.parseConstList()
	case tokenTypeLeftCurly:
		return p.parseConstMap()
	default:
		p.errorf("Unexpected %s at line %d, column %d; expected a constant value", pk.Type, pk.Line, pk.Column)
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
}

func (p *parser) parseConstList() ast.ConstantValue {
	tk := p.advance() // consume [
	list := &ast.ConstantList{Line: tk.Line}
	for !p.eof() && p.peek().Type != tokenTypeRightSquare {
		v := p.parseConstValue()
		if v == nil {
			break
		}
		list.Items = append(list.Items, v)
		p.consumeSeparator()
	}
	p.expect(tokenTypeRightSquare)
	return list
}

func (p *parser) parseConstMap() ast.ConstantValue {
	tk := p.advance() // consume {
	m := &ast.ConstantMap{Line: tk.Line}
	for !p.eof() && p.peek().Type != tokenTypeRightCurly {
		line := p.peek().Line
		k := p.parseConstValue()
		if k == nil {
			break
		}
		if p.expect(tokenTypeColon) == nil {
			break
		}
		v := p.parseConstValue()
		if v == nil {
			break
		}
		m.Items = append(m.Items, &ast.ConstantMapItem{Key: k, Value: v, Line: line})
		p.consumeSeparator()
	}
	p.expect(tokenTypeRightCurly)
	return m
}

// parseAnnotations consumes a trailing "(k = "v", k2)" list if present.
// Bare keys take the value "1".
func (p *parser) parseAnnotations() ast.Annotations {
	if p.peek().Type != tokenTypeLeftParen {
		return nil
	}
	p.advance() // consume (
	var annotations ast.Annotations
	for !p.eof() && p.peek().Type != tokenTypeRightParen {
		name := p.expect(tokenTypeIdentifier)
		if name == nil {
			p.consumeUntilSemiOrLinebreak()
			return annotations
		}
		a := &ast.Annotation{Name: name.Value, Value: "1", Line: name.Line}
		if p.peek().Type == tokenTypeEqual {
			p.advance() // consume =
			if value := p.expect(tokenTypeString); value != nil {
				a.Value = value.Value
			}
		}
		annotations = append(annotations, a)
		if p.peek().Type == tokenTypeComma {
			p.advance()
		}
	}
	p.expect(tokenTypeRightParen)
	return annotations
}
