package idl

import "fmt"

type lexer struct {
	data      []rune
	len       int
	pos       int
	startPos  int
	startLine int
	startCol  int

	line   int
	column int

	onError func(error)
	tokens  []token
}

func lexFile(data []byte, onError func(error)) ([]token, []error) {
	var errors []error
	runes := []rune(string(data))
	s := &lexer{
		data:   runes,
		len:    len(runes),
		line:   1,
		column: 1,
		onError: func(err error) {
			errors = append(errors, err)
			if onError != nil {
				onError(err)
			}
		},
	}

	s.scan()

	return s.tokens, errors
}

func (s *lexer) eof() bool {
	return s.pos >= s.len
}

func (s *lexer) peek() rune {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *lexer) peek1() rune {
	if s.pos+1 >= s.len {
		return 0
	}
	return s.data[s.pos+1]
}

func (s *lexer) mark() {
	s.startPos = s.pos
	s.startLine = s.line
	s.startCol = s.column
}

func (s *lexer) marked() string {
	return string(s.data[s.startPos:s.pos])
}

func (s *lexer) advance() rune {
	v := s.data[s.pos]
	s.pos++
	s.column++
	if v == '\n' {
		s.line++
		s.column = 1
	}
	return v
}

func (s *lexer) errorf(msg string, args ...interface{}) {
	s.onError(fmt.Errorf("%s at %d:%d", fmt.Sprintf(msg, args...), s.startLine, s.startCol))
}

func (s *lexer) pushToken(t tokenType) {
	s.tokens = append(s.tokens, token{
		Type:   t,
		Value:  s.marked(),
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

func (s *lexer) pushSimple(t tokenType) {
	s.mark()
	s.advance()
	s.pushToken(t)
}

func isAscii(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Identifier continuations include '.' so qualified names ("shared.Point",
// "Status.OK") lex as one token.
func isIdent(r rune) bool {
	return isAscii(r) || isDigit(r) || r == '.'
}

var simpleTokens = map[rune]tokenType{
	'=': tokenTypeEqual,
	':': tokenTypeColon,
	';': tokenTypeSemi,
	'(': tokenTypeLeftParen,
	')': tokenTypeRightParen,
	'{': tokenTypeLeftCurly,
	'}': tokenTypeRightCurly,
	'<': tokenTypeLeftAngled,
	'>': tokenTypeRightAngled,
	'[': tokenTypeLeftSquare,
	']': tokenTypeRightSquare,
	',': tokenTypeComma,
}

func (s *lexer) scan() {
	for !s.eof() {
		p := s.peek()
		switch p {
		case ' ', '\n', '\t', '\r':
			s.advance()
		case '#':
			s.advance()
			s.mark()
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
			s.pushToken(tokenTypeComment)
		case '/':
			s.lexSlashComment()
		case '"', '\'':
			s.parseString(p)
		case '*':
			// Namespace scope wildcard. Lexed as an identifier so the
			// parser handles "namespace * pkg" uniformly.
			s.mark()
			s.advance()
			s.pushToken(tokenTypeIdentifier)
		case '-', '+':
			s.mark()
			s.advance()
			if isDigit(s.peek()) {
				s.parseNumber()
			} else {
				s.errorf("Unexpected '%c'", p)
			}
		default:
			if simple, ok := simpleTokens[p]; ok {
				s.pushSimple(simple)
			} else if isDigit(p) {
				s.mark()
				if p == '0' && (s.peek1() == 'x' || s.peek1() == 'X') {
					s.parseHex()
				} else {
					s.parseNumber()
				}
			} else if isAscii(p) {
				s.parseIdentifier()
			} else {
				s.mark()
				s.errorf("Unexpected '%c'", p)
				s.advance()
			}
		}
	}
	s.mark()
	s.tokens = append(s.tokens, token{Type: tokenTypeEOF, Pos: s.startPos, Line: s.line, Column: s.column})
}

func (s *lexer) lexSlashComment() {
	s.mark()
	s.advance() // consume first /
	switch s.peek() {
	case '/':
		s.advance()
		s.mark()
		for !s.eof() && s.peek() != '\n' {
			s.advance()
		}
		s.pushToken(tokenTypeComment)
	case '*':
		s.advance()
		s.mark()
		for {
			if s.eof() {
				s.errorf("Unterminated block comment")
				return
			}
			if s.peek() == '*' && s.peek1() == '/' {
				s.pushToken(tokenTypeComment)
				s.advance()
				s.advance()
				return
			}
			s.advance()
		}
	default:
		s.errorf("Unexpected '/'")
		s.advance()
	}
}

func (s *lexer) parseString(q rune) {
	startPos := s.pos
	startLine := s.line
	startCol := s.column
	s.advance() // Consume first quote
	var data []rune
	escaping := false
	for !s.eof() {
		p := s.peek()
		if escaping {
			escaping = false
			switch p {
			case 'n':
				data = append(data, '\n')
				s.advance()
			case 't':
				data = append(data, '\t')
				s.advance()
			case '\\', '\'', '"':
				data = append(data, s.advance())
			default:
				data = append(data, '\\', s.advance())
			}
			continue
		}
		if p == '\\' {
			escaping = true
			s.advance()
			continue
		}

		if p == '\n' {
			s.errorf("Invalid line break in string")
			s.advance()
			continue
		}

		if p == q {
			s.advance()
			break
		}

		data = append(data, s.advance())
	}

	s.tokens = append(s.tokens, token{
		Type:   tokenTypeString,
		Value:  string(data),
		Pos:    startPos,
		Line:   startLine,
		Column: startCol,
	})
}

// parseNumber consumes an integer or float literal. The mark, set by the
// caller, covers any leading sign.
func (s *lexer) parseNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	isFloat := false
	if s.peek() == '.' && isDigit(s.peek1()) {
		isFloat = true
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		isFloat = true
		s.advance()
		if s.peek() == '-' || s.peek() == '+' {
			s.advance()
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if isFloat {
		s.pushToken(tokenTypeFloat)
	} else {
		s.pushToken(tokenTypeInteger)
	}
}

func (s *lexer) parseHex() {
	s.advance() // consume 0
	s.advance() // consume x
	for isHex(s.peek()) {
		s.advance()
	}
	s.pushToken(tokenTypeInteger)
}

func (s *lexer) parseIdentifier() {
	s.mark()
	for isIdent(s.peek()) {
		s.advance()
	}
	s.pushToken(tokenTypeIdentifier)
}
