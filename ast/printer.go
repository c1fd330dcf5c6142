package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Dump renders an indented, human-readable outline of a parsed program.
func Dump(path string, prog *Program) string {
	p := printer{}
	p.print(path, prog)
	return p.b.String()
}

type printer struct {
	b   bytes.Buffer
	lvl int
}

func (p *printer) inc() func() {
	p.lvl++
	return p.dec
}

func (p *printer) dec() { p.lvl-- }

func (p *printer) printf(format string, args ...interface{}) {
	p.b.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat("  ", p.lvl), fmt.Sprintf(format, args...)))
}

func (p *printer) print(path string, prog *Program) {
	p.printf("File: %s", path)
	defer p.inc()()
	if len(prog.Headers) > 0 {
		p.printf("Headers:")
		p.printHeaders(prog.Headers)
	}
	if len(prog.Definitions) > 0 {
		p.printf("Definitions:")
		p.printDefinitions(prog.Definitions)
	}
}

func (p *printer) printHeaders(headers []Header) {
	defer p.inc()()
	for _, h := range headers {
		switch h := h.(type) {
		case *Include:
			if h.Name != "" {
				p.printf("- include %q as %s", h.Path, h.Name)
			} else {
				p.printf("- include %q", h.Path)
			}
		case *Namespace:
			p.printf("- namespace %s %s", h.Scope, h.Name)
		}
	}
}

func (p *printer) printDefinitions(defs []Definition) {
	defer p.inc()()
	for _, d := range defs {
		switch d := d.(type) {
		case *Constant:
			p.printf("- const %s %s = %v", d.Type, d.Name, d.Value)
		case *Typedef:
			p.printf("- typedef %s %s%s", d.Type, d.Name, d.Annotations)
		case *Enum:
			p.printEnum(d)
		case *Struct:
			p.printStruct(d)
		case *Service:
			p.printService(d)
		}
	}
}

func (p *printer) printEnum(e *Enum) {
	p.printf("- enum %s%s", e.Name, e.Annotations)
	defer p.inc()()
	for _, i := range e.Items {
		if i.Value != nil {
			p.printf("- %s = %d%s", i.Name, *i.Value, i.Annotations)
		} else {
			p.printf("- %s%s", i.Name, i.Annotations)
		}
	}
}

func (p *printer) printStruct(s *Struct) {
	p.printf("- %s %s%s", s.Type, s.Name, s.Annotations)
	defer p.inc()()
	for _, f := range s.Fields {
		p.printField(f)
	}
}

func (p *printer) printField(f *Field) {
	req := ""
	if f.Requiredness != Unspecified {
		req = " " + f.Requiredness.String()
	}
	def := ""
	if f.Default != nil {
		def = fmt.Sprintf(" = %v", f.Default)
	}
	p.printf("- %d:%s %s %s%s%s", f.ID, req, f.Type, f.Name, def, f.Annotations)
}

func (p *printer) printService(s *Service) {
	if s.Parent != nil {
		p.printf("- service %s extends %s%s", s.Name, s.Parent.Name, s.Annotations)
	} else {
		p.printf("- service %s%s", s.Name, s.Annotations)
	}
	defer p.inc()()
	for _, fn := range s.Functions {
		p.printFunction(fn)
	}
}

func (p *printer) printFunction(fn *Function) {
	ret := "void"
	if fn.ReturnType != nil {
		ret = fn.ReturnType.String()
	}
	if fn.OneWay {
		ret = "oneway " + ret
	}
	p.printf("- %s %s%s", ret, fn.Name, fn.Annotations)
	defer p.inc()()
	for _, f := range fn.Parameters {
		p.printField(f)
	}
	if len(fn.Exceptions) > 0 {
		p.printf("Throws:")
		p.inc()
		for _, f := range fn.Exceptions {
			p.printField(f)
		}
		p.dec()
	}
}
