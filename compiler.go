// Package idl compiles Thrift-style interface definitions into
// cross-referenced modules ready for code generation.
package idl

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/thriftkit/idl/ast"
)

type config struct {
	strict bool
	fs     FS
	warn   func(string)
}

// Option adjusts a compilation session.
type Option func(*config)

// Strict toggles the strict validation profile: duplicate definitions,
// duplicate field IDs, and non-positive field IDs become hard failures.
// Sessions are strict by default; non-strict sessions downgrade those
// checks to warnings, matching legacy-file tolerance.
func Strict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithFilesystem substitutes the file-access collaborator. The default
// reads from the OS filesystem.
func WithFilesystem(fs FS) Option {
	return func(c *config) { c.fs = fs }
}

// OnWarning registers a sink for non-fatal diagnostics.
func OnWarning(fn func(string)) Option {
	return func(c *config) { c.warn = fn }
}

// Compile compiles the file at path and everything it transitively
// includes, returning the root module. Included modules are reachable
// through Module.Includes and are compiled once per session no matter how
// many files include them.
func Compile(path string, opts ...Option) (*Module, error) {
	cfg := config{strict: true, fs: osFS{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.warn == nil {
		cfg.warn = func(string) {}
	}
	s := &session{
		cfg:     cfg,
		modules: make(map[string]*Module),
	}
	return s.compile(filepath.Clean(path))
}

// Parse runs the lexer and parser over one file's contents, without
// resolving anything. Callers that only need the syntax tree (analysis
// tooling, the CLI's print command) can stop here.
func Parse(path string, data []byte) (*ast.Program, error) {
	tokens, errs := lexFile(data, nil)
	if len(errs) > 0 {
		return nil, &SyntaxError{Path: path, Err: errors.Join(errs...)}
	}
	prog, errs := parse(path, tokens, nil)
	if len(errs) > 0 {
		return nil, &SyntaxError{Path: path, Err: errors.Join(errs...)}
	}
	return prog, nil
}

// session owns the per-compilation state: the path-keyed memoization map
// and the active-include stack. Sessions are single-threaded; concurrent
// compilations must each use their own session, which Compile arranges.
type session struct {
	cfg     config
	modules map[string]*Module
	active  []string
}

func (s *session) compile(path string) (*Module, error) {
	if m, ok := s.modules[path]; ok {
		return m, nil
	}
	for i, p := range s.active {
		if p == path {
			cycle := append(append([]string{}, s.active[i:]...), path)
			return nil, &CyclicIncludeError{Paths: cycle}
		}
	}
	s.active = append(s.active, path)
	defer func() { s.active = s.active[:len(s.active)-1] }()

	raw, err := s.cfg.fs.Read(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	prog, err := Parse(path, raw)
	if err != nil {
		return nil, err
	}

	m := newModule(path, raw)

	// Includes compile before local resolution: local references may point
	// into them.
	var includes []*IncludedModule
	for _, h := range prog.Headers {
		inc, ok := h.(*ast.Include)
		if !ok {
			continue
		}
		target := filepath.Clean(filepath.Join(filepath.Dir(path), inc.Path))
		sub, err := s.compile(target)
		if err != nil {
			return nil, &IncludeError{Includer: path, Included: target, Err: err}
		}
		name := inc.Name
		if name == "" {
			name = moduleName(inc.Path)
		}
		includes = append(includes, &IncludedModule{Name: name, Line: inc.Line, Module: sub})
	}

	if err := buildSymbols(m, prog, includes, s.cfg.strict, s.cfg.warn); err != nil {
		return nil, err
	}
	if err := resolveReferences(m, prog); err != nil {
		return nil, err
	}
	if s.cfg.strict {
		if err := validateFieldIDs(m, prog); err != nil {
			return nil, err
		}
	}

	s.modules[path] = m
	return m, nil
}

// validateFieldIDs enforces unique, positive field IDs in every struct
// body, parameter list, and throws clause. Strict mode only.
func validateFieldIDs(m *Module, prog *ast.Program) error {
	var errs []error
	check := func(owner string, fields []*ast.Field) {
		ids := makeSet[int]()
		for _, f := range fields {
			if f.ID <= 0 {
				errs = append(errs, &InvalidFieldIDError{
					Owner:  owner,
					Name:   f.Name,
					ID:     f.ID,
					Line:   f.Line,
					Module: m.SourcePath,
				})
				continue
			}
			if ids.has(f.ID) {
				errs = append(errs, &DuplicateFieldIDError{
					Owner:  owner,
					Name:   f.Name,
					ID:     f.ID,
					Line:   f.Line,
					Module: m.SourcePath,
				})
				continue
			}
			ids.add(f.ID)
		}
	}

	for _, def := range prog.Definitions {
		switch d := def.(type) {
		case *ast.Struct:
			check(d.Name, d.Fields)
		case *ast.Service:
			for _, fn := range d.Functions {
				owner := fmt.Sprintf("%s.%s", d.Name, fn.Name)
				check(owner, fn.Parameters)
				check(owner, fn.Exceptions)
			}
		}
	}
	return errors.Join(errs...)
}
