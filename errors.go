package idl

import (
	"fmt"
	"strings"
)

// SyntaxError wraps the lexer/parser error list for one file. It aborts
// that file's compilation.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// IOError wraps a failed read with the offending path.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed reading %s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UnresolvedReferenceError reports a type, constant, or service-parent name
// that does not resolve within its module or its includes.
type UnresolvedReferenceError struct {
	Name   string
	Line   int
	Module string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: could not resolve reference %q at line %d", e.Module, e.Name, e.Line)
}

// CyclicIncludeError reports an include graph that revisits a file still
// being compiled. Paths holds the cycle in include order, the offending
// path first and last.
type CyclicIncludeError struct {
	Paths []string
}

func (e *CyclicIncludeError) Error() string {
	return fmt.Sprintf("cyclic include: %s", strings.Join(e.Paths, " includes "))
}

// DuplicateDefinitionError reports two definitions (or an include alias and
// a definition) sharing a name within one module.
type DuplicateDefinitionError struct {
	Name     string
	Line     int
	PrevLine int
	Module   string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s: %s at line %d is already defined at line %d", e.Module, e.Name, e.Line, e.PrevLine)
}

// DuplicateFieldIDError reports a field ID reused within one field list.
// Strict mode only.
type DuplicateFieldIDError struct {
	Owner  string
	Name   string
	ID     int
	Line   int
	Module string
}

func (e *DuplicateFieldIDError) Error() string {
	return fmt.Sprintf("%s: field %s of %s at line %d reuses ID %d", e.Module, e.Name, e.Owner, e.Line, e.ID)
}

// InvalidFieldIDError reports a zero or negative field ID, including the
// implicit IDs assigned to fields declared without one. Strict mode only.
type InvalidFieldIDError struct {
	Owner  string
	Name   string
	ID     int
	Line   int
	Module string
}

func (e *InvalidFieldIDError) Error() string {
	return fmt.Sprintf("%s: field %s of %s at line %d has invalid ID %d; IDs must be positive", e.Module, e.Name, e.Owner, e.Line, e.ID)
}

// IncludeError chains a failure in an included file to the file that
// included it, so the user sees the path that led there.
type IncludeError struct {
	Includer string
	Included string
	Err      error
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s includes %s: %s", e.Includer, e.Included, e.Err)
}

func (e *IncludeError) Unwrap() error { return e.Err }
