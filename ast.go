// ast.go — the owning handle for a program tree
//
// WHAT THIS FILE PROVIDES
// =======================
// Ast wraps a *Program and is the entry point callers are expected to hold
// between compiler phases. It bundles the canonicalization pass and the
// JSON persistence layer behind a small method set:
//
//	a := ast.New(program)
//	if err := a.Canonicalize(); err != nil { ... }
//	data, err := a.ToJSON()
//	b, err := ast.FromJSON(data)
//
// Canonicalize swaps in the rewritten tree only when the whole pass
// succeeds; on error the held program is untouched.
package ast

import (
	"os"
	"path/filepath"
)

// Ast owns a program tree.
type Ast struct {
	program *Program
}

// New wraps an existing program.
func New(program *Program) *Ast {
	return &Ast{program: program}
}

// Program returns the held tree. Callers share the underlying nodes.
func (a *Ast) Program() *Program { return a.program }

// IntoProgram releases the tree and clears the handle.
func (a *Ast) IntoProgram() *Program {
	p := a.program
	a.program = nil
	return p
}

// Canonicalize rewrites the held program into canonical form. On failure
// the held program is left exactly as it was.
func (a *Ast) Canonicalize() error {
	canon, err := Canonicalize(a.program)
	if err != nil {
		return err
	}
	a.program = canon
	return nil
}

// ToJSON serializes the held program as a pretty-printed JSON document.
func (a *Ast) ToJSON() ([]byte, error) {
	return MarshalProgram(a.program)
}

// ToJSONFile writes the serialized program to dir/filename, creating dir
// if needed.
func (a *Ast) ToJSONFile(dir, filename string) error {
	data, err := a.ToJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileError{Op: "create", Path: dir, Err: err}
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// FromJSON parses a document produced by ToJSON.
func FromJSON(data []byte) (*Ast, error) {
	p, err := UnmarshalProgram(data)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// FromJSONFile reads and parses a serialized program from path.
func FromJSONFile(path string) (*Ast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return FromJSON(data)
}
