// program.go — the tree root
//
// Program owns every descendant node exclusively and is the unit the Ast
// facade wraps, the Director reduces and the JSON codec persists. Circuits
// and functions are declaration-ordered slices rather than maps: iteration
// order is significant (traversal, serialization) and Go maps do not keep
// insertion order. Name uniqueness inside each slice is a construction
// invariant owed by the parser; the lookup helpers assume it.
package ast

// Program is the root of a parsed compilation unit.
type Program struct {
	Meta
	Name         string
	Imports      []*ImportStatement
	Circuits     []*Circuit
	Functions    []*Function
	GlobalConsts []*DefinitionStatement
}

// Circuit returns the circuit definition with the given name, or nil.
func (p *Program) Circuit(name string) *Circuit {
	for _, c := range p.Circuits {
		if c.Name.Name == name {
			return c
		}
	}
	return nil
}

// Function returns the top-level function with the given name, or nil.
func (p *Program) Function(name string) *Function {
	for _, f := range p.Functions {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}
