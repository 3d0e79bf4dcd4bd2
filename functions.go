// functions.go — function definitions
package ast

// FunctionParameter is one typed input of a function. Const marks the
// parameter as a compile-time constant (passed by value, never a circuit
// input wire); the receiver of a circuit method is an ordinary parameter
// named `self` with a SelfType annotation until canonicalization rewrites
// the type.
type FunctionParameter struct {
	Meta
	Name  *Identifier
	Const bool
	Type  Type
}

// Function is a named function: annotations, ordered parameters, optional
// declared output type (nil means no `->` clause) and a block body.
type Function struct {
	Meta
	Name        *Identifier
	Annotations []*Annotation
	Parameters  []*FunctionParameter
	Output      Type // nil when omitted
	Body        *Block
}
