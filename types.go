// types.go — the closed set of type nodes
//
// Types are the syntactic type annotations that appear on definitions,
// function parameters, outputs and casts. This layer records them verbatim;
// resolving named references and checking assignability belongs to the next
// compiler stage. SelfType is the deliberate pre-resolution placeholder for
// "the enclosing circuit" and is rewritten away by the canonicalizer.
package ast

// Type is the closed category of type nodes.
type Type interface {
	Node
	typeNode()
}

// IntegerWidth enumerates the fixed integer widths of the language.
// WidthImplicit is only legal on an IntegerLiteral without a suffix; a type
// annotation always names a concrete width.
type IntegerWidth int

const (
	WidthImplicit IntegerWidth = iota
	U8
	U16
	U32
	U64
	U128
	I8
	I16
	I32
	I64
	I128
)

var integerWidthNames = map[IntegerWidth]string{
	WidthImplicit: "",
	U8:            "u8",
	U16:           "u16",
	U32:           "u32",
	U64:           "u64",
	U128:          "u128",
	I8:            "i8",
	I16:           "i16",
	I32:           "i32",
	I64:           "i64",
	I128:          "i128",
}

func (w IntegerWidth) String() string { return integerWidthNames[w] }

// Signed reports whether the width is one of the signed kinds.
func (w IntegerWidth) Signed() bool { return w >= I8 }

func integerWidthFromName(name string) (IntegerWidth, bool) {
	for w, n := range integerWidthNames {
		if n == name {
			return w, true
		}
	}
	return WidthImplicit, false
}

// BooleanType is the `bool` scalar type.
type BooleanType struct {
	Meta
}

// FieldType is the `field` scalar type, an element of the base field of the
// constraint system.
type FieldType struct {
	Meta
}

// GroupType is the `group` scalar type, a point on the embedded curve.
type GroupType struct {
	Meta
}

// AddressType is the `address` scalar type.
type AddressType struct {
	Meta
}

// StringType is the `string` scalar type.
type StringType struct {
	Meta
}

// IntegerType is a fixed-width integer type such as `u32` or `i8`.
type IntegerType struct {
	Meta
	Width IntegerWidth
}

// ArrayType is a fixed-size array `[T; (d0, d1, ...)]`.
type ArrayType struct {
	Meta
	Element    Type
	Dimensions []uint32
}

// TupleType is `(T0, T1, ...)`.
type TupleType struct {
	Meta
	Elements []Type
}

// CircuitType is a named reference to a circuit (or type) definition.
// The reference is left unresolved at this layer.
type CircuitType struct {
	Meta
	Name *Identifier
}

// SelfType is the `Self` placeholder inside a circuit definition. It only
// exists before canonicalization.
type SelfType struct {
	Meta
}

func (*BooleanType) typeNode() {}
func (*FieldType) typeNode()   {}
func (*GroupType) typeNode()   {}
func (*AddressType) typeNode() {}
func (*StringType) typeNode()  {}
func (*IntegerType) typeNode() {}
func (*ArrayType) typeNode()   {}
func (*TupleType) typeNode()   {}
func (*CircuitType) typeNode() {}
func (*SelfType) typeNode()    {}
