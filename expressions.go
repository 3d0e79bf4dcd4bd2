// expressions.go — the closed set of expression nodes
//
// OVERVIEW
// --------
// Expressions form the leaf-most recursive category of the tree. Every
// variant embeds Meta (identity + span) and owns its sub-expressions
// exclusively: the same node pointer never appears twice in one tree (the
// canonicalizer deep-copies with fresh identities when a rewrite needs a
// second occurrence, see copy.go).
//
// The variant list is CLOSED. Adding a variant is a breaking change that
// must extend the Director's exhaustive switch (director.go), the Reducer
// interface and DefaultReducer (reducer.go), structural equality
// (equal.go), the deep copier (copy.go) and the JSON codec (json.go).
// That fan-out is deliberate: no pass may silently skip a variant.
package ast

// Expression is the closed category of expression nodes.
type Expression interface {
	Node
	exprNode()
}

// Identifier is a name reference. It is used both as an expression and as
// the name slot of declarations; uniqueness and resolution across scopes
// are the resolver's concern, not this layer's.
type Identifier struct {
	Meta
	Name string
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Meta
	Value bool
}

// IntegerLiteral is an integer token. Value holds the decimal digits
// exactly as written (the language permits values wider than any host
// integer); Width is the suffix, or WidthImplicit when none was written.
type IntegerLiteral struct {
	Meta
	Width IntegerWidth
	Value string
}

// FieldLiteral is a base-field element literal; Value holds the decimal
// digits as written.
type FieldLiteral struct {
	Meta
	Value string
}

// GroupLiteral is a curve-point literal; see groups.go for the value forms.
type GroupLiteral struct {
	Meta
	Value GroupValue
}

// AddressLiteral is an account address literal.
type AddressLiteral struct {
	Meta
	Value string
}

// StringLiteral is a decoded string literal.
type StringLiteral struct {
	Meta
	Value string
}

// UnaryOperator enumerates prefix operators.
type UnaryOperator int

const (
	UnaryNegate UnaryOperator = iota // -x
	UnaryNot                         // !x
)

func (op UnaryOperator) String() string {
	if op == UnaryNegate {
		return "-"
	}
	return "!"
}

// BinaryOperator enumerates infix operators.
type BinaryOperator int

const (
	BinaryAdd BinaryOperator = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryPow
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	BinaryAnd
	BinaryOr
)

var binaryOperatorNames = [...]string{
	BinaryAdd: "+",
	BinarySub: "-",
	BinaryMul: "*",
	BinaryDiv: "/",
	BinaryPow: "**",
	BinaryEq:  "==",
	BinaryNe:  "!=",
	BinaryLt:  "<",
	BinaryLe:  "<=",
	BinaryGt:  ">",
	BinaryGe:  ">=",
	BinaryAnd: "&&",
	BinaryOr:  "||",
}

func (op BinaryOperator) String() string { return binaryOperatorNames[op] }

// UnaryExpression is a prefix operation.
type UnaryExpression struct {
	Meta
	Op    UnaryOperator
	Inner Expression
}

// BinaryExpression is an infix operation with exactly two operands.
type BinaryExpression struct {
	Meta
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

// TernaryExpression is `cond ? ifTrue : ifFalse`.
type TernaryExpression struct {
	Meta
	Condition Expression
	IfTrue    Expression
	IfFalse   Expression
}

// CallExpression applies a callee path to an ordered argument list. The
// callee is an arbitrary expression (identifier, member access chain, ...);
// whether it names a callable is the resolver's concern.
type CallExpression struct {
	Meta
	Function  Expression
	Arguments []Expression
}

// ArrayInlineExpression is `[e0, e1, ...]`.
type ArrayInlineExpression struct {
	Meta
	Elements []Expression
}

// ArrayInitExpression is the repeat form `[e; (d0, d1, ...)]`.
type ArrayInitExpression struct {
	Meta
	Element    Expression
	Dimensions []uint32
}

// TupleInitExpression is `(e0, e1, ...)` with two or more elements.
type TupleInitExpression struct {
	Meta
	Elements []Expression
}

// CircuitVariableInitializer is one `name: value` (or shorthand `name`)
// entry of a circuit init expression. A nil Value is the shorthand form and
// is expanded by the canonicalizer.
type CircuitVariableInitializer struct {
	Meta
	Name  *Identifier
	Value Expression
}

// CircuitInitExpression is `Name { m0: e0, ... }`. Name may be the `Self`
// placeholder inside a circuit definition until canonicalization.
type CircuitInitExpression struct {
	Meta
	Name    *Identifier
	Members []*CircuitVariableInitializer
}

// ArrayAccessExpression is `array[index]`.
type ArrayAccessExpression struct {
	Meta
	Array Expression
	Index Expression
}

// TupleAccessExpression is `tuple.N` with a literal component position.
type TupleAccessExpression struct {
	Meta
	Tuple Expression
	Index uint32
}

// MemberAccessExpression is `inner.name`.
type MemberAccessExpression struct {
	Meta
	Inner Expression
	Name  *Identifier
}

// CastExpression is `inner as Type`.
type CastExpression struct {
	Meta
	Inner Expression
	Type  Type
}

func (*Identifier) exprNode()             {}
func (*BooleanLiteral) exprNode()         {}
func (*IntegerLiteral) exprNode()         {}
func (*FieldLiteral) exprNode()           {}
func (*GroupLiteral) exprNode()           {}
func (*AddressLiteral) exprNode()         {}
func (*StringLiteral) exprNode()          {}
func (*UnaryExpression) exprNode()        {}
func (*BinaryExpression) exprNode()       {}
func (*TernaryExpression) exprNode()      {}
func (*CallExpression) exprNode()         {}
func (*ArrayInlineExpression) exprNode()  {}
func (*ArrayInitExpression) exprNode()    {}
func (*TupleInitExpression) exprNode()    {}
func (*CircuitInitExpression) exprNode()  {}
func (*ArrayAccessExpression) exprNode()  {}
func (*TupleAccessExpression) exprNode()  {}
func (*MemberAccessExpression) exprNode() {}
func (*CastExpression) exprNode()         {}
