// statements.go — the closed set of statement nodes
//
// Statements own their nested expressions and statements exclusively. The
// variant list is CLOSED; see expressions.go for what extending it entails.
//
// Two shapes here exist only before canonicalization:
//   - AssignStatement with a compound Op (AssignAdd etc.)
//   - ConditionalStatement whose Next is nil or another conditional
//
// and one shape is produced by it:
//   - DefinitionStatement always has exactly one variable after
//     canonicalization of tuple-destructuring definitions.
package ast

// Statement is the closed category of statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// ReturnStatement returns Value from the enclosing function. Value is nil
// for a bare `return;`.
type ReturnStatement struct {
	Meta
	Value Expression
}

// DeclareKind distinguishes `let` from `const` definitions.
type DeclareKind int

const (
	DeclareLet DeclareKind = iota
	DeclareConst
)

func (k DeclareKind) String() string {
	if k == DeclareConst {
		return "const"
	}
	return "let"
}

// VariableName is one bound name of a definition, with its mutability flag.
type VariableName struct {
	Meta
	Mutable    bool
	Identifier *Identifier
}

// DefinitionStatement is `let/const <names> [: Type] = Value;`. Multiple
// names destructure a tuple-producing initializer and are desugared by the
// canonicalizer into one definition per name.
type DefinitionStatement struct {
	Meta
	Declare   DeclareKind
	Variables []*VariableName
	Type      Type // nil when no annotation was written
	Value     Expression
}

// AssignOperation is the (possibly compound) operator of an assignment.
type AssignOperation int

const (
	OpAssign AssignOperation = iota // =
	OpAddAssign                     // +=
	OpSubAssign                     // -=
	OpMulAssign                     // *=
	OpDivAssign                     // /=
	OpPowAssign                     // **=
	OpAndAssign                     // &&=
	OpOrAssign                      // ||=
)

var assignOperationNames = [...]string{
	OpAssign:    "=",
	OpAddAssign: "+=",
	OpSubAssign: "-=",
	OpMulAssign: "*=",
	OpDivAssign: "/=",
	OpPowAssign: "**=",
	OpAndAssign: "&&=",
	OpOrAssign:  "||=",
}

func (op AssignOperation) String() string { return assignOperationNames[op] }

// binaryOperator returns the binary operator a compound assignment expands
// to, and false for the plain `=`.
func (op AssignOperation) binaryOperator() (BinaryOperator, bool) {
	switch op {
	case OpAddAssign:
		return BinaryAdd, true
	case OpSubAssign:
		return BinarySub, true
	case OpMulAssign:
		return BinaryMul, true
	case OpDivAssign:
		return BinaryDiv, true
	case OpPowAssign:
		return BinaryPow, true
	case OpAndAssign:
		return BinaryAnd, true
	case OpOrAssign:
		return BinaryOr, true
	}
	return 0, false
}

// AssignStatement is `Target Op Value;`. Target is an arbitrary expression
// as parsed; the canonicalizer rejects compound assignments whose target is
// not a place expression (identifier or access chain over one).
type AssignStatement struct {
	Meta
	Op     AssignOperation
	Target Expression
	Value  Expression
}

// ConditionalStatement is `if Condition Block` with an optional trailing
// part: Next is nil (no else), a *Block (plain else), or another
// *ConditionalStatement (`else if` chain). Canonical form always has a
// *Block in Next.
type ConditionalStatement struct {
	Meta
	Condition Expression
	Block     *Block
	Next      Statement
}

// IterationStatement is `for Variable in Start..Stop Block`, iterating the
// half-open range, or through Stop when Inclusive is set (`..=`).
type IterationStatement struct {
	Meta
	Variable  *Identifier
	Start     Expression
	Stop      Expression
	Inclusive bool
	Block     *Block
}

// ConsoleKind enumerates the console pseudo-functions.
type ConsoleKind int

const (
	ConsoleAssert ConsoleKind = iota
	ConsoleDebug
	ConsoleError
	ConsoleLog
)

var consoleKindNames = [...]string{
	ConsoleAssert: "assert",
	ConsoleDebug:  "debug",
	ConsoleError:  "error",
	ConsoleLog:    "log",
}

func (k ConsoleKind) String() string { return consoleKindNames[k] }

func consoleKindFromName(name string) (ConsoleKind, bool) {
	for i, n := range consoleKindNames {
		if n == name {
			return ConsoleKind(i), true
		}
	}
	return 0, false
}

// ConsoleStatement is `console.<kind>(args...);`, the expression-statement
// form of the language. It has no value; the constraint generator lowers
// assert and drops the debug forms.
type ConsoleStatement struct {
	Meta
	Kind      ConsoleKind
	Arguments []Expression
}

// Block is `{ s0 s1 ... }`, an ordered statement sequence.
type Block struct {
	Meta
	Statements []Statement
}

func (*ReturnStatement) stmtNode()      {}
func (*DefinitionStatement) stmtNode()  {}
func (*AssignStatement) stmtNode()      {}
func (*ConditionalStatement) stmtNode() {}
func (*IterationStatement) stmtNode()   {}
func (*ConsoleStatement) stmtNode()     {}
func (*Block) stmtNode()                {}
