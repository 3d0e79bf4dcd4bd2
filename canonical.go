// canonical.go — the canonicalization pass
//
// WHAT THIS MODULE DOES
// =====================
// The Canonicalizer is a Reducer that rewrites syntactic sugar into the
// canonical vocabulary downstream stages are written against. It changes no
// program semantics. One whole-tree pass over the Director either produces
// a new, fully canonical tree or fails with the first *CanonError; the
// input tree is never touched.
//
// THE RULE SET (closed, per language version)
// ===========================================
//  1. Compound assignment `t op= v`  →  `t = t op v`. The target must be a
//     place expression (an identifier, or a member/array/tuple access chain
//     rooted at one); the copy of the target that becomes the left operand
//     gets fresh identities (copy.go).
//  2. Destructuring definition `let (a, b) = v`  →  one definition per
//     name, bound to the positional components of v. Arity is enforced
//     where it is syntactically known: a tuple-literal initializer and a
//     declared tuple type must both match the number of names. Opaque
//     producers (calls etc.) desugar to component accesses without a width
//     check — that width lives in the type system, not the syntax.
//  3. `else if` chains and missing `else`  →  every conditional's Next is
//     an explicit *Block (a one-statement block around the chained
//     conditional, or an empty block with a zero-width span at the end of
//     the conditional).
//  4. Group and address literals are validated and normalized: group
//     coordinate text loses sign-plus and redundant leading zeros; address
//     text must be `aleo1` plus 58 lowercase alphanumerics and is lowered
//     to canonical case.
//  5. `Self` inside a circuit: the Self type becomes the circuit's named
//     type; member access on `Self` becomes member access on the implicit
//     receiver `self`; a circuit init named `Self` takes the circuit's
//     name; member-initializer shorthand `{ x }` becomes `{ x: x }`. Any
//     Self form outside a circuit is an error.
//
// Every rule is idempotent (its output shape never matches its own
// precondition) and span-preserving (replacement nodes are minted at the
// spans of the constructs they stand in for).
package ast

import (
	"fmt"
	"strings"
)

// Canonicalizer desugars a tree into canonical form. The zero value is
// ready to use; a single instance must not be shared across concurrent
// traversals (it tracks the enclosing circuit).
type Canonicalizer struct {
	DefaultReducer
	circuit *Identifier // enclosing circuit name; nil at top level
}

var _ Reducer = (*Canonicalizer)(nil)

// NewCanonicalizer returns a fresh canonicalization pass.
func NewCanonicalizer() *Canonicalizer { return &Canonicalizer{} }

// Canonicalize runs the canonicalization pass over a program and returns
// the canonical tree, leaving the input untouched.
func Canonicalize(program *Program) (*Program, error) {
	return NewDirector(NewCanonicalizer()).ReduceProgram(program)
}

func (c *Canonicalizer) EnterCircuit(circuit *Circuit) { c.circuit = circuit.Name }
func (c *Canonicalizer) ExitCircuit(*Circuit)          { c.circuit = nil }

// ReduceAssign rewrites compound assignments (rule 1).
func (c *Canonicalizer) ReduceAssign(old *AssignStatement, target, value Expression) (Statement, error) {
	op, compound := old.Op.binaryOperator()
	if !compound {
		return c.DefaultReducer.ReduceAssign(old, target, value)
	}
	if !isPlaceExpression(target) {
		return nil, canonErrorf(ErrInvalidAssignTarget, old.Span,
			"the target of `%s` must be a variable or an access path, not %s", old.Op, describeExpression(target))
	}
	// The target reappears as the left operand; the copy mints fresh
	// identities at the original spans.
	operand := &BinaryExpression{
		Meta:  NewMeta(old.Span),
		Op:    op,
		Left:  cloneExpression(target),
		Right: value,
	}
	return &AssignStatement{Meta: old.Meta, Op: OpAssign, Target: target, Value: operand}, nil
}

// ReduceDefinition rewrites destructuring definitions (rule 2).
func (c *Canonicalizer) ReduceDefinition(old *DefinitionStatement, variables []*VariableName, typ Type, value Expression) ([]Statement, error) {
	if len(variables) <= 1 {
		return c.DefaultReducer.ReduceDefinition(old, variables, typ, value)
	}

	n := len(variables)
	var componentTypes []Type
	if typ != nil {
		tuple, ok := typ.(*TupleType)
		if !ok {
			return nil, canonErrorf(ErrTupleArityMismatch, old.Span,
				"%d names are bound but the declared type is not a tuple", n)
		}
		if len(tuple.Elements) != n {
			return nil, canonErrorf(ErrTupleArityMismatch, old.Span,
				"%d names are bound but the declared tuple type has %d components", n, len(tuple.Elements))
		}
		componentTypes = tuple.Elements
	}

	var componentValues []Expression
	if literal, ok := value.(*TupleInitExpression); ok {
		if len(literal.Elements) != n {
			return nil, canonErrorf(ErrTupleArityMismatch, old.Span,
				"%d names are bound but the initializer tuple has %d components", n, len(literal.Elements))
		}
		// Literal components move directly into the single definitions.
		componentValues = literal.Elements
	} else {
		componentValues = make([]Expression, n)
		for i := range componentValues {
			producer := value
			if i > 0 {
				producer = cloneExpression(value)
			}
			componentValues[i] = &TupleAccessExpression{
				Meta:  NewMeta(value.NodeSpan()),
				Tuple: producer,
				Index: uint32(i),
			}
		}
	}

	out := make([]Statement, n)
	for i, v := range variables {
		meta := NewMeta(old.Span)
		if i == 0 {
			meta = old.Meta // the first definition is the original construct
		}
		var componentType Type
		if componentTypes != nil {
			componentType = componentTypes[i]
		}
		out[i] = &DefinitionStatement{
			Meta:      meta,
			Declare:   old.Declare,
			Variables: []*VariableName{v},
			Type:      componentType,
			Value:     componentValues[i],
		}
	}
	return out, nil
}

// ReduceConditional gives every conditional an explicit else-block (rule 3).
func (c *Canonicalizer) ReduceConditional(old *ConditionalStatement, condition Expression, block *Block, next Statement) (Statement, error) {
	switch n := next.(type) {
	case nil:
		next = &Block{Meta: NewMeta(old.Span.end())}
	case *ConditionalStatement:
		next = &Block{Meta: NewMeta(n.NodeSpan()), Statements: []Statement{n}}
	}
	return &ConditionalStatement{Meta: old.Meta, Condition: condition, Block: block, Next: next}, nil
}

// ReduceGroup validates and normalizes group literals (rule 4).
func (c *Canonicalizer) ReduceGroup(old *GroupLiteral) (Expression, error) {
	switch v := old.Value.(type) {
	case GroupSingle:
		text, err := canonicalGroupText(v.Text, old.Span)
		if err != nil {
			return nil, err
		}
		if text == v.Text {
			return old, nil
		}
		return &GroupLiteral{Meta: old.Meta, Value: GroupSingle{Text: text}}, nil

	case GroupTuple:
		x, err := canonicalCoordinate(v.X, old.Span)
		if err != nil {
			return nil, err
		}
		y, err := canonicalCoordinate(v.Y, old.Span)
		if err != nil {
			return nil, err
		}
		if x == v.X && y == v.Y {
			return old, nil
		}
		return &GroupLiteral{Meta: old.Meta, Value: GroupTuple{X: x, Y: y}}, nil

	default:
		panic(fmt.Sprintf("ast: unknown group value %T", v))
	}
}

// ReduceAddress validates and normalizes address literals (rule 4).
func (c *Canonicalizer) ReduceAddress(old *AddressLiteral) (Expression, error) {
	canon, err := canonicalAddress(old.Value, old.Span)
	if err != nil {
		return nil, err
	}
	if canon == old.Value {
		return old, nil
	}
	return &AddressLiteral{Meta: old.Meta, Value: canon}, nil
}

// ReduceSelfType rewrites Self to the enclosing circuit's named type
// (rule 5).
func (c *Canonicalizer) ReduceSelfType(old *SelfType) (Type, error) {
	if c.circuit == nil {
		return nil, canonErrorf(ErrSelfOutsideCircuit, old.Span, "the `Self` type can only appear inside a circuit")
	}
	return &CircuitType{
		Meta: NewMeta(old.Span),
		Name: &Identifier{Meta: NewMeta(old.Span), Name: c.circuit.Name},
	}, nil
}

// ReduceMemberAccess rewrites member access on `Self` to member access on
// the implicit receiver (rule 5).
func (c *Canonicalizer) ReduceMemberAccess(old *MemberAccessExpression, inner Expression, name *Identifier) (Expression, error) {
	id, ok := inner.(*Identifier)
	if !ok || id.Name != "Self" {
		return c.DefaultReducer.ReduceMemberAccess(old, inner, name)
	}
	if c.circuit == nil {
		return nil, canonErrorf(ErrSelfOutsideCircuit, id.Span, "`Self` can only appear inside a circuit")
	}
	receiver := &Identifier{Meta: NewMeta(id.Span), Name: "self"}
	return &MemberAccessExpression{Meta: old.Meta, Inner: receiver, Name: name}, nil
}

// ReduceCircuitInit resolves a `Self { ... }` init to the circuit's name
// and expands member-initializer shorthand (rule 5).
func (c *Canonicalizer) ReduceCircuitInit(old *CircuitInitExpression, name *Identifier, members []*CircuitVariableInitializer) (Expression, error) {
	changed := false
	if name.Name == "Self" {
		if c.circuit == nil {
			return nil, canonErrorf(ErrSelfOutsideCircuit, name.Span, "`Self` can only appear inside a circuit")
		}
		name = &Identifier{Meta: NewMeta(name.Span), Name: c.circuit.Name}
		changed = true
	}
	expanded := members
	copied := false
	for i, m := range members {
		if m.Value != nil {
			continue
		}
		if !copied {
			expanded = append([]*CircuitVariableInitializer(nil), members...)
			copied = true
		}
		expanded[i] = &CircuitVariableInitializer{
			Meta: m.Meta,
			Name: m.Name,
			Value: &Identifier{
				Meta: NewMeta(m.Name.Span),
				Name: m.Name.Name,
			},
		}
		changed = true
	}
	if !changed {
		return c.DefaultReducer.ReduceCircuitInit(old, name, members)
	}
	return &CircuitInitExpression{Meta: old.Meta, Name: name, Members: expanded}, nil
}

// isPlaceExpression reports whether e is a valid assignment target: an
// identifier, or an access chain rooted at one.
func isPlaceExpression(e Expression) bool {
	for {
		switch x := e.(type) {
		case *Identifier:
			return true
		case *MemberAccessExpression:
			e = x.Inner
		case *ArrayAccessExpression:
			e = x.Array
		case *TupleAccessExpression:
			e = x.Tuple
		default:
			return false
		}
	}
}

// describeExpression names an expression variant for error messages.
func describeExpression(e Expression) string {
	switch e.(type) {
	case *BooleanLiteral, *IntegerLiteral, *FieldLiteral, *GroupLiteral, *AddressLiteral, *StringLiteral:
		return "a literal"
	case *CallExpression:
		return "a call result"
	case *UnaryExpression, *BinaryExpression, *TernaryExpression:
		return "an operator result"
	case *ArrayInlineExpression, *ArrayInitExpression, *TupleInitExpression, *CircuitInitExpression:
		return "a constructed value"
	default:
		return "an expression"
	}
}

// canonicalGroupText validates an optionally-signed decimal coordinate and
// returns its canonical spelling: no `+`, no redundant leading zeros, and
// no negative zero.
func canonicalGroupText(text string, span Span) (string, error) {
	raw := text
	negative := false
	switch {
	case strings.HasPrefix(raw, "-"):
		negative = true
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}
	if raw == "" {
		return "", canonErrorf(ErrMalformedLiteral, span, "group literal %q has no digits", text)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", canonErrorf(ErrMalformedLiteral, span, "group literal %q is not a decimal number", text)
		}
	}
	raw = strings.TrimLeft(raw, "0")
	if raw == "" {
		return "0", nil // any spelling of zero, including -0
	}
	if negative {
		return "-" + raw, nil
	}
	return raw, nil
}

func canonicalCoordinate(coord GroupCoordinate, span Span) (GroupCoordinate, error) {
	if coord.Kind != CoordinateNumber {
		// Sign hints and `_` carry no text.
		return GroupCoordinate{Kind: coord.Kind}, nil
	}
	text, err := canonicalGroupText(coord.Text, span)
	if err != nil {
		return GroupCoordinate{}, err
	}
	return GroupCoordinate{Kind: CoordinateNumber, Text: text}, nil
}

const (
	addressPrefix = "aleo1"
	addressLength = 63
)

// canonicalAddress validates an address literal and returns its canonical
// lowercase form.
func canonicalAddress(value string, span Span) (string, error) {
	canon := strings.ToLower(value)
	if !strings.HasPrefix(canon, addressPrefix) {
		return "", canonErrorf(ErrMalformedLiteral, span, "address %q does not start with %q", value, addressPrefix)
	}
	if len(canon) != addressLength {
		return "", canonErrorf(ErrMalformedLiteral, span, "address %q has %d characters, want %d", value, len(canon), addressLength)
	}
	for _, r := range canon[len(addressPrefix):] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", canonErrorf(ErrMalformedLiteral, span, "address %q contains %q", value, r)
		}
	}
	return canon, nil
}
