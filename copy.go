// copy.go — deep copies with fresh identities
//
// Ownership in a tree is exclusive: the same node pointer must not appear
// in two positions. When a canonicalization rule needs a second occurrence
// of an expression (`x += e` becomes `x = x + e`, so the target reappears
// inside the value), it takes a deep copy. The copy mints a FRESH identity
// for every node — those are genuinely new constructs — while keeping the
// original spans, so diagnostics on the copy still point at the source text
// it came from.
package ast

import "fmt"

// cloneMeta mints a new identity at the original span.
func cloneMeta(m Meta) Meta { return NewMeta(m.Span) }

func cloneIdentifier(id *Identifier) *Identifier {
	return &Identifier{Meta: cloneMeta(id.Meta), Name: id.Name}
}

func cloneExpressions(exprs []Expression) []Expression {
	if exprs == nil {
		return nil
	}
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		out[i] = cloneExpression(e)
	}
	return out
}

// cloneExpression deep-copies an expression with fresh identities.
func cloneExpression(e Expression) Expression {
	switch e := e.(type) {
	case *Identifier:
		return cloneIdentifier(e)
	case *BooleanLiteral:
		return &BooleanLiteral{Meta: cloneMeta(e.Meta), Value: e.Value}
	case *IntegerLiteral:
		return &IntegerLiteral{Meta: cloneMeta(e.Meta), Width: e.Width, Value: e.Value}
	case *FieldLiteral:
		return &FieldLiteral{Meta: cloneMeta(e.Meta), Value: e.Value}
	case *GroupLiteral:
		return &GroupLiteral{Meta: cloneMeta(e.Meta), Value: e.Value}
	case *AddressLiteral:
		return &AddressLiteral{Meta: cloneMeta(e.Meta), Value: e.Value}
	case *StringLiteral:
		return &StringLiteral{Meta: cloneMeta(e.Meta), Value: e.Value}
	case *UnaryExpression:
		return &UnaryExpression{Meta: cloneMeta(e.Meta), Op: e.Op, Inner: cloneExpression(e.Inner)}
	case *BinaryExpression:
		return &BinaryExpression{Meta: cloneMeta(e.Meta), Op: e.Op, Left: cloneExpression(e.Left), Right: cloneExpression(e.Right)}
	case *TernaryExpression:
		return &TernaryExpression{Meta: cloneMeta(e.Meta), Condition: cloneExpression(e.Condition), IfTrue: cloneExpression(e.IfTrue), IfFalse: cloneExpression(e.IfFalse)}
	case *CallExpression:
		return &CallExpression{Meta: cloneMeta(e.Meta), Function: cloneExpression(e.Function), Arguments: cloneExpressions(e.Arguments)}
	case *ArrayInlineExpression:
		return &ArrayInlineExpression{Meta: cloneMeta(e.Meta), Elements: cloneExpressions(e.Elements)}
	case *ArrayInitExpression:
		return &ArrayInitExpression{Meta: cloneMeta(e.Meta), Element: cloneExpression(e.Element), Dimensions: cloneDims(e.Dimensions)}
	case *TupleInitExpression:
		return &TupleInitExpression{Meta: cloneMeta(e.Meta), Elements: cloneExpressions(e.Elements)}
	case *CircuitInitExpression:
		members := make([]*CircuitVariableInitializer, len(e.Members))
		for i, m := range e.Members {
			var value Expression
			if m.Value != nil {
				value = cloneExpression(m.Value)
			}
			members[i] = &CircuitVariableInitializer{Meta: cloneMeta(m.Meta), Name: cloneIdentifier(m.Name), Value: value}
		}
		return &CircuitInitExpression{Meta: cloneMeta(e.Meta), Name: cloneIdentifier(e.Name), Members: members}
	case *ArrayAccessExpression:
		return &ArrayAccessExpression{Meta: cloneMeta(e.Meta), Array: cloneExpression(e.Array), Index: cloneExpression(e.Index)}
	case *TupleAccessExpression:
		return &TupleAccessExpression{Meta: cloneMeta(e.Meta), Tuple: cloneExpression(e.Tuple), Index: e.Index}
	case *MemberAccessExpression:
		return &MemberAccessExpression{Meta: cloneMeta(e.Meta), Inner: cloneExpression(e.Inner), Name: cloneIdentifier(e.Name)}
	case *CastExpression:
		return &CastExpression{Meta: cloneMeta(e.Meta), Inner: cloneExpression(e.Inner), Type: cloneType(e.Type)}
	default:
		panic(fmt.Sprintf("ast: unknown expression variant %T", e))
	}
}

// cloneType deep-copies a type with fresh identities.
func cloneType(t Type) Type {
	switch t := t.(type) {
	case *BooleanType:
		return &BooleanType{Meta: cloneMeta(t.Meta)}
	case *FieldType:
		return &FieldType{Meta: cloneMeta(t.Meta)}
	case *GroupType:
		return &GroupType{Meta: cloneMeta(t.Meta)}
	case *AddressType:
		return &AddressType{Meta: cloneMeta(t.Meta)}
	case *StringType:
		return &StringType{Meta: cloneMeta(t.Meta)}
	case *IntegerType:
		return &IntegerType{Meta: cloneMeta(t.Meta), Width: t.Width}
	case *ArrayType:
		return &ArrayType{Meta: cloneMeta(t.Meta), Element: cloneType(t.Element), Dimensions: cloneDims(t.Dimensions)}
	case *TupleType:
		elements := make([]Type, len(t.Elements))
		for i, el := range t.Elements {
			elements[i] = cloneType(el)
		}
		return &TupleType{Meta: cloneMeta(t.Meta), Elements: elements}
	case *CircuitType:
		return &CircuitType{Meta: cloneMeta(t.Meta), Name: cloneIdentifier(t.Name)}
	case *SelfType:
		return &SelfType{Meta: cloneMeta(t.Meta)}
	default:
		panic(fmt.Sprintf("ast: unknown type variant %T", t))
	}
}

func cloneDims(dims []uint32) []uint32 {
	if dims == nil {
		return nil
	}
	out := make([]uint32, len(dims))
	copy(out, dims)
	return out
}
