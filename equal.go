// equal.go — structural equality over trees
//
// Equality here deliberately EXCLUDES node identity and spans: two trees
// are equal iff every node's variant, literal values, names, flags and
// nested structure match, regardless of which compilation minted them or
// where in a file they were parsed. Including Meta would make round-trip
// and idempotence comparisons fail whenever a pass mints a node, which is
// exactly when those comparisons matter. Everything else participates,
// including ordering of every sequence.
package ast

// Equal reports structural equality of two programs, identity and spans
// excluded.
func (p *Program) Equal(q *Program) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.Name != q.Name ||
		len(p.Imports) != len(q.Imports) ||
		len(p.Circuits) != len(q.Circuits) ||
		len(p.Functions) != len(q.Functions) ||
		len(p.GlobalConsts) != len(q.GlobalConsts) {
		return false
	}
	for i := range p.Imports {
		if !equalImport(p.Imports[i], q.Imports[i]) {
			return false
		}
	}
	for i := range p.Circuits {
		if !equalCircuit(p.Circuits[i], q.Circuits[i]) {
			return false
		}
	}
	for i := range p.Functions {
		if !equalFunction(p.Functions[i], q.Functions[i]) {
			return false
		}
	}
	for i := range p.GlobalConsts {
		if !EqualStatement(p.GlobalConsts[i], q.GlobalConsts[i]) {
			return false
		}
	}
	return true
}

func equalImport(a, b *ImportStatement) bool {
	if a.Alias != b.Alias || len(a.Path) != len(b.Path) || len(a.Symbols) != len(b.Symbols) {
		return false
	}
	for i := range a.Path {
		if a.Path[i] != b.Path[i] {
			return false
		}
	}
	for i := range a.Symbols {
		if a.Symbols[i].Name != b.Symbols[i].Name || a.Symbols[i].Alias != b.Symbols[i].Alias {
			return false
		}
	}
	return true
}

func equalCircuit(a, b *Circuit) bool {
	if !equalIdentifier(a.Name, b.Name) || len(a.Members) != len(b.Members) || len(a.Functions) != len(b.Functions) {
		return false
	}
	for i := range a.Members {
		if !equalIdentifier(a.Members[i].Name, b.Members[i].Name) || !EqualType(a.Members[i].Type, b.Members[i].Type) {
			return false
		}
	}
	for i := range a.Functions {
		if !equalFunction(a.Functions[i], b.Functions[i]) {
			return false
		}
	}
	return true
}

func equalFunction(a, b *Function) bool {
	if !equalIdentifier(a.Name, b.Name) ||
		len(a.Annotations) != len(b.Annotations) ||
		len(a.Parameters) != len(b.Parameters) ||
		!EqualType(a.Output, b.Output) {
		return false
	}
	for i := range a.Annotations {
		if !equalAnnotation(a.Annotations[i], b.Annotations[i]) {
			return false
		}
	}
	for i := range a.Parameters {
		pa, pb := a.Parameters[i], b.Parameters[i]
		if pa.Const != pb.Const || !equalIdentifier(pa.Name, pb.Name) || !EqualType(pa.Type, pb.Type) {
			return false
		}
	}
	return EqualStatement(a.Body, b.Body)
}

func equalAnnotation(a, b *Annotation) bool {
	if a.Name != b.Name || len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for i := range a.Arguments {
		if a.Arguments[i] != b.Arguments[i] {
			return false
		}
	}
	return true
}

func equalIdentifier(a, b *Identifier) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name
}

// EqualStatement reports structural equality of two statements, identity
// and spans excluded. Both nil is equal; a nil and a non-nil is not.
func EqualStatement(a, b Statement) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *ReturnStatement:
		b, ok := b.(*ReturnStatement)
		return ok && EqualExpression(a.Value, b.Value)

	case *DefinitionStatement:
		b, ok := b.(*DefinitionStatement)
		if !ok || a.Declare != b.Declare || len(a.Variables) != len(b.Variables) {
			return false
		}
		for i := range a.Variables {
			va, vb := a.Variables[i], b.Variables[i]
			if va.Mutable != vb.Mutable || !equalIdentifier(va.Identifier, vb.Identifier) {
				return false
			}
		}
		return EqualType(a.Type, b.Type) && EqualExpression(a.Value, b.Value)

	case *AssignStatement:
		b, ok := b.(*AssignStatement)
		return ok && a.Op == b.Op && EqualExpression(a.Target, b.Target) && EqualExpression(a.Value, b.Value)

	case *ConditionalStatement:
		b, ok := b.(*ConditionalStatement)
		return ok && EqualExpression(a.Condition, b.Condition) &&
			EqualStatement(a.Block, b.Block) && EqualStatement(a.Next, b.Next)

	case *IterationStatement:
		b, ok := b.(*IterationStatement)
		return ok && a.Inclusive == b.Inclusive &&
			equalIdentifier(a.Variable, b.Variable) &&
			EqualExpression(a.Start, b.Start) && EqualExpression(a.Stop, b.Stop) &&
			EqualStatement(a.Block, b.Block)

	case *ConsoleStatement:
		b, ok := b.(*ConsoleStatement)
		if !ok || a.Kind != b.Kind || len(a.Arguments) != len(b.Arguments) {
			return false
		}
		for i := range a.Arguments {
			if !EqualExpression(a.Arguments[i], b.Arguments[i]) {
				return false
			}
		}
		return true

	case *Block:
		b, ok := b.(*Block)
		if !ok || len(a.Statements) != len(b.Statements) {
			return false
		}
		for i := range a.Statements {
			if !EqualStatement(a.Statements[i], b.Statements[i]) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// EqualExpression reports structural equality of two expressions, identity
// and spans excluded. Both nil is equal; a nil and a non-nil is not.
func EqualExpression(a, b Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *Identifier:
		b, ok := b.(*Identifier)
		return ok && a.Name == b.Name

	case *BooleanLiteral:
		b, ok := b.(*BooleanLiteral)
		return ok && a.Value == b.Value

	case *IntegerLiteral:
		b, ok := b.(*IntegerLiteral)
		return ok && a.Width == b.Width && a.Value == b.Value

	case *FieldLiteral:
		b, ok := b.(*FieldLiteral)
		return ok && a.Value == b.Value

	case *GroupLiteral:
		b, ok := b.(*GroupLiteral)
		return ok && a.Value == b.Value // GroupValue forms are comparable values

	case *AddressLiteral:
		b, ok := b.(*AddressLiteral)
		return ok && a.Value == b.Value

	case *StringLiteral:
		b, ok := b.(*StringLiteral)
		return ok && a.Value == b.Value

	case *UnaryExpression:
		b, ok := b.(*UnaryExpression)
		return ok && a.Op == b.Op && EqualExpression(a.Inner, b.Inner)

	case *BinaryExpression:
		b, ok := b.(*BinaryExpression)
		return ok && a.Op == b.Op && EqualExpression(a.Left, b.Left) && EqualExpression(a.Right, b.Right)

	case *TernaryExpression:
		b, ok := b.(*TernaryExpression)
		return ok && EqualExpression(a.Condition, b.Condition) &&
			EqualExpression(a.IfTrue, b.IfTrue) && EqualExpression(a.IfFalse, b.IfFalse)

	case *CallExpression:
		b, ok := b.(*CallExpression)
		return ok && EqualExpression(a.Function, b.Function) && equalExpressions(a.Arguments, b.Arguments)

	case *ArrayInlineExpression:
		b, ok := b.(*ArrayInlineExpression)
		return ok && equalExpressions(a.Elements, b.Elements)

	case *ArrayInitExpression:
		b, ok := b.(*ArrayInitExpression)
		return ok && equalDims(a.Dimensions, b.Dimensions) && EqualExpression(a.Element, b.Element)

	case *TupleInitExpression:
		b, ok := b.(*TupleInitExpression)
		return ok && equalExpressions(a.Elements, b.Elements)

	case *CircuitInitExpression:
		b, ok := b.(*CircuitInitExpression)
		if !ok || !equalIdentifier(a.Name, b.Name) || len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			ma, mb := a.Members[i], b.Members[i]
			if !equalIdentifier(ma.Name, mb.Name) || !EqualExpression(ma.Value, mb.Value) {
				return false
			}
		}
		return true

	case *ArrayAccessExpression:
		b, ok := b.(*ArrayAccessExpression)
		return ok && EqualExpression(a.Array, b.Array) && EqualExpression(a.Index, b.Index)

	case *TupleAccessExpression:
		b, ok := b.(*TupleAccessExpression)
		return ok && a.Index == b.Index && EqualExpression(a.Tuple, b.Tuple)

	case *MemberAccessExpression:
		b, ok := b.(*MemberAccessExpression)
		return ok && EqualExpression(a.Inner, b.Inner) && equalIdentifier(a.Name, b.Name)

	case *CastExpression:
		b, ok := b.(*CastExpression)
		return ok && EqualExpression(a.Inner, b.Inner) && EqualType(a.Type, b.Type)

	default:
		return false
	}
}

func equalExpressions(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpression(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualType reports structural equality of two types, identity and spans
// excluded. Both nil is equal; a nil and a non-nil is not.
func EqualType(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *BooleanType:
		_, ok := b.(*BooleanType)
		return ok
	case *FieldType:
		_, ok := b.(*FieldType)
		return ok
	case *GroupType:
		_, ok := b.(*GroupType)
		return ok
	case *AddressType:
		_, ok := b.(*AddressType)
		return ok
	case *StringType:
		_, ok := b.(*StringType)
		return ok
	case *IntegerType:
		b, ok := b.(*IntegerType)
		return ok && a.Width == b.Width
	case *ArrayType:
		b, ok := b.(*ArrayType)
		return ok && equalDims(a.Dimensions, b.Dimensions) && EqualType(a.Element, b.Element)
	case *TupleType:
		b, ok := b.(*TupleType)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !EqualType(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case *CircuitType:
		b, ok := b.(*CircuitType)
		return ok && equalIdentifier(a.Name, b.Name)
	case *SelfType:
		_, ok := b.(*SelfType)
		return ok
	default:
		return false
	}
}

func equalDims(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
