// reducer.go — the Reducer capability and its pass-through default
//
// WHAT THIS MODULE DOES
// =====================
// A Reducer declares one transformation operation per node variant. Each
// operation receives the ORIGINAL node plus the ALREADY-REDUCED versions of
// its direct children and returns the rebuilt node for that position (or an
// error, which aborts the whole traversal — see director.go). Operations on
// expression variants return Expression, statement variants return
// Statement, and so on: a pass can change a node's variant but never its
// category.
//
// Two deliberate irregularities:
//
//   - ReduceDefinition returns []Statement, because desugaring a
//     destructuring definition expands one statement into several. Every
//     other statement operation returns exactly one statement; the Director
//     splices definition fan-out into the enclosing block.
//
//   - EnterCircuit / ExitCircuit are traversal hooks, not variant
//     operations. The Director calls EnterCircuit BEFORE a circuit's
//     children are reduced, so a pass that needs the enclosing circuit
//     while rewriting its members (the canonicalizer rewrites Self) can
//     observe it in time; ReduceCircuit itself runs after the children,
//     like every other operation.
//
// DefaultReducer implements every operation as identity-preserving
// reconstruction: if no child changed it returns the original node pointer
// untouched, otherwise it rebuilds the node around the new children KEEPING
// the original Meta (same construct, new children — see node.go for the
// identity rules). Concrete passes embed DefaultReducer and override only
// the operations they rewrite.
package ast

// Reducer declares one operation per node variant, plus the circuit
// traversal hooks. Implementations should embed DefaultReducer.
type Reducer interface {
	// Program level.
	ReduceProgram(old *Program, imports []*ImportStatement, circuits []*Circuit, functions []*Function, globals []*DefinitionStatement) (*Program, error)
	ReduceImport(old *ImportStatement, symbols []*ImportSymbol) (*ImportStatement, error)
	ReduceImportSymbol(old *ImportSymbol) (*ImportSymbol, error)
	ReduceCircuit(old *Circuit, name *Identifier, members []*CircuitMember, functions []*Function) (*Circuit, error)
	ReduceCircuitMember(old *CircuitMember, name *Identifier, typ Type) (*CircuitMember, error)
	ReduceFunction(old *Function, name *Identifier, annotations []*Annotation, params []*FunctionParameter, output Type, body *Block) (*Function, error)
	ReduceFunctionParameter(old *FunctionParameter, name *Identifier, typ Type) (*FunctionParameter, error)
	ReduceAnnotation(old *Annotation) (*Annotation, error)

	// Traversal hooks (see package comment).
	EnterCircuit(c *Circuit)
	ExitCircuit(c *Circuit)

	// Statements.
	ReduceReturn(old *ReturnStatement, value Expression) (Statement, error)
	ReduceDefinition(old *DefinitionStatement, variables []*VariableName, typ Type, value Expression) ([]Statement, error)
	ReduceVariableName(old *VariableName, ident *Identifier) (*VariableName, error)
	ReduceAssign(old *AssignStatement, target, value Expression) (Statement, error)
	ReduceConditional(old *ConditionalStatement, condition Expression, block *Block, next Statement) (Statement, error)
	ReduceIteration(old *IterationStatement, variable *Identifier, start, stop Expression, block *Block) (Statement, error)
	ReduceConsole(old *ConsoleStatement, args []Expression) (Statement, error)
	ReduceBlock(old *Block, statements []Statement) (*Block, error)

	// Expressions. ReduceExpression is a generic post-hook the Director
	// applies after the matching variant operation.
	ReduceExpression(old, reduced Expression) (Expression, error)
	ReduceIdentifier(old *Identifier) (*Identifier, error)
	ReduceBoolean(old *BooleanLiteral) (Expression, error)
	ReduceInteger(old *IntegerLiteral) (Expression, error)
	ReduceField(old *FieldLiteral) (Expression, error)
	ReduceGroup(old *GroupLiteral) (Expression, error)
	ReduceAddress(old *AddressLiteral) (Expression, error)
	ReduceString(old *StringLiteral) (Expression, error)
	ReduceUnary(old *UnaryExpression, inner Expression) (Expression, error)
	ReduceBinary(old *BinaryExpression, left, right Expression) (Expression, error)
	ReduceTernary(old *TernaryExpression, condition, ifTrue, ifFalse Expression) (Expression, error)
	ReduceCall(old *CallExpression, fn Expression, args []Expression) (Expression, error)
	ReduceArrayInline(old *ArrayInlineExpression, elements []Expression) (Expression, error)
	ReduceArrayInit(old *ArrayInitExpression, element Expression) (Expression, error)
	ReduceTupleInit(old *TupleInitExpression, elements []Expression) (Expression, error)
	ReduceCircuitInit(old *CircuitInitExpression, name *Identifier, members []*CircuitVariableInitializer) (Expression, error)
	ReduceCircuitVariableInitializer(old *CircuitVariableInitializer, name *Identifier, value Expression) (*CircuitVariableInitializer, error)
	ReduceArrayAccess(old *ArrayAccessExpression, array, index Expression) (Expression, error)
	ReduceTupleAccess(old *TupleAccessExpression, tuple Expression) (Expression, error)
	ReduceMemberAccess(old *MemberAccessExpression, inner Expression, name *Identifier) (Expression, error)
	ReduceCast(old *CastExpression, inner Expression, typ Type) (Expression, error)

	// Types. ReduceType is the generic post-hook; the scalar kinds
	// (boolean, field, group, address, string, integer) are childless and
	// share one operation.
	ReduceType(old, reduced Type) (Type, error)
	ReduceScalarType(old Type) (Type, error)
	ReduceArrayType(old *ArrayType, element Type) (Type, error)
	ReduceTupleType(old *TupleType, elements []Type) (Type, error)
	ReduceCircuitType(old *CircuitType, name *Identifier) (Type, error)
	ReduceSelfType(old *SelfType) (Type, error)
}

// DefaultReducer is the identity pass: every operation reconstructs the
// node from the reduced children, keeping the original Meta, and returns
// the original pointer when nothing changed.
type DefaultReducer struct{}

var _ Reducer = DefaultReducer{}

// sameExprs reports whether two expression slices hold identical pointers.
func sameExprs(a, b []Expression) bool {
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

func sameTypes(a, b []Type) bool {
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

func sameStmts(a, b []Statement) bool {
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

func samePtrs[T any](a, b []*T) bool {
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

func (DefaultReducer) ReduceProgram(old *Program, imports []*ImportStatement, circuits []*Circuit, functions []*Function, globals []*DefinitionStatement) (*Program, error) {
	if samePtrs(imports, old.Imports) && samePtrs(circuits, old.Circuits) &&
		samePtrs(functions, old.Functions) && samePtrs(globals, old.GlobalConsts) {
		return old, nil
	}
	return &Program{Meta: old.Meta, Name: old.Name, Imports: imports, Circuits: circuits, Functions: functions, GlobalConsts: globals}, nil
}

func (DefaultReducer) ReduceImport(old *ImportStatement, symbols []*ImportSymbol) (*ImportStatement, error) {
	if samePtrs(symbols, old.Symbols) {
		return old, nil
	}
	return &ImportStatement{Meta: old.Meta, Path: old.Path, Alias: old.Alias, Symbols: symbols}, nil
}

func (DefaultReducer) ReduceImportSymbol(old *ImportSymbol) (*ImportSymbol, error) {
	return old, nil
}

func (DefaultReducer) ReduceCircuit(old *Circuit, name *Identifier, members []*CircuitMember, functions []*Function) (*Circuit, error) {
	if name == old.Name && samePtrs(members, old.Members) && samePtrs(functions, old.Functions) {
		return old, nil
	}
	return &Circuit{Meta: old.Meta, Name: name, Members: members, Functions: functions}, nil
}

func (DefaultReducer) ReduceCircuitMember(old *CircuitMember, name *Identifier, typ Type) (*CircuitMember, error) {
	if name == old.Name && typ == old.Type {
		return old, nil
	}
	return &CircuitMember{Meta: old.Meta, Name: name, Type: typ}, nil
}

func (DefaultReducer) ReduceFunction(old *Function, name *Identifier, annotations []*Annotation, params []*FunctionParameter, output Type, body *Block) (*Function, error) {
	if name == old.Name && samePtrs(annotations, old.Annotations) &&
		samePtrs(params, old.Parameters) && output == old.Output && body == old.Body {
		return old, nil
	}
	return &Function{Meta: old.Meta, Name: name, Annotations: annotations, Parameters: params, Output: output, Body: body}, nil
}

func (DefaultReducer) ReduceFunctionParameter(old *FunctionParameter, name *Identifier, typ Type) (*FunctionParameter, error) {
	if name == old.Name && typ == old.Type {
		return old, nil
	}
	return &FunctionParameter{Meta: old.Meta, Name: name, Const: old.Const, Type: typ}, nil
}

func (DefaultReducer) ReduceAnnotation(old *Annotation) (*Annotation, error) {
	return old, nil
}

func (DefaultReducer) EnterCircuit(*Circuit) {}
func (DefaultReducer) ExitCircuit(*Circuit)  {}

func (DefaultReducer) ReduceReturn(old *ReturnStatement, value Expression) (Statement, error) {
	if value == old.Value {
		return old, nil
	}
	return &ReturnStatement{Meta: old.Meta, Value: value}, nil
}

func (DefaultReducer) ReduceDefinition(old *DefinitionStatement, variables []*VariableName, typ Type, value Expression) ([]Statement, error) {
	if samePtrs(variables, old.Variables) && typ == old.Type && value == old.Value {
		return []Statement{old}, nil
	}
	return []Statement{&DefinitionStatement{Meta: old.Meta, Declare: old.Declare, Variables: variables, Type: typ, Value: value}}, nil
}

func (DefaultReducer) ReduceVariableName(old *VariableName, ident *Identifier) (*VariableName, error) {
	if ident == old.Identifier {
		return old, nil
	}
	return &VariableName{Meta: old.Meta, Mutable: old.Mutable, Identifier: ident}, nil
}

func (DefaultReducer) ReduceAssign(old *AssignStatement, target, value Expression) (Statement, error) {
	if target == old.Target && value == old.Value {
		return old, nil
	}
	return &AssignStatement{Meta: old.Meta, Op: old.Op, Target: target, Value: value}, nil
}

func (DefaultReducer) ReduceConditional(old *ConditionalStatement, condition Expression, block *Block, next Statement) (Statement, error) {
	if condition == old.Condition && block == old.Block && next == old.Next {
		return old, nil
	}
	return &ConditionalStatement{Meta: old.Meta, Condition: condition, Block: block, Next: next}, nil
}

func (DefaultReducer) ReduceIteration(old *IterationStatement, variable *Identifier, start, stop Expression, block *Block) (Statement, error) {
	if variable == old.Variable && start == old.Start && stop == old.Stop && block == old.Block {
		return old, nil
	}
	return &IterationStatement{Meta: old.Meta, Variable: variable, Start: start, Stop: stop, Inclusive: old.Inclusive, Block: block}, nil
}

func (DefaultReducer) ReduceConsole(old *ConsoleStatement, args []Expression) (Statement, error) {
	if sameExprs(args, old.Arguments) {
		return old, nil
	}
	return &ConsoleStatement{Meta: old.Meta, Kind: old.Kind, Arguments: args}, nil
}

func (DefaultReducer) ReduceBlock(old *Block, statements []Statement) (*Block, error) {
	if sameStmts(statements, old.Statements) {
		return old, nil
	}
	return &Block{Meta: old.Meta, Statements: statements}, nil
}

func (DefaultReducer) ReduceExpression(old, reduced Expression) (Expression, error) {
	return reduced, nil
}

func (DefaultReducer) ReduceIdentifier(old *Identifier) (*Identifier, error) {
	return old, nil
}

func (DefaultReducer) ReduceBoolean(old *BooleanLiteral) (Expression, error) { return old, nil }
func (DefaultReducer) ReduceInteger(old *IntegerLiteral) (Expression, error) { return old, nil }
func (DefaultReducer) ReduceField(old *FieldLiteral) (Expression, error)     { return old, nil }
func (DefaultReducer) ReduceGroup(old *GroupLiteral) (Expression, error)     { return old, nil }
func (DefaultReducer) ReduceAddress(old *AddressLiteral) (Expression, error) { return old, nil }
func (DefaultReducer) ReduceString(old *StringLiteral) (Expression, error)   { return old, nil }

func (DefaultReducer) ReduceUnary(old *UnaryExpression, inner Expression) (Expression, error) {
	if inner == old.Inner {
		return old, nil
	}
	return &UnaryExpression{Meta: old.Meta, Op: old.Op, Inner: inner}, nil
}

func (DefaultReducer) ReduceBinary(old *BinaryExpression, left, right Expression) (Expression, error) {
	if left == old.Left && right == old.Right {
		return old, nil
	}
	return &BinaryExpression{Meta: old.Meta, Op: old.Op, Left: left, Right: right}, nil
}

func (DefaultReducer) ReduceTernary(old *TernaryExpression, condition, ifTrue, ifFalse Expression) (Expression, error) {
	if condition == old.Condition && ifTrue == old.IfTrue && ifFalse == old.IfFalse {
		return old, nil
	}
	return &TernaryExpression{Meta: old.Meta, Condition: condition, IfTrue: ifTrue, IfFalse: ifFalse}, nil
}

func (DefaultReducer) ReduceCall(old *CallExpression, fn Expression, args []Expression) (Expression, error) {
	if fn == old.Function && sameExprs(args, old.Arguments) {
		return old, nil
	}
	return &CallExpression{Meta: old.Meta, Function: fn, Arguments: args}, nil
}

func (DefaultReducer) ReduceArrayInline(old *ArrayInlineExpression, elements []Expression) (Expression, error) {
	if sameExprs(elements, old.Elements) {
		return old, nil
	}
	return &ArrayInlineExpression{Meta: old.Meta, Elements: elements}, nil
}

func (DefaultReducer) ReduceArrayInit(old *ArrayInitExpression, element Expression) (Expression, error) {
	if element == old.Element {
		return old, nil
	}
	return &ArrayInitExpression{Meta: old.Meta, Element: element, Dimensions: old.Dimensions}, nil
}

func (DefaultReducer) ReduceTupleInit(old *TupleInitExpression, elements []Expression) (Expression, error) {
	if sameExprs(elements, old.Elements) {
		return old, nil
	}
	return &TupleInitExpression{Meta: old.Meta, Elements: elements}, nil
}

func (DefaultReducer) ReduceCircuitInit(old *CircuitInitExpression, name *Identifier, members []*CircuitVariableInitializer) (Expression, error) {
	if name == old.Name && samePtrs(members, old.Members) {
		return old, nil
	}
	return &CircuitInitExpression{Meta: old.Meta, Name: name, Members: members}, nil
}

func (DefaultReducer) ReduceCircuitVariableInitializer(old *CircuitVariableInitializer, name *Identifier, value Expression) (*CircuitVariableInitializer, error) {
	if name == old.Name && value == old.Value {
		return old, nil
	}
	return &CircuitVariableInitializer{Meta: old.Meta, Name: name, Value: value}, nil
}

func (DefaultReducer) ReduceArrayAccess(old *ArrayAccessExpression, array, index Expression) (Expression, error) {
	if array == old.Array && index == old.Index {
		return old, nil
	}
	return &ArrayAccessExpression{Meta: old.Meta, Array: array, Index: index}, nil
}

func (DefaultReducer) ReduceTupleAccess(old *TupleAccessExpression, tuple Expression) (Expression, error) {
	if tuple == old.Tuple {
		return old, nil
	}
	return &TupleAccessExpression{Meta: old.Meta, Tuple: tuple, Index: old.Index}, nil
}

func (DefaultReducer) ReduceMemberAccess(old *MemberAccessExpression, inner Expression, name *Identifier) (Expression, error) {
	if inner == old.Inner && name == old.Name {
		return old, nil
	}
	return &MemberAccessExpression{Meta: old.Meta, Inner: inner, Name: name}, nil
}

func (DefaultReducer) ReduceCast(old *CastExpression, inner Expression, typ Type) (Expression, error) {
	if inner == old.Inner && typ == old.Type {
		return old, nil
	}
	return &CastExpression{Meta: old.Meta, Inner: inner, Type: typ}, nil
}

func (DefaultReducer) ReduceType(old, reduced Type) (Type, error) {
	return reduced, nil
}

func (DefaultReducer) ReduceScalarType(old Type) (Type, error) { return old, nil }

func (DefaultReducer) ReduceArrayType(old *ArrayType, element Type) (Type, error) {
	if element == old.Element {
		return old, nil
	}
	return &ArrayType{Meta: old.Meta, Element: element, Dimensions: old.Dimensions}, nil
}

func (DefaultReducer) ReduceTupleType(old *TupleType, elements []Type) (Type, error) {
	if sameTypes(elements, old.Elements) {
		return old, nil
	}
	return &TupleType{Meta: old.Meta, Elements: elements}, nil
}

func (DefaultReducer) ReduceCircuitType(old *CircuitType, name *Identifier) (Type, error) {
	if name == old.Name {
		return old, nil
	}
	return &CircuitType{Meta: old.Meta, Name: name}, nil
}

func (DefaultReducer) ReduceSelfType(old *SelfType) (Type, error) { return old, nil }
