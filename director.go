// director.go — the post-order traversal engine driving a Reducer
//
// WHAT THIS MODULE DOES
// =====================
// The Director walks a tree in strict post-order: for every composite node
// it first reduces each direct child (left to right, in declaration order),
// then hands the original node and the rebuilt children to the matching
// Reducer operation, and uses that operation's result as the rebuilt node.
// Program order is: imports, then circuits (name, member variables, member
// functions), then functions (annotations, parameters, output type, body
// statements in sequence), then global constants.
//
// The switches over the closed variant sets are exhaustive; an unknown
// dynamic type is a programming error (a variant was added without updating
// this file) and panics rather than being silently skipped. The Director
// itself raises no errors: every error observed here originated in a
// Reducer operation and is returned unchanged, aborting the remainder of
// the traversal. The input tree is never mutated — positions whose children
// changed are rebuilt, everything else is shared with the input.
package ast

import "fmt"

// Director drives a Reducer over a tree bottom-up.
type Director struct {
	reducer Reducer
}

// NewDirector returns a Director for the given reducer.
func NewDirector(r Reducer) *Director {
	return &Director{reducer: r}
}

// ReduceProgram reduces a whole program and returns the rebuilt root.
func (d *Director) ReduceProgram(program *Program) (*Program, error) {
	imports := make([]*ImportStatement, len(program.Imports))
	for i, imp := range program.Imports {
		reduced, err := d.reduceImport(imp)
		if err != nil {
			return nil, err
		}
		imports[i] = reduced
	}

	circuits := make([]*Circuit, len(program.Circuits))
	for i, c := range program.Circuits {
		reduced, err := d.ReduceCircuit(c)
		if err != nil {
			return nil, err
		}
		circuits[i] = reduced
	}

	functions := make([]*Function, len(program.Functions))
	for i, f := range program.Functions {
		reduced, err := d.ReduceFunction(f)
		if err != nil {
			return nil, err
		}
		functions[i] = reduced
	}

	var globals []*DefinitionStatement
	for _, g := range program.GlobalConsts {
		stmts, err := d.reduceDefinition(g)
		if err != nil {
			return nil, err
		}
		for _, s := range stmts {
			def, ok := s.(*DefinitionStatement)
			if !ok {
				panic(fmt.Sprintf("ast: reducer produced %T for a global constant", s))
			}
			globals = append(globals, def)
		}
	}

	return d.reducer.ReduceProgram(program, imports, circuits, functions, globals)
}

func (d *Director) reduceImport(imp *ImportStatement) (*ImportStatement, error) {
	symbols := make([]*ImportSymbol, len(imp.Symbols))
	for i, sym := range imp.Symbols {
		reduced, err := d.reducer.ReduceImportSymbol(sym)
		if err != nil {
			return nil, err
		}
		symbols[i] = reduced
	}
	return d.reducer.ReduceImport(imp, symbols)
}

// ReduceCircuit reduces one circuit definition. The EnterCircuit hook fires
// before any child is visited; ExitCircuit fires after ReduceCircuit, also
// on the error path.
func (d *Director) ReduceCircuit(c *Circuit) (*Circuit, error) {
	d.reducer.EnterCircuit(c)
	defer d.reducer.ExitCircuit(c)

	name, err := d.reducer.ReduceIdentifier(c.Name)
	if err != nil {
		return nil, err
	}
	members := make([]*CircuitMember, len(c.Members))
	for i, m := range c.Members {
		reduced, err := d.reduceCircuitMember(m)
		if err != nil {
			return nil, err
		}
		members[i] = reduced
	}
	functions := make([]*Function, len(c.Functions))
	for i, f := range c.Functions {
		reduced, err := d.ReduceFunction(f)
		if err != nil {
			return nil, err
		}
		functions[i] = reduced
	}
	return d.reducer.ReduceCircuit(c, name, members, functions)
}

func (d *Director) reduceCircuitMember(m *CircuitMember) (*CircuitMember, error) {
	name, err := d.reducer.ReduceIdentifier(m.Name)
	if err != nil {
		return nil, err
	}
	typ, err := d.ReduceType(m.Type)
	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceCircuitMember(m, name, typ)
}

// ReduceFunction reduces one function definition.
func (d *Director) ReduceFunction(f *Function) (*Function, error) {
	name, err := d.reducer.ReduceIdentifier(f.Name)
	if err != nil {
		return nil, err
	}
	annotations := make([]*Annotation, len(f.Annotations))
	for i, a := range f.Annotations {
		reduced, err := d.reducer.ReduceAnnotation(a)
		if err != nil {
			return nil, err
		}
		annotations[i] = reduced
	}
	params := make([]*FunctionParameter, len(f.Parameters))
	for i, p := range f.Parameters {
		reduced, err := d.reduceFunctionParameter(p)
		if err != nil {
			return nil, err
		}
		params[i] = reduced
	}
	var output Type
	if f.Output != nil {
		output, err = d.ReduceType(f.Output)
		if err != nil {
			return nil, err
		}
	}
	body, err := d.ReduceBlock(f.Body)
	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceFunction(f, name, annotations, params, output, body)
}

func (d *Director) reduceFunctionParameter(p *FunctionParameter) (*FunctionParameter, error) {
	name, err := d.reducer.ReduceIdentifier(p.Name)
	if err != nil {
		return nil, err
	}
	typ, err := d.ReduceType(p.Type)
	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceFunctionParameter(p, name, typ)
}

// ReduceBlock reduces a block, splicing any statement fan-out (a definition
// rewritten into several) into the statement sequence in place.
func (d *Director) ReduceBlock(b *Block) (*Block, error) {
	statements := make([]Statement, 0, len(b.Statements))
	for _, s := range b.Statements {
		reduced, err := d.ReduceStatement(s)
		if err != nil {
			return nil, err
		}
		statements = append(statements, reduced...)
	}
	return d.reducer.ReduceBlock(b, statements)
}

// ReduceStatement reduces one statement. The result is a one-element slice
// for every variant except definitions, which may fan out.
func (d *Director) ReduceStatement(s Statement) ([]Statement, error) {
	switch s := s.(type) {
	case *ReturnStatement:
		var value Expression
		var err error
		if s.Value != nil {
			value, err = d.ReduceExpression(s.Value)
			if err != nil {
				return nil, err
			}
		}
		reduced, err := d.reducer.ReduceReturn(s, value)
		if err != nil {
			return nil, err
		}
		return []Statement{reduced}, nil

	case *DefinitionStatement:
		return d.reduceDefinition(s)

	case *AssignStatement:
		target, err := d.ReduceExpression(s.Target)
		if err != nil {
			return nil, err
		}
		value, err := d.ReduceExpression(s.Value)
		if err != nil {
			return nil, err
		}
		reduced, err := d.reducer.ReduceAssign(s, target, value)
		if err != nil {
			return nil, err
		}
		return []Statement{reduced}, nil

	case *ConditionalStatement:
		reduced, err := d.reduceConditional(s)
		if err != nil {
			return nil, err
		}
		return []Statement{reduced}, nil

	case *IterationStatement:
		variable, err := d.reducer.ReduceIdentifier(s.Variable)
		if err != nil {
			return nil, err
		}
		start, err := d.ReduceExpression(s.Start)
		if err != nil {
			return nil, err
		}
		stop, err := d.ReduceExpression(s.Stop)
		if err != nil {
			return nil, err
		}
		block, err := d.ReduceBlock(s.Block)
		if err != nil {
			return nil, err
		}
		reduced, err := d.reducer.ReduceIteration(s, variable, start, stop, block)
		if err != nil {
			return nil, err
		}
		return []Statement{reduced}, nil

	case *ConsoleStatement:
		args := make([]Expression, len(s.Arguments))
		for i, a := range s.Arguments {
			reduced, err := d.ReduceExpression(a)
			if err != nil {
				return nil, err
			}
			args[i] = reduced
		}
		reduced, err := d.reducer.ReduceConsole(s, args)
		if err != nil {
			return nil, err
		}
		return []Statement{reduced}, nil

	case *Block:
		reduced, err := d.ReduceBlock(s)
		if err != nil {
			return nil, err
		}
		return []Statement{reduced}, nil

	default:
		panic(fmt.Sprintf("ast: unknown statement variant %T", s))
	}
}

func (d *Director) reduceDefinition(s *DefinitionStatement) ([]Statement, error) {
	variables := make([]*VariableName, len(s.Variables))
	for i, v := range s.Variables {
		ident, err := d.reducer.ReduceIdentifier(v.Identifier)
		if err != nil {
			return nil, err
		}
		reduced, err := d.reducer.ReduceVariableName(v, ident)
		if err != nil {
			return nil, err
		}
		variables[i] = reduced
	}
	var typ Type
	var err error
	if s.Type != nil {
		typ, err = d.ReduceType(s.Type)
		if err != nil {
			return nil, err
		}
	}
	value, err := d.ReduceExpression(s.Value)
	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceDefinition(s, variables, typ, value)
}

// reduceConditional handles the Next chain: nil stays nil, a block reduces
// as a block, a chained conditional recurses.
func (d *Director) reduceConditional(s *ConditionalStatement) (Statement, error) {
	condition, err := d.ReduceExpression(s.Condition)
	if err != nil {
		return nil, err
	}
	block, err := d.ReduceBlock(s.Block)
	if err != nil {
		return nil, err
	}
	var next Statement
	switch n := s.Next.(type) {
	case nil:
	case *Block:
		next, err = d.ReduceBlock(n)
	case *ConditionalStatement:
		next, err = d.reduceConditional(n)
	default:
		panic(fmt.Sprintf("ast: %T in conditional else position", n))
	}
	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceConditional(s, condition, block, next)
}

// ReduceExpression reduces one expression bottom-up, then applies the
// generic ReduceExpression post-hook.
func (d *Director) ReduceExpression(e Expression) (Expression, error) {
	var reduced Expression
	var err error

	switch e := e.(type) {
	case *Identifier:
		reduced, err = d.reducer.ReduceIdentifier(e)
	case *BooleanLiteral:
		reduced, err = d.reducer.ReduceBoolean(e)
	case *IntegerLiteral:
		reduced, err = d.reducer.ReduceInteger(e)
	case *FieldLiteral:
		reduced, err = d.reducer.ReduceField(e)
	case *GroupLiteral:
		reduced, err = d.reducer.ReduceGroup(e)
	case *AddressLiteral:
		reduced, err = d.reducer.ReduceAddress(e)
	case *StringLiteral:
		reduced, err = d.reducer.ReduceString(e)

	case *UnaryExpression:
		var inner Expression
		inner, err = d.ReduceExpression(e.Inner)
		if err == nil {
			reduced, err = d.reducer.ReduceUnary(e, inner)
		}

	case *BinaryExpression:
		var left, right Expression
		left, err = d.ReduceExpression(e.Left)
		if err == nil {
			right, err = d.ReduceExpression(e.Right)
		}
		if err == nil {
			reduced, err = d.reducer.ReduceBinary(e, left, right)
		}

	case *TernaryExpression:
		var condition, ifTrue, ifFalse Expression
		condition, err = d.ReduceExpression(e.Condition)
		if err == nil {
			ifTrue, err = d.ReduceExpression(e.IfTrue)
		}
		if err == nil {
			ifFalse, err = d.ReduceExpression(e.IfFalse)
		}
		if err == nil {
			reduced, err = d.reducer.ReduceTernary(e, condition, ifTrue, ifFalse)
		}

	case *CallExpression:
		var fn Expression
		fn, err = d.ReduceExpression(e.Function)
		if err == nil {
			var args []Expression
			args, err = d.reduceExpressions(e.Arguments)
			if err == nil {
				reduced, err = d.reducer.ReduceCall(e, fn, args)
			}
		}

	case *ArrayInlineExpression:
		var elements []Expression
		elements, err = d.reduceExpressions(e.Elements)
		if err == nil {
			reduced, err = d.reducer.ReduceArrayInline(e, elements)
		}

	case *ArrayInitExpression:
		var element Expression
		element, err = d.ReduceExpression(e.Element)
		if err == nil {
			reduced, err = d.reducer.ReduceArrayInit(e, element)
		}

	case *TupleInitExpression:
		var elements []Expression
		elements, err = d.reduceExpressions(e.Elements)
		if err == nil {
			reduced, err = d.reducer.ReduceTupleInit(e, elements)
		}

	case *CircuitInitExpression:
		reduced, err = d.reduceCircuitInit(e)

	case *ArrayAccessExpression:
		var array, index Expression
		array, err = d.ReduceExpression(e.Array)
		if err == nil {
			index, err = d.ReduceExpression(e.Index)
		}
		if err == nil {
			reduced, err = d.reducer.ReduceArrayAccess(e, array, index)
		}

	case *TupleAccessExpression:
		var tuple Expression
		tuple, err = d.ReduceExpression(e.Tuple)
		if err == nil {
			reduced, err = d.reducer.ReduceTupleAccess(e, tuple)
		}

	case *MemberAccessExpression:
		var inner Expression
		inner, err = d.ReduceExpression(e.Inner)
		if err == nil {
			var name *Identifier
			name, err = d.reducer.ReduceIdentifier(e.Name)
			if err == nil {
				reduced, err = d.reducer.ReduceMemberAccess(e, inner, name)
			}
		}

	case *CastExpression:
		var inner Expression
		inner, err = d.ReduceExpression(e.Inner)
		if err == nil {
			var typ Type
			typ, err = d.ReduceType(e.Type)
			if err == nil {
				reduced, err = d.reducer.ReduceCast(e, inner, typ)
			}
		}

	default:
		panic(fmt.Sprintf("ast: unknown expression variant %T", e))
	}

	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceExpression(e, reduced)
}

func (d *Director) reduceExpressions(exprs []Expression) ([]Expression, error) {
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		reduced, err := d.ReduceExpression(e)
		if err != nil {
			return nil, err
		}
		out[i] = reduced
	}
	return out, nil
}

func (d *Director) reduceCircuitInit(e *CircuitInitExpression) (Expression, error) {
	name, err := d.reducer.ReduceIdentifier(e.Name)
	if err != nil {
		return nil, err
	}
	members := make([]*CircuitVariableInitializer, len(e.Members))
	for i, m := range e.Members {
		mname, err := d.reducer.ReduceIdentifier(m.Name)
		if err != nil {
			return nil, err
		}
		var value Expression
		if m.Value != nil {
			value, err = d.ReduceExpression(m.Value)
			if err != nil {
				return nil, err
			}
		}
		reduced, err := d.reducer.ReduceCircuitVariableInitializer(m, mname, value)
		if err != nil {
			return nil, err
		}
		members[i] = reduced
	}
	return d.reducer.ReduceCircuitInit(e, name, members)
}

// ReduceType reduces one type bottom-up, then applies the generic
// ReduceType post-hook.
func (d *Director) ReduceType(t Type) (Type, error) {
	var reduced Type
	var err error

	switch t := t.(type) {
	case *BooleanType, *FieldType, *GroupType, *AddressType, *StringType, *IntegerType:
		reduced, err = d.reducer.ReduceScalarType(t)

	case *ArrayType:
		var element Type
		element, err = d.ReduceType(t.Element)
		if err == nil {
			reduced, err = d.reducer.ReduceArrayType(t, element)
		}

	case *TupleType:
		elements := make([]Type, len(t.Elements))
		for i, el := range t.Elements {
			elements[i], err = d.ReduceType(el)
			if err != nil {
				break
			}
		}
		if err == nil {
			reduced, err = d.reducer.ReduceTupleType(t, elements)
		}

	case *CircuitType:
		var name *Identifier
		name, err = d.reducer.ReduceIdentifier(t.Name)
		if err == nil {
			reduced, err = d.reducer.ReduceCircuitType(t, name)
		}

	case *SelfType:
		reduced, err = d.reducer.ReduceSelfType(t)

	default:
		panic(fmt.Sprintf("ast: unknown type variant %T", t))
	}

	if err != nil {
		return nil, err
	}
	return d.reducer.ReduceType(t, reduced)
}
