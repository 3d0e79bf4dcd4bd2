// fixtures_test.go
package ast

import (
	"strings"
	"testing"
)

// small builders so the tests read like the programs they describe

func at(line, col int) Span {
	return Span{Line: line, Col: col, EndLine: line, EndCol: col + 1}
}

func ident(name string) *Identifier {
	return &Identifier{Meta: NewMeta(at(1, 1)), Name: name}
}

func intLit(value string) *IntegerLiteral {
	return &IntegerLiteral{Meta: NewMeta(at(1, 1)), Width: U32, Value: value}
}

func block(stmts ...Statement) *Block {
	return &Block{Meta: NewMeta(at(1, 1)), Statements: stmts}
}

func fn(name string, body *Block) *Function {
	return &Function{Meta: NewMeta(at(1, 1)), Name: ident(name), Body: body}
}

func programOf(functions ...*Function) *Program {
	return &Program{Meta: NewMeta(Span{}), Name: "test", Functions: functions}
}

// wrapStmt builds a single-function program around one statement, the
// shape most canonicalization tests need.
func wrapStmt(s Statement) *Program {
	return programOf(fn("main", block(s)))
}

func mustCanonicalize(t *testing.T, p *Program) *Program {
	t.Helper()
	canon, err := Canonicalize(p)
	if err != nil {
		t.Fatalf("canonicalize error: %v", err)
	}
	return canon
}

// firstStmt digs out main's statement at index i from a wrapStmt program.
func firstStmt(t *testing.T, p *Program, i int) Statement {
	t.Helper()
	if len(p.Functions) == 0 || p.Functions[0].Body == nil {
		t.Fatalf("program has no function body")
	}
	stmts := p.Functions[0].Body.Statements
	if i >= len(stmts) {
		t.Fatalf("function body has %d statements, want index %d", len(stmts), i)
	}
	return stmts[i]
}

func wantCanonError(t *testing.T, p *Program, kind CanonErrorKind) *CanonError {
	t.Helper()
	_, err := Canonicalize(p)
	if err == nil {
		t.Fatalf("canonicalize succeeded, want %v error", kind)
	}
	ce, ok := err.(*CanonError)
	if !ok {
		t.Fatalf("canonicalize error is %T (%v), want *CanonError", err, err)
	}
	if ce.Kind != kind {
		t.Fatalf("canonicalize error kind = %v (%v), want %v", ce.Kind, ce, kind)
	}
	return ce
}

// validAddress is a well-formed canonical address literal.
var validAddress = addressPrefix + strings.Repeat("q", addressLength-len(addressPrefix))

// fullProgram builds a tree touching every node variant, for codec and
// traversal tests.
func fullProgram() *Program {
	circuit := &Circuit{
		Meta: NewMeta(at(3, 1)),
		Name: ident("Point"),
		Members: []*CircuitMember{
			{Meta: NewMeta(at(4, 3)), Name: ident("x"), Type: &IntegerType{Meta: NewMeta(at(4, 6)), Width: U32}},
			{Meta: NewMeta(at(5, 3)), Name: ident("tag"), Type: &FieldType{Meta: NewMeta(at(5, 8))}},
		},
		Functions: []*Function{
			{
				Meta:   NewMeta(at(6, 3)),
				Name:   ident("shift"),
				Output: &CircuitType{Meta: NewMeta(at(6, 20)), Name: ident("Point")},
				Parameters: []*FunctionParameter{
					{Meta: NewMeta(at(6, 12)), Name: ident("by"), Const: true, Type: &IntegerType{Meta: NewMeta(at(6, 16)), Width: U32}},
				},
				Body: block(&ReturnStatement{
					Meta: NewMeta(at(7, 5)),
					Value: &CircuitInitExpression{
						Meta: NewMeta(at(7, 12)),
						Name: ident("Point"),
						Members: []*CircuitVariableInitializer{
							{
								Meta: NewMeta(at(7, 20)),
								Name: ident("x"),
								Value: &BinaryExpression{
									Meta: NewMeta(at(7, 23)),
									Op:   BinaryAdd,
									Left: &MemberAccessExpression{Meta: NewMeta(at(7, 23)), Inner: ident("self"), Name: ident("x")},
									Right: &CastExpression{
										Meta:  NewMeta(at(7, 32)),
										Inner: ident("by"),
										Type:  &IntegerType{Meta: NewMeta(at(7, 38)), Width: U32},
									},
								},
							},
							{Meta: NewMeta(at(7, 44)), Name: ident("tag"), Value: &FieldLiteral{Meta: NewMeta(at(7, 49)), Value: "1"}},
						},
					},
				}),
			},
		},
	}

	main := &Function{
		Meta:        NewMeta(at(10, 1)),
		Name:        ident("main"),
		Annotations: []*Annotation{{Meta: NewMeta(at(9, 1)), Name: "test", Arguments: []string{"fast"}}},
		Parameters: []*FunctionParameter{
			{Meta: NewMeta(at(10, 15)), Name: ident("input"), Type: &ArrayType{
				Meta:       NewMeta(at(10, 22)),
				Element:    &BooleanType{Meta: NewMeta(at(10, 23))},
				Dimensions: []uint32{3, 2},
			}},
		},
		Output: &TupleType{Meta: NewMeta(at(10, 35)), Elements: []Type{
			&GroupType{Meta: NewMeta(at(10, 36))},
			&AddressType{Meta: NewMeta(at(10, 43))},
		}},
		Body: block(
			&DefinitionStatement{
				Meta:      NewMeta(at(11, 3)),
				Declare:   DeclareLet,
				Variables: []*VariableName{{Meta: NewMeta(at(11, 7)), Mutable: true, Identifier: ident("acc")}},
				Type:      &StringType{Meta: NewMeta(at(11, 12))},
				Value:     &StringLiteral{Meta: NewMeta(at(11, 21)), Value: "start"},
			},
			&IterationStatement{
				Meta:      NewMeta(at(12, 3)),
				Variable:  ident("i"),
				Start:     intLit("0"),
				Stop:      intLit("3"),
				Inclusive: true,
				Block: block(&AssignStatement{
					Meta:   NewMeta(at(13, 5)),
					Op:     OpAssign,
					Target: &ArrayAccessExpression{Meta: NewMeta(at(13, 5)), Array: ident("input"), Index: ident("i")},
					Value:  &UnaryExpression{Meta: NewMeta(at(13, 16)), Op: UnaryNot, Inner: &BooleanLiteral{Meta: NewMeta(at(13, 17)), Value: true}},
				}),
			},
			&ConditionalStatement{
				Meta:      NewMeta(at(14, 3)),
				Condition: &BinaryExpression{Meta: NewMeta(at(14, 6)), Op: BinaryLt, Left: ident("i"), Right: intLit("2")},
				Block: block(&ConsoleStatement{
					Meta: NewMeta(at(15, 5)),
					Kind: ConsoleLog,
					Arguments: []Expression{&TernaryExpression{
						Meta:      NewMeta(at(15, 17)),
						Condition: ident("flag"),
						IfTrue:    &StringLiteral{Meta: NewMeta(at(15, 24)), Value: "yes"},
						IfFalse:   &StringLiteral{Meta: NewMeta(at(15, 32)), Value: "no"},
					}},
				}),
				Next: block(),
			},
			&ReturnStatement{
				Meta: NewMeta(at(17, 3)),
				Value: &TupleInitExpression{Meta: NewMeta(at(17, 10)), Elements: []Expression{
					&GroupLiteral{Meta: NewMeta(at(17, 11)), Value: GroupTuple{
						X: GroupCoordinate{Kind: CoordinateNumber, Text: "1"},
						Y: GroupCoordinate{Kind: CoordinateSignHigh},
					}},
					&AddressLiteral{Meta: NewMeta(at(17, 22)), Value: validAddress},
				}},
			},
		),
	}

	helper := &Function{
		Meta: NewMeta(at(20, 1)),
		Name: ident("helper"),
		Body: block(
			&DefinitionStatement{
				Meta:      NewMeta(at(21, 3)),
				Declare:   DeclareConst,
				Variables: []*VariableName{{Meta: NewMeta(at(21, 9)), Identifier: ident("grid")}},
				Value: &ArrayInitExpression{
					Meta:       NewMeta(at(21, 16)),
					Element:    &GroupLiteral{Meta: NewMeta(at(21, 17)), Value: GroupSingle{Text: "5"}},
					Dimensions: []uint32{4},
				},
			},
			&ConsoleStatement{
				Meta: NewMeta(at(22, 3)),
				Kind: ConsoleAssert,
				Arguments: []Expression{&CallExpression{
					Meta:     NewMeta(at(22, 18)),
					Function: ident("check"),
					Arguments: []Expression{
						&ArrayInlineExpression{Meta: NewMeta(at(22, 24)), Elements: []Expression{intLit("1"), intLit("2")}},
						&TupleAccessExpression{Meta: NewMeta(at(22, 35)), Tuple: ident("pairs"), Index: 1},
					},
				}},
			},
		),
	}

	return &Program{
		Meta: NewMeta(Span{}),
		Name: "full",
		Imports: []*ImportStatement{
			{
				Meta:  NewMeta(at(1, 1)),
				Path:  []string{"core", "unstable"},
				Alias: "u",
				Symbols: []*ImportSymbol{
					{Meta: NewMeta(at(1, 25)), Name: "blake2s", Alias: "hash"},
					{Meta: NewMeta(at(1, 40)), Name: "pedersen"},
				},
			},
		},
		Circuits:  []*Circuit{circuit},
		Functions: []*Function{main, helper},
		GlobalConsts: []*DefinitionStatement{
			{
				Meta:      NewMeta(at(2, 1)),
				Declare:   DeclareConst,
				Variables: []*VariableName{{Meta: NewMeta(at(2, 7)), Identifier: ident("LIMIT")}},
				Type:      &IntegerType{Meta: NewMeta(at(2, 14)), Width: U32},
				Value:     intLit("8"),
			},
		},
	}
}
