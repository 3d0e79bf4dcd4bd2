// canonical_test.go
package ast

import (
	"strings"
	"testing"
)

// rule 1: compound assignment
// ===========================

func Test_Canonical_CompoundAssign(t *testing.T) {
	target := ident("x")
	stmt := &AssignStatement{
		Meta:   NewMeta(at(3, 5)),
		Op:     OpAddAssign,
		Target: target,
		Value:  intLit("1"),
	}
	canon := mustCanonicalize(t, wrapStmt(stmt))

	out, ok := firstStmt(t, canon, 0).(*AssignStatement)
	if !ok {
		t.Fatalf("rewrite produced %T, want *AssignStatement", firstStmt(t, canon, 0))
	}
	if out.Op != OpAssign {
		t.Fatalf("op = %v, want plain assignment", out.Op)
	}
	if out.Meta != stmt.Meta {
		t.Fatalf("statement identity changed: %+v -> %+v", stmt.Meta, out.Meta)
	}
	bin, ok := out.Value.(*BinaryExpression)
	if !ok {
		t.Fatalf("value is %T, want *BinaryExpression", out.Value)
	}
	if bin.Op != BinaryAdd {
		t.Fatalf("operator = %v, want +", bin.Op)
	}
	left, ok := bin.Left.(*Identifier)
	if !ok || left.Name != "x" {
		t.Fatalf("left operand = %#v, want identifier x", bin.Left)
	}
	// The left operand is a copy of the target: same span, fresh identity.
	if left.NodeID() == target.NodeID() {
		t.Fatalf("left operand shares the target's identity %d", left.NodeID())
	}
	if left.NodeSpan() != target.NodeSpan() {
		t.Fatalf("left operand span = %v, want %v", left.NodeSpan(), target.NodeSpan())
	}
}

func Test_Canonical_CompoundAssign_AccessChainTarget(t *testing.T) {
	target := &ArrayAccessExpression{
		Meta:  NewMeta(at(2, 1)),
		Array: &MemberAccessExpression{Meta: NewMeta(at(2, 1)), Inner: ident("c"), Name: ident("data")},
		Index: intLit("0"),
	}
	stmt := &AssignStatement{Meta: NewMeta(at(2, 1)), Op: OpMulAssign, Target: target, Value: intLit("2")}
	canon := mustCanonicalize(t, wrapStmt(stmt))

	out := firstStmt(t, canon, 0).(*AssignStatement)
	if out.Op != OpAssign {
		t.Fatalf("op = %v, want plain assignment", out.Op)
	}
	if out.Value.(*BinaryExpression).Op != BinaryMul {
		t.Fatalf("operator = %v, want *", out.Value.(*BinaryExpression).Op)
	}
}

func Test_Canonical_CompoundAssign_BadTarget(t *testing.T) {
	stmt := &AssignStatement{
		Meta:   NewMeta(at(7, 2)),
		Op:     OpAddAssign,
		Target: &CallExpression{Meta: NewMeta(at(7, 2)), Function: ident("f")},
		Value:  intLit("1"),
	}
	ce := wantCanonError(t, wrapStmt(stmt), ErrInvalidAssignTarget)
	if ce.Span.Line != 7 {
		t.Fatalf("error span = %v, want the statement's line 7", ce.Span)
	}
}

func Test_Canonical_PlainAssign_AnyTargetPasses(t *testing.T) {
	// Plain = is not rewritten, so its target is not checked here.
	stmt := &AssignStatement{Meta: NewMeta(at(1, 1)), Op: OpAssign, Target: ident("x"), Value: intLit("1")}
	canon := mustCanonicalize(t, wrapStmt(stmt))
	if got := firstStmt(t, canon, 0).(*AssignStatement); got.Op != OpAssign {
		t.Fatalf("op = %v, want plain assignment", got.Op)
	}
}

// rule 2: destructuring
// =====================

func destructure(names []string, typ Type, value Expression) *DefinitionStatement {
	vars := make([]*VariableName, len(names))
	for i, n := range names {
		vars[i] = &VariableName{Meta: NewMeta(at(1, 5+i)), Identifier: ident(n)}
	}
	return &DefinitionStatement{Meta: NewMeta(at(1, 1)), Declare: DeclareLet, Variables: vars, Type: typ, Value: value}
}

func Test_Canonical_Destructure_OpaqueProducer(t *testing.T) {
	call := &CallExpression{Meta: NewMeta(at(1, 14)), Function: ident("pair")}
	def := destructure([]string{"a", "b"}, nil, call)
	canon := mustCanonicalize(t, wrapStmt(def))

	body := canon.Functions[0].Body.Statements
	if len(body) != 2 {
		t.Fatalf("destructuring produced %d statements, want 2", len(body))
	}
	for i, want := range []string{"a", "b"} {
		d, ok := body[i].(*DefinitionStatement)
		if !ok {
			t.Fatalf("statement %d is %T, want *DefinitionStatement", i, body[i])
		}
		if len(d.Variables) != 1 || d.Variables[0].Identifier.Name != want {
			t.Fatalf("statement %d binds %+v, want single name %q", i, d.Variables, want)
		}
		acc, ok := d.Value.(*TupleAccessExpression)
		if !ok {
			t.Fatalf("statement %d value is %T, want *TupleAccessExpression", i, d.Value)
		}
		if acc.Index != uint32(i) {
			t.Fatalf("statement %d accesses component %d, want %d", i, acc.Index, i)
		}
		if _, ok := acc.Tuple.(*CallExpression); !ok {
			t.Fatalf("statement %d producer is %T, want the call", i, acc.Tuple)
		}
	}

	// First definition is the original construct; the second is synthesized.
	if body[0].NodeID() != def.NodeID() {
		t.Fatalf("first definition identity %d, want original %d", body[0].NodeID(), def.NodeID())
	}
	if body[1].NodeID() == def.NodeID() {
		t.Fatalf("second definition reused the original identity")
	}
	if body[1].NodeSpan() != def.NodeSpan() {
		t.Fatalf("second definition span = %v, want original %v", body[1].NodeSpan(), def.NodeSpan())
	}

	// The two producers must not share nodes.
	p0 := body[0].(*DefinitionStatement).Value.(*TupleAccessExpression).Tuple
	p1 := body[1].(*DefinitionStatement).Value.(*TupleAccessExpression).Tuple
	if p0.NodeID() == p1.NodeID() {
		t.Fatalf("both component accesses share producer node %d", p0.NodeID())
	}
}

func Test_Canonical_Destructure_TupleLiteral(t *testing.T) {
	lit := &TupleInitExpression{Meta: NewMeta(at(1, 14)), Elements: []Expression{intLit("1"), intLit("2")}}
	def := destructure([]string{"a", "b"}, nil, lit)
	canon := mustCanonicalize(t, wrapStmt(def))

	body := canon.Functions[0].Body.Statements
	if len(body) != 2 {
		t.Fatalf("destructuring produced %d statements, want 2", len(body))
	}
	// Literal components move straight into the definitions.
	for i := range body {
		v := body[i].(*DefinitionStatement).Value
		if v.NodeID() != lit.Elements[i].NodeID() {
			t.Fatalf("component %d was rebuilt, want the literal element reused", i)
		}
	}
}

func Test_Canonical_Destructure_LiteralArityMismatch(t *testing.T) {
	lit := &TupleInitExpression{Meta: NewMeta(at(1, 14)), Elements: []Expression{intLit("1"), intLit("2")}}
	def := destructure([]string{"a", "b", "c"}, nil, lit)
	wantCanonError(t, wrapStmt(def), ErrTupleArityMismatch)
}

func Test_Canonical_Destructure_DeclaredTypeDistributes(t *testing.T) {
	tt := &TupleType{Meta: NewMeta(at(1, 9)), Elements: []Type{
		&IntegerType{Meta: NewMeta(at(1, 10)), Width: U32},
		&BooleanType{Meta: NewMeta(at(1, 15))},
	}}
	call := &CallExpression{Meta: NewMeta(at(1, 22)), Function: ident("pair")}
	def := destructure([]string{"a", "b"}, tt, call)
	canon := mustCanonicalize(t, wrapStmt(def))

	body := canon.Functions[0].Body.Statements
	if _, ok := body[0].(*DefinitionStatement).Type.(*IntegerType); !ok {
		t.Fatalf("first component type is %T, want *IntegerType", body[0].(*DefinitionStatement).Type)
	}
	if _, ok := body[1].(*DefinitionStatement).Type.(*BooleanType); !ok {
		t.Fatalf("second component type is %T, want *BooleanType", body[1].(*DefinitionStatement).Type)
	}
}

func Test_Canonical_Destructure_DeclaredTypeArity(t *testing.T) {
	tt := &TupleType{Meta: NewMeta(at(1, 9)), Elements: []Type{&BooleanType{Meta: NewMeta(at(1, 10))}}}
	def := destructure([]string{"a", "b"}, tt, &CallExpression{Meta: NewMeta(at(1, 20)), Function: ident("pair")})
	wantCanonError(t, wrapStmt(def), ErrTupleArityMismatch)
}

func Test_Canonical_Destructure_DeclaredTypeNotTuple(t *testing.T) {
	def := destructure([]string{"a", "b"}, &BooleanType{Meta: NewMeta(at(1, 9))},
		&CallExpression{Meta: NewMeta(at(1, 20)), Function: ident("pair")})
	wantCanonError(t, wrapStmt(def), ErrTupleArityMismatch)
}

func Test_Canonical_SingleDefinition_Untouched(t *testing.T) {
	def := destructure([]string{"a"}, nil, intLit("1"))
	canon := mustCanonicalize(t, wrapStmt(def))
	out := firstStmt(t, canon, 0).(*DefinitionStatement)
	if out.NodeID() != def.NodeID() {
		t.Fatalf("single-name definition was rebuilt")
	}
}

// rule 3: conditionals
// ====================

func Test_Canonical_Conditional_MissingElse(t *testing.T) {
	cond := &ConditionalStatement{
		Meta:      NewMeta(Span{Line: 2, Col: 1, EndLine: 4, EndCol: 2}),
		Condition: ident("flag"),
		Block:     block(),
	}
	canon := mustCanonicalize(t, wrapStmt(cond))

	out := firstStmt(t, canon, 0).(*ConditionalStatement)
	b, ok := out.Next.(*Block)
	if !ok {
		t.Fatalf("next is %T, want an empty *Block", out.Next)
	}
	if len(b.Statements) != 0 {
		t.Fatalf("synthesized else-block has %d statements, want 0", len(b.Statements))
	}
	want := Span{Line: 4, Col: 2, EndLine: 4, EndCol: 2}
	if b.NodeSpan() != want {
		t.Fatalf("else-block span = %v, want zero-width %v", b.NodeSpan(), want)
	}
}

func Test_Canonical_Conditional_ElseIfChain(t *testing.T) {
	inner := &ConditionalStatement{Meta: NewMeta(at(3, 8)), Condition: ident("b"), Block: block()}
	outer := &ConditionalStatement{Meta: NewMeta(at(2, 1)), Condition: ident("a"), Block: block(), Next: inner}
	canon := mustCanonicalize(t, wrapStmt(outer))

	out := firstStmt(t, canon, 0).(*ConditionalStatement)
	wrapper, ok := out.Next.(*Block)
	if !ok {
		t.Fatalf("chained conditional not wrapped: next is %T", out.Next)
	}
	if len(wrapper.Statements) != 1 {
		t.Fatalf("wrapper block has %d statements, want 1", len(wrapper.Statements))
	}
	chained, ok := wrapper.Statements[0].(*ConditionalStatement)
	if !ok {
		t.Fatalf("wrapped statement is %T, want the chained conditional", wrapper.Statements[0])
	}
	// The inner conditional also got an explicit else.
	if _, ok := chained.Next.(*Block); !ok {
		t.Fatalf("inner conditional next is %T, want *Block", chained.Next)
	}
	if wrapper.NodeSpan() != inner.NodeSpan() {
		t.Fatalf("wrapper span = %v, want the chained conditional's %v", wrapper.NodeSpan(), inner.NodeSpan())
	}
}

func Test_Canonical_Conditional_ExplicitElseKept(t *testing.T) {
	els := block(&ReturnStatement{Meta: NewMeta(at(3, 3))})
	cond := &ConditionalStatement{Meta: NewMeta(at(2, 1)), Condition: ident("a"), Block: block(), Next: els}
	canon := mustCanonicalize(t, wrapStmt(cond))

	out := firstStmt(t, canon, 0).(*ConditionalStatement)
	got, ok := out.Next.(*Block)
	if !ok || got.NodeID() != els.NodeID() {
		t.Fatalf("explicit else-block was replaced: %#v", out.Next)
	}
}

// rule 4: literal normalization
// =============================

func Test_Canonical_GroupSingle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"7", "7"},
		{"+7", "7"},
		{"007", "7"},
		{"-007", "-7"},
		{"-0", "0"},
		{"+0", "0"},
		{"0", "0"},
	}
	for _, tc := range cases {
		lit := &GroupLiteral{Meta: NewMeta(at(1, 1)), Value: GroupSingle{Text: tc.in}}
		stmt := &ConsoleStatement{Meta: NewMeta(at(1, 1)), Kind: ConsoleLog, Arguments: []Expression{lit}}
		canon := mustCanonicalize(t, wrapStmt(stmt))

		out := firstStmt(t, canon, 0).(*ConsoleStatement).Arguments[0].(*GroupLiteral)
		if got := out.Value.(GroupSingle).Text; got != tc.want {
			t.Fatalf("group %q normalized to %q, want %q", tc.in, got, tc.want)
		}
		if out.NodeSpan() != lit.NodeSpan() {
			t.Fatalf("group %q span changed: %v -> %v", tc.in, lit.NodeSpan(), out.NodeSpan())
		}
	}
}

func Test_Canonical_GroupSingle_Malformed(t *testing.T) {
	for _, text := range []string{"", "+", "-", "12x", "0x1f", "1.5"} {
		lit := &GroupLiteral{Meta: NewMeta(at(1, 1)), Value: GroupSingle{Text: text}}
		stmt := &ConsoleStatement{Meta: NewMeta(at(1, 1)), Kind: ConsoleLog, Arguments: []Expression{lit}}
		wantCanonError(t, wrapStmt(stmt), ErrMalformedLiteral)
	}
}

func Test_Canonical_GroupTuple(t *testing.T) {
	lit := &GroupLiteral{Meta: NewMeta(at(1, 1)), Value: GroupTuple{
		X: GroupCoordinate{Kind: CoordinateNumber, Text: "+03"},
		Y: GroupCoordinate{Kind: CoordinateInferred, Text: "stale"},
	}}
	stmt := &ConsoleStatement{Meta: NewMeta(at(1, 1)), Kind: ConsoleLog, Arguments: []Expression{lit}}
	canon := mustCanonicalize(t, wrapStmt(stmt))

	out := firstStmt(t, canon, 0).(*ConsoleStatement).Arguments[0].(*GroupLiteral).Value.(GroupTuple)
	if out.X != (GroupCoordinate{Kind: CoordinateNumber, Text: "3"}) {
		t.Fatalf("x coordinate = %+v, want number 3", out.X)
	}
	// Non-numeric coordinates carry no text in canonical form.
	if out.Y != (GroupCoordinate{Kind: CoordinateInferred}) {
		t.Fatalf("y coordinate = %+v, want bare inferred", out.Y)
	}
}

func Test_Canonical_Address(t *testing.T) {
	upper := strings.ToUpper(validAddress[:len(addressPrefix)]) + validAddress[len(addressPrefix):]
	lit := &AddressLiteral{Meta: NewMeta(at(1, 1)), Value: upper}
	stmt := &ConsoleStatement{Meta: NewMeta(at(1, 1)), Kind: ConsoleLog, Arguments: []Expression{lit}}
	canon := mustCanonicalize(t, wrapStmt(stmt))

	out := firstStmt(t, canon, 0).(*ConsoleStatement).Arguments[0].(*AddressLiteral)
	if out.Value != validAddress {
		t.Fatalf("address normalized to %q, want %q", out.Value, validAddress)
	}
}

func Test_Canonical_Address_Malformed(t *testing.T) {
	bad := []string{
		"bleo1" + strings.Repeat("q", 58), // wrong prefix
		addressPrefix + strings.Repeat("q", 57),                  // too short
		addressPrefix + strings.Repeat("q", 59),                  // too long
		addressPrefix + strings.Repeat("q", 57) + "!",            // bad character
	}
	for _, value := range bad {
		lit := &AddressLiteral{Meta: NewMeta(at(1, 1)), Value: value}
		stmt := &ConsoleStatement{Meta: NewMeta(at(1, 1)), Kind: ConsoleLog, Arguments: []Expression{lit}}
		wantCanonError(t, wrapStmt(stmt), ErrMalformedLiteral)
	}
}

// rule 5: Self
// ============

// circuitWith wraps a method into a one-circuit program named Point.
func circuitWith(method *Function) *Program {
	c := &Circuit{
		Meta:      NewMeta(at(1, 1)),
		Name:      ident("Point"),
		Members:   []*CircuitMember{{Meta: NewMeta(at(2, 3)), Name: ident("x"), Type: &IntegerType{Meta: NewMeta(at(2, 6)), Width: U32}}},
		Functions: []*Function{method},
	}
	return &Program{Meta: NewMeta(Span{}), Name: "test", Circuits: []*Circuit{c}}
}

func Test_Canonical_SelfType(t *testing.T) {
	method := fn("origin", block(&ReturnStatement{
		Meta: NewMeta(at(3, 5)),
		Value: &CircuitInitExpression{Meta: NewMeta(at(3, 12)), Name: ident("Point"), Members: []*CircuitVariableInitializer{
			{Meta: NewMeta(at(3, 20)), Name: ident("x"), Value: intLit("0")},
		}},
	}))
	method.Output = &SelfType{Meta: NewMeta(at(3, 1))}
	canon := mustCanonicalize(t, circuitWith(method))

	out := canon.Circuits[0].Functions[0].Output
	ct, ok := out.(*CircuitType)
	if !ok {
		t.Fatalf("output type is %T, want *CircuitType", out)
	}
	if ct.Name.Name != "Point" {
		t.Fatalf("output resolves to %q, want the enclosing circuit Point", ct.Name.Name)
	}
}

func Test_Canonical_SelfMemberAccess(t *testing.T) {
	access := &MemberAccessExpression{Meta: NewMeta(at(3, 12)), Inner: ident("Self"), Name: ident("x")}
	method := fn("getX", block(&ReturnStatement{Meta: NewMeta(at(3, 5)), Value: access}))
	canon := mustCanonicalize(t, circuitWith(method))

	out := canon.Circuits[0].Functions[0].Body.Statements[0].(*ReturnStatement).Value.(*MemberAccessExpression)
	recv, ok := out.Inner.(*Identifier)
	if !ok || recv.Name != "self" {
		t.Fatalf("receiver = %#v, want the implicit identifier self", out.Inner)
	}
	if out.NodeID() != access.NodeID() {
		t.Fatalf("member access identity changed")
	}
}

func Test_Canonical_SelfCircuitInit_AndShorthand(t *testing.T) {
	init := &CircuitInitExpression{Meta: NewMeta(at(3, 12)), Name: ident("Self"), Members: []*CircuitVariableInitializer{
		{Meta: NewMeta(at(3, 19)), Name: ident("x")}, // shorthand { x }
	}}
	method := fn("make", block(&ReturnStatement{Meta: NewMeta(at(3, 5)), Value: init}))
	canon := mustCanonicalize(t, circuitWith(method))

	out := canon.Circuits[0].Functions[0].Body.Statements[0].(*ReturnStatement).Value.(*CircuitInitExpression)
	if out.Name.Name != "Point" {
		t.Fatalf("init name = %q, want Point", out.Name.Name)
	}
	m := out.Members[0]
	if m.Value == nil {
		t.Fatalf("shorthand member was not expanded")
	}
	v, ok := m.Value.(*Identifier)
	if !ok || v.Name != "x" {
		t.Fatalf("expanded value = %#v, want identifier x", m.Value)
	}
}

func Test_Canonical_SelfOutsideCircuit(t *testing.T) {
	free := fn("loose", block(&ReturnStatement{
		Meta:  NewMeta(at(1, 1)),
		Value: &MemberAccessExpression{Meta: NewMeta(at(1, 8)), Inner: ident("Self"), Name: ident("x")},
	}))
	wantCanonError(t, programOf(free), ErrSelfOutsideCircuit)

	typed := fn("loose", block())
	typed.Output = &SelfType{Meta: NewMeta(at(1, 1))}
	wantCanonError(t, programOf(typed), ErrSelfOutsideCircuit)
}

func Test_Canonical_SelfIdentifierAlone_Kept(t *testing.T) {
	// A bare Self outside a structured position is left for later stages.
	method := fn("noop", block(&ConsoleStatement{
		Meta: NewMeta(at(3, 5)), Kind: ConsoleLog, Arguments: []Expression{ident("Self")},
	}))
	mustCanonicalize(t, circuitWith(method))
}

// whole-pass properties
// =====================

func Test_Canonical_Idempotent(t *testing.T) {
	p := programOf(fn("main", block(
		&AssignStatement{Meta: NewMeta(at(2, 3)), Op: OpAddAssign, Target: ident("x"), Value: intLit("1")},
		destructure([]string{"a", "b"}, nil, &CallExpression{Meta: NewMeta(at(3, 16)), Function: ident("pair")}),
		&ConditionalStatement{Meta: NewMeta(at(4, 3)), Condition: ident("flag"), Block: block()},
	)))
	once := mustCanonicalize(t, p)
	twice := mustCanonicalize(t, once)
	if !once.Equal(twice) {
		t.Fatalf("canonicalization is not a fixed point on its own output")
	}
}

func Test_Canonical_InputUntouched(t *testing.T) {
	stmt := &AssignStatement{Meta: NewMeta(at(2, 3)), Op: OpAddAssign, Target: ident("x"), Value: intLit("1")}
	p := wrapStmt(stmt)
	canon := mustCanonicalize(t, p)

	if stmt.Op != OpAddAssign {
		t.Fatalf("input statement was mutated: op is now %v", stmt.Op)
	}
	if canon == p {
		t.Fatalf("canonicalize returned the input program")
	}

	// Failure leaves the input alone too.
	bad := programOf(fn("main", block(
		&AssignStatement{Meta: NewMeta(at(2, 3)), Op: OpAddAssign, Target: ident("x"), Value: intLit("1")},
		&ConsoleStatement{Meta: NewMeta(at(3, 3)), Kind: ConsoleLog, Arguments: []Expression{
			&AddressLiteral{Meta: NewMeta(at(3, 10)), Value: "nonsense"},
		}},
	)))
	if _, err := Canonicalize(bad); err == nil {
		t.Fatalf("canonicalize succeeded on a malformed address")
	}
	first := bad.Functions[0].Body.Statements[0].(*AssignStatement)
	if first.Op != OpAddAssign {
		t.Fatalf("failed pass mutated the input: op is now %v", first.Op)
	}
}

func Test_Canonical_GlobalConsts(t *testing.T) {
	p := &Program{
		Meta: NewMeta(Span{}),
		Name: "test",
		GlobalConsts: []*DefinitionStatement{
			destructure([]string{"a", "b"}, nil, &TupleInitExpression{
				Meta:     NewMeta(at(1, 16)),
				Elements: []Expression{intLit("1"), intLit("2")},
			}),
		},
	}
	canon := mustCanonicalize(t, p)
	if len(canon.GlobalConsts) != 2 {
		t.Fatalf("global destructuring produced %d definitions, want 2", len(canon.GlobalConsts))
	}
}
