// json.go — the persisted JSON form of a program tree
//
// WHAT THIS FILE PROVIDES
// =======================
// A lossless, human-readable document format for Program trees. Every node
// serializes to an object whose first key is "kind" (the variant tag),
// followed by "id" and "span" (node identity survives persistence), then
// the variant's fields under stable names. Interface-valued children recur;
// decoding probes "kind" and dispatches. MarshalProgram pretty-prints;
// UnmarshalProgram accepts any whitespace.
//
// WHY HAND-ROLLED
// ===============
// The node model is a closed sum type per category. encoding/json cannot
// round-trip interface-typed fields without a discriminator, so each
// variant gets a small wire struct and an explicit dispatch case. The wire
// structs double for both directions: children are json.RawMessage, built
// bottom-up on encode and re-dispatched on decode.
//
// Decoding restores the persisted node IDs verbatim and afterwards advances
// the process ID counter past the largest one seen, so nodes minted later
// can never collide with a loaded tree.
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalProgram encodes a program as a pretty-printed JSON document.
func MarshalProgram(p *Program) ([]byte, error) {
	raw, err := encodeProgram(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, &EncodeError{Err: err}
	}
	return buf.Bytes(), nil
}

// UnmarshalProgram parses a document produced by MarshalProgram.
func UnmarshalProgram(data []byte) (*Program, error) {
	d := &decoder{}
	p, err := d.program(data)
	if err != nil {
		return nil, err
	}
	reserveIDs(d.maxID)
	return p, nil
}

// WIRE STRUCTS
// ============

// wireMeta is the common "kind"/"id"/"span" header of every node object.
type wireMeta struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id"`
	Span Span   `json:"span"`
}

func header(kind string, m Meta) wireMeta {
	return wireMeta{Kind: kind, ID: m.ID, Span: m.Span}
}

func (w wireMeta) meta() Meta { return Meta{ID: w.ID, Span: w.Span} }

type raw = json.RawMessage

type wireProgram struct {
	wireMeta
	Name         string `json:"name"`
	Imports      []raw  `json:"imports"`
	Circuits     []raw  `json:"circuits"`
	Functions    []raw  `json:"functions"`
	GlobalConsts []raw  `json:"global_consts"`
}

type wireImport struct {
	wireMeta
	Path    []string `json:"path"`
	Alias   string   `json:"alias,omitempty"`
	Symbols []raw    `json:"symbols,omitempty"`
}

type wireImportSymbol struct {
	wireMeta
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

type wireCircuit struct {
	wireMeta
	Name      raw   `json:"name"`
	Members   []raw `json:"members"`
	Functions []raw `json:"functions"`
}

type wireCircuitMember struct {
	wireMeta
	Name raw `json:"name"`
	Type raw `json:"type"`
}

type wireFunction struct {
	wireMeta
	Name        raw   `json:"name"`
	Annotations []raw `json:"annotations,omitempty"`
	Parameters  []raw `json:"parameters"`
	Output      raw   `json:"output,omitempty"`
	Body        raw   `json:"body"`
}

type wireParameter struct {
	wireMeta
	Name  raw  `json:"name"`
	Const bool `json:"const,omitempty"`
	Type  raw  `json:"type"`
}

type wireAnnotation struct {
	wireMeta
	Name      string   `json:"name"`
	Arguments []string `json:"arguments,omitempty"`
}

type wireReturn struct {
	wireMeta
	Value raw `json:"value,omitempty"`
}

type wireDefinition struct {
	wireMeta
	Declare   string `json:"declare"`
	Variables []raw  `json:"variables"`
	Type      raw    `json:"type,omitempty"`
	Value     raw    `json:"value"`
}

type wireVariableName struct {
	wireMeta
	Mutable    bool `json:"mutable,omitempty"`
	Identifier raw  `json:"identifier"`
}

type wireAssign struct {
	wireMeta
	Op     string `json:"op"`
	Target raw    `json:"target"`
	Value  raw    `json:"value"`
}

type wireConditional struct {
	wireMeta
	Condition raw `json:"condition"`
	Block     raw `json:"block"`
	Next      raw `json:"next,omitempty"`
}

type wireIteration struct {
	wireMeta
	Variable  raw  `json:"variable"`
	Start     raw  `json:"start"`
	Stop      raw  `json:"stop"`
	Inclusive bool `json:"inclusive,omitempty"`
	Block     raw  `json:"block"`
}

type wireConsole struct {
	wireMeta
	Function  string `json:"function"`
	Arguments []raw  `json:"arguments,omitempty"`
}

type wireBlock struct {
	wireMeta
	Statements []raw `json:"statements"`
}

type wireIdentifier struct {
	wireMeta
	Name string `json:"name"`
}

type wireBoolean struct {
	wireMeta
	Value bool `json:"value"`
}

type wireInteger struct {
	wireMeta
	Width string `json:"width,omitempty"`
	Value string `json:"value"`
}

type wireText struct { // field and address literals, string literals
	wireMeta
	Value string `json:"value"`
}

type wireCoordinate struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

type wireGroup struct {
	wireMeta
	Form string          `json:"form"` // "single" or "tuple"
	Text string          `json:"text,omitempty"`
	X    *wireCoordinate `json:"x,omitempty"`
	Y    *wireCoordinate `json:"y,omitempty"`
}

type wireUnary struct {
	wireMeta
	Op    string `json:"op"`
	Inner raw    `json:"inner"`
}

type wireBinary struct {
	wireMeta
	Op    string `json:"op"`
	Left  raw    `json:"left"`
	Right raw    `json:"right"`
}

type wireTernary struct {
	wireMeta
	Condition raw `json:"condition"`
	IfTrue    raw `json:"if_true"`
	IfFalse   raw `json:"if_false"`
}

type wireCall struct {
	wireMeta
	Function  raw   `json:"function"`
	Arguments []raw `json:"arguments,omitempty"`
}

type wireExprList struct { // array inline and tuple init
	wireMeta
	Elements []raw `json:"elements"`
}

type wireArrayInit struct {
	wireMeta
	Element    raw      `json:"element"`
	Dimensions []uint32 `json:"dimensions"`
}

type wireCircuitInit struct {
	wireMeta
	Name    raw   `json:"name"`
	Members []raw `json:"members,omitempty"`
}

type wireInitMember struct {
	wireMeta
	Name  raw `json:"name"`
	Value raw `json:"value,omitempty"`
}

type wireArrayAccess struct {
	wireMeta
	Array raw `json:"array"`
	Index raw `json:"index"`
}

type wireTupleAccess struct {
	wireMeta
	Tuple raw    `json:"tuple"`
	Index uint32 `json:"index"`
}

type wireMemberAccess struct {
	wireMeta
	Inner raw `json:"inner"`
	Name  raw `json:"name"`
}

type wireCast struct {
	wireMeta
	Inner raw `json:"inner"`
	Type  raw `json:"type"`
}

type wireIntegerType struct {
	wireMeta
	Width string `json:"width"`
}

type wireArrayType struct {
	wireMeta
	Element    raw      `json:"element"`
	Dimensions []uint32 `json:"dimensions"`
}

type wireTupleType struct {
	wireMeta
	Elements []raw `json:"elements"`
}

type wireCircuitType struct {
	wireMeta
	Name raw `json:"name"`
}

// ENCODING
// ========

func marshal(v any) (raw, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return data, nil
}

func encodeProgram(p *Program) (raw, error) {
	imports, err := encodeSlice(p.Imports, encodeImport)
	if err != nil {
		return nil, err
	}
	circuits, err := encodeSlice(p.Circuits, encodeCircuit)
	if err != nil {
		return nil, err
	}
	functions, err := encodeSlice(p.Functions, encodeFunction)
	if err != nil {
		return nil, err
	}
	globals, err := encodeSlice(p.GlobalConsts, func(d *DefinitionStatement) (raw, error) {
		return encodeStatement(d)
	})
	if err != nil {
		return nil, err
	}
	return marshal(wireProgram{
		wireMeta:     header("program", p.Meta),
		Name:         p.Name,
		Imports:      imports,
		Circuits:     circuits,
		Functions:    functions,
		GlobalConsts: globals,
	})
}

// encodeSlice maps enc over nodes, always yielding a non-nil slice so empty
// sequences persist as [] rather than null.
func encodeSlice[T any](nodes []T, enc func(T) (raw, error)) ([]raw, error) {
	out := make([]raw, len(nodes))
	for i, n := range nodes {
		r, err := enc(n)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func encodeImport(imp *ImportStatement) (raw, error) {
	symbols, err := encodeSlice(imp.Symbols, func(s *ImportSymbol) (raw, error) {
		return marshal(wireImportSymbol{wireMeta: header("import_symbol", s.Meta), Name: s.Name, Alias: s.Alias})
	})
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		symbols = nil
	}
	return marshal(wireImport{wireMeta: header("import", imp.Meta), Path: imp.Path, Alias: imp.Alias, Symbols: symbols})
}

func encodeCircuit(c *Circuit) (raw, error) {
	name, err := encodeExpression(c.Name)
	if err != nil {
		return nil, err
	}
	members, err := encodeSlice(c.Members, func(m *CircuitMember) (raw, error) {
		mname, err := encodeExpression(m.Name)
		if err != nil {
			return nil, err
		}
		mtype, err := encodeType(m.Type)
		if err != nil {
			return nil, err
		}
		return marshal(wireCircuitMember{wireMeta: header("circuit_member", m.Meta), Name: mname, Type: mtype})
	})
	if err != nil {
		return nil, err
	}
	functions, err := encodeSlice(c.Functions, encodeFunction)
	if err != nil {
		return nil, err
	}
	return marshal(wireCircuit{wireMeta: header("circuit", c.Meta), Name: name, Members: members, Functions: functions})
}

func encodeFunction(f *Function) (raw, error) {
	name, err := encodeExpression(f.Name)
	if err != nil {
		return nil, err
	}
	annotations, err := encodeSlice(f.Annotations, func(a *Annotation) (raw, error) {
		return marshal(wireAnnotation{wireMeta: header("annotation", a.Meta), Name: a.Name, Arguments: a.Arguments})
	})
	if err != nil {
		return nil, err
	}
	if len(annotations) == 0 {
		annotations = nil
	}
	params, err := encodeSlice(f.Parameters, func(p *FunctionParameter) (raw, error) {
		pname, err := encodeExpression(p.Name)
		if err != nil {
			return nil, err
		}
		ptype, err := encodeType(p.Type)
		if err != nil {
			return nil, err
		}
		return marshal(wireParameter{wireMeta: header("parameter", p.Meta), Name: pname, Const: p.Const, Type: ptype})
	})
	if err != nil {
		return nil, err
	}
	var output raw
	if f.Output != nil {
		output, err = encodeType(f.Output)
		if err != nil {
			return nil, err
		}
	}
	body, err := encodeStatement(f.Body)
	if err != nil {
		return nil, err
	}
	return marshal(wireFunction{wireMeta: header("function", f.Meta), Name: name, Annotations: annotations, Parameters: params, Output: output, Body: body})
}

func encodeStatement(s Statement) (raw, error) {
	switch s := s.(type) {
	case *ReturnStatement:
		var value raw
		var err error
		if s.Value != nil {
			value, err = encodeExpression(s.Value)
			if err != nil {
				return nil, err
			}
		}
		return marshal(wireReturn{wireMeta: header("return", s.Meta), Value: value})

	case *DefinitionStatement:
		variables, err := encodeSlice(s.Variables, func(v *VariableName) (raw, error) {
			ident, err := encodeExpression(v.Identifier)
			if err != nil {
				return nil, err
			}
			return marshal(wireVariableName{wireMeta: header("variable_name", v.Meta), Mutable: v.Mutable, Identifier: ident})
		})
		if err != nil {
			return nil, err
		}
		var typ raw
		if s.Type != nil {
			typ, err = encodeType(s.Type)
			if err != nil {
				return nil, err
			}
		}
		value, err := encodeExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return marshal(wireDefinition{wireMeta: header("definition", s.Meta), Declare: s.Declare.String(), Variables: variables, Type: typ, Value: value})

	case *AssignStatement:
		target, err := encodeExpression(s.Target)
		if err != nil {
			return nil, err
		}
		value, err := encodeExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return marshal(wireAssign{wireMeta: header("assign", s.Meta), Op: s.Op.String(), Target: target, Value: value})

	case *ConditionalStatement:
		condition, err := encodeExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		block, err := encodeStatement(s.Block)
		if err != nil {
			return nil, err
		}
		var next raw
		if s.Next != nil {
			next, err = encodeStatement(s.Next)
			if err != nil {
				return nil, err
			}
		}
		return marshal(wireConditional{wireMeta: header("conditional", s.Meta), Condition: condition, Block: block, Next: next})

	case *IterationStatement:
		variable, err := encodeExpression(s.Variable)
		if err != nil {
			return nil, err
		}
		start, err := encodeExpression(s.Start)
		if err != nil {
			return nil, err
		}
		stop, err := encodeExpression(s.Stop)
		if err != nil {
			return nil, err
		}
		block, err := encodeStatement(s.Block)
		if err != nil {
			return nil, err
		}
		return marshal(wireIteration{wireMeta: header("iteration", s.Meta), Variable: variable, Start: start, Stop: stop, Inclusive: s.Inclusive, Block: block})

	case *ConsoleStatement:
		args, err := encodeSlice(s.Arguments, encodeExpression)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			args = nil
		}
		return marshal(wireConsole{wireMeta: header("console", s.Meta), Function: s.Kind.String(), Arguments: args})

	case *Block:
		statements, err := encodeSlice(s.Statements, encodeStatement)
		if err != nil {
			return nil, err
		}
		return marshal(wireBlock{wireMeta: header("block", s.Meta), Statements: statements})

	default:
		return nil, &EncodeError{Err: fmt.Errorf("unknown statement variant %T", s)}
	}
}

func encodeExpression(e Expression) (raw, error) {
	switch e := e.(type) {
	case *Identifier:
		return marshal(wireIdentifier{wireMeta: header("identifier", e.Meta), Name: e.Name})

	case *BooleanLiteral:
		return marshal(wireBoolean{wireMeta: header("boolean", e.Meta), Value: e.Value})

	case *IntegerLiteral:
		return marshal(wireInteger{wireMeta: header("integer", e.Meta), Width: e.Width.String(), Value: e.Value})

	case *FieldLiteral:
		return marshal(wireText{wireMeta: header("field", e.Meta), Value: e.Value})

	case *GroupLiteral:
		w := wireGroup{wireMeta: header("group", e.Meta)}
		switch v := e.Value.(type) {
		case GroupSingle:
			w.Form = "single"
			w.Text = v.Text
		case GroupTuple:
			w.Form = "tuple"
			w.X = &wireCoordinate{Kind: v.X.Kind.String(), Text: v.X.Text}
			w.Y = &wireCoordinate{Kind: v.Y.Kind.String(), Text: v.Y.Text}
		default:
			return nil, &EncodeError{Err: fmt.Errorf("unknown group value %T", v)}
		}
		return marshal(w)

	case *AddressLiteral:
		return marshal(wireText{wireMeta: header("address", e.Meta), Value: e.Value})

	case *StringLiteral:
		return marshal(wireText{wireMeta: header("string", e.Meta), Value: e.Value})

	case *UnaryExpression:
		inner, err := encodeExpression(e.Inner)
		if err != nil {
			return nil, err
		}
		return marshal(wireUnary{wireMeta: header("unary", e.Meta), Op: e.Op.String(), Inner: inner})

	case *BinaryExpression:
		left, err := encodeExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return marshal(wireBinary{wireMeta: header("binary", e.Meta), Op: e.Op.String(), Left: left, Right: right})

	case *TernaryExpression:
		condition, err := encodeExpression(e.Condition)
		if err != nil {
			return nil, err
		}
		ifTrue, err := encodeExpression(e.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := encodeExpression(e.IfFalse)
		if err != nil {
			return nil, err
		}
		return marshal(wireTernary{wireMeta: header("ternary", e.Meta), Condition: condition, IfTrue: ifTrue, IfFalse: ifFalse})

	case *CallExpression:
		fn, err := encodeExpression(e.Function)
		if err != nil {
			return nil, err
		}
		args, err := encodeSlice(e.Arguments, encodeExpression)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			args = nil
		}
		return marshal(wireCall{wireMeta: header("call", e.Meta), Function: fn, Arguments: args})

	case *ArrayInlineExpression:
		elements, err := encodeSlice(e.Elements, encodeExpression)
		if err != nil {
			return nil, err
		}
		return marshal(wireExprList{wireMeta: header("array_inline", e.Meta), Elements: elements})

	case *ArrayInitExpression:
		element, err := encodeExpression(e.Element)
		if err != nil {
			return nil, err
		}
		return marshal(wireArrayInit{wireMeta: header("array_init", e.Meta), Element: element, Dimensions: e.Dimensions})

	case *TupleInitExpression:
		elements, err := encodeSlice(e.Elements, encodeExpression)
		if err != nil {
			return nil, err
		}
		return marshal(wireExprList{wireMeta: header("tuple_init", e.Meta), Elements: elements})

	case *CircuitInitExpression:
		name, err := encodeExpression(e.Name)
		if err != nil {
			return nil, err
		}
		members, err := encodeSlice(e.Members, func(m *CircuitVariableInitializer) (raw, error) {
			mname, err := encodeExpression(m.Name)
			if err != nil {
				return nil, err
			}
			var value raw
			if m.Value != nil {
				value, err = encodeExpression(m.Value)
				if err != nil {
					return nil, err
				}
			}
			return marshal(wireInitMember{wireMeta: header("init_member", m.Meta), Name: mname, Value: value})
		})
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			members = nil
		}
		return marshal(wireCircuitInit{wireMeta: header("circuit_init", e.Meta), Name: name, Members: members})

	case *ArrayAccessExpression:
		array, err := encodeExpression(e.Array)
		if err != nil {
			return nil, err
		}
		index, err := encodeExpression(e.Index)
		if err != nil {
			return nil, err
		}
		return marshal(wireArrayAccess{wireMeta: header("array_access", e.Meta), Array: array, Index: index})

	case *TupleAccessExpression:
		tuple, err := encodeExpression(e.Tuple)
		if err != nil {
			return nil, err
		}
		return marshal(wireTupleAccess{wireMeta: header("tuple_access", e.Meta), Tuple: tuple, Index: e.Index})

	case *MemberAccessExpression:
		inner, err := encodeExpression(e.Inner)
		if err != nil {
			return nil, err
		}
		name, err := encodeExpression(e.Name)
		if err != nil {
			return nil, err
		}
		return marshal(wireMemberAccess{wireMeta: header("member_access", e.Meta), Inner: inner, Name: name})

	case *CastExpression:
		inner, err := encodeExpression(e.Inner)
		if err != nil {
			return nil, err
		}
		typ, err := encodeType(e.Type)
		if err != nil {
			return nil, err
		}
		return marshal(wireCast{wireMeta: header("cast", e.Meta), Inner: inner, Type: typ})

	default:
		return nil, &EncodeError{Err: fmt.Errorf("unknown expression variant %T", e)}
	}
}

func encodeType(t Type) (raw, error) {
	switch t := t.(type) {
	case *BooleanType:
		return marshal(header("bool_type", t.Meta))
	case *FieldType:
		return marshal(header("field_type", t.Meta))
	case *GroupType:
		return marshal(header("group_type", t.Meta))
	case *AddressType:
		return marshal(header("address_type", t.Meta))
	case *StringType:
		return marshal(header("string_type", t.Meta))
	case *IntegerType:
		return marshal(wireIntegerType{wireMeta: header("integer_type", t.Meta), Width: t.Width.String()})
	case *ArrayType:
		element, err := encodeType(t.Element)
		if err != nil {
			return nil, err
		}
		return marshal(wireArrayType{wireMeta: header("array_type", t.Meta), Element: element, Dimensions: t.Dimensions})
	case *TupleType:
		elements, err := encodeSlice(t.Elements, encodeType)
		if err != nil {
			return nil, err
		}
		return marshal(wireTupleType{wireMeta: header("tuple_type", t.Meta), Elements: elements})
	case *CircuitType:
		name, err := encodeExpression(t.Name)
		if err != nil {
			return nil, err
		}
		return marshal(wireCircuitType{wireMeta: header("circuit_type", t.Meta), Name: name})
	case *SelfType:
		return marshal(header("self_type", t.Meta))
	default:
		return nil, &EncodeError{Err: fmt.Errorf("unknown type variant %T", t)}
	}
}

// DECODING
// ========

// decoder tracks the largest restored ID so the process counter can be
// advanced once at the end.
type decoder struct {
	maxID uint64
}

func (d *decoder) meta(w wireMeta) Meta {
	if w.ID > d.maxID {
		d.maxID = w.ID
	}
	return w.meta()
}

// peekKind reads the "kind" discriminator of a node object.
func peekKind(data raw, context string) (string, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", &DecodeError{Context: context, Err: err}
	}
	if probe.Kind == "" {
		return "", decodeErrorf(context, "missing \"kind\"")
	}
	return probe.Kind, nil
}

func unmarshalWire(data raw, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Context: context, Err: err}
	}
	return nil
}

// present reports whether an optional child was written: absent keys and
// explicit nulls both count as missing.
func present(data raw) bool {
	return len(data) > 0 && !bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func (d *decoder) program(data raw) (*Program, error) {
	kind, err := peekKind(data, "program")
	if err != nil {
		return nil, err
	}
	if kind != "program" {
		return nil, decodeErrorf("program", "document root is %q", kind)
	}
	var w wireProgram
	if err := unmarshalWire(data, &w, "program"); err != nil {
		return nil, err
	}
	p := &Program{Meta: d.meta(w.wireMeta), Name: w.Name}
	for _, r := range w.Imports {
		imp, err := d.importStatement(r)
		if err != nil {
			return nil, err
		}
		p.Imports = append(p.Imports, imp)
	}
	for _, r := range w.Circuits {
		c, err := d.circuit(r)
		if err != nil {
			return nil, err
		}
		p.Circuits = append(p.Circuits, c)
	}
	for _, r := range w.Functions {
		f, err := d.function(r)
		if err != nil {
			return nil, err
		}
		p.Functions = append(p.Functions, f)
	}
	for _, r := range w.GlobalConsts {
		s, err := d.statement(r)
		if err != nil {
			return nil, err
		}
		def, ok := s.(*DefinitionStatement)
		if !ok {
			return nil, decodeErrorf("program", "global constant is %T, want a definition", s)
		}
		p.GlobalConsts = append(p.GlobalConsts, def)
	}
	return p, nil
}

func (d *decoder) importStatement(data raw) (*ImportStatement, error) {
	var w wireImport
	if err := unmarshalWire(data, &w, "import"); err != nil {
		return nil, err
	}
	imp := &ImportStatement{Meta: d.meta(w.wireMeta), Path: w.Path, Alias: w.Alias}
	for _, r := range w.Symbols {
		var ws wireImportSymbol
		if err := unmarshalWire(r, &ws, "import_symbol"); err != nil {
			return nil, err
		}
		imp.Symbols = append(imp.Symbols, &ImportSymbol{Meta: d.meta(ws.wireMeta), Name: ws.Name, Alias: ws.Alias})
	}
	return imp, nil
}

func (d *decoder) circuit(data raw) (*Circuit, error) {
	var w wireCircuit
	if err := unmarshalWire(data, &w, "circuit"); err != nil {
		return nil, err
	}
	name, err := d.identifier(w.Name, "circuit name")
	if err != nil {
		return nil, err
	}
	c := &Circuit{Meta: d.meta(w.wireMeta), Name: name}
	for _, r := range w.Members {
		var wm wireCircuitMember
		if err := unmarshalWire(r, &wm, "circuit_member"); err != nil {
			return nil, err
		}
		mname, err := d.identifier(wm.Name, "circuit member name")
		if err != nil {
			return nil, err
		}
		mtype, err := d.typ(wm.Type)
		if err != nil {
			return nil, err
		}
		c.Members = append(c.Members, &CircuitMember{Meta: d.meta(wm.wireMeta), Name: mname, Type: mtype})
	}
	for _, r := range w.Functions {
		f, err := d.function(r)
		if err != nil {
			return nil, err
		}
		c.Functions = append(c.Functions, f)
	}
	return c, nil
}

func (d *decoder) function(data raw) (*Function, error) {
	var w wireFunction
	if err := unmarshalWire(data, &w, "function"); err != nil {
		return nil, err
	}
	name, err := d.identifier(w.Name, "function name")
	if err != nil {
		return nil, err
	}
	f := &Function{Meta: d.meta(w.wireMeta), Name: name}
	for _, r := range w.Annotations {
		var wa wireAnnotation
		if err := unmarshalWire(r, &wa, "annotation"); err != nil {
			return nil, err
		}
		f.Annotations = append(f.Annotations, &Annotation{Meta: d.meta(wa.wireMeta), Name: wa.Name, Arguments: wa.Arguments})
	}
	for _, r := range w.Parameters {
		var wp wireParameter
		if err := unmarshalWire(r, &wp, "parameter"); err != nil {
			return nil, err
		}
		pname, err := d.identifier(wp.Name, "parameter name")
		if err != nil {
			return nil, err
		}
		ptype, err := d.typ(wp.Type)
		if err != nil {
			return nil, err
		}
		f.Parameters = append(f.Parameters, &FunctionParameter{Meta: d.meta(wp.wireMeta), Name: pname, Const: wp.Const, Type: ptype})
	}
	if present(w.Output) {
		f.Output, err = d.typ(w.Output)
		if err != nil {
			return nil, err
		}
	}
	body, err := d.statement(w.Body)
	if err != nil {
		return nil, err
	}
	block, ok := body.(*Block)
	if !ok {
		return nil, decodeErrorf("function", "body is %T, want a block", body)
	}
	f.Body = block
	return f, nil
}

func (d *decoder) identifier(data raw, context string) (*Identifier, error) {
	if !present(data) {
		return nil, decodeErrorf(context, "missing identifier")
	}
	e, err := d.expression(data)
	if err != nil {
		return nil, err
	}
	id, ok := e.(*Identifier)
	if !ok {
		return nil, decodeErrorf(context, "node is %T, want an identifier", e)
	}
	return id, nil
}

func (d *decoder) statement(data raw) (Statement, error) {
	kind, err := peekKind(data, "statement")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "return":
		var w wireReturn
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		s := &ReturnStatement{Meta: d.meta(w.wireMeta)}
		if present(w.Value) {
			s.Value, err = d.expression(w.Value)
			if err != nil {
				return nil, err
			}
		}
		return s, nil

	case "definition":
		var w wireDefinition
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		declare, ok := declareKindFromName(w.Declare)
		if !ok {
			return nil, decodeErrorf(kind, "unknown declare kind %q", w.Declare)
		}
		s := &DefinitionStatement{Meta: d.meta(w.wireMeta), Declare: declare}
		for _, r := range w.Variables {
			var wv wireVariableName
			if err := unmarshalWire(r, &wv, "variable_name"); err != nil {
				return nil, err
			}
			ident, err := d.identifier(wv.Identifier, "variable name")
			if err != nil {
				return nil, err
			}
			s.Variables = append(s.Variables, &VariableName{Meta: d.meta(wv.wireMeta), Mutable: wv.Mutable, Identifier: ident})
		}
		if len(s.Variables) == 0 {
			return nil, decodeErrorf(kind, "definition binds no names")
		}
		if present(w.Type) {
			s.Type, err = d.typ(w.Type)
			if err != nil {
				return nil, err
			}
		}
		s.Value, err = d.expression(w.Value)
		if err != nil {
			return nil, err
		}
		return s, nil

	case "assign":
		var w wireAssign
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		op, ok := assignOperationFromName(w.Op)
		if !ok {
			return nil, decodeErrorf(kind, "unknown assign operation %q", w.Op)
		}
		target, err := d.expression(w.Target)
		if err != nil {
			return nil, err
		}
		value, err := d.expression(w.Value)
		if err != nil {
			return nil, err
		}
		return &AssignStatement{Meta: d.meta(w.wireMeta), Op: op, Target: target, Value: value}, nil

	case "conditional":
		var w wireConditional
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		condition, err := d.expression(w.Condition)
		if err != nil {
			return nil, err
		}
		block, err := d.block(w.Block, "conditional block")
		if err != nil {
			return nil, err
		}
		s := &ConditionalStatement{Meta: d.meta(w.wireMeta), Condition: condition, Block: block}
		if present(w.Next) {
			next, err := d.statement(w.Next)
			if err != nil {
				return nil, err
			}
			switch next.(type) {
			case *Block, *ConditionalStatement:
				s.Next = next
			default:
				return nil, decodeErrorf(kind, "else position holds %T", next)
			}
		}
		return s, nil

	case "iteration":
		var w wireIteration
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		variable, err := d.identifier(w.Variable, "loop variable")
		if err != nil {
			return nil, err
		}
		start, err := d.expression(w.Start)
		if err != nil {
			return nil, err
		}
		stop, err := d.expression(w.Stop)
		if err != nil {
			return nil, err
		}
		block, err := d.block(w.Block, "loop body")
		if err != nil {
			return nil, err
		}
		return &IterationStatement{Meta: d.meta(w.wireMeta), Variable: variable, Start: start, Stop: stop, Inclusive: w.Inclusive, Block: block}, nil

	case "console":
		var w wireConsole
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		fn, ok := consoleKindFromName(w.Function)
		if !ok {
			return nil, decodeErrorf(kind, "unknown console function %q", w.Function)
		}
		s := &ConsoleStatement{Meta: d.meta(w.wireMeta), Kind: fn}
		for _, r := range w.Arguments {
			arg, err := d.expression(r)
			if err != nil {
				return nil, err
			}
			s.Arguments = append(s.Arguments, arg)
		}
		return s, nil

	case "block":
		return d.block(data, "block")

	default:
		return nil, decodeErrorf("statement", "unknown kind %q", kind)
	}
}

func (d *decoder) block(data raw, context string) (*Block, error) {
	kind, err := peekKind(data, context)
	if err != nil {
		return nil, err
	}
	if kind != "block" {
		return nil, decodeErrorf(context, "node kind is %q, want \"block\"", kind)
	}
	var w wireBlock
	if err := unmarshalWire(data, &w, context); err != nil {
		return nil, err
	}
	b := &Block{Meta: d.meta(w.wireMeta)}
	for _, r := range w.Statements {
		s, err := d.statement(r)
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, s)
	}
	return b, nil
}

func (d *decoder) expression(data raw) (Expression, error) {
	kind, err := peekKind(data, "expression")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "identifier":
		var w wireIdentifier
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		return &Identifier{Meta: d.meta(w.wireMeta), Name: w.Name}, nil

	case "boolean":
		var w wireBoolean
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		return &BooleanLiteral{Meta: d.meta(w.wireMeta), Value: w.Value}, nil

	case "integer":
		var w wireInteger
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		width, ok := integerWidthFromName(w.Width)
		if !ok {
			return nil, decodeErrorf(kind, "unknown integer width %q", w.Width)
		}
		return &IntegerLiteral{Meta: d.meta(w.wireMeta), Width: width, Value: w.Value}, nil

	case "field":
		var w wireText
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		return &FieldLiteral{Meta: d.meta(w.wireMeta), Value: w.Value}, nil

	case "group":
		var w wireGroup
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		switch w.Form {
		case "single":
			return &GroupLiteral{Meta: d.meta(w.wireMeta), Value: GroupSingle{Text: w.Text}}, nil
		case "tuple":
			if w.X == nil || w.Y == nil {
				return nil, decodeErrorf(kind, "tuple form is missing a coordinate")
			}
			x, err := decodeCoordinate(*w.X)
			if err != nil {
				return nil, err
			}
			y, err := decodeCoordinate(*w.Y)
			if err != nil {
				return nil, err
			}
			return &GroupLiteral{Meta: d.meta(w.wireMeta), Value: GroupTuple{X: x, Y: y}}, nil
		default:
			return nil, decodeErrorf(kind, "unknown group form %q", w.Form)
		}

	case "address":
		var w wireText
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		return &AddressLiteral{Meta: d.meta(w.wireMeta), Value: w.Value}, nil

	case "string":
		var w wireText
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		return &StringLiteral{Meta: d.meta(w.wireMeta), Value: w.Value}, nil

	case "unary":
		var w wireUnary
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		op, ok := unaryOperatorFromName(w.Op)
		if !ok {
			return nil, decodeErrorf(kind, "unknown unary operator %q", w.Op)
		}
		inner, err := d.expression(w.Inner)
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Meta: d.meta(w.wireMeta), Op: op, Inner: inner}, nil

	case "binary":
		var w wireBinary
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		op, ok := binaryOperatorFromName(w.Op)
		if !ok {
			return nil, decodeErrorf(kind, "unknown binary operator %q", w.Op)
		}
		left, err := d.expression(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.expression(w.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{Meta: d.meta(w.wireMeta), Op: op, Left: left, Right: right}, nil

	case "ternary":
		var w wireTernary
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		condition, err := d.expression(w.Condition)
		if err != nil {
			return nil, err
		}
		ifTrue, err := d.expression(w.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := d.expression(w.IfFalse)
		if err != nil {
			return nil, err
		}
		return &TernaryExpression{Meta: d.meta(w.wireMeta), Condition: condition, IfTrue: ifTrue, IfFalse: ifFalse}, nil

	case "call":
		var w wireCall
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		fn, err := d.expression(w.Function)
		if err != nil {
			return nil, err
		}
		e := &CallExpression{Meta: d.meta(w.wireMeta), Function: fn}
		for _, r := range w.Arguments {
			arg, err := d.expression(r)
			if err != nil {
				return nil, err
			}
			e.Arguments = append(e.Arguments, arg)
		}
		return e, nil

	case "array_inline":
		var w wireExprList
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		e := &ArrayInlineExpression{Meta: d.meta(w.wireMeta)}
		for _, r := range w.Elements {
			el, err := d.expression(r)
			if err != nil {
				return nil, err
			}
			e.Elements = append(e.Elements, el)
		}
		return e, nil

	case "array_init":
		var w wireArrayInit
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		element, err := d.expression(w.Element)
		if err != nil {
			return nil, err
		}
		return &ArrayInitExpression{Meta: d.meta(w.wireMeta), Element: element, Dimensions: w.Dimensions}, nil

	case "tuple_init":
		var w wireExprList
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		e := &TupleInitExpression{Meta: d.meta(w.wireMeta)}
		for _, r := range w.Elements {
			el, err := d.expression(r)
			if err != nil {
				return nil, err
			}
			e.Elements = append(e.Elements, el)
		}
		return e, nil

	case "circuit_init":
		var w wireCircuitInit
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		name, err := d.identifier(w.Name, "circuit init name")
		if err != nil {
			return nil, err
		}
		e := &CircuitInitExpression{Meta: d.meta(w.wireMeta), Name: name}
		for _, r := range w.Members {
			var wm wireInitMember
			if err := unmarshalWire(r, &wm, "init_member"); err != nil {
				return nil, err
			}
			mname, err := d.identifier(wm.Name, "init member name")
			if err != nil {
				return nil, err
			}
			m := &CircuitVariableInitializer{Meta: d.meta(wm.wireMeta), Name: mname}
			if present(wm.Value) {
				m.Value, err = d.expression(wm.Value)
				if err != nil {
					return nil, err
				}
			}
			e.Members = append(e.Members, m)
		}
		return e, nil

	case "array_access":
		var w wireArrayAccess
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		array, err := d.expression(w.Array)
		if err != nil {
			return nil, err
		}
		index, err := d.expression(w.Index)
		if err != nil {
			return nil, err
		}
		return &ArrayAccessExpression{Meta: d.meta(w.wireMeta), Array: array, Index: index}, nil

	case "tuple_access":
		var w wireTupleAccess
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		tuple, err := d.expression(w.Tuple)
		if err != nil {
			return nil, err
		}
		return &TupleAccessExpression{Meta: d.meta(w.wireMeta), Tuple: tuple, Index: w.Index}, nil

	case "member_access":
		var w wireMemberAccess
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		inner, err := d.expression(w.Inner)
		if err != nil {
			return nil, err
		}
		name, err := d.identifier(w.Name, "member name")
		if err != nil {
			return nil, err
		}
		return &MemberAccessExpression{Meta: d.meta(w.wireMeta), Inner: inner, Name: name}, nil

	case "cast":
		var w wireCast
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		inner, err := d.expression(w.Inner)
		if err != nil {
			return nil, err
		}
		typ, err := d.typ(w.Type)
		if err != nil {
			return nil, err
		}
		return &CastExpression{Meta: d.meta(w.wireMeta), Inner: inner, Type: typ}, nil

	default:
		return nil, decodeErrorf("expression", "unknown kind %q", kind)
	}
}

func decodeCoordinate(w wireCoordinate) (GroupCoordinate, error) {
	k, ok := coordinateKindFromName(w.Kind)
	if !ok {
		return GroupCoordinate{}, decodeErrorf("group", "unknown coordinate kind %q", w.Kind)
	}
	return GroupCoordinate{Kind: k, Text: w.Text}, nil
}

func (d *decoder) typ(data raw) (Type, error) {
	kind, err := peekKind(data, "type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "bool_type", "field_type", "group_type", "address_type", "string_type", "self_type":
		var w wireMeta
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		m := d.meta(w)
		switch kind {
		case "bool_type":
			return &BooleanType{Meta: m}, nil
		case "field_type":
			return &FieldType{Meta: m}, nil
		case "group_type":
			return &GroupType{Meta: m}, nil
		case "address_type":
			return &AddressType{Meta: m}, nil
		case "string_type":
			return &StringType{Meta: m}, nil
		default:
			return &SelfType{Meta: m}, nil
		}

	case "integer_type":
		var w wireIntegerType
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		width, ok := integerWidthFromName(w.Width)
		if !ok || width == WidthImplicit {
			return nil, decodeErrorf(kind, "unknown integer width %q", w.Width)
		}
		return &IntegerType{Meta: d.meta(w.wireMeta), Width: width}, nil

	case "array_type":
		var w wireArrayType
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		element, err := d.typ(w.Element)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Meta: d.meta(w.wireMeta), Element: element, Dimensions: w.Dimensions}, nil

	case "tuple_type":
		var w wireTupleType
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		t := &TupleType{Meta: d.meta(w.wireMeta)}
		for _, r := range w.Elements {
			el, err := d.typ(r)
			if err != nil {
				return nil, err
			}
			t.Elements = append(t.Elements, el)
		}
		return t, nil

	case "circuit_type":
		var w wireCircuitType
		if err := unmarshalWire(data, &w, kind); err != nil {
			return nil, err
		}
		name, err := d.identifier(w.Name, "circuit type name")
		if err != nil {
			return nil, err
		}
		return &CircuitType{Meta: d.meta(w.wireMeta), Name: name}, nil

	default:
		return nil, decodeErrorf("type", "unknown kind %q", kind)
	}
}

// OPERATOR NAMES
// ==============

func declareKindFromName(name string) (DeclareKind, bool) {
	switch name {
	case "let":
		return DeclareLet, true
	case "const":
		return DeclareConst, true
	}
	return 0, false
}

func assignOperationFromName(name string) (AssignOperation, bool) {
	for i, n := range assignOperationNames {
		if n == name {
			return AssignOperation(i), true
		}
	}
	return 0, false
}

func unaryOperatorFromName(name string) (UnaryOperator, bool) {
	switch name {
	case "-":
		return UnaryNegate, true
	case "!":
		return UnaryNot, true
	}
	return 0, false
}

func binaryOperatorFromName(name string) (BinaryOperator, bool) {
	for i, n := range binaryOperatorNames {
		if n == name {
			return BinaryOperator(i), true
		}
	}
	return 0, false
}
