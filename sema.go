// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
)

var (
	_ Actions = (*Sema)(nil)

	// knownAttributes are the attributes Sema does not warn about.
	knownAttributes = map[string]bool{
		"deprecated":  true,
		"export":      true,
		"infix":       true,
		"infix_left":  true,
		"infix_right": true,
		"inline":      true,
	}
)

// ScopeKind classifies a Scope.
type ScopeKind int

// Values of ScopeKind.
const (
	UnitScope ScopeKind = iota
	StructScope
	BlockScope
)

// String implements fmt.Stringer.
func (k ScopeKind) String() string {
	switch k {
	case UnitScope:
		return "unit"
	case StructScope:
		return "struct"
	case BlockScope:
		return "block"
	}

	return fmt.Sprintf("ScopeKind(%d)", int(k))
}

// Actions receives the recognized constructs from the parser. Every ActOn
// method either returns the node for the construct or an error, in which case
// the parser reports the error and treats the construct as failed. The
// parser never inspects the returned nodes other than through the Node, Decl,
// Type and Expr interfaces.
//
// EnterScope and ExitScope bracket struct bodies and blocks. They are always
// called in pairs, also on failure.
type Actions interface {
	EnterScope(ScopeKind)
	ExitScope()

	ActOnTypeAlias(kw Token, name Ident, assign Token, typ Type) (Decl, error)
	ActOnOneOfDecl(kw Token, name Ident, body *OneOfType) (Decl, error)
	ActOnStructDecl(kw Token, name Ident, attrs *Attributes, lbrace Token, members []Decl, rbrace Token) (Decl, error)
	ActOnVarDecl(kw Token, attrs *Attributes, name *VarName, colon Token, typ Type, assign Token, init Expr) (Decl, error)
	ActOnFuncDecl(kw Token, attrs *Attributes, name Ident, params *TupleType, arrow Token, result Type, body *BraceExpr) (Decl, error)

	ActOnNamedType(name Ident) (Type, error)
	ActOnTupleType(lparen Token, elts []*TupleTypeElt, rparen Token) (*TupleType, error)
	ActOnOneOfType(kw Token, attrs *Attributes, lbrace Token, elts []*OneOfElt, rbrace Token) (*OneOfType, error)
	ActOnFuncType(in Type, arrow Token, out Type) (Type, error)

	ActOnIdentExpr(name Ident) (Expr, error)
	ActOnLiteralExpr(lit Token) (Expr, error)
	ActOnParenExpr(lparen Token, elts []Expr, rparen Token) (*ParenExpr, error)
	ActOnBraceExpr(lbrace Token, elts []Node, rbrace Token) (*BraceExpr, error)
	ActOnUnaryExpr(op Token, x Expr) (Expr, error)
	ActOnBinaryExpr(lhs Expr, op Token, rhs Expr) (Expr, error)
	ActOnCallExpr(fn Expr, args *ParenExpr) (Expr, error)
	ActOnMemberExpr(x Expr, dot Token, name Ident) (Expr, error)
}

// Scope binds names to their declarations.
type Scope struct {
	Kind   ScopeKind
	Nodes  map[string]Node
	Parent *Scope
}

func newScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{Kind: kind, Parent: parent}
}

// IsUnit reports whether s is the scope of a translation unit.
func (s *Scope) IsUnit() bool { return s.Parent == nil }

// check reports whether nm can be bound in s.
func (s *Scope) check(nm Ident) error {
	if nm.Name == "_" {
		return nil
	}

	if x, ok := s.Nodes[nm.Name]; ok {
		return errorf("%s redeclared, previous declaration at %v:", nm.Name, x.Position())
	}

	return nil
}

func (s *Scope) add(nm Ident, n Node) error {
	if err := s.check(nm); err != nil || nm.Name == "_" {
		return err
	}

	if s.Nodes == nil {
		s.Nodes = map[string]Node{}
	}
	s.Nodes[nm.Name] = n
	return nil
}

// Lookup searches s and its parents for nm and returns the declaring node and
// the scope it was found in.
func (s *Scope) Lookup(nm string) (Node, *Scope) {
	for ; s != nil; s = s.Parent {
		if n, ok := s.Nodes[nm]; ok {
			return n, s
		}
	}
	return nil, nil
}

// Sema is the default implementation of Actions. It builds the syntax tree,
// binds declared names in nested scopes and checks the rules that do not
// depend on name resolution.
//
// A Sema instance serves a single parsing pass.
type Sema struct {
	nodes []Node
	scope *Scope
	sink  DiagnosticSink
	unit  *Scope
}

// NewSema returns a newly created Sema. Warnings are recorded in sink.
func NewSema(sink DiagnosticSink) *Sema {
	s := &Sema{sink: sink, unit: newScope(nil, UnitScope)}
	s.scope = s.unit
	return s
}

// Scope returns the scope of the translation unit.
func (s *Sema) Scope() *Scope { return s.unit }

// Nodes returns every node created by s, in creation order.
func (s *Sema) Nodes() []Node { return s.nodes }

func (s *Sema) keep(n Node) { s.nodes = append(s.nodes, n) }

func (s *Sema) warn(n Node, msg string, args ...interface{}) {
	if s.sink == nil {
		return
	}

	s.sink.Record(Diagnostic{Position: n.Position(), Severity: Warning, Message: fmt.Sprintf(msg, args...)})
}

func (s *Sema) checkAttributes(attrs *Attributes) {
	for _, v := range attrs.list() {
		if !knownAttributes[v.Name.Name] {
			s.warn(v, "unknown attribute @%s", v.Name.Name)
		}
	}
}

// EnterScope implements Actions.
func (s *Sema) EnterScope(kind ScopeKind) { s.scope = newScope(s.scope, kind) }

// ExitScope implements Actions.
func (s *Sema) ExitScope() {
	if s.scope.Parent == nil {
		panic(todo("internal error: unbalanced ExitScope"))
	}

	s.scope = s.scope.Parent
}

// ActOnTypeAlias implements Actions.
func (s *Sema) ActOnTypeAlias(kw Token, name Ident, assign Token, typ Type) (Decl, error) {
	n := &TypeAliasDecl{TypeAlias: kw, Name: name, Assign: assign, Type: typ}
	if err := s.scope.add(name, n); err != nil {
		return nil, err
	}

	s.keep(n)
	return n, nil
}

// ActOnOneOfDecl implements Actions.
func (s *Sema) ActOnOneOfDecl(kw Token, name Ident, body *OneOfType) (Decl, error) {
	n := &OneOfDecl{OneOf: kw, Name: name, Body: body}
	if err := s.scope.add(name, n); err != nil {
		return nil, err
	}

	s.keep(n)
	return n, nil
}

// ActOnStructDecl implements Actions.
func (s *Sema) ActOnStructDecl(kw Token, name Ident, attrs *Attributes, lbrace Token, members []Decl, rbrace Token) (Decl, error) {
	n := &StructDecl{Struct: kw, Name: name, Attrs: attrs, LBrace: lbrace, Members: members, RBrace: rbrace}
	if err := s.scope.add(name, n); err != nil {
		return nil, err
	}

	s.checkAttributes(attrs)
	s.keep(n)
	return n, nil
}

// ActOnVarDecl implements Actions.
func (s *Sema) ActOnVarDecl(kw Token, attrs *Attributes, name *VarName, colon Token, typ Type, assign Token, init Expr) (Decl, error) {
	if typ == nil && init == nil {
		return nil, errorf("variable declaration requires a type or an initializer")
	}

	n := &VarDecl{Var: kw, Attrs: attrs, Name: name, Colon: colon, Type: typ, Assign: assign, Init: init}
	names := name.Names()
	seen := map[string]Ident{}
	for _, v := range names {
		if prev, ok := seen[v.Name]; ok && v.Name != "_" {
			return nil, errorf("%s repeated in variable pattern, previous at %v:", v.Name, prev.Position())
		}

		seen[v.Name] = v
		if err := s.scope.check(v); err != nil {
			return nil, err
		}
	}
	for _, v := range names {
		s.scope.add(v, n)
	}
	s.checkAttributes(attrs)
	s.keep(n)
	return n, nil
}

// ActOnFuncDecl implements Actions.
//
// Operator functions may be declared repeatedly, they are not bound in the
// scope. An operator function carrying an infix attribute must have exactly
// two parameters.
func (s *Sema) ActOnFuncDecl(kw Token, attrs *Attributes, name Ident, params *TupleType, arrow Token, result Type, body *BraceExpr) (Decl, error) {
	n := &FuncDecl{Func: kw, Attrs: attrs, Name: name, Params: params, Arrow: arrow, Result: result, Body: body}
	op, isInfix, err := operatorFromAttributes(attrs)
	if err != nil {
		return nil, err
	}

	switch {
	case n.IsOperator():
		switch nparams := len(params.Elts); {
		case isInfix && nparams != 2:
			return nil, errorf("infix operator %s (precedence %d) requires 2 parameters, have %d", name.Name, op.Precedence, nparams)
		case nparams != 1 && nparams != 2:
			return nil, errorf("operator %s requires 1 or 2 parameters, have %d", name.Name, nparams)
		}
	case isInfix:
		return nil, errorf("infix attribute on non-operator function %s", name.Name)
	default:
		if err := s.scope.add(name, n); err != nil {
			return nil, err
		}
	}
	s.checkAttributes(attrs)
	s.keep(n)
	return n, nil
}

// ActOnNamedType implements Actions.
func (s *Sema) ActOnNamedType(name Ident) (Type, error) {
	n := &NamedType{Name: name}
	s.keep(n)
	return n, nil
}

// ActOnTupleType implements Actions. Element names must be unique.
func (s *Sema) ActOnTupleType(lparen Token, elts []*TupleTypeElt, rparen Token) (*TupleType, error) {
	seen := map[string]*TupleTypeElt{}
	for _, v := range elts {
		if !v.Name.IsValid() || v.Name.Name == "_" {
			continue
		}

		if prev, ok := seen[v.Name.Name]; ok {
			return nil, errorf("duplicate tuple element %s, previous at %v:", v.Name.Name, prev.Position())
		}

		seen[v.Name.Name] = v
	}
	n := &TupleType{LParen: lparen, Elts: elts, RParen: rparen}
	s.keep(n)
	return n, nil
}

// ActOnOneOfType implements Actions. Case names must be unique, a sum type
// without cases draws a warning.
func (s *Sema) ActOnOneOfType(kw Token, attrs *Attributes, lbrace Token, elts []*OneOfElt, rbrace Token) (*OneOfType, error) {
	seen := map[string]*OneOfElt{}
	for _, v := range elts {
		if prev, ok := seen[v.Name.Name]; ok {
			return nil, errorf("duplicate case %s in oneof, previous at %v:", v.Name.Name, prev.Position())
		}

		seen[v.Name.Name] = v
	}
	n := &OneOfType{OneOf: kw, Attrs: attrs, LBrace: lbrace, Elts: elts, RBrace: rbrace}
	if len(elts) == 0 {
		s.warn(n, "oneof has no cases")
	}
	s.checkAttributes(attrs)
	s.keep(n)
	return n, nil
}

// ActOnFuncType implements Actions.
func (s *Sema) ActOnFuncType(in Type, arrow Token, out Type) (Type, error) {
	n := &FuncType{In: in, Arrow: arrow, Out: out}
	s.keep(n)
	return n, nil
}

// ActOnIdentExpr implements Actions.
func (s *Sema) ActOnIdentExpr(name Ident) (Expr, error) {
	n := &IdentExpr{Ident: name}
	s.keep(n)
	return n, nil
}

// ActOnLiteralExpr implements Actions.
func (s *Sema) ActOnLiteralExpr(lit Token) (Expr, error) {
	n := &LiteralExpr{Lit: lit}
	s.keep(n)
	return n, nil
}

// ActOnParenExpr implements Actions.
func (s *Sema) ActOnParenExpr(lparen Token, elts []Expr, rparen Token) (*ParenExpr, error) {
	n := &ParenExpr{LParen: lparen, Elts: elts, RParen: rparen}
	s.keep(n)
	return n, nil
}

// ActOnBraceExpr implements Actions.
func (s *Sema) ActOnBraceExpr(lbrace Token, elts []Node, rbrace Token) (*BraceExpr, error) {
	n := &BraceExpr{LBrace: lbrace, Elts: elts, RBrace: rbrace}
	s.keep(n)
	return n, nil
}

// ActOnUnaryExpr implements Actions.
func (s *Sema) ActOnUnaryExpr(op Token, x Expr) (Expr, error) {
	n := &UnaryExpr{Op: op, X: x}
	s.keep(n)
	return n, nil
}

// ActOnBinaryExpr implements Actions.
func (s *Sema) ActOnBinaryExpr(lhs Expr, op Token, rhs Expr) (Expr, error) {
	n := &BinaryExpr{LHS: lhs, Op: op, RHS: rhs}
	s.keep(n)
	return n, nil
}

// ActOnCallExpr implements Actions.
func (s *Sema) ActOnCallExpr(fn Expr, args *ParenExpr) (Expr, error) {
	n := &CallExpr{Fn: fn, Args: args}
	s.keep(n)
	return n, nil
}

// ActOnMemberExpr implements Actions.
func (s *Sema) ActOnMemberExpr(x Expr, dot Token, name Ident) (Expr, error) {
	n := &MemberExpr{X: x, Dot: dot, Name: name}
	s.keep(n)
	return n, nil
}
