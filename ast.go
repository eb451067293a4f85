// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"go/token"
)

var (
	_ = []Node{
		(*Attribute)(nil),
		(*BinaryExpr)(nil),
		(*BraceExpr)(nil),
		(*CallExpr)(nil),
		(*FuncDecl)(nil),
		(*FuncType)(nil),
		(*IdentExpr)(nil),
		(*LiteralExpr)(nil),
		(*MemberExpr)(nil),
		(*NamedType)(nil),
		(*OneOfDecl)(nil),
		(*OneOfElt)(nil),
		(*OneOfType)(nil),
		(*ParenExpr)(nil),
		(*StructDecl)(nil),
		(*TranslationUnit)(nil),
		(*TupleType)(nil),
		(*TupleTypeElt)(nil),
		(*TypeAliasDecl)(nil),
		(*UnaryExpr)(nil),
		(*VarDecl)(nil),
		(*VarName)(nil),
		Ident{},
	}

	_ = []Decl{
		(*FuncDecl)(nil),
		(*OneOfDecl)(nil),
		(*StructDecl)(nil),
		(*TypeAliasDecl)(nil),
		(*VarDecl)(nil),
	}

	_ = []Type{
		(*FuncType)(nil),
		(*NamedType)(nil),
		(*OneOfType)(nil),
		(*TupleType)(nil),
	}

	_ = []Expr{
		(*BinaryExpr)(nil),
		(*BraceExpr)(nil),
		(*CallExpr)(nil),
		(*IdentExpr)(nil),
		(*LiteralExpr)(nil),
		(*MemberExpr)(nil),
		(*ParenExpr)(nil),
		(*UnaryExpr)(nil),
	}
)

// Decl is a declaration node.
type Decl interface {
	Node
	isDecl()
}

// Type is a type node.
type Type interface {
	Node
	isType()
}

// Expr is an expression node.
type Expr interface {
	Node
	isExpr()
}

type decler struct{}

func (decler) isDecl() {}

type typer struct{}

func (typer) isType() {}

type exprer struct{}

func (exprer) isExpr() {}

// Ident is an identifier with its interned name. Operator function names are
// represented as an Ident holding an OPERATOR token.
type Ident struct {
	Token
	Name string
}

// TranslationUnit is the root of the syntax tree of one source file.
//
//	TranslationUnit = { Decl } .
type TranslationUnit struct {
	Decls []Decl
	EOF   Token
}

// Position implements Node.
func (n *TranslationUnit) Position() (r token.Position) {
	if len(n.Decls) != 0 {
		return n.Decls[0].Position()
	}

	return n.EOF.Position()
}

// Attribute describes a single attribute.
//
//	Attribute = "@" identifier [ "(" ( identifier | int_lit | string_lit ) ")" ] .
type Attribute struct {
	At     Token
	Name   Ident
	LParen Token
	Value  Token
	RParen Token
}

// Position implements Node.
func (n *Attribute) Position() (r token.Position) { return n.At.Position() }

// HasValue reports whether n has a payload.
func (n *Attribute) HasValue() bool { return n.Value.IsValid() }

// Attributes is the set of attributes attached to a declaration or type. A
// nil *Attributes is an empty set.
type Attributes struct {
	List []*Attribute // In source order.
	m    map[string]*Attribute
}

// Len reports the number of attributes in a.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}

	return len(a.List)
}

func (a *Attributes) list() []*Attribute {
	if a == nil {
		return nil
	}

	return a.List
}

// Lookup returns the attribute named nm or nil if there is no such attribute.
func (a *Attributes) Lookup(nm string) *Attribute {
	if a == nil {
		return nil
	}

	return a.m[nm]
}

// add inserts n unless an attribute of the same name is already present, in
// which case the earlier attribute is returned.
func (a *Attributes) add(n *Attribute) (prev *Attribute, ok bool) {
	if a.m == nil {
		a.m = map[string]*Attribute{}
	}
	if prev = a.m[n.Name.Name]; prev != nil {
		return prev, false
	}

	a.m[n.Name.Name] = n
	a.List = append(a.List, n)
	return nil, true
}

// VarName describes the name introduced by a variable declaration.
//
//	VarName = identifier | "(" VarName { "," VarName } ")" .
type VarName struct {
	Name   Ident // Valid if the name is not a pattern.
	LParen Token
	Elts   []*VarName
	RParen Token
}

// Position implements Node.
func (n *VarName) Position() (r token.Position) {
	if n.IsPattern() {
		return n.LParen.Position()
	}

	return n.Name.Position()
}

// IsPattern reports whether n is a destructuring pattern.
func (n *VarName) IsPattern() bool { return n.LParen.IsValid() }

// Names returns the identifiers introduced by n, in source order.
func (n *VarName) Names() (r []Ident) {
	if !n.IsPattern() {
		return []Ident{n.Name}
	}

	for _, v := range n.Elts {
		r = append(r, v.Names()...)
	}
	return r
}

// TypeAliasDecl describes a type alias declaration.
//
//	TypeAlias = "typealias" identifier "=" Type .
type TypeAliasDecl struct {
	decler
	TypeAlias Token
	Name      Ident
	Assign    Token
	Type      Type
}

// Position implements Node.
func (n *TypeAliasDecl) Position() (r token.Position) { return n.TypeAlias.Position() }

// OneOfDecl describes a sum type declaration. Attributes, if any, are those
// of Body.
//
//	OneOfDecl = "oneof" identifier [ AttributeList ] OneOfBody .
type OneOfDecl struct {
	decler
	OneOf Token
	Name  Ident
	Body  *OneOfType
}

// Position implements Node.
func (n *OneOfDecl) Position() (r token.Position) { return n.OneOf.Position() }

// StructDecl describes a struct declaration.
//
//	StructDecl = "struct" identifier [ AttributeList ] "{" { Decl } "}" .
type StructDecl struct {
	decler
	Struct  Token
	Name    Ident
	Attrs   *Attributes
	LBrace  Token
	Members []Decl
	RBrace  Token
}

// Position implements Node.
func (n *StructDecl) Position() (r token.Position) { return n.Struct.Position() }

// VarDecl describes a variable declaration. At least one of Type and Init is
// not nil.
//
//	VarDecl   = "var" [ AttributeList ] VarName ValueSpec .
//	ValueSpec = ":" Type [ "=" Expr ] | "=" Expr .
type VarDecl struct {
	decler
	Var    Token
	Attrs  *Attributes
	Name   *VarName
	Colon  Token
	Type   Type
	Assign Token
	Init   Expr
}

// Position implements Node.
func (n *VarDecl) Position() (r token.Position) { return n.Var.Position() }

// FuncDecl describes a function declaration.
//
//	FuncDecl = "func" [ AttributeList ] ( identifier | operator ) TupleType [ "->" Type ] BraceExpr .
type FuncDecl struct {
	decler
	Func   Token
	Attrs  *Attributes
	Name   Ident
	Params *TupleType
	Arrow  Token
	Result Type
	Body   *BraceExpr
}

// Position implements Node.
func (n *FuncDecl) Position() (r token.Position) { return n.Func.Position() }

// IsOperator reports whether n declares an operator function.
func (n *FuncDecl) IsOperator() bool { return n.Name.Ch == OPERATOR }

// NamedType describes a type referred to by name.
type NamedType struct {
	typer
	Name Ident
}

// Position implements Node.
func (n *NamedType) Position() (r token.Position) { return n.Name.Position() }

// TupleType describes a tuple type. A tuple type with no elements is the unit
// type.
//
//	TupleType = "(" [ TupleElt { "," TupleElt } ] ")" .
type TupleType struct {
	typer
	LParen Token
	Elts   []*TupleTypeElt
	RParen Token
}

// Position implements Node.
func (n *TupleType) Position() (r token.Position) { return n.LParen.Position() }

// TupleTypeElt describes an element of a tuple type.
//
//	TupleElt = [ identifier ":" ] Type .
type TupleTypeElt struct {
	Name  Ident // Valid if the element is named.
	Colon Token
	Type  Type
}

// Position implements Node.
func (n *TupleTypeElt) Position() (r token.Position) {
	if n.Name.IsValid() {
		return n.Name.Position()
	}

	return n.Type.Position()
}

// OneOfType describes the body of a sum type. The same node serves the type
// and the declaration position.
//
//	OneOfBody = "{" [ OneOfElt { "," OneOfElt } [ "," ] ] "}" .
type OneOfType struct {
	typer
	OneOf  Token
	Attrs  *Attributes
	LBrace Token
	Elts   []*OneOfElt
	RBrace Token
}

// Position implements Node.
func (n *OneOfType) Position() (r token.Position) { return n.OneOf.Position() }

// OneOfElt describes a case of a sum type.
//
//	OneOfElt = identifier [ TupleType | ":" Type ] .
type OneOfElt struct {
	Name    Ident
	Colon   Token
	Payload Type // nil if the case carries no value.
}

// Position implements Node.
func (n *OneOfElt) Position() (r token.Position) { return n.Name.Position() }

// FuncType describes a function type.
//
//	Type = TypeSimple [ "->" Type ] .
type FuncType struct {
	typer
	In    Type
	Arrow Token
	Out   Type
}

// Position implements Node.
func (n *FuncType) Position() (r token.Position) { return n.In.Position() }

// IdentExpr describes an identifier used as an expression.
type IdentExpr struct {
	exprer
	Ident
}

// LiteralExpr describes a numeric or string literal.
type LiteralExpr struct {
	exprer
	Lit Token
}

// Position implements Node.
func (n *LiteralExpr) Position() (r token.Position) { return n.Lit.Position() }

// ParenExpr describes a parenthesized expression list.
//
//	ParenExpr = "(" [ Expr { "," Expr } ] ")" .
type ParenExpr struct {
	exprer
	LParen Token
	Elts   []Expr
	RParen Token
}

// Position implements Node.
func (n *ParenExpr) Position() (r token.Position) { return n.LParen.Position() }

// BraceExpr describes a block. Elements are declarations or expressions.
//
//	BraceExpr = "{" { Decl | Expr } "}" .
type BraceExpr struct {
	exprer
	LBrace Token
	Elts   []Node
	RBrace Token
}

// Position implements Node.
func (n *BraceExpr) Position() (r token.Position) { return n.LBrace.Position() }

// UnaryExpr describes a prefix operator application.
type UnaryExpr struct {
	exprer
	Op Token
	X  Expr
}

// Position implements Node.
func (n *UnaryExpr) Position() (r token.Position) { return n.Op.Position() }

// BinaryExpr describes a binary operator application.
type BinaryExpr struct {
	exprer
	LHS Expr
	Op  Token
	RHS Expr
}

// Position implements Node.
func (n *BinaryExpr) Position() (r token.Position) { return n.LHS.Position() }

// CallExpr describes a function application.
type CallExpr struct {
	exprer
	Fn   Expr
	Args *ParenExpr
}

// Position implements Node.
func (n *CallExpr) Position() (r token.Position) { return n.Fn.Position() }

// MemberExpr describes a member selection.
type MemberExpr struct {
	exprer
	X    Expr
	Dot  Token
	Name Ident
}

// Position implements Node.
func (n *MemberExpr) Position() (r token.Position) { return n.X.Position() }
