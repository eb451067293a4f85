// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"

	"go.uber.org/zap"
)

// declHandlers maps the first token of a declaration to its production.
var declHandlers map[Ch]func(*parser) (Decl, bool)

// parenSync are the tokens where skipping the rest of a malformed
// parenthesized group stops.
var parenSync = []Ch{')', '{', '}', ';', FUNC, ONEOF, STRUCT, TYPEALIAS, VAR}

func init() {
	declHandlers = map[Ch]func(*parser) (Decl, bool){
		FUNC:      (*parser).parseDeclFunc,
		ONEOF:     (*parser).parseDeclOneOf,
		STRUCT:    (*parser).parseDeclStruct,
		TYPEALIAS: (*parser).parseDeclTypeAlias,
		VAR:       (*parser).parseDeclVar,
	}
}

func describe(t Token) string {
	switch t.Ch {
	case IDENTIFIER, INT_LIT, FLOAT_LIT, STRING_LIT, OPERATOR:
		return fmt.Sprintf("%s %s", t.Ch, t.Src())
	case EOF:
		return t.Ch.String()
	}

	if t.Ch.IsKeyword() {
		return fmt.Sprintf("keyword %s", t.Ch)
	}

	return t.Ch.String()
}

// closeGroup skips the rest of a malformed parenthesized group including the
// closing parenthesis, if it is found before any of the other parenSync
// tokens.
func (p *parser) closeGroup() {
	p.skipUntil(parenSync...)
	p.consumeIf(')')
}

// parseDeclTopLevel parses a declaration at the top level.
func (p *parser) parseDeclTopLevel() (Decl, bool) { return p.parseDecl(false) }

// parseDecl dispatches on the current token to a declaration production. A
// token that cannot start a declaration is reported once, skipped, and
// parsing resynchronizes at the next declaration boundary.
func (p *parser) parseDecl(inBody bool) (Decl, bool) {
	f := declHandlers[p.tok.Ch]
	if f == nil {
		p.err(p.tok, "expected declaration, found %s", describe(p.tok))
		p.consumeToken()
		p.skipToDeclBoundary(inBody)
		return nil, false
	}

	if !p.enter() {
		return nil, false
	}

	defer p.exit()

	return f(p)
}

// parseAttributeList parses attributes while the current token is '@'. A
// malformed attribute is reported and the loop continues. The result is nil
// if there is no '@'.
//
// Duplicate attribute names are errors, the first occurrence is kept.
//
//	AttributeList = Attribute { Attribute } .
func (p *parser) parseAttributeList() *Attributes {
	if p.tok.Ch != '@' {
		return nil
	}

	r := &Attributes{}
	for p.tok.Ch == '@' {
		a, ok := p.parseAttribute()
		if !ok {
			continue
		}

		if prev, ok := r.add(a); !ok {
			p.err(a.Name, "duplicate attribute @%s, previous at %v:", a.Name.Name, prev.Position())
		}
	}
	return r
}

// parseAttribute parses a single attribute. On failure the rest of the
// attribute is skipped.
//
//	Attribute = "@" identifier [ "(" ( identifier | int_lit | string_lit ) ")" ] .
func (p *parser) parseAttribute() (r *Attribute, ok bool) {
	r = &Attribute{At: p.consume('@')}
	if r.Name, ok = p.parseIdentifier("expected attribute name"); !ok {
		if p.tok.Ch == '(' {
			p.consumeToken()
			p.closeGroup()
		}
		return nil, false
	}

	if r.LParen, ok = p.consumeIf('('); !ok {
		return r, true
	}

	switch p.tok.Ch {
	case IDENTIFIER, INT_LIT, STRING_LIT:
		r.Value = p.consumeToken()
	default:
		p.err(p.tok, "expected attribute value, found %s", describe(p.tok))
		p.closeGroup()
		return nil, false
	}

	if r.RParen, ok = p.parseToken(')', "expected ')' after attribute value", parenSync...); !ok {
		p.consumeIf(')')
		return nil, false
	}

	return r, true
}

// parseVarName parses the name introduced by a variable declaration. On
// failure of a pattern the rest of the pattern is skipped.
//
//	VarName = identifier | "(" VarName { "," VarName } ")" .
func (p *parser) parseVarName() (*VarName, bool) {
	switch p.tok.Ch {
	case IDENTIFIER:
		return &VarName{Name: p.ident(p.consumeToken())}, true
	case '(':
		if !p.enter() {
			return nil, false
		}

		defer p.exit()

		r := &VarName{LParen: p.consumeToken()}
		for {
			elt, ok := p.parseVarName()
			if !ok {
				p.closeGroup()
				return nil, false
			}

			r.Elts = append(r.Elts, elt)
			if _, ok := p.consumeIf(','); !ok {
				break
			}
		}
		var ok bool
		if r.RParen, ok = p.parseToken(')', "expected ',' or ')' in variable name pattern", parenSync...); !ok {
			p.consumeIf(')')
			return nil, false
		}

		return r, true
	default:
		p.err(p.tok, "expected identifier or '(' in var declaration, found %s", describe(p.tok))
		return nil, false
	}
}

// parseDeclTypeAlias parses a type alias declaration.
//
//	TypeAlias = "typealias" identifier "=" Type .
func (p *parser) parseDeclTypeAlias() (Decl, bool) {
	kw := p.consume(TYPEALIAS)
	name, ok := p.parseIdentifier("expected identifier in typealias declaration")
	if !ok {
		return nil, false
	}

	assign, ok := p.parseToken('=', "expected '=' in typealias declaration")
	if !ok {
		return nil, false
	}

	typ, ok := p.parseType("expected type in typealias declaration")
	if !ok {
		return nil, false
	}

	d, err := p.actions.ActOnTypeAlias(kw, name, assign, typ)
	if err != nil {
		p.reject(name, err)
		return nil, false
	}

	return d, true
}

// parseDeclOneOf parses a sum type declaration. The body is shared with sum
// types in type position.
//
//	OneOfDecl = "oneof" identifier [ AttributeList ] OneOfBody .
func (p *parser) parseDeclOneOf() (Decl, bool) {
	kw := p.consume(ONEOF)
	name, ok := p.parseIdentifier("expected identifier in oneof declaration")
	if !ok {
		return nil, false
	}

	body, ok := p.parseTypeOneOfBody(kw, p.parseAttributeList())
	if !ok {
		return nil, false
	}

	d, err := p.actions.ActOnOneOfDecl(kw, name, body)
	if err != nil {
		p.reject(name, err)
		return nil, false
	}

	return d, true
}

// parseDeclStruct parses a struct declaration. Members are declarations, a
// malformed member is reported and skipped.
//
//	StructDecl = "struct" identifier [ AttributeList ] "{" { Decl } "}" .
func (p *parser) parseDeclStruct() (Decl, bool) {
	kw := p.consume(STRUCT)
	name, ok := p.parseIdentifier("expected identifier in struct declaration")
	if !ok {
		return nil, false
	}

	attrs := p.parseAttributeList()
	lbrace, ok := p.parseToken('{', "expected '{' in struct declaration")
	if !ok {
		return nil, false
	}

	p.actions.EnterScope(StructScope)
	members, rbrace, ok := p.parseDeclBody()
	p.actions.ExitScope()
	if !ok {
		return nil, false
	}

	d, err := p.actions.ActOnStructDecl(kw, name, attrs, lbrace, members, rbrace)
	if err != nil {
		p.reject(name, err)
		return nil, false
	}

	return d, true
}

// parseDeclBody parses declarations up to and including the closing brace.
func (p *parser) parseDeclBody() (r []Decl, rbrace Token, ok bool) {
	for p.tok.Ch != '}' && p.tok.Ch != EOF {
		if _, ok := p.consumeIf(';'); ok {
			continue
		}

		tokens := p.stats.Tokens
		d, ok := p.parseDecl(true)
		if !ok {
			p.resync(tokens, true)
			continue
		}

		r = append(r, d)
	}
	rbrace, ok = p.parseToken('}', "expected '}' at end of struct")
	return r, rbrace, ok
}

// parseDeclVar parses a variable declaration.
//
//	VarDecl = "var" [ AttributeList ] VarName ValueSpec .
func (p *parser) parseDeclVar() (Decl, bool) {
	kw := p.consume(VAR)
	attrs := p.parseAttributeList()
	name, ok := p.parseVarName()
	if !ok {
		return nil, false
	}

	colon, typ, assign, init, ok := p.parseValueSpecifier()
	if !ok {
		return nil, false
	}

	d, err := p.actions.ActOnVarDecl(kw, attrs, name, colon, typ, assign, init)
	if err != nil {
		p.reject(name, err)
		return nil, false
	}

	return d, true
}

// parseValueSpecifier parses the type annotation and the initializer of a
// variable. Either may be absent, reported as nil with ok == true, but not
// both.
//
//	ValueSpec = ":" Type [ "=" Expr ] | "=" Expr .
func (p *parser) parseValueSpecifier() (colon Token, typ Type, assign Token, init Expr, ok bool) {
	if p.tok.Ch != ':' && p.tok.Ch != '=' {
		p.err(p.tok, "expected ':' or '=' in var declaration, found %s", describe(p.tok))
		return colon, nil, assign, nil, false
	}

	var present bool
	if colon, present = p.consumeIf(':'); present {
		if typ, ok = p.parseType("expected type in var declaration"); !ok {
			return colon, nil, assign, nil, false
		}
	}
	if assign, present = p.consumeIf('='); present {
		if init, ok = p.parseExpr("expected initializer in var declaration"); !ok {
			return colon, nil, assign, nil, false
		}
	}
	return colon, typ, assign, init, true
}

// parseDeclFunc parses a function declaration. Once an operator function is
// accepted its infix attribute, if any, defines the operator for the rest of
// the pass.
//
//	FuncDecl = "func" [ AttributeList ] ( identifier | operator ) TupleType [ "->" Type ] BraceExpr .
func (p *parser) parseDeclFunc() (Decl, bool) {
	kw := p.consume(FUNC)
	attrs := p.parseAttributeList()
	var name Ident
	switch p.tok.Ch {
	case IDENTIFIER, OPERATOR:
		name = p.ident(p.consumeToken())
	default:
		p.err(p.tok, "expected function name, found %s", describe(p.tok))
		return nil, false
	}

	if p.tok.Ch != '(' {
		p.err(p.tok, "expected '(' in function declaration, found %s", describe(p.tok))
		return nil, false
	}

	params, ok := p.parseTypeTuple()
	if !ok {
		return nil, false
	}

	var result Type
	arrow, ok := p.consumeIf(ARROW)
	if ok {
		if result, ok = p.parseType("expected result type in function declaration"); !ok {
			return nil, false
		}
	}

	if p.tok.Ch != '{' {
		p.err(p.tok, "expected '{' in function declaration, found %s", describe(p.tok))
		return nil, false
	}

	body, ok := p.parseExprBrace()
	if !ok {
		return nil, false
	}

	d, err := p.actions.ActOnFuncDecl(kw, attrs, name, params, arrow, result, body)
	if err != nil {
		p.reject(name, err)
		return nil, false
	}

	if name.Ch == OPERATOR {
		if op, ok, err := operatorFromAttributes(attrs); err == nil && ok {
			p.ops[name.Name] = op
			p.log.Debug("operator defined", zap.String("op", name.Name), zap.Int("precedence", op.Precedence), zap.Stringer("assoc", op.Assoc))
		}
	}
	return d, true
}
