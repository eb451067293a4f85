// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

// typeHandlers maps the first token of a type to its production.
var typeHandlers map[Ch]func(*parser) (Type, bool)

// oneOfSync are the tokens, besides ',' and '}', where skipping a malformed
// sum type case stops.
var oneOfSync = []Ch{FUNC, STRUCT, TYPEALIAS, VAR}

func init() {
	typeHandlers = map[Ch]func(*parser) (Type, bool){
		'(':        (*parser).parseTypeParen,
		IDENTIFIER: (*parser).parseTypeIdentifier,
		ONEOF:      (*parser).parseTypeOneOf,
	}
}

// parseType parses a type. If no type can start at the current token it
// records msg and fails without consuming anything.
//
//	Type       = TypeSimple [ "->" Type ] .
//	TypeSimple = identifier | TupleType | "oneof" [ AttributeList ] OneOfBody .
func (p *parser) parseType(msg string) (Type, bool) {
	f := typeHandlers[p.tok.Ch]
	if f == nil {
		if msg == "" {
			msg = "expected type"
		}
		p.err(p.tok, "%s, found %s", msg, describe(p.tok))
		return nil, false
	}

	if !p.enter() {
		return nil, false
	}

	defer p.exit()

	in, ok := f(p)
	if !ok {
		return nil, false
	}

	return p.parseTypeFuncRest(in)
}

// parseTypeFuncRest completes a function type if in is followed by "->".
// The arrow is right associative.
func (p *parser) parseTypeFuncRest(in Type) (Type, bool) {
	arrow, ok := p.consumeIf(ARROW)
	if !ok {
		return in, true
	}

	out, ok := p.parseType("expected type after '->'")
	if !ok {
		return nil, false
	}

	t, err := p.actions.ActOnFuncType(in, arrow, out)
	if err != nil {
		p.reject(arrow, err)
		return nil, false
	}

	return t, true
}

func (p *parser) parseTypeIdentifier() (Type, bool) {
	return p.namedType(p.ident(p.consume(IDENTIFIER)))
}

func (p *parser) namedType(nm Ident) (Type, bool) {
	t, err := p.actions.ActOnNamedType(nm)
	if err != nil {
		p.reject(nm, err)
		return nil, false
	}

	return t, true
}

func (p *parser) parseTypeParen() (Type, bool) {
	t, ok := p.parseTypeTuple()
	if !ok {
		return nil, false
	}

	return t, true
}

// parseTypeTuple parses a parenthesized list of optionally named types. On
// failure the rest of the list is skipped, up to and including the closing
// parenthesis if there is one.
//
//	TupleType = "(" [ TupleElt { "," TupleElt } ] ")" .
func (p *parser) parseTypeTuple() (*TupleType, bool) {
	lparen := p.consume('(')
	var elts []*TupleTypeElt
	if p.tok.Ch != ')' {
		for {
			elt, ok := p.parseTypeTupleElt()
			if !ok {
				p.closeGroup()
				return nil, false
			}

			elts = append(elts, elt)
			if _, ok := p.consumeIf(','); !ok {
				break
			}
		}
	}
	rparen, ok := p.parseToken(')', "expected ',' or ')' in tuple type", parenSync...)
	if !ok {
		p.consumeIf(')')
		return nil, false
	}

	t, err := p.actions.ActOnTupleType(lparen, elts, rparen)
	if err != nil {
		p.reject(lparen, err)
		return nil, false
	}

	return t, true
}

// parseTypeTupleElt parses a tuple element. An identifier is the element name
// only if it is followed by a colon, otherwise it starts the element type.
//
//	TupleElt = [ identifier ":" ] Type .
func (p *parser) parseTypeTupleElt() (*TupleTypeElt, bool) {
	if p.tok.Ch != IDENTIFIER {
		t, ok := p.parseType("expected type in tuple")
		if !ok {
			return nil, false
		}

		return &TupleTypeElt{Type: t}, true
	}

	id := p.ident(p.consume(IDENTIFIER))
	if colon, ok := p.consumeIf(':'); ok {
		t, ok := p.parseType("expected type after ':' in tuple element")
		if !ok {
			return nil, false
		}

		return &TupleTypeElt{Name: id, Colon: colon, Type: t}, true
	}

	t, ok := p.namedType(id)
	if !ok {
		return nil, false
	}

	if t, ok = p.parseTypeFuncRest(t); !ok {
		return nil, false
	}

	return &TupleTypeElt{Type: t}, true
}

func (p *parser) parseTypeOneOf() (Type, bool) {
	kw := p.consume(ONEOF)
	t, ok := p.parseTypeOneOfBody(kw, p.parseAttributeList())
	if !ok {
		return nil, false
	}

	return t, true
}

// parseTypeOneOfBody parses the cases of a sum type. A malformed case, or a
// case not followed by ',' or '}', is reported and skipped up to the next
// separator. The remaining cases are kept.
//
//	OneOfBody = "{" [ OneOfElt { "," OneOfElt } [ "," ] ] "}" .
func (p *parser) parseTypeOneOfBody(kw Token, attrs *Attributes) (*OneOfType, bool) {
	lbrace, ok := p.parseToken('{', "expected '{' in oneof")
	if !ok {
		return nil, false
	}

	var elts []*OneOfElt
	for p.tok.Ch != '}' && p.tok.Ch != EOF {
		elt, ok := p.parseTypeOneOfElt()
		switch {
		case !ok:
			if !p.skipOneOfElt() {
				return nil, false
			}
		default:
			elts = append(elts, elt)
			if p.tok.Ch != ',' && p.tok.Ch != '}' {
				p.err(p.tok, "expected ',' or '}' in oneof, found %s", describe(p.tok))
				if !p.skipOneOfElt() {
					return nil, false
				}
			}
		}

		if _, ok := p.consumeIf(','); !ok {
			break
		}
	}
	rbrace, ok := p.parseToken('}', "expected ',' or '}' in oneof")
	if !ok {
		return nil, false
	}

	t, err := p.actions.ActOnOneOfType(kw, attrs, lbrace, elts, rbrace)
	if err != nil {
		p.reject(kw, err)
		return nil, false
	}

	return t, true
}

// skipOneOfElt skips to the ',' or '}' that ends the current case, keeping
// track of nested braces and parentheses. It reports whether it found one.
func (p *parser) skipOneOfElt() bool {
	start := p.tok
	n := 0
	depth := 0
	defer func() {
		if n != 0 {
			p.stats.Recoveries++
			p.log.Debug("skipped oneof case", p.logRange(start, n)...)
		}
	}()

	for {
		switch p.tok.Ch {
		case EOF:
			return false
		case '(', '{':
			depth++
		case ')':
			if depth != 0 {
				depth--
			}
		case '}':
			if depth == 0 {
				return true
			}

			depth--
		case ',':
			if depth == 0 {
				return true
			}
		default:
			if depth == 0 && p.at(oneOfSync...) {
				return false
			}
		}
		p.consumeToken()
		n++
	}
}

// parseTypeOneOfElt parses a sum type case.
//
//	OneOfElt = identifier [ TupleType | ":" Type ] .
func (p *parser) parseTypeOneOfElt() (*OneOfElt, bool) {
	name, ok := p.parseIdentifier("expected case name in oneof")
	if !ok {
		return nil, false
	}

	r := &OneOfElt{Name: name}
	switch p.tok.Ch {
	case '(':
		if !p.enter() {
			return nil, false
		}

		t, ok := p.parseTypeTuple()
		p.exit()
		if !ok {
			return nil, false
		}

		r.Payload = t
	case ':':
		r.Colon = p.consumeToken()
		t, ok := p.parseType("expected payload type in oneof case")
		if !ok {
			return nil, false
		}

		r.Payload = t
	}
	return r, true
}
