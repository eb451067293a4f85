// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

// exprHandlers maps the first token of a primary expression to its
// production.
var exprHandlers map[Ch]func(*parser) (Expr, bool)

func init() {
	exprHandlers = map[Ch]func(*parser) (Expr, bool){
		'(':        (*parser).parseExprParenExpr,
		'{':        (*parser).parseExprBraceExpr,
		FLOAT_LIT:  (*parser).parseExprLiteral,
		IDENTIFIER: (*parser).parseExprIdentifier,
		INT_LIT:    (*parser).parseExprLiteral,
		STRING_LIT: (*parser).parseExprLiteral,
	}
}

// isStartOfExpr reports whether an expression can start at t.
func (p *parser) isStartOfExpr(t Token) bool {
	if exprHandlers[t.Ch] != nil {
		return true
	}

	return t.Ch == OPERATOR && prefixOperators[t.Src()]
}

// parseExpr parses an expression. If no expression can start at the current
// token it records msg and fails without consuming anything.
//
//	Expr = ExprSingle { binary_operator ExprSingle } .
func (p *parser) parseExpr(msg string) (Expr, bool) {
	lhs, ok := p.parseExprSingle(msg)
	if !ok {
		return nil, false
	}

	return p.parseExprBinaryRHS(lhs, 0)
}

// parseExprSingle parses an operand of a binary expression.
//
//	ExprSingle  = prefix_operator ExprSingle | ExprPostfix .
//	ExprPostfix = ExprPrimary { ParenExpr | "." identifier } .
func (p *parser) parseExprSingle(msg string) (Expr, bool) {
	if !p.enter() {
		return nil, false
	}

	defer p.exit()

	if p.tok.Ch == OPERATOR && prefixOperators[p.tok.Src()] {
		op := p.consumeToken()
		x, ok := p.parseExprSingle("expected operand of prefix " + op.Src())
		if !ok {
			return nil, false
		}

		e, err := p.actions.ActOnUnaryExpr(op, x)
		if err != nil {
			p.reject(op, err)
			return nil, false
		}

		return e, true
	}

	x, ok := p.parseExprPrimary(msg)
	if !ok {
		return nil, false
	}

	return p.parseExprPostfix(x)
}

func (p *parser) parseExprPostfix(x Expr) (Expr, bool) {
	for {
		switch p.tok.Ch {
		case '(':
			args, ok := p.parseExprParen()
			if !ok {
				return nil, false
			}

			e, err := p.actions.ActOnCallExpr(x, args)
			if err != nil {
				p.reject(args, err)
				return nil, false
			}

			x = e
		case '.':
			dot := p.consumeToken()
			nm, ok := p.parseIdentifier("expected member name after '.'")
			if !ok {
				return nil, false
			}

			e, err := p.actions.ActOnMemberExpr(x, dot, nm)
			if err != nil {
				p.reject(nm, err)
				return nil, false
			}

			x = e
		default:
			return x, true
		}
	}
}

// parseExprPrimary parses a primary expression.
//
//	ExprPrimary = identifier | int_lit | float_lit | string_lit | ParenExpr | BraceExpr .
func (p *parser) parseExprPrimary(msg string) (Expr, bool) {
	f := exprHandlers[p.tok.Ch]
	if f == nil {
		if msg == "" {
			msg = "expected expression"
		}
		p.err(p.tok, "%s, found %s", msg, describe(p.tok))
		return nil, false
	}

	return f(p)
}

func (p *parser) parseExprIdentifier() (Expr, bool) {
	nm := p.ident(p.consume(IDENTIFIER))
	e, err := p.actions.ActOnIdentExpr(nm)
	if err != nil {
		p.reject(nm, err)
		return nil, false
	}

	return e, true
}

func (p *parser) parseExprLiteral() (Expr, bool) {
	lit := p.consumeToken()
	e, err := p.actions.ActOnLiteralExpr(lit)
	if err != nil {
		p.reject(lit, err)
		return nil, false
	}

	return e, true
}

func (p *parser) parseExprParenExpr() (Expr, bool) {
	e, ok := p.parseExprParen()
	if !ok {
		return nil, false
	}

	return e, true
}

// parseExprParen parses a parenthesized expression list. It serves both
// grouping and call arguments. On failure the rest of the list is skipped, up
// to and including the closing parenthesis if there is one.
//
//	ParenExpr = "(" [ Expr { "," Expr } ] ")" .
func (p *parser) parseExprParen() (*ParenExpr, bool) {
	lparen := p.consume('(')
	var elts []Expr
	if p.tok.Ch != ')' {
		for {
			e, ok := p.parseExpr("expected expression in parenthesized list")
			if !ok {
				p.closeGroup()
				return nil, false
			}

			elts = append(elts, e)
			if _, ok := p.consumeIf(','); !ok {
				break
			}
		}
	}
	rparen, ok := p.parseToken(')', "expected ',' or ')' in parenthesized list", parenSync...)
	if !ok {
		p.consumeIf(')')
		return nil, false
	}

	e, err := p.actions.ActOnParenExpr(lparen, elts, rparen)
	if err != nil {
		p.reject(lparen, err)
		return nil, false
	}

	return e, true
}

func (p *parser) parseExprBraceExpr() (Expr, bool) {
	e, ok := p.parseExprBrace()
	if !ok {
		return nil, false
	}

	return e, true
}

// parseExprBrace parses a block. Malformed elements are reported and skipped.
//
//	BraceExpr = "{" { Decl | Expr } "}" .
func (p *parser) parseExprBrace() (*BraceExpr, bool) {
	lbrace := p.consume('{')
	p.actions.EnterScope(BlockScope)
	elts, rbrace, ok := p.parseBraceElts()
	p.actions.ExitScope()
	if !ok {
		return nil, false
	}

	e, err := p.actions.ActOnBraceExpr(lbrace, elts, rbrace)
	if err != nil {
		p.reject(lbrace, err)
		return nil, false
	}

	return e, true
}

func (p *parser) parseBraceElts() (r []Node, rbrace Token, ok bool) {
	for p.tok.Ch != '}' && p.tok.Ch != EOF {
		if _, ok := p.consumeIf(';'); ok {
			continue
		}

		tokens := p.stats.Tokens
		var n Node
		switch {
		case declHandlers[p.tok.Ch] != nil:
			if d, ok := p.parseDecl(true); ok {
				n = d
			}
		case p.isStartOfExpr(p.tok):
			if e, ok := p.parseExpr(""); ok {
				n = e
			}
		default:
			p.err(p.tok, "expected declaration or expression in block, found %s", describe(p.tok))
		}
		if n == nil {
			p.resync(tokens, true)
			continue
		}

		r = append(r, n)
	}
	rbrace, ok = p.parseToken('}', "expected '}' at end of block")
	return r, rbrace, ok
}

// binaryOperator returns the binary operator at the current token, if any.
func (p *parser) binaryOperator() (op Operator, ok bool) {
	if p.tok.Ch != OPERATOR {
		return op, false
	}

	op, ok = p.ops[p.tok.Src()]
	return op, ok
}

// parseExprBinaryRHS folds into lhs all following binary operators of
// precedence minPrec or higher, by precedence climbing. It stops without
// consuming at the first token that is not such an operator.
//
// An operator token that is neither a known binary operator nor a prefix
// operator is an error.
func (p *parser) parseExprBinaryRHS(lhs Expr, minPrec int) (Expr, bool) {
	for {
		op, ok := p.binaryOperator()
		if !ok {
			if p.tok.Ch == OPERATOR && !prefixOperators[p.tok.Src()] {
				p.err(p.tok, "undefined binary operator %s", p.tok.Src())
				return nil, false
			}

			return lhs, true
		}

		if op.Precedence < minPrec {
			return lhs, true
		}

		opTok := p.consumeToken()
		rhs, ok := p.parseExprSingle("expected operand of " + opTok.Src())
		if !ok {
			return nil, false
		}

		next := op.Precedence + 1
		if op.Assoc == Right {
			next = op.Precedence
		}
		if op2, ok := p.binaryOperator(); ok && op2.Precedence >= next {
			if !p.enter() {
				return nil, false
			}

			rhs, ok = p.parseExprBinaryRHS(rhs, next)
			p.exit()
			if !ok {
				return nil, false
			}
		}

		e, err := p.actions.ActOnBinaryExpr(lhs, opTok, rhs)
		if err != nil {
			p.reject(opTok, err)
			return nil, false
		}

		lhs = e
	}
}
