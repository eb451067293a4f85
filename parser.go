// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"

	"go.uber.org/zap"
	"modernc.org/mathutil"
	"modernc.org/strutil"
)

// Stats reports the counters of a parsing pass.
type Stats struct {
	Errors     int // Error diagnostics recorded by the parser.
	MaxDepth   int // Deepest nesting reached.
	Recoveries int // Resynchronizations that skipped input.
	Tokens     int // Tokens consumed.
}

// parser is the state of a single parsing pass. Nothing in it is shared with
// other passes.
type parser struct {
	actions Actions
	lexer   Lexer
	log     *zap.Logger
	names   *strutil.Pool
	ops     map[string]Operator
	sink    DiagnosticSink
	tok     Token // Lookahead.

	budget   int
	depth    int
	maxDepth int
	stats    Stats

	exhausted bool
}

func newParser(cfg *Config, l Lexer, a Actions, sink DiagnosticSink) *parser {
	p := &parser{
		actions:  a,
		budget:   cfg.budget,
		lexer:    l,
		log:      cfg.logger,
		maxDepth: cfg.maxDepth,
		names:    strutil.NewPool(),
		ops:      cfg.Operators(),
		sink:     sink,
	}
	p.tok = l.Next()
	return p
}

// Parse parses the token stream produced by l. Semantic actions are performed
// by a and diagnostics are recorded in sink. The result is never nil, even in
// the presence of errors. The returned bool is false if the parser or the
// semantic actions rejected any construct. Lexical errors are recorded by the
// lexer and are not accounted for.
func Parse(cfg *Config, l Lexer, a Actions, sink DiagnosticSink) (*TranslationUnit, Stats, bool) {
	p := newParser(cfg, l, a, sink)
	tu := p.parseTranslationUnit()
	return tu, p.stats, p.stats.Errors == 0
}

func (p *parser) record(n Node, sev Severity, msg string, args []interface{}) {
	if len(args) != 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	d := Diagnostic{Severity: sev, Message: msg}
	if n != nil {
		d.Position = n.Position()
	}
	p.sink.Record(d)
}

func (p *parser) note(n Node, msg string, args ...interface{}) { p.record(n, Note, msg, args) }

func (p *parser) warning(n Node, msg string, args ...interface{}) { p.record(n, Warning, msg, args) }

func (p *parser) err(n Node, msg string, args ...interface{}) {
	p.stats.Errors++
	p.record(n, Error, msg, args)
}

// step charges the budget. Once it is exhausted the lookahead turns into EOF
// so every production winds down.
func (p *parser) step() bool {
	if p.budget--; p.budget >= 0 {
		return true
	}

	if !p.exhausted {
		p.exhausted = true
		p.err(p.tok, "resources exhausted")
		p.log.Warn("parser budget exhausted", zap.Stringer("pos", p.tok.Position()))
	}
	p.tok.Ch = EOF
	return false
}

// consumeToken unconditionally advances to the next token and returns the
// previous one. It never moves past EOF.
func (p *parser) consumeToken() (r Token) {
	r = p.tok
	if r.Ch == EOF || !p.step() {
		return r
	}

	p.stats.Tokens++
	p.tok = p.lexer.Next()
	return r
}

// consume advances past the current token, which must be of kind ch.
func (p *parser) consume(ch Ch) Token {
	if p.tok.Ch != ch {
		panic(todo("%v: internal error: consume(%v) at %v", p.tok.Position(), ch, p.tok.Ch))
	}

	return p.consumeToken()
}

// consumeIf consumes the current token if it is of kind ch.
func (p *parser) consumeIf(ch Ch) (r Token, ok bool) {
	if p.tok.Ch != ch {
		return r, false
	}

	return p.consumeToken(), true
}

// parseToken consumes a token of kind ch. Otherwise it records msg, followed
// by a description of the current token, as an error and, if skipTo is not
// empty, skips ahead to the first token of any of the skipTo kinds.
func (p *parser) parseToken(ch Ch, msg string, skipTo ...Ch) (r Token, ok bool) {
	if r, ok = p.consumeIf(ch); ok {
		return r, true
	}

	p.err(p.tok, "%s, found %s", msg, describe(p.tok))
	if len(skipTo) != 0 {
		p.skipUntil(skipTo...)
	}
	return r, false
}

func (p *parser) logRange(start Token, n int) []zap.Field {
	return []zap.Field{zap.Stringer("from", start.Position()), zap.Int("tokens", n), zap.Stringer("to", p.tok.Position())}
}

func (p *parser) at(chs ...Ch) bool {
	for _, v := range chs {
		if p.tok.Ch == v {
			return true
		}
	}
	return false
}

// skipUntil consumes tokens until the current one is of any of the kinds in
// chs or EOF. The matching token is not consumed.
func (p *parser) skipUntil(chs ...Ch) {
	start := p.tok
	n := 0
	for !p.at(chs...) && p.tok.Ch != EOF {
		p.consumeToken()
		n++
	}
	if n == 0 {
		return
	}

	p.stats.Recoveries++
	p.log.Debug("skipped", p.logRange(start, n)...)
	if p.tok.Ch == EOF && !p.exhausted {
		p.note(p.tok, "recovery reached end of input while looking for %s", chList(chs))
	}
}

// skipToDeclBoundary skips to the next token that can start a declaration,
// keeping track of nested braces. A semicolon is a boundary as well. In a
// body a closing brace that is not matched by an earlier opening one ends the
// skip, at top level such a brace is skipped.
func (p *parser) skipToDeclBoundary(inBody bool) {
	start := p.tok
	n := 0
	depth := 0
	defer func() {
		if n != 0 {
			p.stats.Recoveries++
			p.log.Debug("resynchronized", p.logRange(start, n)...)
		}
	}()

	for {
		switch p.tok.Ch {
		case EOF:
			return
		case '{':
			depth++
		case '}':
			switch {
			case depth != 0:
				depth--
			case inBody:
				return
			}
		case ';':
			if depth == 0 {
				return
			}
		default:
			if depth == 0 && declHandlers[p.tok.Ch] != nil {
				return
			}
		}
		p.consumeToken()
		n++
	}
}

// resync recovers after a list element failed. If the element did not
// consume anything, the offending token is skipped first so the enclosing
// loop makes progress.
func (p *parser) resync(tokens int, inBody bool) {
	if p.stats.Tokens == tokens && p.tok.Ch != EOF && !(inBody && p.tok.Ch == '}') {
		p.consumeToken()
	}
	p.skipToDeclBoundary(inBody)
}

// enter accounts for one level of nesting. If the configured limit is
// exceeded it records an error and returns false, otherwise the caller must
// call exit when done.
func (p *parser) enter() bool {
	if !p.step() {
		return false
	}

	if p.depth >= p.maxDepth {
		p.err(p.tok, "nesting too deep (limit %d)", p.maxDepth)
		return false
	}

	p.depth++
	p.stats.MaxDepth = mathutil.Max(p.stats.MaxDepth, p.depth)
	return true
}

func (p *parser) exit() { p.depth-- }

func (p *parser) ident(t Token) Ident { return Ident{t, p.names.Align(t.Src())} }

// parseIdentifier consumes an identifier. Otherwise it records msg as an
// error and fails without consuming anything.
func (p *parser) parseIdentifier(msg string) (r Ident, ok bool) {
	t, ok := p.parseToken(IDENTIFIER, msg)
	if !ok {
		return r, false
	}

	return p.ident(t), true
}

// reject reports a construct refused by the semantic actions.
func (p *parser) reject(n Node, err error) {
	p.err(n, "%v", err)
}

// parseTranslationUnit parses all of the input. It always returns a tree
// holding every declaration that was parsed successfully.
//
//	TranslationUnit = { Decl } .
func (p *parser) parseTranslationUnit() *TranslationUnit {
	r := &TranslationUnit{}
	for p.tok.Ch != EOF {
		if _, ok := p.consumeIf(';'); ok {
			continue
		}

		tokens := p.stats.Tokens
		d, ok := p.parseDeclTopLevel()
		if !ok {
			p.resync(tokens, false)
			continue
		}

		r.Decls = append(r.Decls, d)
	}
	r.EOF = p.tok
	return r
}

func chList(chs []Ch) string {
	switch len(chs) {
	case 0:
		return ""
	case 1:
		return chs[0].String()
	}

	s := ""
	for i, v := range chs {
		switch {
		case i == len(chs)-1:
			s += " or "
		case i != 0:
			s += ", "
		}
		s += v.String()
	}
	return s
}
