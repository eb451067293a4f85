// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"
)

var (
	_ Lexer = (*Scanner)(nil)
)

// Lexer is the token source of the parser. Next must always return a token,
// once the input is exhausted it must keep returning a token of kind EOF.
type Lexer interface {
	Next() Token
}

// Scanner provides lexical analysis of its buffer.
type Scanner struct {
	*source
	// Tok is the current token. It is valid after first call to Scan. The
	// value is read only.
	Tok Token

	own  *Diagnostics
	sink DiagnosticSink

	errs int
	off  int32 // Index into source.buf.

	c byte // Lookahead byte.

	isClosed bool
}

// NewScanner returns a newly created scanner that will tokenize buf. Positions
// are reported as if buf is coming from a file named name. The buffer becomes
// owned by the scanner and must not be modified after calling NewScanner.
//
// Lexical errors are recorded in sink. If sink is nil, the scanner collects
// them itself and they are reported by Err.
func NewScanner(name string, buf []byte, sink DiagnosticSink) (*Scanner, error) {
	if len(buf) > math.MaxInt32-1 {
		return nil, errorf("%s: source too big: %v bytes", name, h(len(buf)))
	}

	r := &Scanner{
		source: newSource(name, buf),
		sink:   sink,
	}
	if sink == nil {
		r.own = &Diagnostics{}
		r.sink = r.own
	}
	if len(buf) != 0 {
		r.c = buf[0]
		if r.c == '\n' {
			r.file.AddLine(1)
		}
	}
	return r, nil
}

// Err reports any errors the scanner encountered during .Scan() invocations
// when it was created without a diagnostic sink.
func (s *Scanner) Err() error {
	if s.own != nil {
		return s.own.Err()
	}

	if s.errs != 0 {
		return errorf("%s: %v lexical errors", s.name, s.errs)
	}

	return nil
}

func (s *Scanner) err(off int32, msg string, args ...interface{}) {
	s.errs++
	s.sink.Record(Diagnostic{Position: s.position(off), Severity: Error, Message: fmt.Sprintf(msg, args...)})
}

func (s *Scanner) close() {
	if s.isClosed {
		return
	}

	s.Tok.Ch = EOF
	s.Tok.off = s.off
	s.Tok.next = s.off
	s.Tok.source = s.source
	s.isClosed = true
}

func isIDFirst(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c == '_'
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' }
func isIDNext(c byte) bool   { return isIDFirst(c) || isDigit(c) }

func isOperatorChar(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!', '&', '|', '^', '~', '?':
		return true
	}

	return false
}

func (s *Scanner) eof() bool { return int(s.off) >= len(s.buf) }

func (s *Scanner) peek(n int) byte {
	if i := int(s.off) + n; i < len(s.buf) {
		return s.buf[i]
	}

	return 0
}

func (s *Scanner) next() {
	if !s.eof() {
		s.off++
	}
	s.Tok.next = s.off
	if s.eof() {
		s.c = 0
		return
	}

	s.c = s.buf[s.off]
	if s.c == '\n' {
		s.file.AddLine(int(s.off) + 1)
	}
}

func (s *Scanner) nextN(n int) {
	for ; n > 0; n-- {
		s.next()
	}
}

// Next implements Lexer.
func (s *Scanner) Next() Token {
	s.Scan()
	return s.Tok
}

// Scan moves to the next token and returns true if not at end of file. Usage
// example:
//
//	s, _ = NewScanner(name, buf, nil)
//	for s.Scan() {
//		...
//	}
//	if err := s.Err() {
//		...
//	}
func (s *Scanner) Scan() bool {
	if s.isClosed {
		return false
	}

	s.Tok.sepOff = s.off
	s.Tok.source = s.source
again:
	s.Tok.off = s.off
	s.Tok.next = s.off
	switch s.c {
	case ' ', '\t', '\r', '\n':
		s.next()
		goto again
	case '/':
		switch s.peek(1) {
		case '/':
			s.nextN(2)
			s.lineComment()
			goto again
		case '*':
			s.nextN(2)
			s.generalComment()
			goto again
		}

		s.operator()
	case '(', ')', '[', ']', '{', '}', ',', ':', ';', '.', '@':
		s.Tok.Ch = Ch(s.c)
		s.next()
	case '"':
		s.next()
		s.stringLiteral()
	case 0:
		if s.eof() {
			s.close()
			return false
		}

		s.err(s.off, "unexpected %#U", rune(s.c))
		s.next()
		goto again
	default:
		switch {
		case isIDFirst(s.c):
			s.next()
			s.identifierOrKeyword()
		case isDigit(s.c):
			s.numericLiteral()
		case isOperatorChar(s.c):
			s.operator()
		case s.c >= 0x80:
			off := s.off
			switch r := s.rune(); {
			case unicode.IsLetter(r):
				s.identifierOrKeyword()
			default:
				s.err(off, "unexpected %#U", r)
				goto again
			}
		default:
			s.err(s.off, "unexpected %#U", rune(s.c))
			s.next()
			goto again
		}
	}
	return true
}

func (s *Scanner) rune() rune {
	r, sz := utf8.DecodeRune(s.buf[s.off:])
	if sz == 0 {
		sz = 1
	}
	s.nextN(sz)
	return r
}

func (s *Scanner) identifierOrKeyword() {
out:
	for {
		switch {
		case isIDNext(s.c):
			s.next()
		case s.c >= 0x80:
			r, sz := utf8.DecodeRune(s.buf[s.off:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break out
			}

			s.nextN(sz)
		default:
			break out
		}
	}
	if s.Tok.Ch = Keywords[string(s.buf[s.Tok.off:s.off])]; s.Tok.Ch == 0 {
		s.Tok.Ch = IDENTIFIER
	}
}

// Operators are maximal runs of operator characters. The exact spellings "="
// and "->" are punctuation.
func (s *Scanner) operator() {
	for isOperatorChar(s.c) {
		if s.c == '/' && s.off != s.Tok.off && (s.peek(1) == '/' || s.peek(1) == '*') {
			break
		}

		s.next()
	}
	switch string(s.buf[s.Tok.off:s.off]) {
	case "=":
		s.Tok.Ch = '='
	case "->":
		s.Tok.Ch = ARROW
	default:
		s.Tok.Ch = OPERATOR
	}
}

func (s *Scanner) numericLiteral() {
	// Leading digit not consumed.
	s.Tok.Ch = INT_LIT
	if s.c == '0' && (s.peek(1) == 'x' || s.peek(1) == 'X') {
		s.nextN(2)
		if !isHexDigit(s.c) {
			s.err(s.off, "hexadecimal literal has no digits")
			return
		}

		for isHexDigit(s.c) || s.c == '_' {
			s.next()
		}
		return
	}

	s.decimals()
	if s.c == '.' && isDigit(s.peek(1)) {
		s.next()
		s.decimals()
		s.Tok.Ch = FLOAT_LIT
	}
	switch s.c {
	case 'e', 'E':
		s.next()
		switch s.c {
		case '+', '-':
			s.next()
		}
		if !isDigit(s.c) {
			s.err(s.off, "exponent has no digits")
		}

		s.decimals()
		s.Tok.Ch = FLOAT_LIT
	}
}

func (s *Scanner) decimals() {
	for isDigit(s.c) || s.c == '_' {
		s.next()
	}
}

func (s *Scanner) stringLiteral() {
	// Leading " consumed.
	s.Tok.Ch = STRING_LIT
	for {
		switch s.c {
		case '"':
			s.next()
			return
		case '\\':
			off := s.off
			s.next()
			switch s.c {
			case '"', '\\', '0', 'a', 'b', 'f', 'n', 'r', 't', 'v':
				s.next()
			case 'x':
				s.next()
				for i := 0; i < 2; i++ {
					if !isHexDigit(s.c) {
						s.err(off, "invalid escape sequence")
						break
					}

					s.next()
				}
			default:
				s.err(off, "unknown escape sequence")
			}
			continue
		case '\n':
			s.err(s.Tok.off, "string literal not terminated")
			return
		case 0:
			if s.eof() {
				s.err(s.Tok.off, "string literal not terminated")
				return
			}
		}

		if s.c < ' ' && s.c != '\t' {
			s.err(s.off, "non-printable character: %#U", rune(s.c))
		}
		s.next()
	}
}

func (s *Scanner) generalComment() {
	// Leading /* consumed
	off := s.Tok.off
	for {
		switch {
		case s.c == '*' && s.peek(1) == '/':
			s.nextN(2)
			return
		case s.eof():
			s.err(off, "comment not terminated")
			return
		default:
			s.next()
		}
	}
}

func (s *Scanner) lineComment() {
	// Leading // consumed
	for s.c != '\n' && !s.eof() {
		s.next()
	}
}
