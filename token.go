// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"go/token"

	mtoken "modernc.org/token"
)

var (
	_ Node = Token{}
)

// Ch represents the lexical value of a Token. Single character punctuation
// is represented by the character itself.
type Ch rune

// Named values of Ch.
const (
	beforeTokens Ch = iota + 0xe000

	ARROW      // ->
	EOF        // end of file
	FLOAT_LIT  // floating point literal
	FUNC       // func
	IDENTIFIER // identifier
	INT_LIT    // integer literal
	ONEOF      // oneof
	OPERATOR   // operator
	STRING_LIT // string literal
	STRUCT     // struct
	TYPEALIAS  // typealias
	VAR        // var

	afterTokens
)

var chNames = map[Ch]string{
	ARROW:      "->",
	EOF:        "end of file",
	FLOAT_LIT:  "floating point literal",
	FUNC:       "func",
	IDENTIFIER: "identifier",
	INT_LIT:    "integer literal",
	ONEOF:      "oneof",
	OPERATOR:   "operator",
	STRING_LIT: "string literal",
	STRUCT:     "struct",
	TYPEALIAS:  "typealias",
	VAR:        "var",
}

// Keywords represents the mapping of identifiers to reserved names.
var Keywords = map[string]Ch{
	"func":      FUNC,
	"oneof":     ONEOF,
	"struct":    STRUCT,
	"typealias": TYPEALIAS,
	"var":       VAR,
}

// String implements fmt.Stringer.
func (c Ch) String() string {
	if s, ok := chNames[c]; ok {
		return s
	}

	if c > beforeTokens && c < afterTokens {
		return fmt.Sprintf("Ch(%#x)", rune(c))
	}

	return fmt.Sprintf("%q", rune(c))
}

// IsKeyword reports whether c is one of the reserved words.
func (c Ch) IsKeyword() bool {
	switch c {
	case FUNC, ONEOF, STRUCT, TYPEALIAS, VAR:
		return true
	}

	return false
}

// Node is an item of the syntax tree.
type Node interface {
	Position() token.Position
}

// Token is the product of Scanner.Scan and a terminal node of the syntax
// tree.
type Token struct { // 24 bytes on 64 bit arch
	source *source

	Ch
	next   int32
	off    int32
	sepOff int32
}

// Position implements Node.
func (n Token) Position() (r token.Position) {
	if n.IsValid() {
		return n.source.position(n.off)
	}

	return r
}

// Offset reports the starting offset of n, in bytes, within the source buffer.
func (n Token) Offset() int { return int(n.off) }

// SepOffset reports the starting offset of n's preceding white space and
// comments, if any, in bytes, within the source buffer.
func (n Token) SepOffset() int { return int(n.sepOff) }

// IsValid reports the validity of n. Tokens not present in some nodes will
// report false.
func (n Token) IsValid() bool { return n.source != nil }

// Sep returns the white space and comments preceding n, if any.
func (n Token) Sep() string {
	if !n.IsValid() {
		return ""
	}

	return string(n.source.buf[n.sepOff:n.off])
}

// Src returns the original textual form of n.
func (n Token) Src() string {
	if !n.IsValid() {
		return ""
	}

	return string(n.source.buf[n.off:n.next])
}

// String pretty formats n.
func (n Token) String() string {
	return fmt.Sprintf("%v: %q %s", n.Position(), n.Src(), n.Ch)
}

type source struct {
	buf  []byte
	file *mtoken.File
	name string
}

func newSource(name string, buf []byte) *source {
	return &source{buf: buf, file: mtoken.NewFile(name, len(buf)), name: name}
}

func (s *source) position(off int32) token.Position {
	return token.Position(s.file.PositionFor(mtoken.Pos(off+1), true))
}
