// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupleType(t *testing.T) {
	p, diags := newTestParser(t, "()")
	tt, ok := p.parseTypeTuple()
	require.True(t, ok)
	assert.Empty(t, tt.Elts)
	assert.Empty(t, diags.List())

	p, diags = newTestParser(t, "(a: T, b: U)")
	tt, ok = p.parseTypeTuple()
	require.True(t, ok)
	require.Len(t, tt.Elts, 2)
	assert.Equal(t, "a", tt.Elts[0].Name.Name)
	assert.Equal(t, "b", tt.Elts[1].Name.Name)
	assert.Equal(t, "T", SExpr(tt.Elts[0].Type))
	assert.Equal(t, "U", SExpr(tt.Elts[1].Type))
	assert.Empty(t, diags.List())

	p, diags = newTestParser(t, "(int, b: int -> int, c -> d)")
	tt, ok = p.parseTypeTuple()
	require.True(t, ok)
	assert.Equal(t, "(tuple int (b: (-> int int)) (-> c d))", SExpr(tt))
	assert.False(t, tt.Elts[0].Name.IsValid())
	assert.Empty(t, diags.List())
}

func TestTupleTypeRecovery(t *testing.T) {
	p, diags := newTestParser(t, "(a: , b: int) var")
	_, ok := p.parseTypeTuple()
	require.False(t, ok)
	assert.Equal(t, []string{"expected type after ':' in tuple element, found ','"}, messages(diags, Error))
	assert.Equal(t, Ch(VAR), p.tok.Ch)

	p, diags = newTestParser(t, "(a b) var")
	_, ok = p.parseTypeTuple()
	require.False(t, ok)
	assert.Equal(t, []string{"expected ',' or ')' in tuple type, found identifier b"}, messages(diags, Error))
	assert.Equal(t, Ch(VAR), p.tok.Ch)
}

func TestFuncTypeRightAssoc(t *testing.T) {
	p, diags := newTestParser(t, "A -> B -> C")
	typ, ok := p.parseType("")
	require.True(t, ok)
	assert.Equal(t, "(-> A (-> B C))", SExpr(typ))
	assert.Empty(t, diags.List())

	p, diags = newTestParser(t, "(A -> B) -> C")
	typ, ok = p.parseType("")
	require.True(t, ok)
	assert.Equal(t, "(-> (tuple (-> A B)) C)", SExpr(typ))
	assert.Empty(t, diags.List())

	p, diags = newTestParser(t, "A -> ")
	_, ok = p.parseType("")
	require.False(t, ok)
	assert.Equal(t, []string{"expected type after '->', found end of file"}, messages(diags, Error))

	p, diags = newTestParser(t, "42")
	_, ok = p.parseType("")
	require.False(t, ok)
	assert.Equal(t, []string{"expected type, found integer literal 42"}, messages(diags, Error))
	assert.Equal(t, Ch(INT_LIT), p.tok.Ch, "parseType must not consume on failure")
}

func TestOneOf(t *testing.T) {
	for _, test := range []struct {
		src   string
		sexpr string
		err   string
	}{
		{"oneof E { A, B, }", "(unit (oneof E A B))", ""},
		{"oneof E @export { A }", "(unit (oneof E @export A))", ""},
		{"typealias T = oneof { A, B: int -> int }", "(unit (typealias T (oneof A (B (-> int int)))))", ""},
		{"oneof E { A, 42, B(x: int), C: (int) }", "(unit (oneof E A (B (tuple (x: int))) (C (tuple int))))", "expected case name in oneof, found integer literal 42"},
		{"oneof E { A, (x, {y}), B }", "(unit (oneof E A B))", "expected case name in oneof, found '('"},
		{"oneof E { A B } var x = 1", "(unit (oneof E A) (var x = 1))", "expected ',' or '}' in oneof, found identifier B"},
		{"oneof E { A B C, D }", "(unit (oneof E A D))", "expected ',' or '}' in oneof, found identifier B"},
		{"oneof E { A var x = 1", "(unit (var x = 1))", "expected ',' or '}' in oneof, found keyword var"},
		{"oneof E A var x = 1", "(unit (var x = 1))", "expected '{' in oneof, found identifier A"},
		{"oneof E { A, 1 var x = 1", "(unit (var x = 1))", "expected case name in oneof, found integer literal 1"},
	} {
		tu, diags, _ := parseString(t, test.src)
		assert.Equal(t, test.sexpr, SExpr(tu), test.src)
		switch {
		case test.err == "":
			assert.Empty(t, diags.List(), test.src)
		default:
			assert.Equal(t, []string{test.err}, messages(diags, Error), test.src)
		}
	}
}

func TestOneOfMemberRecovery(t *testing.T) {
	for _, test := range []struct {
		src   string
		sexpr string
	}{
		{"struct S { oneof O { A B } var y: int } var z = 1", "(unit (struct S (oneof O A) (var y : int)) (var z = 1))"},
		{"func f() { var t: oneof { A B } y } var z = 1", "(unit (func f (tuple) (brace (var t : (oneof A)) y)) (var z = 1))"},
	} {
		tu, diags, _ := parseString(t, test.src)
		assert.Equal(t, []string{"expected ',' or '}' in oneof, found identifier B"}, messages(diags, Error), test.src)
		assert.Equal(t, test.sexpr, SExpr(tu), test.src)
	}
}
