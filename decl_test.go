// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclUnknownTopLevel(t *testing.T) {
	p, diags := newTestParser(t, "42 foo var x = 1")
	_, ok := p.parseDeclTopLevel()
	require.False(t, ok)
	assert.Equal(t, Ch(VAR), p.tok.Ch)
	assert.Equal(t, []string{"expected declaration, found integer literal 42"}, messages(diags, Error))

	tu, diags, _ := parseString(t, "42 foo var x = 1")
	assert.Equal(t, 1, diags.Errors())
	assert.Equal(t, "(unit (var x = 1))", SExpr(tu))
}

func TestDeclSemicolons(t *testing.T) {
	tu, diags, _ := parseString(t, ";; var x = 1; struct S { ; var y = 2 ; } ;")
	assert.Empty(t, diags.List())
	assert.Equal(t, "(unit (var x = 1) (struct S (var y = 2)))", SExpr(tu))
}

func TestStructMemberRecovery(t *testing.T) {
	tu, diags, stats := parseString(t, "struct S { var = 1 var y: int } var z = 2")
	assert.Equal(t, []string{"expected identifier or '(' in var declaration, found '='"}, messages(diags, Error))
	assert.Equal(t, "(unit (struct S (var y : int)) (var z = 2))", SExpr(tu))
	assert.Equal(t, 1, stats.Recoveries)
}

func TestStructUnterminated(t *testing.T) {
	tu, diags, _ := parseString(t, "struct S { var x: int")
	assert.Equal(t, []string{"expected '}' at end of struct, found end of file"}, messages(diags, Error))
	assert.Empty(t, tu.Decls)
}

func TestNestedStructDepth(t *testing.T) {
	tu, diags, stats := parseString(t, "struct A { struct B { struct C { var x: int } } } var z = 1", ConfigMaxDepth(3))
	assert.Equal(t, []string{"nesting too deep (limit 3)"}, messages(diags, Error))
	assert.Equal(t, "(unit (struct A (struct B (struct C))) (var z = 1))", SExpr(tu))
	assert.Equal(t, 3, stats.MaxDepth)
}

func TestVarDecl(t *testing.T) {
	for _, test := range []struct {
		src   string
		sexpr string
		err   string
	}{
		{"var x: int", "(unit (var x : int))", ""},
		{"var x = 1", "(unit (var x = 1))", ""},
		{"var x: int = 1", "(unit (var x : int = 1))", ""},
		{"var ((a, b), c) = t", "(unit (var ((a b) c) = t))", ""},
		{"var x", "(unit)", "expected ':' or '=' in var declaration, found end of file"},
		{"var x = ", "(unit)", "expected initializer in var declaration, found end of file"},
		{"var (a, 1) = x var y = 2", "(unit (var y = 2))", "expected identifier or '(' in var declaration, found integer literal 1"},
		{"var (a b) = x var y = 2", "(unit (var y = 2))", "expected ',' or ')' in variable name pattern, found identifier b"},
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

func TestTypeAliasDecl(t *testing.T) {
	for _, test := range []struct {
		src   string
		sexpr string
		err   string
	}{
		{"typealias T = int", "(unit (typealias T int))", ""},
		{"typealias F = (int, int) -> int", "(unit (typealias F (-> (tuple int int) int)))", ""},
		{"typealias = int var x = 1", "(unit (var x = 1))", "expected identifier in typealias declaration, found '='"},
		{"typealias T int var x = 1", "(unit (var x = 1))", "expected '=' in typealias declaration, found identifier int"},
		{"typealias T = var x = 1", "(unit (var x = 1))", "expected type in typealias declaration, found keyword var"},
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

func TestAttributes(t *testing.T) {
	tu, diags, _ := parseString(t, "var @inline @inline x = 1")
	assert.Equal(t, []string{"duplicate attribute @inline, previous at test.fe:1:5:"}, messages(diags, Error))
	require.Len(t, tu.Decls, 1)
	assert.Equal(t, 1, tu.Decls[0].(*VarDecl).Attrs.Len())

	tu, diags, _ = parseString(t, "var @(1) x = 1")
	assert.Equal(t, []string{"expected attribute name, found '('"}, messages(diags, Error))
	assert.Equal(t, "(unit (var x = 1))", SExpr(tu))

	tu, diags, _ = parseString(t, "var @a(+) x = 1")
	assert.Equal(t, []string{"expected attribute value, found operator +"}, messages(diags, Error))
	assert.Equal(t, "(unit (var x = 1))", SExpr(tu))

	tu, diags, _ = parseString(t, `var @deprecated("old") @export x = 1`)
	assert.Empty(t, diags.List())
	require.Len(t, tu.Decls, 1)
	attrs := tu.Decls[0].(*VarDecl).Attrs
	require.NotNil(t, attrs.Lookup("deprecated"))
	assert.Equal(t, `"old"`, attrs.Lookup("deprecated").Value.Src())
	assert.False(t, attrs.Lookup("export").HasValue())
	assert.Nil(t, attrs.Lookup("inline"))
	assert.Equal(t, `(unit (var @deprecated("old") @export x = 1))`, SExpr(tu))
}

func TestFuncDecl(t *testing.T) {
	for _, test := range []struct {
		src   string
		sexpr string
		err   string
	}{
		{"func f() { }", "(unit (func f (tuple) (brace)))", ""},
		{"func f(a: int) -> int { a }", "(unit (func f (tuple (a: int)) -> int (brace a)))", ""},
		{"func f(a: int) -> int var x = 1", "(unit (var x = 1))", "expected '{' in function declaration, found keyword var"},
		{"func (a: int) { a }", "(unit)", "expected function name, found '('"},
		{"func f { } var x = 1", "(unit (var x = 1))", "expected '(' in function declaration, found '{'"},
		{"func f() -> { } var x = 1", "(unit (var x = 1))", "expected result type in function declaration, found '{'"},
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

func TestOperatorFunc(t *testing.T) {
	tu, diags, _ := parseString(t, "func @infix_right(40) ^^ (a: int, b: int) -> int { a }\nvar x = 1 ^^ 2 ^^ 3 * 4")
	assert.Empty(t, diags.List())
	require.Len(t, tu.Decls, 2)
	assert.Equal(t, "(var x = (* (^^ 1 (^^ 2 3)) 4))", SExpr(tu.Decls[1]))

	tu, diags, _ = parseString(t, "func @infix(5) !! (a: int) { a }\nvar y = 1 !! 2")
	assert.Equal(t, []string{
		"infix operator !! (precedence 5) requires 2 parameters, have 1",
		"undefined binary operator !!",
	}, messages(diags, Error))
	assert.Empty(t, tu.Decls)

	tu, diags, _ = parseString(t, "func + (a: int) { a } func + (a: int, b: int) { a }")
	assert.Empty(t, diags.List(), "operator functions are not bound in scope")
	assert.Len(t, tu.Decls, 2)

	for _, test := range []struct {
		src string
		err string
	}{
		{"func @infix(0) <+> (a: int, b: int) { a }", "@infix: invalid precedence 0"},
		{"func @infix(1001) <+> (a: int, b: int) { a }", "@infix: invalid precedence 1001"},
		{"func @infix(x) <+> (a: int, b: int) { a }", "@infix requires an integer precedence"},
		{"func @infix <+> (a: int, b: int) { a }", "@infix requires an integer precedence"},
		{"func @infix(3) @infix_right(4) <+> (a: int, b: int) { a }", "conflicting attributes @infix and @infix_right"},
		{"func @infix(3) foo(a: int, b: int) { a }", "infix attribute on non-operator function foo"},
		{"func <+> () { 1 }", "operator <+> requires 1 or 2 parameters, have 0"},
	} {
		tu, diags, _ := parseString(t, test.src)
		assert.Equal(t, []string{test.err}, messages(diags, Error), test.src)
		assert.Empty(t, tu.Decls, test.src)
	}
}

func TestOperatorScopeIsPerPass(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	_, err = cfg.ParseFile("a.fe", []byte("func @infix(15) <> (a: int, b: int) { a } var x = 1 <> 2"))
	require.NoError(t, err)
	assert.NotContains(t, cfg.Operators(), "<>")

	f, err := cfg.ParseFile("b.fe", []byte("var x = 1 <> 2"))
	require.Error(t, err)
	assert.Equal(t, "undefined binary operator <>", f.Diagnostics[0].Message)
}
