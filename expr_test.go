// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseInit(t *testing.T, src string, opts ...ConfigOption) (string, *Diagnostics) {
	tu, diags, _ := parseString(t, "var x = "+src, opts...)
	if len(tu.Decls) != 1 {
		return "", diags
	}

	return SExpr(tu.Decls[0].(*VarDecl).Init), diags
}

func TestExpr(t *testing.T) {
	for i, test := range []struct {
		src   string
		sexpr string
	}{
		{"1", "1"},
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 + 2 + 3", "(+ (+ 1 2) 3)"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a - b + c * d - e", "(- (+ (- a b) (* c d)) e)"},
		{"a ** b ** c", "(** a (** b c))"},
		{"a * b ** c ** d * e", "(* (* a (** b (** c d))) e)"},
		{"a || b && c == d", "(|| a (&& b (== c d)))"},
		{"-a * b", "(* (- a) b)"},
		{"- -a", "(- (- a))"},
		{"!f(x, y).z", "(! (. (call f x y) z))"},
		{"(1, 2)", "(paren 1 2)"},
		{"()", "(paren)"},
		{"(a + b) * c", "(* (paren (+ a b)) c)"},
		{"f()(1)", "(call (call f) 1)"},
		{"a.b.c", "(. (. a b) c)"},
		{`1.5 + "s"`, `(+ 1.5 "s")`},
		{"{ var t = 1 t + 1 }", "(brace (var t = 1) (+ t 1))"},
		{"{ a -b }", "(brace (- a b))"},
		{"{ a !b }", "(brace a (! b))"},
		{"{ func f() { 1 } f() }", "(brace (func f (tuple) (brace 1)) (call f))"},
	} {
		got, diags := parseInit(t, test.src)
		if len(diags.List()) != 0 {
			t.Errorf("%v: %q: unexpected diagnostics\n%s", i, test.src, dumpDiagnostics(diags))
			continue
		}

		if g, e := got, test.sexpr; g != e {
			t.Errorf("%v: %q:\ngot %s\nexp %s", i, test.src, g, e)
		}
	}
}

func TestConfiguredOperators(t *testing.T) {
	got, diags := parseInit(t, "1 <> 2 * 3", ConfigOperator("<>", 15, Left))
	assert.Empty(t, diags.List())
	assert.Equal(t, "(<> 1 (* 2 3))", got)

	got, diags = parseInit(t, "1 * 2 <> 3", ConfigOperator("<>", 25, Left))
	assert.Empty(t, diags.List())
	assert.Equal(t, "(* 1 (<> 2 3))", got)

	ops := ConfigOperators(map[string]Operator{"+": {10, Right}})
	got, diags = parseInit(t, "a + b + c", ops)
	assert.Empty(t, diags.List())
	assert.Equal(t, "(+ a (+ b c))", got)

	_, diags = parseInit(t, "a * b", ConfigOperators(map[string]Operator{"+": {10, Left}}))
	assert.Equal(t, []string{"undefined binary operator *"}, messages(diags, Error))
}

func TestUndefinedOperator(t *testing.T) {
	tu, diags, _ := parseString(t, "var x = a <=> b\nvar y = 1")
	assert.Equal(t, []string{"undefined binary operator <=>"}, messages(diags, Error))
	assert.Equal(t, "(unit (var y = 1))", SExpr(tu))
}

func TestDepthLimit(t *testing.T) {
	const n = 300
	src := "var x = " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + "\nvar y = 2"
	tu, diags, stats := parseString(t, src)
	assert.Equal(t, []string{"nesting too deep (limit 256)"}, messages(diags, Error))
	assert.Empty(t, messages(diags, Note))
	assert.Equal(t, "(unit (var y = 2))", SExpr(tu))
	assert.Equal(t, DefaultMaxDepth, stats.MaxDepth)

	tu, diags, _ = parseString(t, "var x = "+strings.Repeat("- ", n)+"1", ConfigMaxDepth(16))
	assert.Equal(t, []string{"nesting too deep (limit 16)"}, messages(diags, Error))
	assert.Empty(t, tu.Decls)

	src = "typealias T = " + strings.Repeat("(", n) + "int" + strings.Repeat(")", n)
	_, diags, _ = parseString(t, src, ConfigMaxDepth(32))
	assert.Equal(t, []string{"nesting too deep (limit 32)"}, messages(diags, Error))
}

func TestParenRecovery(t *testing.T) {
	tu, diags, _ := parseString(t, "var x = (1, +) var y = 2")
	assert.Equal(t, []string{"expected operand of prefix +, found ')'"}, messages(diags, Error))
	assert.Equal(t, "(unit (var y = 2))", SExpr(tu))

	tu, diags, _ = parseString(t, "var x = f(1 2) var y = 2")
	assert.Equal(t, []string{"expected ',' or ')' in parenthesized list, found integer literal 2"}, messages(diags, Error))
	assert.Equal(t, "(unit (var y = 2))", SExpr(tu))

	tu, diags, _ = parseString(t, "var x = a. var y = 2")
	assert.Equal(t, []string{"expected member name after '.', found keyword var"}, messages(diags, Error))
	assert.Equal(t, "(unit (var y = 2))", SExpr(tu))
}

func TestBlockRecovery(t *testing.T) {
	tu, diags, _ := parseString(t, "func f() { a + ) b } var z = 1")
	assert.Equal(t, []string{"expected operand of +, found ')'"}, messages(diags, Error))
	assert.Equal(t, "(unit (func f (tuple) (brace)) (var z = 1))", SExpr(tu))

	tu, diags, _ = parseString(t, "func f() { a : b } var z = 1")
	assert.Equal(t, []string{"expected declaration or expression in block, found ':'"}, messages(diags, Error))
	assert.Equal(t, "(unit (func f (tuple) (brace a)) (var z = 1))", SExpr(tu))

	tu, diags, _ = parseString(t, "func f() { { x } ) y } var z = 1")
	assert.Equal(t, []string{"expected declaration or expression in block, found ')'"}, messages(diags, Error))
	assert.Equal(t, "(unit (func f (tuple) (brace (brace x))) (var z = 1))", SExpr(tu))

	tu, diags, _ = parseString(t, "func f() { a")
	assert.Equal(t, []string{"expected '}' at end of block, found end of file"}, messages(diags, Error))
	assert.Empty(t, tu.Decls)
}

func TestIsStartOfExpr(t *testing.T) {
	for i, test := range []struct {
		src string
		ok  bool
	}{
		{"a", true},
		{"(", true},
		{"{", true},
		{"1", true},
		{"1.5", true},
		{`"s"`, true},
		{"-", true},
		{"!", true},
		{"*", false},
		{"var", false},
		{")", false},
		{"->", false},
		{"", false},
	} {
		p, diags := newTestParser(t, test.src)
		tok := p.tok
		require.Equal(t, test.ok, p.isStartOfExpr(p.tok), "%v: %q", i, test.src)
		assert.Equal(t, tok, p.tok, "%v: %q", i, test.src)
		assert.Empty(t, diags.List(), "%v: %q", i, test.src)
	}
}
