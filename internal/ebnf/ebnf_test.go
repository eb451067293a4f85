// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ebnf // import "modernc.org/frontend/internal/ebnf"

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grammarFile = "../../testdata/grammar.ebnf"

func load(t *testing.T) *Grammar {
	b, err := os.ReadFile(grammarFile)
	require.NoError(t, err)
	g, err := Load(grammarFile, "TranslationUnit", b)
	require.NoError(t, err)
	return g
}

func TestLoad(t *testing.T) {
	g := load(t)
	assert.Equal(t, "TranslationUnit", g.Start)
	assert.Empty(t, g.LeftRecursive())
}

func TestLoadErrors(t *testing.T) {
	for i, test := range []struct {
		src string
		err string
	}{
		{"S = A .", "missing production A"},
		{"S = \"x\" . T = \"y\" .", "T is unreachable"},
		{"S = x . x = Y . Y = \"y\" .", "reference to non-lexical production Y"},
		{"S = ", "expected"},
	} {
		_, err := Load("test.ebnf", "S", []byte(test.src))
		if err == nil || !strings.Contains(err.Error(), test.err) {
			t.Errorf("%v: got error %v, expected %q", i, err, test.err)
		}
	}
}

func TestFirst(t *testing.T) {
	g := load(t)
	for _, test := range []struct {
		nm       string
		first    []string
		nullable bool
	}{
		{"Decl", []string{"func", "oneof", "struct", "typealias", "var"}, false},
		{"TranslationUnit", []string{";", "func", "oneof", "struct", "typealias", "var"}, true},
		{"TypeSimple", []string{"(", "identifier", "oneof"}, false},
		{"TupleElt", []string{"(", "identifier", "oneof"}, false},
		{"ExprPrimary", []string{"(", "float_lit", "identifier", "int_lit", "string_lit", "{"}, false},
		{"ExprSingle", []string{"(", "float_lit", "identifier", "int_lit", "prefix_operator", "string_lit", "{"}, false},
		{"ValueSpec", []string{":", "="}, false},
		{"AttributeList", []string{"@"}, false},
	} {
		first, nullable, err := g.First(test.nm)
		require.NoError(t, err, test.nm)
		assert.Equal(t, test.first, first, test.nm)
		assert.Equal(t, test.nullable, nullable, test.nm)
	}

	_, _, err := g.First("identifier")
	assert.Error(t, err)
}

func TestLeftRecursive(t *testing.T) {
	g, err := Load("test.ebnf", "S", []byte(`
S = E .
E = E "+" T | T .
T = "x" | "(" E ")" .
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, g.LeftRecursive())
}

func TestPrint(t *testing.T) {
	g := load(t)
	var buf bytes.Buffer
	require.NoError(t, g.Print(&buf))
	assert.Contains(t, buf.String(), "TranslationUnit (nullable): ")
	assert.Contains(t, buf.String(), `Decl: ["func" "oneof" "struct" "typealias" "var"]`)
}
