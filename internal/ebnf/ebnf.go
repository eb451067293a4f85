// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ebnf analyzes the grammar of the language for the parser tests.
//
// Productions with names starting with a lower case letter are lexical, they
// are treated as terminals.
package ebnf // import "modernc.org/frontend/internal/ebnf"

import (
	"bytes"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Grammar is a verified grammar.
type Grammar struct {
	ebnf.Grammar
	Start string

	first    map[string]map[string]struct{}
	nullable map[string]bool
}

// Load parses and verifies the grammar in src. Positions are reported as if
// src is coming from a file named name.
func Load(name, start string, src []byte) (*Grammar, error) {
	g, err := ebnf.Parse(name, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	if err := ebnf.Verify(g, start); err != nil {
		return nil, err
	}

	r := &Grammar{Grammar: g, Start: start}
	r.computeFirst()
	return r, nil
}

// IsLexical reports whether nm is the name of a lexical production.
func IsLexical(nm string) bool {
	r, _ := utf8.DecodeRuneInString(nm)
	return !unicode.IsUpper(r)
}

func (g *Grammar) syntactic() (r []string) {
	for k := range g.Grammar {
		if !IsLexical(k) {
			r = append(r, k)
		}
	}
	slices.Sort(r)
	return r
}

func (g *Grammar) computeFirst() {
	g.first = map[string]map[string]struct{}{}
	g.nullable = map[string]bool{}
	names := g.syntactic()
	for _, v := range names {
		g.first[v] = map[string]struct{}{}
	}
	for changed := true; changed; {
		changed = false
		for _, nm := range names {
			first, nullable := g.firstOf(g.Grammar[nm].Expr)
			set := g.first[nm]
			for k := range first {
				if _, ok := set[k]; !ok {
					set[k] = struct{}{}
					changed = true
				}
			}
			if nullable && !g.nullable[nm] {
				g.nullable[nm] = true
				changed = true
			}
		}
	}
}

func (g *Grammar) firstOf(e ebnf.Expression) (r map[string]struct{}, nullable bool) {
	r = map[string]struct{}{}
	switch x := e.(type) {
	case nil:
		return r, true
	case ebnf.Alternative:
		for _, v := range x {
			f, n := g.firstOf(v)
			for k := range f {
				r[k] = struct{}{}
			}
			nullable = nullable || n
		}
		return r, nullable
	case ebnf.Sequence:
		for _, v := range x {
			f, n := g.firstOf(v)
			for k := range f {
				r[k] = struct{}{}
			}
			if !n {
				return r, false
			}
		}
		return r, true
	case *ebnf.Name:
		if IsLexical(x.String) {
			r[x.String] = struct{}{}
			return r, false
		}

		for k := range g.first[x.String] {
			r[k] = struct{}{}
		}
		return r, g.nullable[x.String]
	case *ebnf.Token:
		r[x.String] = struct{}{}
		return r, false
	case *ebnf.Group:
		return g.firstOf(x.Body)
	case *ebnf.Option:
		r, _ = g.firstOf(x.Body)
		return r, true
	case *ebnf.Repetition:
		r, _ = g.firstOf(x.Body)
		return r, true
	default:
		panic(fmt.Sprintf("internal error: %T", x))
	}
}

// First returns the sorted set of terminals that can start the syntactic
// production nm and whether nm can derive the empty string. Terminals are
// literal tokens and the names of lexical productions.
func (g *Grammar) First(nm string) (first []string, nullable bool, err error) {
	set, ok := g.first[nm]
	if !ok {
		return nil, false, fmt.Errorf("no syntactic production %s", nm)
	}

	first = maps.Keys(set)
	slices.Sort(first)
	return first, g.nullable[nm], nil
}

// leftCorner returns the syntactic productions that can appear leftmost in
// an expansion of e.
func (g *Grammar) leftCorner(e ebnf.Expression, m map[string]struct{}) (nullable bool) {
	switch x := e.(type) {
	case nil:
		return true
	case ebnf.Alternative:
		for _, v := range x {
			if g.leftCorner(v, m) {
				nullable = true
			}
		}
		return nullable
	case ebnf.Sequence:
		for _, v := range x {
			if !g.leftCorner(v, m) {
				return false
			}
		}
		return true
	case *ebnf.Name:
		if IsLexical(x.String) {
			return false
		}

		m[x.String] = struct{}{}
		return g.nullable[x.String]
	case *ebnf.Token:
		return false
	case *ebnf.Group:
		return g.leftCorner(x.Body, m)
	case *ebnf.Option:
		g.leftCorner(x.Body, m)
		return true
	case *ebnf.Repetition:
		g.leftCorner(x.Body, m)
		return true
	default:
		panic(fmt.Sprintf("internal error: %T", x))
	}
}

// LeftRecursive returns the sorted names of the syntactic productions that
// can derive a sentential form starting with themselves.
func (g *Grammar) LeftRecursive() (r []string) {
	edges := map[string]map[string]struct{}{}
	for _, nm := range g.syntactic() {
		m := map[string]struct{}{}
		g.leftCorner(g.Grammar[nm].Expr, m)
		edges[nm] = m
	}
	for _, nm := range g.syntactic() {
		seen := map[string]bool{}
		todo := maps.Keys(edges[nm])
		for len(todo) != 0 {
			v := todo[len(todo)-1]
			todo = todo[:len(todo)-1]
			if v == nm {
				r = append(r, nm)
				break
			}

			if seen[v] {
				continue
			}

			seen[v] = true
			todo = append(todo, maps.Keys(edges[v])...)
		}
	}
	return r
}

// Print writes the FIRST sets of all syntactic productions to w.
func (g *Grammar) Print(w io.Writer) error {
	for _, nm := range g.syntactic() {
		first, nullable, err := g.First(nm)
		if err != nil {
			return err
		}

		s := ""
		if nullable {
			s = " (nullable)"
		}
		if _, err := fmt.Fprintf(w, "%s%s: %q\n", nm, s, first); err != nil {
			return err
		}
	}
	return nil
}
