// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frontend is a recursive descent parser with error recovery for a
// small, declaration oriented language with tuples, sum types, attributes and
// user defined binary operators.
//
// The parser recognizes syntax only. Constructing the tree and checking it is
// delegated to Actions, the default implementation of which is Sema.
// Diagnostics are reported to a DiagnosticSink and parsing always produces a
// tree, even for malformed input.
//
// # Grammar
//
// The grammar, in the EBNF notation of golang.org/x/exp/ebnf, is in
// testdata/grammar.ebnf. Its productions are referred to in the
// documentation of the node types.
//
// # Error recovery
//
// A failed construct records an error and reports failure to its caller.
// Lists, like the declarations of a file or the members of a struct, skip
// ahead to the next plausible boundary and continue. A single malformed
// construct thus produces a single error diagnostic.
//
// Nesting depth is bounded, see ConfigMaxDepth.
package frontend // import "modernc.org/frontend"

import (
	"go.uber.org/zap"
)

// File is the result of parsing a single source file.
type File struct {
	Name        string
	Unit        *TranslationUnit // Never nil.
	Diagnostics []Diagnostic     // Lexical, syntax and semantic, in order of recording.
	Stats       Stats
}

// Err returns the error diagnostics of f combined into a single error, or nil
// if there are none.
func (f *File) Err() error {
	d := Diagnostics{list: f.Diagnostics}
	return d.Err()
}

// ParseFile parses buf as if coming from a file named name. The returned File
// is not nil unless buf cannot be scanned at all. The error is nil if no
// error diagnostic was recorded.
//
// The buffer becomes owned by the result and must not be modified after
// calling ParseFile.
func (c *Config) ParseFile(name string, buf []byte) (*File, error) {
	var key CacheKey
	if c.cache != nil {
		key = c.cacheKey(name, buf)
		if f, ok := c.cache.Get(key); ok {
			c.logger.Debug("cache hit", zap.String("file", name))
			return f, f.Err()
		}
	}

	diags := &Diagnostics{}
	s, err := NewScanner(name, buf, diags)
	if err != nil {
		return nil, err
	}

	unit, stats, _ := Parse(c, s, c.newActions(diags), diags)
	r := &File{Name: name, Unit: unit, Diagnostics: diags.List(), Stats: stats}
	c.logger.Debug("parsed",
		zap.String("file", name),
		zap.String("size", h(len(buf))),
		zap.Int("tokens", stats.Tokens),
		zap.Int("errors", diags.Errors()),
		zap.Int("recoveries", stats.Recoveries),
	)
	if c.cache != nil {
		c.cache.Put(key, r)
	}
	return r, r.Err()
}
