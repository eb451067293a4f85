// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Package is the result of ParseDir.
type Package struct {
	Dir   string
	Files []*File // Sorted by name.
}

// Diagnostics returns the diagnostics of all files of p, in file order.
func (p *Package) Diagnostics() (r []Diagnostic) {
	for _, v := range p.Files {
		r = append(r, v.Diagnostics...)
	}
	return r
}

// ParseDir parses the files in dir having the configured extension. Files are
// parsed concurrently, every file in its own pass. The result contains every
// file that could be read, including files with errors. The returned error
// combines all errors in file order.
func (c *Config) ParseDir(dir string) (*Package, error) {
	names, err := c.sources(dir)
	if err != nil {
		return nil, err
	}

	slices.Sort(names)
	files := make([]*File, len(names))
	errs := make([]error, len(names))
	p := newParallel(c.parallel)
	for i, nm := range names {
		i := i
		nm := nm
		p.file()
		p.exec(func() error {
			b, err := c.readFile(nm)
			if err != nil {
				p.fail()
				errs[i] = err
				return nil
			}

			if files[i], errs[i] = c.ParseFile(nm, b); errs[i] != nil {
				p.fail()
				return nil
			}

			p.ok()
			return nil
		})
	}
	if err := p.wait(); err != nil {
		return nil, err
	}

	c.logger.Debug("parsed directory",
		zap.String("dir", dir),
		zap.Int32("files", p.files),
		zap.Int32("ok", p.oks),
		zap.Int32("failed", p.fails),
	)
	r := &Package{Dir: dir}
	for _, v := range files {
		if v != nil {
			r.Files = append(r.Files, v)
		}
	}
	return r, multierr.Combine(errs...)
}
