// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"go/token"

	"go.uber.org/multierr"
)

// Severity classifies a Diagnostic.
type Severity int

// Values of Severity.
const (
	Note Severity = iota
	Warning
	Error
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}

	return fmt.Sprintf("Severity(%d)", int(s))
}

// Diagnostic is a message attached to a source position.
type Diagnostic struct {
	Position token.Position
	Severity Severity
	Message  string
}

// Error implements error.
func (d Diagnostic) Error() string { return fmt.Sprintf("%v: %s", d.Position, d.Message) }

// String pretty formats d.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %s: %s", d.Position, d.Severity, d.Message)
}

// DiagnosticSink receives the diagnostics produced while scanning and
// parsing.
type DiagnosticSink interface {
	Record(Diagnostic)
}

// Diagnostics is a DiagnosticSink collecting everything it receives. The zero
// value is ready to use.
type Diagnostics struct {
	list   []Diagnostic
	errors int
}

// Record implements DiagnosticSink.
func (d *Diagnostics) Record(x Diagnostic) {
	d.list = append(d.list, x)
	if x.Severity == Error {
		d.errors++
	}
}

// List returns the recorded diagnostics in the order of recording. The result
// is read only.
func (d *Diagnostics) List() []Diagnostic { return d.list }

// Errors reports the number of recorded error diagnostics.
func (d *Diagnostics) Errors() int { return d.errors }

// Err returns the recorded error diagnostics combined into a single error, or
// nil if there are none. An error repeated at the same position with the same
// message is reported once.
func (d *Diagnostics) Err() (err error) {
	seen := map[Diagnostic]struct{}{}
	for _, v := range d.list {
		if v.Severity != Error {
			continue
		}

		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		err = multierr.Append(err, v)
	}
	return err
}
