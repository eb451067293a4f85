// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"strconv"
)

const maxPrecedence = 1000

// Assoc is the associativity of a binary operator.
type Assoc int

// Values of Assoc.
const (
	Left Assoc = iota
	Right
)

// String implements fmt.Stringer.
func (a Assoc) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	}

	return fmt.Sprintf("Assoc(%d)", int(a))
}

// Operator describes a binary operator. Operators of higher precedence bind
// tighter.
type Operator struct {
	Precedence int
	Assoc      Assoc
}

// DefaultOperators returns a new instance of the binary operator table used
// when none is configured.
func DefaultOperators() map[string]Operator {
	return map[string]Operator{
		"||": {2, Left},
		"&&": {3, Left},
		"==": {5, Left},
		"!=": {5, Left},
		"<":  {5, Left},
		"<=": {5, Left},
		">":  {5, Left},
		">=": {5, Left},
		"+":  {10, Left},
		"-":  {10, Left},
		"|":  {10, Left},
		"^":  {10, Left},
		"*":  {20, Left},
		"/":  {20, Left},
		"%":  {20, Left},
		"&":  {20, Left},
		"<<": {20, Left},
		">>": {20, Left},
		"**": {30, Right},
	}
}

var prefixOperators = map[string]bool{
	"!": true,
	"+": true,
	"-": true,
	"~": true,
}

var infixAttributes = map[string]Assoc{
	"infix":       Left,
	"infix_left":  Left,
	"infix_right": Right,
}

func checkOperator(spelling string, op Operator) error {
	switch {
	case spelling == "" || spelling == "=" || spelling == "->":
		return errorf("invalid operator %q", spelling)
	case op.Precedence < 1 || op.Precedence > maxPrecedence:
		return errorf("operator %s: precedence %d out of range [1, %d]", spelling, op.Precedence, maxPrecedence)
	case op.Assoc != Left && op.Assoc != Right:
		return errorf("operator %s: invalid associativity %v", spelling, op.Assoc)
	}

	for i := 0; i < len(spelling); i++ {
		if !isOperatorChar(spelling[i]) {
			return errorf("invalid operator %q", spelling)
		}
	}
	return nil
}

// operatorFromAttributes extracts the binary operator described by the infix
// attributes in attrs. It reports ok == false if there are none.
func operatorFromAttributes(attrs *Attributes) (op Operator, ok bool, err error) {
	var found *Attribute
	for _, v := range attrs.list() {
		assoc, known := infixAttributes[v.Name.Name]
		if !known {
			continue
		}

		if found != nil {
			return op, false, errorf("conflicting attributes @%s and @%s", found.Name.Name, v.Name.Name)
		}

		found = v
		op.Assoc = assoc
	}
	if found == nil {
		return op, false, nil
	}

	if found.Value.Ch != INT_LIT {
		return op, false, errorf("@%s requires an integer precedence", found.Name.Name)
	}

	n, err := strconv.ParseInt(found.Value.Src(), 0, 32)
	if err != nil || n < 1 || n > maxPrecedence {
		return op, false, errorf("@%s: invalid precedence %s", found.Name.Name, found.Value.Src())
	}

	op.Precedence = int(n)
	return op, true, nil
}
