// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"modernc.org/strutil"
)

var dumpHooks = strutil.PrettyPrintHooks{
	reflect.TypeOf(Token{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		t := v.(Token)
		if !t.IsValid() {
			return
		}

		f.Format("%s%q %v%s", prefix, t.Src(), t.Position(), suffix)
	},
	reflect.TypeOf(Ident{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		t := v.(Ident)
		if !t.IsValid() {
			return
		}

		f.Format("%s%s %v%s", prefix, t.Name, t.Position(), suffix)
	},
}

// Dump writes an indented representation of the tree rooted at n to w.
func Dump(w io.Writer, n Node) {
	strutil.PrettyPrint(w, n, "", "\n", dumpHooks)
}

// SExpr returns a single line S-expression rendering of n. For example
//
//	var x = 1 + 2 * 3
//
// renders as
//
//	(var x = (+ 1 (* 2 3)))
func SExpr(n Node) string {
	var b strings.Builder
	sexpr(&b, n)
	return b.String()
}

func sexpr(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *TranslationUnit:
		b.WriteString("(unit")
		for _, v := range x.Decls {
			b.WriteByte(' ')
			sexpr(b, v)
		}
		b.WriteByte(')')
	case *TypeAliasDecl:
		fmt.Fprintf(b, "(typealias %s ", x.Name.Name)
		sexpr(b, x.Type)
		b.WriteByte(')')
	case *OneOfDecl:
		fmt.Fprintf(b, "(oneof %s", x.Name.Name)
		sexprOneOf(b, x.Body)
		b.WriteByte(')')
	case *StructDecl:
		fmt.Fprintf(b, "(struct %s", x.Name.Name)
		sexprAttrs(b, x.Attrs)
		for _, v := range x.Members {
			b.WriteByte(' ')
			sexpr(b, v)
		}
		b.WriteByte(')')
	case *VarDecl:
		b.WriteString("(var")
		sexprAttrs(b, x.Attrs)
		b.WriteByte(' ')
		sexpr(b, x.Name)
		if x.Type != nil {
			b.WriteString(" : ")
			sexpr(b, x.Type)
		}
		if x.Init != nil {
			b.WriteString(" = ")
			sexpr(b, x.Init)
		}
		b.WriteByte(')')
	case *VarName:
		if !x.IsPattern() {
			b.WriteString(x.Name.Name)
			break
		}

		b.WriteByte('(')
		for i, v := range x.Elts {
			if i != 0 {
				b.WriteByte(' ')
			}
			sexpr(b, v)
		}
		b.WriteByte(')')
	case *FuncDecl:
		fmt.Fprintf(b, "(func")
		sexprAttrs(b, x.Attrs)
		fmt.Fprintf(b, " %s ", x.Name.Name)
		sexpr(b, x.Params)
		if x.Result != nil {
			b.WriteString(" -> ")
			sexpr(b, x.Result)
		}
		b.WriteByte(' ')
		sexpr(b, x.Body)
		b.WriteByte(')')
	case *NamedType:
		b.WriteString(x.Name.Name)
	case *TupleType:
		b.WriteString("(tuple")
		for _, v := range x.Elts {
			b.WriteByte(' ')
			if v.Name.IsValid() {
				fmt.Fprintf(b, "(%s: ", v.Name.Name)
				sexpr(b, v.Type)
				b.WriteByte(')')
				continue
			}

			sexpr(b, v.Type)
		}
		b.WriteByte(')')
	case *OneOfType:
		b.WriteString("(oneof")
		sexprOneOf(b, x)
		b.WriteByte(')')
	case *FuncType:
		b.WriteString("(-> ")
		sexpr(b, x.In)
		b.WriteByte(' ')
		sexpr(b, x.Out)
		b.WriteByte(')')
	case *IdentExpr:
		b.WriteString(x.Name)
	case *LiteralExpr:
		b.WriteString(x.Lit.Src())
	case *ParenExpr:
		b.WriteString("(paren")
		sexprList(b, x.Elts)
		b.WriteByte(')')
	case *BraceExpr:
		b.WriteString("(brace")
		for _, v := range x.Elts {
			b.WriteByte(' ')
			sexpr(b, v)
		}
		b.WriteByte(')')
	case *UnaryExpr:
		fmt.Fprintf(b, "(%s ", x.Op.Src())
		sexpr(b, x.X)
		b.WriteByte(')')
	case *BinaryExpr:
		fmt.Fprintf(b, "(%s ", x.Op.Src())
		sexpr(b, x.LHS)
		b.WriteByte(' ')
		sexpr(b, x.RHS)
		b.WriteByte(')')
	case *CallExpr:
		b.WriteString("(call ")
		sexpr(b, x.Fn)
		sexprList(b, x.Args.Elts)
		b.WriteByte(')')
	case *MemberExpr:
		b.WriteString("(. ")
		sexpr(b, x.X)
		fmt.Fprintf(b, " %s)", x.Name.Name)
	default:
		fmt.Fprintf(b, "<%T>", x)
	}
}

func sexprList(b *strings.Builder, l []Expr) {
	for _, v := range l {
		b.WriteByte(' ')
		sexpr(b, v)
	}
}

func sexprAttrs(b *strings.Builder, a *Attributes) {
	for _, v := range a.list() {
		fmt.Fprintf(b, " @%s", v.Name.Name)
		if v.HasValue() {
			fmt.Fprintf(b, "(%s)", v.Value.Src())
		}
	}
}

func sexprOneOf(b *strings.Builder, n *OneOfType) {
	sexprAttrs(b, n.Attrs)
	for _, v := range n.Elts {
		b.WriteByte(' ')
		if v.Payload == nil {
			b.WriteString(v.Name.Name)
			continue
		}

		fmt.Fprintf(b, "(%s ", v.Name.Name)
		sexpr(b, v.Payload)
		b.WriteByte(')')
	}
}
