// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/tools/txtar"
)

var (
	oRE  = flag.String("re", "", "")
	oTrc = flag.Bool("trc", false, "")

	re *regexp.Regexp
)

func TestMain(m *testing.M) {
	flag.BoolVar(&extendedErrors, "exterr", false, "")
	flag.Parse()
	if s := *oRE; s != "" {
		re = regexp.MustCompile(s)
	}

	os.Exit(m.Run())
}

const testFile = "test.fe"

// newTestParser returns a parser positioned at the first token of src.
func newTestParser(t testing.TB, src string, opts ...ConfigOption) (*parser, *Diagnostics) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatal(err)
	}

	diags := &Diagnostics{}
	s, err := NewScanner(testFile, []byte(src), diags)
	if err != nil {
		t.Fatal(err)
	}

	return newParser(cfg, s, NewSema(diags), diags), diags
}

func parseString(t testing.TB, src string, opts ...ConfigOption) (*TranslationUnit, *Diagnostics, Stats) {
	p, diags := newTestParser(t, src, opts...)
	tu := p.parseTranslationUnit()
	if *oTrc {
		t.Logf("%q\n%s\n%s", src, SExpr(tu), dumpDiagnostics(diags))
	}
	return tu, diags, p.stats
}

// messages returns the messages of diagnostics of severity sev.
func messages(d *Diagnostics, sev Severity) (r []string) {
	for _, v := range d.List() {
		if v.Severity == sev {
			r = append(r, v.Message)
		}
	}
	return r
}

func dumpDiagnostics(d *Diagnostics) string {
	var b strings.Builder
	for _, v := range d.List() {
		fmt.Fprintf(&b, "%s\n", v)
	}
	return b.String()
}

// TestGolden parses every *.fe file of the testdata/*.txtar archives and
// compares the S-expression of the tree, followed by the diagnostics, with
// the corresponding *.out file.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}

	if len(archives) == 0 {
		t.Fatal("no test archives")
	}

	cases := 0
	for _, fn := range archives {
		a, err := txtar.ParseFile(fn)
		if err != nil {
			t.Fatal(err)
		}

		want := map[string]string{}
		for _, f := range a.Files {
			if strings.HasSuffix(f.Name, ".out") {
				want[strings.TrimSuffix(f.Name, ".out")] = string(f.Data)
			}
		}
		for _, f := range a.Files {
			if !strings.HasSuffix(f.Name, DefaultExtension) {
				continue
			}

			if re != nil && !re.MatchString(f.Name) {
				continue
			}

			exp, ok := want[strings.TrimSuffix(f.Name, DefaultExtension)]
			if !ok {
				t.Errorf("%s: %s: missing expected output", fn, f.Name)
				continue
			}

			cases++
			got := goldenOutput(t, f.Name, f.Data)
			if g, e := strings.TrimSpace(got), strings.TrimSpace(exp); g != e {
				diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(e + "\n"),
					B:        difflib.SplitLines(g + "\n"),
					FromFile: "expected",
					ToFile:   "got",
					Context:  1,
				})
				t.Errorf("%s: %s:\n%s", fn, f.Name, diff)
			}
		}
	}
	t.Logf("cases %v", h(cases))
}

func goldenOutput(t *testing.T, name string, src []byte) string {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}

	diags := &Diagnostics{}
	s, err := NewScanner(name, src, diags)
	if err != nil {
		t.Fatal(err)
	}

	tu, _, _ := Parse(cfg, s, NewSema(diags), diags)
	return SExpr(tu) + "\n" + dumpDiagnostics(diags)
}

// TestDeterminism checks that parsing the same input twice produces the same
// tree and the same diagnostics.
func TestDeterminism(t *testing.T) {
	const src = `
oneof E { A, 42, B(x: int) }
struct S @frobnicate { var = 1 var y: int }
func @infix_left(15) <> (a: int, b: int) -> int { a <> b * 2 )
var z = ((1, 2)
`
	tu, diags, stats := parseString(t, src)
	tu2, diags2, stats2 := parseString(t, src)
	if g, e := SExpr(tu2), SExpr(tu); g != e {
		t.Fatalf("\ngot %s\nexp %s", g, e)
	}

	if g, e := dumpDiagnostics(diags2), dumpDiagnostics(diags); g != e {
		t.Fatalf("\ngot %s\nexp %s", g, e)
	}

	if stats != stats2 {
		t.Fatalf("got %+v, expected %+v", stats2, stats)
	}

	if diags.Errors() == 0 {
		t.Fatal("expected errors")
	}
}
