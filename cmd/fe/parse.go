// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/frontend/cmd/fe"

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"modernc.org/frontend"
)

var (
	parseDump  bool
	parseSExpr bool
	parseStats bool
)

var parseCmd = &cobra.Command{
	Use:   "parse file...",
	Short: "Parse files and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseDump, "dump", false, "print the syntax tree")
	parseCmd.Flags().BoolVar(&parseSExpr, "sexpr", false, "print the syntax tree as an S-expression")
	parseCmd.Flags().BoolVar(&parseStats, "stats", false, "print parser statistics")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := newConfig()
	if err != nil {
		return err
	}

	errors := 0
	for _, nm := range args {
		n, err := parseOne(cmd, cfg, nm)
		if err != nil {
			return err
		}

		errors += n
	}
	if errors != 0 {
		return errDiagnostics
	}

	return nil
}

func parseOne(cmd *cobra.Command, cfg *frontend.Config, name string) (errors int, err error) {
	b, release, err := mapFile(name)
	if err != nil {
		return 0, err
	}

	defer release()

	f, err := cfg.ParseFile(name, b)
	if f == nil {
		return 0, err
	}

	errors = report(cmd.ErrOrStderr(), f.Diagnostics)
	out := cmd.OutOrStdout()
	if parseDump {
		frontend.Dump(out, f.Unit)
	}
	if parseSExpr {
		fmt.Fprintln(out, frontend.SExpr(f.Unit))
	}
	if parseStats {
		fmt.Fprintf(out, "%s: %s, %s tokens, %s declarations, max depth %d, %d recoveries, %d errors\n",
			name,
			humanize.Bytes(uint64(len(b))),
			humanize.Comma(int64(f.Stats.Tokens)),
			humanize.Comma(int64(len(f.Unit.Decls))),
			f.Stats.MaxDepth,
			f.Stats.Recoveries,
			errors,
		)
	}
	return errors, nil
}
