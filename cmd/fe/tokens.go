// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/frontend/cmd/fe"

import (
	"fmt"

	"github.com/spf13/cobra"
	"modernc.org/frontend"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens file...",
	Short: "List the tokens of files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	errors := 0
	for _, nm := range args {
		n, err := tokens(cmd, nm)
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

func tokens(cmd *cobra.Command, name string) (int, error) {
	b, release, err := mapFile(name)
	if err != nil {
		return 0, err
	}

	defer release()

	var diags frontend.Diagnostics
	s, err := frontend.NewScanner(name, b, &diags)
	if err != nil {
		return 0, err
	}

	out := cmd.OutOrStdout()
	for s.Scan() {
		fmt.Fprintln(out, s.Tok)
	}
	return report(cmd.ErrOrStderr(), diags.List()), nil
}
