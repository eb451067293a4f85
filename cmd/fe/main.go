// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fe parses source files and reports diagnostics.
//
// Usage:
//
//	fe parse [--dump] [--sexpr] [--stats] file...
//	fe tokens file...
//	fe watch dir
//
// Global flags:
//
//	--config file  configuration, TOML or, if named *.yaml or *.yml, YAML
//	-v             log recovery events to stderr
package main // import "modernc.org/frontend/cmd/fe"

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// errDiagnostics is returned by commands whose input had errors that were
// already reported.
var errDiagnostics = errors.New("errors reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	switch {
	case err == nil:
		return
	case !errors.Is(err, errDiagnostics):
		fmt.Fprintf(os.Stderr, "fe: %v\n", err)
	}
	os.Exit(1)
}
