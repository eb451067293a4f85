// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/frontend/cmd/fe"

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"modernc.org/frontend"
)

var (
	cfgFile string
	logger  = zap.NewNop()
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fe",
	Short: "Parse source files and report diagnostics",

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if verbose {
			logger, err = zap.NewDevelopment()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log recovery events")
}

// newConfig returns the configuration selected by the global flags, extended
// by opts.
func newConfig(opts ...frontend.ConfigOption) (*frontend.Config, error) {
	all := []frontend.ConfigOption{frontend.ConfigLogger(logger)}
	if cfgFile != "" {
		fopts, err := frontend.LoadConfigFile(cfgFile)
		if err != nil {
			return nil, err
		}

		all = append(all, fopts...)
	}
	return frontend.NewConfig(append(all, opts...)...)
}

// mapFile returns the content of the named file, memory mapped if it is not
// empty. The content must not be used after calling release.
func mapFile(name string) (b []byte, release func(), err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	if fi.Size() == 0 {
		f.Close()
		return nil, func() {}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %v", name, err)
	}

	return m, func() {
		m.Unmap()
		f.Close()
	}, nil
}

func report(w io.Writer, diags []frontend.Diagnostic) (errors int) {
	for _, v := range diags {
		fmt.Fprintln(w, v)
		if v.Severity == frontend.Error {
			errors++
		}
	}
	return errors
}
