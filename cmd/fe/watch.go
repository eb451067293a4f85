// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/frontend/cmd/fe"

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"modernc.org/frontend"
)

var watchCacheSize int

var watchCmd = &cobra.Command{
	Use:   "watch dir",
	Short: "Parse a directory and reparse its files when they change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchCacheSize, "cache", 256, "number of parsed files to cache")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cache, err := frontend.NewLRUCache(watchCacheSize)
	if err != nil {
		return err
	}

	cfg, err := newConfig(frontend.ConfigCache(cache))
	if err != nil {
		return err
	}

	pkg, err := cfg.ParseDir(dir)
	if pkg == nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	errors := report(stderr, pkg.Diagnostics())
	fmt.Fprintf(stderr, "%s: %d files, %s errors\n", dir, len(pkg.Files), humanize.Comma(int64(errors)))

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Ext(ev.Name) != cfg.Extension() || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			b, err := os.ReadFile(ev.Name)
			if err != nil {
				logger.Warn("read", zap.String("file", ev.Name), zap.Error(err))
				continue
			}

			f, err := cfg.ParseFile(ev.Name, b)
			if f == nil {
				fmt.Fprintln(stderr, err)
				continue
			}

			errors := report(stderr, f.Diagnostics)
			hits, misses := cache.Stats()
			fmt.Fprintf(stderr, "%s: %s errors (cache %d/%d)\n", ev.Name, humanize.Comma(int64(errors)), hits, hits+misses)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watch", zap.Error(err))
		}
	}
}
