/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch provides the watch command for tokenindex.
package watch

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/index"
	"bennypowers.dev/tokenindex/internal/logger"
	"bennypowers.dev/tokenindex/load"
	watcher "bennypowers.dev/tokenindex/watch"
)

// Cmd is the watch cobra command.
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index up to date and report changes",
	Long:  `Build the index, then reindex source files as they change until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Duration("debounce", watcher.DefaultDebounce, "Quiet period before a changed file is reindexed")
}

// reporter logs the outcome of each reindex.
type reporter struct {
	idx *index.Index
}

func (r reporter) OnFileChange(path string) {
	r.idx.OnFileChange(path)
	if s, ok := r.idx.FileSummary(path); ok {
		logger.Info("%s: %d tokens", path, s.TokenCount)
		return
	}
	logger.Info("%s: not indexed", path)
}

func run(cmd *cobra.Command, args []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")

	start := time.Now()
	idx, cfg, err := load.Load(flags.Options(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("error loading index: %w", err)
	}
	defer idx.Close()

	stats := idx.Stats()
	logger.Info("indexed %d tokens from %d files in %s", stats.Records, stats.Files, time.Since(start).Round(time.Millisecond))

	w, err := watcher.New(reporter{idx: idx}, cfg, debounce)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(cfg.Roots...); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
