/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command for tokenindex.
package mcp

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/index"
	"bennypowers.dev/tokenindex/internal/logger"
	"bennypowers.dev/tokenindex/load"
	mcpserver "bennypowers.dev/tokenindex/mcp"
	watcher "bennypowers.dev/tokenindex/watch"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve token lookups over MCP on stdio",
	Long:  `Run a Model Context Protocol server on stdin/stdout exposing token lookups as tools.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("watch", true, "Reindex source files as they change")
}

func run(cmd *cobra.Command, args []string) error {
	watchFiles, _ := cmd.Flags().GetBool("watch")

	// stdout carries the protocol
	logger.SetOutput(io.Discard)

	idx, _, stop, err := start(flags.Options(viper.GetViper()), watchFiles)
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return mcpserver.NewServer(idx).Run(ctx)
}

// start opens the index, optionally watches its roots and builds it in the
// background, so tools answer with an error until built is closed.
func start(opts load.Options, watchFiles bool) (idx *index.Index, built <-chan struct{}, stop func(), err error) {
	idx, cfg, err := load.Open(opts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading index: %w", err)
	}
	stop = idx.Close

	if watchFiles {
		w, err := watcher.New(idx, cfg, 0)
		if err != nil {
			idx.Close()
			return nil, nil, nil, err
		}
		if err := w.Start(cfg.Roots...); err != nil {
			_ = w.Stop()
			idx.Close()
			return nil, nil, nil, err
		}
		stop = func() {
			_ = w.Stop()
			idx.Close()
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		idx.Build()
	}()
	return idx, done, stop, nil
}
