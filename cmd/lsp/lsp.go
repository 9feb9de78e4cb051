/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lsp provides the lsp command for tokenindex.
package lsp

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/fs"
	"bennypowers.dev/tokenindex/internal/logger"
	"bennypowers.dev/tokenindex/load"
	lspserver "bennypowers.dev/tokenindex/lsp"
)

// Cmd is the lsp cobra command.
var Cmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server on stdio",
	Long:  `Run a language server that reindexes saved files and shows matching tokens on hover.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	logger.SetOutput(io.Discard)

	filesystem := fs.NewOSFileSystem()
	opts := flags.Options(viper.GetViper())
	opts.FS = filesystem

	idx, cfg, err := load.Open(opts)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	defer idx.Close()
	go idx.Build()

	return lspserver.NewServer(idx, cfg, filesystem).RunStdio()
}
