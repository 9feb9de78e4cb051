/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package files provides the files command for tokenindex.
package files

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/cmd/render"
	"bennypowers.dev/tokenindex/load"
)

// Cmd is the files cobra command.
var Cmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed files",
	Long:  `List every file that contributed to the index, with its token count and header comment.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, json, names")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	opts := flags.Options(viper.GetViper())
	idx, cfg, err := load.Load(opts)
	if err != nil {
		return fmt.Errorf("error loading index: %w", err)
	}
	defer idx.Close()

	rows := render.ComputeFileRows(idx.AllFileSummaries(), cfg.Roots[0])
	return render.Files(cmd.OutOrStdout(), format, rows)
}
