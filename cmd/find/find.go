/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package find provides the find command for tokenindex.
package find

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/cmd/render"
	"bennypowers.dev/tokenindex/colors"
	"bennypowers.dev/tokenindex/load"
	"bennypowers.dev/tokenindex/normalize"
	"bennypowers.dev/tokenindex/token"
)

// Cmd is the find cobra command.
var Cmd = &cobra.Command{
	Use:   "find <value>",
	Short: "Find tokens declaring a CSS value",
	Long: `Find the design tokens whose value normalizes to the given CSS value.

Values are normalized before lookup, so "#FFF", "#ffffff" and "#fff" all match
the same tokens. With --any-color, a color also matches its hex and rgb() forms.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("any-color", false, "Match every notation of a color value")
	Cmd.Flags().String("format", "table", "Output format: table, json, names, markdown")
}

func run(cmd *cobra.Command, args []string) error {
	anyColor, _ := cmd.Flags().GetBool("any-color")
	format, _ := cmd.Flags().GetString("format")

	keys, err := Keys(args[0], anyColor)
	if err != nil {
		return err
	}

	idx, cfg, err := load.Load(flags.Options(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("error loading index: %w", err)
	}
	defer idx.Close()

	var records []token.Record
	for _, key := range keys {
		records = append(records, idx.FindByValue(key)...)
	}
	return render.Tokens(cmd.OutOrStdout(), format, render.ComputeRows(records, cfg.Roots[0]))
}

// Keys returns the index keys to look up for query.
func Keys(query string, anyColor bool) ([]string, error) {
	if anyColor {
		return colors.Keys(query)
	}
	key, ok := normalize.Value(query)
	if !ok {
		return nil, fmt.Errorf("cannot look up empty value")
	}
	return []string{key}, nil
}
