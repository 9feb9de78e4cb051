/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package nearest provides the nearest command for tokenindex.
package nearest

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/cmd/render"
	"bennypowers.dev/tokenindex/colors"
	"bennypowers.dev/tokenindex/load"
)

// Cmd is the nearest cobra command.
var Cmd = &cobra.Command{
	Use:   "nearest <color>",
	Short: "Find the color tokens closest to a color",
	Long:  `Rank indexed color values by CIEDE2000 distance from the given CSS color and list their tokens.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().IntP("limit", "n", 5, "Maximum number of color values")
	Cmd.Flags().String("format", "table", "Output format: table, json")
}

type match struct {
	colors.Match
	Tokens []render.Row `json:"tokens"`
}

func run(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	idx, cfg, err := load.Load(flags.Options(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("error loading index: %w", err)
	}
	defer idx.Close()

	matches, err := colors.Nearest(args[0], idx.Values(), limit)
	if err != nil {
		return err
	}

	results := make([]match, 0, len(matches))
	for _, m := range matches {
		results = append(results, match{
			Match:  m,
			Tokens: render.ComputeRows(idx.FindByValue(m.Value), cfg.Roots[0]),
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case render.FormatJSON:
		return render.JSON(out, results)
	case render.FormatTable, "":
		for _, r := range results {
			fmt.Fprintf(out, "%s%s  ΔE %.2f\n", colors.Swatch(r.Value), r.Value, r.Distance)
			if err := render.Table(out, r.Tokens); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
