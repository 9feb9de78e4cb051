/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package refs provides the refs command for tokenindex.
package refs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/cmd/render"
	"bennypowers.dev/tokenindex/load"
	"bennypowers.dev/tokenindex/token"
)

// Cmd is the refs cobra command.
var Cmd = &cobra.Command{
	Use:   "refs <custom-property>",
	Short: "Find tokens that reference a custom property",
	Long:  `Find the design tokens whose value is var() of the given custom property. The leading dashes are optional.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, json, names, markdown")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	idx, cfg, err := load.Load(flags.Options(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("error loading index: %w", err)
	}
	defer idx.Close()

	records := idx.FindByReferencedVariable(PropertyName(args[0]))
	return render.Tokens(cmd.OutOrStdout(), format, render.ComputeRows(records, cfg.Roots[0]))
}

// PropertyName adds the custom property prefix when it is missing.
func PropertyName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, token.CustomPropertyPrefix) {
		return name
	}
	return token.CustomPropertyPrefix + name
}
