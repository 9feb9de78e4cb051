/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tokenindex.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokenindex/cmd/files"
	"bennypowers.dev/tokenindex/cmd/find"
	"bennypowers.dev/tokenindex/cmd/flags"
	"bennypowers.dev/tokenindex/cmd/lsp"
	"bennypowers.dev/tokenindex/cmd/mcp"
	"bennypowers.dev/tokenindex/cmd/nearest"
	"bennypowers.dev/tokenindex/cmd/refs"
	"bennypowers.dev/tokenindex/cmd/version"
	"bennypowers.dev/tokenindex/cmd/watch"
	"bennypowers.dev/tokenindex/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tokenindex",
	Short: "Look up CSS design tokens by value",
	Long: `tokenindex indexes CSS custom properties declared under :root, html, theme
blocks and allow-listed selectors, and finds the tokens behind a CSS value.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := flags.Bind(viper.GetViper(), cmd.Root().PersistentFlags()); err != nil {
			return err
		}
		logger.SetDebug(viper.GetBool(flags.Verbose))
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags.Register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(files.Cmd)
	rootCmd.AddCommand(find.Cmd)
	rootCmd.AddCommand(refs.Cmd)
	rootCmd.AddCommand(nearest.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(lsp.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
