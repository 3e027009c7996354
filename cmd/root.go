// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for asksql.
// It implements subcommands for asking questions about a SQLite database in natural
// language, inspecting and loading databases, and managing the model API key, using
// the Cobra CLI framework with a pterm-based terminal UI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"asksql/cli/internal/config"
	"asksql/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asksql",
	Short: "Ask questions about a SQLite database in natural language",
	Long: `asksql turns a question into one SQL statement with a language model, runs it
against a SQLite database and prints the result as a table.

The database is taken from --db, then from a file loaded with 'asksql load',
then from the configured default (transacoes.db).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.EnableVerbose()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("asksql %s\n", Version)
			if cfg, err := config.Load(); err == nil {
				fmt.Printf("model  %s\n", cfg.LLM.Model)
			}
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and configured model")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug output")
}
