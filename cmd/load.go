// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"asksql/cli/internal/dbfile"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// loadCmd copies a SQLite file into the workspace so later commands use it.
var loadCmd = &cobra.Command{
	Use:   "load <file.db>",
	Short: "Load a SQLite database for later sessions",
	Long: `The load command checks that the file is a SQLite 3 database and copies it to
the asksql state directory. Until another file is loaded, commands without --db
work on this copy instead of the default database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := dbfile.WorkspacePath()
		if err != nil {
			return err
		}

		n, err := dbfile.Load(args[0], dest)
		if err != nil {
			reportError(err)
			return errReported
		}

		pterm.Success.Printf("Database loaded (%s)\n", humanize.Bytes(uint64(n)))
		pterm.Println(pterm.NewStyle(pterm.FgGray).Sprint("Stored at " + dest))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
