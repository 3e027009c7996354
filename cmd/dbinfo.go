// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"asksql/cli/internal/dbfile"
	"asksql/cli/internal/render"
	"asksql/cli/internal/sqlexec"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dbinfoDB string

// dbinfoCmd shows which database file a session would use.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the database that questions run against",
	Long: `The dbinfo command shows which SQLite file would be used, where that choice came
from (--db, a loaded file or the configured default), its size and its tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), dbinfoDB, true)
		if err != nil {
			reportError(err)
			pterm.Println("   Load one with: asksql load <file.db>")
			return errReported
		}
		defer sess.Close()

		info, err := os.Stat(sess.loc.Path)
		if err != nil {
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Path:     %s\n", sess.loc.Path)
		fmt.Fprintf(&b, "Source:   %s\n", describeSource(sess.loc.Source))
		fmt.Fprintf(&b, "Size:     %s\n", humanize.Bytes(uint64(info.Size())))
		fmt.Fprintf(&b, "Modified: %s", humanize.Time(info.ModTime()))

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database")).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println(b.String())
		pterm.Println()

		tables, err := sqlexec.ListTables(cmd.Context(), sess.db)
		if err != nil {
			reportError(err)
			return errReported
		}
		return render.NewRenderer(stdout).Tables(tables)
	},
}

func describeSource(s dbfile.Source) string {
	switch s {
	case dbfile.SourceFlag:
		return "--db flag"
	case dbfile.SourceLoaded:
		return "loaded with 'asksql load'"
	default:
		return "configured default"
	}
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
	dbinfoCmd.Flags().StringVar(&dbinfoDB, "db", "", "Path to the SQLite database file")
}
