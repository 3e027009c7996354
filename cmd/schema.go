// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"asksql/cli/internal/render"
	"asksql/cli/internal/sqlexec"

	"github.com/spf13/cobra"
)

var (
	schemaDB    string
	schemaPlain bool
)

// schemaCmd prints the schema text that would be sent to the model.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), schemaDB, true)
		if err != nil {
			reportError(err)
			return errReported
		}
		defer sess.Close()

		schema, err := sqlexec.ReadSchema(cmd.Context(), sess.db)
		if err != nil {
			reportError(err)
			return errReported
		}
		if schemaPlain {
			fmt.Fprintln(stdout, schema)
			return nil
		}
		render.NewRenderer(stdout).Schema(schema)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schemaDB, "db", "", "Path to the SQLite database file")
	schemaCmd.Flags().BoolVar(&schemaPlain, "plain", false, "Print the raw CREATE statements only")
}
