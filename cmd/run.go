// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/render"
	"asksql/cli/internal/sqlexec"

	"github.com/spf13/cobra"
)

var (
	runDB       string
	runJSON     bool
	runReadOnly bool
)

// runCmd executes SQL directly, bypassing the model.
var runCmd = &cobra.Command{
	Use:   "run <sql>",
	Short: "Execute a SQL statement directly",
	Long: `The run command executes the given SQL against the database without asking the
model. It is useful to check or tweak a statement produced by 'asksql ask'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		r := render.NewRenderer(stdout)

		sess, err := openSession(cmd.Context(), runDB, runReadOnly)
		if err != nil {
			reportError(err)
			return errReported
		}
		defer sess.Close()

		res, err := sqlexec.New(sess.db).Execute(cmd.Context(), query)
		if runJSON {
			out := render.JSONOutcome{SQL: strings.TrimSpace(query), Result: res}
			if err != nil {
				out.Error = apperrors.Detail(err)
				out.Kind = string(apperrors.KindOf(err))
			}
			if jerr := r.JSON(out); jerr != nil {
				return jerr
			}
			if err != nil {
				return errReported
			}
			return nil
		}
		if err != nil {
			reportError(err)
			return errReported
		}
		return r.Table(res)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDB, "db", "", "Path to the SQLite database file")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the result as JSON")
	runCmd.Flags().BoolVar(&runReadOnly, "read-only", false, "Open the database read-only")
}
