// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/pipeline"
	"asksql/cli/internal/render"

	"github.com/spf13/cobra"
)

var (
	askDB       string
	askJSON     bool
	askReadOnly bool
)

// askCmd runs one question through the pipeline.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Generate and run SQL for one question",
	Long: `The ask command reads the database schema, asks the language model for one SQL
statement answering the question, shows the statement and runs it.

Statements are executed as generated. Use --read-only to have SQLite reject
anything that would modify the database.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		question := strings.Join(args, " ")
		r := render.NewRenderer(stdout)

		sess, err := openSession(ctx, askDB, askReadOnly)
		if err != nil {
			return askFailed(r, askJSON, question, "", err)
		}
		defer sess.Close()

		p := pipeline.New(sess.db, newLazyGenerator(sess.cfg), nil)
		return askQuestion(ctx, p, r, question, askJSON)
	},
}

// askQuestion runs question through p and prints the outcome, as JSON when
// asJSON is set. Failures are printed and returned as errReported.
func askQuestion(ctx context.Context, p *pipeline.Pipeline, r *render.Renderer, question string, asJSON bool) error {
	stop := func() {}
	if !asJSON && strings.TrimSpace(question) != "" {
		stop = startInlineSpinner(os.Stderr, "generating SQL", spinnerFrames, 100*time.Millisecond)
	}
	out, err := p.Run(ctx, question)
	stop()

	if err != nil {
		sql := ""
		if out != nil {
			sql = out.SQL
			if !asJSON && sql != "" {
				r.SQL(sql)
			}
		}
		return askFailed(r, asJSON, question, sql, err)
	}

	if asJSON {
		return r.JSON(render.JSONOutcome{Question: out.Question, SQL: out.SQL, Result: out.Result})
	}
	r.SQL(out.SQL)
	return r.Table(out.Result)
}

func askFailed(r *render.Renderer, asJSON bool, question, sql string, err error) error {
	if asJSON {
		_ = r.JSON(render.JSONOutcome{
			Question: strings.TrimSpace(question),
			SQL:      sql,
			Error:    apperrors.Detail(err),
			Kind:     string(apperrors.KindOf(err)),
		})
	} else {
		reportError(err)
	}
	return errReported
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askDB, "db", "", "Path to the SQLite database file")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the outcome as JSON")
	askCmd.Flags().BoolVar(&askReadOnly, "read-only", false, "Open the database read-only")
}
