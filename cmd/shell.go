// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"asksql/cli/internal/metrics"
	"asksql/cli/internal/pipeline"
	"asksql/cli/internal/render"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	shellDB       string
	shellReadOnly bool
	shellStats    bool
)

// shellCmd is the interactive session: schema first, then one run per question.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive question session",
	Long: `The shell command loads the database, prints its schema and then answers one
question per line. Failures are reported and the session continues.

Commands:
  :schema   print the current schema again
  :quit     end the session (Ctrl-D works too)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stopSignals()

		sess, err := openSession(ctx, shellDB, shellReadOnly)
		if err != nil {
			reportError(err)
			return errReported
		}
		defer sess.Close()

		var m *metrics.Session
		if shellStats {
			m = metrics.NewSession()
		}
		p := pipeline.New(sess.db, newLazyGenerator(sess.cfg), m)
		r := render.NewRenderer(stdout)

		schema, err := p.Schema(ctx)
		if err != nil {
			reportError(err)
			return errReported
		}
		pterm.Success.Printf("Database loaded: %s\n", sess.loc.Path)
		r.Schema(schema)

		err = questionLoop(ctx, os.Stdin, p, r)
		if m != nil {
			if summary, serr := m.Summary(); serr == nil && summary != "" {
				title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Session")
				pterm.Println(pterm.DefaultBox.WithTitle(title).WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).Sprint(summary))
			}
		}
		return err
	},
}

// questionLoop answers one question per line of in until EOF, :quit or ctx is
// cancelled. A failed question is reported and the loop moves on.
func questionLoop(ctx context.Context, in io.Reader, p *pipeline.Pipeline, r *render.Renderer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for ctx.Err() == nil {
		pterm.Print(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("❓ Question: "))
		if !scanner.Scan() {
			pterm.Println()
			break
		}

		switch line := strings.TrimSpace(scanner.Text()); line {
		case ":quit", ":q", "exit":
			return nil
		case ":schema":
			if schema, err := p.Schema(ctx); err != nil {
				reportError(err)
			} else {
				r.Schema(schema)
			}
		default:
			answer(ctx, p, r, line)
		}
	}
	return scanner.Err()
}

// answer runs one question and prints whatever the run produced.
func answer(ctx context.Context, p *pipeline.Pipeline, r *render.Renderer, question string) {
	stop := func() {}
	if strings.TrimSpace(question) != "" {
		stop = startInlineSpinner(os.Stderr, "generating SQL", spinnerFrames, 100*time.Millisecond)
	}
	out, err := p.Run(ctx, question)
	stop()

	if out != nil && out.SQL != "" {
		r.SQL(out.SQL)
	}
	if err != nil {
		reportError(err)
		return
	}
	if err := r.Table(out.Result); err != nil {
		reportError(err)
	}
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVar(&shellDB, "db", "", "Path to the SQLite database file")
	shellCmd.Flags().BoolVar(&shellReadOnly, "read-only", false, "Open the database read-only")
	shellCmd.Flags().BoolVar(&shellStats, "stats", false, "Print run statistics when the session ends")
}
