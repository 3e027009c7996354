// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render prints schemas, generated SQL and query results to the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"asksql/cli/internal/sqlexec"
)

// Renderer writes pipeline output to w.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer { return &Renderer{w: w} }

// Schema prints the schema text in a titled box.
func (r *Renderer) Schema(schema string) {
	body := schema
	if strings.TrimSpace(body) == "" {
		body = pterm.NewStyle(pterm.FgGray).Sprint("(no tables)")
	}
	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Schema")
	fmt.Fprintln(r.w, pterm.DefaultBox.WithTitle(title).WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).Sprint(body))
}

// SQL prints the statement that is about to run.
func (r *Renderer) SQL(sql string) {
	title := pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint("Generated SQL")
	fmt.Fprintln(r.w, pterm.DefaultBox.WithTitle(title).WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).Sprint(sql))
}

// Table prints a result set as a table with a header row.
func (r *Renderer) Table(res *sqlexec.Result) error {
	if res == nil || len(res.Columns) == 0 {
		fmt.Fprintln(r.w, pterm.Success.Sprint("Statement executed, no result set"))
		return nil
	}
	if len(res.Rows) == 0 {
		fmt.Fprintln(r.w, pterm.Success.Sprint("Query executed, 0 rows"))
		fmt.Fprintln(r.w, strings.Join(res.Columns, " | "))
		return nil
	}

	data := make(pterm.TableData, 0, len(res.Rows)+1)
	data = append(data, res.Columns)
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = sqlexec.FormatValue(v)
		}
		data = append(data, cells)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintln(r.w, pterm.Success.Sprintf("Query executed, %d %s", len(res.Rows), plural(len(res.Rows), "row", "rows")))
	fmt.Fprintln(r.w, out)
	return nil
}

// Tables prints table names with row counts.
func (r *Renderer) Tables(tables []sqlexec.TableInfo) error {
	if len(tables) == 0 {
		fmt.Fprintln(r.w, pterm.NewStyle(pterm.FgGray).Sprint("(no tables)"))
		return nil
	}
	data := pterm.TableData{{"Table", "Rows"}}
	for _, t := range tables {
		data = append(data, []string{t.Name, fmt.Sprint(t.Rows)})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintln(r.w, out)
	return nil
}

// JSONOutcome is the machine-readable form of a run.
type JSONOutcome struct {
	Question string          `json:"question,omitempty"`
	SQL      string          `json:"sql"`
	Result   *sqlexec.Result `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
	Kind     string          `json:"kind,omitempty"`
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v JSONOutcome) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
