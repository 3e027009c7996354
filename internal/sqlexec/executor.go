// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sqlexec reads the schema of a SQLite connection, isolates SQL from
// model responses and executes it, materializing results as a Result table.
//
// Key features include:
//   - Catalog-order schema text from sqlite_master
//   - Ordered, total extraction heuristics for noisy model output
//   - Execution errors returned as typed, reportable errors instead of panics
//   - JSON result formatting with readable BLOB and time values
package sqlexec

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/logging"
)

// Result represents a materialized query result.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// MarshalJSON renders driver values in a JSON-friendly form.
func (r Result) MarshalJSON() ([]byte, error) {
	type Alias Result
	a := Alias(r)

	if len(r.Rows) > 0 {
		rows := make([][]any, len(r.Rows))
		for i, row := range r.Rows {
			rows[i] = make([]any, len(row))
			for j, val := range row {
				rows[i][j] = jsonValue(val)
			}
		}
		a.Rows = rows
	}
	return json.Marshal(a)
}

func jsonValue(v any) any {
	switch t := v.(type) {
	case []byte:
		if utf8.Valid(t) {
			return string(t)
		}
		return `\x` + hex.EncodeToString(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}

// FormatValue renders a cell for table display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		if utf8.Valid(t) {
			return string(t)
		}
		return `\x` + hex.EncodeToString(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Executor runs SQL against an open connection.
type Executor struct {
	db Querier
}

// New creates an Executor over db.
func New(db Querier) *Executor {
	return &Executor{db: db}
}

// Execute runs sql and returns every row with the result-set column labels.
// Any failure, including an empty statement or text holding more than one
// statement, is returned as an execution_failed error carrying the database
// message. Multiple statements are rejected before anything runs. No transaction is applied; statements
// that modify the database run like any other unless the connection is read-only.
func (e *Executor) Execute(ctx context.Context, sql string) (*Result, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, apperrors.New(apperrors.ExecutionFailed, "no SQL statement to execute")
	}
	if rest := trailingStatement(sql); rest != "" {
		return nil, apperrors.New(apperrors.ExecutionFailed,
			fmt.Sprintf("you can only execute one statement at a time (found more after the first: %.60q)", rest))
	}
	logging.Debugf("executing SQL: %s", sql[:min(200, len(sql))])

	rows, err := e.db.QueryContext(ctx, sql)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ExecutionFailed, "failed to execute SQL", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ExecutionFailed, "failed to read result columns", err)
	}

	res := &Result{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperrors.Wrap(apperrors.ExecutionFailed, "failed to read result row", err)
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ExecutionFailed, "failed to execute SQL", err)
	}

	logging.Debugf("query returned %d rows, %d columns", len(res.Rows), len(cols))
	return res, nil
}
