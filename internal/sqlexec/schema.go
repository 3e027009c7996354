// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Querier is the part of *sql.DB used for catalog and user queries.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const schemaQuery = `SELECT sql FROM sqlite_master WHERE type='table'`

// ReadSchema returns the CREATE TABLE statement of every table in the database,
// newline-joined in catalog order. A database without tables yields "".
// Nothing is cached: each call reflects the connection as it is now.
func ReadSchema(ctx context.Context, db Querier) (string, error) {
	rows, err := db.QueryContext(ctx, schemaQuery)
	if err != nil {
		return "", fmt.Errorf("read schema: %w", err)
	}
	defer rows.Close()

	var defs []string
	for rows.Next() {
		var def sql.NullString
		if err := rows.Scan(&def); err != nil {
			return "", fmt.Errorf("read schema: %w", err)
		}
		if def.Valid && def.String != "" {
			defs = append(defs, def.String)
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read schema: %w", err)
	}
	return strings.Join(defs, "\n"), nil
}

// TableInfo summarizes one table for status output.
type TableInfo struct {
	Name string
	Rows int64
}

// ListTables returns user tables in catalog order with their row counts.
func ListTables(ctx context.Context, db Querier) ([]TableInfo, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, name)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	// Counts run after the catalog cursor is closed; sessions hold one connection.
	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		n, err := countRows(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, TableInfo{Name: name, Rows: n})
	}
	return tables, nil
}

func countRows(ctx context.Context, db Querier, table string) (int64, error) {
	rows, err := db.QueryContext(ctx, `SELECT COUNT(*) FROM `+quoteIdent(table))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()
	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
	}
	return n, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
