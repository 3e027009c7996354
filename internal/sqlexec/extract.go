// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"regexp"
	"strings"
)

// matcher tries to isolate a SQL statement from a model response.
// ok is false when the matcher does not apply.
type matcher func(text string) (sql string, ok bool)

var sqlFence = regexp.MustCompile("(?is)```sql(.*?)```")

// matchers run in priority order; the first that applies wins.
var matchers = []matcher{
	fencedSQL,
	fromFirstSelect,
}

// ExtractSQL isolates a single SQL statement from a raw model response.
// It prefers the first ```sql fenced block, then everything from the first
// SELECT keyword, and otherwise returns the trimmed input. It never fails.
//
// This is a heuristic, not a parser: nested fences are not balanced and only
// the first SELECT is considered.
func ExtractSQL(raw string) string {
	for _, m := range matchers {
		if sql, ok := m(raw); ok {
			return sql
		}
	}
	return strings.TrimSpace(raw)
}

func fencedSQL(text string) (string, bool) {
	m := sqlFence.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func fromFirstSelect(text string) (string, bool) {
	idx := indexFold(text, "SELECT")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(text[idx:]), true
}

// indexFold is a case-insensitive strings.Index for an ASCII needle. Byte
// offsets refer to text itself, so slicing stays valid for any UTF-8 input.
func indexFold(text, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(text); i++ {
		if strings.EqualFold(text[i:i+n], needle) {
			return i
		}
	}
	return -1
}
