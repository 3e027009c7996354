// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import "strings"

// trailingStatement returns the text following the first statement in sql, or ""
// when nothing but semicolons, whitespace and comments follows it. Quoted strings,
// quoted identifiers and comments are skipped so a ';' inside them does not count.
func trailingStatement(sql string) string {
	end := statementEnd(sql)
	if end < 0 {
		return ""
	}
	rest := sql[end+1:]
	for {
		rest = strings.TrimLeft(rest, " \t\r\n;")
		switch {
		case strings.HasPrefix(rest, "--"):
			i := strings.IndexByte(rest, '\n')
			if i < 0 {
				return ""
			}
			rest = rest[i+1:]
		case strings.HasPrefix(rest, "/*"):
			i := strings.Index(rest[2:], "*/")
			if i < 0 {
				return ""
			}
			rest = rest[i+4:]
		default:
			return strings.TrimSpace(rest)
		}
	}
}

// statementEnd returns the index of the first ';' outside quotes and comments, or -1.
func statementEnd(sql string) int {
	for i := 0; i < len(sql); i++ {
		switch c := sql[i]; c {
		case '\'', '"', '`':
			i = skipQuoted(sql, i, c)
		case '[':
			if j := strings.IndexByte(sql[i+1:], ']'); j >= 0 {
				i += j + 1
			} else {
				return -1
			}
		case '-':
			if strings.HasPrefix(sql[i:], "--") {
				j := strings.IndexByte(sql[i:], '\n')
				if j < 0 {
					return -1
				}
				i += j
			}
		case '/':
			if strings.HasPrefix(sql[i:], "/*") {
				j := strings.Index(sql[i+2:], "*/")
				if j < 0 {
					return -1
				}
				i += j + 3
			}
		case ';':
			return i
		}
	}
	return -1
}

// skipQuoted returns the index of the quote closing the one at start.
// A doubled quote is an escaped quote. Unterminated input runs to the end.
func skipQuoted(sql string, start int, q byte) int {
	for i := start + 1; i < len(sql); i++ {
		if sql[i] != q {
			continue
		}
		if i+1 < len(sql) && sql[i+1] == q {
			i++
			continue
		}
		return i
	}
	return len(sql)
}
