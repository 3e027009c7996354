// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"asksql/cli/internal/sqlexec"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	res := &sqlexec.Result{
		Columns: []string{"cliente", "total"},
		Rows:    [][]any{{"ana", 162.75}, {[]byte("carla"), nil}},
	}

	if err := NewRenderer(&buf).Table(res); err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2 rows", "cliente", "total", "ana", "162.75", "carla", "NULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableEmptyResults(t *testing.T) {
	tests := []struct {
		name string
		res  *sqlexec.Result
		want string
	}{
		{name: "no result set", res: &sqlexec.Result{}, want: "no result set"},
		{name: "nil", res: nil, want: "no result set"},
		{name: "zero rows", res: &sqlexec.Result{Columns: []string{"id"}, Rows: [][]any{}}, want: "0 rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewRenderer(&buf).Table(tt.res); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSchemaAndSQL(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Schema("")
	r.SQL("SELECT 1")

	out := buf.String()
	for _, want := range []string{"Schema", "(no tables)", "Generated SQL", "SELECT 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf).JSON(JSONOutcome{
		Question: "names?",
		SQL:      "SELECT nome FROM clientes",
		Result:   &sqlexec.Result{Columns: []string{"nome"}, Rows: [][]any{{[]byte("ana")}}},
	})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var got struct {
		SQL    string `json:"sql"`
		Result struct {
			Rows [][]string `json:"rows"`
		} `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.SQL != "SELECT nome FROM clientes" || got.Result.Rows[0][0] != "ana" {
		t.Errorf("unexpected JSON %s", buf.String())
	}
}
