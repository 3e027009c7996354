// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"asksql/cli/internal/dbfile"
	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/pipeline"
	"asksql/cli/internal/render"
)

type reply struct {
	text string
	err  error
}

// scriptedGenerator answers questions with replies in order.
type scriptedGenerator struct {
	replies   []reply
	questions []string
}

func (g *scriptedGenerator) Generate(_ context.Context, question, _ string) (string, error) {
	g.questions = append(g.questions, question)
	if len(g.replies) == 0 {
		return "", errors.New("no reply scripted")
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return r.text, r.err
}

func openClientes(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbfile.Open(context.Background(), filepath.Join(t.TempDir(), "clientes.db"), false)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	for _, stmt := range []string{
		`CREATE TABLE clientes (id INTEGER PRIMARY KEY, nome TEXT)`,
		`INSERT INTO clientes (nome) VALUES ('ana'), ('bruno')`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return db
}

func TestQuestionLoopContinuesAfterFailures(t *testing.T) {
	db := openClientes(t)
	gen := &scriptedGenerator{replies: []reply{
		{err: apperrors.New(apperrors.GenerationFailed, "model returned no content")},
		{text: "SELECT nome FROM pedidos"},
		{text: "```sql\nSELECT nome FROM clientes ORDER BY id\n```"},
	}}
	var buf bytes.Buffer
	in := strings.NewReader("first?\n\nsecond?\nthird?\n:quit\nnever asked\n")

	err := questionLoop(context.Background(), in, pipeline.New(db, gen, nil), render.NewRenderer(&buf))
	if err != nil {
		t.Fatalf("questionLoop() error = %v", err)
	}

	if want := []string{"first?", "second?", "third?"}; strings.Join(gen.questions, "|") != strings.Join(want, "|") {
		t.Errorf("model asked %q, want %q", gen.questions, want)
	}
	out := buf.String()
	for _, want := range []string{"SELECT nome FROM pedidos", "SELECT nome FROM clientes ORDER BY id", "ana", "bruno"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestQuestionLoopStopsAtEOF(t *testing.T) {
	db := openClientes(t)
	gen := &scriptedGenerator{replies: []reply{{text: "SELECT 1"}}}

	err := questionLoop(context.Background(), strings.NewReader("only one"), pipeline.New(db, gen, nil), render.NewRenderer(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("questionLoop() error = %v", err)
	}
	if len(gen.questions) != 1 {
		t.Errorf("model asked %d times, want 1", len(gen.questions))
	}
}

func TestLazyGeneratorBuildsOnFirstQuestion(t *testing.T) {
	db := openClientes(t)
	builds := 0
	lazy := &lazyGenerator{build: func() (pipeline.Generator, error) {
		builds++
		if builds == 1 {
			return nil, apperrors.New(apperrors.ConfigInvalid, "no API key configured")
		}
		return &scriptedGenerator{replies: []reply{{text: "SELECT COUNT(*) AS n FROM clientes"}}}, nil
	}}
	p := pipeline.New(db, lazy, nil)
	var buf bytes.Buffer
	r := render.NewRenderer(&buf)

	if err := askQuestion(context.Background(), p, r, "   ", true); !errors.Is(err, errReported) {
		t.Fatalf("blank question error = %v", err)
	}
	if builds != 0 {
		t.Fatalf("generator built %d times for a blank question", builds)
	}
	var blank render.JSONOutcome
	if err := json.Unmarshal(buf.Bytes(), &blank); err != nil || blank.Kind != string(apperrors.EmptyQuestion) {
		t.Errorf("blank question output = %s (%v)", buf.String(), err)
	}

	buf.Reset()
	if err := askQuestion(context.Background(), p, r, "how many?", true); !errors.Is(err, errReported) {
		t.Fatalf("missing key error = %v", err)
	}
	if !strings.Contains(buf.String(), string(apperrors.ConfigInvalid)) {
		t.Errorf("missing key not reported: %s", buf.String())
	}

	buf.Reset()
	if err := askQuestion(context.Background(), p, r, "how many?", true); err != nil {
		t.Fatalf("askQuestion() error = %v", err)
	}
	if builds != 2 {
		t.Errorf("builds = %d, want a retry after the failed build", builds)
	}
	var ok struct {
		SQL    string `json:"sql"`
		Result struct {
			Rows [][]int `json:"rows"`
		} `json:"result"`
	}
	if err := json.Unmarshal(buf.Bytes(), &ok); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if ok.SQL != "SELECT COUNT(*) AS n FROM clientes" || ok.Result.Rows[0][0] != 2 {
		t.Errorf("unexpected outcome %s", buf.String())
	}
}

func TestAskReportsMissingDatabaseBeforeBlankQuestion(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ASKSQL_DB", "")
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() {
		stdout = prev
		askJSON, askDB = false, ""
	})

	rootCmd.SetArgs([]string{"ask", "--json", "--db", filepath.Join(t.TempDir(), "missing.db")})
	if err := rootCmd.ExecuteContext(context.Background()); !errors.Is(err, errReported) {
		t.Fatalf("ask error = %v, want errReported", err)
	}

	var got render.JSONOutcome
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Kind != string(apperrors.MissingDatabase) {
		t.Errorf("kind = %q, want missing_database", got.Kind)
	}
}
