// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package llm

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	schema := "CREATE TABLE transacoes (id INTEGER, valor REAL)"
	question := "What is the total amount?"

	p := BuildPrompt(schema, question)
	if p != BuildPrompt(schema, question) {
		t.Fatal("BuildPrompt is not deterministic")
	}

	schemaAt := strings.Index(p, "Schema:\n"+schema)
	questionAt := strings.Index(p, "Question:\n"+question)
	if schemaAt < 0 || questionAt < 0 {
		t.Fatalf("schema or question missing from prompt:\n%s", p)
	}
	if schemaAt > questionAt {
		t.Error("schema section must precede the question section")
	}
	if !strings.HasSuffix(strings.TrimSpace(p), "SQL:") {
		t.Error("prompt must end with the SQL: cue")
	}
	for _, rule := range []string{"SQLite", "only one", "```sql", "before or after"} {
		if !strings.Contains(p, rule) {
			t.Errorf("prompt lacks instruction containing %q", rule)
		}
	}
}

func TestBuildPromptEmptySchema(t *testing.T) {
	p := BuildPrompt("", "list everything")
	if !strings.Contains(p, "Schema:\n\n\nQuestion:\nlist everything") {
		t.Errorf("empty schema should leave an empty section:\n%s", p)
	}
}

func TestBuildPromptDoesNotExpandPlaceholdersInInput(t *testing.T) {
	p := BuildPrompt("CREATE TABLE t (note TEXT DEFAULT '{question}')", "q?")
	if !strings.Contains(p, "DEFAULT '{question}'") {
		t.Errorf("placeholder text inside the schema was rewritten:\n%s", p)
	}
}
