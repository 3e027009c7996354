// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package llm

import "strings"

// promptTemplate is rendered once per question. The rules are advisory: models
// still wrap answers in fences or prose, which the extractor deals with.
const promptTemplate = `
You are an SQL expert for SQLite databases.

Below is the database schema. Based on it and on the user's question, generate **only one functional, fully optimized SQL query**, without any explanation, comment or Markdown formatting.

- Do not explain the code.
- Do not use ` + "```sql" + ` blocks.
- Do not write any text before or after the query.
- The answer must contain **only the SQL query**, nothing else.

Schema:
{schema}

Question:
{question}

SQL:
`

// BuildPrompt renders the instruction template for schema and question.
// It is deterministic: equal inputs always give the same prompt.
func BuildPrompt(schema, question string) string {
	r := strings.NewReplacer("{schema}", schema, "{question}", question)
	return r.Replace(promptTemplate)
}
