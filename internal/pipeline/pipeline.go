// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package pipeline wires one question through schema reading, prompt generation,
// SQL extraction and execution.
package pipeline

import (
	"context"
	"strings"
	"time"

	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/logging"
	"asksql/cli/internal/metrics"
	"asksql/cli/internal/sqlexec"
)

// Generator produces raw model output for a question about a schema.
type Generator interface {
	Generate(ctx context.Context, question, schema string) (string, error)
}

// Outcome captures every intermediate product of a run.
type Outcome struct {
	Question    string
	Schema      string
	RawResponse string
	SQL         string
	Result      *sqlexec.Result
}

// Pipeline answers questions against one open database.
type Pipeline struct {
	db      sqlexec.Querier
	gen     Generator
	exec    *sqlexec.Executor
	metrics *metrics.Session
}

// New creates a Pipeline. m may be nil when metrics are not collected.
func New(db sqlexec.Querier, gen Generator, m *metrics.Session) *Pipeline {
	return &Pipeline{db: db, gen: gen, exec: sqlexec.New(db), metrics: m}
}

// Schema returns the current schema text of the database.
func (p *Pipeline) Schema(ctx context.Context) (string, error) {
	return sqlexec.ReadSchema(ctx, p.db)
}

// Run answers question. A blank question fails before the model is contacted.
// The schema is read fresh on every run. When execution fails the Outcome is
// still returned, carrying the extracted SQL, alongside the error.
func (p *Pipeline) Run(ctx context.Context, question string) (*Outcome, error) {
	out, err := p.run(ctx, question)
	p.metrics.ObserveRun(outcomeLabel(err))
	return out, err
}

func (p *Pipeline) run(ctx context.Context, question string) (*Outcome, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.New(apperrors.EmptyQuestion, "type a question before continuing")
	}

	schema, err := sqlexec.ReadSchema(ctx, p.db)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ExecutionFailed, "failed to read schema", err)
	}
	out := &Outcome{Question: question, Schema: schema}

	start := time.Now()
	raw, err := p.gen.Generate(ctx, question, schema)
	p.metrics.ObserveGeneration(time.Since(start))
	if err != nil {
		if apperrors.KindOf(err) == "" {
			err = apperrors.Wrap(apperrors.GenerationFailed, "model request failed", err)
		}
		return out, err
	}
	out.RawResponse = raw
	out.SQL = sqlexec.ExtractSQL(raw)
	logging.Debugf("extracted SQL: %s", out.SQL)

	res, err := p.exec.Execute(ctx, out.SQL)
	if err != nil {
		return out, err
	}
	out.Result = res
	return out, nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch apperrors.KindOf(err) {
	case apperrors.EmptyQuestion:
		return metrics.OutcomeEmptyQuestion
	case apperrors.GenerationFailed:
		return metrics.OutcomeGenerationError
	case apperrors.ExecutionFailed:
		return metrics.OutcomeExecutionError
	default:
		return metrics.OutcomeOther
	}
}
