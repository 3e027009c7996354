// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"

	"asksql/cli/internal/config"
	"asksql/cli/internal/dbfile"
	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/keychain"
	"asksql/cli/internal/llm"
	"asksql/cli/internal/logging"
	"asksql/cli/internal/pipeline"

	"github.com/pterm/pterm"
)

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout

// errReported marks an error that was already shown to the user.
var errReported = errors.New("reported")

// session is one opened database plus the settings it was resolved with.
type session struct {
	cfg config.Config
	loc dbfile.Location
	db  *sql.DB
}

// openSession loads configuration, resolves the database file and opens it.
func openSession(ctx context.Context, dbFlag string, readOnly bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	workspace, err := dbfile.WorkspacePath()
	if err != nil {
		logging.Debugf("workspace path unavailable: %v", err)
		workspace = ""
	}

	loc, err := dbfile.Resolve(dbFlag, workspace, cfg.DB.DefaultPath)
	if err != nil {
		return nil, err
	}
	logging.Debugf("using database %s (%s), read-only=%v", loc.Path, loc.Source, readOnly)

	db, err := dbfile.Open(ctx, loc.Path, readOnly)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, loc: loc, db: db}, nil
}

func (s *session) Close() {
	if s != nil && s.db != nil {
		_ = s.db.Close()
	}
}

// newGenerator builds the model client from cfg and the resolved API key.
func newGenerator(cfg config.Config) (*llm.Generator, error) {
	var keys config.KeyLoader
	if km, err := keychain.GetManager(); err == nil {
		keys = km
	} else {
		logging.Debugf("keychain unavailable: %v", err)
	}

	key, source, err := config.ResolveAPIKey(os.Getenv, keys)
	if err != nil {
		return nil, err
	}
	logging.Debugf("API key from %s", source)

	return llm.NewGenerator(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKey:      key,
		Temperature: cfg.LLM.Temperature,
	})
}

// lazyGenerator builds the model client on the first question that needs it,
// so the schema can be shown before an API key is configured. A failed build
// is retried on the next question.
type lazyGenerator struct {
	build func() (pipeline.Generator, error)
	gen   pipeline.Generator
}

func newLazyGenerator(cfg config.Config) *lazyGenerator {
	return &lazyGenerator{build: func() (pipeline.Generator, error) {
		g, err := newGenerator(cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	}}
}

func (l *lazyGenerator) Generate(ctx context.Context, question, schema string) (string, error) {
	if l.gen == nil {
		g, err := l.build()
		if err != nil {
			return "", err
		}
		l.gen = g
	}
	return l.gen.Generate(ctx, question, schema)
}

// reportError prints err according to its kind. The caller keeps running.
func reportError(err error) {
	if err == nil || errors.Is(err, errReported) {
		return
	}

	switch apperrors.KindOf(err) {
	case apperrors.EmptyQuestion:
		pterm.Warning.Println("Type a question before continuing.")
	case apperrors.GenerationFailed:
		pterm.Println(logging.FormatGenerationError(err))
	case apperrors.ExecutionFailed:
		pterm.Error.Println("Error executing SQL: " + logging.Mask(apperrors.Detail(err)))
	case apperrors.MissingDatabase:
		pterm.Error.Println(apperrors.Detail(err))
	case apperrors.ConfigInvalid:
		pterm.Error.Println(logging.Mask(apperrors.Detail(err)))
	default:
		var fe *dbfile.FileError
		if errors.As(err, &fe) {
			pterm.Error.Println(fe.Error())
			return
		}
		pterm.Error.Println(logging.PresentError("", err))
	}
}
