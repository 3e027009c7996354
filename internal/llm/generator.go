// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package llm turns a natural-language question into model output through an
// OpenAI-compatible chat-completions endpoint (Groq by default).
package llm

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	apperrors "asksql/cli/internal/errors"
	"asksql/cli/internal/logging"
)

// Config describes the completion endpoint. It is built once at startup and
// passed explicitly; nothing in this package reads the environment.
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
}

// Generator performs one completion request per question.
type Generator struct {
	client *openai.Client
	model  string
	temp   float32
}

// NewGenerator creates a Generator for cfg. An empty API key is a configuration error.
func NewGenerator(cfg Config) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperrors.New(apperrors.ConfigInvalid, "no API key configured for the model endpoint")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, apperrors.New(apperrors.ConfigInvalid, "no model configured")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Generator{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		temp:   cfg.Temperature,
	}, nil
}

// Generate asks the model for a SQL statement answering question against schema
// and returns the raw message content unmodified. Transport, authentication and
// rate-limit failures, a reply without choices and blank content all yield a
// generation_failed error. The call is made exactly once.
func (g *Generator) Generate(ctx context.Context, question, schema string) (string, error) {
	prompt := BuildPrompt(schema, question)
	logging.Debugf("requesting completion: model=%s prompt=%d bytes", g.model, len(prompt))

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.GenerationFailed, "model request failed", err)
	}
	logging.Debugf("completion received in %s", time.Since(start).Round(time.Millisecond))

	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.GenerationFailed, "model returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", apperrors.New(apperrors.GenerationFailed, "model returned no content")
	}
	return content, nil
}
