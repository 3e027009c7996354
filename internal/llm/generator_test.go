// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	apperrors "asksql/cli/internal/errors"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, status int, body string, seen *chatRequest, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk_test" {
			t.Errorf("Authorization = %q", got)
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "llama3-70b-8192",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(b)
}

func newTestGenerator(t *testing.T, baseURL string) *Generator {
	t.Helper()
	g, err := NewGenerator(Config{BaseURL: baseURL, Model: "llama3-70b-8192", APIKey: "gsk_test"})
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func TestGenerateReturnsContentVerbatim(t *testing.T) {
	content := "Here you go:\n```sql\nSELECT SUM(valor) FROM transacoes;\n```"
	var seen chatRequest
	var calls int32
	srv := newCompletionServer(t, http.StatusOK, completion(content), &seen, &calls)

	got, err := newTestGenerator(t, srv.URL).Generate(context.Background(), "total?", "CREATE TABLE transacoes (valor REAL)")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != content {
		t.Errorf("Generate() = %q, want %q", got, content)
	}
	if calls != 1 {
		t.Errorf("endpoint called %d times, want 1", calls)
	}
	if seen.Model != "llama3-70b-8192" {
		t.Errorf("model = %q", seen.Model)
	}
	if len(seen.Messages) != 1 || seen.Messages[0].Role != openai.ChatMessageRoleUser {
		t.Fatalf("expected one user message, got %+v", seen.Messages)
	}
	if want := BuildPrompt("CREATE TABLE transacoes (valor REAL)", "total?"); seen.Messages[0].Content != want {
		t.Errorf("message content is not the rendered prompt:\n%s", seen.Messages[0].Content)
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`,
			want:   "Invalid API Key",
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"Rate limit reached","type":"tokens"}}`,
			want:   "Rate limit",
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id":"x","object":"chat.completion","choices":[]}`,
			want:   "no choices",
		},
		{
			name:   "blank content",
			status: http.StatusOK,
			body:   completion("  \n "),
			want:   "no content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCompletionServer(t, tt.status, tt.body, nil, nil)
			out, err := newTestGenerator(t, srv.URL).Generate(context.Background(), "q", "")
			if err == nil {
				t.Fatalf("expected error, got %q", out)
			}
			if !apperrors.Is(err, apperrors.GenerationFailed) {
				t.Errorf("kind = %q, want generation_failed", apperrors.KindOf(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestGenerateUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestGenerator(t, url).Generate(context.Background(), "q", "")
	if !apperrors.Is(err, apperrors.GenerationFailed) {
		t.Fatalf("expected generation_failed, got %v", err)
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(Config{Model: "m", APIKey: "  "})
	if !apperrors.Is(err, apperrors.ConfigInvalid) {
		t.Fatalf("expected config_invalid, got %v", err)
	}
}
