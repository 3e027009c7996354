// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/pterm/pterm"
	openai "github.com/sashabaranov/go-openai"
)

// LLMErrorType represents the category of a completion endpoint failure.
type LLMErrorType int

const (
	LLMErrorUnknown LLMErrorType = iota
	LLMErrorNetwork
	LLMErrorAuth
	LLMErrorRateLimit
	LLMErrorTimeout
	LLMErrorUnavailable
	LLMErrorEmpty
)

// ClassifyLLMError categorizes a generation failure. Typed API errors from the
// client are checked first, then well-known message fragments.
func ClassifyLLMError(err error) LLMErrorType {
	if err == nil {
		return LLMErrorUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return LLMErrorTimeout
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
	} else if errors.As(err, &reqErr) {
		status = reqErr.HTTPStatusCode
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return LLMErrorAuth
	case status == http.StatusTooManyRequests:
		return LLMErrorRateLimit
	case status >= 500:
		return LLMErrorUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return LLMErrorTimeout
		}
		return LLMErrorNetwork
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "no content") || strings.Contains(lower, "no choices"):
		return LLMErrorEmpty
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") || strings.Contains(lower, "connection reset"):
		return LLMErrorNetwork
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		return LLMErrorTimeout
	case strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid api key"):
		return LLMErrorAuth
	case strings.Contains(lower, "rate limit"):
		return LLMErrorRateLimit
	}
	return LLMErrorUnknown
}

// FormatGenerationError formats a failed model call in a user-friendly way.
func FormatGenerationError(err error) string {
	var b strings.Builder

	b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("SQL generation failed"))
	b.WriteString("\n\n")

	switch ClassifyLLMError(err) {
	case LLMErrorAuth:
		b.WriteString("The model endpoint rejected the API key.\n")
		b.WriteString("  • Check GROQ_API_KEY or run 'asksql key set'\n")
	case LLMErrorRateLimit:
		b.WriteString("The model endpoint is rate limiting requests.\n")
		b.WriteString("  • Wait a moment before asking again\n")
	case LLMErrorTimeout:
		b.WriteString("The model endpoint took too long to answer.\n")
		b.WriteString("  • Slow or unstable internet connection\n")
		b.WriteString("  • The service is under heavy load\n")
	case LLMErrorNetwork:
		b.WriteString("Cannot reach the model endpoint.\n")
		b.WriteString("  • Check your internet connection and proxy settings\n")
		b.WriteString("  • Verify the configured base URL\n")
	case LLMErrorUnavailable:
		b.WriteString("The model service is currently unavailable.\n")
		b.WriteString("  • Try again in a few minutes\n")
	case LLMErrorEmpty:
		b.WriteString("The model answered without any content.\n")
		b.WriteString("  • Rephrase the question and try again\n")
	default:
		b.WriteString("The request to the model endpoint did not succeed.\n")
	}

	if err != nil {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	}
	return b.String()
}
