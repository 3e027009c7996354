// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It masks credentials before anything reaches the terminal and turns pipeline
// failures into readable messages.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reDSNPass  = regexp.MustCompile(`(?i)(://)([^:/@\s]+):([^@\s]+)(@)`)
	reAPIKey   = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
	reKeyLike  = regexp.MustCompile(`\b(gsk_|sk-)[A-Za-z0-9_-]{6,}`)
)

// Mask replaces sensitive values in the input string with "*".
// Provider keys such as gsk_... and sk-... keep their prefix only.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reDSNPass.ReplaceAllString(out, "$1*:*$4")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = reKeyLike.ReplaceAllString(out, "$1***")
	for _, k := range []string{"GROQ_API_KEY", "ASKSQL_API_KEY"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}
