// Copyright (c) 2025 Asksql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Mask(err.Error())
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// Verbose reports whether debug output was requested via --verbose.
func Verbose() bool {
	return os.Getenv("ASKSQL_VERBOSE") == "1"
}

// EnableVerbose turns on debug output for this process and child packages.
func EnableVerbose() {
	os.Setenv("ASKSQL_VERBOSE", "1")
	pterm.EnableDebugMessages()
}

// Debugf prints a masked debug line when verbose mode is on.
func Debugf(format string, args ...any) {
	if !Verbose() {
		return
	}
	pterm.Debug.Println(Mask(fmt.Sprintf(format, args...)))
}
