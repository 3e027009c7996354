// Package terminal provides small helpers for interactive terminal input.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Width returns the width of stdout, or 80 when it is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// ClearPreviousLines erases text of textLength characters that was echoed
// just before the user pressed Enter, accounting for wrapping at width.
func ClearPreviousLines(w io.Writer, textLength, width int) {
	if width <= 0 {
		width = 80
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}

	// Enter leaves the cursor on a fresh line below the input.
	toClear := lines + 1
	for i := 0; i < toClear; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < toClear-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
