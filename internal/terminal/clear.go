// Package terminal provides prompts and small screen operations such as
// clearing text that was typed in response to a prompt.
package terminal

import (
	"os"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// ClearPreviousLines clears text from the terminal that was previously printed.
// textLength is the number of characters of the prompt plus the user's input.
// It does nothing when stdout is not a terminal.
func ClearPreviousLines(textLength int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	termWidth := 80
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		termWidth = width
	}

	// After Enter the cursor sits on a new line below the input, so that line
	// is cleared as well.
	n := LinesFor(textLength, termWidth) + 1
	for i := 0; i < n; i++ {
		cursor.StartOfLine()
		cursor.ClearLine()
		if i < n-1 {
			cursor.Up(1)
		}
	}
}

// LinesFor returns how many terminal rows textLength characters occupy at the
// given width. It is at least 1.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		return 1
	}
	return lines
}
