// Package terminal asks the controlling terminal how much room there is.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Fit returns how much of a width x height map can be shown, keeping reserved
// lines free below it for text
func Fit(width, height, reserved int) (w, h int) {
	tw, th := GetSize()
	return clip(width, height, tw, th-reserved)
}

func clip(width, height, maxW, maxH int) (int, int) {
	return max(min(width, maxW), 1), max(min(height, maxH), 1)
}
