// Package terminal reports on the terminal the process writes to.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Size used when the output is not a terminal.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// SizeOf returns the size of the terminal behind f in character cells,
// falling back to the defaults when f is not a terminal.
func SizeOf(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetSize returns the size of the terminal on stdout.
func GetSize() (width, height int) {
	return SizeOf(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
