package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

const (
	fallbackWidth  = 100
	fallbackHeight = 32
	minWidth       = 40
	minHeight      = 16
)

type Sizer struct {
}

// PadString pads a string to a specific display width, handling emojis correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := runewidth.StringWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TerminalSize returns the stdout terminal size with fallbacks for pipes
// and tiny windows.
func (i Sizer) TerminalSize() Size {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return Size{Width: fallbackWidth, Height: fallbackHeight}
	}
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	return Size{Width: width, Height: height}
}

// GetSizer returns the shared sizer
func GetSizer() *Sizer {
	return sharedSizer
}
