package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorDim     = "\033[2m"
	ColorBold    = "\033[1m"

	ClearScreen         = "\033[2J"     // Clear entire screen
	ClearLine           = "\033[2K"     // Clear entire line
	ClearLineFromCursor = "\033[0K"     // Clear from cursor to end of line
	ClearScrollback     = "\033[3J"     // Clear scrollback buffer
	ResetScrollRegion   = "\033[r"      // Reset scroll region
	DisableScrollback   = "\033[?1007h" // Disable scrollback
	EnableScrollback    = "\033[?1007l" // Enable scrollback
	MoveCursorHome      = "\033[H"      // Move cursor to home position
	HideCursor          = "\033[?25l"   // Hide cursor
	ShowCursor          = "\033[?25h"   // Show cursor
	EnterAltScreen      = "\033[?1049h"
	ExitAltScreen       = "\033[?1049l"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads s with spaces to the given display width
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Truncate cuts s to at most width display cells
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// CenterText centers text within the given display width
func CenterText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return runewidth.Truncate(text, width, "")
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}

// TrueColor returns the 24-bit foreground escape for a #rrggbb color.
// Unparseable colors fall back to the default foreground.
func TrueColor(hex string) string {
	r, g, b, ok := ParseHexColor(hex)
	if !ok {
		return ColorReset
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// Colorize wraps text in a #rrggbb foreground color
func Colorize(text, hex string) string {
	return TrueColor(hex) + text + ColorReset
}

// ParseHexColor parses #rrggbb
func ParseHexColor(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatStatus formats the playback status indicator (Cyan + Bold)
func FormatStatus(status string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, status, ColorReset)
}

// FormatDim renders secondary text
func FormatDim(text string) string {
	return ColorDim + text + ColorReset
}

// FormatSectionSeparator creates a separator line of the given width
func FormatSectionSeparator(width int) string {
	if width <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%s%s", ColorCyan, strings.Repeat("─", width), ColorReset)
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}
