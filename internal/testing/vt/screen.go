// Package vt is a minimal virtual terminal for asserting on rendered
// frames. It understands the control sequences the display emits: cursor
// home and positioning, screen and line erase, SGR colors and the private
// modes for the alternate screen and cursor visibility.
package vt

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var csiPattern = regexp.MustCompile(`\x1b\[[?0-9;]*[a-zA-Z]`)

// StripANSI removes CSI escape sequences from s
func StripANSI(s string) string {
	return csiPattern.ReplaceAllString(s, "")
}

// Screen is a rows x cols grid of cells with a cursor
type Screen struct {
	rows, cols int
	cells      [][]rune
	x, y       int

	// AltScreen tracks ?1049h / ?1049l
	AltScreen bool
	// CursorHidden tracks ?25l / ?25h
	CursorHidden bool
	// Scrolled counts lines pushed off the top; a frame that fits never scrolls
	Scrolled int
}

// wideFiller occupies the second cell of a double-width rune
const wideFiller = 0

// NewScreen creates a blank screen
func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols}
	s.cells = make([][]rune, rows)
	for i := range s.cells {
		s.cells[i] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Write feeds terminal output to the screen. It never fails.
func (s *Screen) Write(p []byte) (int, error) {
	runes := []rune(string(p))
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.csi(runes, i+2)
		case r == '\n':
			s.x = 0
			s.lineFeed()
		case r == '\r':
			s.x = 0
		default:
			s.put(r)
		}
	}
	return len(p), nil
}

// csi handles one control sequence starting after "ESC [" and returns the
// index of its final byte
func (s *Screen) csi(runes []rune, i int) int {
	private := false
	if i < len(runes) && runes[i] == '?' {
		private = true
		i++
	}
	var params []int
	current, seen := 0, false
	for ; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
			seen = true
		case r == ';':
			params = append(params, current)
			current, seen = 0, false
		default:
			if seen {
				params = append(params, current)
			}
			if private {
				s.privateMode(r, params)
			} else {
				s.command(r, params)
			}
			return i
		}
	}
	return i
}

func param(params []int, idx, def int) int {
	if idx < len(params) && params[idx] > 0 {
		return params[idx]
	}
	return def
}

func (s *Screen) privateMode(final rune, params []int) {
	on := final == 'h'
	for _, p := range params {
		switch p {
		case 1049:
			s.AltScreen = on
		case 25:
			s.CursorHidden = !on
		}
	}
}

func (s *Screen) command(final rune, params []int) {
	switch final {
	case 'H', 'f':
		s.y = clamp(param(params, 0, 1)-1, 0, s.rows-1)
		s.x = clamp(param(params, 1, 1)-1, 0, s.cols-1)
	case 'J':
		mode := 0
		if len(params) > 0 {
			mode = params[0]
		}
		switch mode {
		case 0:
			s.eraseLine(s.y, s.x, s.cols)
			for r := s.y + 1; r < s.rows; r++ {
				s.cells[r] = blankRow(s.cols)
			}
		case 2, 3:
			for r := range s.cells {
				s.cells[r] = blankRow(s.cols)
			}
		}
	case 'K':
		mode := 0
		if len(params) > 0 {
			mode = params[0]
		}
		switch mode {
		case 0:
			s.eraseLine(s.y, s.x, s.cols)
		case 2:
			s.eraseLine(s.y, 0, s.cols)
		}
	case 'A':
		s.y = clamp(s.y-param(params, 0, 1), 0, s.rows-1)
	case 'B':
		s.y = clamp(s.y+param(params, 0, 1), 0, s.rows-1)
	}
	// SGR ('m') and scroll region ('r') do not change cell content
}

func (s *Screen) eraseLine(row, from, to int) {
	for c := from; c < to && c < s.cols; c++ {
		s.cells[row][c] = ' '
	}
}

func (s *Screen) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if s.x+w > s.cols {
		s.x = 0
		s.lineFeed()
	}
	s.cells[s.y][s.x] = r
	if w == 2 {
		s.cells[s.y][s.x+1] = wideFiller
	}
	s.x += w
}

func (s *Screen) lineFeed() {
	if s.y < s.rows-1 {
		s.y++
		return
	}
	s.cells = append(s.cells[1:], blankRow(s.cols))
	s.Scrolled++
}

// Line returns row n without trailing spaces
func (s *Screen) Line(n int) string {
	if n < 0 || n >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, r := range s.cells[n] {
		if r != wideFiller {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row
func (s *Screen) Lines() []string {
	out := make([]string, s.rows)
	for i := range out {
		out[i] = s.Line(i)
	}
	return out
}

// Render returns the whole screen as text
func (s *Screen) Render() string {
	return strings.Join(s.Lines(), "\n")
}

// Contains reports whether any row contains text
func (s *Screen) Contains(text string) bool {
	for _, line := range s.Lines() {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}

// UsedRows counts rows holding any non-space content
func (s *Screen) UsedRows() int {
	n := 0
	for _, line := range s.Lines() {
		if line != "" {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
