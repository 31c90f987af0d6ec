package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-atak-replay/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
	name string
}

// GetName returns the strategy name
func (b *BaseStrategy) GetName() string {
	return b.name
}

// GetSizer returns the shared sizer
func (b *BaseStrategy) GetSizer() *Sizer {
	return GetSizer()
}

// BoxTop draws the top border of a box with an embedded title
func (b *BaseStrategy) BoxTop(title string, width int) string {
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	label := ""
	if title != "" {
		label = util.Truncate(" "+title+" ", inner)
	}
	rest := inner - util.GetDisplayWidth(label)
	if rest < 0 {
		rest = 0
	}
	return "╭" + label + strings.Repeat("─", rest) + "╮"
}

// BoxBottom draws the bottom border of a box
func (b *BaseStrategy) BoxBottom(width int) string {
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	return "╰" + strings.Repeat("─", inner) + "╯"
}

// BoxLine wraps pre-rendered content of the given inner width in side borders
func (b *BaseStrategy) BoxLine(content string) string {
	return "│" + content + "│"
}

// HeaderLine places the title on the left and the status on the right
func (b *BaseStrategy) HeaderLine(title, status string, width int) string {
	gap := width - util.GetDisplayWidth(title) - util.GetDisplayWidth(status)
	if gap < 1 {
		return util.Truncate(title+" "+status, width)
	}
	return util.FormatHeaderTitle(title) + strings.Repeat(" ", gap) + util.FormatStatus(status)
}

// InfoLine summarizes cursor, visible entities and viewport
func (b *BaseStrategy) InfoLine(f Frame) string {
	mode := "auto"
	if f.Pinned {
		mode = "pinned"
	}
	return fmt.Sprintf("⏱️ %s  %s  👥 %d visible  📍 %s (%s)  🔍 %s",
		f.CursorLabel(),
		util.FormatProgress(f.Cursor, f.total()),
		f.Snapshot.Len(),
		util.FormatLatLon(f.Center.Lat, f.Center.Lon),
		mode,
		util.FormatZoom(f.Zoom),
	)
}

// Legend lists visible tags with their marker color and entity counts
func (b *BaseStrategy) Legend(f Frame) string {
	counts := make(map[string]int)
	for _, o := range f.Snapshot.Positions {
		counts[o.Tag]++
	}
	tags := f.Snapshot.Tags()
	if len(tags) == 0 {
		return util.FormatDim("no entities at this time")
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("%s %s×%d", util.Colorize(string(markerRune), f.color(tag)), tag, counts[tag]))
	}
	return strings.Join(parts, "  ")
}

// writeLines writes each line followed by a clear-to-end-of-line and newline
func writeLines(w io.Writer, lines []string) error {
	for i, line := range lines {
		sep := "\n"
		if i == len(lines)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s%s%s", line, clearLine, sep); err != nil {
			return err
		}
	}
	return nil
}

const clearLine = "\033[K"
