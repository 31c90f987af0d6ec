package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-atak-replay/internal/util"
)

// fixedRows counts every full-layout row that is not part of the map body
const fixedRows = 9

const minMapRows = 3

// FullLayoutStrategy draws the header, map, legend and scrubber
type FullLayoutStrategy struct {
	BaseStrategy
}

// NewFullLayoutStrategy creates a new full layout strategy
func NewFullLayoutStrategy() *FullLayoutStrategy {
	return &FullLayoutStrategy{BaseStrategy: BaseStrategy{name: StyleFull}}
}

// Render writes one full screen
func (s *FullLayoutStrategy) Render(w io.Writer, f Frame, size Size) error {
	width := size.Width
	mapRows := size.Height - fixedRows
	if mapRows < minMapRows {
		mapRows = minMapRows
	}

	view := MapView{Width: width - 2, Height: mapRows, Center: f.Center, Zoom: f.Zoom}
	rows, offMap := view.Render(f.Snapshot, f.color)

	lines := make([]string, 0, size.Height)
	lines = append(lines,
		s.HeaderLine(f.Title, f.Status, width),
		util.FormatSectionSeparator(width),
		util.Truncate(s.InfoLine(f), width),
	)

	mapTitle := "Map"
	if offMap > 0 {
		mapTitle = fmt.Sprintf("Map · %d off-screen", offMap)
	}
	lines = append(lines, s.BoxTop(mapTitle, width))
	for _, row := range rows {
		lines = append(lines, s.BoxLine(row))
	}
	lines = append(lines, s.BoxBottom(width))

	track, labels := Scrubber{Width: width, Clock: f.Clock}.Render(f.Index, f.Cursor)
	lines = append(lines, s.Legend(f), track, labels)

	footer := f.Message
	if footer == "" {
		footer = "p play · space pause · f fast · ←/→ step · hjkl pan · +/- zoom · c center · ? help · q quit"
	}
	lines = append(lines, util.FormatDim(util.Truncate(footer, width)))
	return writeLines(w, lines)
}
