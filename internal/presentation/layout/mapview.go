package layout

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/playback"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
	"github.com/penwyp/go-atak-replay/internal/util"
)

const (
	markerRune = '●'
	centerRune = '+'
	// cellAspect is how much taller a terminal cell is than it is wide
	cellAspect = 2.0
)

type cell struct {
	r     rune
	color string
}

// MapView projects a snapshot onto a character grid
type MapView struct {
	Width  int
	Height int
	Center model.LatLon
	Zoom   float64
}

// Project returns the grid cell for a coordinate; ok is false off-grid
func (m MapView) Project(p model.LatLon) (col, row int, ok bool) {
	if m.Width <= 0 || m.Height <= 0 {
		return 0, 0, false
	}
	degPerCol := playback.LonSpan(m.Zoom) / float64(m.Width)
	degPerRow := degPerCol * cellAspect

	dx := (p.Lon - m.Center.Lon) / degPerCol
	dy := (p.Lat - m.Center.Lat) / degPerRow
	// Offsets beyond the grid (or NaN) are off-map before any int conversion.
	if !(math.Abs(dx) <= float64(m.Width)) || !(math.Abs(dy) <= float64(m.Height)) {
		return 0, 0, false
	}

	col = m.Width/2 + int(math.Round(dx))
	row = m.Height/2 - int(math.Round(dy))
	ok = col >= 0 && col < m.Width && row >= 0 && row < m.Height
	return col, row, ok
}

// Render draws markers with entity labels. Markers are placed before labels
// so a label never hides another marker. It returns the rendered rows and
// the number of entities that fell outside the grid.
func (m MapView) Render(snap timeline.Snapshot, colorOf func(tag string) string) ([]string, int) {
	grid := make([][]cell, m.Height)
	for r := range grid {
		grid[r] = make([]cell, m.Width)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' '}
		}
	}
	if m.Width == 0 || m.Height == 0 {
		return nil, snap.Len()
	}

	grid[m.Height/2][m.Width/2] = cell{r: centerRune, color: util.ColorDim}

	type placed struct {
		col, row int
		obs      model.Observation
	}
	var visible []placed
	offMap := 0
	for _, o := range snap.Sorted() {
		col, row, ok := m.Project(o.Position())
		if !ok {
			offMap++
			continue
		}
		grid[row][col] = cell{r: markerRune, color: util.TrueColor(colorOf(o.Tag))}
		visible = append(visible, placed{col: col, row: row, obs: o})
	}

	for _, p := range visible {
		col := p.col + 1
		for _, r := range p.obs.EntityID {
			w := runewidth.RuneWidth(r)
			if w != 1 || col >= m.Width || grid[p.row][col].r != ' ' {
				break
			}
			grid[p.row][col] = cell{r: r}
			col++
		}
	}

	rows := make([]string, m.Height)
	for r := range grid {
		var b strings.Builder
		current := ""
		for _, c := range grid[r] {
			if c.color != current {
				if current != "" {
					b.WriteString(util.ColorReset)
				}
				b.WriteString(c.color)
				current = c.color
			}
			b.WriteRune(c.r)
		}
		if current != "" {
			b.WriteString(util.ColorReset)
		}
		rows[r] = b.String()
	}
	return rows, offMap
}
