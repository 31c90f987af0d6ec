package layout

import (
	"strings"

	"github.com/penwyp/go-atak-replay/internal/core/timeline"
	"github.com/penwyp/go-atak-replay/internal/util"
)

// MarkCount is how many time labels the scrubber aims for
const MarkCount = 10

const markLayout = "15:04"

// Scrubber renders the timeline track and its time-of-day labels
type Scrubber struct {
	Width int
	Clock *util.TimeProvider
}

// position maps a timeline index to a column
func (s Scrubber) position(i, n int) int {
	if n <= 1 || s.Width <= 1 {
		return 0
	}
	return i * (s.Width - 1) / (n - 1)
}

// Render returns the track line and the label line. The caret marks the
// cursor; ticks mark labelled positions.
func (s Scrubber) Render(ix *timeline.Index, cursor int) (track, labels string) {
	if ix == nil || ix.Empty() || s.Width <= 0 {
		return util.CenterText("no observations", s.Width), ""
	}

	clock := s.Clock
	if clock == nil {
		clock = util.GetTimeProvider()
	}

	n := ix.Len()
	trackCells := []rune(strings.Repeat("─", s.Width))
	labelCells := []rune(strings.Repeat(" ", s.Width))

	nextFree := 0
	for _, mark := range ix.Marks(MarkCount) {
		col := s.position(mark.Index, n)
		trackCells[col] = '┬'

		text := []rune(clock.Format(mark.Time, markLayout))
		if col < nextFree || col+len(text) > s.Width {
			continue
		}
		copy(labelCells[col:], text)
		nextFree = col + len(text) + 1
	}

	caret := s.position(ix.Clamp(cursor), n)
	before := string(trackCells[:caret])
	after := string(trackCells[caret+1:])
	track = util.ColorCyan + before + util.ColorReset + util.ColorBold + "◆" + util.ColorReset + util.FormatDim(after)
	return track, string(labelCells)
}
