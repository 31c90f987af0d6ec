package layout

import (
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
	"github.com/penwyp/go-atak-replay/internal/util"
)

// Frame is everything a layout needs to draw one screen
type Frame struct {
	Title    string
	Status   string
	Cursor   int
	Index    *timeline.Index
	Snapshot timeline.Snapshot
	Center   model.LatLon
	Pinned   bool // center chosen by the user rather than auto-centered
	Zoom     float64
	Color    func(tag string) string
	Clock    *util.TimeProvider
	Message  string
}

// Size is the drawable area in terminal cells
type Size struct {
	Width  int
	Height int
}

func (f Frame) color(tag string) string {
	if f.Color == nil {
		return ""
	}
	return f.Color(tag)
}

func (f Frame) clock() *util.TimeProvider {
	if f.Clock == nil {
		return util.GetTimeProvider()
	}
	return f.Clock
}

// CursorLabel formats the cursor time, or a placeholder for an empty log
func (f Frame) CursorLabel() string {
	if f.Index == nil || f.Index.Empty() {
		return "--:--:--"
	}
	return f.clock().Format(f.Index.At(f.Index.Clamp(f.Cursor)), util.LogTimeLayout)
}

func (f Frame) total() int {
	if f.Index == nil {
		return 0
	}
	return f.Index.Len()
}
