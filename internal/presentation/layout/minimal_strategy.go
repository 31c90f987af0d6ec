package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-atak-replay/internal/util"
)

// MinimalLayoutStrategy renders a single status line per frame
type MinimalLayoutStrategy struct {
	BaseStrategy
}

// NewMinimalLayoutStrategy creates a new minimal layout strategy
func NewMinimalLayoutStrategy() *MinimalLayoutStrategy {
	return &MinimalLayoutStrategy{BaseStrategy: BaseStrategy{name: StyleMinimal}}
}

// Render writes the status line and the scrubber track
func (s *MinimalLayoutStrategy) Render(w io.Writer, f Frame, size Size) error {
	status := fmt.Sprintf("%s │ %s", f.Status, s.InfoLine(f))
	track, _ := Scrubber{Width: size.Width, Clock: f.Clock}.Render(f.Index, f.Cursor)
	return writeLines(w, []string{util.Truncate(status, size.Width), track})
}
