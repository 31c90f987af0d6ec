package playback

import (
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/session"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
)

// Msg is a user action or timer event
type Msg interface {
	isMsg()
}

type (
	// ScrubMsg moves the cursor to an absolute index
	ScrubMsg struct{ Index int }
	// StepMsg moves the cursor relative to its position
	StepMsg struct{ Delta int }
	// FirstMsg and LastMsg jump to the timeline bounds
	FirstMsg struct{}
	LastMsg  struct{}

	PlayMsg        struct{}
	PauseMsg       struct{}
	FastForwardMsg struct{}
	TickMsg        struct{}

	// MapInteractMsg carries a center and/or zoom change from the map
	MapInteractMsg struct {
		Center *model.LatLon
		Zoom   *float64
	}
	// PanMsg shifts the map by whole pan steps
	PanMsg struct{ East, North int }
	// ZoomMsg changes zoom by Delta levels
	ZoomMsg struct{ Delta float64 }
	// RecenterMsg restores auto-centering
	RecenterMsg struct{}
)

func (ScrubMsg) isMsg()       {}
func (StepMsg) isMsg()        {}
func (FirstMsg) isMsg()       {}
func (LastMsg) isMsg()        {}
func (PlayMsg) isMsg()        {}
func (PauseMsg) isMsg()       {}
func (FastForwardMsg) isMsg() {}
func (TickMsg) isMsg()        {}
func (MapInteractMsg) isMsg() {}
func (PanMsg) isMsg()         {}
func (ZoomMsg) isMsg()        {}
func (RecenterMsg) isMsg()    {}

// State is everything the display depends on besides the session
type State struct {
	Controller Controller
	Viewport   Viewport
}

// NewState returns a paused state at cursor 0 with an auto-centered viewport
func NewState(zoom float64, fallback model.LatLon) State {
	return State{Viewport: NewViewport(zoom, fallback)}
}

// Reduce applies msg to st and reconstructs the snapshot to display. It has
// no side effects; a nil msg only recomputes the snapshot.
func Reduce(sess *session.Session, st State, msg Msg) (State, timeline.Snapshot) {
	last := sess.Index().LastIndex()
	c := st.Controller

	switch m := msg.(type) {
	case ScrubMsg:
		st.Controller = c.Seek(m.Index, last)
	case StepMsg:
		st.Controller = c.Seek(c.Cursor+m.Delta, last)
	case FirstMsg:
		st.Controller = c.Seek(0, last)
	case LastMsg:
		st.Controller = c.Seek(last, last)
	case PlayMsg:
		st.Controller = c.Apply(ActionPlay)
	case PauseMsg:
		st.Controller = c.Apply(ActionPause)
	case FastForwardMsg:
		st.Controller = c.Apply(ActionFastForward)
	case TickMsg:
		st.Controller = c.Tick(last)
	case MapInteractMsg:
		st.Viewport = st.Viewport.Interact(m.Center, m.Zoom)
	case PanMsg:
		from := st.Viewport.Resolve(sess.SnapshotAt(c.Cursor))
		st.Viewport = st.Viewport.Pan(m.East, m.North, from)
	case ZoomMsg:
		st.Viewport = st.Viewport.ZoomBy(m.Delta)
	case RecenterMsg:
		st.Viewport = st.Viewport.Recenter()
	}

	return st, sess.SnapshotAt(st.Controller.Cursor)
}
