// Package playback models replay transport state, map viewport state and
// the reducer that combines them with a session into a displayed snapshot.
package playback

import "time"

// Mode is the transport state
type Mode int

const (
	Paused Mode = iota
	Playing
	FastForward
)

// Action is a transport request from the user
type Action string

const (
	ActionPlay        Action = "play"
	ActionPause       Action = "pause"
	ActionFastForward Action = "fast-forward"
)

// String returns the status indicator text
func (m Mode) String() string {
	switch m {
	case Playing:
		return "Playing ▶️"
	case FastForward:
		return "Fast-forward ⏩"
	default:
		return "Paused ⏸️"
	}
}

// Intervals are the tick periods for each running mode
type Intervals struct {
	Play time.Duration
	Fast time.Duration
}

// DefaultIntervals ticks once per second when playing and ten times faster
// when fast-forwarding.
func DefaultIntervals() Intervals {
	return Intervals{Play: time.Second, Fast: 100 * time.Millisecond}
}

// Controller is the transport state machine. The zero value is paused at
// cursor 0.
type Controller struct {
	Mode   Mode
	Cursor int
}

// Apply transitions on a user action. Unrecognized actions pause.
func (c Controller) Apply(action Action) Controller {
	switch action {
	case ActionPlay:
		c.Mode = Playing
	case ActionFastForward:
		c.Mode = FastForward
	default:
		c.Mode = Paused
	}
	return c
}

// Tick advances the cursor by one while running, stopping at lastIndex.
// Reaching the end does not change the mode.
func (c Controller) Tick(lastIndex int) Controller {
	if c.Mode == Paused {
		return c
	}
	return c.Seek(c.Cursor+1, lastIndex)
}

// Seek moves the cursor to i clamped to [0, lastIndex]
func (c Controller) Seek(i, lastIndex int) Controller {
	if i > lastIndex {
		i = lastIndex
	}
	if i < 0 {
		i = 0
	}
	c.Cursor = i
	return c
}

// TimerEnabled reports whether ticks should be delivered
func (c Controller) TimerEnabled() bool {
	return c.Mode != Paused
}

// Interval returns the tick period for the current mode. A paused
// controller reports the play interval with the timer disabled.
func (c Controller) Interval(iv Intervals) time.Duration {
	if c.Mode == FastForward {
		return iv.Fast
	}
	return iv.Play
}

// AtEnd reports whether the cursor sits on the final index
func (c Controller) AtEnd(lastIndex int) bool {
	return lastIndex < 0 || c.Cursor >= lastIndex
}
