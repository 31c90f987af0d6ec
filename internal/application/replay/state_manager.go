package replay

import (
	"sync"
	"time"

	"github.com/penwyp/go-atak-replay/internal/config"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/playback"
	"github.com/penwyp/go-atak-replay/internal/core/session"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
)

// StateManager manages application state in a thread-safe manner. Playback
// state only changes through Dispatch, which runs the pure reducer.
type StateManager struct {
	mu sync.RWMutex

	session   *session.Session
	playback  playback.State
	snapshot  timeline.Snapshot
	intervals playback.Intervals

	interactionState model.InteractionState
}

// NewStateManager creates a new StateManager with a paused playback state
func NewStateManager(zoom float64, fallback model.LatLon, intervals playback.Intervals) *StateManager {
	return &StateManager{
		playback:  playback.NewState(zoom, fallback),
		intervals: intervals,
		snapshot:  timeline.Snapshot{Positions: map[string]model.Observation{}},
	}
}

// Session returns the current session, nil before loading
func (sm *StateManager) Session() *session.Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.session
}

// SetSession installs a session and recomputes the snapshot at the
// current cursor
func (sm *StateManager) SetSession(s *session.Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.session = s
	sm.playback, sm.snapshot = playback.Reduce(s, sm.playback, nil)
}

// Dispatch applies a message and returns the resulting state and snapshot.
// Messages before a session is loaded are ignored.
func (sm *StateManager) Dispatch(msg playback.Msg) (playback.State, timeline.Snapshot) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.session == nil {
		return sm.playback, sm.snapshot
	}
	sm.playback, sm.snapshot = playback.Reduce(sm.session, sm.playback, msg)
	return sm.playback, sm.snapshot
}

// Playback returns the current playback state and snapshot
func (sm *StateManager) Playback() (playback.State, timeline.Snapshot) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.playback, sm.snapshot
}

// TimerInterval returns the tick interval for the current mode; ok is
// false while paused.
func (sm *StateManager) TimerInterval() (time.Duration, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	c := sm.playback.Controller
	if !c.TimerEnabled() {
		return 0, false
	}
	return c.Interval(sm.intervals), true
}

// ApplySettings swaps in reloaded settings: a repainted session and new
// timer intervals. Playback position and viewport are kept.
func (sm *StateManager) ApplySettings(s *config.Settings) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.session != nil {
		repainted, err := sm.session.WithPalette(PaletteOptions(s))
		if err != nil {
			return err
		}
		sm.session = repainted
	}
	sm.intervals = Intervals(s)
	sm.playback.Viewport.Fallback = s.Center()
	return nil
}

// GetInteractionState returns current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	updateFunc(&sm.interactionState)
}

// SetLoadingState updates loading state and message
func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.IsLoading = isLoading
		s.LoadingMessage = message
	})
}
