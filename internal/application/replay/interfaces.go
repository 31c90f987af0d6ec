package replay

import (
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/presentation/interaction"
	"github.com/penwyp/go-atak-replay/internal/presentation/layout"
)

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen() error
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen() error
	// RenderWithState draws a frame with the given interaction state
	RenderWithState(frame layout.Frame, state model.InteractionState) error
}

// KeySource delivers key presses
type KeySource interface {
	Events() <-chan interaction.KeyEvent
	Close() error
}
