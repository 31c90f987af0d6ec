package interaction

import (
	"github.com/penwyp/go-atak-replay/internal/core/playback"
)

// JumpSize is how many timeline steps '<' and '>' move
const JumpSize = 10

// Binding is what a key press asks the application to do. At most one of
// the fields is set; the zero value means the key is unbound.
type Binding struct {
	Msg        playback.Msg
	Quit       bool
	ToggleHelp bool
}

// Bound reports whether the key did anything
func (b Binding) Bound() bool {
	return b.Msg != nil || b.Quit || b.ToggleHelp
}

// Resolve maps a key event to a binding
func Resolve(ev KeyEvent) Binding {
	switch ev.Type {
	case KeyEscape:
		return Binding{Quit: true}
	case KeyLeft:
		return Binding{Msg: playback.StepMsg{Delta: -1}}
	case KeyRight:
		return Binding{Msg: playback.StepMsg{Delta: 1}}
	case KeyUp:
		return Binding{Msg: playback.PanMsg{North: 1}}
	case KeyDown:
		return Binding{Msg: playback.PanMsg{North: -1}}
	case KeyHome:
		return Binding{Msg: playback.FirstMsg{}}
	case KeyEnd:
		return Binding{Msg: playback.LastMsg{}}
	}

	switch ev.Key {
	case 'q', 'Q', keyCtrlC:
		return Binding{Quit: true}
	case '?':
		return Binding{ToggleHelp: true}
	case 'p', 'P':
		return Binding{Msg: playback.PlayMsg{}}
	case ' ':
		return Binding{Msg: playback.PauseMsg{}}
	case 'f', 'F':
		return Binding{Msg: playback.FastForwardMsg{}}
	case '[':
		return Binding{Msg: playback.StepMsg{Delta: -1}}
	case ']':
		return Binding{Msg: playback.StepMsg{Delta: 1}}
	case '<', ',':
		return Binding{Msg: playback.StepMsg{Delta: -JumpSize}}
	case '>', '.':
		return Binding{Msg: playback.StepMsg{Delta: JumpSize}}
	case 'g':
		return Binding{Msg: playback.FirstMsg{}}
	case 'G':
		return Binding{Msg: playback.LastMsg{}}
	case 'h':
		return Binding{Msg: playback.PanMsg{East: -1}}
	case 'l':
		return Binding{Msg: playback.PanMsg{East: 1}}
	case 'k':
		return Binding{Msg: playback.PanMsg{North: 1}}
	case 'j':
		return Binding{Msg: playback.PanMsg{North: -1}}
	case '+', '=':
		return Binding{Msg: playback.ZoomMsg{Delta: 1}}
	case '-', '_':
		return Binding{Msg: playback.ZoomMsg{Delta: -1}}
	case 'c', 'C':
		return Binding{Msg: playback.RecenterMsg{}}
	}
	return Binding{}
}

// HelpLines describes the key bindings for the help screen
var HelpLines = []string{
	"p           play (1 step/s)",
	"space       pause",
	"f           fast-forward (10 steps/s)",
	"← → [ ]     step back / forward",
	"< >         jump 10 steps",
	"g G         first / last snapshot",
	"h j k l ↑ ↓ pan map",
	"+ -         zoom in / out",
	"c           recenter on visible entities",
	"?           toggle this help",
	"q Esc       quit",
}
