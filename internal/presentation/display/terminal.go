package display

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/presentation/interaction"
	"github.com/penwyp/go-atak-replay/internal/presentation/layout"
	"github.com/penwyp/go-atak-replay/internal/util"
)

// clearToEnd clears from the cursor to the end of the screen
const clearToEnd = "\033[J"

// DisplayConfig selects the layout and output of a TerminalDisplay
type DisplayConfig struct {
	LayoutStyle string
	Output      io.Writer
	// Size overrides terminal detection, mainly for tests
	Size func() layout.Size
}

type TerminalDisplay struct {
	out               *bufio.Writer
	strategy          layout.LayoutStrategy
	size              func() layout.Size
	inAlternateScreen bool
	isFirstRender     bool
	currentMode       model.DisplayMode
	frame             bytes.Buffer
}

func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	size := config.Size
	if size == nil {
		size = layout.GetSizer().TerminalSize
	}
	return &TerminalDisplay{
		out:           bufio.NewWriter(out),
		strategy:      layout.GetLayoutStrategy(config.LayoutStyle),
		size:          size,
		isFirstRender: true,
		currentMode:   model.ModeNormal,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() error {
	if td.inAlternateScreen {
		return nil
	}
	td.out.WriteString(util.EnterAltScreen)
	td.out.WriteString(util.ClearScreen)
	td.out.WriteString(util.MoveCursorHome)
	td.out.WriteString(util.ClearScrollback)
	td.out.WriteString(util.ResetScrollRegion)
	td.out.WriteString(util.DisableScrollback)
	td.out.WriteString(util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
	return td.out.Flush()
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() error {
	if !td.inAlternateScreen {
		return nil
	}
	td.out.WriteString(util.ClearScreen)
	td.out.WriteString(util.MoveCursorHome)
	td.out.WriteString(util.EnableScrollback)
	td.out.WriteString(util.ShowCursor)
	td.out.WriteString(util.ExitAltScreen)
	td.inAlternateScreen = false
	return td.out.Flush()
}

// RenderWithState draws one screen. The frame is built in memory and
// written in a single flush so the terminal never shows a half-drawn map.
func (td *TerminalDisplay) RenderWithState(frame layout.Frame, state model.InteractionState) error {
	newMode := state.Mode()
	td.frame.Reset()

	if td.isFirstRender || newMode != td.currentMode {
		td.frame.WriteString(util.ClearScreen)
		td.isFirstRender = false
		td.currentMode = newMode
	}
	td.frame.WriteString(util.MoveCursorHome)

	size := td.size()
	switch newMode {
	case model.ModeHelp:
		td.renderHelp(&td.frame, size)
	case model.ModeLoading:
		td.renderLoadingScreen(&td.frame, state.LoadingMessage, size)
	default:
		if state.StatusMessage != "" {
			frame.Message = state.StatusMessage
		}
		if err := td.strategy.Render(&td.frame, frame, size); err != nil {
			return err
		}
	}
	td.frame.WriteString(clearToEnd)

	if _, err := td.out.Write(td.frame.Bytes()); err != nil {
		return err
	}
	return td.out.Flush()
}

func (td *TerminalDisplay) renderHelp(w io.Writer, size layout.Size) {
	width := size.Width
	if width > 80 {
		width = 80
	}
	fmt.Fprintf(w, "%s\n", util.FormatHeaderTitle("ATAK Replay - Help"))
	fmt.Fprintln(w, strings.Repeat("═", width))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keyboard Shortcuts:")
	fmt.Fprintln(w)
	for _, line := range interaction.HelpLines {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Map:")
	fmt.Fprintln(w, "  ● entity position, colored by tag   + view center")
	fmt.Fprintln(w, "  The view follows the visible entities until you pan or zoom.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("═", width))
	fmt.Fprint(w, "Press '?' to return...")
}

func (td *TerminalDisplay) renderLoadingScreen(w io.Writer, message string, size layout.Size) {
	boxWidth := 50
	if size.Width < boxWidth+2 {
		boxWidth = size.Width - 2
	}
	padding := strings.Repeat(" ", (size.Width-boxWidth)/2)

	for i := 0; i < size.Height/2-4; i++ {
		fmt.Fprintln(w)
	}

	if message == "" {
		message = "Loading log..."
	}
	inner := boxWidth - 2
	fmt.Fprintf(w, "%s╔%s╗\n", padding, strings.Repeat("═", inner))
	fmt.Fprintf(w, "%s║%s║\n", padding, util.CenterText("ATAK Replay", inner))
	fmt.Fprintf(w, "%s╠%s╣\n", padding, strings.Repeat("═", inner))
	fmt.Fprintf(w, "%s║%s║\n", padding, util.CenterText(message, inner))
	fmt.Fprintf(w, "%s║%s║\n", padding, util.CenterText("Press 'q' to quit", inner))
	fmt.Fprintf(w, "%s╚%s╝", padding, strings.Repeat("═", inner))
}
