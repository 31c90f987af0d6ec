package replay

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/penwyp/go-atak-replay/internal/config"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/playback"
	"github.com/penwyp/go-atak-replay/internal/core/session"
	"github.com/penwyp/go-atak-replay/internal/data/parser"
	"github.com/penwyp/go-atak-replay/internal/presentation/display"
	"github.com/penwyp/go-atak-replay/internal/presentation/interaction"
	"github.com/penwyp/go-atak-replay/internal/presentation/layout"
	"github.com/penwyp/go-atak-replay/internal/util"
)

// uiRefreshInterval redraws the screen so terminal resizes are picked up
const uiRefreshInterval = time.Second

// Orchestrator coordinates all components of the interactive replay
type Orchestrator struct {
	config       *ReplayConfig
	stateManager *StateManager
	parser       *parser.Parser
	logger       util.LoggerInterface

	// UI components
	display  DisplayController
	keyboard KeySource

	// Settings reload
	watcher *FileWatcher

	// Playback timer, nil while paused
	ticker       *time.Ticker
	tickInterval time.Duration
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(cfg *ReplayConfig) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Orchestrator{
		config:       cfg,
		stateManager: NewStateManager(cfg.InitialZoom(), cfg.Settings.Center(), Intervals(cfg.Settings)),
		parser:       parser.NewParser(),
		logger:       util.Component("replay"),
		display:      display.NewTerminalDisplay(&display.DisplayConfig{LayoutStyle: cfg.LayoutStyle}),
	}, nil
}

// Run starts the orchestrator main loop. It returns when the user quits
// or ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("Starting replay", util.F("log_file", o.config.LogFile))
	defer o.Close()

	if err := util.InitializeTimeProvider(o.config.Timezone); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}

	// Phase 1: Initialize keyboard
	if o.keyboard == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		o.keyboard = keyboard
	}

	if err := o.display.EnterAlternateScreen(); err != nil {
		return err
	}
	defer o.display.ExitAlternateScreen()

	// Phase 2: Load the log
	o.stateManager.SetLoadingState(true, "Parsing "+filepath.Base(o.config.LogFile)+"...")
	o.updateDisplay()

	if err := o.Load(); err != nil {
		return err
	}
	o.stateManager.SetLoadingState(false, "")
	if o.config.Play {
		o.stateManager.Dispatch(playback.PlayMsg{})
	}

	// Phase 3: Watch the settings file
	var fileEvents <-chan model.FileEvent
	if o.config.ConfigFile != "" {
		watcher, err := NewFileWatcher(o.config.ConfigFile)
		if err != nil {
			o.logger.Warn("Settings hot reload disabled", util.F("error", err.Error()))
		} else {
			o.watcher = watcher
			fileEvents = watcher.Events()
		}
	}

	// Phase 4: Main event loop
	uiTicker := time.NewTicker(uiRefreshInterval)
	defer uiTicker.Stop()

	o.syncTicker()
	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("Shutting down replay")
			return nil

		case <-o.tickC():
			o.stateManager.Dispatch(playback.TickMsg{})
			o.updateDisplay()

		case <-uiTicker.C:
			o.updateDisplay()

		case event, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			o.handleFileChange(event)
			o.syncTicker()
			o.updateDisplay()

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.syncTicker()
			o.updateDisplay()
		}
	}
}

// Load parses the log file into a new session
func (o *Orchestrator) Load() error {
	sess, err := session.Load(o.config.LogFile, o.parser, PaletteOptions(o.config.Settings))
	if err != nil {
		return fmt.Errorf("failed to load log file: %w", err)
	}
	o.stateManager.SetSession(sess)

	stats := sess.Stats()
	o.logger.Info("Session ready",
		util.F("observations", sess.Len()),
		util.F("times", sess.Index().Len()),
		util.F("skipped", stats.Skipped),
	)
	if sess.Index().Empty() {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.StatusMessage = "log contains no observations"
		})
	}
	return nil
}

// handleKeyboard handles keyboard events and reports whether to quit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// Escape closes help before it quits
	if state.ShowHelp && event.Type == interaction.KeyEscape {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
		return false
	}

	binding := interaction.Resolve(event)
	if !binding.Bound() {
		o.logger.Debug("Unbound key", util.F("key", string(event.Key)), util.F("type", int(event.Type)))
		return false
	}
	switch {
	case binding.Quit:
		return true
	case binding.ToggleHelp:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = !s.ShowHelp
		})
	case binding.Msg != nil:
		st, _ := o.stateManager.Dispatch(binding.Msg)
		o.logger.Debug("Dispatched",
			util.F("msg", fmt.Sprintf("%T", binding.Msg)),
			util.F("cursor", st.Controller.Cursor),
			util.F("mode", st.Controller.Mode.String()),
		)
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.StatusMessage = ""
		})
	}
	return false
}

// handleFileChange reloads settings and repaints the session. A bad file
// keeps the previous settings.
func (o *Orchestrator) handleFileChange(event model.FileEvent) {
	settings, err := config.Load(o.config.ConfigFile)
	if err != nil {
		o.logger.Warn("Settings reload failed", util.F("path", event.Path), util.F("error", err.Error()))
		o.setStatus("settings reload failed: " + err.Error())
		return
	}
	if err := o.stateManager.ApplySettings(settings); err != nil {
		o.logger.Warn("Settings rejected", util.F("error", err.Error()))
		o.setStatus("settings rejected: " + err.Error())
		return
	}
	o.config.Settings = settings
	o.logger.Info("Settings reloaded", util.F("path", event.Path), util.F("op", event.Operation))
	o.setStatus("settings reloaded")
}

func (o *Orchestrator) setStatus(msg string) {
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.StatusMessage = msg
	})
}

// syncTicker starts, resets or stops the playback timer to match the mode
func (o *Orchestrator) syncTicker() {
	interval, enabled := o.stateManager.TimerInterval()
	switch {
	case !enabled:
		if o.ticker != nil {
			o.ticker.Stop()
			o.ticker = nil
		}
	case o.ticker == nil:
		o.ticker = time.NewTicker(interval)
		o.tickInterval = interval
	case interval != o.tickInterval:
		o.ticker.Reset(interval)
		o.tickInterval = interval
	}
}

// tickC returns the playback timer channel; nil blocks forever in select
func (o *Orchestrator) tickC() <-chan time.Time {
	if o.ticker == nil {
		return nil
	}
	return o.ticker.C
}

// EndOfLogSuffix marks a running playback that has reached the final time
const EndOfLogSuffix = " · end"

// Frame builds the view model for the current state
func (o *Orchestrator) Frame() layout.Frame {
	sess := o.stateManager.Session()
	st, snap := o.stateManager.Playback()

	f := layout.Frame{
		Title:    "ATAK Replay",
		Status:   st.Controller.Mode.String(),
		Cursor:   st.Controller.Cursor,
		Snapshot: snap,
		Center:   st.Viewport.Resolve(snap),
		Pinned:   st.Viewport.Center != nil,
		Zoom:     st.Viewport.Zoom,
		Clock:    util.GetTimeProvider(),
	}
	if sess != nil {
		f.Title += " · " + filepath.Base(sess.Source())
		f.Index = sess.Index()
		f.Color = sess.Color
		if st.Controller.TimerEnabled() && st.Controller.AtEnd(f.Index.LastIndex()) {
			f.Status += EndOfLogSuffix
		}
	}
	return f
}

// updateDisplay updates the terminal display
func (o *Orchestrator) updateDisplay() {
	if err := o.display.RenderWithState(o.Frame(), o.stateManager.GetInteractionState()); err != nil {
		o.logger.Error("Render failed", util.F("error", err.Error()))
	}
}

// Close releases the keyboard, watcher and timer
func (o *Orchestrator) Close() {
	if o.ticker != nil {
		o.ticker.Stop()
		o.ticker = nil
	}
	if o.watcher != nil {
		o.watcher.Close()
		o.watcher = nil
	}
	if o.keyboard != nil {
		o.keyboard.Close()
		o.keyboard = nil
	}
}
