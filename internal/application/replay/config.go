package replay

import (
	"fmt"
	"time"

	"github.com/penwyp/go-atak-replay/internal/config"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/playback"
	"github.com/penwyp/go-atak-replay/internal/core/session"
	"github.com/penwyp/go-atak-replay/internal/presentation/layout"
)

// DefaultLogFile is read when no log file argument is given
const DefaultLogFile = "atak_logs/data.log"

// ReplayConfig contains configuration for the interactive replay
type ReplayConfig struct {
	LogFile string

	// ConfigFile is the YAML settings path; when set it is watched and
	// palette changes are applied without restarting.
	ConfigFile string
	Settings   *config.Settings

	// Display settings
	Timezone    string
	LayoutStyle string

	// Startup state
	Play bool
	Zoom float64 // overrides the settings zoom when non-zero
}

// Validate checks if the configuration is valid, filling defaults
func (c *ReplayConfig) Validate() error {
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.Settings == nil {
		c.Settings = config.Default()
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.LayoutStyle == "" {
		c.LayoutStyle = layout.StyleFull
	}
	if c.Zoom != 0 && (c.Zoom < model.MinZoom || c.Zoom > model.MaxZoom) {
		return fmt.Errorf("zoom %v outside [%v, %v]", c.Zoom, model.MinZoom, model.MaxZoom)
	}
	return nil
}

// InitialZoom is the flag zoom if given, else the settings zoom
func (c *ReplayConfig) InitialZoom() float64 {
	if c.Zoom != 0 {
		return c.Zoom
	}
	return c.Settings.Viewport.Zoom
}

// PaletteOptions converts settings into session palette options
func PaletteOptions(s *config.Settings) session.PaletteOptions {
	return session.PaletteOptions{Rules: s.Palette.Rules, Seed: s.Palette.Seed}
}

// Intervals converts settings into playback timer intervals
func Intervals(s *config.Settings) playback.Intervals {
	return playback.Intervals{
		Play: time.Duration(s.Playback.PlayInterval),
		Fast: time.Duration(s.Playback.FastInterval),
	}
}
