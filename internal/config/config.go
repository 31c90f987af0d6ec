// Package config loads optional YAML settings for the replay viewer.
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-atak-replay/internal/core/classifier"
	"github.com/penwyp/go-atak-replay/internal/core/model"
)

// EnvConfigPath names the settings file when --config is not given
const EnvConfigPath = "ATAK_REPLAY_CONFIG"

// Settings is the root of the YAML settings file
type Settings struct {
	Palette  PaletteSettings  `yaml:"palette"`
	Viewport ViewportSettings `yaml:"viewport"`
	Playback PlaybackSettings `yaml:"playback"`
}

type PaletteSettings struct {
	Seed  string                 `yaml:"seed"`
	Rules []classifier.ColorRule `yaml:"rules"`
}

type ViewportSettings struct {
	DefaultCenter *model.LatLon `yaml:"default_center"`
	Zoom          float64       `yaml:"zoom"`
}

type PlaybackSettings struct {
	PlayInterval Duration `yaml:"play_interval"`
	FastInterval Duration `yaml:"fast_interval"`
}

// Duration accepts Go duration strings such as "500ms"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in settings
func Default() *Settings {
	center := model.DefaultCenter
	return &Settings{
		Palette: PaletteSettings{
			Seed:  classifier.DefaultSeed,
			Rules: classifier.DefaultRules(),
		},
		Viewport: ViewportSettings{
			DefaultCenter: &center,
			Zoom:          model.DefaultZoom,
		},
		Playback: PlaybackSettings{
			PlayInterval: Duration(time.Second),
			FastInterval: Duration(100 * time.Millisecond),
		},
	}
}

// ResolvePath picks the settings path: explicit path, then the environment.
// An empty result means no settings file.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(EnvConfigPath)
}

// Load reads a YAML settings file. An empty path returns the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Parse(data, settings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Parse decodes YAML over settings and validates the result
func Parse(data []byte, settings *Settings) error {
	if err := yaml.Unmarshal(data, settings); err != nil {
		return err
	}
	return settings.Validate()
}

// Validate rejects settings that would break playback or coloring
func (s *Settings) Validate() error {
	if s.Playback.PlayInterval <= 0 || s.Playback.FastInterval <= 0 {
		return fmt.Errorf("playback intervals must be positive")
	}
	if math.IsNaN(s.Viewport.Zoom) || s.Viewport.Zoom < model.MinZoom || s.Viewport.Zoom > model.MaxZoom {
		return fmt.Errorf("viewport zoom %v outside [%v, %v]", s.Viewport.Zoom, model.MinZoom, model.MaxZoom)
	}
	if c := s.Viewport.DefaultCenter; c != nil && !validCenter(*c) {
		return fmt.Errorf("viewport default_center %v out of range", *c)
	}
	for _, rule := range s.Palette.Rules {
		if rule.Prefix == "" {
			return fmt.Errorf("palette rule with color %q has no prefix", rule.Color)
		}
		if _, err := classifier.NormalizeColor(rule.Color); err != nil {
			return fmt.Errorf("palette rule %q: %w", rule.Prefix, err)
		}
	}
	return nil
}

// validCenter also rejects NaN, which fails every range comparison
func validCenter(c model.LatLon) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Center returns the fallback map center
func (s *Settings) Center() model.LatLon {
	if s.Viewport.DefaultCenter == nil {
		return model.DefaultCenter
	}
	return *s.Viewport.DefaultCenter
}
