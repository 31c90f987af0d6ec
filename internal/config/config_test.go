package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Equal(t, model.DefaultCenter, s.Center())
	assert.Equal(t, Duration(time.Second), s.Playback.PlayInterval)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeFile(t, `
palette:
  seed: mission-42
  rules:
    - prefix: RED
      color: "#aa0000"
viewport:
  zoom: 10
playback:
  fast_interval: 50ms
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mission-42", s.Palette.Seed)
	require.Len(t, s.Palette.Rules, 1)
	assert.Equal(t, "RED", s.Palette.Rules[0].Prefix)
	assert.Equal(t, 10.0, s.Viewport.Zoom)
	assert.Equal(t, model.DefaultCenter, s.Center())
	assert.Equal(t, Duration(time.Second), s.Playback.PlayInterval)
	assert.Equal(t, Duration(50*time.Millisecond), s.Playback.FastInterval)
}

func TestLoadDefaultCenter(t *testing.T) {
	path := writeFile(t, "viewport:\n  default_center:\n    lat: 51.5\n    lon: -0.12\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.LatLon{Lat: 51.5, Lon: -0.12}, s.Center())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad_duration":  "playback:\n  play_interval: soon\n",
		"zero_interval": "playback:\n  play_interval: 0s\n",
		"bad_zoom":      "viewport:\n  zoom: 40\n",
		"bad_center":    "viewport:\n  default_center: {lat: 100, lon: 0}\n",
		"nan_zoom":      "viewport:\n  zoom: .nan\n",
		"nan_lat":       "viewport:\n  default_center: {lat: .nan, lon: 0}\n",
		"nan_lon":       "viewport:\n  default_center: {lat: 0, lon: .NaN}\n",
		"bad_color":     "palette:\n  rules:\n    - prefix: X\n      color: mauve-ish\n",
		"empty_prefix":  "palette:\n  rules:\n    - color: red\n",
		"not_yaml":      "palette: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.yaml")
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))
	assert.Equal(t, "/from/env.yaml", ResolvePath(""))
}
