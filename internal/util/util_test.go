package util

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelWarn, fields: map[string]interface{}{}, mu: newMutex()}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Info("hidden")
	logger.Warn("shown", F("line", 7))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown line=7")
}

func TestLoggerNamedAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelDebug, fields: map[string]interface{}{}, mu: newMutex()}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	child := logger.Named("parser").With(F("file", "data.log"))
	child.Debug("parsed", F("entries", 3))

	out := buf.String()
	assert.Contains(t, out, "parser: parsed entries=3 file=data.log")
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelInfo, fields: map[string]interface{}{}, mu: newMutex()}
	logger.AddOutput(NewConsoleOutput(&buf, FormatJSON))

	logger.Info("loaded", F("observations", 2))

	out := buf.String()
	assert.Contains(t, out, `"message":"loaded"`)
	assert.Contains(t, out, `"observations":2`)
}

func TestNewLoggerRequiresDestination(t *testing.T) {
	_, err := NewLogger(LoggerOptions{Level: "info"})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(LoggerOptions{Level: "info", File: file})
	require.NoError(t, err)
	logger.Info("hello")
	assert.NoError(t, logger.Close())
}

func TestComponentBeforeInitIsNoop(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		Component("x").Info("nothing")
		LogInfof("nothing %d", 1)
	})
}

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := ParseHexColor("#ff8000")
	require.True(t, ok)
	assert.Equal(t, uint8(0xff), r)
	assert.Equal(t, uint8(0x80), g)
	assert.Equal(t, uint8(0x00), b)

	_, _, _, ok = ParseHexColor("red")
	assert.False(t, ok)
	assert.Equal(t, "\033[38;2;255;128;0m", TrueColor("#ff8000"))
	assert.Equal(t, ColorReset, TrueColor("nope"))
}

func TestCenterTextAndTruncate(t *testing.T) {
	assert.Equal(t, "  ab  ", CenterText("ab", 6))
	assert.Equal(t, "abc", CenterText("abcdef", 3))
	assert.Equal(t, 4, GetDisplayWidth(Truncate("abcdefgh", 4)))
	assert.True(t, strings.HasSuffix(Truncate("abcdefgh", 4), "…"))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestTimeProvider(t *testing.T) {
	ts, err := ParseLogTime("2024-01-01 12:00:05")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())

	tp, err := NewTimeProvider("UTC")
	require.NoError(t, err)
	assert.Equal(t, "12:00", tp.Format(ts, "15:04"))

	_, err = NewTimeProvider("Not/AZone")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "-41.28900", FormatCoordinate(-41.289))
	assert.Equal(t, "12", FormatZoom(12))
	assert.Equal(t, "12.5", FormatZoom(12.5))
	assert.Equal(t, "0/0", FormatProgress(0, 0))
	assert.Equal(t, "3/10", FormatProgress(2, 10))
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "2m 5s", FormatDuration(125*time.Second))
	assert.Equal(t, "1h 1m", FormatDuration(61*time.Minute))
}
