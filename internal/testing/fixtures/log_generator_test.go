package fixtures

import (
	"bytes"
	"testing"
	"time"

	"github.com/penwyp/go-atak-replay/internal/data/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogGeneratorParses(t *testing.T) {
	g := NewLogGenerator(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf))

	result, err := parser.NewParser().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Snapshots, result.Stats.Headers)
	assert.Equal(t, g.EntryCount(), result.Stats.Entries)
	assert.Zero(t, result.Stats.Skipped)
	require.Len(t, result.Observations, g.EntryCount())

	last := result.Observations[len(result.Observations)-1]
	assert.Equal(t, time.Date(2024, 1, 1, 12, 2, 5, 0, time.UTC), last.Time)
}

func TestLogGeneratorWriteFile(t *testing.T) {
	g := NewLogGenerator(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	g.Snapshots = 1

	path, err := g.WriteFile(t.TempDir()+"/atak_logs", "data.log")
	require.NoError(t, err)

	result, err := parser.NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, result.Observations, len(g.Tracks))
}
