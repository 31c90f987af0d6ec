package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-atak-replay/internal/core/classifier"
	"github.com/penwyp/go-atak-replay/internal/data/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `--- Snapshot at 2024-01-01 12:00:00 UTC ---
[2024-01-01 12:00:05] Alpha1: 174.76,-41.29
[2024-01-01 12:00:05] BDR-1: 174.70,-41.30
--- Snapshot at 2024-01-01 12:01:00 UTC ---
[2024-01-01 12:01:02] Alpha1: 174.80,-41.20
[2024-01-01 12:01:03] ETG-9: 174.90,-41.10
`

func newSession(t *testing.T, input string) *Session {
	t.Helper()
	result, err := parser.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	s, err := New("memory", result, DefaultPaletteOptions())
	require.NoError(t, err)
	return s
}

func TestSessionIndexAndSnapshots(t *testing.T) {
	s := newSession(t, sample)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.Index().Len())
	assert.Equal(t, []string{"ALP", "BDR", "ETG"}, s.Tags())
	assert.Equal(t, []string{"Alpha1", "BDR-1", "ETG-9"}, s.Entities())

	first := s.SnapshotAt(0)
	assert.Equal(t, 2, first.Len())
	alpha, ok := first.Get("Alpha1")
	require.True(t, ok)
	assert.Equal(t, 174.76, alpha.Longitude)
	assert.Equal(t, -41.29, alpha.Latitude)
	assert.Equal(t, "ALP", alpha.Tag)

	last := s.SnapshotAt(s.Index().LastIndex())
	assert.Equal(t, 3, last.Len())
	alpha, _ = last.Get("Alpha1")
	assert.Equal(t, 174.80, alpha.Longitude)

	assert.Equal(t, last, s.SnapshotAt(100), "cursor is clamped")
}

func TestSessionColors(t *testing.T) {
	s := newSession(t, sample)
	assert.Equal(t, "#ff0000", s.Color("BDR"))
	assert.Equal(t, "#0000ff", s.Color("ETG"))
	assert.Equal(t, classifier.HashColor(classifier.DefaultSeed, "ALP"), s.Color("ALP"))
}

func TestSessionWithPaletteLeavesOriginal(t *testing.T) {
	s := newSession(t, sample)
	repainted, err := s.WithPalette(PaletteOptions{
		Rules: []classifier.ColorRule{{Prefix: "ALP", Color: "green"}},
		Seed:  "other",
	})
	require.NoError(t, err)

	assert.Equal(t, "#008000", repainted.Color("ALP"))
	assert.NotEqual(t, "#008000", s.Color("ALP"))
	assert.Equal(t, s.Index(), repainted.Index())

	_, err = s.WithPalette(PaletteOptions{Rules: []classifier.ColorRule{{Prefix: "X", Color: "??"}}})
	assert.Error(t, err)
}

func TestEmptySession(t *testing.T) {
	s, err := New("empty", nil, DefaultPaletteOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Index().Len())
	snap := s.SnapshotAt(0)
	assert.Equal(t, 0, snap.Len())
	assert.NotNil(t, snap.Positions)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newSession(t, sample)
	b := newSession(t, "--- Snapshot at 2024-01-01 00:00:00 UTC ---\n[2024-01-01 00:00:01] Zed: 1,2\n")

	assert.Equal(t, 3, a.Index().Len())
	assert.Equal(t, 1, b.Index().Len())

	obs := a.Observations()
	obs[0].EntityID = "mutated"
	assert.Equal(t, []string{"Alpha1", "BDR-1", "ETG-9"}, a.Entities())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.log")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	s, err := Load(path, parser.NewParser(), DefaultPaletteOptions())
	require.NoError(t, err)
	assert.Equal(t, path, s.Source())
	assert.Equal(t, 4, s.Stats().Entries)

	_, err = Load(filepath.Join(t.TempDir(), "missing.log"), parser.NewParser(), DefaultPaletteOptions())
	assert.Error(t, err)
}

func TestSnapshotsAreMemoized(t *testing.T) {
	s := newSession(t, sample)

	first := s.SnapshotAt(1)
	again := s.SnapshotAt(1)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, s.CacheStats().Hits)
	assert.Equal(t, 1, s.CacheStats().Misses)

	s.SnapshotAt(50)
	s.SnapshotAt(2)
	assert.Equal(t, 2, s.CacheStats().Entries, "clamped cursors share an entry")

	repainted, err := s.WithPalette(DefaultPaletteOptions())
	require.NoError(t, err)
	repainted.SnapshotAt(1)
	assert.Equal(t, 3, s.CacheStats().Hits, "palette changes keep reconstructed snapshots")
}
