package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseScenarioSingleEntry(t *testing.T) {
	input := `--- Snapshot at 2024-01-01 12:00:00 UTC ---
[2024-01-01 12:00:05] Alpha1: 174.76,-41.29`

	result, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Observations, 1)

	obs := result.Observations[0]
	assert.Equal(t, "Alpha1", obs.EntityID)
	assert.Equal(t, 174.76, obs.Longitude)
	assert.Equal(t, -41.29, obs.Latitude)
	assert.Equal(t, "ALP", obs.Tag)
	assert.Equal(t, utc("2024-01-01 12:00:05"), obs.Time)
	assert.Equal(t, utc("2024-01-01 12:00:00"), obs.SnapshotTime)
	assert.Equal(t, 2, obs.Line)

	assert.Equal(t, Stats{Lines: 2, Headers: 1, Entries: 1}, result.Stats)
}

func TestParseDropsEntriesBeforeFirstHeader(t *testing.T) {
	input := `[2024-01-01 11:59:00] Early: 1,2
--- Snapshot at 2024-01-01 12:00:00 UTC ---
[2024-01-01 12:00:01] Late: 3,4`

	result, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Observations, 1)
	assert.Equal(t, "Late", result.Observations[0].EntityID)
	assert.Equal(t, 1, result.Stats.Orphaned)
}

func TestParseAttributesEntriesToLatestHeader(t *testing.T) {
	input := `--- Snapshot at 2024-01-01 12:00:00 UTC ---
[2024-01-01 12:00:01] A: 1,2
--- Snapshot at 2024-01-01 12:01:00 UTC ---
[2024-01-01 12:01:02] B: 3,4`

	result, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Observations, 2)
	assert.Equal(t, utc("2024-01-01 12:00:00"), result.Observations[0].SnapshotTime)
	assert.Equal(t, utc("2024-01-01 12:01:00"), result.Observations[1].SnapshotTime)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := `--- Snapshot at 2024-01-01 12:00:00 UTC ---
[2024-01-01 12:00:01] NoColon 1,2
[2024-01-01 12:00:02] OneCoord: 5
[2024-01-01 12:00:03] Words: east,north
[not a time] Bad: 1,2
[2024-01-01 12:00:04 Unterminated: 1,2
[2024-01-01 12:00:05] : 1,2
[2024-01-01 12:00:06] Inf: Inf,2
random noise

[2024-01-01 12:00:07] Good: 10.5,-20.25,extra,fields`

	result, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Observations, 1)

	good := result.Observations[0]
	assert.Equal(t, "Good", good.EntityID)
	assert.Equal(t, 10.5, good.Longitude)
	assert.Equal(t, -20.25, good.Latitude)

	assert.Equal(t, 11, result.Stats.Lines)
	assert.Equal(t, 1, result.Stats.Entries)
	assert.Equal(t, 9, result.Stats.Skipped)
}

func TestParseMalformedHeaderKeepsPreviousContext(t *testing.T) {
	input := `--- Snapshot at 2024-01-01 12:00:00 UTC ---
--- Snapshot at yesterday UTC ---
[2024-01-01 12:00:09] A: 1,2`

	result, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Observations, 1)
	assert.Equal(t, utc("2024-01-01 12:00:00"), result.Observations[0].SnapshotTime)
	assert.Equal(t, 1, result.Stats.Skipped)
}

func TestParseSplitsOnFirstColonOnly(t *testing.T) {
	obs, err := ParseEntry("[2024-01-01 12:00:00] unit-7: 1.5,2.5,note:with:colons")
	require.NoError(t, err)
	assert.Equal(t, "unit-7", obs.EntityID)
	assert.Equal(t, 1.5, obs.Longitude)
	assert.Equal(t, 2.5, obs.Latitude)
	assert.Equal(t, "UNI", obs.Tag)
}

func TestParseSortsStableByTime(t *testing.T) {
	input := `--- Snapshot at 2024-01-01 12:00:00 UTC ---
[2024-01-01 12:00:09] Late: 1,1
[2024-01-01 12:00:01] First: 2,2
[2024-01-01 12:00:01] Second: 3,3`

	result, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Observations, 3)
	assert.Equal(t, "First", result.Observations[0].EntityID)
	assert.Equal(t, "Second", result.Observations[1].EntityID)
	assert.Equal(t, "Late", result.Observations[2].EntityID)
}

func TestParseHeader(t *testing.T) {
	ts, err := ParseHeader("--- Snapshot at 2024-03-04 05:06:07 UTC ---")
	require.NoError(t, err)
	assert.Equal(t, utc("2024-03-04 05:06:07"), ts)

	_, err = ParseHeader("--- Snapshot ---")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.log")
	content := "--- Snapshot at 2024-01-01 12:00:00 UTC ---\n[2024-01-01 12:00:05] Alpha1: 174.76,-41.29\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, result.Observations, 1)
}

func TestParseFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	result, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, result.Observations)
	assert.Equal(t, 0, result.Stats.Lines)
}

func TestParseFileNonExistent(t *testing.T) {
	result, err := NewParser().ParseFile("/path/that/does/not/exist.log")
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, result)
}
