package cache

import (
	"testing"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(sec int) timeline.Snapshot {
	return timeline.Snapshot{
		Time:      time.Date(2024, 1, 1, 12, 0, sec, 0, time.UTC),
		Positions: map[string]model.Observation{},
	}
}

// fakeClock makes access order deterministic
func fakeClock(c *SnapshotCache) {
	var tick int64
	c.now = func() int64 {
		tick++
		return tick
	}
}

func TestSnapshotCacheGetSet(t *testing.T) {
	c := NewSnapshotCache(4)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Set(1, snap(1))
	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, snap(1).Time, got.Time)

	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())
}

func TestSnapshotCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSnapshotCache(2)
	fakeClock(c)

	c.Set(1, snap(1))
	c.Set(2, snap(2))
	c.Get(1)
	c.Set(3, snap(3))

	_, ok := c.Get(2)
	assert.False(t, ok, "2 was least recently used")
	_, ok = c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
}

func TestSnapshotCacheGetOrCompute(t *testing.T) {
	c := NewSnapshotCache(0)
	builds := 0
	build := func() timeline.Snapshot {
		builds++
		return snap(7)
	}

	first := c.GetOrCompute(7, build)
	second := c.GetOrCompute(7, build)
	assert.Equal(t, 1, builds)
	assert.Equal(t, first.Time, second.Time)

	c.GetOrCompute(8, build)
	assert.Equal(t, 2, builds)
	assert.Equal(t, Stats{Hits: 1, Misses: 2, Entries: 2}, c.Stats())
}
