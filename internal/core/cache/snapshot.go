// Package cache memoizes reconstructed snapshots by timeline position.
package cache

import (
	"sync"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/timeline"
)

// DefaultCapacity bounds how many snapshots a cache keeps
const DefaultCapacity = 256

type entry struct {
	snapshot     timeline.Snapshot
	lastAccessed int64
}

// Stats counts cache lookups
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// SnapshotCache keeps recently used snapshots keyed by cursor. Cached
// snapshots are shared between callers and must be treated as read-only.
type SnapshotCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]*entry
	hits     int
	misses   int
	now      func() int64
}

// NewSnapshotCache creates a cache holding at most capacity snapshots; a
// non-positive capacity uses DefaultCapacity.
func NewSnapshotCache(capacity int) *SnapshotCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SnapshotCache{
		capacity: capacity,
		entries:  make(map[int]*entry),
		now:      func() int64 { return time.Now().UnixNano() },
	}
}

// Get returns the snapshot for cursor if cached
func (c *SnapshotCache) Get(cursor int) (timeline.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cursor]
	if !ok {
		c.misses++
		return timeline.Snapshot{}, false
	}
	c.hits++
	e.lastAccessed = c.now()
	return e.snapshot, true
}

// Set stores a snapshot, evicting the least recently used entry when full
func (c *SnapshotCache) Set(cursor int, snap timeline.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[cursor]; ok {
		e.snapshot = snap
		e.lastAccessed = c.now()
		return
	}
	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	c.entries[cursor] = &entry{snapshot: snap, lastAccessed: c.now()}
}

// GetOrCompute returns the cached snapshot or builds and stores it. build
// runs without the lock held.
func (c *SnapshotCache) GetOrCompute(cursor int, build func() timeline.Snapshot) timeline.Snapshot {
	if snap, ok := c.Get(cursor); ok {
		return snap
	}
	snap := build()
	c.Set(cursor, snap)
	return snap
}

func (c *SnapshotCache) evictOldest() {
	oldestKey, oldest := 0, int64(-1)
	for k, e := range c.entries {
		if oldest < 0 || e.lastAccessed < oldest {
			oldestKey, oldest = k, e.lastAccessed
		}
	}
	if oldest >= 0 {
		delete(c.entries, oldestKey)
	}
}

// Stats returns hit and miss counts
func (c *SnapshotCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
