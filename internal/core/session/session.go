// Package session holds the immutable replay context built once from a
// parsed log: observations, the temporal index and the tag palette.
package session

import (
	"fmt"
	"sort"

	"github.com/penwyp/go-atak-replay/internal/core/cache"
	"github.com/penwyp/go-atak-replay/internal/core/classifier"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
	"github.com/penwyp/go-atak-replay/internal/data/parser"
)

// PaletteOptions configures tag coloring
type PaletteOptions struct {
	Rules []classifier.ColorRule
	Seed  string
}

// DefaultPaletteOptions uses the built-in friendly/hostile rules
func DefaultPaletteOptions() PaletteOptions {
	return PaletteOptions{Rules: classifier.DefaultRules(), Seed: classifier.DefaultSeed}
}

// Session is read-only after construction and safe to share between
// goroutines. Reconstructed snapshots are memoized per cursor, and sessions
// derived with WithPalette share that cache.
type Session struct {
	source       string
	observations []model.Observation
	index        *timeline.Index
	palette      *classifier.Palette
	stats        parser.Stats
	snapshots    *cache.SnapshotCache
}

// New builds a session from a parse result. Observations must already be
// sorted by time, as returned by the parser.
func New(source string, result *parser.Result, opts PaletteOptions) (*Session, error) {
	if result == nil {
		result = &parser.Result{}
	}
	obs := make([]model.Observation, len(result.Observations))
	copy(obs, result.Observations)

	s := &Session{
		source:       source,
		observations: obs,
		index:        timeline.NewIndex(obs),
		stats:        result.Stats,
		snapshots:    cache.NewSnapshotCache(cache.DefaultCapacity),
	}
	palette, err := classifier.NewPalette(opts.Rules, opts.Seed, s.Tags())
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	s.palette = palette
	return s, nil
}

// Load parses the file at path and builds a session from it
func Load(path string, p *parser.Parser, opts PaletteOptions) (*Session, error) {
	result, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, result, opts)
}

// WithPalette returns a new session sharing this session's observations but
// colored with different options. The receiver is unchanged.
func (s *Session) WithPalette(opts PaletteOptions) (*Session, error) {
	palette, err := classifier.NewPalette(opts.Rules, opts.Seed, s.Tags())
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	return &Session{
		source:       s.source,
		observations: s.observations,
		index:        s.index,
		palette:      palette,
		stats:        s.stats,
		snapshots:    s.snapshots,
	}, nil
}

// Source returns the path the session was loaded from
func (s *Session) Source() string {
	return s.source
}

// Stats returns the parse statistics
func (s *Session) Stats() parser.Stats {
	return s.stats
}

// Index returns the temporal index
func (s *Session) Index() *timeline.Index {
	return s.index
}

// Len returns the number of observations
func (s *Session) Len() int {
	return len(s.observations)
}

// Observations returns a copy of all observations in time order
func (s *Session) Observations() []model.Observation {
	out := make([]model.Observation, len(s.observations))
	copy(out, s.observations)
	return out
}

// SnapshotAt reconstructs the display for a cursor position. The cursor is
// clamped; an empty session yields an empty snapshot. The returned snapshot
// may be shared with other callers and must not be modified.
func (s *Session) SnapshotAt(cursor int) timeline.Snapshot {
	if s.index.Empty() {
		return timeline.Snapshot{Positions: map[string]model.Observation{}}
	}
	cursor = s.index.Clamp(cursor)
	return s.snapshots.GetOrCompute(cursor, func() timeline.Snapshot {
		return timeline.Reconstruct(s.observations, s.index.At(cursor))
	})
}

// CacheStats reports snapshot memoization counters
func (s *Session) CacheStats() cache.Stats {
	return s.snapshots.Stats()
}

// Color returns the display color of a tag
func (s *Session) Color(tag string) string {
	return s.palette.Color(tag)
}

// Palette returns the session palette
func (s *Session) Palette() *classifier.Palette {
	return s.palette
}

// Tags returns every distinct tag in the log, sorted
func (s *Session) Tags() []string {
	seen := make(map[string]struct{})
	for _, o := range s.observations {
		seen[o.Tag] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Entities returns every distinct entity id in the log, sorted
func (s *Session) Entities() []string {
	seen := make(map[string]struct{})
	for _, o := range s.observations {
		seen[o.EntityID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
