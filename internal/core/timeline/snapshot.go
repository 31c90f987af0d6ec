package timeline

import (
	"sort"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/model"
)

// Snapshot is the last known position of every entity as of Time
type Snapshot struct {
	Time      time.Time
	Positions map[string]model.Observation
}

// Reconstruct returns, per entity, the observation with the greatest time
// <= at. obs must be sorted by time with ties in input order; the last of
// equal-time observations for an entity wins.
func Reconstruct(obs []model.Observation, at time.Time) Snapshot {
	end := sort.Search(len(obs), func(i int) bool { return obs[i].Time.After(at) })

	positions := make(map[string]model.Observation)
	for _, o := range obs[:end] {
		positions[o.EntityID] = o
	}
	return Snapshot{Time: at, Positions: positions}
}

// Len returns the number of visible entities
func (s Snapshot) Len() int {
	return len(s.Positions)
}

// Get returns the observation for one entity
func (s Snapshot) Get(entityID string) (model.Observation, bool) {
	o, ok := s.Positions[entityID]
	return o, ok
}

// Sorted returns the visible observations ordered by entity id
func (s Snapshot) Sorted() []model.Observation {
	out := make([]model.Observation, 0, len(s.Positions))
	for _, o := range s.Positions {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}

// Tags returns the distinct tags of visible entities, sorted
func (s Snapshot) Tags() []string {
	seen := make(map[string]struct{})
	for _, o := range s.Positions {
		seen[o.Tag] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Center returns the arithmetic mean of visible coordinates; ok is false
// when nothing is visible.
func (s Snapshot) Center() (model.LatLon, bool) {
	if len(s.Positions) == 0 {
		return model.LatLon{}, false
	}
	var lat, lon float64
	for _, o := range s.Positions {
		lat += o.Latitude
		lon += o.Longitude
	}
	n := float64(len(s.Positions))
	return model.LatLon{Lat: lat / n, Lon: lon / n}, true
}
