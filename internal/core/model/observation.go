package model

import "time"

// Observation is one position report parsed from a snapshot log entry.
// Values are immutable once parsed; Time is the ordering key.
type Observation struct {
	Time         time.Time `json:"time"`
	EntityID     string    `json:"entity_id"`
	Longitude    float64   `json:"lon"`
	Latitude     float64   `json:"lat"`
	Tag          string    `json:"tag"`
	SnapshotTime time.Time `json:"snapshot_time"`
	Line         int       `json:"line,omitempty"`
}

// Position returns the observation coordinates
func (o Observation) Position() LatLon {
	return LatLon{Lat: o.Latitude, Lon: o.Longitude}
}

// LatLon is a geographic coordinate in degrees
type LatLon struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// DefaultCenter is used when no entity is visible and no center is set
var DefaultCenter = LatLon{Lat: -41.289, Lon: 174.762}

// DefaultZoom is the initial map zoom level
const DefaultZoom = 12.0

// Zoom bounds accepted by the viewport
const (
	MinZoom = 1.0
	MaxZoom = 20.0
)
