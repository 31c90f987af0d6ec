package playback

import (
	"math"

	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
)

const (
	// tilesAcross approximates how many 256px map tiles fit the view width
	tilesAcross = 4.0
	// PanFraction is the share of the visible width moved per pan step
	PanFraction = 0.25
)

// Viewport is the persisted map center and zoom. A nil Center means
// auto-center on the visible entities, or on Fallback when none are visible.
type Viewport struct {
	Center   *model.LatLon
	Zoom     float64
	Fallback model.LatLon
}

// NewViewport returns an auto-centered viewport at the given zoom
func NewViewport(zoom float64, fallback model.LatLon) Viewport {
	if zoom == 0 {
		zoom = model.DefaultZoom
	}
	return Viewport{Zoom: clampZoom(zoom), Fallback: fallback}
}

// Interact applies a user map interaction. Nil fields keep their prior
// value.
func (v Viewport) Interact(center *model.LatLon, zoom *float64) Viewport {
	if center != nil {
		c := *center
		v.Center = &c
	}
	if zoom != nil {
		v.Zoom = clampZoom(*zoom)
	}
	return v
}

// Resolve returns the center to draw: the stored center, else the mean of
// the visible entities, else the fallback.
func (v Viewport) Resolve(snap timeline.Snapshot) model.LatLon {
	if v.Center != nil {
		return *v.Center
	}
	if c, ok := snap.Center(); ok {
		return c
	}
	return v.Fallback
}

// Pan moves the center by whole steps east and north from the current
// effective center, which pins an auto-centered viewport.
func (v Viewport) Pan(east, north int, from model.LatLon) Viewport {
	step := LonSpan(v.Zoom) * PanFraction
	c := model.LatLon{
		Lat: clampLat(from.Lat + float64(north)*step),
		Lon: wrapLon(from.Lon + float64(east)*step),
	}
	v.Center = &c
	return v
}

// ZoomBy changes zoom by delta levels within [MinZoom, MaxZoom]
func (v Viewport) ZoomBy(delta float64) Viewport {
	v.Zoom = clampZoom(v.Zoom + delta)
	return v
}

// Recenter returns to auto-centering
func (v Viewport) Recenter() Viewport {
	v.Center = nil
	return v
}

// LonSpan is the longitude range in degrees visible at a zoom level
func LonSpan(zoom float64) float64 {
	return 360.0 / math.Pow(2, zoom) * tilesAcross
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return model.DefaultZoom
	}
	return math.Max(model.MinZoom, math.Min(model.MaxZoom, z))
}

func clampLat(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// wrapLon maps lon into [-180, 180]
func wrapLon(lon float64) float64 {
	return math.Remainder(lon, 360)
}
