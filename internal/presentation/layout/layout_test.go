package layout

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/core/timeline"
	"github.com/penwyp/go-atak-replay/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func observation(min int, id string, lon, lat float64) model.Observation {
	return model.Observation{
		Time:      start.Add(time.Duration(min) * time.Minute),
		EntityID:  id,
		Longitude: lon,
		Latitude:  lat,
		Tag:       strings.ToUpper(id[:3]),
	}
}

// zoom 10 spans 1.40625 degrees, so 40 columns are 0.03515625 degrees each
const (
	testZoom   = 10.0
	degPerCol  = 0.03515625
	testWidth  = 40
	testHeight = 10
)

func TestGetLayoutStrategy(t *testing.T) {
	assert.Equal(t, StyleFull, GetLayoutStrategy("full").GetName())
	assert.Equal(t, StyleMinimal, GetLayoutStrategy("minimal").GetName())
	assert.Equal(t, StyleFull, GetLayoutStrategy("unknown").GetName())
}

func TestMapViewProject(t *testing.T) {
	view := MapView{Width: testWidth, Height: testHeight, Zoom: testZoom}

	col, row, ok := view.Project(model.LatLon{})
	require.True(t, ok)
	assert.Equal(t, 20, col)
	assert.Equal(t, 5, row)

	col, row, ok = view.Project(model.LatLon{Lon: 5 * degPerCol, Lat: 2 * degPerCol * cellAspect})
	require.True(t, ok)
	assert.Equal(t, 25, col)
	assert.Equal(t, 3, row, "north is up")

	_, _, ok = view.Project(model.LatLon{Lon: 50})
	assert.False(t, ok)

	_, _, ok = MapView{}.Project(model.LatLon{})
	assert.False(t, ok)

	for _, far := range []model.LatLon{{Lon: 1e300}, {Lon: -1e20}, {Lat: 1e300}, {Lon: math.NaN()}} {
		col, row, ok = view.Project(far)
		assert.False(t, ok, "%v", far)
		assert.Zero(t, col)
		assert.Zero(t, row)
	}
	_, _, ok = MapView{Width: testWidth, Height: testHeight, Zoom: testZoom, Center: model.LatLon{Lon: 1e20}}.Project(model.LatLon{})
	assert.False(t, ok)
}

func TestMapViewRender(t *testing.T) {
	snap := timeline.Reconstruct([]model.Observation{
		observation(0, "ETG1", 5*degPerCol, 0),
		observation(0, "BDR9", 50, 0),
	}, start)

	view := MapView{Width: testWidth, Height: testHeight, Zoom: testZoom}
	rows, offMap := view.Render(snap, func(tag string) string {
		if tag == "ETG" {
			return "#0000ff"
		}
		return "#ff0000"
	})

	require.Len(t, rows, testHeight)
	assert.Equal(t, 1, offMap)
	assert.Contains(t, rows[5], string(markerRune))
	assert.Contains(t, rows[5], "ETG1")
	assert.Contains(t, rows[5], util.TrueColor("#0000ff"))
	assert.NotContains(t, strings.Join(rows, "\n"), "BDR9")
}

func TestScrubberRender(t *testing.T) {
	ix := timeline.NewIndex([]model.Observation{
		observation(0, "ETG1", 0, 0),
		observation(1, "ETG1", 0, 0),
		observation(2, "ETG1", 0, 0),
	})
	clock, err := util.NewTimeProvider("UTC")
	require.NoError(t, err)

	s := Scrubber{Width: 20, Clock: clock}
	track, labels := s.Render(ix, 2)

	assert.Contains(t, track, "◆")
	assert.True(t, strings.HasPrefix(labels, "12:00"))
	assert.Contains(t, labels, "12:01")
	assert.NotContains(t, labels, "12:02", "label would overflow the track")
	assert.Equal(t, 19, s.position(2, 3))
	assert.Equal(t, 0, s.position(0, 1))
}

func TestScrubberEmpty(t *testing.T) {
	track, labels := Scrubber{Width: 30}.Render(timeline.NewIndex(nil), 0)
	assert.Contains(t, track, "no observations")
	assert.Empty(t, labels)
}

func TestFullLayoutRender(t *testing.T) {
	obs := []model.Observation{
		observation(0, "ETG1", 0.01, 0),
		observation(1, "BDR2", -0.01, 0),
	}
	ix := timeline.NewIndex(obs)
	f := Frame{
		Title:    "ATAK Replay",
		Status:   "Paused",
		Cursor:   1,
		Index:    ix,
		Snapshot: timeline.Reconstruct(obs, ix.At(1)),
		Zoom:     testZoom,
		Color:    func(string) string { return "#00ff00" },
	}

	var buf bytes.Buffer
	require.NoError(t, NewFullLayoutStrategy().Render(&buf, f, Size{Width: 80, Height: 24}))
	out := buf.String()

	assert.Contains(t, out, "ATAK Replay")
	assert.Contains(t, out, "2024-01-01 12:01:00")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "ETG×1")
	assert.Contains(t, out, "BDR×1")
	assert.Contains(t, out, "q quit")
	assert.Equal(t, 23, strings.Count(out, "\n"), "one row per terminal line")
}

func TestFullLayoutEmpty(t *testing.T) {
	f := Frame{Title: "ATAK Replay", Status: "Paused", Index: timeline.NewIndex(nil), Zoom: model.DefaultZoom, Message: "loaded 0 observations"}

	var buf bytes.Buffer
	require.NoError(t, NewFullLayoutStrategy().Render(&buf, f, Size{Width: 60, Height: 20}))
	out := buf.String()

	assert.Contains(t, out, "--:--:--")
	assert.Contains(t, out, "no observations")
	assert.Contains(t, out, "no entities at this time")
	assert.Contains(t, out, "loaded 0 observations")
}

func TestMinimalLayoutRender(t *testing.T) {
	f := Frame{Status: "Playing", Index: timeline.NewIndex(nil)}

	var buf bytes.Buffer
	require.NoError(t, NewMinimalLayoutStrategy().Render(&buf, f, Size{Width: 120, Height: 5}))
	assert.Contains(t, buf.String(), "Playing")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestSizerPadString(t *testing.T) {
	s := GetSizer()
	assert.Equal(t, "ab  ", s.PadString("ab", 4, true))
	assert.Equal(t, "  ab", s.PadString("ab", 4, false))
	assert.Equal(t, "abcdef", s.PadString("abcdef", 4, true))
}
