package fixtures

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Track is one entity moving in a straight line
type Track struct {
	EntityID string
	Lat, Lon float64
	// Per-step movement in degrees
	DLat, DLon float64
}

// LogGenerator writes synthetic snapshot logs in the ATAK logger format
type LogGenerator struct {
	Start time.Time
	// Snapshots is how many "--- Snapshot at" blocks to write
	Snapshots int
	// Every is the gap between snapshot headers
	Every time.Duration
	// Offset is how long after its header each entry is stamped
	Offset time.Duration
	Tracks []Track
}

// NewLogGenerator returns a generator with a small default scenario around
// Wellington: one ETG and one BDR unit plus an untagged callsign.
func NewLogGenerator(start time.Time) *LogGenerator {
	return &LogGenerator{
		Start:     start,
		Snapshots: 3,
		Every:     time.Minute,
		Offset:    5 * time.Second,
		Tracks: []Track{
			{EntityID: "ETG-1", Lat: -41.289, Lon: 174.762, DLat: 0.001},
			{EntityID: "BDR-7", Lat: -41.300, Lon: 174.700, DLon: 0.002},
			{EntityID: "Alpha1", Lat: -41.280, Lon: 174.780, DLat: -0.001, DLon: -0.001},
		},
	}
}

// EntryCount is the number of entry lines Write produces
func (g *LogGenerator) EntryCount() int {
	return g.Snapshots * len(g.Tracks)
}

// Write writes the log. Entries within a snapshot share one timestamp.
func (g *LogGenerator) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < g.Snapshots; i++ {
		header := g.Start.Add(time.Duration(i) * g.Every).UTC()
		stamp := header.Add(g.Offset)
		fmt.Fprintf(bw, "--- Snapshot at %s UTC ---\n", header.Format("2006-01-02 15:04:05"))
		for _, tr := range g.Tracks {
			lon := tr.Lon + float64(i)*tr.DLon
			lat := tr.Lat + float64(i)*tr.DLat
			fmt.Fprintf(bw, "[%s] %s: %.6f,%.6f\n", stamp.Format("2006-01-02 15:04:05"), tr.EntityID, lon, lat)
		}
	}
	return bw.Flush()
}

// WriteFile writes the log to dir/name and returns its path
func (g *LogGenerator) WriteFile(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
