package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/data/parser"
	"github.com/penwyp/go-atak-replay/internal/util"
)

// ExportRow is one entity in an exported snapshot
type ExportRow struct {
	EntityID  string    `json:"entity_id"`
	Tag       string    `json:"tag"`
	Color     string    `json:"color"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	LastSeen  time.Time `json:"last_seen"`
}

// ExportData is a reconstructed snapshot ready for output
type ExportData struct {
	Source string        `json:"source"`
	Time   time.Time     `json:"time"`
	Index  int           `json:"index"`
	Total  int           `json:"total"`
	Center *model.LatLon `json:"center,omitempty"`
	Stats  parser.Stats  `json:"stats"`
	Rows   []ExportRow   `json:"entities"`

	// Log-wide context
	LogEntities int           `json:"log_entities"`
	Span        time.Duration `json:"span_ns"`
	Seed        string        `json:"palette_seed"`

	Clock *util.TimeProvider `json:"-"`
}

// Empty reports whether the log had no observations at all
func (d ExportData) Empty() bool {
	return d.Total == 0
}

func (d ExportData) format(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	clock := d.Clock
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return clock.Format(t, util.LogTimeLayout)
}

// Formatter writes an exported snapshot
type Formatter interface {
	Format(w io.Writer, data ExportData) error
}

// Output format names
const (
	OutputTable   = "table"
	OutputJSON    = "json"
	OutputCSV     = "csv"
	OutputSummary = "summary"
)

// NewFormatter returns the formatter for an output name
func NewFormatter(output string) (Formatter, error) {
	switch output {
	case OutputTable, "":
		return NewTableFormatter(), nil
	case OutputJSON:
		return NewJSONFormatter(), nil
	case OutputCSV:
		return NewCSVFormatter(), nil
	case OutputSummary:
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", output)
	}
}
