package formatter

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/penwyp/go-atak-replay/internal/util"
)

// SummaryFormatter writes a human-readable report of a snapshot and the
// parse that produced it.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format writes the report.
func (f *SummaryFormatter) Format(w io.Writer, data ExportData) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, strings.Repeat("=", 60))
	fmt.Fprintln(bw, "ATAK Replay Snapshot Summary")
	fmt.Fprintln(bw, strings.Repeat("=", 60))
	fmt.Fprintln(bw)

	if data.Source != "" {
		fmt.Fprintf(bw, "Source:        %s\n", data.Source)
	}
	fmt.Fprintf(bw, "Snapshot:      %s\n", data.format(data.Time))
	fmt.Fprintf(bw, "Position:      %s\n", util.FormatProgress(data.Index, data.Total))
	if data.Center != nil {
		fmt.Fprintf(bw, "Center:        %s\n", util.FormatLatLon(data.Center.Lat, data.Center.Lon))
	}
	fmt.Fprintf(bw, "Entities:      %d of %d\n", len(data.Rows), data.LogEntities)
	fmt.Fprintf(bw, "Log Span:      %s\n", util.FormatDuration(data.Span))
	if data.Seed != "" {
		fmt.Fprintf(bw, "Palette Seed:  %s\n", data.Seed)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Parse Statistics:")
	fmt.Fprintln(bw, strings.Repeat("-", 40))
	fmt.Fprintf(bw, "  Lines:       %d\n", data.Stats.Lines)
	fmt.Fprintf(bw, "  Headers:     %d\n", data.Stats.Headers)
	fmt.Fprintf(bw, "  Entries:     %d\n", data.Stats.Entries)
	fmt.Fprintf(bw, "  Orphaned:    %d\n", data.Stats.Orphaned)
	fmt.Fprintf(bw, "  Skipped:     %d\n", data.Stats.Skipped)
	fmt.Fprintln(bw)

	if len(data.Rows) > 0 {
		counts := make(map[string]int)
		colors := make(map[string]string)
		for _, row := range data.Rows {
			counts[row.Tag]++
			colors[row.Tag] = row.Color
		}
		tags := make([]string, 0, len(counts))
		for tag := range counts {
			tags = append(tags, tag)
		}
		sort.Strings(tags)

		fmt.Fprintln(bw, "Tags:")
		fmt.Fprintln(bw, strings.Repeat("-", 40))
		for _, tag := range tags {
			fmt.Fprintf(bw, "  %-5s %s  %d\n", tag, colors[tag], counts[tag])
		}
	} else {
		fmt.Fprintln(bw, "no observations")
	}

	fmt.Fprintln(bw, strings.Repeat("=", 60))
	return bw.Flush()
}
