package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-atak-replay/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Entity", "Tag", "Color", "Latitude", "Longitude", "Last Seen"},
	}
}

func (f *TableFormatter) Format(w io.Writer, data ExportData) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Snapshot at %s (%s)\n", data.format(data.Time), util.FormatProgress(data.Index, data.Total))
	if len(data.Rows) == 0 {
		fmt.Fprintln(bw, "no observations")
		return bw.Flush()
	}

	rows := make([][]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		rows = append(rows, []string{
			row.EntityID,
			row.Tag,
			row.Color,
			util.FormatCoordinate(row.Latitude),
			util.FormatCoordinate(row.Longitude),
			data.format(row.LastSeen),
		})
	}

	widths := f.calculateColumnWidths(rows)

	f.printBorder(bw, widths, "top")
	f.printRow(bw, f.headers, widths)
	f.printBorder(bw, widths, "middle")
	for _, row := range rows {
		f.printRow(bw, row, widths)
	}
	f.printBorder(bw, widths, "bottom")
	fmt.Fprintf(bw, "%d entities\n", len(rows))

	return bw.Flush()
}

// calculateColumnWidths sizes each column to its widest cell
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(w io.Writer, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Fprint(w, left)
	for i, width := range widths {
		fmt.Fprint(w, strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Fprint(w, middle)
		}
	}
	fmt.Fprintln(w, right)
}

// printRow prints a row; coordinate columns are right-aligned
func (f *TableFormatter) printRow(w io.Writer, values []string, widths []int) {
	fmt.Fprint(w, "│")
	for i, value := range values {
		if i == 3 || i == 4 {
			fmt.Fprintf(w, " %s │", runewidth.FillLeft(value, widths[i]))
		} else {
			fmt.Fprintf(w, " %s │", runewidth.FillRight(value, widths[i]))
		}
	}
	fmt.Fprintln(w)
}
