package formatter

import (
	"encoding/csv"
	"io"

	"github.com/penwyp/go-atak-replay/internal/util"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, data ExportData) error {
	cw := csv.NewWriter(w)

	headers := []string{"Entity", "Tag", "Color", "Latitude", "Longitude", "Last Seen"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, row := range data.Rows {
		record := []string{
			row.EntityID,
			row.Tag,
			row.Color,
			util.FormatCoordinate(row.Latitude),
			util.FormatCoordinate(row.Longitude),
			data.format(row.LastSeen),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
