package util

import (
	"fmt"
	"strconv"
	"time"
)

// FormatCoordinate renders a degree value with fixed precision
func FormatCoordinate(deg float64) string {
	return strconv.FormatFloat(deg, 'f', 5, 64)
}

// FormatLatLon renders a latitude/longitude pair
func FormatLatLon(lat, lon float64) string {
	return fmt.Sprintf("%s, %s", FormatCoordinate(lat), FormatCoordinate(lon))
}

// FormatZoom renders a zoom level, dropping a trailing .0
func FormatZoom(zoom float64) string {
	return strconv.FormatFloat(zoom, 'f', -1, 64)
}

func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// FormatProgress renders "i/n" for a 0-based cursor
func FormatProgress(index, total int) string {
	if total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", index+1, total)
}
