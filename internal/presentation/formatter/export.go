package formatter

import (
	"github.com/penwyp/go-atak-replay/internal/core/session"
)

// NewExportData reconstructs the snapshot at a timeline cursor. The cursor
// is clamped into range; an empty session exports no rows.
func NewExportData(sess *session.Session, cursor int) ExportData {
	ix := sess.Index()
	data := ExportData{
		Source: sess.Source(),
		Total:  ix.Len(),
		Stats:  sess.Stats(),

		LogEntities: len(sess.Entities()),
		Span:        ix.Span(),
		Seed:        sess.Palette().Seed(),
	}
	if ix.Empty() {
		return data
	}

	data.Index = ix.Clamp(cursor)
	data.Time = ix.At(data.Index)

	snap := sess.SnapshotAt(data.Index)
	if center, ok := snap.Center(); ok {
		data.Center = &center
	}
	for _, o := range snap.Sorted() {
		data.Rows = append(data.Rows, ExportRow{
			EntityID:  o.EntityID,
			Tag:       o.Tag,
			Color:     sess.Color(o.Tag),
			Latitude:  o.Latitude,
			Longitude: o.Longitude,
			LastSeen:  o.Time,
		})
	}
	return data
}
