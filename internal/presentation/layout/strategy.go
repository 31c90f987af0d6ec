package layout

import "io"

// LayoutStrategy defines the interface for different screen layouts
type LayoutStrategy interface {
	Render(w io.Writer, f Frame, size Size) error
	GetName() string
}

// Layout style names accepted by GetLayoutStrategy
const (
	StyleFull    = "full"
	StyleMinimal = "minimal"
)

// GetLayoutStrategy returns the appropriate layout strategy by name.
// Unknown names select the full layout.
func GetLayoutStrategy(style string) LayoutStrategy {
	switch style {
	case StyleMinimal:
		return NewMinimalLayoutStrategy()
	default:
		return NewFullLayoutStrategy()
	}
}
