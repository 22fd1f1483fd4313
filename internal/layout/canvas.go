// Package layout positions text on fixed-size pages. It owns the vertical
// cursor, the page-break policy and word wrapping; drawing itself goes through
// a Canvas so the same layout can be driven against a PDF writer or a test
// recorder.
package layout

// Font styles, combinable as in "BI".
const (
	Regular    = ""
	Bold       = "B"
	Italic     = "I"
	BoldItalic = "BI"
)

type Font struct {
	Style string
	Size  float64 // points
}

// Measurer reports the rendered width of s in page units for font f.
type Measurer interface {
	MeasureString(f Font, s string) float64
}

// Canvas is the drawing surface used by the renderer. Coordinates are in
// millimetres from the top-left corner; Text places s with its baseline at y.
type Canvas interface {
	Measurer
	PageSize() (w, h float64)
	AddPage()
	SetFont(f Font)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
}
