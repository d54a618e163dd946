// Package layout paginates study sheets: it wraps text by measured glyph
// width, breaks pages, draws headers and footers, and places vocabulary
// annotations next to the sentences they come from.
package layout

// Color is an RGB triple in the 0..255 range.
type Color struct {
	R, G, B int
}

var (
	Black    = Color{0, 0, 0}
	Muted    = Color{100, 100, 100}
	Lavender = Color{196, 179, 255}
)

// Face selects a registered font family, style ("" or "B") and size in points.
type Face struct {
	Family string
	Style  string
	Size   float64
}

// Measurer reports the rendered width of a string in document units.
type Measurer interface {
	StringWidth(face Face, s string) float64
}

// Canvas receives drawing instructions. Pages are numbered from 1 and
// drawing goes to the current page.
type Canvas interface {
	Measurer

	AddPage()
	SetPage(n int)
	Page() int
	PageCount() int

	Text(x, y float64, face Face, color Color, s string)
	Line(x1, y1, x2, y2, width float64, color Color)
	Image(name string, x, y, w, h float64)
}
