package layout

import (
	"fmt"
	"strings"
)

// Geometry describes the page in millimetres.
type Geometry struct {
	PageFormat string
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LogoHeight float64
}

const (
	defaultMargin     = 20.0
	defaultLogoHeight = 7.5

	// headerClearance separates the logo row from the first content line.
	headerClearance = 10.0
	// footerClearance keeps content above the page number.
	footerClearance = 20.0
)

var pageSizes = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// A4 returns the default portrait A4 geometry.
func A4() Geometry {
	g, _ := GeometryFor("A4")
	return g
}

// GeometryFor returns the portrait geometry of a named page format.
func GeometryFor(format string) (Geometry, error) {
	key := strings.ToUpper(format)
	size, ok := pageSizes[key]
	if !ok {
		return Geometry{}, fmt.Errorf("unsupported page format: %s", format)
	}
	name := key
	if key == "LETTER" {
		name = "Letter"
	}
	return Geometry{
		PageFormat: name,
		PageWidth:  size[0],
		PageHeight: size[1],
		Margin:     defaultMargin,
		LogoHeight: defaultLogoHeight,
	}, nil
}

// ContentWidth is the width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// ContentTop is where the cursor starts on every page, below the header.
func (g Geometry) ContentTop() float64 {
	return g.Margin + g.LogoHeight + headerClearance
}

// PrintableBottom is the lowest position content may reach before a page
// break is required.
func (g Geometry) PrintableBottom() float64 {
	return g.PageHeight - g.Margin - footerClearance
}
