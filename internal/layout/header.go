package layout

import "strconv"

const (
	// FallbackHeaderText replaces the logo when it cannot be loaded.
	FallbackHeaderText = "MyLing"

	separatorWidth = 1.0
	// separatorOffset is the distance between the logo row and the separator.
	separatorOffset = 5.0
	headerTextSize  = 10.0
	footerTextSize  = 10.0
)

// Logo is a registered header image. Width and Height are the pixel
// dimensions, used only for the aspect ratio.
type Logo struct {
	Name   string
	Width  float64
	Height float64
}

// Header draws the logo row and the separator line on a page.
type Header struct {
	Logo         *Logo
	Fallback     string
	FallbackFace Face
}

func (h Header) Draw(c Canvas, g Geometry) {
	lineY := g.Margin + g.LogoHeight + separatorOffset
	c.Line(g.Margin, lineY, g.PageWidth-g.Margin, lineY, separatorWidth, Lavender)

	if h.Logo != nil && h.Logo.Width > 0 && h.Logo.Height > 0 {
		w := h.Logo.Width / h.Logo.Height * g.LogoHeight
		c.Image(h.Logo.Name, g.Margin, g.Margin, w, g.LogoHeight)
		return
	}

	c.Text(g.Margin, g.Margin+5, h.FallbackFace, Muted, h.Fallback)
}

// StampFooters writes a right-aligned 1-based page number on every page once
// the document has at least two pages. Single-page documents get no footer.
func StampFooters(c Canvas, g Geometry, face Face) {
	total := c.PageCount()
	if total < 2 {
		return
	}

	for i := 1; i <= total; i++ {
		c.SetPage(i)
		label := strconv.Itoa(i)
		x := g.PageWidth - g.Margin - c.StringWidth(face, label)
		c.Text(x, g.PageHeight-g.Margin, face, Muted, label)
	}
}
