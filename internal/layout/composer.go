package layout

import "github.com/myling/study-backend/internal/entity"

const (
	titleSize  = 20.0
	bodySize   = 10.0
	markerSize = 8.0

	titleLeading = 10.0
	bodyLeading  = 7.0
	noteLeading  = 6.0

	// Space that must remain below the cursor before a line is written.
	bodyLookahead = 15.0
	noteLookahead = 10.0

	titleGap              = 10.0
	pairGap               = 5.0
	paragraphGap          = 5.0
	annotatedParagraphGap = 10.0
	noteGap               = 3.0

	// minNoteClearance is the least distance between the starts of two
	// stacked annotations.
	minNoteClearance = 2 * noteLeading

	leftColumnShare  = 0.65
	gutterShare      = 0.05
	rightColumnShare = 0.30

	markerOffset = 6.0
)

// Options configures a composer run.
type Options struct {
	Geometry Geometry
	Fonts    Fonts
	// Logo is nil when the header should use the text fallback.
	Logo *Logo
	// NumberParagraphs draws a paragraph number left of the main column in
	// the annotated layout when there is more than one paragraph.
	NumberParagraphs bool
}

// DefaultOptions is A4 with the built-in font and no logo.
func DefaultOptions() Options {
	return Options{Geometry: A4(), Fonts: FallbackFonts()}
}

type composer struct {
	canvas Canvas
	opts   Options
	flow   *Flow
	st     State
}

func newComposer(c Canvas, opts Options) *composer {
	header := Header{
		Logo:         opts.Logo,
		Fallback:     FallbackHeaderText,
		FallbackFace: Face{Family: opts.Fonts.Latin, Size: headerTextSize},
	}
	flow := NewFlow(c, opts.Geometry, header)
	return &composer{
		canvas: c,
		opts:   opts,
		flow:   flow,
		st:     flow.Start(),
	}
}

func (cp *composer) sourceFace() Face {
	return Face{Family: cp.opts.Fonts.Latin, Size: bodySize}
}

func (cp *composer) translationFace() Face {
	return Face{Family: cp.opts.Fonts.Text, Size: bodySize}
}

// title writes the wrapped title across the full content width.
func (cp *composer) title(text string) {
	face := Face{Family: cp.opts.Fonts.Text, Style: "B", Size: titleSize}
	lines := Wrap(cp.canvas, face, text, cp.opts.Geometry.ContentWidth())
	cp.write(&cp.st, lines, cp.opts.Geometry.Margin, face, Black, titleLeading, bodyLookahead)
	cp.st.Y += titleGap
}

// pair writes the source line(s) followed by the translated line(s).
func (cp *composer) pair(s entity.SentencePair, width float64) {
	x := cp.opts.Geometry.Margin

	en := cp.sourceFace()
	cp.write(&cp.st, Wrap(cp.canvas, en, s.English, width), x, en, Black, bodyLeading, bodyLookahead)

	ko := cp.translationFace()
	cp.write(&cp.st, Wrap(cp.canvas, ko, s.Korean, width), x, ko, Muted, bodyLeading, bodyLookahead)

	cp.st.Y += pairGap
}

// write draws lines at x starting from st, checking for a page break before
// every line.
func (cp *composer) write(st *State, lines []string, x float64, face Face, color Color, leading, lookahead float64) {
	for _, line := range lines {
		cp.flow.EnsureSpace(st, lookahead)
		if line != "" {
			cp.canvas.Text(x, st.Y, face, color, line)
		}
		st.Y += leading
	}
}

func (cp *composer) finish() {
	footer := Face{Family: cp.opts.Fonts.Latin, Size: footerTextSize}
	StampFooters(cp.canvas, cp.opts.Geometry, footer)
}
