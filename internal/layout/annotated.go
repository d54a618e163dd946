package layout

import (
	"strconv"

	"github.com/myling/study-backend/internal/entity"
)

// ComposeAnnotated lays out the document in a left column and writes each
// vocabulary word with its meaning in a right column, level with the sentence
// the word first occurs in. Annotations that would start too close to the
// previous one are pushed down below it.
func ComposeAnnotated(c Canvas, doc *entity.Document, words []entity.Word, opts Options) {
	cp := newComposer(c, opts)
	g := opts.Geometry

	contentWidth := g.ContentWidth()
	leftWidth := contentWidth * leftColumnShare
	rightX := g.Margin + leftWidth + contentWidth*gutterShare
	rightWidth := contentWidth * rightColumnShare

	notes := GroupByParagraph(ResolveWordPositions(doc.Paragraphs, words))
	numbered := opts.NumberParagraphs && len(doc.Paragraphs) > 1

	cp.title(doc.Title)
	for pi, p := range doc.Paragraphs {
		anchors := make([]State, len(p.Sentences))
		for si, s := range p.Sentences {
			cp.flow.EnsureSpace(&cp.st, bodyLookahead)
			anchors[si] = cp.st
			if si == 0 && numbered {
				cp.marker(pi + 1)
			}
			cp.pair(s, leftWidth)
		}

		if group := notes[pi]; len(group) > 0 {
			end := cp.annotate(group, anchors, rightX, rightWidth)
			cp.st = lower(cp.st, end)
			c.SetPage(cp.st.Page)
		}

		cp.st.Y += annotatedParagraphGap
	}

	cp.finish()
}

func (cp *composer) marker(n int) {
	face := Face{Family: cp.opts.Fonts.Latin, Size: markerSize}
	x := cp.opts.Geometry.Margin - markerOffset
	cp.canvas.Text(x, cp.st.Y, face, Muted, strconv.Itoa(n))
}

// annotate writes the annotations of one paragraph and returns the cursor
// below the last one.
func (cp *composer) annotate(group []WordPosition, anchors []State, x, width float64) State {
	wordFace := Face{Family: cp.opts.Fonts.Latin, Style: "B", Size: bodySize}
	meaningFace := Face{Family: cp.opts.Fonts.Text, Size: bodySize}

	var (
		floor    State
		hasFloor bool
	)
	for _, pos := range group {
		st := anchors[pos.SentenceIndex]
		if hasFloor && st.Before(floor) {
			st = floor
		}
		cp.canvas.SetPage(st.Page)

		cp.flow.EnsureSpace(&st, noteLookahead)
		start := st

		lines := Wrap(cp.canvas, wordFace, pos.Word.Word, width)
		cp.write(&st, lines, x, wordFace, Black, noteLeading, noteLookahead)

		if pos.Word.Meaning != "" {
			lines = Wrap(cp.canvas, meaningFace, pos.Word.Meaning, width)
			cp.write(&st, lines, x, meaningFace, Muted, noteLeading, noteLookahead)
		}

		if st.Page == start.Page {
			st.Y = max(st.Y, start.Y+minNoteClearance)
		}
		st.Y += noteGap

		floor, hasFloor = st, true
	}
	return floor
}
