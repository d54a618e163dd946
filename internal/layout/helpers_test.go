package layout

import (
	"unicode/utf8"

	"github.com/myling/study-backend/internal/entity"
)

// monoMeasurer gives every rune the same width regardless of face.
type monoMeasurer float64

func (m monoMeasurer) StringWidth(_ Face, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(m)
}

func textOps(page []Op) []Op {
	var out []Op
	for _, op := range page {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

func findText(r *Recorder, s string) (page int, op Op, ok bool) {
	for i, p := range r.Pages() {
		for _, o := range p {
			if o.Kind == OpText && o.Text == s {
				return i + 1, o, true
			}
		}
	}
	return 0, Op{}, false
}

func longDocument(paragraphs, sentences int) *entity.Document {
	doc := &entity.Document{Title: "A rather long study sheet"}
	for p := 0; p < paragraphs; p++ {
		var para entity.Paragraph
		for s := 0; s < sentences; s++ {
			para.Sentences = append(para.Sentences, entity.SentencePair{
				English: "The quick brown fox jumps over the lazy dog while the cat watches from the window.",
				Korean:  "빠른 갈색 여우가 게으른 개를 뛰어넘고 고양이는 창문에서 지켜본다.",
			})
		}
		doc.Paragraphs = append(doc.Paragraphs, para)
	}
	return doc
}
