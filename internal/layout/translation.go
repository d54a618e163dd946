package layout

import "github.com/myling/study-backend/internal/entity"

// ComposeTranslation lays out the title followed by every sentence pair in a
// single full-width column.
func ComposeTranslation(c Canvas, doc *entity.Document, opts Options) {
	cp := newComposer(c, opts)
	width := opts.Geometry.ContentWidth()

	cp.title(doc.Title)
	for _, p := range doc.Paragraphs {
		for _, s := range p.Sentences {
			cp.pair(s, width)
		}
		cp.st.Y += paragraphGap
	}

	cp.finish()
}
