package formatter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/myling/study-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes each sentence pair as a source line with the translation in
// italics below it. Vocabulary follows its paragraph as a bullet list.
func (mf *MarkdownFormatter) Format(_ context.Context, sheet *entity.StudySheet) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", sheet.Document.Title)

	notes := annotations(sheet)
	for pi, p := range sheet.Document.Paragraphs {
		buf.WriteString("\n")
		for _, s := range p.Sentences {
			fmt.Fprintf(&buf, "%s  \n*%s*\n\n", s.English, s.Korean)
		}
		for _, pos := range notes[pi] {
			if pos.Word.Meaning == "" {
				fmt.Fprintf(&buf, "- **%s**\n", pos.Word.Word)
				continue
			}
			fmt.Fprintf(&buf, "- **%s**: %s\n", pos.Word.Word, pos.Word.Meaning)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
