package formatter

import (
	"bytes"
	"context"
	"strconv"

	"github.com/myling/study-backend/internal/entity"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

var docxMuted = color.RGB(100, 100, 100)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

// Format writes the title, then every sentence pair as a source paragraph
// followed by a grey translation paragraph. The vocabulary variant lists the
// words of each paragraph after it.
func (df *DOCXFormatter) Format(_ context.Context, sheet *entity.StudySheet) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(sheet.Document.Title)

	notes := annotations(sheet)
	numbered := len(sheet.Document.Paragraphs) > 1

	for pi, p := range sheet.Document.Paragraphs {
		if numbered && sheet.Variant == entity.VariantVocabulary {
			marker := doc.AddParagraph().AddRun()
			marker.Properties().SetColor(docxMuted)
			marker.AddText(strconv.Itoa(pi + 1))
		}

		for _, s := range p.Sentences {
			doc.AddParagraph().AddRun().AddText(s.English)

			ko := doc.AddParagraph().AddRun()
			ko.Properties().SetColor(docxMuted)
			ko.AddText(s.Korean)
		}

		for _, pos := range notes[pi] {
			par := doc.AddParagraph()
			par.SetStyle("ListBullet")

			word := par.AddRun()
			word.Properties().SetBold(true)
			word.AddText(pos.Word.Word)

			if pos.Word.Meaning != "" {
				meaning := par.AddRun()
				meaning.Properties().SetColor(docxMuted)
				meaning.AddText(": " + pos.Word.Meaning)
			}
		}

		doc.AddParagraph()
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
