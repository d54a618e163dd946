package formatter

import (
	"context"
	"fmt"

	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/layout"
)

// Formatter renders a study sheet into one output format.
type Formatter interface {
	Format(ctx context.Context, sheet *entity.StudySheet) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// Assets supplies the optional font and logo for PDF output.
type Assets interface {
	layout.FontSource
	layout.LogoSource
}

// Factory builds formatters sharing one asset source and page setup.
type Factory struct {
	assets           Assets
	geometry         layout.Geometry
	numberParagraphs bool
}

// NewFactory returns a factory. assets may be nil, in which case PDFs use the
// built-in font and the text header.
func NewFactory(assets Assets, geometry layout.Geometry, numberParagraphs bool) *Factory {
	return &Factory{
		assets:           assets,
		geometry:         geometry,
		numberParagraphs: numberParagraphs,
	}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(f.assets, f.geometry, f.numberParagraphs), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// annotations groups the vocabulary of a sheet by the paragraph it is
// anchored to. Only the vocabulary variant carries annotations.
func annotations(sheet *entity.StudySheet) map[int][]layout.WordPosition {
	if sheet.Variant != entity.VariantVocabulary || len(sheet.Words) == 0 {
		return nil
	}
	return layout.GroupByParagraph(layout.ResolveWordPositions(sheet.Document.Paragraphs, sheet.Words))
}
