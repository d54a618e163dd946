package formatter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/layout"
	"go.uber.org/zap"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"
)

// PDFFormatter lays the sheet out with the layout engine and renders it with
// gofpdf.
type PDFFormatter struct {
	assets           Assets
	geometry         layout.Geometry
	numberParagraphs bool
}

func NewPDFFormatter(assets Assets, geometry layout.Geometry, numberParagraphs bool) *PDFFormatter {
	return &PDFFormatter{
		assets:           assets,
		geometry:         geometry,
		numberParagraphs: numberParagraphs,
	}
}

// Format builds the PDF. Font and logo failures degrade to the built-in font
// and the text header; only drawing and output errors fail the export.
func (pf *PDFFormatter) Format(ctx context.Context, sheet *entity.StudySheet) ([]byte, error) {
	doc := layout.NewPDFDocument(pf.geometry)
	doc.SetTitle(sheet.Document.Title)

	var (
		fontSrc layout.FontSource
		logoSrc layout.LogoSource
	)
	if pf.assets != nil {
		fontSrc, logoSrc = pf.assets, pf.assets
	}

	fonts, err := layout.RegisterFont(ctx, doc, fontSrc)
	if err != nil {
		ctxzap.Warn(ctx, "embedded font unavailable, using built-in font", zap.Error(err))
	}

	logo, err := layout.RegisterLogo(ctx, doc, logoSrc)
	if err != nil {
		ctxzap.Warn(ctx, "logo unavailable, using text header", zap.Error(err))
	}

	opts := layout.Options{
		Geometry:         pf.geometry,
		Fonts:            fonts,
		Logo:             logo,
		NumberParagraphs: pf.numberParagraphs,
	}

	rec := layout.NewRecorder(doc)
	switch sheet.Variant {
	case entity.VariantVocabulary:
		layout.ComposeAnnotated(rec, sheet.Document, sheet.Words, opts)
	default:
		layout.ComposeTranslation(rec, sheet.Document, opts)
	}

	if err := doc.Render(rec); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	ctxzap.Debug(ctx, "pdf composed",
		zap.Int("page_count", rec.PageCount()),
		zap.Bool("embedded_font", fonts.Embedded),
		zap.Bool("logo", logo != nil),
	)

	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
