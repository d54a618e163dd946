package formatter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/layout"
)

type failingAssets struct{}

func (failingAssets) Font(context.Context) ([]byte, error) { return nil, errors.New("font missing") }
func (failingAssets) Logo(context.Context) ([]byte, error) { return []byte("not an image"), nil }

func sheet(variant entity.ExportVariant) *entity.StudySheet {
	return &entity.StudySheet{
		Document: &entity.Document{
			Title: "Test",
			Paragraphs: []entity.Paragraph{
				{Sentences: []entity.SentencePair{{English: "Hello world.", Korean: "안녕하세요."}}},
				{Sentences: []entity.SentencePair{{English: "The cat sat.", Korean: "고양이가 앉았다."}}},
			},
		},
		Words: []entity.Word{
			{ID: 1, Word: "cat", Meaning: "고양이"},
			{ID: 2, Word: "hello"},
			{ID: 3, Word: "absent", Meaning: "없는"},
		},
		Variant: variant,
	}
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory(nil, layout.A4(), false)

	tests := []struct {
		format   entity.ResultFormat
		wantType string
		wantExt  string
		wantErr  error
	}{
		{format: entity.FormatPDF, wantType: pdfContentType, wantExt: ".pdf"},
		{format: entity.FormatDOCX, wantType: docxContentType, wantExt: ".docx"},
		{format: entity.FormatMarkdown, wantType: markdownContentType, wantExt: ".md"},
		{format: "rtf", wantErr: entity.ErrInvalidFormat},
	}

	for _, tt := range tests {
		fm, err := f.Create(tt.format)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Create(%q) error = %v, want %v", tt.format, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if fm.ContentType() != tt.wantType || fm.FileExtension() != tt.wantExt {
			t.Errorf("Create(%q) = %s %s", tt.format, fm.ContentType(), fm.FileExtension())
		}
	}
}

func TestMarkdownFormatter(t *testing.T) {
	tests := []struct {
		variant entity.ExportVariant
		want    string
	}{
		{
			variant: entity.VariantTranslation,
			want: "# Test\n" +
				"\nHello world.  \n*안녕하세요.*\n\n" +
				"\nThe cat sat.  \n*고양이가 앉았다.*\n\n",
		},
		{
			variant: entity.VariantVocabulary,
			want: "# Test\n" +
				"\nHello world.  \n*안녕하세요.*\n\n- **hello**\n" +
				"\nThe cat sat.  \n*고양이가 앉았다.*\n\n- **cat**: 고양이\n",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			got, err := NewMarkdownFormatter().Format(context.Background(), sheet(tt.variant))
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDOCXFormatter(t *testing.T) {
	got, err := NewDOCXFormatter().Format(context.Background(), sheet(entity.VariantVocabulary))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !bytes.HasPrefix(got, []byte("PK")) {
		t.Errorf("output is not a zip container: %q", got[:min(4, len(got))])
	}
}

func TestPDFFormatter(t *testing.T) {
	for _, variant := range []entity.ExportVariant{entity.VariantTranslation, entity.VariantVocabulary} {
		t.Run(string(variant), func(t *testing.T) {
			pf := NewPDFFormatter(failingAssets{}, layout.A4(), true)
			got, err := pf.Format(context.Background(), sheet(variant))
			if err != nil {
				t.Fatalf("Format() error = %v, want asset failures to be non-fatal", err)
			}
			if !bytes.HasPrefix(got, []byte("%PDF-")) {
				t.Errorf("output does not start with a PDF header")
			}
		})
	}
}
