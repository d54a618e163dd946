package validator

import (
	"errors"
	"testing"

	"github.com/myling/study-backend/internal/config"
	"github.com/myling/study-backend/internal/entity"
)

func newValidator() *Validator {
	return NewValidator(config.BackendConfig{MaxUploadSize: 10}, config.ExportConfig{MaxWords: 2})
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    *entity.UploadFile
		wantErr error
	}{
		{name: "image", file: &entity.UploadFile{Filename: "page.PNG", Size: 3, Content: []byte("png")}},
		{name: "empty", file: &entity.UploadFile{Filename: "page.png"}, wantErr: entity.ErrMissingField},
		{name: "extension", file: &entity.UploadFile{Filename: "notes.docx", Size: 3, Content: []byte("doc")}, wantErr: entity.ErrInvalidExtension},
		{name: "too large", file: &entity.UploadFile{Filename: "scan.pdf", Size: 11, Content: []byte("pdf")}, wantErr: entity.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newValidator().ValidateUpload(tt.file)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUpload() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateExport(t *testing.T) {
	paragraphs := []entity.Paragraph{{Sentences: []entity.SentencePair{{English: "Hi.", Korean: "안녕."}}}}

	tests := []struct {
		name    string
		req     entity.ExportRequest
		wantErr error
	}{
		{name: "valid", req: entity.ExportRequest{Paragraphs: paragraphs, Variant: entity.VariantTranslation, Format: entity.FormatPDF}},
		{name: "variant", req: entity.ExportRequest{Paragraphs: paragraphs, Variant: "poster", Format: entity.FormatPDF}, wantErr: entity.ErrInvalidVariant},
		{name: "format", req: entity.ExportRequest{Paragraphs: paragraphs, Variant: entity.VariantVocabulary, Format: "rtf"}, wantErr: entity.ErrInvalidFormat},
		{name: "no paragraphs", req: entity.ExportRequest{Variant: entity.VariantTranslation, Format: entity.FormatMarkdown}, wantErr: entity.ErrMissingField},
		{
			name:    "too many words",
			req:     entity.ExportRequest{Paragraphs: paragraphs, Words: make([]entity.Word, 3), Variant: entity.VariantVocabulary, Format: entity.FormatPDF},
			wantErr: entity.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newValidator().ValidateExport(&tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExport() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "  Apple ", want: "apple"},
		{in: "CAT", want: "cat"},
		{in: "ox", wantErr: entity.ErrWordTooShort},
		{in: "   ", wantErr: entity.ErrWordTooShort},
		{in: "사과나무", want: "사과나무"},
	}

	for _, tt := range tests {
		got, err := NormalizeWord(tt.in)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("NormalizeWord(%q) = %q, %v; want %q, %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"My Study (1).pdf":   "My_Study_1.pdf",
		"../../etc/passwd":   "passwd",
		`what: "quotes"?.md`: "what_quotes.md",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
