package entity

import (
	"fmt"
	"time"
)

// ExportVariant selects the study sheet layout.
type ExportVariant string

const (
	// VariantTranslation is the single-column sheet of sentence pairs.
	VariantTranslation ExportVariant = "translation"
	// VariantVocabulary adds vocabulary annotations in a side column.
	VariantVocabulary ExportVariant = "vocabulary"
)

func (v ExportVariant) Validate() error {
	switch v {
	case VariantTranslation, VariantVocabulary:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVariant, v)
	}
}

// ResultFormat is the output file format.
type ResultFormat string

const (
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
	FormatMarkdown ResultFormat = "md"
)

func (f ResultFormat) Validate() error {
	switch f {
	case FormatPDF, FormatDOCX, FormatMarkdown:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
	}
}

// StudySheet is the read-only input of one export.
type StudySheet struct {
	Document *Document
	Words    []Word
	Variant  ExportVariant
}

// ExportRequest is an export of a document supplied by the caller.
type ExportRequest struct {
	Title      string        `json:"title"`
	Paragraphs []Paragraph   `json:"paragraphs"`
	Words      []Word        `json:"words"`
	Variant    ExportVariant `json:"variant"`
	Format     ResultFormat  `json:"format"`
	StudyID    *int64        `json:"study_id,omitempty"`
}

// Export is a generated file.
type Export struct {
	ID          string        `json:"export_id"`
	StudyID     *int64        `json:"study_id,omitempty"`
	Title       string        `json:"title"`
	Variant     ExportVariant `json:"variant"`
	Format      ResultFormat  `json:"format"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size"`
	Data        []byte        `json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
}

type ListExportsRequest struct {
	Skip  int
	Limit int
}

func (r *ListExportsRequest) Normalize() {
	if r.Limit <= 0 {
		r.Limit = 10
	}

	r.Limit = min(r.Limit, 100)
	r.Skip = max(r.Skip, 0)
}

type ListExportsResponse struct {
	Exports []*Export `json:"exports"`
}
