package export

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// ExportUsecase turns documents into downloadable study sheets.
type ExportUsecase struct {
	formatters      FormatterFactory
	studies         StudyLoader
	archive         Archive
	validator       *validator.Validator
	defaultFilename string
	logger          *zap.Logger
}

// NewUsecase creates the export use case. archive may be nil.
func NewUsecase(
	formatters FormatterFactory,
	studies StudyLoader,
	archive Archive,
	validator *validator.Validator,
	defaultFilename string,
	logger *zap.Logger,
) *ExportUsecase {
	return &ExportUsecase{
		formatters:      formatters,
		studies:         studies,
		archive:         archive,
		validator:       validator,
		defaultFilename: defaultFilename,
		logger:          logger,
	}
}

// Export renders a document supplied by the caller.
func (uc *ExportUsecase) Export(ctx context.Context, req *entity.ExportRequest) (*entity.Export, error) {
	if err := uc.validator.ValidateExport(req); err != nil {
		return nil, err
	}

	doc := &entity.Document{Title: strings.TrimSpace(req.Title), Paragraphs: req.Paragraphs}
	return uc.render(ctx, doc, req.Words, req.Variant, req.Format, req.StudyID)
}

// ExportStudy loads a stored study, and for the vocabulary variant its word
// list, and renders it.
func (uc *ExportUsecase) ExportStudy(
	ctx context.Context,
	studyID int64,
	variant entity.ExportVariant,
	format entity.ResultFormat,
) (*entity.Export, error) {
	if err := variant.Validate(); err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	opened, err := uc.studies.OpenStudy(ctx, studyID, 0)
	if err != nil {
		return nil, err
	}
	if len(opened.Paragraphs) == 0 {
		return nil, fmt.Errorf("%w: study %d", entity.ErrEmptyDocument, studyID)
	}

	var words []entity.Word
	if variant == entity.VariantVocabulary {
		words, err = uc.studies.Vocabulary(ctx, &studyID)
		if err != nil {
			return nil, err
		}
	}

	return uc.render(ctx, opened.Document(), words, variant, format, &studyID)
}

func (uc *ExportUsecase) render(
	ctx context.Context,
	doc *entity.Document,
	words []entity.Word,
	variant entity.ExportVariant,
	format entity.ResultFormat,
	studyID *int64,
) (*entity.Export, error) {
	if len(doc.Paragraphs) == 0 {
		return nil, entity.ErrEmptyDocument
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	// The sheet is a snapshot; later edits to the caller's document do not
	// reach a running export.
	sheet := &entity.StudySheet{
		Document: doc.Clone(),
		Words:    append([]entity.Word(nil), words...),
		Variant:  variant,
	}

	start := time.Now()
	data, err := f.Format(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", format, err)
	}

	export := &entity.Export{
		ID:          uuid.New().String(),
		StudyID:     studyID,
		Title:       doc.Title,
		Variant:     variant,
		Format:      format,
		Filename:    uc.filename(doc.Title, f.FileExtension()),
		ContentType: f.ContentType(),
		Size:        int64(len(data)),
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}

	ctxzap.Info(ctx, "study sheet exported",
		zap.String("export_id", export.ID),
		zap.String("variant", string(variant)),
		zap.String("format", string(format)),
		zap.Int("paragraph_count", len(doc.Paragraphs)),
		zap.Int("word_count", len(words)),
		zap.Int64("size", export.Size),
		zap.Duration("took", time.Since(start)),
	)

	if uc.archive != nil {
		if err := uc.archive.Create(ctx, export); err != nil {
			ctxzap.Warn(ctx, "failed to archive export", zap.String("export_id", export.ID), zap.Error(err))
		}
	}

	return export, nil
}

// ListExports returns archived exports without their content.
func (uc *ExportUsecase) ListExports(ctx context.Context, req *entity.ListExportsRequest) (*entity.ListExportsResponse, error) {
	if uc.archive == nil {
		return nil, entity.ErrArchiveOff
	}

	req.Normalize()
	exports, err := uc.archive.List(ctx, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return &entity.ListExportsResponse{Exports: exports}, nil
}

// GetExport returns an archived export with its content.
func (uc *ExportUsecase) GetExport(ctx context.Context, id string) (*entity.Export, error) {
	if uc.archive == nil {
		return nil, entity.ErrArchiveOff
	}
	return uc.archive.Get(ctx, id)
}

// filename derives "<title><ext>" from the sheet title, falling back to the
// configured default name when nothing printable is left of the title.
func (uc *ExportUsecase) filename(title, ext string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, title)
	name = strings.Trim(name, " .")
	if name == "" {
		name = uc.defaultFilename
	}
	return name + ext
}
