package study

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/pkg/validator"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// NoticeReupload is shown when a stored study has no usable paragraphs.
const NoticeReupload = "the stored translation could not be read, please upload the document again"

const vocabularyTTL = 30 * time.Minute

// StudyUsecase implements the three-step study wizard on top of the backend.
type StudyUsecase struct {
	backend   BackendConnector
	validator *validator.Validator
	logger    *zap.Logger

	// vocab holds the word list of each open study. Optimistic updates are
	// applied here first and rolled back when the backend call fails.
	mu    sync.Mutex
	vocab *cache.Cache
}

func NewUsecase(
	backend BackendConnector,
	validator *validator.Validator,
	logger *zap.Logger,
) *StudyUsecase {
	return &StudyUsecase{
		backend:   backend,
		validator: validator,
		logger:    logger,
		vocab:     cache.New(vocabularyTTL, 2*vocabularyTTL),
	}
}

// Upload sends the first file of a batch to OCR and returns its text.
func (uc *StudyUsecase) Upload(ctx context.Context, files []*entity.UploadFile) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("%w: file", entity.ErrMissingField)
	}
	file := files[0]
	if len(files) > 1 {
		ctxzap.Info(ctx, "only the first file is sent to OCR", zap.Int("file_count", len(files)))
	}

	if err := uc.validator.ValidateUpload(file); err != nil {
		return "", err
	}

	text, err := uc.backend.Upload(ctx, file)
	if err != nil {
		return "", opError(OpUpload, err)
	}
	return text, nil
}

func (uc *StudyUsecase) Translate(ctx context.Context, text string) (*entity.Translation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text", entity.ErrMissingField)
	}

	tr, err := uc.backend.Translate(ctx, text)
	if err != nil {
		return nil, opError(OpTranslate, err)
	}

	ctxzap.Info(ctx, "text translated",
		zap.Int("paragraph_count", len(tr.Paragraphs)),
		zap.String("topic", tr.Topic),
	)

	return tr, nil
}

// Reorganize regroups the sentence pairs; boundaries are the indices, in
// the flattened sentence list, at which a new paragraph starts.
func (uc *StudyUsecase) Reorganize(ctx context.Context, paragraphs []entity.Paragraph, boundaries []int) (*entity.Translation, error) {
	if len(paragraphs) == 0 {
		return nil, entity.ErrEmptyDocument
	}

	tr, err := uc.backend.Reorganize(ctx, &entity.ReorganizeRequest{
		Paragraphs:          paragraphs,
		ParagraphBoundaries: boundaries,
	})
	if err != nil {
		return nil, opError(OpReorganize, err)
	}
	return tr, nil
}

// Save stores a translated document as a study at step 2 and returns its id.
func (uc *StudyUsecase) Save(ctx context.Context, title string, tr *entity.Translation) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("%w: title", entity.ErrMissingField)
	}
	if tr == nil || len(tr.Paragraphs) == 0 {
		return 0, entity.ErrEmptyDocument
	}

	doc := &entity.Document{Title: title, Paragraphs: tr.Paragraphs}
	id, err := uc.backend.SaveStudy(ctx, &entity.SaveStudyRequest{
		Title:       title,
		EnglishText: doc.EnglishText(),
		KoreanText:  doc.KoreanText(),
		Paragraphs:  tr.Paragraphs,
		CurrentStep: entity.StepTranslate,
		Words:       []entity.WordPair{},
		Topic:       tr.Topic,
	})
	if err != nil {
		return 0, opError(OpSaveStudy, err)
	}

	ctxzap.Info(ctx, "study saved", zap.Int64("study_id", id), zap.Int("sentence_count", doc.SentenceCount()))

	return id, nil
}

// ProceedToVocabulary moves a saved study to step 3. Recording the step on
// the backend is best effort.
func (uc *StudyUsecase) ProceedToVocabulary(ctx context.Context, studyID *int64) error {
	if studyID == nil {
		return entity.ErrStudyNotSaved
	}

	step := entity.StepVocabulary
	if err := uc.backend.UpdateStudy(ctx, *studyID, &entity.UpdateStudyRequest{CurrentStep: &step}); err != nil {
		ctxzap.Warn(ctx, "failed to record study step", zap.Int64("study_id", *studyID), zap.Error(err))
	}
	return nil
}

func (uc *StudyUsecase) ListStudies(ctx context.Context) ([]entity.Study, error) {
	studies, err := uc.backend.ListStudies(ctx)
	if err != nil {
		return nil, opError(OpListStudies, err)
	}
	return studies, nil
}

// OpenStudy loads a stored study for the wizard. requestedStep is honoured
// when it is 2 or 3; pass 0 to resume at the stored step.
func (uc *StudyUsecase) OpenStudy(ctx context.Context, id int64, requestedStep int) (*entity.OpenedStudy, error) {
	rec, err := uc.backend.GetStudy(ctx, id)
	if err != nil {
		return nil, opError(OpLoadStudy, err)
	}

	opened := &entity.OpenedStudy{
		Study:       rec.Study,
		EnglishText: rec.EnglishText,
		KoreanText:  rec.KoreanText,
	}

	paragraphs, err := entity.DecodeParagraphs(rec.Paragraphs)
	if err != nil {
		ctxzap.Warn(ctx, "stored paragraphs are malformed", zap.Int64("study_id", id), zap.Error(err))
	}
	opened.Paragraphs = nonEmptyParagraphs(paragraphs)

	if len(opened.Paragraphs) == 0 && rec.EnglishText != "" && rec.KoreanText != "" {
		opened.Paragraphs = entity.ReconstructParagraphs(rec.EnglishText, rec.KoreanText)
		ctxzap.Info(ctx, "paragraphs reconstructed from stored texts",
			zap.Int64("study_id", id), zap.Int("paragraph_count", len(opened.Paragraphs)))
	}

	if len(opened.Paragraphs) == 0 {
		opened.Notice = NoticeReupload
	}
	if opened.EnglishText == "" {
		opened.EnglishText = opened.Document().EnglishText()
	}

	opened.Step = resolveStep(requestedStep, rec.CurrentStep, len(opened.Paragraphs) > 0)

	return opened, nil
}

func (uc *StudyUsecase) DeleteStudy(ctx context.Context, id int64) error {
	if err := uc.backend.DeleteStudy(ctx, id); err != nil {
		return opError(OpDeleteStudy, err)
	}
	uc.vocab.Delete(vocabKey(&id))
	return nil
}

// resolveStep picks the wizard step a study resumes at: an explicit request
// for step 2 or 3, else the stored step when it is 2 or 3, else step 2 when
// there is something to show, else step 1.
func resolveStep(requested, stored int, hasParagraphs bool) int {
	switch {
	case requested == entity.StepTranslate || requested == entity.StepVocabulary:
		return requested
	case stored == entity.StepTranslate || stored == entity.StepVocabulary:
		return stored
	case hasParagraphs:
		return entity.StepTranslate
	default:
		return entity.StepUpload
	}
}

func nonEmptyParagraphs(paragraphs []entity.Paragraph) []entity.Paragraph {
	out := paragraphs[:0:0]
	for _, p := range paragraphs {
		if len(p.Sentences) > 0 {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
