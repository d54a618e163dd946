package backend

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/config"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/integration/common"
	pkghttp "github.com/myling/study-backend/pkg/http"
	"go.uber.org/zap"
)

const (
	uploadEndpoint        = "/api/upload"
	translateEndpoint     = "/api/translate"
	reorganizeEndpoint    = "/api/paragraphs/reorganize"
	studySaveEndpoint     = "/api/study/save"
	studyListEndpoint     = "/api/study/list"
	studyEndpoint         = "/api/study/"
	vocabularyEndpoint    = "/api/vocabulary"
	wordAddEndpoint       = "/api/vocabulary/add"
	fetchMeaningEndpoint  = "/api/vocabulary/fetch-meaning"
	updateMeaningEndpoint = "/api/vocabulary/update-meaning"
	markWordEndpoint      = "/api/vocabulary/mark"
)

// Connector talks to the study/vocabulary backend.
type Connector struct {
	config    config.BackendConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.BackendConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Upload sends a file to OCR and returns the extracted text.
func (c *Connector) Upload(ctx context.Context, file *entity.UploadFile) (string, error) {
	ctxzap.Info(ctx, "uploading file for OCR", zap.String("filename", file.Filename), zap.Int64("size", file.Size))

	var resp entity.UploadResponse
	err := c.connector.DoMultipartRequest(ctx, http.MethodPost, uploadEndpoint, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", file.Filename)
		if err != nil {
			return err
		}
		_, err = part.Write(file.Content)
		return err
	}, &resp)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "text extracted", zap.Int("text_length", len(resp.Text)))

	return resp.Text, nil
}

// Translate splits text into paragraphs of translated sentence pairs.
func (c *Connector) Translate(ctx context.Context, text string) (*entity.Translation, error) {
	ctxzap.Info(ctx, "translating text", zap.Int("text_length", len(text)))

	var resp entity.Translation
	if err := c.connector.DoRequest(ctx, http.MethodPost, translateEndpoint, &entity.TranslateRequest{Text: text}, &resp); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "text translated", zap.Int("paragraph_count", len(resp.Paragraphs)))

	return &resp, nil
}

// Reorganize regroups sentence pairs into new paragraphs.
func (c *Connector) Reorganize(ctx context.Context, req *entity.ReorganizeRequest) (*entity.Translation, error) {
	var resp entity.Translation
	if err := c.connector.DoRequest(ctx, http.MethodPost, reorganizeEndpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Connector) SaveStudy(ctx context.Context, req *entity.SaveStudyRequest) (int64, error) {
	ctxzap.Info(ctx, "saving study", zap.String("title", req.Title))

	var resp entity.SaveStudyResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, studySaveEndpoint, req, &resp); err != nil {
		return 0, err
	}

	ctxzap.Info(ctx, "study saved", zap.Int64("study_id", resp.StudyID))

	return resp.StudyID, nil
}

func (c *Connector) ListStudies(ctx context.Context) ([]entity.Study, error) {
	var resp []entity.Study
	if err := c.connector.DoRequest(ctx, http.MethodGet, studyListEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetStudy returns the stored study with its paragraphs still undecoded.
func (c *Connector) GetStudy(ctx context.Context, id int64) (*entity.StudyRecord, error) {
	var resp entity.StudyRecord
	err := c.connector.DoRequest(ctx, http.MethodGet, studyPath(id), nil, &resp)
	if err != nil {
		return nil, mapNotFound(err, entity.ErrStudyNotFound)
	}
	return &resp, nil
}

func (c *Connector) UpdateStudy(ctx context.Context, id int64, req *entity.UpdateStudyRequest) error {
	err := c.connector.DoRequest(ctx, http.MethodPut, studyPath(id), req, nil)
	return mapNotFound(err, entity.ErrStudyNotFound)
}

func (c *Connector) DeleteStudy(ctx context.Context, id int64) error {
	ctxzap.Info(ctx, "deleting study", zap.Int64("study_id", id))

	err := c.connector.DoRequest(ctx, http.MethodDelete, studyPath(id), nil, nil)
	return mapNotFound(err, entity.ErrStudyNotFound)
}

// ListWords returns the vocabulary of a study, or every word when studyID is
// nil.
func (c *Connector) ListWords(ctx context.Context, studyID *int64) ([]entity.Word, error) {
	var opts []pkghttp.RequestOpt
	if studyID != nil {
		opts = append(opts, pkghttp.WithQuery(url.Values{"study_id": {strconv.FormatInt(*studyID, 10)}}))
	}

	var resp []entity.Word
	if err := c.connector.DoRequest(ctx, http.MethodGet, vocabularyEndpoint, nil, &resp, opts...); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Connector) AddWord(ctx context.Context, word, meaning string, studyID *int64) error {
	query := url.Values{"word": {word}, "meaning": {meaning}}
	if studyID != nil {
		query.Set("study_id", strconv.FormatInt(*studyID, 10))
	}
	return c.connector.DoRequest(ctx, http.MethodPost, wordAddEndpoint, nil, nil, pkghttp.WithQuery(query))
}

// FetchMeaning looks a word up in the dictionary service.
func (c *Connector) FetchMeaning(ctx context.Context, word string) (*entity.MeaningResponse, error) {
	var resp entity.MeaningResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, fetchMeaningEndpoint, nil, &resp,
		pkghttp.WithQuery(url.Values{"word": {word}}))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Connector) UpdateMeaning(ctx context.Context, wordID int64, meaning string) error {
	query := url.Values{"word_id": {strconv.FormatInt(wordID, 10)}, "meaning": {meaning}}
	err := c.connector.DoRequest(ctx, http.MethodPost, updateMeaningEndpoint, nil, nil, pkghttp.WithQuery(query))
	return mapNotFound(err, entity.ErrWordNotFound)
}

func (c *Connector) MarkWord(ctx context.Context, wordID int64, known bool) error {
	query := url.Values{"word_id": {strconv.FormatInt(wordID, 10)}, "known": {strconv.FormatBool(known)}}
	err := c.connector.DoRequest(ctx, http.MethodPost, markWordEndpoint, nil, nil, pkghttp.WithQuery(query))
	return mapNotFound(err, entity.ErrWordNotFound)
}

func (c *Connector) DeleteWord(ctx context.Context, wordID int64) error {
	err := c.connector.DoRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", vocabularyEndpoint, wordID), nil, nil)
	return mapNotFound(err, entity.ErrWordNotFound)
}

func studyPath(id int64) string {
	return studyEndpoint + strconv.FormatInt(id, 10)
}

// mapNotFound turns a 404 into the given domain error and leaves anything
// else untouched.
func mapNotFound(err error, notFound error) error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) && httpErr.IsNotFound() {
		return fmt.Errorf("%w: %v", notFound, err)
	}
	return err
}
