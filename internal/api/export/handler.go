package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/pkg/logger"
	"github.com/myling/study-backend/internal/pkg/response"
	"github.com/myling/study-backend/internal/usecase/study"
	"go.uber.org/zap"
)

// maxBodySize bounds a JSON export request.
const maxBodySize = 10 << 20

type Handler struct {
	usecase ExportUsecase
}

func NewHandler(usecase ExportUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// CreateExport handles POST /exports
func (h *Handler) CreateExport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateExport")

	var req entity.ExportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "exporting document",
		zap.String("title", req.Title),
		zap.String("variant", string(req.Variant)),
		zap.String("format", string(req.Format)),
		zap.Int("paragraph_count", len(req.Paragraphs)),
		zap.Int("word_count", len(req.Words)),
	)

	export, err := h.usecase.Export(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondFile(ctx, w, export)
}

// ExportStudy handles POST /studies/{study_id}/exports
func (h *Handler) ExportStudy(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportStudy")

	studyID, err := strconv.ParseInt(chi.URLParam(r, "study_id"), 10, 64)
	if err != nil || studyID < 1 {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid study id", err)
		return
	}
	ctx = logger.WithStudy(ctx, &studyID)

	query := r.URL.Query()
	variant := queryVariant(query.Get("variant"))
	format := queryFormat(query.Get("format"))

	ctxzap.Info(ctx, "exporting study",
		zap.String("variant", string(variant)),
		zap.String("format", string(format)),
	)

	export, err := h.usecase.ExportStudy(ctx, studyID, variant, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondFile(ctx, w, export)
}

// ListExports handles GET /exports
func (h *Handler) ListExports(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListExports")

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	req := entity.ListExportsRequest{
		Skip:  skip,
		Limit: limit,
	}

	ctxzap.Debug(ctx, "listing exports",
		zap.Int("skip", skip),
		zap.Int("limit", limit),
	)

	resp, err := h.usecase.ListExports(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	summaries := make([]*entity.ExportSummary, 0, len(resp.Exports))
	for _, e := range resp.Exports {
		summaries = append(summaries, toExportSummary(e))
	}

	ctxzap.Info(ctx, "exports listed successfully", zap.Int("count", len(summaries)))

	h.respondJSON(ctx, w, http.StatusOK, &entity.ListExportSummariesResponse{
		Exports: summaries,
	})
}

// GetExport handles GET /exports/{export_id}
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	exportID := chi.URLParam(r, "export_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("export_id", exportID),
		zap.String("action", "GetExport"),
	)

	export, err := h.usecase.GetExport(ctx, exportID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondFile(ctx, w, export)
}

func (h *Handler) respondFile(ctx context.Context, w http.ResponseWriter, export *entity.Export) {
	w.Header().Set("X-Export-ID", export.ID)
	if err := response.Attachment(w, export.ContentType, contentDisposition(export.Filename), export.Data); err != nil {
		ctxzap.Warn(ctx, "failed to write export", zap.String("export_id", export.ID), zap.Error(err))
	}
}

func (h *Handler) respondJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	if err := response.JSON(w, status, data); err != nil {
		ctxzap.Warn(ctx, "failed to write response", zap.Error(err))
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}

	if werr := response.Error(w, status, message, err); werr != nil {
		ctxzap.Warn(ctx, "failed to write error response", zap.Error(werr))
	}
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var opErr *study.OperationError

	switch {
	case errors.Is(err, entity.ErrStudyNotFound) || errors.Is(err, entity.ErrExportNotFound) || errors.Is(err, entity.ErrArchiveOff):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrInvalidVariant) || errors.Is(err, entity.ErrInvalidFormat):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid export option", err)
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrEmptyDocument):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.As(err, &opErr):
		h.respondError(ctx, w, http.StatusBadGateway, opErr.Op+" failed", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
