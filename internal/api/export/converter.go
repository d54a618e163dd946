package export

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/myling/study-backend/internal/entity"
)

// toExportSummary converts Export entity to ExportSummary DTO
func toExportSummary(e *entity.Export) *entity.ExportSummary {
	return &entity.ExportSummary{
		ID:          e.ID,
		StudyID:     e.StudyID,
		Title:       e.Title,
		Variant:     e.Variant,
		Format:      e.Format,
		Filename:    e.Filename,
		ContentType: e.ContentType,
		Size:        e.Size,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// queryVariant reads the variant query value, defaulting to the translation
// sheet.
func queryVariant(v string) entity.ExportVariant {
	if v == "" {
		return entity.VariantTranslation
	}
	return entity.ExportVariant(v)
}

// queryFormat reads the format query value, defaulting to PDF.
func queryFormat(v string) entity.ResultFormat {
	if v == "" {
		return entity.FormatPDF
	}
	return entity.ResultFormat(v)
}

// contentDisposition builds an attachment header. Non-ASCII names get an
// RFC 5987 filename* parameter next to an ASCII fallback.
func contentDisposition(filename string) string {
	ascii := true
	fallback := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || r == '"' || r == '\\' {
			ascii = false
			return '_'
		}
		return r
	}, filename)

	header := `attachment; filename="` + fallback + `"`
	if !ascii {
		header += "; filename*=UTF-8''" + url.PathEscape(filename)
	}
	return header
}
