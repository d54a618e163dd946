package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/myling/study-backend/internal/entity"
)

// exportRow mirrors a row of the exports table.
type exportRow struct {
	ID          uuid.UUID
	StudyID     pgtype.Int8
	Title       string
	Variant     string
	Format      string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time
	Data        []byte
}

// fields returns scan targets for every metadata column, in query order.
func (r *exportRow) fields() []any {
	return []any{
		&r.ID,
		&r.StudyID,
		&r.Title,
		&r.Variant,
		&r.Format,
		&r.Filename,
		&r.ContentType,
		&r.Size,
		&r.CreatedAt,
	}
}

func (r *exportRow) toEntity() *entity.Export {
	export := &entity.Export{
		ID:          r.ID.String(),
		Title:       r.Title,
		Variant:     entity.ExportVariant(r.Variant),
		Format:      entity.ResultFormat(r.Format),
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Size:        r.Size,
		Data:        r.Data,
		CreatedAt:   r.CreatedAt,
	}

	if r.StudyID.Valid {
		studyID := r.StudyID.Int64
		export.StudyID = &studyID
	}

	return export
}
