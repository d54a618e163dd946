package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/myling/study-backend/internal/entity"
)

// ExportRepository defines the interface for export archive persistence
type ExportRepository interface {
	Create(ctx context.Context, export *entity.Export) error
	// Get returns the export including its file content.
	Get(ctx context.Context, id string) (*entity.Export, error)
	// List returns export metadata, newest first, without file content.
	List(ctx context.Context, skip, limit int) ([]*entity.Export, error)
}

var _ ExportRepository = &ExportPostgres{}

// ExportPostgres implements ExportRepository using PostgreSQL
type ExportPostgres struct {
	db *pgxpool.Pool
}

func NewExportPostgres(db *pgxpool.Pool) *ExportPostgres {
	return &ExportPostgres{db: db}
}

const (
	insertExportQuery = `
		INSERT INTO exports (id, study_id, title, variant, format, filename, content_type, size, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	getExportQuery = `
		SELECT id, study_id, title, variant, format, filename, content_type, size, created_at, data
		FROM exports
		WHERE id = $1`

	listExportsQuery = `
		SELECT id, study_id, title, variant, format, filename, content_type, size, created_at
		FROM exports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

func (r *ExportPostgres) Create(ctx context.Context, export *entity.Export) error {
	exportID, err := uuid.Parse(export.ID)
	if err != nil {
		return fmt.Errorf("parse export ID: %w", err)
	}

	err = r.db.QueryRow(ctx, insertExportQuery,
		exportID,
		export.StudyID,
		export.Title,
		string(export.Variant),
		string(export.Format),
		export.Filename,
		export.ContentType,
		export.Size,
		export.Data,
	).Scan(&export.CreatedAt)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}

	return nil
}

func (r *ExportPostgres) Get(ctx context.Context, id string) (*entity.Export, error) {
	exportID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrExportNotFound, id)
	}

	var row exportRow
	err = r.db.QueryRow(ctx, getExportQuery, exportID).Scan(append(row.fields(), &row.Data)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrExportNotFound
		}
		return nil, fmt.Errorf("get export: %w", err)
	}

	return row.toEntity(), nil
}

func (r *ExportPostgres) List(ctx context.Context, skip, limit int) ([]*entity.Export, error) {
	rows, err := r.db.Query(ctx, listExportsQuery, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	exports := make([]*entity.Export, 0, limit)
	for rows.Next() {
		var row exportRow
		if err := rows.Scan(row.fields()...); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exports = append(exports, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}

	return exports, nil
}
