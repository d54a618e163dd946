package export

import (
	"context"

	"github.com/myling/study-backend/internal/entity"
)

type ExportUsecase interface {
	Export(ctx context.Context, req *entity.ExportRequest) (*entity.Export, error)
	ExportStudy(ctx context.Context, studyID int64, variant entity.ExportVariant, format entity.ResultFormat) (*entity.Export, error)
	ListExports(ctx context.Context, req *entity.ListExportsRequest) (*entity.ListExportsResponse, error)
	GetExport(ctx context.Context, id string) (*entity.Export, error)
}
