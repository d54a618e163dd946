package export

import (
	"context"

	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/pkg/formatter"
)

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}

// StudyLoader loads a stored study and its vocabulary.
type StudyLoader interface {
	OpenStudy(ctx context.Context, id int64, requestedStep int) (*entity.OpenedStudy, error)
	Vocabulary(ctx context.Context, studyID *int64) ([]entity.Word, error)
}

// Archive keeps generated exports. It is nil when archiving is disabled.
type Archive interface {
	Create(ctx context.Context, export *entity.Export) error
	Get(ctx context.Context, id string) (*entity.Export, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Export, error)
}
