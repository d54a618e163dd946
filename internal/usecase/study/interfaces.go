package study

import (
	"context"

	"github.com/myling/study-backend/internal/entity"
)

type BackendConnector interface {
	Upload(ctx context.Context, file *entity.UploadFile) (string, error)
	Translate(ctx context.Context, text string) (*entity.Translation, error)
	Reorganize(ctx context.Context, req *entity.ReorganizeRequest) (*entity.Translation, error)

	SaveStudy(ctx context.Context, req *entity.SaveStudyRequest) (int64, error)
	ListStudies(ctx context.Context) ([]entity.Study, error)
	GetStudy(ctx context.Context, id int64) (*entity.StudyRecord, error)
	UpdateStudy(ctx context.Context, id int64, req *entity.UpdateStudyRequest) error
	DeleteStudy(ctx context.Context, id int64) error

	ListWords(ctx context.Context, studyID *int64) ([]entity.Word, error)
	AddWord(ctx context.Context, word, meaning string, studyID *int64) error
	FetchMeaning(ctx context.Context, word string) (*entity.MeaningResponse, error)
	UpdateMeaning(ctx context.Context, wordID int64, meaning string) error
	MarkWord(ctx context.Context, wordID int64, known bool) error
	DeleteWord(ctx context.Context, wordID int64) error
}
