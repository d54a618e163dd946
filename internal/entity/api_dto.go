package entity

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ExportSummary describes an archived export without its content.
type ExportSummary struct {
	ID          string        `json:"export_id"`
	StudyID     *int64        `json:"study_id,omitempty"`
	Title       string        `json:"title"`
	Variant     ExportVariant `json:"variant"`
	Format      ResultFormat  `json:"format"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size"`
	CreatedAt   string        `json:"created_at"`
}

type ListExportSummariesResponse struct {
	Exports []*ExportSummary `json:"exports"`
}
