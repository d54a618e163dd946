package entity

import "encoding/json"

// UploadResponse is returned by the OCR upload endpoint.
type UploadResponse struct {
	Text string `json:"text"`
}

type TranslateRequest struct {
	Text string `json:"text"`
}

type ReorganizeRequest struct {
	Paragraphs          []Paragraph `json:"paragraphs"`
	ParagraphBoundaries []int       `json:"paragraph_boundaries"`
}

type SaveStudyRequest struct {
	Title       string      `json:"title"`
	EnglishText string      `json:"english_text"`
	KoreanText  string      `json:"korean_text"`
	Paragraphs  []Paragraph `json:"paragraphs"`
	CurrentStep int         `json:"current_step"`
	Words       []WordPair  `json:"words"`
	Topic       string      `json:"topic,omitempty"`
}

type SaveStudyResponse struct {
	StudyID int64 `json:"study_id"`
}

type UpdateStudyRequest struct {
	CurrentStep *int `json:"current_step,omitempty"`
}

// StudyRecord is the stored study as the backend returns it. Paragraphs are
// kept raw and go through DecodeParagraphs before use.
type StudyRecord struct {
	Study
	EnglishText string          `json:"english_text"`
	KoreanText  string          `json:"korean_text"`
	Paragraphs  json.RawMessage `json:"paragraphs"`
}

type MeaningResponse struct {
	Success bool   `json:"success"`
	Meaning string `json:"meaning"`
}
