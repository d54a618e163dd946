package entity

import "strings"

// Wizard steps
const (
	StepUpload     = 1
	StepTranslate  = 2
	StepVocabulary = 3
)

// SentencePair is a source sentence with its translation.
type SentencePair struct {
	English string `json:"english"`
	Korean  string `json:"korean"`
}

// Paragraph groups sentence pairs in reading order.
type Paragraph struct {
	Sentences []SentencePair `json:"sentences"`
}

// Document is the translated source as ordered paragraphs.
type Document struct {
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Clone returns a deep copy so exports work on a snapshot.
func (d *Document) Clone() *Document {
	out := &Document{
		Title:      d.Title,
		Paragraphs: make([]Paragraph, len(d.Paragraphs)),
	}
	for i, p := range d.Paragraphs {
		out.Paragraphs[i].Sentences = append([]SentencePair(nil), p.Sentences...)
	}
	return out
}

// SentenceCount returns the number of sentence pairs across all paragraphs.
func (d *Document) SentenceCount() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += len(p.Sentences)
	}
	return n
}

// EnglishText joins every source sentence with a single space.
func (d *Document) EnglishText() string {
	return d.join(func(s SentencePair) string { return s.English })
}

// KoreanText joins every translated sentence with a single space.
func (d *Document) KoreanText() string {
	return d.join(func(s SentencePair) string { return s.Korean })
}

func (d *Document) join(field func(SentencePair) string) string {
	parts := make([]string, 0, d.SentenceCount())
	for _, p := range d.Paragraphs {
		for _, s := range p.Sentences {
			parts = append(parts, field(s))
		}
	}
	return strings.Join(parts, " ")
}

// Word is a vocabulary entry owned by the backend.
type Word struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Meaning    string `json:"meaning"`
	StudyID    *int64 `json:"study_id,omitempty"`
	StudyTitle string `json:"study_title,omitempty"`
	Known      bool   `json:"known"`
}

// WordPair is the word/meaning shape used by translate and save payloads.
type WordPair struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Study is a saved study summary.
type Study struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	LastStudiedDate string `json:"last_studied_date"`
	WordCount       int    `json:"word_count"`
	CurrentStep     int    `json:"current_step"`
	CreatedAt       string `json:"created_at"`
	Topic           string `json:"topic,omitempty"`
}

// Translation is the result of translating or reorganizing a text.
type Translation struct {
	Paragraphs []Paragraph `json:"paragraphs"`
	Words      []WordPair  `json:"words"`
	Topic      string      `json:"topic,omitempty"`
}

// OpenedStudy is a study loaded for the wizard.
type OpenedStudy struct {
	Study
	EnglishText string
	KoreanText  string
	Paragraphs  []Paragraph
	// Step is the wizard step the study resumes at.
	Step int
	// Notice is set when stored data could not be used as is.
	Notice string
}

// Document returns the study content as an exportable document.
func (s *OpenedStudy) Document() *Document {
	return &Document{Title: s.Title, Paragraphs: s.Paragraphs}
}

// UploadFile is a file handed to OCR.
type UploadFile struct {
	Filename string
	Size     int64
	Content  []byte
}
