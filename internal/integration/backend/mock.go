package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/entity"
	"go.uber.org/zap"
)

const mockTranslationPrefix = "[KO] "

var mockDictionary = map[string]string{
	"hello":    "안녕",
	"world":    "세계",
	"study":    "공부하다",
	"language": "언어",
	"category": "범주",
}

// MockConnector is an in-memory backend for local runs and tests.
type MockConnector struct {
	logger *zap.Logger

	mu      sync.Mutex
	nextID  int64
	studies map[int64]*entity.StudyRecord
	words   map[int64]*entity.Word
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger:  logger,
		studies: make(map[int64]*entity.StudyRecord),
		words:   make(map[int64]*entity.Word),
	}
}

func (m *MockConnector) Upload(ctx context.Context, file *entity.UploadFile) (string, error) {
	ctxzap.Info(ctx, "[MOCK] extracting text", zap.String("filename", file.Filename))
	return strings.TrimSpace(string(file.Content)), nil
}

// Translate splits text on sentence terminators and marks each sentence as
// translated.
func (m *MockConnector) Translate(ctx context.Context, text string) (*entity.Translation, error) {
	ctxzap.Info(ctx, "[MOCK] translating text")

	paragraphs := entity.ReconstructParagraphs(text, text)
	for pi := range paragraphs {
		for si := range paragraphs[pi].Sentences {
			s := &paragraphs[pi].Sentences[si]
			s.Korean = mockTranslationPrefix + s.English
		}
	}

	return &entity.Translation{Paragraphs: paragraphs, Words: mockWords(text)}, nil
}

// Reorganize flattens the sentences and starts a new paragraph at every
// boundary index.
func (m *MockConnector) Reorganize(ctx context.Context, req *entity.ReorganizeRequest) (*entity.Translation, error) {
	ctxzap.Info(ctx, "[MOCK] reorganizing paragraphs", zap.Ints("boundaries", req.ParagraphBoundaries))

	var flat []entity.SentencePair
	for _, p := range req.Paragraphs {
		flat = append(flat, p.Sentences...)
	}

	var (
		paragraphs []entity.Paragraph
		current    entity.Paragraph
	)
	for i, s := range flat {
		if i > 0 && slices.Contains(req.ParagraphBoundaries, i) && len(current.Sentences) > 0 {
			paragraphs = append(paragraphs, current)
			current = entity.Paragraph{}
		}
		current.Sentences = append(current.Sentences, s)
	}
	if len(current.Sentences) > 0 {
		paragraphs = append(paragraphs, current)
	}

	return &entity.Translation{Paragraphs: paragraphs}, nil
}

func (m *MockConnector) SaveStudy(ctx context.Context, req *entity.SaveStudyRequest) (int64, error) {
	raw, err := json.Marshal(req.Paragraphs)
	if err != nil {
		return 0, fmt.Errorf("marshal paragraphs: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	now := time.Now().UTC().Format(time.RFC3339)
	m.studies[id] = &entity.StudyRecord{
		Study: entity.Study{
			ID:              id,
			Title:           req.Title,
			LastStudiedDate: now,
			CurrentStep:     req.CurrentStep,
			CreatedAt:       now,
			Topic:           req.Topic,
		},
		EnglishText: req.EnglishText,
		KoreanText:  req.KoreanText,
		Paragraphs:  raw,
	}
	for _, w := range req.Words {
		m.addWordLocked(w.Word, w.Meaning, &id)
	}

	ctxzap.Info(ctx, "[MOCK] study saved", zap.Int64("study_id", id))

	return id, nil
}

func (m *MockConnector) ListStudies(_ context.Context) ([]entity.Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	studies := make([]entity.Study, 0, len(m.studies))
	for _, s := range m.studies {
		study := s.Study
		study.WordCount = m.countWordsLocked(study.ID)
		studies = append(studies, study)
	}
	slices.SortFunc(studies, func(a, b entity.Study) int {
		return int(b.ID - a.ID)
	})
	return studies, nil
}

func (m *MockConnector) GetStudy(_ context.Context, id int64) (*entity.StudyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.studies[id]
	if !ok {
		return nil, entity.ErrStudyNotFound
	}
	out := *s
	out.WordCount = m.countWordsLocked(id)
	return &out, nil
}

func (m *MockConnector) UpdateStudy(_ context.Context, id int64, req *entity.UpdateStudyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.studies[id]
	if !ok {
		return entity.ErrStudyNotFound
	}
	if req.CurrentStep != nil {
		s.CurrentStep = *req.CurrentStep
	}
	s.LastStudiedDate = time.Now().UTC().Format(time.RFC3339)
	return nil
}

// DeleteStudy removes the study together with its words.
func (m *MockConnector) DeleteStudy(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.studies[id]; !ok {
		return entity.ErrStudyNotFound
	}
	delete(m.studies, id)
	for wid, w := range m.words {
		if w.StudyID != nil && *w.StudyID == id {
			delete(m.words, wid)
		}
	}
	return nil
}

func (m *MockConnector) ListWords(_ context.Context, studyID *int64) ([]entity.Word, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	words := make([]entity.Word, 0, len(m.words))
	for _, w := range m.words {
		if studyID != nil && (w.StudyID == nil || *w.StudyID != *studyID) {
			continue
		}
		words = append(words, *w)
	}
	slices.SortFunc(words, func(a, b entity.Word) int {
		return int(a.ID - b.ID)
	})
	return words, nil
}

func (m *MockConnector) AddWord(ctx context.Context, word, meaning string, studyID *int64) error {
	ctxzap.Info(ctx, "[MOCK] adding word", zap.String("word", word))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.addWordLocked(word, meaning, studyID)
	return nil
}

func (m *MockConnector) FetchMeaning(_ context.Context, word string) (*entity.MeaningResponse, error) {
	meaning, ok := mockDictionary[strings.ToLower(word)]
	return &entity.MeaningResponse{Success: ok, Meaning: meaning}, nil
}

func (m *MockConnector) UpdateMeaning(_ context.Context, wordID int64, meaning string) error {
	return m.updateWord(wordID, func(w *entity.Word) { w.Meaning = meaning })
}

func (m *MockConnector) MarkWord(_ context.Context, wordID int64, known bool) error {
	return m.updateWord(wordID, func(w *entity.Word) { w.Known = known })
}

func (m *MockConnector) DeleteWord(_ context.Context, wordID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.words[wordID]; !ok {
		return entity.ErrWordNotFound
	}
	delete(m.words, wordID)
	return nil
}

func (m *MockConnector) updateWord(wordID int64, update func(*entity.Word)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.words[wordID]
	if !ok {
		return entity.ErrWordNotFound
	}
	update(w)
	return nil
}

func (m *MockConnector) addWordLocked(word, meaning string, studyID *int64) {
	m.nextID++
	w := &entity.Word{ID: m.nextID, Word: strings.ToLower(word), Meaning: meaning}
	if studyID != nil {
		id := *studyID
		w.StudyID = &id
		if s, ok := m.studies[id]; ok {
			w.StudyTitle = s.Title
		}
	}
	m.words[w.ID] = w
}

func (m *MockConnector) countWordsLocked(studyID int64) int {
	n := 0
	for _, w := range m.words {
		if w.StudyID != nil && *w.StudyID == studyID {
			n++
		}
	}
	return n
}

// mockWords suggests the long words of a text as vocabulary candidates.
func mockWords(text string) []entity.WordPair {
	seen := make(map[string]bool)
	var words []entity.WordPair
	for _, token := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		token = strings.ToLower(token)
		if len([]rune(token)) < 7 || seen[token] {
			continue
		}
		seen[token] = true
		words = append(words, entity.WordPair{Word: token, Meaning: mockDictionary[token]})
	}
	return words
}
