package study

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// Vocabulary reloads the word list of a study from the backend. A nil
// studyID lists every word.
func (uc *StudyUsecase) Vocabulary(ctx context.Context, studyID *int64) ([]entity.Word, error) {
	words, err := uc.backend.ListWords(ctx, studyID)
	if err != nil {
		return nil, opError(OpLoadVocabulary, err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.vocab.SetDefault(vocabKey(studyID), slices.Clone(words))
	return words, nil
}

// AddWord normalizes and adds a word, then returns the reloaded list. Words
// shorter than three letters and words already in the list are rejected.
func (uc *StudyUsecase) AddWord(ctx context.Context, studyID *int64, word string) ([]entity.Word, error) {
	word, err := validator.NormalizeWord(word)
	if err != nil {
		return nil, err
	}

	current, err := uc.words(ctx, studyID)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(current, func(w entity.Word) bool { return w.Word == word }) {
		return nil, fmt.Errorf("%w: %q", entity.ErrDuplicateWord, word)
	}

	if err := uc.backend.AddWord(ctx, word, "", studyID); err != nil {
		return nil, opError(OpAddWord, err)
	}

	ctxzap.Info(ctx, "word added", zap.String("word", word))

	return uc.Vocabulary(ctx, studyID)
}

// FillMeaning looks the word up in the dictionary and stores the meaning.
func (uc *StudyUsecase) FillMeaning(ctx context.Context, studyID *int64, wordID int64) (*entity.Word, error) {
	current, err := uc.words(ctx, studyID)
	if err != nil {
		return nil, err
	}
	i := indexOf(current, wordID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", entity.ErrWordNotFound, wordID)
	}

	resp, err := uc.backend.FetchMeaning(ctx, current[i].Word)
	if err != nil {
		return nil, opError(OpFetchMeaning, err)
	}
	if !resp.Success || resp.Meaning == "" {
		return nil, opError(OpFetchMeaning, fmt.Errorf("%w: %q", entity.ErrMeaningNotFound, current[i].Word))
	}

	return uc.UpdateMeaning(ctx, studyID, wordID, resp.Meaning)
}

// UpdateMeaning stores a meaning typed by the user.
func (uc *StudyUsecase) UpdateMeaning(ctx context.Context, studyID *int64, wordID int64, meaning string) (*entity.Word, error) {
	if err := uc.backend.UpdateMeaning(ctx, wordID, meaning); err != nil {
		return nil, opError(OpUpdateMeaning, err)
	}

	var updated *entity.Word
	uc.modify(studyID, func(words []entity.Word) []entity.Word {
		if i := indexOf(words, wordID); i >= 0 {
			words[i].Meaning = meaning
			w := words[i]
			updated = &w
		}
		return words
	})
	if updated == nil {
		updated = &entity.Word{ID: wordID, Meaning: meaning}
	}
	return updated, nil
}

// ToggleKnown flips the known flag locally, then on the backend. The local
// flag is restored when the backend call fails.
func (uc *StudyUsecase) ToggleKnown(ctx context.Context, studyID *int64, wordID int64) (*entity.Word, error) {
	if _, err := uc.words(ctx, studyID); err != nil {
		return nil, err
	}

	var (
		toggled entity.Word
		found   bool
	)
	uc.modify(studyID, func(words []entity.Word) []entity.Word {
		if i := indexOf(words, wordID); i >= 0 {
			words[i].Known = !words[i].Known
			toggled, found = words[i], true
		}
		return words
	})
	if !found {
		return nil, fmt.Errorf("%w: %d", entity.ErrWordNotFound, wordID)
	}

	if err := uc.backend.MarkWord(ctx, wordID, toggled.Known); err != nil {
		uc.modify(studyID, func(words []entity.Word) []entity.Word {
			if i := indexOf(words, wordID); i >= 0 {
				words[i].Known = !toggled.Known
			}
			return words
		})
		return nil, opError(OpMarkWord, err)
	}

	return &toggled, nil
}

// DeleteWord removes the word locally, then on the backend. The word is put
// back at its old position when the backend call fails.
func (uc *StudyUsecase) DeleteWord(ctx context.Context, studyID *int64, wordID int64) error {
	if _, err := uc.words(ctx, studyID); err != nil {
		return err
	}

	var (
		removed entity.Word
		pos     = -1
	)
	uc.modify(studyID, func(words []entity.Word) []entity.Word {
		if i := indexOf(words, wordID); i >= 0 {
			removed, pos = words[i], i
			return slices.Delete(words, i, i+1)
		}
		return words
	})
	if pos < 0 {
		return fmt.Errorf("%w: %d", entity.ErrWordNotFound, wordID)
	}

	if err := uc.backend.DeleteWord(ctx, wordID); err != nil {
		uc.modify(studyID, func(words []entity.Word) []entity.Word {
			if indexOf(words, wordID) >= 0 {
				return words
			}
			return slices.Insert(words, min(pos, len(words)), removed)
		})
		return opError(OpDeleteWord, err)
	}

	return nil
}

// ResetVocabulary deletes every word of the list. Words that fail to delete
// stay and the errors are reported together.
func (uc *StudyUsecase) ResetVocabulary(ctx context.Context, studyID *int64) error {
	current, err := uc.words(ctx, studyID)
	if err != nil {
		return err
	}

	var errs []error
	for _, w := range current {
		if err := uc.backend.DeleteWord(ctx, w.ID); err != nil {
			errs = append(errs, fmt.Errorf("word %d: %w", w.ID, err))
		}
	}

	ctxzap.Info(ctx, "vocabulary reset", zap.Int("word_count", len(current)), zap.Int("failed", len(errs)))

	if _, err := uc.Vocabulary(ctx, studyID); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return opError(OpResetVocabulary, errors.Join(errs...))
	}
	return nil
}

// words returns a copy of the cached list, loading it on first use.
func (uc *StudyUsecase) words(ctx context.Context, studyID *int64) ([]entity.Word, error) {
	uc.mu.Lock()
	cached, ok := uc.vocab.Get(vocabKey(studyID))
	uc.mu.Unlock()
	if ok {
		return slices.Clone(cached.([]entity.Word)), nil
	}
	return uc.Vocabulary(ctx, studyID)
}

// modify applies fn to the cached list of a study under the lock.
func (uc *StudyUsecase) modify(studyID *int64, fn func([]entity.Word) []entity.Word) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	key := vocabKey(studyID)
	cached, ok := uc.vocab.Get(key)
	if !ok {
		return
	}
	uc.vocab.SetDefault(key, fn(slices.Clone(cached.([]entity.Word))))
}

func vocabKey(studyID *int64) string {
	if studyID == nil {
		return "all"
	}
	return strconv.FormatInt(*studyID, 10)
}

func indexOf(words []entity.Word, id int64) int {
	return slices.IndexFunc(words, func(w entity.Word) bool { return w.ID == id })
}
