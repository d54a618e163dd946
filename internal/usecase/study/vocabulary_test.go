package study

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myling/study-backend/internal/entity"
)

func wordNames(words []entity.Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Word)
	}
	return out
}

// savedStudy stores the sample translation with the given words and returns
// the usecase, backend and study id.
func savedStudy(t *testing.T, words ...string) (*StudyUsecase, *fakeBackend, int64) {
	t.Helper()
	ctx := context.Background()
	fb := newFakeBackend()
	uc := newTestUsecase(fb)

	id, err := uc.Save(ctx, "Cats", sampleTranslation())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	for _, w := range words {
		if _, err := uc.AddWord(ctx, &id, w); err != nil {
			t.Fatalf("AddWord(%q) error = %v", w, err)
		}
	}
	return uc, fb, id
}

func TestAddWord(t *testing.T) {
	ctx := context.Background()
	uc, _, id := savedStudy(t)

	words, err := uc.AddWord(ctx, &id, "  Hello ")
	if err != nil {
		t.Fatalf("AddWord() error = %v", err)
	}
	if diff := cmp.Diff([]string{"hello"}, wordNames(words)); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}

	if _, err := uc.AddWord(ctx, &id, "HELLO"); !errors.Is(err, entity.ErrDuplicateWord) {
		t.Errorf("AddWord(duplicate) error = %v, want ErrDuplicateWord", err)
	}
	if _, err := uc.AddWord(ctx, &id, "ox"); !errors.Is(err, entity.ErrWordTooShort) {
		t.Errorf("AddWord(short) error = %v, want ErrWordTooShort", err)
	}

	words, _ = uc.Vocabulary(ctx, &id)
	if len(words) != 1 {
		t.Errorf("Vocabulary() = %v, want one word", wordNames(words))
	}
}

func TestFillMeaning(t *testing.T) {
	ctx := context.Background()
	uc, _, id := savedStudy(t, "hello", "zyzzyva")
	words, _ := uc.Vocabulary(ctx, &id)

	got, err := uc.FillMeaning(ctx, &id, words[0].ID)
	if err != nil {
		t.Fatalf("FillMeaning() error = %v", err)
	}
	if got.Meaning != "안녕" {
		t.Errorf("meaning = %q, want 안녕", got.Meaning)
	}

	_, err = uc.FillMeaning(ctx, &id, words[1].ID)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != OpFetchMeaning || !errors.Is(err, entity.ErrMeaningNotFound) {
		t.Errorf("FillMeaning(unknown) error = %v, want fetch meaning / not found", err)
	}

	if _, err := uc.FillMeaning(ctx, &id, 12345); !errors.Is(err, entity.ErrWordNotFound) {
		t.Errorf("FillMeaning(missing) error = %v, want ErrWordNotFound", err)
	}

	stored, _ := uc.Vocabulary(ctx, &id)
	if stored[0].Meaning != "안녕" || stored[1].Meaning != "" {
		t.Errorf("stored meanings = %q, %q", stored[0].Meaning, stored[1].Meaning)
	}
}

func TestToggleKnown(t *testing.T) {
	ctx := context.Background()
	uc, fb, id := savedStudy(t, "hello")
	words, _ := uc.Vocabulary(ctx, &id)
	wordID := words[0].ID

	got, err := uc.ToggleKnown(ctx, &id, wordID)
	if err != nil {
		t.Fatalf("ToggleKnown() error = %v", err)
	}
	if !got.Known {
		t.Error("word not marked known")
	}

	fb.fail["mark"] = errBackend
	if _, err := uc.ToggleKnown(ctx, &id, wordID); !errors.Is(err, errBackend) {
		t.Fatalf("ToggleKnown() error = %v, want backend error", err)
	}

	local, _ := uc.words(ctx, &id)
	if !local[0].Known {
		t.Error("local flag not rolled back after failed toggle")
	}
	remote, _ := fb.MockConnector.ListWords(ctx, &id)
	if !remote[0].Known {
		t.Error("backend flag changed by failed toggle")
	}
}

func TestDeleteWord(t *testing.T) {
	ctx := context.Background()
	uc, fb, id := savedStudy(t, "alpha", "bravo", "charlie")
	words, _ := uc.Vocabulary(ctx, &id)

	fb.fail["delete"] = errBackend
	err := uc.DeleteWord(ctx, &id, words[1].ID)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != OpDeleteWord {
		t.Fatalf("DeleteWord() error = %v, want delete word failure", err)
	}

	local, _ := uc.words(ctx, &id)
	if diff := cmp.Diff([]string{"alpha", "bravo", "charlie"}, wordNames(local)); diff != "" {
		t.Errorf("word not restored in place (-want +got):\n%s", diff)
	}

	delete(fb.fail, "delete")
	if err := uc.DeleteWord(ctx, &id, words[1].ID); err != nil {
		t.Fatalf("DeleteWord() error = %v", err)
	}
	local, _ = uc.words(ctx, &id)
	if diff := cmp.Diff([]string{"alpha", "charlie"}, wordNames(local)); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}

	if err := uc.DeleteWord(ctx, &id, words[1].ID); !errors.Is(err, entity.ErrWordNotFound) {
		t.Errorf("DeleteWord(again) error = %v, want ErrWordNotFound", err)
	}
}

func TestResetVocabulary(t *testing.T) {
	ctx := context.Background()

	t.Run("clears every word", func(t *testing.T) {
		uc, fb, id := savedStudy(t, "alpha", "bravo")
		if err := uc.ResetVocabulary(ctx, &id); err != nil {
			t.Fatalf("ResetVocabulary() error = %v", err)
		}
		remote, _ := fb.MockConnector.ListWords(ctx, &id)
		local, _ := uc.words(ctx, &id)
		if len(remote) != 0 || len(local) != 0 {
			t.Errorf("words left: remote %v, local %v", wordNames(remote), wordNames(local))
		}
	})

	t.Run("reports failures", func(t *testing.T) {
		uc, fb, id := savedStudy(t, "alpha", "bravo")
		fb.fail["delete"] = errBackend

		err := uc.ResetVocabulary(ctx, &id)
		var opErr *OperationError
		if !errors.As(err, &opErr) || opErr.Op != OpResetVocabulary || !errors.Is(err, errBackend) {
			t.Fatalf("ResetVocabulary() error = %v", err)
		}
		local, _ := uc.words(ctx, &id)
		if len(local) != 2 {
			t.Errorf("local words = %v, want both kept", wordNames(local))
		}
	})
}
