package main

import (
	"fmt"

	"github.com/myling/study-backend/internal/entity"
)

// VocabScope selects one study's list, or every word when Study is zero.
type VocabScope struct {
	Study int64 `help:"Study id, all words when omitted"`
}

func (s VocabScope) id() *int64 {
	if s.Study == 0 {
		return nil
	}
	return &s.Study
}

type VocabListCmd struct {
	VocabScope `embed:""`
}

func (c *VocabListCmd) Run(a *app) error {
	words, err := a.study.Vocabulary(a.ctx, c.id())
	if err != nil {
		return err
	}
	printWords(a, words)
	return nil
}

type VocabAddCmd struct {
	VocabScope `embed:""`
	Word string `arg:"" help:"Word to add"`
}

func (c *VocabAddCmd) Run(a *app) error {
	words, err := a.study.AddWord(a.ctx, c.id(), c.Word)
	if err != nil {
		return err
	}
	printWords(a, words)
	return nil
}

type VocabMeaningCmd struct {
	VocabScope `embed:""`
	ID int64 `arg:"" help:"Word id"`
}

func (c *VocabMeaningCmd) Run(a *app) error {
	w, err := a.study.FillMeaning(a.ctx, c.id(), c.ID)
	if err != nil {
		return err
	}
	printWords(a, []entity.Word{*w})
	return nil
}

type VocabSetMeaningCmd struct {
	VocabScope `embed:""`
	ID      int64  `arg:"" help:"Word id"`
	Meaning string `arg:"" help:"Meaning to store"`
}

func (c *VocabSetMeaningCmd) Run(a *app) error {
	w, err := a.study.UpdateMeaning(a.ctx, c.id(), c.ID, c.Meaning)
	if err != nil {
		return err
	}
	printWords(a, []entity.Word{*w})
	return nil
}

type VocabToggleCmd struct {
	VocabScope `embed:""`
	ID int64 `arg:"" help:"Word id"`
}

func (c *VocabToggleCmd) Run(a *app) error {
	w, err := a.study.ToggleKnown(a.ctx, c.id(), c.ID)
	if err != nil {
		return err
	}
	printWords(a, []entity.Word{*w})
	return nil
}

type VocabDeleteCmd struct {
	VocabScope `embed:""`
	ID int64 `arg:"" help:"Word id"`
}

func (c *VocabDeleteCmd) Run(a *app) error {
	if err := a.study.DeleteWord(a.ctx, c.id(), c.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted word %d\n", c.ID)
	return nil
}

type VocabResetCmd struct {
	VocabScope `embed:""`
}

func (c *VocabResetCmd) Run(a *app) error {
	if err := a.study.ResetVocabulary(a.ctx, c.id()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Vocabulary cleared")
	return nil
}

func printWords(a *app, words []entity.Word) {
	if len(words) == 0 {
		fmt.Fprintln(a.out, "No words")
		return
	}

	for _, w := range words {
		mark := " "
		if w.Known {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %4d  %-20s  %s\n", mark, w.ID, w.Word, w.Meaning)
	}
}
