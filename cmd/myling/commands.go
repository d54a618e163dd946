package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/myling/study-backend/internal/entity"
)

// UploadCmd sends a file to OCR. Only the first file of a batch is read.
type UploadCmd struct {
	Files []string `arg:"" help:"Image or PDF files" type:"existingfile"`
	Out   string   `help:"Write the extracted text to this file" type:"path"`
}

func (c *UploadCmd) Run(a *app) error {
	// OCR takes one file; the rest of a batch is only reported.
	path := c.Files[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(c.Files) > 1 {
		fmt.Fprintf(a.out, "Only %s is sent to OCR, %d more ignored\n", path, len(c.Files)-1)
	}

	files := []*entity.UploadFile{{
		Filename: filepath.Base(path),
		Size:     int64(len(content)),
		Content:  content,
	}}
	text, err := a.study.Upload(a.ctx, files)
	if err != nil {
		return err
	}

	if c.Out != "" {
		return os.WriteFile(c.Out, []byte(text), 0o644)
	}
	fmt.Fprintln(a.out, text)
	return nil
}

// TranslateCmd translates a text and writes the result as a draft file.
type TranslateCmd struct {
	Text  string `help:"Text to translate" xor:"input"`
	File  string `help:"Read the text from this file" type:"existingfile" xor:"input"`
	Draft string `help:"Draft file to write" type:"path" default:"draft.json"`
}

func (c *TranslateCmd) Run(a *app) error {
	if c.Text == "" && c.File == "" {
		return fmt.Errorf("one of --text or --file is required")
	}

	text := c.Text
	if c.File != "" {
		raw, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("read %s: %w", c.File, err)
		}
		text = string(raw)
	}

	tr, err := a.study.Translate(a.ctx, text)
	if err != nil {
		return err
	}

	if err := writeDraft(c.Draft, tr); err != nil {
		return err
	}
	printParagraphs(a, tr.Paragraphs)
	fmt.Fprintf(a.out, "\n%d words suggested, draft written to %s\n", len(tr.Words), c.Draft)
	return nil
}

// ReorganizeCmd regroups the sentences of a draft. Boundaries are the
// flattened sentence indices where a new paragraph starts.
type ReorganizeCmd struct {
	Boundaries []int  `arg:"" help:"Sentence indices that start a paragraph"`
	Draft      string `help:"Draft file to update" type:"existingfile" default:"draft.json"`
}

func (c *ReorganizeCmd) Run(a *app) error {
	draft, err := readDraft(c.Draft)
	if err != nil {
		return err
	}

	tr, err := a.study.Reorganize(a.ctx, draft.Paragraphs, c.Boundaries)
	if err != nil {
		return err
	}
	if len(tr.Words) == 0 {
		tr.Words = draft.Words
	}

	if err := writeDraft(c.Draft, tr); err != nil {
		return err
	}
	printParagraphs(a, tr.Paragraphs)
	return nil
}

// SaveCmd stores a draft as a new study.
type SaveCmd struct {
	Title string `arg:"" help:"Study title"`
	Draft string `help:"Draft file to save" type:"existingfile" default:"draft.json"`
}

func (c *SaveCmd) Run(a *app) error {
	draft, err := readDraft(c.Draft)
	if err != nil {
		return err
	}

	id, err := a.study.Save(a.ctx, c.Title, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved study %d\n", id)
	return nil
}

// ListCmd lists saved studies.
type ListCmd struct{}

func (c *ListCmd) Run(a *app) error {
	studies, err := a.study.ListStudies(a.ctx)
	if err != nil {
		return err
	}
	if len(studies) == 0 {
		fmt.Fprintln(a.out, "No saved studies")
		return nil
	}

	for _, s := range studies {
		fmt.Fprintf(a.out, "%4d  %-40s  step %d  %3d words  %s\n", s.ID, s.Title, s.CurrentStep, s.WordCount, s.LastStudiedDate)
	}
	return nil
}

// OpenCmd loads a study the way the wizard resumes it.
type OpenCmd struct {
	ID   int64 `arg:"" help:"Study id"`
	Step int   `help:"Step to open at (2 or 3)"`
}

func (c *OpenCmd) Run(a *app) error {
	opened, err := a.study.OpenStudy(a.ctx, c.ID, c.Step)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (step %d)\n", opened.Title, opened.Step)
	if opened.Notice != "" {
		fmt.Fprintf(a.out, "Note: %s\n", opened.Notice)
	}
	fmt.Fprintln(a.out)
	printParagraphs(a, opened.Paragraphs)
	return nil
}

// StepCmd moves a saved study on to the vocabulary step.
type StepCmd struct {
	ID int64 `arg:"" help:"Study id"`
}

func (c *StepCmd) Run(a *app) error {
	if err := a.study.ProceedToVocabulary(a.ctx, &c.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Study %d is at the vocabulary step\n", c.ID)
	return nil
}

// DeleteCmd deletes a study.
type DeleteCmd struct {
	ID int64 `arg:"" help:"Study id"`
}

func (c *DeleteCmd) Run(a *app) error {
	if err := a.study.DeleteStudy(a.ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted study %d\n", c.ID)
	return nil
}

// ExportCmd renders a saved study or a draft into a file.
type ExportCmd struct {
	Study   int64  `help:"Saved study to export" xor:"source"`
	Draft   string `help:"Draft file to export" type:"existingfile" xor:"source"`
	Title   string `help:"Title for a draft export"`
	Variant string `help:"Sheet layout" enum:"translation,vocabulary" default:"translation"`
	Format  string `help:"Output format" enum:"pdf,docx,md" default:"pdf"`
	Out     string `help:"Output path, defaults to the export filename" type:"path"`
}

func (c *ExportCmd) Run(a *app) error {
	if c.Study == 0 && c.Draft == "" {
		return fmt.Errorf("one of --study or --draft is required")
	}

	variant := entity.ExportVariant(c.Variant)
	format := entity.ResultFormat(c.Format)

	var (
		result *entity.Export
		err    error
	)
	if c.Draft != "" {
		draft, rerr := readDraft(c.Draft)
		if rerr != nil {
			return rerr
		}
		result, err = a.export.Export(a.ctx, &entity.ExportRequest{
			Title:      c.Title,
			Paragraphs: draft.Paragraphs,
			Words:      draftWords(draft.Words),
			Variant:    variant,
			Format:     format,
		})
	} else {
		result, err = a.export.ExportStudy(a.ctx, c.Study, variant, format)
	}
	if err != nil {
		return err
	}

	path := c.Out
	if path == "" {
		path = result.Filename
	}
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "Wrote %s (%d bytes)\n", path, result.Size)
	return nil
}

func readDraft(path string) (*entity.Translation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var tr entity.Translation
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", path, err)
	}
	return &tr, nil
}

func writeDraft(path string, tr *entity.Translation) error {
	raw, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// draftWords turns suggested words into vocabulary entries for a draft
// export. Draft words have no backend id, so they are numbered in order.
func draftWords(pairs []entity.WordPair) []entity.Word {
	words := make([]entity.Word, 0, len(pairs))
	for i, p := range pairs {
		words = append(words, entity.Word{ID: int64(i + 1), Word: p.Word, Meaning: p.Meaning})
	}
	return words
}

// printParagraphs prints sentences numbered in flattened order, the same
// numbering reorganize boundaries use.
func printParagraphs(a *app, paragraphs []entity.Paragraph) {
	n := 0
	for pi, p := range paragraphs {
		if pi > 0 {
			fmt.Fprintln(a.out, strings.Repeat("-", 20))
		}
		for _, s := range p.Sentences {
			fmt.Fprintf(a.out, "[%d] %s\n    %s\n", n, s.English, s.Korean)
			n++
		}
	}
}
