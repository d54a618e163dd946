// Command myling walks a text through the study wizard from the terminal:
// OCR upload, translation, paragraph reorganization, saving, vocabulary
// upkeep and study sheet export.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/myling/study-backend/internal/builder"
	"github.com/myling/study-backend/internal/usecase/export"
	"github.com/myling/study-backend/internal/usecase/study"
)

// cli defines the command-line interface for myling.
type cli struct {
	Env string `help:"Environment to load (.env.<env>)" default:"local"`

	Upload     UploadCmd     `cmd:"" help:"Extract text from an image or PDF with OCR"`
	Translate  TranslateCmd  `cmd:"" help:"Translate English text into a draft"`
	Reorganize ReorganizeCmd `cmd:"" help:"Regroup the sentences of a draft into paragraphs"`
	Save       SaveCmd       `cmd:"" help:"Save a draft as a study"`
	List       ListCmd       `cmd:"" help:"List saved studies"`
	Open       OpenCmd       `cmd:"" help:"Show a saved study"`
	Step       StepCmd       `cmd:"" help:"Move a saved study on to the vocabulary step"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a study and its words"`
	Vocab      VocabGroup    `cmd:"" help:"Vocabulary operations"`
	Export     ExportCmd     `cmd:"" help:"Export a study sheet as PDF, DOCX or Markdown"`
}

// VocabGroup contains vocabulary operations.
type VocabGroup struct {
	List       VocabListCmd       `cmd:"" help:"List words"`
	Add        VocabAddCmd        `cmd:"" help:"Add a word"`
	Meaning    VocabMeaningCmd    `cmd:"" help:"Look up and store the meaning of a word"`
	SetMeaning VocabSetMeaningCmd `cmd:"" name:"set-meaning" help:"Store a meaning typed by hand"`
	Toggle     VocabToggleCmd     `cmd:"" help:"Flip the known flag of a word"`
	Delete     VocabDeleteCmd     `cmd:"" help:"Delete a word"`
	Reset      VocabResetCmd      `cmd:"" help:"Delete every word of the list"`
}

// app is what every command runs against.
type app struct {
	ctx    context.Context
	study  *study.StudyUsecase
	export *export.ExportUsecase
	out    io.Writer
}

func main() {
	var CLI cli
	kctx := kong.Parse(&CLI,
		kong.Name("myling"),
		kong.Description("MyLing - English study sheets with Korean translation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	services, logger, err := builder.BuildCLI(CLI.Env)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(&app{
		ctx:    context.Background(),
		study:  services.Study,
		export: services.Export,
		out:    os.Stdout,
	})

	services.Close()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, "myling:", err)
		os.Exit(1)
	}
}
