package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/myling/study-backend/internal/config"
	"github.com/myling/study-backend/internal/integration/backend"
	"github.com/myling/study-backend/internal/layout"
	"github.com/myling/study-backend/internal/pkg/formatter"
	"github.com/myling/study-backend/internal/pkg/validator"
	"github.com/myling/study-backend/internal/usecase/export"
	"github.com/myling/study-backend/internal/usecase/study"
	"go.uber.org/zap"
)

func newTestApp() (*app, *bytes.Buffer) {
	logger := zap.NewNop()
	v := validator.NewValidator(config.BackendConfig{MaxUploadSize: 1 << 20}, config.ExportConfig{MaxWords: 100})
	studyUC := study.NewUsecase(backend.NewMockConnector(logger), v, logger)
	exportUC := export.NewUsecase(formatter.NewFactory(nil, layout.A4(), false), studyUC, nil, v, "document", logger)

	var out bytes.Buffer
	return &app{ctx: context.Background(), study: studyUC, export: exportUC, out: &out}, &out
}

// run parses args like the binary does and runs the selected command.
func run(t *testing.T, a *app, args ...string) string {
	t.Helper()

	var c cli
	parser, err := kong.New(&c, kong.Name("myling"), kong.Exit(func(int) { t.Fatalf("kong exited on %v", args) }))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	buf := a.out.(*bytes.Buffer)
	buf.Reset()
	if err := kctx.Run(a); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return buf.String()
}

func TestWizardFlow(t *testing.T) {
	a, _ := newTestApp()
	dir := t.TempDir()
	draft := filepath.Join(dir, "draft.json")

	out := run(t, a, "translate", "--text", "Hello world. I study language. Cats sleep.", "--draft", draft)
	if !strings.Contains(out, "[0] Hello world") || !strings.Contains(out, "[2] Cats sleep.") {
		t.Errorf("translate output:\n%s", out)
	}

	out = run(t, a, "reorganize", "2", "--draft", draft)
	if !strings.Contains(out, "----") {
		t.Errorf("reorganize did not split paragraphs:\n%s", out)
	}

	out = run(t, a, "save", "Greetings", "--draft", draft)
	if out != "Saved study 1\n" {
		t.Fatalf("save output = %q", out)
	}

	out = run(t, a, "list")
	if !strings.Contains(out, "Greetings") || !strings.Contains(out, "step 2") {
		t.Errorf("list output:\n%s", out)
	}

	run(t, a, "step", "1")
	out = run(t, a, "open", "1")
	if !strings.HasPrefix(out, "Greetings (step 3)") {
		t.Errorf("open output:\n%s", out)
	}

	out = run(t, a, "vocab", "add", "--study", "1", "  Hello ")
	if !strings.Contains(out, "hello") {
		t.Errorf("vocab add output:\n%s", out)
	}
	out = run(t, a, "vocab", "meaning", "--study", "1", "2")
	if !strings.Contains(out, "안녕") {
		t.Errorf("vocab meaning output:\n%s", out)
	}
	out = run(t, a, "vocab", "toggle", "--study", "1", "2")
	if !strings.HasPrefix(out, "[x]") {
		t.Errorf("vocab toggle output:\n%s", out)
	}

	sheet := filepath.Join(dir, "sheet.md")
	run(t, a, "export", "--study", "1", "--variant", "vocabulary", "--format", "md", "--out", sheet)
	data, err := os.ReadFile(sheet)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Greetings\n") || !strings.Contains(string(data), "- **hello**: 안녕") {
		t.Errorf("export content:\n%s", data)
	}

	run(t, a, "vocab", "reset", "--study", "1")
	out = run(t, a, "vocab", "list", "--study", "1")
	if out != "No words\n" {
		t.Errorf("vocab list after reset = %q", out)
	}

	run(t, a, "delete", "1")
	out = run(t, a, "list")
	if out != "No saved studies\n" {
		t.Errorf("list after delete = %q", out)
	}
}

func TestExportDraft(t *testing.T) {
	a, _ := newTestApp()
	dir := t.TempDir()
	draft := filepath.Join(dir, "draft.json")
	sheet := filepath.Join(dir, "sheet.pdf")

	run(t, a, "translate", "--text", "Languages grow. Everything changes.", "--draft", draft)
	out := run(t, a, "export", "--draft", draft, "--title", "Draft", "--variant", "vocabulary", "--out", sheet)
	if !strings.HasPrefix(out, "Wrote "+sheet) {
		t.Errorf("export output = %q", out)
	}

	data, err := os.ReadFile(sheet)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("export is not a PDF")
	}
}

func TestUploadFirstFileOnly(t *testing.T) {
	a, _ := newTestApp()
	dir := t.TempDir()
	first := filepath.Join(dir, "page1.png")
	second := filepath.Join(dir, "page2.png")
	os.WriteFile(first, []byte("Scanned text."), 0o644)
	os.WriteFile(second, []byte("Ignored."), 0o644)

	out := run(t, a, "upload", first, second)
	if !strings.Contains(out, "1 more ignored") || !strings.Contains(out, "Scanned text.") || strings.Contains(out, "Ignored.") {
		t.Errorf("upload output:\n%s", out)
	}
}
