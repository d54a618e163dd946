package layout

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

const (
	// LatinFamily is the built-in font used for source text and as fallback.
	LatinFamily = "Helvetica"
	// EmbeddedFamily is the registered CJK-capable font.
	EmbeddedFamily = "Malgun"
)

var errNoFontSource = errors.New("no font source configured")

// FontSource fetches the embeddable font file.
type FontSource interface {
	Font(ctx context.Context) ([]byte, error)
}

// FontRegistry embeds a TrueType font under a family name for regular and
// bold styles.
type FontRegistry interface {
	RegisterFont(family string, data []byte) error
}

// FontLoadError reports why the embedded font is unavailable.
type FontLoadError struct {
	Op  string
	Err error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("font %s: %v", e.Op, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}

// Fonts names the families a composer draws with.
type Fonts struct {
	// Latin is used for source sentences, vocabulary words and page numbers.
	Latin string
	// Text is used for the title, translations and meanings.
	Text string
	// Embedded is false when Text fell back to the built-in font.
	Embedded bool
}

// FallbackFonts uses the built-in Latin font everywhere.
func FallbackFonts() Fonts {
	return Fonts{Latin: LatinFamily, Text: LatinFamily}
}

// RegisterFont fetches, decodes and registers the embedded font. Both weights
// point at the same glyph data. On any failure it returns FallbackFonts
// together with a *FontLoadError; callers keep going with the fallback.
func RegisterFont(ctx context.Context, reg FontRegistry, src FontSource) (Fonts, error) {
	if src == nil {
		return FallbackFonts(), &FontLoadError{Op: "fetch", Err: errNoFontSource}
	}

	data, err := src.Font(ctx)
	if err != nil {
		return FallbackFonts(), &FontLoadError{Op: "fetch", Err: err}
	}

	if _, err := sfnt.Parse(data); err != nil {
		return FallbackFonts(), &FontLoadError{Op: "decode", Err: err}
	}

	if err := reg.RegisterFont(EmbeddedFamily, data); err != nil {
		return FallbackFonts(), &FontLoadError{Op: "register", Err: err}
	}

	return Fonts{Latin: LatinFamily, Text: EmbeddedFamily, Embedded: true}, nil
}
