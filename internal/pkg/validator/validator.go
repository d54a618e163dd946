package validator

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/myling/study-backend/internal/config"
	"github.com/myling/study-backend/internal/entity"
)

// AllowedExtensions are the files the OCR endpoint understands.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// MinWordLength is the shortest word accepted into a vocabulary.
const MinWordLength = 3

// Validator checks user input before it reaches the backend.
type Validator struct {
	maxUploadSize int64
	maxWords      int
}

func NewValidator(backend config.BackendConfig, export config.ExportConfig) *Validator {
	return &Validator{
		maxUploadSize: backend.MaxUploadSize,
		maxWords:      export.MaxWords,
	}
}

// ValidateUpload checks the file handed to OCR.
func (v *Validator) ValidateUpload(file *entity.UploadFile) error {
	if file == nil || len(file.Content) == 0 {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: pdf, jpg, jpeg, png, gif, bmp)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.maxUploadSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.maxUploadSize)
	}

	return nil
}

// ValidateExport checks an export request.
func (v *Validator) ValidateExport(req *entity.ExportRequest) error {
	if err := req.Variant.Validate(); err != nil {
		return err
	}
	if err := req.Format.Validate(); err != nil {
		return err
	}
	if len(req.Paragraphs) == 0 {
		return fmt.Errorf("%w: paragraphs", entity.ErrMissingField)
	}
	if v.maxWords > 0 && len(req.Words) > v.maxWords {
		return fmt.Errorf("%w: at most %d words per export, got %d", entity.ErrInvalidParameter, v.maxWords, len(req.Words))
	}
	return nil
}

// NormalizeWord trims and lower-cases a vocabulary word. Words shorter than
// MinWordLength runes are rejected with ErrWordTooShort.
func NormalizeWord(word string) (string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(word) < MinWordLength {
		return "", fmt.Errorf("%w: %q", entity.ErrWordTooShort, word)
	}
	return word, nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
		"/", "",
		"\\", "",
		"\"", "",
		":", "",
		"*", "",
		"?", "",
		"<", "",
		">", "",
		"|", "",
	)
	return replacer.Replace(filename)
}
