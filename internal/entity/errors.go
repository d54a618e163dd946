package entity

import "errors"

// Domain errors
var (
	// Study errors
	ErrStudyNotFound       = errors.New("study not found")
	ErrStudyNotSaved       = errors.New("study must be saved before organizing vocabulary")
	ErrMalformedParagraphs = errors.New("malformed paragraphs")
	ErrEmptyDocument       = errors.New("document has no paragraphs")

	// Vocabulary errors
	ErrWordNotFound    = errors.New("word not found")
	ErrDuplicateWord   = errors.New("word already in vocabulary")
	ErrWordTooShort    = errors.New("word too short")
	ErrMeaningNotFound = errors.New("meaning not found")

	// Upload errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Export errors
	ErrInvalidVariant = errors.New("invalid export variant")
	ErrExportNotFound = errors.New("export not found")
	ErrArchiveOff     = errors.New("export archive is disabled")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
