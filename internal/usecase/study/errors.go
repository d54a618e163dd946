package study

import "fmt"

// Operation names reported by OperationError.
const (
	OpUpload          = "upload"
	OpTranslate       = "translate"
	OpReorganize      = "reorganize"
	OpSaveStudy       = "save study"
	OpListStudies     = "list studies"
	OpLoadStudy       = "load study"
	OpDeleteStudy     = "delete study"
	OpLoadVocabulary  = "load vocabulary"
	OpAddWord         = "add word"
	OpFetchMeaning    = "fetch meaning"
	OpUpdateMeaning   = "update meaning"
	OpMarkWord        = "mark word"
	OpDeleteWord      = "delete word"
	OpResetVocabulary = "reset vocabulary"
)

// OperationError is a failed backend call, named after the user-facing
// operation it belongs to.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err}
}
