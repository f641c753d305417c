package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText     = errors.New("text cannot be empty")
	ErrEmptyBatch    = errors.New("batch must contain at least one text")
	ErrBatchTooLarge = fmt.Errorf("batch exceeds %d texts", MaxBatchSize)
	ErrNoLanguages   = errors.New("language list is empty")
)

// UnsupportedLanguageError is returned for codes missing from the loaded map.
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language code %q", e.Code)
}
