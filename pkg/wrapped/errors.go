package wrapped

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input bytes are not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoSheets indicates the workbook opened but contains no sheets at all.
var ErrNoSheets = errors.New("workbook has no sheets")

// SectionError describes a recoverable failure in one section parser. It
// is logged by the orchestrator and never escapes Parse: a broken section
// degrades to an absent field on the record.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %q: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// NewSectionError creates a new SectionError.
func NewSectionError(section string, err error) *SectionError {
	return &SectionError{Section: section, Err: err}
}
