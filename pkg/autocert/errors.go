package autocert

import (
	"errors"
	"fmt"
)

var (
	ErrNoValidInput    = errors.New("Enter at least one name correctly")
	ErrNameTooLong     = errors.New("Name too long. Retry with a shorter name")
	ErrTemplateNoPages = errors.New("template has no pages")
	ErrUnsupportedFont = errors.New("font was not embedded by this engine")
	ErrColumnNotFound  = errors.New("column not found in CSV header")
	ErrInvalidColor    = errors.New("invalid color")
)

// RenderError reports which name of a batch failed to render.
type RenderError struct {
	// 1-based position in the normalized name list
	Number int
	Name   string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("certificate %d (%q): %v", e.Number, e.Name, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
