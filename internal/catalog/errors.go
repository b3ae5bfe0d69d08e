package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a row whose runtime or rating cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrMissingTitle marks a row with an empty title.
	ErrMissingTitle = errors.New("missing title")
	// ErrDuplicateTitle marks a row whose title was already loaded.
	ErrDuplicateTitle = errors.New("duplicate title")
)

// RecordError describes a dropped catalog row.
type RecordError struct {
	Line  int
	Title string
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	switch {
	case e.Field != "" && e.Title != "":
		return fmt.Sprintf("line %d (%s): %s: %v", e.Line, e.Title, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	case e.Title != "":
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Title, e.Err)
	default:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
