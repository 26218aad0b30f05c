package roster

import (
	"errors"
	"fmt"
)

// ErrNoAttendees indicates the file is missing or holds no named rows.
var ErrNoAttendees = errors.New("no attendees found")

// ErrMissingColumn indicates the header lacks the name column.
var ErrMissingColumn = errors.New("missing column")

// ErrUnsupportedFormat indicates a file extension with no reader.
var ErrUnsupportedFormat = errors.New("unsupported attendee file format")

// LoadError wraps a failure to read or parse an attendee file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load attendees from %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
