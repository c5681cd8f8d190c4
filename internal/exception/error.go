package exception

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// Error kinds surfaced by the core. Compare with errors.Is.
var (
	ErrConnection        = errors.New("connection error")
	ErrNotConnected      = errors.New("not connected")
	ErrNotFound          = errors.New("not found")
	ErrDownload          = errors.New("download error")
	ErrTooManyRedirects  = fmt.Errorf("%w: too many redirects", ErrDownload)
	ErrExtraction        = errors.New("extraction error")
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrExtraction)
	ErrUpload            = errors.New("upload error")
	ErrJobInProgress     = errors.New("install already in progress")
	ErrInvalidName       = errors.New("invalid app name")
)

// Error carries a kind, a message fit for display and the underlying cause
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// New returns a new *Error of the given kind
func New(kind error, err error, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}

	return e.Msg + ": " + e.Err.Error()
}

// Is matches against the kind chain so ErrUnsupportedFormat is also an
// ErrExtraction
func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *Error) Unwrap() error {
	return e.Err
}
