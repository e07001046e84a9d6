package classfile

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure reported for a path or archive entry wraps
// exactly one of these.
var (
	ErrNotAClassfile  = errors.New("not a classfile")
	ErrTruncatedInput = errors.New("truncated classfile header")
	ErrUnreadablePath = errors.New("unreadable path")
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrInvalidVersion is a configuration error, never a scan error.
	ErrInvalidVersion = errors.New("invalid version")
)

// Error attaches a kind and its cause to the path (and, for archive
// members, the entry) that produced it.
type Error struct {
	Path  string
	Entry string
	Kind  error
	Err   error
}

func (e *Error) Error() string {
	where := e.Path
	if e.Entry != "" {
		where += "!" + e.Entry
	}
	return where + ": " + e.reason()
}

func (e *Error) reason() string {
	switch {
	case e.Err == nil:
		return e.Kind.Error()
	case errors.Is(e.Err, e.Kind):
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Kind returns the error kind wrapped by err, or nil if err carries none.
func Kind(err error) error {
	for _, k := range []error{ErrNotAClassfile, ErrTruncatedInput, ErrUnreadablePath, ErrCorruptArchive} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Reason returns a short description of err without the path prefix.
func Reason(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.reason()
	}
	return err.Error()
}
