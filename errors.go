package binview

import (
	"errors"
)

var (
	// ErrEndOfStream reports that the requested bytes could not be obtained from the
	// current view state. For in-memory views no more bytes will ever arrive; views over
	// streaming sources may succeed on a later attempt.
	ErrEndOfStream = errors.New("end of stream")

	// ErrNegativeLength is carried by a *ReadError when a read asks for fewer than
	// zero bytes.
	ErrNegativeLength = errors.New("negative length")
)

// ReadError carries a structural failure raised by a view or a parser built on top of
// one. Unlike ErrEndOfStream it is never worth retrying.
type ReadError struct {
	Err error
}

// Other wraps err as a structural read failure. Other(nil) is nil.
func Other(err error) error {
	if err == nil {
		return nil
	}
	return &ReadError{Err: err}
}

func (e *ReadError) Error() string {
	return "binview: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsEndOfStream reports whether err is the soft end-of-stream failure. An
// ErrEndOfStream carried inside a *ReadError does not count.
func IsEndOfStream(err error) bool {
	if !errors.Is(err, ErrEndOfStream) {
		return false
	}
	var re *ReadError
	return !errors.As(err, &re)
}

// Equal compares two read failures. Only end-of-stream values are ever equal; a
// structural failure compares unequal to everything, itself included.
func Equal(a, b error) bool {
	return IsEndOfStream(a) && IsEndOfStream(b)
}

// AsOther recovers the concrete failure of type T carried by a structural read error.
func AsOther[T error](err error) (T, bool) {
	var zero T
	var re *ReadError
	if !errors.As(err, &re) {
		return zero, false
	}
	var target T
	if errors.As(re.Err, &target) {
		return target, true
	}
	return zero, false
}
