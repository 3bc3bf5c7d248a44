// Package binview provides forward-only cursors over immutable binary data.
//
// A View is some position within a byte stream, with an optional known upper limit.
// You can never navigate back. Navigating forward only restricts the view by making
// the leading bytes inaccessible. Views are plain values: copying one copies the
// cursor, never the underlying data.
//
// Most methods return an error that tells the caller whether to retry later
// (ErrEndOfStream) or give up (a *ReadError).
//
// Transcribe lengths are ints because the result must fit in memory. Skip and Bound
// take uint64 because the underlying source may be larger than memory.
package binview

// View is the cursor contract. V is the implementation's own type, so Skip and Bound
// hand back a concrete view rather than an interface:
//
//	func parse[V binview.View[V]](v V) error
type View[V any] interface {
	// ReadByte returns the byte at the current position without advancing. It is
	// equivalent to Transcribe(1) followed by At(0).
	ReadByte() (byte, error)

	// Transcribe copies out exactly n bytes from the current position without
	// advancing. If the full range is not available right away it fails with
	// ErrEndOfStream; it never returns a partial result. Transcribing allocates, so
	// use it with care.
	Transcribe(n int) (SmallBuf, error)

	// Skip returns a view n bytes further on. The receiver should not be used
	// afterwards. Skip only fails for permanent reasons, such as skipping strictly
	// past the end of a finite source; landing exactly on the end is fine. It may
	// have side effects for streaming sources, e.g. requesting the next segment.
	Skip(n uint64) (V, error)

	// Bound returns a view that will not read more than n bytes from here. An
	// existing tighter bound is kept. There is no promise that n bytes exist.
	Bound(n uint64) V

	// BoundLen reports the most bytes this view could still yield, if known.
	BoundLen() (int, bool)

	// HintAvailableBytes reports how many bytes can be read right now without I/O,
	// if known. It never exceeds BoundLen.
	HintAvailableBytes() (int, bool)
}

// UnknownHint can be embedded by views that cannot tell how much data is buffered.
type UnknownHint struct{}

func (UnknownHint) HintAvailableBytes() (int, bool) { return 0, false }
