package binview

import (
	"github.com/rawbytedev/binview/internal/common"
)

var _ View[BorrowView[Slice]] = BorrowView[Slice]{}

// BorrowView is a View over a container held entirely in memory.
//
// The bound caps every operation: ReadByte and Transcribe fail past it the same way
// Skip does, even when the container holds more bytes.
type BorrowView[T Bytes] struct {
	handle  T
	offset  int // never beyond math.MaxInt; a u64 skip that doesn't fit fails
	bound   int // offset of the first byte that may not be read
	bounded bool
}

// New returns a view over handle positioned at its first byte with no bound.
func New[T Bytes](handle T) BorrowView[T] {
	return NewOffset(handle, 0)
}

// NewOffset returns an unbounded view over handle positioned at offset. Negative
// offsets are treated as zero.
func NewOffset[T Bytes](handle T, offset int) BorrowView[T] {
	if offset < 0 {
		offset = 0
	}
	return BorrowView[T]{handle: handle, offset: offset}
}

// FromBytes is shorthand for New(Slice(b)).
func FromBytes(b []byte) BorrowView[Slice] {
	return New(Slice(b))
}

// Bytes returns the whole backing slice, including bytes before the cursor.
func (v BorrowView[T]) Bytes() []byte { return v.handle.Bytes() }

// Offset is the absolute position of the next readable byte.
func (v BorrowView[T]) Offset() int { return v.offset }

// Remaining returns the readable window without copying. Callers must not modify it.
func (v BorrowView[T]) Remaining() []byte {
	data := v.handle.Bytes()
	end := v.limit(len(data))
	if v.offset >= end {
		return data[:0:0]
	}
	return data[v.offset:end:end]
}

func (v BorrowView[T]) limit(size int) int {
	if v.bounded && v.bound < size {
		return v.bound
	}
	return size
}

func (v BorrowView[T]) ReadByte() (byte, error) {
	data := v.handle.Bytes()
	if v.offset >= v.limit(len(data)) {
		return 0, ErrEndOfStream
	}
	return data[v.offset], nil
}

func (v BorrowView[T]) Transcribe(n int) (SmallBuf, error) {
	if n < 0 {
		return SmallBuf{}, Other(ErrNegativeLength)
	}
	data := v.handle.Bytes()
	end := common.SatAdd(v.offset, n)
	if end > v.limit(len(data)) {
		return SmallBuf{}, ErrEndOfStream
	}
	return MakeSmallBuf(data[v.offset:end]), nil
}

func (v BorrowView[T]) Skip(n uint64) (BorrowView[T], error) {
	step, ok := common.ToInt(n)
	if !ok {
		return v, ErrEndOfStream
	}
	next := common.SatAdd(v.offset, step)
	if next > v.limit(len(v.handle.Bytes())) {
		return v, ErrEndOfStream
	}
	v.offset = next
	return v, nil
}

func (v BorrowView[T]) Bound(n uint64) BorrowView[T] {
	l, ok := common.ToInt(n)
	if !ok {
		// a bound past addressable memory changes nothing
		return v
	}
	b := common.SatAdd(v.offset, l)
	if !v.bounded || b < v.bound {
		v.bound = b
		v.bounded = true
	}
	return v
}

func (v BorrowView[T]) BoundLen() (int, bool) {
	return common.SatSub(v.limit(len(v.handle.Bytes())), v.offset), true
}

func (v BorrowView[T]) HintAvailableBytes() (int, bool) {
	return v.BoundLen()
}
