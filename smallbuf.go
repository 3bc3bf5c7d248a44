package binview

// InlineCap is how many bytes a SmallBuf stores without touching the heap.
const InlineCap = 8

// SmallBuf holds the bytes produced by Transcribe. Short reads live inside the value;
// longer ones take a single allocation of exactly the requested size.
type SmallBuf struct {
	n      int
	inline [InlineCap]byte
	heap   []byte
}

// MakeSmallBuf copies src into a new SmallBuf.
func MakeSmallBuf(src []byte) SmallBuf {
	var b SmallBuf
	b.n = len(src)
	if len(src) <= InlineCap {
		copy(b.inline[:], src)
		return b
	}
	b.heap = make([]byte, len(src))
	copy(b.heap, src)
	return b
}

// Bytes returns the contents. For inline buffers the slice aliases b.
func (b *SmallBuf) Bytes() []byte {
	if b.heap != nil {
		return b.heap
	}
	return b.inline[:b.n:b.n]
}

func (b SmallBuf) Len() int { return b.n }

// Array returns the first InlineCap bytes by value, zero padded. Decoding from the
// array keeps b itself off the heap.
func (b SmallBuf) Array() [InlineCap]byte {
	if b.heap != nil {
		var a [InlineCap]byte
		copy(a[:], b.heap)
		return a
	}
	return b.inline
}

// At returns the i-th byte. It panics if i is out of range, like indexing a slice.
func (b SmallBuf) At(i int) byte {
	if i < 0 || i >= b.n {
		panic("binview: SmallBuf index out of range")
	}
	if b.heap != nil {
		return b.heap[i]
	}
	return b.inline[i]
}

// Inline reports whether the contents are stored without a heap allocation.
func (b SmallBuf) Inline() bool { return b.heap == nil }

// Copy returns the contents in a new slice owned by the caller.
func (b SmallBuf) Copy() []byte {
	out := make([]byte, b.n)
	copy(out, b.Bytes())
	return out
}
