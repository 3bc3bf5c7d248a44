package binview

import "sync/atomic"

// Bytes is implemented by containers that can lend out their contents as an immutable
// byte slice. Views never write through the returned slice.
//
// *bytes.Buffer satisfies Bytes as is.
type Bytes interface {
	Bytes() []byte
}

// Slice adapts a plain byte slice.
type Slice []byte

func (s Slice) Bytes() []byte { return s }

// Box holds a container behind a pointer so views copy a single word.
type Box[T Bytes] struct {
	p *T
}

// NewBox boxes v.
func NewBox[T Bytes](v T) Box[T] {
	return Box[T]{p: &v}
}

func (b Box[T]) Bytes() []byte {
	if b.p == nil {
		return nil
	}
	return (*b.p).Bytes()
}

// Local shares a container between owners on a single goroutine. The reference count
// is not synchronised; use Shared when owners live on different goroutines.
type Local[T Bytes] struct {
	r *localRef[T]
}

type localRef[T Bytes] struct {
	v       T
	refs    int
	release func(T)
}

// NewLocal returns a handle holding the first reference to v. release, if non-nil,
// runs once the last reference is released.
func NewLocal[T Bytes](v T, release func(T)) Local[T] {
	return Local[T]{r: &localRef[T]{v: v, refs: 1, release: release}}
}

// Bytes returns nil for the zero Local.
func (l Local[T]) Bytes() []byte {
	if l.r == nil {
		return nil
	}
	return l.r.v.Bytes()
}

// Clone adds a reference.
func (l Local[T]) Clone() Local[T] {
	if l.r == nil {
		return l
	}
	l.r.refs++
	return l
}

// Release drops a reference. It reports whether this was the last one.
func (l Local[T]) Release() bool {
	if l.r == nil || l.r.refs <= 0 {
		return false
	}
	l.r.refs--
	if l.r.refs > 0 {
		return false
	}
	if l.r.release != nil {
		l.r.release(l.r.v)
	}
	return true
}

func (l Local[T]) Refs() int {
	if l.r == nil {
		return 0
	}
	return l.r.refs
}

// Shared is the goroutine-safe counterpart of Local. The contents are read-only, so a
// view over a Shared handle may be copied to other goroutines freely.
type Shared[T Bytes] struct {
	r *sharedRef[T]
}

type sharedRef[T Bytes] struct {
	v       T
	refs    atomic.Int64
	release func(T)
}

// NewShared returns a goroutine-safe handle holding the first reference to v. release,
// if non-nil, runs once the last reference is released.
func NewShared[T Bytes](v T, release func(T)) Shared[T] {
	r := &sharedRef[T]{v: v, release: release}
	r.refs.Store(1)
	return Shared[T]{r: r}
}

// Bytes returns nil for the zero Shared.
func (s Shared[T]) Bytes() []byte {
	if s.r == nil {
		return nil
	}
	return s.r.v.Bytes()
}

func (s Shared[T]) Clone() Shared[T] {
	if s.r == nil {
		return s
	}
	s.r.refs.Add(1)
	return s
}

func (s Shared[T]) Release() bool {
	if s.r == nil {
		return false
	}
	for {
		cur := s.r.refs.Load()
		if cur <= 0 {
			return false
		}
		if !s.r.refs.CompareAndSwap(cur, cur-1) {
			continue
		}
		if cur > 1 {
			return false
		}
		if s.r.release != nil {
			s.r.release(s.r.v)
		}
		return true
	}
}

func (s Shared[T]) Refs() int64 {
	if s.r == nil {
		return 0
	}
	return s.r.refs.Load()
}
