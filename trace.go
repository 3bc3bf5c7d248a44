package binview

import (
	"github.com/sirupsen/logrus"
)

// TraceOptions configures a Traced view.
type TraceOptions struct {
	Logger logrus.FieldLogger // nil means logrus.StandardLogger()
	Level  logrus.Level       // Panic and Fatal fall back to DebugLevel
}

// Traced wraps a view and logs every operation. Behaviour is otherwise identical to
// the wrapped view.
type Traced[V View[V]] struct {
	inner V
	log   logrus.FieldLogger
	level logrus.Level
}

var _ View[Traced[BorrowView[Slice]]] = Traced[BorrowView[Slice]]{}

func NewTraced[V View[V]](v V, opts TraceOptions) Traced[V] {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	level := opts.Level
	if level <= logrus.FatalLevel {
		level = logrus.DebugLevel
	}
	return Traced[V]{inner: v, log: log, level: level}
}

// Unwrap returns the wrapped view.
func (t Traced[V]) Unwrap() V { return t.inner }

func (t Traced[V]) trace(op string, n any, err error) {
	e := t.log.WithFields(logrus.Fields{"op": op, "len": n})
	if err != nil {
		e = e.WithField("err", err)
	}
	e.Log(t.level, "view")
}

func (t Traced[V]) ReadByte() (byte, error) {
	b, err := t.inner.ReadByte()
	t.trace("read_byte", 1, err)
	return b, err
}

func (t Traced[V]) Transcribe(n int) (SmallBuf, error) {
	buf, err := t.inner.Transcribe(n)
	t.trace("transcribe", n, err)
	return buf, err
}

func (t Traced[V]) Skip(n uint64) (Traced[V], error) {
	next, err := t.inner.Skip(n)
	t.trace("skip", n, err)
	if err != nil {
		return t, err
	}
	t.inner = next
	return t, nil
}

func (t Traced[V]) Bound(n uint64) Traced[V] {
	t.inner = t.inner.Bound(n)
	t.trace("bound", n, nil)
	return t
}

func (t Traced[V]) BoundLen() (int, bool) { return t.inner.BoundLen() }

func (t Traced[V]) HintAvailableBytes() (int, bool) { return t.inner.HintAvailableBytes() }
