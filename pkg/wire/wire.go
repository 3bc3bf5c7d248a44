// Package wire decodes primitive values from any binview.View.
//
// Every reader returns the decoded value together with the view advanced past it. On
// failure the input view is returned unchanged, so a caller that got
// binview.ErrEndOfStream can retry from the same position once more data arrives.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/rawbytedev/binview"
	"github.com/rawbytedev/binview/internal/common"
)

// ErrVarintOverflow is carried by a *binview.ReadError when a varint runs past ten
// bytes or past 64 bits.
var ErrVarintOverflow = errors.New("varint overflows 64 bits")

// MagicError reports a signature that did not match.
type MagicError struct {
	Want []byte
	Got  []byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("bad magic: want %x, got %x", e.Want, e.Got)
}

// take transcribes n bytes and skips past them.
func take[V binview.View[V]](v V, n int) (binview.SmallBuf, V, error) {
	buf, err := v.Transcribe(n)
	if err != nil {
		return buf, v, err
	}
	next, err := v.Skip(uint64(n))
	if err != nil {
		return binview.SmallBuf{}, v, err
	}
	return buf, next, nil
}

func Uint8[V binview.View[V]](v V) (uint8, V, error) {
	b, err := v.ReadByte()
	if err != nil {
		return 0, v, err
	}
	next, err := v.Skip(1)
	if err != nil {
		return 0, v, err
	}
	return b, next, nil
}

// The common byte orders are matched so decoding stays on concrete methods and the
// transcribed bytes never escape; any other order gets its own copy.

func order16(order binary.ByteOrder, b []byte) uint16 {
	switch order {
	case binary.LittleEndian:
		return binary.LittleEndian.Uint16(b)
	case binary.BigEndian:
		return binary.BigEndian.Uint16(b)
	case binary.NativeEndian:
		return binary.NativeEndian.Uint16(b)
	}
	return order.Uint16(bytes.Clone(b))
}

func order32(order binary.ByteOrder, b []byte) uint32 {
	switch order {
	case binary.LittleEndian:
		return binary.LittleEndian.Uint32(b)
	case binary.BigEndian:
		return binary.BigEndian.Uint32(b)
	case binary.NativeEndian:
		return binary.NativeEndian.Uint32(b)
	}
	return order.Uint32(bytes.Clone(b))
}

func order64(order binary.ByteOrder, b []byte) uint64 {
	switch order {
	case binary.LittleEndian:
		return binary.LittleEndian.Uint64(b)
	case binary.BigEndian:
		return binary.BigEndian.Uint64(b)
	case binary.NativeEndian:
		return binary.NativeEndian.Uint64(b)
	}
	return order.Uint64(bytes.Clone(b))
}

func Uint16[V binview.View[V]](v V, order binary.ByteOrder) (uint16, V, error) {
	buf, next, err := take(v, 2)
	if err != nil {
		return 0, v, err
	}
	a := buf.Array()
	return order16(order, a[:2]), next, nil
}

func Uint32[V binview.View[V]](v V, order binary.ByteOrder) (uint32, V, error) {
	buf, next, err := take(v, 4)
	if err != nil {
		return 0, v, err
	}
	a := buf.Array()
	return order32(order, a[:4]), next, nil
}

func Uint64[V binview.View[V]](v V, order binary.ByteOrder) (uint64, V, error) {
	buf, next, err := take(v, 8)
	if err != nil {
		return 0, v, err
	}
	a := buf.Array()
	return order64(order, a[:8]), next, nil
}

func Float32[V binview.View[V]](v V, order binary.ByteOrder) (float32, V, error) {
	x, next, err := Uint32(v, order)
	if err != nil {
		return 0, v, err
	}
	return math.Float32frombits(x), next, nil
}

func Float64[V binview.View[V]](v V, order binary.ByteOrder) (float64, V, error) {
	x, next, err := Uint64(v, order)
	if err != nil {
		return 0, v, err
	}
	return math.Float64frombits(x), next, nil
}

// Uvarint reads a base-128 varint. When the view can tell how much is buffered, up to
// binview.InlineCap bytes are transcribed at once; longer or unhinted varints go a
// byte at a time.
func Uvarint[V binview.View[V]](v V) (uint64, V, error) {
	if avail, ok := v.HintAvailableBytes(); ok && avail > 0 {
		window := min(avail, binview.InlineCap)
		buf, err := v.Transcribe(window)
		if err == nil {
			a := buf.Array()
			x, n := common.ReadVarUint(a[:window])
			if n > 0 {
				next, err := v.Skip(uint64(n))
				if err != nil {
					return 0, v, err
				}
				return x, next, nil
			}
			// longer than the window; the slow path finishes it or reports overflow
		}
	}
	return uvarintSlow(v)
}

func uvarintSlow[V binview.View[V]](v V) (uint64, V, error) {
	var x uint64
	var s uint
	cur := v
	for i := 0; i < common.MaxVarintLen64; i++ {
		c, next, err := Uint8(cur)
		if err != nil {
			return 0, v, err
		}
		cur = next
		if c < 0x80 {
			if i == common.MaxVarintLen64-1 && c > 1 {
				break
			}
			return x | uint64(c)<<s, cur, nil
		}
		x |= uint64(c&0x7F) << s
		s += 7
	}
	return 0, v, binview.Other(ErrVarintOverflow)
}

// Varint reads a zigzag-encoded signed varint.
func Varint[V binview.View[V]](v V) (int64, V, error) {
	ux, next, err := Uvarint(v)
	if err != nil {
		return 0, v, err
	}
	x := int64(ux >> 1)
	if ux&1 != 0 {
		x = ^x
	}
	return x, next, nil
}

// Bytes copies out the next n bytes.
func Bytes[V binview.View[V]](v V, n int) ([]byte, V, error) {
	buf, next, err := take(v, n)
	if err != nil {
		return nil, v, err
	}
	return buf.Copy(), next, nil
}

// Expect consumes len(magic) bytes and checks they equal magic. A mismatch is a
// structural failure carrying a *MagicError.
func Expect[V binview.View[V]](v V, magic []byte) (V, error) {
	buf, next, err := take(v, len(magic))
	if err != nil {
		return v, err
	}
	if got := buf.Bytes(); !bytes.Equal(got, magic) {
		return v, binview.Other(&MagicError{Want: magic, Got: bytes.Clone(got)})
	}
	return next, nil
}
