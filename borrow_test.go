package binview

import (
	"bytes"
	"encoding/hex"
	"math"
	"os"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type viewVector struct {
	Name       string  `yaml:"name"`
	Data       string  `yaml:"data"`
	Offset     int     `yaml:"offset"`
	Bound      *uint64 `yaml:"bound"`
	Transcribe int     `yaml:"transcribe"`
	Want       string  `yaml:"want"`
	EOS        bool    `yaml:"eos"`
}

func loadVectors(t *testing.T) []viewVector {
	t.Helper()
	raw, err := os.ReadFile("testdata/views.yaml")
	require.NoError(t, err)
	var vs []viewVector
	require.NoError(t, yaml.Unmarshal(raw, &vs))
	require.NotEmpty(t, vs)
	return vs
}

func TestTranscribeVectors(t *testing.T) {
	for _, vec := range loadVectors(t) {
		t.Run(vec.Name, func(t *testing.T) {
			data, err := hex.DecodeString(vec.Data)
			require.NoError(t, err)
			v := NewOffset(Slice(data), vec.Offset)
			if vec.Bound != nil {
				v = v.Bound(*vec.Bound)
			}
			buf, err := v.Transcribe(vec.Transcribe)
			if vec.EOS {
				require.ErrorIs(t, err, ErrEndOfStream)
				require.True(t, IsEndOfStream(err))
				return
			}
			require.NoError(t, err)
			want, err := hex.DecodeString(vec.Want)
			require.NoError(t, err)
			require.Equal(t, want, buf.Copy())
			require.Equal(t, len(want) <= InlineCap, buf.Inline())
		})
	}
}

func TestScenarioFiveBytes(t *testing.T) {
	v := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	buf, err := v.Transcribe(3)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, buf.Copy())

	v, err = v.Skip(3)
	require.NoError(t, err)
	buf, err = v.Transcribe(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x05}, buf.Copy())

	v, err = v.Skip(2)
	require.NoError(t, err)
	_, err = v.Skip(1)
	require.ErrorIs(t, err, ErrEndOfStream)
}

func TestScenarioBoundedSkip(t *testing.T) {
	v := FromBytes(make([]byte, 10)).Bound(4)
	v, err := v.Skip(4)
	require.NoError(t, err)
	n, ok := v.BoundLen()
	require.True(t, ok)
	require.Equal(t, 0, n)
	_, err = v.Skip(1)
	require.ErrorIs(t, err, ErrEndOfStream)
}

func TestReadByteMatchesTranscribe(t *testing.T) {
	condition := func(data []byte, off uint8) bool {
		v := NewOffset(Slice(data), int(off)%(len(data)+2))
		b, errB := v.ReadByte()
		buf, errT := v.Transcribe(1)
		if errB != nil || errT != nil {
			return Equal(errB, errT)
		}
		return b == buf.At(0)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestTranscribeProperty(t *testing.T) {
	condition := func(data []byte, off, k uint8) bool {
		o := int(off) % (len(data) + 1)
		v := NewOffset(Slice(data), o)
		buf, err := v.Transcribe(int(k))
		if o+int(k) <= len(data) {
			return err == nil && bytes.Equal(buf.Copy(), data[o:o+int(k)])
		}
		return IsEndOfStream(err)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestSkipComposition(t *testing.T) {
	condition := func(data []byte, a, b uint8) bool {
		v := FromBytes(data)
		two, err1 := v.Skip(uint64(a))
		if err1 == nil {
			two, err1 = two.Skip(uint64(b))
		}
		one, err2 := v.Skip(uint64(a) + uint64(b))
		if err1 != nil || err2 != nil {
			return err1 != nil && err2 != nil
		}
		x, errX := two.Transcribe(len(two.Remaining()))
		y, errY := one.Transcribe(len(one.Remaining()))
		return two.Offset() == one.Offset() && errX == nil && errY == nil &&
			bytes.Equal(x.Copy(), y.Copy())
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestBoundTightening(t *testing.T) {
	condition := func(n, m uint8) bool {
		data := make([]byte, 300)
		a := FromBytes(data).Bound(uint64(n)).Bound(uint64(m))
		b := FromBytes(data).Bound(uint64(min(n, m)))
		la, _ := a.BoundLen()
		lb, _ := b.BoundLen()
		if la != lb {
			return false
		}
		_, errA := a.Skip(uint64(min(n, m)) + 1)
		_, errB := b.Skip(uint64(min(n, m)) + 1)
		_, errAt := a.Skip(uint64(min(n, m)))
		return IsEndOfStream(errA) && IsEndOfStream(errB) && errAt == nil
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestBoundNeverWidens(t *testing.T) {
	v := FromBytes(make([]byte, 64)).Bound(4).Bound(32)
	n, _ := v.BoundLen()
	assert.Equal(t, 4, n)

	// bounds are relative to the offset they were set at
	v, err := FromBytes(make([]byte, 64)).Bound(10).Skip(6)
	require.NoError(t, err)
	v = v.Bound(100)
	n, _ = v.BoundLen()
	assert.Equal(t, 4, n)
	v = v.Bound(1)
	n, _ = v.BoundLen()
	assert.Equal(t, 1, n)
}

func TestBoundHugeIsNoop(t *testing.T) {
	v := FromBytes(make([]byte, 8)).Bound(math.MaxUint64)
	n, ok := v.BoundLen()
	require.True(t, ok)
	require.Equal(t, 8, n)

	v = FromBytes(make([]byte, 8)).Bound(3).Bound(math.MaxUint64)
	n, _ = v.BoundLen()
	require.Equal(t, 3, n)
}

func TestSkipOverflow(t *testing.T) {
	v := FromBytes(make([]byte, 8))
	_, err := v.Skip(math.MaxUint64)
	require.ErrorIs(t, err, ErrEndOfStream)
	_, err = v.Skip(math.MaxInt64)
	require.ErrorIs(t, err, ErrEndOfStream)
}

func TestSkipLeavesOriginalUsable(t *testing.T) {
	v := FromBytes([]byte{9, 8, 7})
	w, err := v.Skip(2)
	require.NoError(t, err)
	b, err := v.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(9), b)
	b, err = w.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(7), b)
}

func TestReadByteHonoursBound(t *testing.T) {
	v := FromBytes([]byte{1, 2, 3}).Bound(0)
	_, err := v.ReadByte()
	require.ErrorIs(t, err, ErrEndOfStream)
	require.Empty(t, v.Remaining())
}

func TestTranscribeNegative(t *testing.T) {
	_, err := FromBytes([]byte{1}).Transcribe(-1)
	require.Error(t, err)
	require.False(t, IsEndOfStream(err))
	require.ErrorIs(t, err, ErrNegativeLength)
}

func TestHintMatchesBoundLen(t *testing.T) {
	v := NewOffset(Slice([]byte{1, 2, 3, 4, 5, 6}), 1).Bound(3)
	h, okH := v.HintAvailableBytes()
	b, okB := v.BoundLen()
	require.True(t, okH)
	require.True(t, okB)
	require.Equal(t, 3, h)
	require.Equal(t, b, h)

	past := NewOffset(Slice([]byte{1, 2}), 10)
	h, _ = past.HintAvailableBytes()
	require.Equal(t, 0, h)
}

func TestNewOffsetNegative(t *testing.T) {
	v := NewOffset(Slice([]byte{5}), -3)
	require.Equal(t, 0, v.Offset())
	b, err := v.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(5), b)
}

func TestBytesReturnsWholeContainer(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	v, err := FromBytes(data).Skip(2)
	require.NoError(t, err)
	require.Equal(t, data, v.Bytes())
	require.Equal(t, []byte{3, 4}, v.Remaining())
}

func TestTranscribeCopiesOut(t *testing.T) {
	data := []byte{1, 2, 3}
	v := FromBytes(data)
	buf, err := v.Transcribe(3)
	require.NoError(t, err)
	data[0] = 42
	require.Equal(t, byte(1), buf.At(0))
}

func FuzzTranscribe(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5}, 1, 3)
	f.Add([]byte{}, 0, 0)
	f.Fuzz(func(t *testing.T, data []byte, off int, n int) {
		v := NewOffset(Slice(data), off)
		buf, err := v.Transcribe(n)
		switch {
		case n < 0:
			require.ErrorIs(t, err, ErrNegativeLength)
		case err != nil:
			require.True(t, IsEndOfStream(err))
		default:
			start := v.Offset()
			require.Equal(t, data[start:start+n], buf.Copy())
		}
	})
}
