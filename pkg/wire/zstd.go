package wire

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/binview"
)

const (
	// DefaultMaxDecoded caps how large a single decompressed frame may grow.
	DefaultMaxDecoded = 64 << 20

	// MaxDecoded is the ceiling for any maxSize passed to Zstd.
	MaxDecoded = 1 << 30
)

// ErrFrameTooLarge is carried by a *binview.ReadError when a frame decodes to more
// than the caller's limit.
var ErrFrameTooLarge = errors.New("zstd frame exceeds size limit")

// One decoder serves every call; per-call limits are checked against the frame.
var sharedDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(MaxDecoded),
	)
})

// Zstd reads n bytes of zstd-compressed data and returns them decompressed. maxSize
// bounds the decoded output; zero means DefaultMaxDecoded and values above MaxDecoded
// are clamped. Corrupt or oversized frames are structural failures.
func Zstd[V binview.View[V]](v V, n int, maxSize int) ([]byte, V, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxDecoded
	}
	maxSize = min(maxSize, MaxDecoded)
	buf, next, err := take(v, n)
	if err != nil {
		return nil, v, err
	}
	frame := buf.Bytes()
	var h zstd.Header
	if h.Decode(frame) == nil && h.HasFCS && h.FrameContentSize > uint64(maxSize) {
		return nil, v, binview.Other(fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, h.FrameContentSize, maxSize))
	}
	dec, err := sharedDecoder()
	if err != nil {
		return nil, v, binview.Other(err)
	}
	out, err := dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, v, binview.Other(fmt.Errorf("zstd frame: %w", err))
	}
	if len(out) > maxSize {
		return nil, v, binview.Other(fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(out), maxSize))
	}
	return out, next, nil
}
