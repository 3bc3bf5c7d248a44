package common

import "math"

// MaxVarintLen64 is the longest a 64-bit varint can be on the wire.
const MaxVarintLen64 = 10

// SatAdd returns a+b for non-negative operands, clamped to math.MaxInt.
func SatAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// SatSub returns a-b, clamped at zero.
func SatSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// ToInt narrows a 64-bit count to an int. ok is false when it does not fit.
func ToInt(x uint64) (int, bool) {
	if x > math.MaxInt {
		return 0, false
	}
	return int(x), true
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// n == 0 means b ended before the varint did; n < 0 means the value overflows 64 bits.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == MaxVarintLen64 {
			return 0, -(i + 1)
		}
		if c < 0x80 {
			if i == MaxVarintLen64-1 && c > 1 {
				return 0, -(i + 1)
			}
			return x | uint64(c)<<s, i + 1
		}
		x |= uint64(c&0x7F) << s
		s += 7
	}
	return 0, 0
}

// WriteVarUint appends a varint to buf (allocating if needed).
func WriteVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}
