package huffman

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// MaxCodeSize is the longest Code, in bits, that can be represented.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low-order bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= MaxCodeSize, "size %d > MaxCodeSize %d", size, MaxCodeSize)
	return Code{Size: size, Bits: bits & lowMask(size)}
}

// Append returns the Code formed by adding one bit to the end of this Code.
func (hc Code) Append(bit bool) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "cannot extend a Code of %d bits", hc.Size)
	hc.Bits <<= 1
	if bit {
		hc.Bits |= 1
	}
	hc.Size++
	return hc
}

// Bit returns the i'th bit of this Code, counting from the first bit.
func (hc Code) Bit(i byte) bool {
	assert.Assertf(i < hc.Size, "bit index %d out of range for Code of %d bits", i, hc.Size)
	return (hc.Bits>>(hc.Size-1-i))&1 != 0
}

// IsPrefixOf returns true iff this Code is a prefix of (or equal to) other.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size > other.Size {
		return false
	}
	return other.Bits>>(other.Size-hc.Size) == hc.Bits
}

// PackedLen is the number of bytes needed to hold this Code when packed.
func (hc Code) PackedLen() int {
	return (int(hc.Size) + 7) / 8
}

// Pack returns the bits of this Code packed MSB-first into bytes.  Unused
// trailing bits of the last byte are zero.
func (hc Code) Pack() []byte {
	out := make([]byte, hc.PackedLen())
	if hc.Size == 0 {
		return out
	}
	aligned := hc.Bits << (64 - hc.Size)
	for i := range out {
		out[i] = byte(aligned >> (56 - 8*uint(i)))
	}
	return out
}

// UnpackCode is the inverse of Code.Pack.  Bits of the last byte beyond size
// are ignored.
func UnpackCode(size byte, packed []byte) (Code, error) {
	if size == 0 || size > MaxCodeSize {
		return Code{}, errors.Errorf("invalid code length %d", size)
	}
	expect := (int(size) + 7) / 8
	if len(packed) != expect {
		return Code{}, errors.Errorf("code length %d needs %d packed bytes, got %d", size, expect, len(packed))
	}
	var aligned uint64
	for i, b := range packed {
		aligned |= uint64(b) << (56 - 8*uint(i))
	}
	return Code{Size: size, Bits: aligned >> (64 - size)}, nil
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

func lowMask(size byte) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<size - 1
}
