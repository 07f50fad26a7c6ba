package sample

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Codec converts between one sample encoding and the canonical float64
// domain. Integer kinds are promoted into a shared integer domain whose
// depth is the widest integer depth in use for the call, so that a
// higher-precision output retains information from lower-precision inputs.
// The promotion is a bit-exact left shift (multiplication by a power of
// two), never a rescale, and the way back truncates toward zero: both match
// the reference output bit for bit.
//
// Float kinds widen losslessly to float64 and narrow on encode; no scaling
// is applied.
type Codec struct {
	kind  Kind
	shift uint
	scale float64
}

// NewCodec builds a codec for the given kind. domainBits is the integer
// canonical depth (the widest integer depth among the call's sources and
// output); it is ignored for float kinds.
func NewCodec(kind Kind, domainBits int) (Codec, error) {
	if kind.IsFloat() {
		return Codec{kind: kind}, nil
	}
	if !kind.IsInteger() {
		return Codec{}, fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
	}
	if domainBits < kind.Bits() || domainBits > 16 {
		return Codec{}, fmt.Errorf("%w: %v cannot map into a %d-bit domain",
			ErrUnsupportedKind, kind, domainBits)
	}
	shift := uint(domainBits - kind.Bits())
	return Codec{kind: kind, shift: shift, scale: float64(uint32(1) << shift)}, nil
}

// CheckCompatible verifies that samples of kind src can be aggregated into
// an output of kind dst: the two must belong to the same family (both
// integer or both float), since integer promotion and float widening do not
// mix.
func CheckCompatible(src, dst Kind) error {
	if src.IsInteger() && dst.IsInteger() {
		return nil
	}
	if src.IsFloat() && dst.IsFloat() {
		return nil
	}
	return fmt.Errorf("%w: cannot aggregate %v sources into %v output", ErrUnsupportedKind, src, dst)
}

// DomainBits returns the canonical integer depth for a call with the given
// source and output kinds: the widest integer depth among them, or 0 when
// the kinds are floating point.
func DomainBits(src, dst Kind) int {
	if !src.IsInteger() {
		return 0
	}
	bits := src.Bits()
	if d := dst.Bits(); d > bits {
		bits = d
	}
	return bits
}

// Decode reads the sample at index x of a plane row and returns its value
// in the canonical domain.
func (c Codec) Decode(row []byte, x int) float64 {
	switch c.kind {
	case U8:
		return float64(row[x]) * c.scale
	case U10, U12, U16:
		return float64(binary.LittleEndian.Uint16(row[2*x:])) * c.scale
	case F16:
		return float64(float16.Frombits(binary.LittleEndian.Uint16(row[2*x:])).Float32())
	case F32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(row[4*x:])))
	default:
		panic("sample: decode with invalid codec")
	}
}

// Encode writes a canonical value into the sample at index x of a plane
// row. Integer kinds truncate toward zero and shift back down to the
// target depth.
func (c Codec) Encode(row []byte, x int, v float64) {
	switch c.kind {
	case U8:
		row[x] = byte(uint32(v) >> c.shift)
	case U10, U12, U16:
		binary.LittleEndian.PutUint16(row[2*x:], uint16(uint32(v)>>c.shift))
	case F16:
		binary.LittleEndian.PutUint16(row[2*x:], float16.Fromfloat32(float32(v)).Bits())
	case F32:
		binary.LittleEndian.PutUint32(row[4*x:], math.Float32bits(float32(v)))
	default:
		panic("sample: encode with invalid codec")
	}
}

// Kind returns the encoding this codec reads and writes.
func (c Codec) Kind() Kind {
	return c.kind
}
