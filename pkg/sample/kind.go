// Package sample defines the physical sample encodings supported by the
// aggregation engine, the plane/frame data model that carries them, and the
// codec that converts raw samples to and from the canonical float64 domain
// in which all aggregation arithmetic is performed.
package sample

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned when a sample encoding is not covered by
// the codec table. It is a configuration error: it is always raised before
// any pixel is processed, never mid-scan.
var ErrUnsupportedKind = errors.New("sample: unsupported sample kind")

// Kind identifies one of the supported physical sample encodings.
// Integer kinds store unsigned values of the given bit depth; U10 and U12
// occupy 16 bits of storage with the upper bits zero. Float kinds are IEEE
// half and single precision.
type Kind uint8

const (
	// KindInvalid is the zero value and matches no encoding.
	KindInvalid Kind = iota

	// U8 is an 8-bit unsigned integer sample.
	U8

	// U10 is a 10-bit unsigned integer sample stored in 16 bits.
	U10

	// U12 is a 12-bit unsigned integer sample stored in 16 bits.
	U12

	// U16 is a 16-bit unsigned integer sample.
	U16

	// F16 is an IEEE 754 half-precision float sample.
	F16

	// F32 is an IEEE 754 single-precision float sample.
	F32
)

// Bits returns the sample bit depth: the number of significant bits for
// integer kinds, the full format width for float kinds.
func (k Kind) Bits() int {
	switch k {
	case U8:
		return 8
	case U10:
		return 10
	case U12:
		return 12
	case U16, F16:
		return 16
	case F32:
		return 32
	default:
		return 0
	}
}

// StorageBytes returns the number of bytes one sample occupies in a plane
// buffer.
func (k Kind) StorageBytes() int {
	switch k {
	case U8:
		return 1
	case U10, U12, U16, F16:
		return 2
	case F32:
		return 4
	default:
		return 0
	}
}

// IsFloat reports whether the kind is a floating-point encoding.
func (k Kind) IsFloat() bool {
	return k == F16 || k == F32
}

// IsInteger reports whether the kind is an unsigned integer encoding.
func (k Kind) IsInteger() bool {
	switch k {
	case U8, U10, U12, U16:
		return true
	}
	return false
}

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case U8:
		return "u8"
	case U10:
		return "u10"
	case U12:
		return "u12"
	case U16:
		return "u16"
	case F16:
		return "f16"
	case F32:
		return "f32"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name ("u8", "u10", "u12", "u16", "f16", "f32") to
// its Kind. Unknown names are reported as ErrUnsupportedKind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "u8":
		return U8, nil
	case "u10":
		return U10, nil
	case "u12":
		return U12, nil
	case "u16":
		return U16, nil
	case "f16":
		return F16, nil
	case "f32":
		return F32, nil
	default:
		return KindInvalid, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
	}
}
