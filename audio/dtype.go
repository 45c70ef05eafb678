// SPDX-License-Identifier: EPL-2.0

package audio

// DType tags the element type of a sample buffer.
type DType int

const (
	Unknown DType = iota
	Int8
	Int16
	Int24
	Int32
	Int64
	Float32
	Float64
)

var dtypeNames = [...]string{
	Unknown: "unknown",
	Int8:    "int8",
	Int16:   "int16",
	Int24:   "int24",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
}

func (d DType) String() string {
	if d < 0 || int(d) >= len(dtypeNames) {
		return dtypeNames[Unknown]
	}
	return dtypeNames[d]
}

// IsFloat reports whether d is a floating point type.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// NativeDType maps a container's bit depth and float flag to a DType.
// Float containers that report 16 bits (some Vorbis decoders do) still
// store float32 internally.
func NativeDType(bitsPerSample int, floatingPoint bool) DType {
	if floatingPoint {
		switch bitsPerSample {
		case 16, 32:
			return Float32
		case 64:
			return Float64
		default:
			return Unknown
		}
	}

	switch bitsPerSample {
	case 8:
		return Int8
	case 16:
		return Int16
	case 24:
		return Int24
	case 32:
		return Int32
	case 64:
		return Int64
	default:
		return Unknown
	}
}
