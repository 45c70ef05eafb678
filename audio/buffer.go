// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Sample is the set of element types a Buffer can hold.
type Sample interface {
	~int8 | ~int16 | ~int32 | ~float32 | ~float64
}

// Buffer is a dense row-major array of samples with one or two dimensions.
//
// Exactly one of the data slices is populated, selected by DType. Buffers
// returned by reads are channel-major: Shape is (channels, frames).
type Buffer struct {
	DType DType
	Shape []int

	Int8    []int8
	Int16   []int16
	Int32   []int32
	Float32 []float32
	Float64 []float64
}

// NewBuffer wraps data in a Buffer. Without a shape the buffer is 1-D.
func NewBuffer[T Sample](data []T, shape ...int) (*Buffer, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}

	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension in shape %v", ErrInvalidArgument, shape)
		}
		size *= d
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v does not match %d samples", ErrInvalidArgument, shape, len(data))
	}

	b := &Buffer{Shape: append([]int(nil), shape...)}
	switch v := any(data).(type) {
	case []int8:
		b.DType, b.Int8 = Int8, v
	case []int16:
		b.DType, b.Int16 = Int16, v
	case []int32:
		b.DType, b.Int32 = Int32, v
	case []float32:
		b.DType, b.Float32 = Float32, v
	case []float64:
		b.DType, b.Float64 = Float64, v
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDatatype, data)
	}

	return b, nil
}

// MustBuffer is like NewBuffer but panics on error.
func MustBuffer[T Sample](data []T, shape ...int) *Buffer {
	b, err := NewBuffer(data, shape...)
	if err != nil {
		panic(err)
	}
	return b
}

// Zeros allocates a zero-filled channel-major buffer of the given type.
func Zeros(dtype DType, channels, frames int) (*Buffer, error) {
	n := channels * frames
	b := &Buffer{DType: dtype, Shape: []int{channels, frames}}

	switch dtype {
	case Int8:
		b.Int8 = make([]int8, n)
	case Int16:
		b.Int16 = make([]int16, n)
	case Int32:
		b.Int32 = make([]int32, n)
	case Float32:
		b.Float32 = make([]float32, n)
	case Float64:
		b.Float64 = make([]float64, n)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDatatype, dtype)
	}

	return b, nil
}

// Len returns the total number of samples held.
func (b *Buffer) Len() int {
	switch b.DType {
	case Int8:
		return len(b.Int8)
	case Int16:
		return len(b.Int16)
	case Int32:
		return len(b.Int32)
	case Float32:
		return len(b.Float32)
	case Float64:
		return len(b.Float64)
	default:
		return 0
	}
}

// Channels of a channel-major buffer.
func (b *Buffer) Channels() int {
	if len(b.Shape) == 2 {
		return b.Shape[0]
	}
	return 1
}

// Frames of a channel-major buffer.
func (b *Buffer) Frames() int {
	switch len(b.Shape) {
	case 1:
		return b.Shape[0]
	case 2:
		return b.Shape[1]
	default:
		return 0
	}
}

// Channel returns channel c of a channel-major buffer whose element type is
// T, or nil if the types differ or c is out of range.
func Channel[T Sample](b *Buffer, c int) []T {
	if c < 0 || c >= b.Channels() {
		return nil
	}
	data, ok := any(slice(b)).([]T)
	if !ok {
		return nil
	}
	frames := b.Frames()
	return data[c*frames : (c+1)*frames]
}

func slice(b *Buffer) any {
	switch b.DType {
	case Int8:
		return b.Int8
	case Int16:
		return b.Int16
	case Int32:
		return b.Int32
	case Float32:
		return b.Float32
	case Float64:
		return b.Float64
	default:
		return nil
	}
}

// planes splits a channel-major slice into per-channel views.
func planes[T any](data []T, channels, frames int) [][]T {
	out := make([][]T, channels)
	for c := range channels {
		out[c] = data[c*frames : (c+1)*frames]
	}
	return out
}

// Validate checks that the shape has one or two non-negative dimensions
// and matches the number of samples held.
func (b *Buffer) Validate() error {
	if len(b.Shape) != 1 && len(b.Shape) != 2 {
		return fmt.Errorf("%w: number of input dimensions must be 1 or 2 (got %d)", ErrInvalidArgument, len(b.Shape))
	}

	size := 1
	for _, d := range b.Shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension in shape %v", ErrInvalidArgument, b.Shape)
		}
		size *= d
	}
	if size != b.Len() {
		return fmt.Errorf("%w: shape %v does not match %d samples", ErrInvalidArgument, b.Shape, b.Len())
	}
	return nil
}
