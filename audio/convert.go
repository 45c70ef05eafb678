// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// ChunkFrames is the number of frames converted per step. Temporary
// buffers never exceed ChunkFrames frames per channel, whatever the size of
// the request.
const ChunkFrames = 8192

// Int32Scale converts a full-range int32 sample to [-1, 1].
const Int32Scale = float32(1.0) / float32(math.MaxInt32)

// FixedScale returns the float conversion factor for a left-aligned integer
// sample of the given bit depth.
//
// Decoders left-align narrow samples into the top bits of an int32 and
// leave the low bits zero, so dividing by math.MaxInt32 would slightly
// under-represent them. The divisor is the largest value the effective bit
// width can hold once shifted into position.
func FixedScale(bitsPerSample int) (float32, error) {
	var maxValue int32

	switch bitsPerSample {
	case 24:
		maxValue = 0x7FFFFF00
	case 16:
		maxValue = 0x7FFF0000
	case 8:
		maxValue = 0x7F000000
	default:
		return 0, fmt.Errorf("%w: not sure how to convert data from %d bits per sample to floating point",
			ErrUnsupportedDatatype, bitsPerSample)
	}

	return 1.0 / float32(maxValue), nil
}

// FixedToFloat scales each left-aligned integer in src into dst.
func FixedToFloat(dst []float32, src []int32, scale float32) {
	for i, v := range src[:len(dst)] {
		dst[i] = float32(v) * scale
	}
}

// DecodeFloat32 reads frames frames starting at start from r into a new
// zero-initialized (channels, frames) float32 buffer.
//
// The buffer is pre-zeroed because decoders do not reliably pad short reads
// at the end of a file.
func DecodeFloat32(r Reader, start int64, frames int) (*Buffer, error) {
	info := r.Info()
	channels := info.NumChannels

	out, err := Zeros(Float32, channels, frames)
	if err != nil {
		return nil, err
	}
	if frames == 0 {
		return out, nil
	}
	dst := planes(out.Float32, channels, frames)

	if info.FloatingPoint || info.BitsPerSample == 32 {
		if _, err := r.ReadFloat32(dst, start); err != nil {
			return nil, fmt.Errorf("%w: failed to read from file: %w", ErrIO, err)
		}
		return out, nil
	}

	scale, err := FixedScale(info.BitsPerSample)
	if err != nil {
		return nil, err
	}

	err = decodeFixed(r, start, frames, channels, func(off int, chunk [][]int32) {
		for c := range channels {
			FixedToFloat(dst[c][off:off+len(chunk[c])], chunk[c], scale)
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DecodeRaw reads frames frames starting at start from r into a new
// (channels, frames) buffer of the stream's native type. 24-bit streams are
// returned as left-aligned int32.
func DecodeRaw(r Reader, start int64, frames int) (*Buffer, error) {
	info := r.Info()
	if info.FloatingPoint {
		return DecodeFloat32(r, start, frames)
	}

	channels := info.NumChannels
	var (
		out   *Buffer
		err   error
		store func(c, off int, src []int32)
	)

	switch info.BitsPerSample {
	case 32, 24:
		out, err = Zeros(Int32, channels, frames)
		if err == nil && frames > 0 {
			dst := planes(out.Int32, channels, frames)
			store = func(c, off int, src []int32) { copy(dst[c][off:], src) }
		}
	case 16:
		out, err = Zeros(Int16, channels, frames)
		if err == nil && frames > 0 {
			dst := planes(out.Int16, channels, frames)
			store = func(c, off int, src []int32) {
				for i, v := range src {
					dst[c][off+i] = int16(v >> 16)
				}
			}
		}
	case 8:
		out, err = Zeros(Int8, channels, frames)
		if err == nil && frames > 0 {
			dst := planes(out.Int8, channels, frames)
			store = func(c, off int, src []int32) {
				for i, v := range src {
					dst[c][off+i] = int8(v >> 24)
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: not sure how to read %d-bit audio data", ErrUnsupportedDatatype, info.BitsPerSample)
	}
	if err != nil {
		return nil, err
	}
	if frames == 0 {
		return out, nil
	}

	err = decodeFixed(r, start, frames, channels, func(off int, chunk [][]int32) {
		for c := range channels {
			store(c, off, chunk[c])
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// decodeFixed reads integer frames through a scratch buffer of at most
// ChunkFrames frames per channel and hands each chunk to emit. Frames past
// a short read are left untouched.
func decodeFixed(r Reader, start int64, frames, channels int, emit func(off int, chunk [][]int32)) error {
	size := min(frames, ChunkFrames)
	backing := make([]int32, size*channels)
	scratch := planes(backing, channels, size)
	chunk := make([][]int32, channels)

	for off := 0; off < frames; off += size {
		n := min(frames-off, size)
		for c := range channels {
			chunk[c] = scratch[c][:n]
			clear(chunk[c])
		}

		got, err := r.ReadInt32(chunk, start+int64(off))
		if err != nil {
			return fmt.Errorf("%w: failed to read from file: %w", ErrIO, err)
		}

		emit(off, chunk)
		if got < n {
			break
		}
	}

	return nil
}

// Encode writes a frames-long buffer laid out as layout to w, converting
// each ChunkFrames-sized chunk to the representation the encoder needs.
// Chunks already handed to w stay written when a later chunk fails.
func Encode(w Writer, buf *Buffer, layout Layout, channels, frames int) error {
	conv, err := lookupConversion(buf.DType, w.Info().FloatingPoint)
	if err != nil {
		return err
	}
	if frames == 0 {
		return nil
	}

	src := sourceView{buf: buf, layout: layout, channels: channels, frames: frames}
	sc := newScratch(channels, min(frames, ChunkFrames), conv.float)

	for start := 0; start < frames; start += ChunkFrames {
		n := min(frames-start, ChunkFrames)
		sc.resize(n)
		conv.fill(sc, src, start, n)

		if conv.float {
			err = w.WriteFloat32(sc.floats)
		} else {
			err = w.WriteInt32(sc.ints)
		}
		if err != nil {
			return fmt.Errorf("%w: unable to write data to audio file: %w", ErrIO, err)
		}
	}

	return nil
}
