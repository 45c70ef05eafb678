// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts forward-only format decoders to the random access
// audio.Reader interface.
package pcm

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/utils"
)

// IntDecoder decodes integer samples at the stream's native bit depth.
type IntDecoder interface {
	// ReadInts fills dst with interleaved samples and returns the number of
	// whole frames decoded. (0, io.EOF) or (0, nil) marks the end of data.
	ReadInts(dst []int32) (int, error)
	// SeekFrame positions the decoder at an absolute frame.
	SeekFrame(frame int64) error
}

// FloatDecoder decodes float samples in [-1, 1].
type FloatDecoder interface {
	ReadFloats(dst []float32) (int, error)
	SeekFrame(frame int64) error
}

// Reader implements audio.Reader on top of an IntDecoder or FloatDecoder.
// It tracks the decoder position and only seeks when a read does not
// continue where the previous one stopped. After a failed seek or decode
// the position is unknown (-1) and the next read seeks again.
type Reader struct {
	info   audio.StreamInfo
	ints   IntDecoder
	floats FloatDecoder
	closer io.Closer

	pos  int64
	ibuf []int32
	fbuf []float32
}

var _ audio.Reader = (*Reader)(nil)

// NewIntReader wraps an integer decoder. If dec implements io.Closer it is
// closed along with the Reader.
func NewIntReader(info audio.StreamInfo, dec IntDecoder) *Reader {
	r := &Reader{info: info, ints: dec}
	r.closer, _ = dec.(io.Closer)
	return r
}

// NewFloatReader wraps a float decoder.
func NewFloatReader(info audio.StreamInfo, dec FloatDecoder) *Reader {
	r := &Reader{info: info, floats: dec}
	r.closer, _ = dec.(io.Closer)
	return r
}

func (r *Reader) Info() audio.StreamInfo { return r.info }

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (r *Reader) ReadInt32(dst [][]int32, start int64) (int, error) {
	frames, err := r.prepare(len(dst), frameCount(dst), start)
	if err != nil || frames == 0 {
		return 0, err
	}

	shift := uint(32 - r.info.BitsPerSample)
	return r.decode(frames,
		func(ch, off int, v int32) { dst[ch][off] = v << shift },
		func(ch, off int, v float32) { dst[ch][off] = utils.Float32ToFixed(v) },
	)
}

func (r *Reader) ReadFloat32(dst [][]float32, start int64) (int, error) {
	frames, err := r.prepare(len(dst), frameCount(dst), start)
	if err != nil || frames == 0 {
		return 0, err
	}

	shift := uint(32 - r.info.BitsPerSample)
	return r.decode(frames,
		func(ch, off int, v int32) { dst[ch][off] = float32(v<<shift) * audio.Int32Scale },
		func(ch, off int, v float32) { dst[ch][off] = v },
	)
}

// prepare validates dst, clamps the request to the stream length and moves
// the decoder to start.
func (r *Reader) prepare(channels, frames int, start int64) (int, error) {
	if channels != r.info.NumChannels {
		return 0, fmt.Errorf("%w: got %d channel buffers for a %d-channel stream",
			audio.ErrChannelMismatch, channels, r.info.NumChannels)
	}
	if start < 0 || (r.info.Length > 0 && start > r.info.Length) {
		return 0, fmt.Errorf("%w: frame %d", audio.ErrOutOfRange, start)
	}
	if r.info.Length > 0 {
		frames = int(min(int64(frames), r.info.Length-start))
	}
	if frames == 0 {
		return 0, nil
	}

	if start != r.pos {
		var err error
		if r.ints != nil {
			err = r.ints.SeekFrame(start)
		} else {
			err = r.floats.SeekFrame(start)
		}
		if err != nil {
			r.pos = -1
			return 0, fmt.Errorf("seek to frame %d: %w", start, err)
		}
		r.pos = start
	}

	return frames, nil
}

// decode pulls up to frames frames in chunks of at most audio.ChunkFrames
// and hands every sample to the matching store function, de-interleaved.
func (r *Reader) decode(frames int, storeInt func(ch, off int, v int32), storeFloat func(ch, off int, v float32)) (int, error) {
	channels := r.info.NumChannels
	done := 0

	for done < frames {
		want := min(frames-done, audio.ChunkFrames)

		var (
			got int
			err error
		)
		if r.ints != nil {
			if len(r.ibuf) < want*channels {
				r.ibuf = make([]int32, want*channels)
			}
			got, err = r.ints.ReadInts(r.ibuf[:want*channels])
			for i := range got {
				for ch := range channels {
					storeInt(ch, done+i, r.ibuf[i*channels+ch])
				}
			}
		} else {
			if len(r.fbuf) < want*channels {
				r.fbuf = make([]float32, want*channels)
			}
			got, err = r.floats.ReadFloats(r.fbuf[:want*channels])
			for i := range got {
				for ch := range channels {
					storeFloat(ch, done+i, r.fbuf[i*channels+ch])
				}
			}
		}

		done += got
		r.pos += int64(got)

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			r.pos = -1
			return done, fmt.Errorf("%w", err)
		}
		if got == 0 {
			break
		}
	}

	return done, nil
}

func frameCount[T any](dst [][]T) int {
	if len(dst) == 0 {
		return 0
	}
	return len(dst[0])
}
