// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/pcm"
)

// decoder turns FLAC frames into interleaved samples. Frames are decoded
// whole, so the tail of the last one is kept for the next read.
type decoder struct {
	stream   *flac.Stream
	rs       io.ReadSeeker
	channels int

	frameBuf []int32
	pending  []int32
}

func newDecoder(rs io.ReadSeeker) (audio.Reader, error) {
	stream, err := flac.New(pcm.NopCloser(rs))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	bits := int(stream.Info.BitsPerSample)
	if bits < 4 || bits > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	d := &decoder{
		stream:   stream,
		rs:       rs,
		channels: int(stream.Info.NChannels),
	}

	// A zero sample count means unknown unless the stream has no frames.
	if stream.Info.NSamples == 0 {
		switch err := d.next(); {
		case err == nil:
			return nil, ErrUnknownLength
		case !errors.Is(err, io.EOF):
			return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
		}
	}

	info := audio.StreamInfo{
		SampleRate:    float64(stream.Info.SampleRate),
		NumChannels:   d.channels,
		BitsPerSample: bits,
		Length:        int64(stream.Info.NSamples),
		FormatName:    Format{}.Name(),
	}

	return pcm.NewIntReader(info, d), nil
}

func (d *decoder) ReadInts(dst []int32) (int, error) {
	want := len(dst) / d.channels
	done := 0

	for done < want {
		if len(d.pending) == 0 {
			if err := d.next(); err != nil {
				return done, err
			}
			continue
		}

		n := min(want-done, len(d.pending)/d.channels)
		copy(dst[done*d.channels:], d.pending[:n*d.channels])
		d.pending = d.pending[n*d.channels:]
		done += n
	}

	return done, nil
}

// next decodes one frame into pending.
func (d *decoder) next() error {
	f, err := d.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("%w", err)
	}

	size := int(f.BlockSize)
	if cap(d.frameBuf) < size*d.channels {
		d.frameBuf = make([]int32, size*d.channels)
	}
	d.pending = d.frameBuf[:size*d.channels]

	for ch, sub := range f.Subframes[:d.channels] {
		for i, v := range sub.Samples[:size] {
			d.pending[i*d.channels+ch] = v
		}
	}
	return nil
}

// SeekFrame rewinds to the start of the stream and decodes forward.
func (d *decoder) SeekFrame(frame int64) error {
	if _, err := d.rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	stream, err := flac.New(pcm.NopCloser(d.rs))
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	d.stream = stream
	d.pending = nil

	return pcm.DiscardInts(d.ReadInts, d.channels, frame)
}
