// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/pcm"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// decoder feeds interleaved samples to a pcm.Reader. The go-audio AIFF
// decoder cannot seek, so SeekFrame reopens the stream and decodes forward.
type decoder struct {
	dec      aiffReader
	reopen   func() (aiffReader, error)
	channels int
	bits     int

	buf *goaudio.IntBuffer
}

func newDecoder(rs io.ReadSeeker) (audio.Reader, error) {
	dec, err := openAiff(rs)
	if err != nil {
		return nil, err
	}

	bits := int(dec.BitDepth)
	if bits != 8 && bits != 16 && bits != 24 && bits != 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	d := &decoder{
		dec: dec,
		reopen: func() (aiffReader, error) {
			if _, err := rs.Seek(0, io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w", err)
			}
			return openAiff(rs)
		},
		channels: format.NumChannels,
		bits:     bits,
		buf:      &goaudio.IntBuffer{Format: format},
	}

	info := audio.StreamInfo{
		SampleRate:    float64(format.SampleRate),
		NumChannels:   format.NumChannels,
		BitsPerSample: bits,
		Length:        int64(dec.NumSampleFrames),
		FormatName:    Format{}.Name(),
	}

	return pcm.NewIntReader(info, d), nil
}

func openAiff(rs io.ReadSeeker) (*aiff.Decoder, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}
	return dec, nil
}

// ReadInts returns signed samples. The int8 round trip keeps 8-bit data
// signed whichever way the codec reports the byte.
func (d *decoder) ReadInts(dst []int32) (int, error) {
	if cap(d.buf.Data) < len(dst) {
		d.buf.Data = make([]int, len(dst))
	}
	d.buf.Data = d.buf.Data[:len(dst)]

	n, err := d.dec.PCMBuffer(d.buf)
	n -= n % d.channels

	for i, v := range d.buf.Data[:n] {
		if d.bits == 8 {
			v = int(int8(uint8(v)))
		}
		dst[i] = int32(v)
	}

	if err != nil && err != io.EOF {
		return n / d.channels, fmt.Errorf("%w", err)
	}
	return n / d.channels, err
}

func (d *decoder) SeekFrame(frame int64) error {
	dec, err := d.reopen()
	if err != nil {
		return err
	}
	d.dec = dec

	return pcm.DiscardInts(d.ReadInts, d.channels, frame)
}
