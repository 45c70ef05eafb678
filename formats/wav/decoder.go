// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/pcm"
)

// decoder feeds interleaved samples from the data chunk to a pcm.Reader.
// Seeking is a byte offset from the start of the data chunk.
type decoder struct {
	dec        *wav.Decoder
	rs         io.ReadSeeker
	dataStart  int64
	blockAlign int64
	channels   int
	bits       int

	buf *goaudio.IntBuffer
}

func newDecoder(rs io.ReadSeeker) (audio.Reader, error) {
	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 {
		return nil, ErrNotWavFile
	}

	bits := int(dec.BitDepth)
	float := false
	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	case formatIEEEFloat:
		float = true
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}
	switch {
	case float && bits != 32:
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, bits)
	case bits != 8 && bits != 16 && bits != 24 && bits != 32:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}
	dataStart, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	dataSize, err := chunkSize(rs, dataStart)
	if err != nil {
		return nil, err
	}

	d := &decoder{
		dec:        dec,
		rs:         rs,
		dataStart:  dataStart,
		blockAlign: int64(dec.NumChans) * int64(bits/8),
		channels:   int(dec.NumChans),
		bits:       bits,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
		},
	}

	info := audio.StreamInfo{
		SampleRate:    float64(dec.SampleRate),
		NumChannels:   d.channels,
		BitsPerSample: bits,
		FloatingPoint: float,
		Length:        dataSize / d.blockAlign,
		FormatName:    Format{}.Name(),
	}

	if float {
		return pcm.NewFloatReader(info, d), nil
	}
	return pcm.NewIntReader(info, d), nil
}

// chunkSize reads the size field just before the data chunk body. The riff
// parser rounds odd sizes up to include the pad byte, which is not audio.
func chunkSize(rs io.ReadSeeker, dataStart int64) (int64, error) {
	if _, err := rs.Seek(dataStart-4, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	var size uint32
	if err := binary.Read(rs, binary.LittleEndian, &size); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}
	return int64(size), nil
}

func (d *decoder) fill(samples int) (int, error) {
	if cap(d.buf.Data) < samples {
		d.buf.Data = make([]int, samples)
	}
	d.buf.Data = d.buf.Data[:samples]

	n, err := d.dec.PCMBuffer(d.buf)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return n - n%d.channels, nil
}

// ReadInts returns signed samples; 8-bit WAV data is stored unsigned.
func (d *decoder) ReadInts(dst []int32) (int, error) {
	n, err := d.fill(len(dst))
	if err != nil {
		return 0, err
	}

	for i, v := range d.buf.Data[:n] {
		if d.bits == 8 {
			v -= 128
		}
		dst[i] = int32(v)
	}
	return n / d.channels, nil
}

// ReadFloats reinterprets the 32-bit words the decoder returns as IEEE
// floats.
func (d *decoder) ReadFloats(dst []float32) (int, error) {
	n, err := d.fill(len(dst))
	if err != nil {
		return 0, err
	}

	for i, v := range d.buf.Data[:n] {
		dst[i] = math.Float32frombits(uint32(int32(v)))
	}
	return n / d.channels, nil
}

func (d *decoder) SeekFrame(frame int64) error {
	if _, err := d.rs.Seek(d.dataStart+frame*d.blockAlign, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
