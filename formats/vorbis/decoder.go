// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/pcm"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	Length() int64
	SetPosition(int64) error
}

// Format reads Ogg Vorbis streams. Encoding is not supported.
type Format struct{}

var _ audio.Format = Format{}

func (Format) Name() string { return "Ogg-Vorbis file" }

func (Format) Extensions() []string { return []string{".ogg", ".oga"} }

// Capabilities is empty: the format is read-only.
func (Format) Capabilities() audio.Capabilities { return audio.Capabilities{} }

func (Format) NewReader(rs io.ReadSeeker) (audio.Reader, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	return newSource(dec)
}

func (f Format) NewWriter(io.WriteSeeker, audio.WriterConfig) (audio.Writer, error) {
	return nil, fmt.Errorf("%w: %s audio files are not writable", audio.ErrUnsupportedFormat, f.Name())
}

// source adapts the interleaved float output of the decoder.
type source struct {
	dec      oggReader
	channels int
}

func newSource(dec oggReader) (audio.Reader, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, ErrNotVorbisFile
	}

	info := audio.StreamInfo{
		SampleRate:    float64(dec.SampleRate()),
		NumChannels:   channels,
		BitsPerSample: 32,
		FloatingPoint: true,
		Length:        dec.Length(),
		FormatName:    Format{}.Name(),
	}

	return pcm.NewFloatReader(info, &source{dec: dec, channels: channels}), nil
}

func (s *source) ReadFloats(dst []float32) (int, error) {
	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n / s.channels, fmt.Errorf("%w", err)
	}
	return n / s.channels, err
}

func (s *source) SeekFrame(frame int64) error {
	if err := s.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
