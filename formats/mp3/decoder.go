// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/pcm"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels      = 2
	bytesPerFrame = 4
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	Length() int64
}

// Format reads MPEG layer 3 streams. Encoding is not supported.
//
// The decoder resynchronizes on anything that looks like a frame header, so
// it also accepts many files that are not MP3. Format implements
// audio.Ambiguous so such content matches are rejected.
type Format struct{}

var (
	_ audio.Format    = Format{}
	_ audio.Ambiguous = Format{}
)

func (Format) Name() string { return "MP3 file" }

func (Format) Extensions() []string { return []string{".mp3"} }

func (Format) Ambiguous() bool { return true }

// Capabilities is empty: the format is read-only.
func (Format) Capabilities() audio.Capabilities { return audio.Capabilities{} }

func (Format) NewReader(rs io.ReadSeeker) (audio.Reader, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	return newSource(dec)
}

func (f Format) NewWriter(io.WriteSeeker, audio.WriterConfig) (audio.Writer, error) {
	return nil, fmt.Errorf("%w: %s audio files are not writable", audio.ErrUnsupportedFormat, f.Name())
}

type source struct {
	dec mp3Reader
	buf []byte
}

func newSource(dec mp3Reader) (audio.Reader, error) {
	if dec.SampleRate() <= 0 {
		return nil, ErrNotMP3File
	}

	info := audio.StreamInfo{
		SampleRate:    float64(dec.SampleRate()),
		NumChannels:   channels,
		BitsPerSample: 16,
		Length:        max(dec.Length(), 0) / bytesPerFrame,
		FormatName:    Format{}.Name(),
	}

	return pcm.NewIntReader(info, &source{dec: dec}), nil
}

func (s *source) ReadInts(dst []int32) (int, error) {
	frames := len(dst) / channels
	bytesNeeded := frames * bytesPerFrame
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := io.ReadFull(s.dec, s.buf)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	frames = n / bytesPerFrame
	for i := range frames * channels {
		dst[i] = int32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	return frames, err
}

func (s *source) SeekFrame(frame int64) error {
	if _, err := s.dec.Seek(frame*bytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
