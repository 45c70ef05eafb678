// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"time"
)

// StreamInfo describes the sample layout of an open decoder or encoder.
type StreamInfo struct {
	// SampleRate in Hz. Always holds an integral value.
	SampleRate float64
	// NumChannels count (e.g., 1=mono, 2=stereo).
	NumChannels int
	// BitsPerSample as stored by the container (8, 16, 24, 32 or 64).
	BitsPerSample int
	// FloatingPoint is true when the container stores IEEE float samples.
	FloatingPoint bool
	// Length in frames. Only meaningful for readers.
	Length int64
	// FormatName is a human readable container name, e.g. "WAV file".
	FormatName string
}

// DType returns the native sample type described by the info.
func (i StreamInfo) DType() DType {
	return NativeDType(i.BitsPerSample, i.FloatingPoint)
}

// Duration of the stream (Length divided by SampleRate).
func (i StreamInfo) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(i.Length) / i.SampleRate * float64(time.Second))
}

// Reader is a decoder handle for one audio stream.
//
// Both read methods decode len(dst[0]) frames starting at frame start into
// the per-channel slices of dst and return the number of frames decoded.
// dst must hold exactly NumChannels slices of equal length.
type Reader interface {
	Info() StreamInfo
	// ReadInt32 stores integer samples left-aligned in the int32 word, so a
	// 16-bit sample v is returned as v<<16. Float streams are fixed-converted.
	ReadInt32(dst [][]int32, start int64) (int, error)
	// ReadFloat32 stores samples scaled to [-1, 1]. Integer streams are
	// scaled from their left-aligned int32 form by 1/math.MaxInt32.
	ReadFloat32(dst [][]float32, start int64) (int, error)
	// Close releases any resources.
	Close() error
}

// Writer is an encoder handle for one audio stream.
//
// Every slice in src must have the same length; len(src) must equal
// NumChannels.
type Writer interface {
	Info() StreamInfo
	// WriteInt32 encodes left-aligned integer samples.
	WriteInt32(src [][]int32) error
	// WriteFloat32 encodes samples in [-1, 1]. Integer encoders convert to
	// fixed point themselves.
	WriteFloat32(src [][]float32) error
	// Flush forces buffered data to the destination, or returns
	// ErrFlushUnsupported.
	Flush() error
	// Close finalizes the stream. The underlying io.WriteSeeker is not closed.
	Close() error
}

// Capabilities lists what an encoder for a format accepts.
type Capabilities struct {
	SampleRates    []int
	BitDepths      []int
	QualityOptions []string
}

// Writable reports whether the format can be encoded at all.
func (c Capabilities) Writable() bool {
	return len(c.SampleRates) > 0
}

// WriterConfig carries the parameters an encoder is created with.
type WriterConfig struct {
	SampleRate   int
	NumChannels  int
	BitDepth     int
	QualityIndex int
}

// Format is a container/codec variant that can be registered in a Registry.
type Format interface {
	// Name of the format, e.g. "WAV file".
	Name() string
	// Extensions handled by the format, lower case with a leading dot.
	Extensions() []string
	// NewReader constructs a Reader over rs. It returns an error when rs does
	// not hold data of this format.
	NewReader(rs io.ReadSeeker) (Reader, error)
	// Capabilities of the format's encoder. Read-only formats return the
	// zero value.
	Capabilities() Capabilities
	// NewWriter constructs a Writer that encodes into ws.
	NewWriter(ws io.WriteSeeker, cfg WriterConfig) (Writer, error)
}

// Ambiguous is implemented by formats whose decoder accepts bytes that
// belong to other formats. A match found by content sniffing alone is
// rejected unless the file carries one of the format's extensions.
type Ambiguous interface {
	Ambiguous() bool
}

// StandardSampleRates are the rates accepted by encoders that only support
// a fixed set.
var StandardSampleRates = []int{
	8000, 11025, 12000, 16000, 22050, 32000, 44100, 48000,
	88200, 96000, 176400, 192000, 352800, 384000,
}
