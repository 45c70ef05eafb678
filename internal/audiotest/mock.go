// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides in-memory audio.Format, audio.Reader and
// audio.Writer implementations for tests.
package audiotest

import (
	"bytes"
	"errors"
	"io"
	"math"
	"slices"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/utils"
)

// ErrMock is returned by mocks configured to fail.
var ErrMock = errors.New("mock failure")

// MockReader generates samples from a waveform. Samples are produced as
// left-aligned int32 values; ReadFloat32 scales them by audio.Int32Scale.
type MockReader struct {
	info     audio.StreamInfo
	waveform func(frame int64, channel int) int32

	// Err, when set, is returned by every read.
	Err error
	// MaxRequest is the largest number of frames asked for in one read.
	MaxRequest int
	// Reads counts read calls.
	Reads  int
	Closed bool
}

var _ audio.Reader = (*MockReader)(nil)

// NewMockReader creates a reader over frames frames. waveform returns a
// left-aligned sample for (frame, channel).
func NewMockReader(info audio.StreamInfo, waveform func(frame int64, channel int) int32) *MockReader {
	return &MockReader{info: info, waveform: waveform}
}

// NewRampReader returns frame*step+channel in the stream's native width,
// left-aligned.
func NewRampReader(sampleRate float64, channels, bits int, frames int64, step int) *MockReader {
	info := audio.StreamInfo{
		SampleRate:    sampleRate,
		NumChannels:   channels,
		BitsPerSample: bits,
		Length:        frames,
		FormatName:    "mock",
	}
	return NewMockReader(info, func(frame int64, channel int) int32 {
		return utils.IntToFixed(int(frame)*step+channel, bits)
	})
}

// NewSineReader returns a full-scale sine wave in every channel.
func NewSineReader(sampleRate float64, channels, bits int, frames int64, frequency float64) *MockReader {
	info := audio.StreamInfo{
		SampleRate:    sampleRate,
		NumChannels:   channels,
		BitsPerSample: bits,
		FloatingPoint: bits == 64,
		Length:        frames,
		FormatName:    "mock",
	}
	return NewMockReader(info, func(frame int64, _ int) int32 {
		t := float64(frame) / sampleRate
		return utils.Float32ToFixed(float32(math.Sin(2 * math.Pi * frequency * t)))
	})
}

func (m *MockReader) Info() audio.StreamInfo { return m.info }

func (m *MockReader) Close() error {
	m.Closed = true
	return nil
}

func (m *MockReader) ReadInt32(dst [][]int32, start int64) (int, error) {
	return read(m, dst, start, func(v int32) int32 { return v })
}

func (m *MockReader) ReadFloat32(dst [][]float32, start int64) (int, error) {
	return read(m, dst, start, func(v int32) float32 { return float32(v) * audio.Int32Scale })
}

func read[T int32 | float32](m *MockReader, dst [][]T, start int64, conv func(int32) T) (int, error) {
	m.Reads++
	if m.Err != nil {
		return 0, m.Err
	}
	if len(dst) != m.info.NumChannels {
		return 0, audio.ErrChannelMismatch
	}
	if len(dst) == 0 {
		return 0, nil
	}

	m.MaxRequest = max(m.MaxRequest, len(dst[0]))
	n := int(min(int64(len(dst[0])), max(m.info.Length-start, 0)))
	for c := range dst {
		for i := range n {
			dst[c][i] = conv(m.waveform(start+int64(i), c))
		}
	}
	return n, nil
}

// MockWriter records everything written to it.
type MockWriter struct {
	info audio.StreamInfo

	// Ints and Floats hold the written planes, concatenated per channel.
	Ints   [][]int32
	Floats [][]float32
	// Chunks records the frame count of every write call.
	Chunks []int

	// FailOnWrite makes the n-th write call (1-based) return ErrMock.
	FailOnWrite int
	// Flushable selects whether Flush succeeds.
	Flushable bool
	Flushes   int
	Closes    int
}

var _ audio.Writer = (*MockWriter)(nil)

// NewMockWriter creates a writer. Float selects which representation the
// writer asks for.
func NewMockWriter(cfg audio.WriterConfig, float bool) *MockWriter {
	return &MockWriter{
		info: audio.StreamInfo{
			SampleRate:    float64(cfg.SampleRate),
			NumChannels:   cfg.NumChannels,
			BitsPerSample: cfg.BitDepth,
			FloatingPoint: float,
			FormatName:    "mock",
		},
		Ints:   make([][]int32, cfg.NumChannels),
		Floats: make([][]float32, cfg.NumChannels),
	}
}

func (w *MockWriter) Info() audio.StreamInfo { return w.info }

func (w *MockWriter) WriteInt32(src [][]int32) error {
	if err := w.record(src); err != nil {
		return err
	}
	for c, plane := range src {
		w.Ints[c] = append(w.Ints[c], plane...)
	}
	return nil
}

func (w *MockWriter) WriteFloat32(src [][]float32) error {
	if err := w.record(src); err != nil {
		return err
	}
	for c, plane := range src {
		w.Floats[c] = append(w.Floats[c], plane...)
	}
	return nil
}

func (w *MockWriter) record(src any) error {
	var frames int
	switch s := src.(type) {
	case [][]int32:
		frames = len(s[0])
	case [][]float32:
		frames = len(s[0])
	}

	w.Chunks = append(w.Chunks, frames)
	if w.FailOnWrite == len(w.Chunks) {
		return ErrMock
	}
	return nil
}

func (w *MockWriter) Flush() error {
	if !w.Flushable {
		return audio.ErrFlushUnsupported
	}
	w.Flushes++
	return nil
}

func (w *MockWriter) Close() error {
	w.Closes++
	return nil
}

// MockFormat is an audio.Format whose files start with Magic. Readers it
// creates are ramp readers described by Info.
type MockFormat struct {
	FormatName string
	Exts       []string
	Magic      []byte
	Info       audio.StreamInfo
	Caps       audio.Capabilities
	// FloatWriter makes created writers ask for float data.
	FloatWriter bool
	// IsAmbiguous is reported through the audio.Ambiguous interface.
	IsAmbiguous bool

	// Writers holds every writer created, in order.
	Writers []*MockWriter
	// Configs holds the config of every NewWriter call.
	Configs []audio.WriterConfig
}

var (
	_ audio.Format    = (*MockFormat)(nil)
	_ audio.Ambiguous = (*MockFormat)(nil)
)

func (f *MockFormat) Name() string                     { return f.FormatName }
func (f *MockFormat) Extensions() []string             { return f.Exts }
func (f *MockFormat) Capabilities() audio.Capabilities { return f.Caps }
func (f *MockFormat) Ambiguous() bool                  { return f.IsAmbiguous }

func (f *MockFormat) NewReader(rs io.ReadSeeker) (audio.Reader, error) {
	hdr := make([]byte, len(f.Magic))
	if _, err := io.ReadFull(rs, hdr); err != nil || !bytes.Equal(hdr, f.Magic) {
		return nil, ErrMock
	}

	info := f.Info
	info.FormatName = f.FormatName
	return NewMockReader(info, func(frame int64, channel int) int32 {
		return utils.IntToFixed(int(frame)+channel, min(max(info.BitsPerSample, 8), 32))
	}), nil
}

// NewWriter accepts the config when its rate and depth appear in Caps and
// the quality index is within the quality options.
func (f *MockFormat) NewWriter(ws io.WriteSeeker, cfg audio.WriterConfig) (audio.Writer, error) {
	f.Configs = append(f.Configs, cfg)

	switch {
	case !slices.Contains(f.Caps.SampleRates, cfg.SampleRate),
		!slices.Contains(f.Caps.BitDepths, cfg.BitDepth),
		len(f.Caps.QualityOptions) > 0 && cfg.QualityIndex >= len(f.Caps.QualityOptions):
		return nil, ErrMock
	}

	if _, err := ws.Write(f.Magic); err != nil {
		return nil, err
	}

	w := NewMockWriter(cfg, f.FloatWriter)
	f.Writers = append(f.Writers, w)
	return w, nil
}
