// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audiofile/audio"
)

// mockOggVorbisReader simulates oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32 // interleaved
	pos        int64     // in frames
	seeks      []int64
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return int64(len(m.samples) / m.channels) }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	off := int(m.pos) * m.channels
	if off >= len(m.samples) {
		return 0, io.EOF
	}
	n := copy(buf, m.samples[off:])
	m.pos += int64(n / m.channels)
	return n, nil
}

func (m *mockOggVorbisReader) SetPosition(pos int64) error {
	m.seeks = append(m.seeks, pos)
	m.pos = pos
	return nil
}

func TestFormat_NewReader_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("This is not Ogg Vorbis data"), nil} {
		_, err := Format{}.NewReader(bytes.NewReader(data))
		if !errors.Is(err, ErrNotVorbisFile) {
			t.Errorf("NewReader(%q) error = %v, want ErrNotVorbisFile", data, err)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		frames     int
	}{
		{"mono", 22050, 1, 10},
		{"stereo", 44100, 2, 7},
		{"surround", 48000, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockOggVorbisReader{
				sampleRate: tt.sampleRate,
				channels:   tt.channels,
				samples:    make([]float32, tt.frames*tt.channels),
			}
			r, err := newSource(mock)
			if err != nil {
				t.Fatalf("newSource() error = %v", err)
			}

			info := r.Info()
			if info.SampleRate != float64(tt.sampleRate) {
				t.Errorf("SampleRate = %v, want %d", info.SampleRate, tt.sampleRate)
			}
			if info.NumChannels != tt.channels {
				t.Errorf("NumChannels = %d, want %d", info.NumChannels, tt.channels)
			}
			if !info.FloatingPoint || info.BitsPerSample != 32 {
				t.Errorf("sample format = %d-bit float=%v, want 32-bit float", info.BitsPerSample, info.FloatingPoint)
			}
			if info.Length != int64(tt.frames) {
				t.Errorf("Length = %d, want %d", info.Length, tt.frames)
			}
		})
	}
}

func TestSource_ReadFloat32(t *testing.T) {
	t.Parallel()

	mock := &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   2,
		samples:    []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3},
	}
	r, err := newSource(mock)
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	dst := [][]float32{make([]float32, 3), make([]float32, 3)}
	n, err := r.ReadFloat32(dst, 0)
	if err != nil || n != 3 {
		t.Fatalf("ReadFloat32() = %d, %v, want 3, nil", n, err)
	}
	for i := range 3 {
		if dst[0][i] != mock.samples[2*i] || dst[1][i] != mock.samples[2*i+1] {
			t.Errorf("frame %d = (%v, %v), want (%v, %v)",
				i, dst[0][i], dst[1][i], mock.samples[2*i], mock.samples[2*i+1])
		}
	}
}

func TestSource_SeekUsesSetPosition(t *testing.T) {
	t.Parallel()

	mock := &mockOggVorbisReader{
		sampleRate: 44100,
		channels:   1,
		samples:    []float32{0, 0.25, 0.5, 0.75},
	}
	r, err := newSource(mock)
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	dst := [][]float32{make([]float32, 1)}
	if _, err := r.ReadFloat32(dst, 2); err != nil {
		t.Fatalf("ReadFloat32() error = %v", err)
	}
	if dst[0][0] != 0.5 {
		t.Errorf("frame 2 = %v, want 0.5", dst[0][0])
	}

	// A sequential read does not seek again.
	if _, err := r.ReadFloat32(dst, 3); err != nil {
		t.Fatalf("ReadFloat32() error = %v", err)
	}
	if len(mock.seeks) != 1 || mock.seeks[0] != 2 {
		t.Errorf("seeks = %v, want [2]", mock.seeks)
	}
}

func TestSource_ReadInt32(t *testing.T) {
	t.Parallel()

	mock := &mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: []float32{1, -1, 0}}
	r, err := newSource(mock)
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	dst := [][]int32{make([]int32, 3)}
	if _, err := r.ReadInt32(dst, 0); err != nil {
		t.Fatalf("ReadInt32() error = %v", err)
	}
	want := []int32{2147483647, -2147483647, 0}
	for i := range want {
		if dst[0][i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, dst[0][i], want[i])
		}
	}
}

func TestFormat_ReadOnly(t *testing.T) {
	t.Parallel()

	if (Format{}).Capabilities().Writable() {
		t.Error("Capabilities().Writable() = true, want false")
	}
	if _, err := (Format{}).NewWriter(nil, audio.WriterConfig{}); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("NewWriter() error = %v, want ErrUnsupportedFormat", err)
	}
}

func BenchmarkSource_ReadFloat32(b *testing.B) {
	mock := &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: make([]float32, 2*audio.ChunkFrames)}
	r, _ := newSource(mock)
	dst := [][]float32{make([]float32, audio.ChunkFrames), make([]float32, audio.ChunkFrames)}

	b.ReportAllocs()
	for b.Loop() {
		r.ReadFloat32(dst, 0)
	}
}
