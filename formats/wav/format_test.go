// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/audiotest"
)

// createWAVFile builds a canonical WAV file around raw sample bytes.
func createWAVFile(tag, sampleRate, channels, bitsPerSample int, data []byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(tag))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}

func int16Data(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func TestFormat_NewReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		channels int
		bits     int
		float    bool
		length   int64
	}{
		{"mono 16-bit", createWAVFile(formatPCM, 8000, 1, 16, int16Data(0, 100, 200, -100, -200, 0)), 1, 16, false, 6},
		{"stereo 16-bit", createWAVFile(formatPCM, 44100, 2, 16, int16Data(1, 2, 3, 4, 5, 6)), 2, 16, false, 3},
		{"8-bit", createWAVFile(formatPCM, 8000, 1, 8, []byte{128, 129, 127}), 1, 8, false, 3},
		{"24-bit", createWAVFile(formatPCM, 48000, 1, 24, make([]byte, 12)), 1, 24, false, 4},
		{"float", createWAVFile(formatIEEEFloat, 48000, 2, 32, make([]byte, 16)), 2, 32, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := Format{}.NewReader(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer r.Close()

			info := r.Info()
			if info.NumChannels != tt.channels {
				t.Errorf("NumChannels = %d, want %d", info.NumChannels, tt.channels)
			}
			if info.BitsPerSample != tt.bits {
				t.Errorf("BitsPerSample = %d, want %d", info.BitsPerSample, tt.bits)
			}
			if info.FloatingPoint != tt.float {
				t.Errorf("FloatingPoint = %v, want %v", info.FloatingPoint, tt.float)
			}
			if info.Length != tt.length {
				t.Errorf("Length = %d, want %d", info.Length, tt.length)
			}
			if info.FormatName != "WAV file" {
				t.Errorf("FormatName = %q, want %q", info.FormatName, "WAV file")
			}
		})
	}
}

func TestFormat_NewReader_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("NOT A WAV FILE DATA"), ErrNotWavFile},
		{"too short", []byte("RIFF"), ErrNotWavFile},
		{"wrong form", append([]byte("RIFF\x24\x00\x00\x00NOPE"), make([]byte, 32)...), ErrNotWavFile},
		{"compressed", createWAVFile(0x55, 8000, 1, 16, int16Data(1, 2)), ErrUnsupportedWavLayout},
		{"12-bit", createWAVFile(formatPCM, 8000, 1, 12, make([]byte, 4)), ErrUnsupportedBitDepth},
		{"64-bit float", createWAVFile(formatIEEEFloat, 8000, 1, 64, make([]byte, 8)), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Format{}.NewReader(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("NewReader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReader_ReadInt32(t *testing.T) {
	t.Parallel()

	data := createWAVFile(formatPCM, 8000, 2, 16, int16Data(1, -1, 2, -2, 3, -3, 4, -4))
	r, err := Format{}.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	dst := [][]int32{make([]int32, 2), make([]int32, 2)}
	n, err := r.ReadInt32(dst, 1)
	if err != nil || n != 2 {
		t.Fatalf("ReadInt32() = %d, %v, want 2, nil", n, err)
	}

	for i, want := range []int32{2, 3} {
		if dst[0][i] != want<<16 {
			t.Errorf("left[%d] = %d, want %d", i, dst[0][i], want<<16)
		}
		if dst[1][i] != -want<<16 {
			t.Errorf("right[%d] = %d, want %d", i, dst[1][i], -want<<16)
		}
	}

	// Past the end the read is clamped.
	n, err = r.ReadInt32(dst, 3)
	if err != nil || n != 1 {
		t.Fatalf("ReadInt32() at tail = %d, %v, want 1, nil", n, err)
	}
	if dst[0][0] != 4<<16 {
		t.Errorf("tail sample = %d, want %d", dst[0][0], 4<<16)
	}
}

func TestReader_EightBitIsSigned(t *testing.T) {
	t.Parallel()

	data := createWAVFile(formatPCM, 8000, 1, 8, []byte{0, 128, 255})
	r, err := Format{}.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	dst := [][]int32{make([]int32, 3)}
	if _, err := r.ReadInt32(dst, 0); err != nil {
		t.Fatalf("ReadInt32() error = %v", err)
	}

	want := []int32{-128 << 24, 0, 127 << 24}
	for i := range want {
		if dst[0][i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, dst[0][i], want[i])
		}
	}
}

func TestReader_Float(t *testing.T) {
	t.Parallel()

	raw := new(bytes.Buffer)
	binary.Write(raw, binary.LittleEndian, []float32{0.5, -0.25, 1})
	data := createWAVFile(formatIEEEFloat, 44100, 1, 32, raw.Bytes())

	r, err := Format{}.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	dst := [][]float32{make([]float32, 3)}
	if _, err := r.ReadFloat32(dst, 0); err != nil {
		t.Fatalf("ReadFloat32() error = %v", err)
	}

	for i, want := range []float32{0.5, -0.25, 1} {
		if dst[0][i] != want {
			t.Errorf("sample[%d] = %v, want %v", i, dst[0][i], want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 16, 24} {
		t.Run(fmt.Sprintf("%d-bit", bits), func(t *testing.T) {
			t.Parallel()

			ws := &audiotest.SeekBuffer{}
			w, err := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 22050, NumChannels: 2, BitDepth: bits})
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}

			left := []int32{0, 1 << 24, -1 << 24, 100 << 24}
			right := []int32{-5 << 24, 5 << 24, 0, -100 << 24}
			if err := w.WriteInt32([][]int32{left, right}); err != nil {
				t.Fatalf("WriteInt32() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			r, err := Format{}.NewReader(bytes.NewReader(ws.Bytes()))
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			if got := r.Info().Length; got != 4 {
				t.Fatalf("Length = %d, want 4", got)
			}

			dst := [][]int32{make([]int32, 4), make([]int32, 4)}
			if _, err := r.ReadInt32(dst, 0); err != nil {
				t.Fatalf("ReadInt32() error = %v", err)
			}
			for i := range left {
				if dst[0][i] != left[i] || dst[1][i] != right[i] {
					t.Errorf("%d-bit frame %d = (%d, %d), want (%d, %d)",
						bits, i, dst[0][i], dst[1][i], left[i], right[i])
				}
			}
		})
	}
}

func TestRoundTrip_OddLength(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 24} {
		t.Run(fmt.Sprintf("%d-bit", bits), func(t *testing.T) {
			t.Parallel()

			ws := &audiotest.SeekBuffer{}
			w, err := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 8000, NumChannels: 1, BitDepth: bits})
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			samples := []int32{10 << 24, 20 << 24, 30 << 24}
			if err := w.WriteInt32([][]int32{samples}); err != nil {
				t.Fatalf("WriteInt32() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			r, err := Format{}.NewReader(bytes.NewReader(ws.Bytes()))
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			if got := r.Info().Length; got != 3 {
				t.Fatalf("Length = %d, want 3", got)
			}

			dst := [][]int32{make([]int32, 8)}
			n, err := r.ReadInt32(dst, 0)
			if err != nil || n != 3 {
				t.Fatalf("ReadInt32() = %d, %v, want 3, nil", n, err)
			}
			for i, want := range samples {
				if dst[0][i] != want {
					t.Errorf("sample[%d] = %d, want %d", i, dst[0][i], want)
				}
			}
		})
	}
}

func TestFormat_NewReader_PaddedDataChunk(t *testing.T) {
	t.Parallel()

	// An odd-sized data chunk followed by its pad byte and another chunk.
	data := createWAVFile(formatPCM, 8000, 1, 8, []byte{128, 138, 148})
	data = append(data, 0)
	data = append(data, "LIST"...)
	data = binary.LittleEndian.AppendUint32(data, 0)
	binary.LittleEndian.PutUint32(data[4:], uint32(len(data)-8))

	r, err := Format{}.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if got := r.Info().Length; got != 3 {
		t.Errorf("Length = %d, want 3", got)
	}

	dst := [][]int32{make([]int32, 4)}
	n, err := r.ReadInt32(dst, 0)
	if err != nil || n != 3 {
		t.Fatalf("ReadInt32() = %d, %v, want 3, nil", n, err)
	}
	if want := int32(20) << 24; dst[0][2] != want {
		t.Errorf("sample[2] = %d, want %d", dst[0][2], want)
	}
}

func TestRoundTrip_Float32(t *testing.T) {
	t.Parallel()

	ws := &audiotest.SeekBuffer{}
	w, err := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 48000, NumChannels: 1, BitDepth: 32})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if !w.Info().FloatingPoint {
		t.Fatal("32-bit writer should store IEEE float")
	}

	samples := []float32{0, 0.5, -0.5, 0.123}
	if err := w.WriteFloat32([][]float32{samples}); err != nil {
		t.Fatalf("WriteFloat32() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := Format{}.NewReader(bytes.NewReader(ws.Bytes()))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	dst := [][]float32{make([]float32, 4)}
	if _, err := r.ReadFloat32(dst, 0); err != nil {
		t.Fatalf("ReadFloat32() error = %v", err)
	}
	for i := range samples {
		if dst[0][i] != samples[i] {
			t.Errorf("sample[%d] = %v, want %v", i, dst[0][i], samples[i])
		}
	}
}

func TestWriter_FloatToInt(t *testing.T) {
	t.Parallel()

	ws := &audiotest.SeekBuffer{}
	w, err := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 8000, NumChannels: 1, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteFloat32([][]float32{{1, -1, 0, 2}}); err != nil {
		t.Fatalf("WriteFloat32() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data := ws.Bytes()[headerSize:]
	want := []int16{math.MaxInt16, -math.MaxInt16, 0, math.MaxInt16}
	for i, v := range want {
		got := int16(binary.LittleEndian.Uint16(data[i*2:]))
		if got != v {
			t.Errorf("sample[%d] = %d, want %d", i, got, v)
		}
	}
}

func TestWriter_EmptyFile(t *testing.T) {
	t.Parallel()

	ws := &audiotest.SeekBuffer{}
	w, err := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 8000, NumChannels: 1, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if len(ws.Bytes()) != headerSize {
		t.Fatalf("file size = %d, want %d", len(ws.Bytes()), headerSize)
	}
	if got := binary.LittleEndian.Uint32(ws.Bytes()[dataSizeOffset:]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
}

func TestWriter_Flush(t *testing.T) {
	t.Parallel()

	ws := &audiotest.SeekBuffer{}
	w, err := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 8000, NumChannels: 1, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteInt32([][]int32{{1 << 16, 2 << 16, 3 << 16}}); err != nil {
		t.Fatalf("WriteInt32() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	data := ws.Bytes()
	if got := binary.LittleEndian.Uint32(data[dataSizeOffset:]); got != 6 {
		t.Errorf("data size after flush = %d, want 6", got)
	}
	if got := binary.LittleEndian.Uint32(data[riffSizeOffset:]); got != uint32(len(data)-8) {
		t.Errorf("riff size after flush = %d, want %d", got, len(data)-8)
	}

	// The flushed file is readable before Close.
	r, err := Format{}.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() after flush error = %v", err)
	}
	if r.Info().Length != 3 {
		t.Errorf("Length after flush = %d, want 3", r.Info().Length)
	}

	// Writing continues at the end of the file.
	if err := w.WriteInt32([][]int32{{4 << 16}}); err != nil {
		t.Fatalf("WriteInt32() after flush error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := binary.LittleEndian.Uint32(ws.Bytes()[dataSizeOffset:]); got != 8 {
		t.Errorf("data size after close = %d, want 8", got)
	}
}

func TestFormat_NewWriter_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  audio.WriterConfig
		want error
	}{
		{"bit depth", audio.WriterConfig{SampleRate: 8000, NumChannels: 1, BitDepth: 12}, ErrUnsupportedBitDepth},
		{"channels", audio.WriterConfig{SampleRate: 8000, NumChannels: 0, BitDepth: 16}, audio.ErrInvalidArgument},
		{"sample rate", audio.WriterConfig{SampleRate: 0, NumChannels: 1, BitDepth: 16}, audio.ErrUnsupportedSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Format{}.NewWriter(&audiotest.SeekBuffer{}, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewWriter() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriter_ChannelMismatch(t *testing.T) {
	t.Parallel()

	w, err := Format{}.NewWriter(&audiotest.SeekBuffer{}, audio.WriterConfig{SampleRate: 8000, NumChannels: 2, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteInt32([][]int32{{1}}); !errors.Is(err, audio.ErrChannelMismatch) {
		t.Errorf("WriteInt32() error = %v, want ErrChannelMismatch", err)
	}
}

func BenchmarkRoundTrip(b *testing.B) {
	samples := make([]int32, audio.ChunkFrames)
	for i := range samples {
		samples[i] = int32(i%100) << 24
	}

	b.ReportAllocs()
	for b.Loop() {
		ws := &audiotest.SeekBuffer{}
		w, _ := Format{}.NewWriter(ws, audio.WriterConfig{SampleRate: 44100, NumChannels: 1, BitDepth: 16})
		w.WriteInt32([][]int32{samples})
		w.Close()

		r, _ := Format{}.NewReader(bytes.NewReader(ws.Bytes()))
		dst := [][]float32{make([]float32, len(samples))}
		r.ReadFloat32(dst, 0)
	}
}
