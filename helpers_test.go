// SPDX-License-Identifier: EPL-2.0

package audiofile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/internal/audiotest"
)

// mockRegistry returns a registry holding only format.
func mockRegistry(format *audiotest.MockFormat) *audio.Registry {
	r := audio.NewRegistry()
	r.Register(format)
	return r
}

func newMockFormat() *audiotest.MockFormat {
	return &audiotest.MockFormat{
		FormatName: "Mock file",
		Exts:       []string{".mck"},
		Magic:      []byte("MOCK"),
		Info: audio.StreamInfo{
			SampleRate:    44100,
			NumChannels:   2,
			BitsPerSample: 16,
			Length:        100,
		},
		Caps: audio.Capabilities{
			SampleRates: []int{44100},
			BitDepths:   []int{16},
		},
	}
}

// writeFile creates path with buf as its only block of audio.
func writeFile(t *testing.T, path string, sampleRate float64, buf *audio.Buffer, opts ...Option) {
	t.Helper()

	f, err := Create(path, sampleRate, opts...)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", path, err)
	}
	if err := f.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

// rampInt16 returns a planar (channels, frames) buffer of distinct samples.
func rampInt16(channels, frames int) *audio.Buffer {
	data := make([]int16, channels*frames)
	for c := range channels {
		for i := range frames {
			data[c*frames+i] = int16((i*37 + c*1000) % 30000)
		}
	}
	return audio.MustBuffer(data, channels, frames)
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
