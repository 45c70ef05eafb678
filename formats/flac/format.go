// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"io"
	"slices"

	"github.com/ik5/audiofile/audio"
)

// QualityOptions are the encoder compression levels, fastest first.
var QualityOptions = []string{
	"0 (Fastest)",
	"1",
	"2",
	"3",
	"4",
	"5 (Default)",
	"6",
	"7",
	"8 (Highest quality)",
}

// Format reads and writes FLAC streams. The zero value is ready to use.
type Format struct{}

var _ audio.Format = Format{}

func (Format) Name() string { return "FLAC file" }

func (Format) Extensions() []string { return []string{".flac"} }

func (Format) Capabilities() audio.Capabilities {
	return audio.Capabilities{
		SampleRates:    slices.Clone(audio.StandardSampleRates),
		BitDepths:      []int{16, 24},
		QualityOptions: slices.Clone(QualityOptions),
	}
}

func (Format) NewReader(rs io.ReadSeeker) (audio.Reader, error) {
	return newDecoder(rs)
}

func (Format) NewWriter(ws io.WriteSeeker, cfg audio.WriterConfig) (audio.Writer, error) {
	return newEncoder(ws, cfg)
}
