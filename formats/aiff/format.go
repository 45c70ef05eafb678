// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"
	"slices"

	"github.com/ik5/audiofile/audio"
)

// Format reads and writes AIFF files. The zero value is ready to use.
type Format struct{}

var _ audio.Format = Format{}

func (Format) Name() string { return "AIFF file" }

func (Format) Extensions() []string { return []string{".aiff", ".aif", ".aifc"} }

func (Format) Capabilities() audio.Capabilities {
	return audio.Capabilities{
		SampleRates: slices.Clone(audio.StandardSampleRates),
		BitDepths:   []int{8, 16, 24},
	}
}

func (Format) NewReader(rs io.ReadSeeker) (audio.Reader, error) {
	return newDecoder(rs)
}

func (Format) NewWriter(ws io.WriteSeeker, cfg audio.WriterConfig) (audio.Writer, error) {
	return newEncoder(ws, cfg)
}
