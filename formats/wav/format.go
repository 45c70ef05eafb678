// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/ik5/audiofile/audio"
)

// WAVE format tags.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// Format reads and writes RIFF WAVE files. The zero value is ready to use.
type Format struct{}

var _ audio.Format = Format{}

func (Format) Name() string { return "WAV file" }

func (Format) Extensions() []string { return []string{".wav", ".wave", ".bwf"} }

// Capabilities advertises the standard rates, though the encoder accepts
// any positive rate. 32-bit output is written as IEEE float and narrower
// depths as integer PCM.
func (Format) Capabilities() audio.Capabilities {
	return audio.Capabilities{
		SampleRates: slices.Clone(audio.StandardSampleRates),
		BitDepths:   []int{8, 16, 24, 32},
	}
}

func (Format) NewReader(rs io.ReadSeeker) (audio.Reader, error) {
	if err := sniff(rs); err != nil {
		return nil, err
	}
	return newDecoder(rs)
}

func (Format) NewWriter(ws io.WriteSeeker, cfg audio.WriterConfig) (audio.Writer, error) {
	return newEncoder(ws, cfg)
}

// sniff checks the RIFF/WAVE signature and rewinds rs.
func sniff(rs io.ReadSeeker) error {
	var hdr [12]byte
	if _, err := io.ReadFull(rs, hdr[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if !bytes.Equal(hdr[:4], []byte("RIFF")) || !bytes.Equal(hdr[8:12], []byte("WAVE")) {
		return ErrNotWavFile
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
