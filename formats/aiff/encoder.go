// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/utils"
)

type encoder struct {
	enc  *aiff.Encoder
	info audio.StreamInfo
	buf  *goaudio.IntBuffer

	started bool
}

func newEncoder(ws io.WriteSeeker, cfg audio.WriterConfig) (*encoder, error) {
	caps := Format{}.Capabilities()
	switch {
	case !slices.Contains(caps.SampleRates, cfg.SampleRate):
		return nil, fmt.Errorf("%w: %d", audio.ErrUnsupportedSampleRate, cfg.SampleRate)
	case !slices.Contains(caps.BitDepths, cfg.BitDepth):
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, cfg.BitDepth)
	case cfg.NumChannels <= 0:
		return nil, fmt.Errorf("%w: %d channels", audio.ErrInvalidArgument, cfg.NumChannels)
	}

	return &encoder{
		enc: aiff.NewEncoder(ws, cfg.SampleRate, cfg.BitDepth, cfg.NumChannels),
		info: audio.StreamInfo{
			SampleRate:    float64(cfg.SampleRate),
			NumChannels:   cfg.NumChannels,
			BitsPerSample: cfg.BitDepth,
			FormatName:    Format{}.Name(),
		},
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: cfg.NumChannels, SampleRate: cfg.SampleRate},
			SourceBitDepth: cfg.BitDepth,
		},
	}, nil
}

func (e *encoder) Info() audio.StreamInfo { return e.info }

func (e *encoder) WriteInt32(src [][]int32) error {
	bits := e.info.BitsPerSample
	return write(e, src, func(v int32) int { return utils.FixedToInt(v, bits) })
}

func (e *encoder) WriteFloat32(src [][]float32) error {
	bits := e.info.BitsPerSample
	return write(e, src, func(v float32) int { return utils.Float32ToInt(v, bits) })
}

func write[T int32 | float32](e *encoder, src [][]T, conv func(T) int) error {
	channels := e.info.NumChannels
	if len(src) != channels {
		return fmt.Errorf("%w: got %d channels, want %d", audio.ErrChannelMismatch, len(src), channels)
	}

	frames := len(src[0])
	if cap(e.buf.Data) < frames*channels {
		e.buf.Data = make([]int, frames*channels)
	}
	e.buf.Data = e.buf.Data[:frames*channels]

	for c, plane := range src {
		for i, v := range plane[:frames] {
			e.buf.Data[i*channels+c] = conv(v)
		}
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	e.started = true
	return nil
}

// Flush is not supported: the AIFF encoder only writes chunk sizes on Close.
func (e *encoder) Flush() error {
	return audio.ErrFlushUnsupported
}

func (e *encoder) Close() error {
	if !e.started {
		e.buf.Data = e.buf.Data[:0]
		if err := e.enc.Write(e.buf); err != nil {
			return fmt.Errorf("%w", err)
		}
		e.started = true
	}
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
