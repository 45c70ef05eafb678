// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/utils"
)

// Offsets of the size fields in the canonical header wav.Encoder writes.
const (
	riffSizeOffset = 4
	dataSizeOffset = 40
	headerSize     = 44
)

type encoder struct {
	enc  *wav.Encoder
	ws   io.WriteSeeker
	info audio.StreamInfo
	buf  *goaudio.IntBuffer

	started bool
}

func newEncoder(ws io.WriteSeeker, cfg audio.WriterConfig) (*encoder, error) {
	switch {
	case cfg.SampleRate <= 0:
		return nil, fmt.Errorf("%w: sample rate %d", audio.ErrUnsupportedSampleRate, cfg.SampleRate)
	case cfg.NumChannels <= 0 || cfg.NumChannels > math.MaxUint16:
		return nil, fmt.Errorf("%w: %d channels", audio.ErrInvalidArgument, cfg.NumChannels)
	case cfg.BitDepth != 8 && cfg.BitDepth != 16 && cfg.BitDepth != 24 && cfg.BitDepth != 32:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, cfg.BitDepth)
	}

	float := cfg.BitDepth == 32
	tag := formatPCM
	if float {
		tag = formatIEEEFloat
	}

	return &encoder{
		enc: wav.NewEncoder(ws, cfg.SampleRate, cfg.BitDepth, cfg.NumChannels, tag),
		ws:  ws,
		info: audio.StreamInfo{
			SampleRate:    float64(cfg.SampleRate),
			NumChannels:   cfg.NumChannels,
			BitsPerSample: cfg.BitDepth,
			FloatingPoint: float,
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
	return write(e, src, func(v int32) int {
		if e.info.FloatingPoint {
			return int(int32(math.Float32bits(float32(v) * audio.Int32Scale)))
		}
		return utils.FixedToInt(v, bits)
	})
}

func (e *encoder) WriteFloat32(src [][]float32) error {
	bits := e.info.BitsPerSample
	return write(e, src, func(v float32) int {
		if e.info.FloatingPoint {
			return int(int32(math.Float32bits(v)))
		}
		return utils.Float32ToInt(v, bits)
	})
}

// write interleaves src into the go-audio buffer. 8-bit WAV data is stored
// unsigned, so conv's signed result is offset before encoding.
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

	offset := 0
	if e.info.BitsPerSample == 8 {
		offset = 128
	}
	for c, plane := range src {
		for i, v := range plane[:frames] {
			e.buf.Data[i*channels+c] = conv(v) + offset
		}
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	e.started = true
	return nil
}

func (e *encoder) Flush() error {
	if err := e.start(); err != nil {
		return err
	}

	end, err := e.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	written := uint32(e.enc.WrittenBytes)
	if err := e.patch(riffSizeOffset, written-8); err != nil {
		return err
	}
	if err := e.patch(dataSizeOffset, written-headerSize); err != nil {
		return err
	}

	if _, err := e.ws.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	if s, ok := e.ws.(interface{ Sync() error }); ok {
		if err := s.Sync(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

func (e *encoder) Close() error {
	if err := e.start(); err != nil {
		return err
	}
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// start makes sure the header and data chunk marker are on disk. The
// go-audio encoder only writes them with the first buffer.
func (e *encoder) start() error {
	if e.started {
		return nil
	}
	e.buf.Data = e.buf.Data[:0]
	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	e.started = true
	return nil
}

func (e *encoder) patch(offset int64, v uint32) error {
	if _, err := e.ws.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := binary.Write(e.ws, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
