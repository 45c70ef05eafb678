// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/utils"
)

const (
	blockSize   = 4096
	maxChannels = 8

	// minBlockSize is the smallest block size a stream info block may
	// declare.
	minBlockSize = 16
	// streamInfoOffset is where the block size fields start: the "fLaC"
	// marker and the metadata block header come first.
	streamInfoOffset = 8
)

// writeSeeker hides Close from the mewkiz encoder, which closes its writer.
type writeSeeker struct {
	io.WriteSeeker
}

// encoder buffers samples until a full block is available. Quality 0
// stores every subframe verbatim; higher levels let the encoder pick
// constant or fixed prediction per subframe.
//
// A block is only written once more than minBlockSize frames follow it, so
// the last block is never shorter than minBlockSize unless the whole stream
// is.
type encoder struct {
	enc      *flac.Encoder
	ws       io.WriteSeeker
	info     audio.StreamInfo
	channels frame.Channels
	frames   int64

	pending [][]int32
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
	case cfg.NumChannels > maxChannels:
		return nil, fmt.Errorf("%w: %d channels", ErrTooManyChannels, cfg.NumChannels)
	case cfg.QualityIndex < 0 || cfg.QualityIndex >= len(QualityOptions):
		return nil, fmt.Errorf("%w: quality index %d", audio.ErrInvalidQuality, cfg.QualityIndex)
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  blockSize,
		BlockSizeMax:  blockSize,
		SampleRate:    uint32(cfg.SampleRate),
		NChannels:     uint8(cfg.NumChannels),
		BitsPerSample: uint8(cfg.BitDepth),
	}

	enc, err := flac.NewEncoder(writeSeeker{ws}, info)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	enc.EnablePredictionAnalysis(cfg.QualityIndex > 0)

	return &encoder{
		enc: enc,
		ws:  ws,
		info: audio.StreamInfo{
			SampleRate:    float64(cfg.SampleRate),
			NumChannels:   cfg.NumChannels,
			BitsPerSample: cfg.BitDepth,
			FormatName:    Format{}.Name(),
		},
		channels: frame.Channels(cfg.NumChannels - 1),
		pending:  make([][]int32, cfg.NumChannels),
	}, nil
}

func (e *encoder) Info() audio.StreamInfo { return e.info }

func (e *encoder) WriteInt32(src [][]int32) error {
	bits := e.info.BitsPerSample
	return write(e, src, func(v int32) int32 { return int32(utils.FixedToInt(v, bits)) })
}

func (e *encoder) WriteFloat32(src [][]float32) error {
	bits := e.info.BitsPerSample
	return write(e, src, func(v float32) int32 { return int32(utils.Float32ToInt(v, bits)) })
}

func write[T int32 | float32](e *encoder, src [][]T, conv func(T) int32) error {
	if len(src) != e.info.NumChannels {
		return fmt.Errorf("%w: got %d channels, want %d", audio.ErrChannelMismatch, len(src), e.info.NumChannels)
	}

	frames := len(src[0])
	for c, plane := range src {
		for _, v := range plane[:frames] {
			e.pending[c] = append(e.pending[c], conv(v))
		}
	}
	e.frames += int64(frames)

	for len(e.pending[0]) >= blockSize+minBlockSize {
		if err := e.writeBlock(blockSize); err != nil {
			return err
		}
	}
	return nil
}

// writeBlock encodes the first n pending frames.
func (e *encoder) writeBlock(n int) error {
	f := &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         uint16(n),
			SampleRate:        uint32(e.info.SampleRate),
			Channels:          e.channels,
			BitsPerSample:     uint8(e.info.BitsPerSample),
		},
		Subframes: make([]*frame.Subframe, len(e.pending)),
	}

	for c := range e.pending {
		samples := slices.Clone(e.pending[c][:n])
		f.Subframes[c] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   samples,
			NSamples:  n,
		}
	}

	if err := e.enc.WriteFrame(f); err != nil {
		return fmt.Errorf("%w", err)
	}

	for c := range e.pending {
		e.pending[c] = append(e.pending[c][:0], e.pending[c][n:]...)
	}
	return nil
}

// Flush is not supported: frames are only complete once a block fills.
func (e *encoder) Flush() error {
	return audio.ErrFlushUnsupported
}

// Close writes the remaining frames as the last block, up to
// blockSize+minBlockSize-1 of them, and lets the encoder rewrite the stream
// info with the sample count and checksum.
func (e *encoder) Close() error {
	if n := len(e.pending[0]); n > 0 {
		if err := e.writeBlock(n); err != nil {
			return err
		}
	}
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if e.frames < minBlockSize {
		return e.patchBlockSizes()
	}
	return nil
}

// patchBlockSizes raises the declared block sizes of a stream shorter than
// minBlockSize, which the encoder records as the size of its only block.
func (e *encoder) patchBlockSizes() error {
	var sizes [4]byte
	binary.BigEndian.PutUint16(sizes[0:], minBlockSize)
	binary.BigEndian.PutUint16(sizes[2:], minBlockSize)

	if _, err := e.ws.Seek(streamInfoOffset, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := e.ws.Write(sizes[:]); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := e.ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
