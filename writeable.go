// SPDX-License-Identifier: EPL-2.0

package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ik5/audiofile/audio"
)

// WriteableFile is an audio file opened for writing.
//
// All methods are safe for concurrent use; calls on one file are
// serialized. Unlike ReadableFile, closing a WriteableFile twice is an
// error.
type WriteableFile struct {
	mtx sync.Mutex

	name   string
	file   *os.File
	writer audio.Writer
	info   audio.StreamInfo
	frames int64

	quality    string
	hasQuality bool
}

// Create creates or truncates path and opens it for writing. The format is
// chosen by the file extension. Channels, bit depth and quality are set
// with WithChannels, WithBitDepth and WithQuality.
func Create(path string, sampleRate float64, opts ...Option) (*WriteableFile, error) {
	o := newOptions(opts)

	switch {
	case math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate != math.Trunc(sampleRate):
		return nil, fmt.Errorf("%w: sample rate must be a whole number (got %v)", audio.ErrInvalidArgument, sampleRate)
	case sampleRate <= 0:
		return nil, fmt.Errorf("%w: sample rate must be greater than zero (got %v)", audio.ErrInvalidArgument, sampleRate)
	case o.channels <= 0:
		return nil, fmt.Errorf("%w: must write at least one channel (got %d)", audio.ErrInvalidArgument, o.channels)
	}

	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%w: no file extension provided; cannot determine format for %q",
			audio.ErrUnsupportedFormat, path)
	}
	format, ok := o.registry.ForExtension(ext)
	if !ok {
		return nil, fmt.Errorf("%w: unable to detect audio format for file extension: %s", audio.ErrUnsupportedFormat, ext)
	}

	quality, err := audio.NormalizeQuality(o.quality)
	if err != nil {
		return nil, err
	}
	caps := format.Capabilities()
	qualityIndex, err := audio.ResolveQuality(format.Name(), quality, caps.QualityOptions)
	if err != nil {
		return nil, err
	}

	cfg := audio.WriterConfig{
		SampleRate:   int(sampleRate),
		NumChannels:  o.channels,
		BitDepth:     o.bitDepth,
		QualityIndex: qualityIndex,
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open audio file for writing: %w", audio.ErrIO, err)
	}

	w, err := format.NewWriter(file, cfg)
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, writerError(format, caps, cfg, o.quality != nil, quality, err)
	}

	f := &WriteableFile{
		name:   path,
		file:   file,
		writer: w,
		info:   w.Info(),
	}
	if len(caps.QualityOptions) > 0 {
		f.quality, f.hasQuality = caps.QualityOptions[qualityIndex], true
	}
	return f, nil
}

// writerError explains why format refused cfg, checking the constraints in
// the order a caller is most likely to have violated them.
func writerError(format audio.Format, caps audio.Capabilities, cfg audio.WriterConfig, hasQuality bool, quality string, cause error) error {
	name := format.Name()

	switch {
	case len(caps.SampleRates) == 0:
		return fmt.Errorf("%w: %s audio files are not writable", audio.ErrUnsupportedFormat, name)
	case !slices.Contains(caps.SampleRates, cfg.SampleRate):
		return fmt.Errorf("%w: %s audio files do not support the provided sample rate of %d Hz. "+
			"Supported sample rates are: %s", audio.ErrUnsupportedSampleRate, name, cfg.SampleRate, joinInts(caps.SampleRates, " Hz"))
	case len(caps.BitDepths) == 0:
		return fmt.Errorf("%w: %s audio files are not writable", audio.ErrUnsupportedFormat, name)
	case !slices.Contains(caps.BitDepths, cfg.BitDepth):
		return fmt.Errorf("%w: %s audio files do not support the provided bit depth of %d bits. "+
			"Supported bit depths are: %s", audio.ErrUnsupportedBitDepth, name, cfg.BitDepth, joinInts(caps.BitDepths, "-bit"))
	}

	q := "None"
	if hasQuality {
		q = strconv.Quote(quality)
	}
	return fmt.Errorf("%w: unable to create %s writer with samplerate=%d, num_channels=%d, bit_depth=%d, and quality=%s: %w",
		audio.ErrInvalidArgument, name, cfg.SampleRate, cfg.NumChannels, cfg.BitDepth, q, cause)
}

func joinInts(values []int, unit string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v) + unit
	}
	return strings.Join(parts, ", ")
}

// Write encodes buf, which holds int8, int16, int32, float32 or float64
// samples. A 1-D buffer is a single channel. A 2-D buffer may be planar
// (channels, frames) or interleaved (frames, channels); the layout is
// inferred from which dimension matches the channel count.
//
// Data is converted in chunks of audio.ChunkFrames frames. When an encoder
// call fails, chunks already written stay in the file but Frames is not
// advanced.
func (f *WriteableFile) Write(buf *audio.Buffer) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.writer == nil {
		return audio.ErrClosed
	}
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", audio.ErrInvalidArgument)
	}
	if err := buf.Validate(); err != nil {
		return err
	}

	layout, channels, frames, err := audio.DetectLayout(buf.Shape, f.info.NumChannels)
	if err != nil {
		return err
	}
	if channels == 0 {
		return nil
	}
	if channels != f.info.NumChannels {
		return fmt.Errorf("%w: writer has %d channels but buffer has %d",
			audio.ErrChannelMismatch, f.info.NumChannels, channels)
	}

	if err := audio.Encode(f.writer, buf, layout, channels, frames); err != nil {
		return err
	}

	f.frames += int64(frames)
	return nil
}

// Flush forces buffered audio to disk. Formats that cannot finalize a file
// before Close return audio.ErrFlushUnsupported.
func (f *WriteableFile) Flush() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.writer == nil {
		return audio.ErrClosed
	}

	err := f.writer.Flush()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, audio.ErrFlushUnsupported):
		return fmt.Errorf("%w: unable to flush audio file; is the underlying file seekable?", err)
	default:
		return fmt.Errorf("%w: unable to flush audio file: %w", audio.ErrIO, err)
	}
}

// Close finalizes the encoder and closes the file. It returns
// audio.ErrDoubleClose when the file is already closed.
func (f *WriteableFile) Close() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.writer == nil {
		return audio.ErrDoubleClose
	}

	err := f.writer.Close()
	if err != nil {
		err = fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	if cerr := f.file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
		err = errors.Join(err, cerr)
	}

	f.writer = nil
	return err
}

func (f *WriteableFile) Closed() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.writer == nil
}

// Name returns the path the file was created with.
func (f *WriteableFile) Name() string { return f.name }

// Frames returns the number of frames written so far. It keeps working
// after Close.
func (f *WriteableFile) Frames() int64 {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.frames
}

// Quality returns the resolved quality label, if the format has quality
// options.
func (f *WriteableFile) Quality() (string, bool) {
	return f.quality, f.hasQuality
}

func (f *WriteableFile) SampleRate() (float64, error) {
	info, err := f.openInfo()
	return info.SampleRate, err
}

func (f *WriteableFile) Channels() (int, error) {
	info, err := f.openInfo()
	return info.NumChannels, err
}

// FileDType returns the sample type the encoder stores.
func (f *WriteableFile) FileDType() (audio.DType, error) {
	info, err := f.openInfo()
	return info.DType(), err
}

func (f *WriteableFile) openInfo() (audio.StreamInfo, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.writer == nil {
		return audio.StreamInfo{}, audio.ErrClosed
	}
	return f.info, nil
}

func (f *WriteableFile) String() string {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.writer == nil {
		return fmt.Sprintf("<audiofile.WriteableFile filename=%q closed>", f.name)
	}

	var quality string
	if f.hasQuality {
		quality = fmt.Sprintf(" quality=%q", f.quality)
	}
	return fmt.Sprintf("<audiofile.WriteableFile filename=%q samplerate=%s num_channels=%d%s file_dtype=%s>",
		f.name, strconv.FormatFloat(f.info.SampleRate, 'f', -1, 64), f.info.NumChannels, quality, f.info.DType())
}
