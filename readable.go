// SPDX-License-Identifier: EPL-2.0

package audiofile

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/ik5/audiofile/audio"
)

// ReadableFile is an audio file opened for reading.
//
// Reads are random access: each Read starts at the current position and
// advances it by the number of frames returned. All methods are safe for
// concurrent use; calls on one file are serialized.
type ReadableFile struct {
	mtx sync.Mutex

	name   string
	reader audio.Reader
	info   audio.StreamInfo
	pos    int64
}

// Open opens path for reading. The format is chosen by file extension,
// falling back to the file content.
func Open(path string, opts ...Option) (*ReadableFile, error) {
	o := newOptions(opts)

	r, err := o.registry.FindReaderFor(path)
	if err != nil {
		return nil, err
	}

	info := r.Info()
	if info.SampleRate != math.Trunc(info.SampleRate) {
		r.Close()
		return nil, fmt.Errorf("%w: opened audio file %q has a non-integer sample rate %v",
			audio.ErrUnsupportedFormat, path, info.SampleRate)
	}

	return &ReadableFile{
		name:   path,
		reader: r,
		info:   info,
	}, nil
}

// Read decodes up to numFrames frames from the current position as float32
// samples in [-1, 1]. The result has shape (channels, frames); frames is
// smaller than numFrames near the end of the file and zero at the end.
//
// numFrames must be positive; Read never decodes a whole file implicitly.
func (f *ReadableFile) Read(numFrames int64) (*audio.Buffer, error) {
	return f.read(numFrames, audio.DecodeFloat32)
}

// ReadRaw is like Read but returns samples in the file's native type:
// int8, int16 or int32 for integer files (24-bit data left-aligned in
// int32) and float32 for float files.
func (f *ReadableFile) ReadRaw(numFrames int64) (*audio.Buffer, error) {
	return f.read(numFrames, audio.DecodeRaw)
}

func (f *ReadableFile) read(numFrames int64, decode func(audio.Reader, int64, int) (*audio.Buffer, error)) (*audio.Buffer, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.reader == nil {
		return nil, audio.ErrClosed
	}
	if numFrames <= 0 {
		return nil, fmt.Errorf("%w: will not read an entire file at once; pass a positive number of "+
			"frames to read (the file has %d)", audio.ErrInvalidArgument, f.info.Length)
	}

	frames := min(numFrames, f.info.Length-f.pos)
	buf, err := decode(f.reader, f.pos, int(frames))
	if err != nil {
		return nil, err
	}

	f.pos += frames
	return buf, nil
}

// Seek moves the read position to frame pos, which must lie within
// [0, Frames()].
func (f *ReadableFile) Seek(pos int64) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.reader == nil {
		return audio.ErrClosed
	}
	if pos < 0 || pos > f.info.Length {
		return fmt.Errorf("%w: cannot seek to frame %d of a %d-frame file",
			audio.ErrOutOfRange, pos, f.info.Length)
	}

	f.pos = pos
	return nil
}

// Tell returns the read position.
func (f *ReadableFile) Tell() (int64, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.reader == nil {
		return 0, audio.ErrClosed
	}
	return f.pos, nil
}

// Close releases the decoder and the file. Closing a closed file is a no-op.
func (f *ReadableFile) Close() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.reader == nil {
		return nil
	}
	err := f.reader.Close()
	f.reader = nil
	return err
}

func (f *ReadableFile) Closed() bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return f.reader == nil
}

// Seekable reports whether Seek can be called, which is the case while the
// file is open.
func (f *ReadableFile) Seekable() bool {
	return !f.Closed()
}

// Name returns the path the file was opened with.
func (f *ReadableFile) Name() string { return f.name }

func (f *ReadableFile) SampleRate() (float64, error) {
	info, err := f.openInfo()
	return info.SampleRate, err
}

func (f *ReadableFile) Channels() (int, error) {
	info, err := f.openInfo()
	return info.NumChannels, err
}

// Frames returns the length of the file in frames.
func (f *ReadableFile) Frames() (int64, error) {
	info, err := f.openInfo()
	return info.Length, err
}

func (f *ReadableFile) Duration() (time.Duration, error) {
	info, err := f.openInfo()
	return info.Duration(), err
}

// FileDType returns the sample type stored in the file, which is the type
// ReadRaw returns except for 24-bit files.
func (f *ReadableFile) FileDType() (audio.DType, error) {
	info, err := f.openInfo()
	return info.DType(), err
}

// FormatName returns the name of the decoding format, e.g. "WAV file".
func (f *ReadableFile) FormatName() (string, error) {
	info, err := f.openInfo()
	return info.FormatName, err
}

func (f *ReadableFile) openInfo() (audio.StreamInfo, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.reader == nil {
		return audio.StreamInfo{}, audio.ErrClosed
	}
	return f.info, nil
}

func (f *ReadableFile) String() string {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.reader == nil {
		return fmt.Sprintf("<audiofile.ReadableFile filename=%q closed>", f.name)
	}
	return fmt.Sprintf("<audiofile.ReadableFile filename=%q samplerate=%s num_channels=%d frames=%d file_dtype=%s>",
		f.name, strconv.FormatFloat(f.info.SampleRate, 'f', -1, 64), f.info.NumChannels, f.info.Length, f.info.DType())
}
