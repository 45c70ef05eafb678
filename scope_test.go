// SPDX-License-Identifier: EPL-2.0

package audiofile

import (
	"errors"
	"testing"

	"github.com/ik5/audiofile/audio"
)

func TestWithWriterAndReader(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "scoped.flac")

	var w *WriteableFile
	err := WithWriter(path, 48000, func(f *WriteableFile) error {
		w = f
		return f.Write(rampInt16(2, 5000))
	}, WithChannels(2), WithQuality("8"))
	if err != nil {
		t.Fatalf("WithWriter() error = %v", err)
	}
	if !w.Closed() {
		t.Error("WithWriter() left the file open")
	}
	if q, _ := w.Quality(); q != "8 (Highest quality)" {
		t.Errorf("Quality() = %q", q)
	}

	var r *ReadableFile
	err = WithReader(path, func(f *ReadableFile) error {
		r = f
		n, err := f.Frames()
		if err != nil {
			return err
		}
		if n != 5000 {
			t.Errorf("Frames() = %d, want 5000", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithReader() error = %v", err)
	}
	if !r.Closed() {
		t.Error("WithReader() left the file open")
	}
}

func TestWithReader_CallbackError(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "in.wav")
	writeFile(t, path, 8000, rampInt16(1, 10))

	errStop := errors.New("stop")
	var r *ReadableFile
	err := WithReader(path, func(f *ReadableFile) error {
		r = f
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Errorf("WithReader() error = %v, want %v", err, errStop)
	}
	if !r.Closed() {
		t.Error("WithReader() left the file open after an error")
	}
}

func TestWithReader_Panic(t *testing.T) {
	t.Parallel()

	path := tempPath(t, "in.wav")
	writeFile(t, path, 8000, rampInt16(1, 10))

	var r *ReadableFile
	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic was swallowed")
			}
		}()
		_ = WithReader(path, func(f *ReadableFile) error {
			r = f
			panic("boom")
		})
	}()

	if !r.Closed() {
		t.Error("WithReader() left the file open after a panic")
	}
}

func TestWithWriter_ClosedByCallback(t *testing.T) {
	t.Parallel()

	err := WithWriter(tempPath(t, "out.wav"), 8000, func(f *WriteableFile) error {
		return f.Close()
	})
	if !errors.Is(err, audio.ErrDoubleClose) {
		t.Errorf("WithWriter() error = %v, want %v", err, audio.ErrDoubleClose)
	}
}

func TestWithWriter_CreateFails(t *testing.T) {
	t.Parallel()

	called := false
	err := WithWriter(tempPath(t, "out"), 8000, func(*WriteableFile) error {
		called = true
		return nil
	})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("WithWriter() error = %v, want %v", err, audio.ErrUnsupportedFormat)
	}
	if called {
		t.Error("callback ran although Create failed")
	}
}
