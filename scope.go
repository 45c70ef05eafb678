// SPDX-License-Identifier: EPL-2.0

package audiofile

import "errors"

// WithReader opens path, passes it to fn and closes it when fn returns,
// even if fn panics. The close error is joined with fn's error.
func WithReader(path string, fn func(*ReadableFile) error, opts ...Option) (err error) {
	f, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return fn(f)
}

// WithWriter creates path, passes it to fn and closes it when fn returns,
// even if fn panics. If fn closes the file itself the resulting
// audio.ErrDoubleClose is joined with fn's error.
func WithWriter(path string, sampleRate float64, fn func(*WriteableFile) error, opts ...Option) (err error) {
	f, err := Create(path, sampleRate, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return fn(f)
}
