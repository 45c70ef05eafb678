// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audiofile/audio"
)

// ErrShortStream is returned when a stream ends before a seek target.
var ErrShortStream = errors.New("stream ended before seek target")

// DiscardInts reads and drops frames frames from read, for decoders that
// can only seek by rewinding and decoding forward.
func DiscardInts(read func(dst []int32) (int, error), channels int, frames int64) error {
	if frames <= 0 {
		return nil
	}

	buf := make([]int32, min(frames, audio.ChunkFrames)*int64(channels))
	for frames > 0 {
		want := min(frames, audio.ChunkFrames)
		n, err := read(buf[:want*int64(channels)])
		frames -= int64(n)

		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w", err)
		}
		if frames > 0 && (n == 0 || errors.Is(err, io.EOF)) {
			return ErrShortStream
		}
	}

	return nil
}

// NopCloser hides the Close method of an io.ReadSeeker from decoders that
// close their input, so the file handle stays owned by the caller.
func NopCloser(rs io.ReadSeeker) io.ReadSeeker {
	return struct{ io.ReadSeeker }{rs}
}
