// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Layout is the memory order of a multi-channel buffer.
type Layout int

const (
	// Planar buffers hold all samples of channel 0, then channel 1, etc.
	Planar Layout = iota
	// Interleaved buffers hold one sample per channel for each frame in turn.
	Interleaved
)

func (l Layout) String() string {
	if l == Interleaved {
		return "interleaved"
	}
	return "planar"
}

// DetectLayout resolves the layout of a buffer with the given shape that is
// meant for a stream of channels channels. It returns the layout along with
// the channel and frame counts the shape describes.
//
// A 1-D shape is always a single planar channel; the caller decides whether
// that matches channels.
func DetectLayout(shape []int, channels int) (Layout, int, int, error) {
	switch len(shape) {
	case 1:
		return Planar, 1, shape[0], nil
	case 2:
	default:
		return Planar, 0, 0, fmt.Errorf("%w: number of input dimensions must be 1 or 2 (got %d)",
			ErrInvalidArgument, len(shape))
	}

	d0, d1 := shape[0], shape[1]
	switch {
	case d0 == channels && d1 == channels:
		return Planar, 0, 0, fmt.Errorf("%w: both dimensions have the same shape; expected %d-channel audio, "+
			"with one dimension larger than the other", ErrAmbiguousShape, channels)
	case d1 == channels:
		return Interleaved, d1, d0, nil
	case d0 == channels:
		return Planar, d0, d1, nil
	default:
		return Planar, 0, 0, fmt.Errorf("%w: unable to determine shape of audio input %v; expected %d-channel audio",
			ErrChannelMismatch, shape, channels)
	}
}
