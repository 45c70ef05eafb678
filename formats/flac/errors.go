// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile         = errors.New("not a FLAC file")
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
	ErrTooManyChannels     = errors.New("FLAC supports at most 8 channels")
	ErrUnknownLength       = errors.New("FLAC stream does not declare its sample count")
)
