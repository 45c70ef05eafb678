// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnsupportedFormat     = errors.New("unsupported audio format")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrClosed                = errors.New("I/O operation on a closed file")
	ErrDoubleClose           = errors.New("cannot close closed file")
	ErrOutOfRange            = errors.New("position out of range")
	ErrChannelMismatch       = errors.New("channel count mismatch")
	ErrAmbiguousShape        = errors.New("ambiguous buffer shape")
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	ErrUnsupportedBitDepth   = errors.New("unsupported bit depth")
	ErrQualityNotSupported   = errors.New("format does not accept quality settings")
	ErrInvalidQuality        = errors.New("invalid quality value")
	ErrUnsupportedDatatype   = errors.New("unsupported sample datatype")
	ErrFlushUnsupported      = errors.New("flush not supported")
	ErrIO                    = errors.New("audio I/O failure")
)
