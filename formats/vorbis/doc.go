// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides the read-only Ogg Vorbis audio.Format.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// # Output Format
//
// Vorbis decodes to float samples, so readers report 32-bit floating point
// data in the range [-1.0, 1.0] regardless of how the stream was encoded.
//
// # Seeking
//
// Seeking is delegated to the decoder's page index and needs a seekable
// input. The stream length is known up front when the input is seekable.
//
// # Writing
//
// Encoding is not supported. Capabilities returns no sample rates and
// NewWriter fails with audio.ErrUnsupportedFormat.
package vorbis
