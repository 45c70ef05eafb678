// SPDX-License-Identifier: EPL-2.0

// Package flac provides the FLAC audio.Format, built on
// github.com/mewkiz/flac.
//
// Reading supports any bit depth the stream declares; random access rewinds
// and decodes forward from the first frame. A stream info total sample count
// of 0 means unknown length; such streams are rejected with ErrUnknownLength
// unless they hold no frames at all. Writing supports 16 and 24 bits
// at the standard sample rates with up to 8 channels, in blocks of 4096
// frames.
//
// The encoder accepts the quality options 0 (Fastest) through
// 8 (Highest quality). The stream is always lossless. Level 0 stores every
// subframe verbatim; higher levels pick constant or fixed prediction per
// subframe, whichever is smallest.
package flac
