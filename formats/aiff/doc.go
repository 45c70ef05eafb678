// SPDX-License-Identifier: EPL-2.0

// Package aiff provides the AIFF (Audio Interchange File Format)
// audio.Format.
//
// This package uses github.com/go-audio/aiff to decode and encode AIFF
// files. AIFF is Apple's standard audio file format, commonly used on macOS.
// Samples are stored big-endian.
//
// # Supported Formats
//
// Reading:
//   - Integer PCM at 8, 16, 24 and 32 bits
//   - Mono and multi-channel
//   - Any sample rate
//
// Writing:
//   - Integer PCM at 8, 16 and 24 bits
//   - The standard sample rates listed in audio.StandardSampleRates
//
// # Seeking
//
// The underlying decoder reads forward only. A seek rewinds to the start of
// the file and decodes up to the target frame, so random access is linear
// in the seek distance. Sequential reads never seek.
//
// # Limitations
//
// Writers cannot be flushed; chunk sizes are written on Close.
package aiff
