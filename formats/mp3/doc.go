// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides the read-only MP3 audio.Format.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: 16-bit signed integers
//   - Channels: 2 (stereo), also for mono files
//   - Sample rate: Depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// # Content Detection
//
// MPEG frame sync words are short and appear by chance in other data, so
// the decoder will happily "decode" files of other formats. Format reports
// itself as audio.Ambiguous: a registry only hands an MP3 reader out for a
// file without a .mp3 extension if the caller asked for it by extension.
//
// # Limitations
//
//   - MP3 writing is not supported (decoding only)
//   - The stream length is only known for seekable inputs
package mp3
