// SPDX-License-Identifier: EPL-2.0

// Package wav provides the RIFF WAVE audio.Format.
//
// Decoding and encoding are delegated to github.com/go-audio/wav. The
// package adds random access on top of the decoder and streaming writes on
// top of the encoder.
//
// # Supported Layouts
//
// Reading:
//   - Integer PCM at 8, 16, 24 and 32 bits (format tags 1 and 0xFFFE)
//   - IEEE float at 32 bits (format tag 3)
//   - Any number of channels and any sample rate
//
// Writing:
//   - 8, 16 and 24 bits as integer PCM
//   - 32 bits as IEEE float
//
// 8-bit data is unsigned on disk; the package converts to and from signed
// samples.
//
// # Usage
//
// The Format is normally registered in an audio.Registry:
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Format{})
//
//	r, err := reg.FindReaderFor("speech.wav")
//
// # Flushing
//
// Unlike the other formats, WAV output can be flushed while writing. Flush
// rewrites the RIFF and data chunk sizes in place, so the file is valid
// even if the process stops before Close. The destination must be seekable.
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF WAVE stream
//   - ErrUnsupportedWavLayout: the format tag is not PCM or IEEE float
//   - ErrUnsupportedBitDepth: the sample width cannot be read or written
//   - ErrUnsupportedWavChunks: no data chunk was found
package wav
