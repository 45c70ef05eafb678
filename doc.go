// SPDX-License-Identifier: EPL-2.0

// Package audiofile reads and writes audio files as blocks of samples.
//
// Files are opened with Open and created with Create. The container format
// is chosen by file extension; Open falls back to the file content when the
// extension is missing or wrong.
//
// # Supported Formats
//
//   - WAV (8, 16, 24-bit PCM and 32-bit float) via formats/wav
//   - AIFF (8, 16, 24-bit PCM) via formats/aiff
//   - FLAC (16 and 24-bit, quality 0 to 8) via formats/flac
//   - Ogg Vorbis, read only, via formats/vorbis
//   - MP3, read only, via formats/mp3
//
// # Reading
//
//	f, err := audiofile.Open("in.wav")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	for {
//		buf, err := f.Read(4096) // float32, shape (channels, frames)
//		if err != nil {
//			return err
//		}
//		if buf.Frames() == 0 {
//			break
//		}
//		left := audio.Channel[float32](buf, 0)
//		_ = left
//	}
//
// ReadRaw returns samples in the file's native integer type instead.
//
// # Writing
//
// Write accepts int8, int16, int32, float32 and float64 buffers, either
// planar (channels, frames) or interleaved (frames, channels):
//
//	err := audiofile.WithWriter("out.flac", 48000, func(f *audiofile.WriteableFile) error {
//		return f.Write(audio.MustBuffer(samples, 2, len(samples)/2))
//	}, audiofile.WithChannels(2), audiofile.WithQuality(8))
//
// # Concurrency
//
// Every method of ReadableFile and WriteableFile may be called from several
// goroutines; calls on the same file are serialized. ProbeAll opens many
// files in parallel.
package audiofile
