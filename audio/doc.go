// SPDX-License-Identifier: EPL-2.0

// Package audio provides the format-independent core of audiofile.
//
// This package contains:
//   - Reader, Writer and Format, the interfaces every container implements
//   - Registry, which picks a Format by file extension or content
//   - Buffer, a typed sample array with one or two dimensions
//   - DetectLayout, which tells planar buffers from interleaved ones
//   - ResolveQuality, which maps free-form quality settings to encoder options
//   - DecodeFloat32, DecodeRaw and Encode, the chunked sample converters
//
// # Sample Representation
//
// Readers and writers exchange per-channel planes of either float32 samples
// in [-1, 1] or integer samples left-aligned in an int32 word. A 16-bit
// sample v travels as v<<16, a 24-bit sample as v<<8. Converting a
// left-aligned sample to float divides by the largest value its bit depth
// can hold once shifted into position (see FixedScale), so full-scale
// positive input maps to exactly 1.0.
//
// # Bounded Memory
//
// Conversions work in chunks of ChunkFrames frames. However many frames a
// caller asks for, the temporary buffers never hold more than ChunkFrames
// frames per channel.
//
// # Registry
//
//	r := audio.NewRegistry()
//	r.Register(wav.Format{})
//	r.Register(mp3.Format{})
//
//	rd, err := r.FindReaderFor("song.mp3")
//
// Formats implementing Ambiguous (MP3 decoders accept almost any bytes) are
// only trusted on content when the file name carries their extension.
package audio
