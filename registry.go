// SPDX-License-Identifier: EPL-2.0

package audiofile

import (
	"sync"

	"github.com/ik5/audiofile/audio"
	"github.com/ik5/audiofile/formats/aiff"
	"github.com/ik5/audiofile/formats/flac"
	"github.com/ik5/audiofile/formats/mp3"
	"github.com/ik5/audiofile/formats/vorbis"
	"github.com/ik5/audiofile/formats/wav"
)

var (
	defaultRegistry     *audio.Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry used when no WithRegistry option is
// given. It holds WAV, AIFF, FLAC, Ogg Vorbis and MP3, in that order.
func DefaultRegistry() *audio.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = audio.NewRegistry()
		defaultRegistry.Register(wav.Format{})
		defaultRegistry.Register(aiff.Format{})
		defaultRegistry.Register(flac.Format{})
		defaultRegistry.Register(vorbis.Format{})
		defaultRegistry.Register(mp3.Format{})
	})
	return defaultRegistry
}

// SupportedReadFormats lists the file extensions Open can decode.
func SupportedReadFormats() []string {
	return DefaultRegistry().ReadExtensions()
}

// SupportedWriteFormats lists the file extensions Create can encode.
func SupportedWriteFormats() []string {
	return DefaultRegistry().WriteExtensions()
}
