// SPDX-License-Identifier: EPL-2.0

package audiofile

import "github.com/ik5/audiofile/audio"

// Option configures Open and Create.
//
// Example:
//
//	f, err := audiofile.Create("out.flac", 48000,
//	    audiofile.WithChannels(2),
//	    audiofile.WithBitDepth(24),
//	    audiofile.WithQuality(8),
//	)
type Option func(*options)

type options struct {
	registry *audio.Registry
	channels int
	bitDepth int
	quality  any
}

func defaultOptions() *options {
	return &options{
		channels: 1,
		bitDepth: 16,
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	return o
}

// WithRegistry selects the formats to use instead of DefaultRegistry.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithChannels sets the number of channels to write. Defaults to 1.
// Ignored by Open.
func WithChannels(n int) Option {
	return func(o *options) {
		o.channels = n
	}
}

// WithBitDepth sets the bit depth to write. Defaults to 16. Ignored by Open.
func WithBitDepth(bits int) Option {
	return func(o *options) {
		o.bitDepth = bits
	}
}

// WithQuality sets the encoder quality, given as a string or any number.
// Numbers are matched against the format's quality options by their
// leading value, so 320 selects "320 kbps". Ignored by Open.
func WithQuality(q any) Option {
	return func(o *options) {
		o.quality = q
	}
}
