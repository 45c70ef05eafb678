// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"

	"github.com/ik5/audiofile/audio"
)

// ExampleDetectLayout shows how the layout of a buffer is inferred from
// which dimension matches the channel count.
func ExampleDetectLayout() {
	for _, shape := range [][]int{{2, 1024}, {1024, 2}, {2, 2}} {
		layout, channels, frames, err := audio.DetectLayout(shape, 2)
		if err != nil {
			fmt.Println(shape, errors.Is(err, audio.ErrAmbiguousShape))
			continue
		}
		fmt.Println(shape, layout, channels, frames)
	}
	// Output:
	// [2 1024] planar 2 1024
	// [1024 2] interleaved 2 1024
	// [2 2] true
}

func ExampleResolveQuality() {
	options := []string{"128 kbps", "192 kbps", "320 kbps"}

	for _, q := range []string{"", "320", "192 KBPS"} {
		i, _ := audio.ResolveQuality("MP3 file", q, options)
		fmt.Printf("%q -> %s\n", q, options[i])
	}

	_, err := audio.ResolveQuality("MP3 file", "32", options)
	fmt.Println(err)

	// Output:
	// "" -> 320 kbps
	// "320" -> 320 kbps
	// "192 KBPS" -> 192 kbps
	// invalid quality value: unable to parse provided quality value (32); valid values for MP3 files are: 128 kbps, 192 kbps, 320 kbps
}
