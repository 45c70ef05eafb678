// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	goaudio "github.com/go-audio/audio"
)

// Float32ToFixed converts a sample in [-1, 1] to a full-range int32,
// clamping out-of-range input.
func Float32ToFixed(x float32) int32 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int32(math.Round(float64(x) * math.MaxInt32))
}

// Float32ToInt converts a sample in [-1, 1] to a signed integer of the
// given bit depth, clamping out-of-range input.
func Float32ToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(math.Round(float64(x) * float64(goaudio.IntMaxSignedValue(bitDepth))))
}

// FixedToInt drops the padding bits of a left-aligned sample.
func FixedToInt(v int32, bitDepth int) int {
	return int(v >> (32 - bitDepth))
}

// IntToFixed left-aligns a bitDepth-bit sample into an int32 word.
func IntToFixed(v int, bitDepth int) int32 {
	return int32(v) << (32 - bitDepth)
}
