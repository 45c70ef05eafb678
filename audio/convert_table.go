// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// conversion fills one chunk of scratch planes from a caller buffer.
// float selects which planes it fills and therefore which Writer method
// receives them.
type conversion struct {
	fill  func(sc *scratch, src sourceView, start, n int)
	float bool
}

// conversionTable is indexed by caller type, then by whether the encoder
// wants float data.
//
//	caller    | int encoder                 | float encoder
//	int8/16   | left-shift to 32 bits       | left-shift, scale by 1/MaxInt32
//	int32     | pass through                | scale by 1/MaxInt32
//	float32   | floats, encoder converts    | pass through
//	float64   | narrow to float32           | narrow to float32
var conversionTable = map[DType][2]conversion{
	Int8: {
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherInts(sc, src, src.buf.Int8, start, n, 24) }},
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherScaled(sc, src, src.buf.Int8, start, n, 24) }, float: true},
	},
	Int16: {
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherInts(sc, src, src.buf.Int16, start, n, 16) }},
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherScaled(sc, src, src.buf.Int16, start, n, 16) }, float: true},
	},
	Int32: {
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherInts(sc, src, src.buf.Int32, start, n, 0) }},
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherScaled(sc, src, src.buf.Int32, start, n, 0) }, float: true},
	},
	Float32: {
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherFloats(sc, src, src.buf.Float32, start, n) }, float: true},
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherFloats(sc, src, src.buf.Float32, start, n) }, float: true},
	},
	Float64: {
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherFloats(sc, src, src.buf.Float64, start, n) }, float: true},
		{fill: func(sc *scratch, src sourceView, start, n int) { gatherFloats(sc, src, src.buf.Float64, start, n) }, float: true},
	},
}

func lookupConversion(dtype DType, encoderFloat bool) (conversion, error) {
	row, ok := conversionTable[dtype]
	if !ok {
		return conversion{}, fmt.Errorf("%w: cannot write %s samples", ErrUnsupportedDatatype, dtype)
	}
	if encoderFloat {
		return row[1], nil
	}
	return row[0], nil
}

// sourceView addresses sample (channel, frame) of a caller buffer in either
// layout.
type sourceView struct {
	buf      *Buffer
	layout   Layout
	channels int
	frames   int
}

func (v sourceView) index(c, i int) int {
	if v.layout == Interleaved {
		return i*v.channels + c
	}
	return c*v.frames + i
}

// scratch holds one chunk of per-channel planes. It is allocated once per
// Encode call and re-sliced for the final, shorter chunk.
type scratch struct {
	ints   [][]int32
	floats [][]float32
	intBuf [][]int32
	fltBuf [][]float32
}

func newScratch(channels, size int, float bool) *scratch {
	sc := &scratch{}
	if float {
		sc.fltBuf = planes(make([]float32, channels*size), channels, size)
		sc.floats = make([][]float32, channels)
	} else {
		sc.intBuf = planes(make([]int32, channels*size), channels, size)
		sc.ints = make([][]int32, channels)
	}
	return sc
}

func (sc *scratch) resize(n int) {
	for c := range sc.fltBuf {
		sc.floats[c] = sc.fltBuf[c][:n]
	}
	for c := range sc.intBuf {
		sc.ints[c] = sc.intBuf[c][:n]
	}
}

func gatherInts[T int8 | int16 | int32](sc *scratch, src sourceView, data []T, start, n int, shift uint) {
	for c := range src.channels {
		dst := sc.ints[c]
		for i := range n {
			dst[i] = int32(data[src.index(c, start+i)]) << shift
		}
	}
}

func gatherScaled[T int8 | int16 | int32](sc *scratch, src sourceView, data []T, start, n int, shift uint) {
	for c := range src.channels {
		dst := sc.floats[c]
		for i := range n {
			dst[i] = float32(int32(data[src.index(c, start+i)])<<shift) * Int32Scale
		}
	}
}

func gatherFloats[T float32 | float64](sc *scratch, src sourceView, data []T, start, n int) {
	for c := range src.channels {
		dst := sc.floats[c]
		for i := range n {
			dst[i] = float32(data[src.index(c, start+i)])
		}
	}
}
