package bitio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/bitio"
)

func TestPutGetBitsRoundTrip(t *testing.T) {
	widths := []int{1, 3, 7, 8, 9, 16, 17, 24, 31, 32, 40, 64}
	for _, w := range widths {
		var max uint64
		if w == 64 {
			max = ^uint64(0)
		} else {
			max = (uint64(1) << uint(w)) - 1
		}
		for _, v := range []uint64{0, 1, max / 2, max} {
			buf := make([]byte, bitio.BytesForBits(w)+1)
			bitio.PutBits(buf, 0, w, v)
			got := bitio.GetBits(buf, 0, w)
			require.Equal(t, v, got, "width=%d value=%d", w, v)
		}
	}
}

func TestPutGetBitsUnaligned(t *testing.T) {
	buf := make([]byte, 8)
	bitio.PutBits(buf, 3, 13, 0x1A2B&0x1FFF)
	got := bitio.GetBits(buf, 3, 13)
	assert.Equal(t, uint64(0x1A2B&0x1FFF), got)
}

func TestBitsArrayRoundTrip(t *testing.T) {
	src := []uint32{0, 1, 5, 17, 255, 256, 1000}
	buf := make([]byte, 64)
	bitio.PutBitsArray(buf, 0, 12, len(src), src)

	dst := make([]uint32, len(src))
	bitio.GetBitsArray(buf, 0, 12, len(src), dst)
	assert.Equal(t, src, dst)
}

func TestGetBitsZeroWidth(t *testing.T) {
	assert.Equal(t, uint64(0), bitio.GetBits(nil, 0, 0))
}

func TestGetBitsOutOfRangePanics(t *testing.T) {
	buf := make([]byte, 1)
	assert.Panics(t, func() { bitio.GetBits(buf, 0, 9) })
}

func TestSignMagnitudeRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, -127, 32767, -32767} {
		for _, w := range []int{1, 2, 3, 4} {
			if !bitio.SignMagnitudeWidth(v, w) {
				continue
			}
			raw := bitio.EncodeSignMagnitude(v, w)
			got := bitio.DecodeSignMagnitude(raw, w)
			require.Equal(t, v, got, "w=%d v=%d", w, v)
		}
	}
}
