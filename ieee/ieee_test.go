package ieee_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wxgrib/grib2/ieee"
)

func TestRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 3.14159, -273.15, 1e10, -1e-10, 65535}
	for _, v := range values {
		b := ieee.Float32ToBits(v)
		got := ieee.BitsToFloat32(b)
		assert.InDelta(t, float32(v), float32(got), 1e-6)
	}
}

func TestNaNBitsPassThrough(t *testing.T) {
	nanBits := math.Float32bits(float32(math.NaN()))
	got := ieee.Float32ToBits(ieee.BitsToFloat32(nanBits))
	assert.Equal(t, nanBits, got)
}

func TestDenormalBitsPassThrough(t *testing.T) {
	var denorm uint32 = 0x00000001
	got := ieee.Float32ToBits(ieee.BitsToFloat32(denorm))
	assert.Equal(t, denorm, got)
}
