package pack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/pack"
)

func TestSimpleRoundTripWithinErrorBound(t *testing.T) {
	f := make([]float64, 16)
	for i := range f {
		f[i] = float64(i) * 1.5
	}
	p := pack.SimpleParams{NBits: 8}
	payload, patched, err := pack.Simple(f, p)
	require.NoError(t, err)
	require.False(t, patched.Constant)

	got, err := pack.Unsimple(payload, patched, len(f))
	require.NoError(t, err)

	bound := math.Ldexp(1.0, patched.BinaryScale) * math.Pow(10, -float64(patched.DecimalScale))
	for i := range f {
		assert.InDelta(t, f[i], got[i], bound+1e-9, "index %d", i)
	}
}

func TestSimpleConstantFieldShortCircuits(t *testing.T) {
	f := []float64{42, 42, 42, 42}
	payload, patched, err := pack.Simple(f, pack.SimpleParams{NBits: 8})
	require.NoError(t, err)
	assert.True(t, patched.Constant)
	assert.Equal(t, 0, patched.NBits)
	assert.Empty(t, payload)

	got, err := pack.Unsimple(payload, patched, len(f))
	require.NoError(t, err)
	for _, v := range got {
		assert.InDelta(t, 42.0, v, 1e-4)
	}
}

func TestSimpleAutoSelectsBitWidth(t *testing.T) {
	f := make([]float64, 16)
	for i := range f {
		f[i] = float64(i)
	}
	payload, patched, err := pack.Simple(f, pack.SimpleParams{})
	require.NoError(t, err)
	require.False(t, patched.Constant)
	assert.Equal(t, pack.RequiredBits(0, 15, 0, 0), patched.NBits)
	assert.NotZero(t, patched.NBits)
	assert.NotEmpty(t, payload)

	got, err := pack.Unsimple(payload, patched, len(f))
	require.NoError(t, err)
	for i := range f {
		assert.InDelta(t, f[i], got[i], 1.0, "index %d", i)
	}
}

func TestSimpleEmptyInput(t *testing.T) {
	payload, patched, err := pack.Simple(nil, pack.SimpleParams{NBits: 8})
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.True(t, patched.Constant)
}

func TestRequiredBits(t *testing.T) {
	assert.Equal(t, 0, pack.RequiredBits(5, 5, 0, 0))
	b := pack.RequiredBits(0, 15, 0, 0)
	assert.GreaterOrEqual(t, b, 4)
}

func TestQuantizeForRasterRoundTrip(t *testing.T) {
	f := []float64{10, 20, 30, 40, 50}
	values, patched, err := pack.QuantizeForRaster(f, pack.SimpleParams{})
	require.NoError(t, err)
	require.False(t, patched.Constant)

	got := pack.UnquantizeForRaster(values, patched)
	for i := range f {
		assert.InDelta(t, f[i], got[i], 1e-6, "index %d", i)
	}
}

func TestQuantizeForRasterConstant(t *testing.T) {
	f := []float64{5, 5, 5}
	values, patched, err := pack.QuantizeForRaster(f, pack.SimpleParams{})
	require.NoError(t, err)
	assert.True(t, patched.Constant)

	got := pack.UnquantizeForRaster(values, patched)
	for _, v := range got {
		assert.InDelta(t, 5.0, v, 1e-4)
	}
}
