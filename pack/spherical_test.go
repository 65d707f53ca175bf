package pack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/pack"
)

func TestSphericalHarmonicSimpleRoundTrip(t *testing.T) {
	coeffs := []float64{100.0, 1.0, 2.0, 3.0, 4.0, 5.0, 6.0, 7.0}
	payload, result, err := pack.SphericalHarmonic(coeffs, false, pack.SimpleParams{NBits: 10}, pack.ComplexParams{}, pack.Truncation{})
	require.NoError(t, err)

	got, err := pack.UnSphericalHarmonic(payload, result, len(coeffs))
	require.NoError(t, err)
	assert.InDelta(t, coeffs[0], got[0], 1e-4)
	for i := 1; i < len(coeffs); i++ {
		assert.InDelta(t, coeffs[i], got[i], 0.1, "index %d", i)
	}
}

func TestSphericalHarmonicComplexRequiresTruncation(t *testing.T) {
	coeffs := []float64{1, 2, 3, 4}
	_, _, err := pack.SphericalHarmonic(coeffs, true, pack.SimpleParams{}, pack.ComplexParams{}, pack.Truncation{})
	assert.ErrorIs(t, err, pack.ErrUnsupportedTruncation)
}

func TestSphericalHarmonicComplexRoundTrip(t *testing.T) {
	coeffs := make([]float64, 100)
	for i := range coeffs {
		coeffs[i] = float64(i)
	}
	payload, result, err := pack.SphericalHarmonic(coeffs, true, pack.SimpleParams{}, pack.ComplexParams{Order: 1}, pack.Truncation{J: 21, K: 21, M: 21})
	require.NoError(t, err)

	got, err := pack.UnSphericalHarmonic(payload, result, len(coeffs))
	require.NoError(t, err)
	for i := range coeffs {
		assert.InDelta(t, coeffs[i], got[i], 1e-6, "index %d", i)
	}
}
