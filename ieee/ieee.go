// Package ieee converts between 32-bit IEEE-754 floats and their integer
// bit patterns, the representation GRIB2 templates use for reference
// values and spherical-harmonic coefficients. The internal packing
// pipeline (package pack) works in float64 throughout and narrows to
// IEEE-32 only at the emission sites this package provides.
package ieee

import "math"

// Float32ToBits returns the 32-bit IEEE-754 bit pattern of x, rounding to
// nearest on narrowing from float64. Denormals and NaN pass through
// unchanged in bits.
func Float32ToBits(x float64) uint32 {
	return math.Float32bits(float32(x))
}

// BitsToFloat32 is the inverse of Float32ToBits.
func BitsToFloat32(b uint32) float64 {
	return float64(math.Float32frombits(b))
}
