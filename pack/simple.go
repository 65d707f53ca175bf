// Package pack implements the payload packers and their inverses: simple
// packing (DRT 5.0), complex packing with optional spatial differencing
// (DRT 5.2/5.3), and spherical-harmonic packing (DRT 5.50/5.51). Each
// packer returns both the packed payload and a patched copy of its
// parameters instead of mutating caller memory, per the "in-place
// template mutation" re-architecture in spec.md §9.
package pack

import (
	"fmt"
	"math"

	"github.com/wxgrib/grib2/bitio"
	"github.com/wxgrib/grib2/ieee"
)

// SimpleParams holds the DRT-5.0 fields a simple-packing round trip reads
// and writes: reference value R, binary scale factor E, decimal scale
// factor D, and bit width B.
type SimpleParams struct {
	Reference    float64
	BinaryScale  int
	DecimalScale int
	NBits        int
	// Constant is set on the returned (patched) params when the packer
	// took the lcpack=0 short circuit: the input was empty (Reference 0),
	// or every input value is equal. The flag is the same in both cases;
	// only the number of input values tells them apart.
	Constant bool
}

// Simple scales f to NBits-wide integers per spec.md §4.4 and packs them
// MSB-first. If p.NBits is 0 it is computed from the data's dynamic range.
// An empty or constant field short-circuits to the lcpack=0 convention:
// reference = f[0] (0 for an empty field), zero-length payload.
func Simple(f []float64, p SimpleParams) (payload []byte, patched SimpleParams, err error) {
	patched = p
	if len(f) == 0 {
		patched.Reference = 0
		patched.NBits = 0
		patched.Constant = true
		return nil, patched, nil
	}

	scaleD := math.Pow(10, float64(p.DecimalScale))

	rmin, rmax := f[0], f[0]
	for _, v := range f {
		if v < rmin {
			rmin = v
		}
		if v > rmax {
			rmax = v
		}
	}

	if rmin == rmax {
		patched.Reference = narrowIEEE32(f[0])
		patched.NBits = 0
		patched.Constant = true
		return nil, patched, nil
	}

	scaleE := math.Ldexp(1.0, p.BinaryScale)
	R := narrowIEEE32(rmin)

	nbits := p.NBits
	if nbits == 0 {
		nbits = RequiredBits(rmin, rmax, p.BinaryScale, p.DecimalScale)
		if nbits == 0 {
			patched.Reference = narrowIEEE32(f[0])
			patched.NBits = 0
			patched.Constant = true
			return nil, patched, nil
		}
	}
	maxVal := (uint64(1) << uint(nbits)) - 1

	out := make([]byte, bitio.BytesForBits(nbits*len(f)))
	bitOff := 0
	for _, v := range f {
		q := math.Round((v*scaleD - R) / scaleE)
		if q < 0 {
			q = 0
		}
		if q > float64(maxVal) {
			q = float64(maxVal)
		}
		bitio.PutBits(out, bitOff, nbits, uint64(q))
		bitOff += nbits
	}

	patched.Reference = R
	patched.NBits = nbits
	patched.Constant = false
	return out, patched, nil
}

// Unsimple is the inverse of Simple: it expands an N-value simple-packed
// payload back to floats using Y = (R + X·2^E) / 10^D.
func Unsimple(payload []byte, p SimpleParams, n int) ([]float64, error) {
	result := make([]float64, n)
	if p.Constant || p.NBits == 0 {
		v := p.Reference / math.Pow(10, float64(p.DecimalScale))
		for i := range result {
			result[i] = v
		}
		return result, nil
	}

	needBits := n * p.NBits
	if len(payload)*8 < needBits {
		return nil, fmt.Errorf("pack: Unsimple: payload too short for %d values at %d bits", n, p.NBits)
	}

	scaleE := math.Ldexp(1.0, p.BinaryScale)
	scaleD := math.Pow(10, float64(p.DecimalScale))
	bitOff := 0
	for i := 0; i < n; i++ {
		x := bitio.GetBits(payload, bitOff, p.NBits)
		result[i] = (p.Reference + scaleE*float64(x)) / scaleD
		bitOff += p.NBits
	}
	return result, nil
}

// RequiredBits returns ceil(log2((max-min)*10^D/2^E + 1)), the smallest
// bit width that can represent the data's dynamic range without loss
// beyond the packing quantization step, per spec.md §4.4.
func RequiredBits(min, max float64, binaryScale, decimalScale int) int {
	if max <= min {
		return 0
	}
	scaleE := math.Ldexp(1.0, binaryScale)
	scaleD := math.Pow(10, float64(decimalScale))
	span := (max-min)*scaleD/scaleE + 1
	if span <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(span)))
}

func narrowIEEE32(x float64) float64 {
	return ieee.BitsToFloat32(ieee.Float32ToBits(x))
}

// QuantizeForRaster scales f to non-negative integers the same way Simple
// does (Y = round((X · 10^D - R) / 2^E)), but leaves the bit width
// unconstrained: the raster packer picks a pixel depth to cover whatever
// range comes out, instead of clamping to a fixed NBits.
func QuantizeForRaster(f []float64, p SimpleParams) (values []int64, patched SimpleParams, err error) {
	patched = p
	if len(f) == 0 {
		patched.Constant = true
		return nil, patched, nil
	}

	rmin, rmax := f[0], f[0]
	for _, v := range f {
		if v < rmin {
			rmin = v
		}
		if v > rmax {
			rmax = v
		}
	}

	R := narrowIEEE32(rmin)
	patched.Reference = R
	if rmin == rmax {
		patched.Constant = true
		return make([]int64, len(f)), patched, nil
	}

	scaleD := math.Pow(10, float64(p.DecimalScale))
	scaleE := math.Ldexp(1.0, p.BinaryScale)

	values = make([]int64, len(f))
	for i, v := range f {
		q := math.Round((v*scaleD - R) / scaleE)
		if q < 0 {
			q = 0
		}
		values[i] = int64(q)
	}
	patched.Constant = false
	return values, patched, nil
}

// UnquantizeForRaster is the inverse of QuantizeForRaster.
func UnquantizeForRaster(values []int64, p SimpleParams) []float64 {
	scaleE := math.Ldexp(1.0, p.BinaryScale)
	scaleD := math.Pow(10, float64(p.DecimalScale))
	out := make([]float64, len(values))
	if p.Constant {
		v := p.Reference / scaleD
		for i := range out {
			out[i] = v
		}
		return out
	}
	for i, q := range values {
		out[i] = (p.Reference + scaleE*float64(q)) / scaleD
	}
	return out
}
