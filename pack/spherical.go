package pack

import "errors"

// ErrUnsupportedTruncation is returned by SphericalHarmonic when the
// complex (DRT 5.51) variant is requested but the triangular truncation
// parameters (J, K, M) carried in the prior Section 3 grid definition are
// all zero.
var ErrUnsupportedTruncation = errors.New("pack: spherical harmonic complex packing requires non-zero truncation parameters")

// Truncation holds the triangular truncation parameters (J, K, M) a
// spherical harmonic grid definition (GDT 3.50) carries.
type Truncation struct {
	J, K, M int
}

// SHResult carries the (0,0) coefficient, stored separately from the
// packed remainder per spec.md §4.7, plus whichever of SimplePatched or
// ComplexPatched the caller's Complex flag selected.
type SHResult struct {
	Real00         float64
	SimplePatched  *SimpleParams
	ComplexPatched *ComplexResult
}

// SphericalHarmonic packs spherical-harmonic coefficients for DRT 5.50
// (simple packing of the remainder) or 5.51 (complex packing of the
// remainder). coeffs[0] is the (0,0) real coefficient, separated out and
// stored as an IEEE-32 bit pattern; the rest of coeffs is packed by
// Simple or Complex.
func SphericalHarmonic(coeffs []float64, complex bool, simpleParams SimpleParams, complexParams ComplexParams, trunc Truncation) (payload []byte, result SHResult, err error) {
	if len(coeffs) == 0 {
		return nil, SHResult{}, errors.New("pack: SphericalHarmonic: coeffs must contain at least the (0,0) term")
	}
	if complex && trunc.J == 0 && trunc.K == 0 && trunc.M == 0 {
		return nil, SHResult{}, ErrUnsupportedTruncation
	}

	real00 := narrowIEEE32(coeffs[0])
	rest := coeffs[1:]

	if complex {
		p, cr, err := Complex(rest, complexParams)
		if err != nil {
			return nil, SHResult{}, err
		}
		return p, SHResult{Real00: real00, ComplexPatched: &cr}, nil
	}

	p, sp, err := Simple(rest, simpleParams)
	if err != nil {
		return nil, SHResult{}, err
	}
	return p, SHResult{Real00: real00, SimplePatched: &sp}, nil
}

// UnSphericalHarmonic is the inverse of SphericalHarmonic: it prepends the
// stored (0,0) coefficient to the unpacked remainder.
func UnSphericalHarmonic(payload []byte, result SHResult, n int) ([]float64, error) {
	var rest []float64
	var err error
	switch {
	case result.ComplexPatched != nil:
		rest, err = Uncomplex(payload, *result.ComplexPatched, n-1)
	case result.SimplePatched != nil:
		rest, err = Unsimple(payload, *result.SimplePatched, n-1)
	default:
		return nil, errors.New("pack: UnSphericalHarmonic: result has neither SimplePatched nor ComplexPatched set")
	}
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	out[0] = result.Real00
	copy(out[1:], rest)
	return out, nil
}
