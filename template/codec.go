package template

import (
	"fmt"

	"github.com/wxgrib/grib2/bitio"
)

// EncodeValues packs values (one per descriptor field, in order) into a
// freshly allocated octet buffer per Descriptor's widths and sign
// convention. A signed field encodes negatives as a leading 1-bit plus
// the magnitude in the remaining 8w-1 bits (sign-magnitude); values must
// satisfy |v| < 2^(8w-1) for signed fields or 0 ≤ v < 2^(8w) for unsigned
// ones.
func EncodeValues(d Descriptor, values []int64) ([]byte, error) {
	if len(values) != len(d.Widths) {
		return nil, fmt.Errorf("template: EncodeValues: got %d values, descriptor wants %d", len(values), len(d.Widths))
	}
	buf := make([]byte, d.Len())
	bitOff := 0
	for i, w := range d.Widths {
		v := values[i]
		signed := i < len(d.Signed) && d.Signed[i]
		if signed {
			if !bitio.SignMagnitudeWidth(v, w) {
				return nil, fmt.Errorf("template: EncodeValues: field %d value %d does not fit in signed %d-octet field", i, v, w)
			}
			bitio.PutBits(buf, bitOff, 8*w, bitio.EncodeSignMagnitude(v, w))
		} else {
			limit := int64(1) << uint(8*w)
			if v < 0 || v >= limit {
				return nil, fmt.Errorf("template: EncodeValues: field %d value %d does not fit in unsigned %d-octet field", i, v, w)
			}
			bitio.PutBits(buf, bitOff, 8*w, uint64(v))
		}
		bitOff += 8 * w
	}
	return buf, nil
}

// DecodeExtended decodes a template body that may carry a NeedsExtension
// repeating tail: the static prefix is decoded first via the registered
// Descriptor, then Registry.Extend derives the tail's widths from the
// decoded prefix before the tail itself is decoded. For templates that
// don't need extension this is equivalent to Describe+DecodeValues.
func (r *Registry) DecodeExtended(kind Kind, number int, body []byte) ([]int64, error) {
	desc, err := r.Describe(kind, number)
	if err != nil {
		return nil, err
	}
	if len(body) < desc.Len() {
		return nil, fmt.Errorf("template: DecodeExtended: %s %d body too short: have %d, want at least %d", kind, number, len(body), desc.Len())
	}
	values, err := DecodeValues(desc, body[:desc.Len()])
	if err != nil {
		return nil, err
	}
	if !desc.NeedsExtension {
		return values, nil
	}
	widths, signed, err := r.Extend(kind, number, values)
	if err != nil {
		return nil, err
	}
	extDesc := Descriptor{Widths: widths, Signed: signed}
	extValues, err := DecodeValues(extDesc, body[desc.Len():])
	if err != nil {
		return nil, err
	}
	return append(values, extValues...), nil
}

// DecodeValues is the inverse of EncodeValues.
func DecodeValues(d Descriptor, buf []byte) ([]int64, error) {
	if len(buf) < d.Len() {
		return nil, fmt.Errorf("template: DecodeValues: buffer too short: have %d, want %d", len(buf), d.Len())
	}
	values := make([]int64, len(d.Widths))
	bitOff := 0
	for i, w := range d.Widths {
		raw := bitio.GetBits(buf, bitOff, 8*w)
		signed := i < len(d.Signed) && d.Signed[i]
		if signed {
			values[i] = bitio.DecodeSignMagnitude(raw, w)
		} else {
			values[i] = int64(raw)
		}
		bitOff += 8 * w
	}
	return values, nil
}
