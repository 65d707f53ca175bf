package template

// commonDRTWidths is the reference/scale/width prefix shared by every
// data representation template this library implements: reference value
// (IEEE-32, 4 octets), binary scale factor E (signed, 2 octets), decimal
// scale factor D (signed, 2 octets), number of bits B (1 octet),
// type of original field values (1 octet).
var commonDRTWidths = []int{4, 2, 2, 1, 1}
var commonDRTSigned = []bool{false, true, true, false, false}

func concatInts(parts ...[]int) []int {
	var out []int
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func concatBools(parts ...[]bool) []bool {
	var out []bool
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// registerDataRepTemplates registers the data representation templates
// (Table 5.x) this library's packers (package pack) and raster codecs
// (package raster) implement.
func registerDataRepTemplates(r *Registry) {
	// DRT 5.0: grid point data, simple packing (pack.Simple).
	r.register(DataRepresentation, 0, entry{Descriptor: Descriptor{
		Widths: commonDRTWidths,
		Signed: commonDRTSigned,
	}})

	complexTail := []int{
		1, 1, // group splitting method, missing value management
		4, 4, // primary/secondary missing value substitute (IEEE-32)
		4,    // number of groups
		1, 1, // reference for group widths, bits for group widths
		4, 1, // reference for group lengths, length increment
		4, 1, // true length of last group, bits for group lengths
	}
	complexTailSigned := allUnsigned(len(complexTail))

	// DRT 5.2: complex packing, no spatial differencing (pack.Complex).
	r.register(DataRepresentation, 2, entry{Descriptor: Descriptor{
		Widths: concatInts(commonDRTWidths, complexTail),
		Signed: concatBools(commonDRTSigned, complexTailSigned),
	}})

	// DRT 5.3: complex packing with spatial differencing (pack.Complex).
	r.register(DataRepresentation, 3, entry{Descriptor: Descriptor{
		Widths: concatInts(commonDRTWidths, complexTail, []int{1, 1}),
		Signed: concatBools(commonDRTSigned, complexTailSigned, []bool{false, false}),
	}})

	// DRT 5.40: JPEG2000 raster packing (raster.JPEG2000).
	r.register(DataRepresentation, 40, entry{Descriptor: Descriptor{
		Widths: concatInts(commonDRTWidths, []int{1, 1}),
		Signed: concatBools(commonDRTSigned, []bool{false, false}),
	}})

	// DRT 5.41: PNG raster packing (raster.PNG).
	r.register(DataRepresentation, 41, entry{Descriptor: Descriptor{
		Widths: commonDRTWidths,
		Signed: commonDRTSigned,
	}})

	// DRT 5.50: spherical harmonic, simple packing (pack.SphericalHarmonic).
	// Field 1 is the IEEE-32 real part of the (0,0) coefficient, stored
	// outside the common reference/scale prefix.
	r.register(DataRepresentation, 50, entry{Descriptor: Descriptor{
		Widths: concatInts([]int{4}, commonDRTWidths),
		Signed: concatBools([]bool{false}, commonDRTSigned),
	}})

	// DRT 5.51: spherical harmonic, complex packing.
	r.register(DataRepresentation, 51, entry{Descriptor: Descriptor{
		Widths: concatInts([]int{4}, commonDRTWidths, complexTail),
		Signed: concatBools([]bool{false}, commonDRTSigned, complexTailSigned),
	}})
}
