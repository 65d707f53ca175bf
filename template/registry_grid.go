package template

// registerGridTemplates registers the grid definition templates (Table
// 3.x) this library builds and parses. Field widths/signs follow the
// octet layout documented on LatLonGrid/LambertGrid/SphericalHarmonicGrid
// in grid.go.
func registerGridTemplates(r *Registry) {
	// GDT 3.0: Latitude/Longitude grid. Fields 12 and 15, the latitudes of
	// the first and last grid points, are the signed fields in the static
	// prefix.
	r.register(GridDefinition, 0, entry{Descriptor: Descriptor{
		Widths: []int{1, 1, 4, 1, 4, 1, 4, 4, 4, 4, 4, 4, 4, 1, 4, 4, 4, 4, 1},
		Signed: signsFor(19, 12, 15),
	}})

	// GDT 3.30: Lambert conformal grid.
	r.register(GridDefinition, 30, entry{Descriptor: Descriptor{
		Widths: []int{
			1, 1, 4, 1, 4, 1, 4, // 1-7:  shape of earth block
			4, 4, // 8-9:   Nx, Ny
			4, 4, // 10-11: La1 (signed), Lo1
			1, // 12:    resolution and component flags
			4, // 13:    LaD
			4, // 14:    LoV
			4, 4, // 15-16: Dx, Dy
			1, 1, // 17-18: projection centre flag, scanning mode
			4, 4, // 19-20: Latin1 (signed), Latin2 (signed)
			4, 4, // 21-22: latitude/longitude of southern pole
			4, // 23:    LaDInDegrees-equivalent / reserved scaling field
		},
		Signed: signsFor(23, 10, 19, 20, 21),
	}})

	// GDT 3.50: Spherical harmonic coefficients. J, K, M truncation
	// parameters plus the harmonic representation/ordering bytes.
	r.register(GridDefinition, 50, entry{Descriptor: Descriptor{
		Widths: []int{4, 4, 4, 1, 1},
		Signed: allUnsigned(5),
	}})
}

// signsFor returns an n-length Signed slice with true at each of the given
// 1-based positions (matching the template field numbering convention
// used in WMO Table descriptions) and false elsewhere.
func signsFor(n int, onePositions ...int) []bool {
	s := allUnsigned(n)
	for _, p := range onePositions {
		if p >= 1 && p <= n {
			s[p-1] = true
		}
	}
	return s
}
