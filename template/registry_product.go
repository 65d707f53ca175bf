package template

// registerProductTemplates registers the product definition templates
// (Table 4.x) this library builds and parses, grounded on the field order
// documented on ProductTemplate in product.go.
func registerProductTemplates(r *Registry) {
	// PDT 4.0: Analysis or forecast at a horizontal level/layer at a
	// point in time.
	r.register(ProductDefinition, 0, entry{Descriptor: Descriptor{
		Widths: []int{
			1, 1, 1, 1, 1, 2, 1, 1, 4, // category..forecast time
			1, 1, 4, 1, 1, 4, // first/second fixed surface
		},
		Signed: allUnsigned(15),
	}})

	// PDT 4.8: Average, accumulation, extreme values or other statistical
	// processing at a horizontal level/layer in a continuous or
	// non-continuous time interval. The static prefix matches PDT 4.0
	// plus the statistical-processing block; the trailing time-range
	// specifications repeat NumberOfTimeRanges times (2 octets at a fixed
	// offset in the static prefix), each 12 octets wide.
	r.register(ProductDefinition, 8, entry{
		Descriptor: Descriptor{
			Widths: []int{
				1, 1, 1, 1, 1, 2, 1, 1, 4,
				1, 1, 4, 1, 1, 4,
				2, 1, 1, 1, 1, 1, 4, 1, 4, // overall time period block
				1, 4, // number of time ranges, number missing
			},
			Signed:         allUnsigned(25),
			NeedsExtension: true,
		},
		extend: func(decoded []int64) ([]int, []bool, error) {
			// decoded[23] is "number of time ranges" (field 24, 1-based),
			// the field immediately preceding "number missing".
			n := int(decoded[23])
			widths := make([]int, 0, n*6)
			signed := make([]bool, 0, n*6)
			for i := 0; i < n; i++ {
				widths = append(widths, 1, 1, 4, 1, 4, 1)
				signed = append(signed, false, false, false, false, false, false)
			}
			return widths, signed, nil
		},
	})
}
