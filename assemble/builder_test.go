package assemble_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/assemble"
	"github.com/wxgrib/grib2/grib2err"
	"github.com/wxgrib/grib2/pack"
	"github.com/wxgrib/grib2/section"
)

func newLatLonGridValues() []int64 {
	// GDT 3.0 static prefix: 19 fields, fields 12 and 15 (La1, La2) signed.
	return []int64{
		6, 0, 0, 0, 0, 0, 0,
		2, 2, // Ni, Nj
		0, 0, // basic angle, subdivisions
		1000000, 2000000, // La1, Lo1
		0x30,             // resolution/component flags
		1500000, 2500000, // La2, Lo2
		500000, 500000, // Di, Dj
		0x40, // scanning mode
	}
}

func newPDT0Values() []int64 {
	return []int64{0, 0, 2, 0, 0, 6, 1, 0, 0, 1, 0, 0, 1, 0, 0}
}

func newBuilder(t *testing.T) *assemble.Builder {
	t.Helper()
	return assemble.NewBuilder(0, section.Section1Params{
		OriginatingCenter:         7,
		MasterTablesVersion:       2,
		ReferenceTimeSignificance: 1,
		Year:                      2026,
		Month:                     7,
		Day:                       31,
		Hour:                      0,
		ProductionStatus:          0,
		DataType:                  1,
	})
}

func TestBuilderSimpleFieldEnvelope(t *testing.T) {
	b := newBuilder(t)
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             newLatLonGridValues(),
		NumberOfDataPoints: 4,
	}))

	require.NoError(t, b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{1.0, 2.0, 3.0, 4.0},
		BitmapIndicator:       255,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	}))

	msg, err := b.Finalize()
	require.NoError(t, err)
	require.NotEmpty(t, msg)

	assert.Equal(t, "GRIB", string(msg[:4]))
	assert.Equal(t, "7777", string(msg[len(msg)-4:]))

	var total uint64
	for _, b := range msg[8:16] {
		total = total<<8 | uint64(b)
	}
	assert.Equal(t, uint64(len(msg)), total)
}

func TestBuilderRejectsFieldBeforeGrid(t *testing.T) {
	b := newBuilder(t)
	err := b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{1, 2, 3, 4},
		BitmapIndicator:       255,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	})
	require.Error(t, err)
	kind, ok := grib2err.Of(err)
	require.True(t, ok)
	assert.Equal(t, grib2err.BadPredecessorSection, kind)
}

func TestBuilderRejectsCallsAfterFinalize(t *testing.T) {
	b := newBuilder(t)
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             newLatLonGridValues(),
		NumberOfDataPoints: 4,
	}))
	require.NoError(t, b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{1, 2, 3, 4},
		BitmapIndicator:       255,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	}))
	_, err := b.Finalize()
	require.NoError(t, err)

	_, err = b.Finalize()
	kind, ok := grib2err.Of(err)
	require.True(t, ok)
	assert.Equal(t, grib2err.AlreadyComplete, kind)
}

func TestBuilderBitmapContractionThenReuse(t *testing.T) {
	b := newBuilder(t)
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             newLatLonGridValues(),
		NumberOfDataPoints: 4,
	}))

	require.NoError(t, b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{1, 2, 3, 4},
		BitmapIndicator:       0,
		Bitmap:                []bool{true, false, true, false},
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	}))

	require.NoError(t, b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{5, 6, 7, 8},
		BitmapIndicator:       254,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	}))

	msg, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "7777", string(msg[len(msg)-4:]))
}

func TestBuilderMissingPriorBitmapForIndicator254(t *testing.T) {
	b := newBuilder(t)
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             newLatLonGridValues(),
		NumberOfDataPoints: 4,
	}))

	err := b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{1, 2, 3, 4},
		BitmapIndicator:       254,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	})
	require.Error(t, err)
	kind, ok := grib2err.Of(err)
	require.True(t, ok)
	assert.Equal(t, grib2err.MissingPriorBitmap, kind)
}

func TestBuilderSphericalHarmonicRequiresMatchingGDT(t *testing.T) {
	b := newBuilder(t)
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             newLatLonGridValues(),
		NumberOfDataPoints: 4,
	}))

	err := b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         newPDT0Values(),
		Data:                  []float64{1, 2, 3, 4},
		BitmapIndicator:       255,
		DRTNumber:             50,
		Kind:                  assemble.PackSphericalSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	})
	require.Error(t, err)
	kind, ok := grib2err.Of(err)
	require.True(t, ok)
	assert.Equal(t, grib2err.SphericalHarmonicGDTRequired, kind)
}

func TestBuilderComplexFieldEnvelope(t *testing.T) {
	b := newBuilder(t)
	n := 200
	values := make([]int64, n)
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i % 13)
		values[i] = int64(i)
	}
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             newLatLonGridValues(),
		NumberOfDataPoints: uint32(n),
	}))

	pdt := newPDT0Values()
	require.NoError(t, b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         pdt,
		Data:                  data,
		BitmapIndicator:       255,
		DRTNumber:             2,
		Kind:                  assemble.PackComplex,
		Complex:               pack.ComplexParams{Order: 0, DecimalScale: 2},
	}))

	msg, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "GRIB", string(msg[:4]))
}
