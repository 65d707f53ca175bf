package index_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/assemble"
	"github.com/wxgrib/grib2/index"
	"github.com/wxgrib/grib2/pack"
	"github.com/wxgrib/grib2/reader"
	"github.com/wxgrib/grib2/section"
)

func latLonGridValues() []int64 {
	return []int64{
		6, 0, 0, 0, 0, 0, 0,
		2, 2,
		0, 0,
		1000000, 2000000,
		0x30,
		1500000, 2500000,
		500000, 500000,
		0x40,
	}
}

func pdt0Values(category, parameter uint8) []int64 {
	return []int64{int64(category), int64(parameter), 2, 0, 0, 6, 1, 0, 0, 1, 0, 0, 1, 0, 0}
}

// oneFieldMessage builds a single-field GRIB2 message with the given
// discipline and PDT 0 category/parameter, grounded on
// assemble.Builder's round-trip scenario.
func oneFieldMessage(t *testing.T, discipline uint8, category, parameter uint8) []byte {
	t.Helper()
	b := assemble.NewBuilder(discipline, section.Section1Params{
		OriginatingCenter:   7,
		MasterTablesVersion: 2,
		Year:                2026,
		Month:               7,
		Day:                 31,
		ProductionStatus:    0,
		DataType:            1,
	})
	require.NoError(t, b.AddGrid(assemble.GridParams{
		TemplateNumber:     0,
		Values:             latLonGridValues(),
		NumberOfDataPoints: 4,
	}))
	require.NoError(t, b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         pdt0Values(category, parameter),
		Data:                  []float64{1.0, 2.0, 3.0, 4.0},
		BitmapIndicator:       255,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: 8},
	}))
	msg, err := b.Finalize()
	require.NoError(t, err)
	return msg
}

// threeMessageFile concatenates three independent single-field messages
// with disciplines [0, 10, 0], matching spec.md §8 scenario 4.
func threeMessageFile(t *testing.T) []byte {
	t.Helper()
	m0 := oneFieldMessage(t, 0, 1, 10)
	m1 := oneFieldMessage(t, 10, 2, 20)
	m2 := oneFieldMessage(t, 0, 3, 30)
	var all []byte
	all = append(all, m0...)
	all = append(all, m1...)
	all = append(all, m2...)
	return all
}

func TestBuildThreeFieldIndex(t *testing.T) {
	data := threeMessageFile(t)
	buf, err := index.Build(bytes.NewReader(data), "three.grib2")
	require.NoError(t, err)
	require.Len(t, buf.Records, 3)

	wantDiscipline := []uint8{0, 10, 0}
	for i, rec := range buf.Records {
		assert.EqualValues(t, i, rec.MessageSeq)
		assert.EqualValues(t, 0, rec.FieldSeqInMessage)
		assert.Equal(t, wantDiscipline[i], rec.Discipline)
		assert.NotEmpty(t, rec.Section1)
		assert.NotEmpty(t, rec.Section3)
		assert.NotEmpty(t, rec.Section4)
		assert.NotEmpty(t, rec.Section5)
		assert.Len(t, rec.Section6Prefix, 6)
	}

	// Each offset lands exactly on a "GRIB" marker.
	for _, rec := range buf.Records {
		assert.Equal(t, "GRIB", string(data[rec.FileOffsetMessage:rec.FileOffsetMessage+4]))
	}
}

func TestIndexPersistRoundTrip(t *testing.T) {
	data := threeMessageFile(t)
	buf, err := index.Build(bytes.NewReader(data), "three.grib2")
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = buf.WriteTo(&out)
	require.NoError(t, err)

	reread, err := index.ReadBuffer(&out)
	require.NoError(t, err)
	assert.Equal(t, "three.grib2", reread.SourceFileName)
	require.Len(t, reread.Records, len(buf.Records))
	for i := range buf.Records {
		assert.Equal(t, buf.Records[i], reread.Records[i])
	}
}

func TestSearchWildcard(t *testing.T) {
	data := threeMessageFile(t)
	buf, err := index.Build(bytes.NewReader(data), "three.grib2")
	require.NoError(t, err)

	// jpdt[0] = -9999 (wildcard category), jpdt[1] = 20 (exact parameter)
	// matches spec.md §8 scenario 6's shape; field 2 (index 1) carries
	// category=2, parameter=20.
	idx, err := index.Search(buf, index.Query{
		Discipline: -1,
		PDTN:       0,
		PDT:        []int64{-9999, 20},
		GDTN:       -1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

// TestSearchByDiscipline matches spec.md §8 scenario 4: with jdisc=10,
// Search returns field 2 (index 1), the only record from a
// discipline-10 message, even though an earlier record (index 0, in a
// discipline-0 message) would otherwise match every other wildcarded
// field of the query.
func TestSearchByDiscipline(t *testing.T) {
	data := threeMessageFile(t)
	buf, err := index.Build(bytes.NewReader(data), "three.grib2")
	require.NoError(t, err)

	idx, err := index.Search(buf, index.Query{Discipline: 10, PDTN: -1, GDTN: -1})
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	assert.EqualValues(t, 10, buf.Records[idx].Discipline)

	// Resolving the rest of the field (its decoded values) goes through the
	// read path, with the same discipline query over the whole file.
	field, err := reader.ExtractField(bytes.NewReader(data), reader.ExtractQuery{
		Discipline: 10,
		PDTN:       -1,
		GDTN:       -1,
	})
	require.NoError(t, err)
	defer field.Close()
	assert.EqualValues(t, 10, field.Discipline)
	assert.EqualValues(t, []int64{2, 20, 2, 0, 0, 6, 1, 0, 0, 1, 0, 0, 1, 0, 0}, field.ProductValues)
}

func TestSearchNoDisciplineMatchReturnsNegativeOne(t *testing.T) {
	data := threeMessageFile(t)
	buf, err := index.Build(bytes.NewReader(data), "three.grib2")
	require.NoError(t, err)

	idx, err := index.Search(buf, index.Query{Discipline: 99, PDTN: -1, GDTN: -1})
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestCacheGetRegenerateFinalize(t *testing.T) {
	data := threeMessageFile(t)
	c := index.NewCache(func(h int) (io.ReaderAt, string, error) {
		return bytes.NewReader(data), "three.grib2", nil
	})

	b1, err := c.Get(5, nil)
	require.NoError(t, err)
	b2, err := c.Get(5, nil)
	require.NoError(t, err)
	assert.Same(t, b1, b2, "Get;Get must return the same cached identity")

	b3, err := c.Regenerate(5)
	require.NoError(t, err)
	assert.NotSame(t, b1, b3, "Regenerate must replace the cached entry")

	c.Finalize()
	b4, err := c.Get(5, nil)
	require.NoError(t, err)
	assert.NotSame(t, b3, b4, "Finalize must drop cached entries")

	_, err = c.Get(10000, nil)
	assert.Error(t, err)
}
