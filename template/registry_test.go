package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/template"
)

func TestDescribeUnsupportedTemplate(t *testing.T) {
	r := template.NewRegistry()
	_, err := r.Describe(template.DataRepresentation, 999)
	require.Error(t, err)
	var unsupported *template.ErrUnsupportedTemplate
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 999, unsupported.Number)
}

func TestEncodeDecodeValuesRoundTrip(t *testing.T) {
	r := template.NewRegistry()
	d, err := r.Describe(template.DataRepresentation, 0)
	require.NoError(t, err)

	values := []int64{1078530011, -3, 2, 12, 0}
	buf, err := template.EncodeValues(d, values)
	require.NoError(t, err)
	assert.Equal(t, d.Len(), len(buf))

	got, err := template.DecodeValues(d, buf)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestEncodeValuesRejectsOutOfRange(t *testing.T) {
	r := template.NewRegistry()
	d, err := r.Describe(template.DataRepresentation, 0)
	require.NoError(t, err)

	values := []int64{0, 0, 0, 1 << 20, 0} // nbits field is 1 octet wide
	_, err = template.EncodeValues(d, values)
	assert.Error(t, err)
}

func TestPDT8ExtensionWidensWithTimeRanges(t *testing.T) {
	r := template.NewRegistry()
	d, err := r.Describe(template.ProductDefinition, 8)
	require.NoError(t, err)
	require.True(t, d.NeedsExtension)

	decoded := make([]int64, len(d.Widths))
	decoded[23] = 2 // two time ranges

	widths, signed, err := r.Extend(template.ProductDefinition, 8, decoded)
	require.NoError(t, err)
	assert.Len(t, widths, 12) // 6 fields per time range × 2
	assert.Len(t, signed, 12)
}
