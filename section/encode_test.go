package section

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSection0RoundTrip(t *testing.T) {
	buf := EncodeSection0(2, 0)
	PatchSection0Length(buf, 123456)

	s0, err := NewSection0FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), s0.Discipline())
	assert.Equal(t, uint8(2), s0.Edition())
	assert.Equal(t, uint64(123456), s0.TotalLength())
}

func TestEncodeSection1RoundTrip(t *testing.T) {
	buf := EncodeSection1(Section1Params{
		OriginatingCenter:         7,
		OriginatingSubcenter:      0,
		MasterTablesVersion:       2,
		LocalTablesVersion:        1,
		ReferenceTimeSignificance: 1,
		Year:                      2026,
		Month:                     7,
		Day:                       31,
		Hour:                      12,
		Minute:                    0,
		Second:                    0,
		ProductionStatus:          0,
		DataType:                  1,
	})

	s1, err := NewSection1FromBytes(buf, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), s1.OriginatingCenter())
	assert.Equal(t, uint16(2026), s1.Year())
	assert.Equal(t, uint8(31), s1.Day())
	assert.Equal(t, uint8(1), s1.DataType())
}

func TestEncodeSection3RoundTrip(t *testing.T) {
	template := make([]byte, 58) // GDT 3.0 width
	buf := EncodeSection3(0, 16, 0, template, nil)

	s3, err := NewSection3FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), s3.NumberOfDataPoints())
	assert.Equal(t, uint8(0), s3.GridDefinitionTemplateNumber())
	assert.Equal(t, uint32(0), s3.OptionalListOctets())
}

func TestEncodeSection3WithOptionalList(t *testing.T) {
	template := make([]byte, 10)
	buf := EncodeSection3(0, 30, 0, template, []uint32{3, 4, 5})

	s3, err := NewSection3FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), s3.OptionalListOctets())
	assert.Equal(t, []uint32{3, 4, 5}, s3.OptionalList())
}

func TestEncodeSection4RoundTrip(t *testing.T) {
	template := make([]byte, 58)
	buf := EncodeSection4(0, template, nil)

	s4, err := NewSection4FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), s4.ProductDefinitionTemplateNumber())
	assert.Equal(t, uint32(0), s4.NumberOfCoordinateValues())
}

func TestEncodeSection5RoundTrip(t *testing.T) {
	template := make([]byte, 21)
	buf := EncodeSection5(16, 0, template)

	s5, err := NewSection5FromBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), s5.NumberOfDataPoints())
	assert.Equal(t, uint8(0), s5.DataRepresentationTemplateNumber())
}

func TestEncodeSection6NoBitmap(t *testing.T) {
	buf := EncodeSection6(255, nil)

	s6, err := NewSection6FromBytes(buf)
	require.NoError(t, err)
	assert.False(t, s6.HasBitMap())
	assert.Equal(t, uint32(6), s6.Length())
}

func TestEncodeSection6WithBitmap(t *testing.T) {
	bm := []byte{0xFF, 0x0F}
	buf := EncodeSection6(0, bm)

	s6, err := NewSection6FromBytes(buf)
	require.NoError(t, err)
	assert.True(t, s6.HasBitMap())
	assert.Equal(t, bm, s6.BitMap())
}

func TestEncodeSection7RoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	buf := EncodeSection7(data)

	s7, err := NewSection7FromReader(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, data, s7.Data())
}

func TestEncodeSection8RoundTrip(t *testing.T) {
	buf := EncodeSection8()
	s8, err := NewSection8FromBytes(buf)
	require.NoError(t, err)
	assert.True(t, s8.IsValid())
}
