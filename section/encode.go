package section

import (
	"encoding/binary"
	"math"
)

// EncodeSection0 renders the 16-octet Indicator Section. totalLength is the
// full message length in octets including this section; callers that don't
// know it yet (the common case while assembling a message) pass 0 and
// rewrite octets 9-16 once Section 8 has been appended.
func EncodeSection0(discipline uint8, totalLength uint64) []byte {
	buf := make([]byte, 16)
	copy(buf[0:4], "GRIB")
	buf[6] = discipline
	buf[7] = 2
	binary.BigEndian.PutUint64(buf[8:16], totalLength)
	return buf
}

// PatchSection0Length rewrites the total-length field of an already encoded
// Section 0 in place.
func PatchSection0Length(sec0 []byte, totalLength uint64) {
	binary.BigEndian.PutUint64(sec0[8:16], totalLength)
}

// Section1Params holds the fields NewSection1FromBytes decodes, in the
// order they're written to the wire.
type Section1Params struct {
	OriginatingCenter         uint16
	OriginatingSubcenter      uint16
	MasterTablesVersion       uint8
	LocalTablesVersion        uint8
	ReferenceTimeSignificance uint8
	Year                      uint16
	Month                     uint8
	Day                       uint8
	Hour                      uint8
	Minute                    uint8
	Second                    uint8
	ProductionStatus          uint8
	DataType                  uint8
}

// EncodeSection1 renders the fixed 21-octet Identification Section.
func EncodeSection1(p Section1Params) []byte {
	buf := make([]byte, 21)
	binary.BigEndian.PutUint32(buf[0:4], 21)
	buf[4] = 1
	binary.BigEndian.PutUint16(buf[5:7], p.OriginatingCenter)
	binary.BigEndian.PutUint16(buf[7:9], p.OriginatingSubcenter)
	buf[9] = p.MasterTablesVersion
	buf[10] = p.LocalTablesVersion
	buf[11] = p.ReferenceTimeSignificance
	binary.BigEndian.PutUint16(buf[12:14], p.Year)
	buf[14] = p.Month
	buf[15] = p.Day
	buf[16] = p.Hour
	buf[17] = p.Minute
	buf[18] = p.Second
	buf[19] = p.ProductionStatus
	buf[20] = p.DataType
	return buf
}

// EncodeSection2 renders the Local Use Section carrying localUse verbatim.
func EncodeSection2(localUse []byte) []byte {
	buf := make([]byte, 5+len(localUse))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)))
	buf[4] = 2
	copy(buf[5:], localUse)
	return buf
}

// EncodeSection3 renders the Grid Definition Section. template is the
// already-encoded grid definition template body (Template 3.N); optionalList
// carries the "number of points" list used by quasi-regular grids, encoded
// as four-octet big-endian entries.
func EncodeSection3(gridDefinitionSource uint8, numberOfDataPoints uint32, templateNumber uint16, template []byte, optionalList []uint32) []byte {
	optionalBytes := len(optionalList) * 4
	length := 14 + len(template) + optionalBytes
	buf := make([]byte, length)
	binary.BigEndian.PutUint32(buf[0:4], uint32(length))
	buf[4] = 3
	buf[5] = gridDefinitionSource
	binary.BigEndian.PutUint32(buf[6:10], numberOfDataPoints)
	buf[10] = uint8(optionalBytes)
	if len(optionalList) > 0 {
		buf[11] = 0
	}
	binary.BigEndian.PutUint16(buf[12:14], templateNumber)
	copy(buf[14:14+len(template)], template)
	off := 14 + len(template)
	for _, v := range optionalList {
		binary.BigEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
	return buf
}

// EncodeSection4 renders the Product Definition Section. template is the
// encoded Template 4.N body; coordinateValues carries optional hybrid
// vertical coordinate values.
func EncodeSection4(templateNumber uint16, template []byte, coordinateValues []float32) []byte {
	length := 9 + len(template) + 4*len(coordinateValues)
	buf := make([]byte, length)
	binary.BigEndian.PutUint32(buf[0:4], uint32(length))
	buf[4] = 4
	binary.BigEndian.PutUint16(buf[5:7], uint16(len(coordinateValues)))
	binary.BigEndian.PutUint16(buf[7:9], templateNumber)
	copy(buf[9:9+len(template)], template)
	off := 9 + len(template)
	for _, v := range coordinateValues {
		binary.BigEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return buf
}

// EncodeSection5 renders the Data Representation Section. template is the
// encoded Template 5.N body produced by the pack package.
func EncodeSection5(numberOfDataPoints uint32, templateNumber uint16, template []byte) []byte {
	length := 11 + len(template)
	buf := make([]byte, length)
	binary.BigEndian.PutUint32(buf[0:4], uint32(length))
	buf[4] = 5
	binary.BigEndian.PutUint32(buf[5:9], numberOfDataPoints)
	binary.BigEndian.PutUint16(buf[9:11], templateNumber)
	copy(buf[11:], template)
	return buf
}

// EncodeSection6 renders the Bit-map Section. indicator follows Table 6.0:
// 0 means bitmap carries an explicit map, 255 means no bitmap applies, and
// 1-253 reference a predefined bitmap (no payload either way).
func EncodeSection6(indicator uint8, bitmap []byte) []byte {
	payload := bitmap
	if indicator != 0 {
		payload = nil
	}
	buf := make([]byte, 6+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)))
	buf[4] = 6
	buf[5] = indicator
	copy(buf[6:], payload)
	return buf
}

// EncodeSection7 renders the Data Section carrying the already-packed
// payload produced by the pack or raster package.
func EncodeSection7(data []byte) []byte {
	buf := make([]byte, 5+len(data))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)))
	buf[4] = 7
	copy(buf[5:], data)
	return buf
}

// EncodeSection8 renders the fixed 4-octet End Section.
func EncodeSection8() []byte {
	return []byte("7777")
}
