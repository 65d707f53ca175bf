package reader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/wxgrib/grib2/bitio"
	"github.com/wxgrib/grib2/grib2err"
	"github.com/wxgrib/grib2/ieee"
	"github.com/wxgrib/grib2/pack"
	"github.com/wxgrib/grib2/raster"
	"github.com/wxgrib/grib2/section"
	"github.com/wxgrib/grib2/template"
)

// Wildcard is the query-position value meaning "match any decoded
// value", per spec.md §4.9's match test.
const Wildcard = -9999

// GribField is C9's decoded view of one field: identification, grid and
// product geometry, the unpacked float payload, and enough of the
// surrounding templates to re-encode the field if needed. The caller owns
// it and must call Close when done, per the "pointer-dimensional output
// arguments" re-architecture in spec.md §9.
type GribField struct {
	Discipline     uint8
	Identification section.Section1

	GridTemplateNumber int
	GridValues         []int64
	NumberOfGridPoints int

	ProductTemplateNumber int
	ProductValues         []int64
	CoordinateValues      []float32

	DataRepTemplateNumber int
	DataRepValues         []int64

	BitmapIndicator int
	Bitmap          []bool

	// Data holds one value per grid point (length NumberOfGridPoints):
	// unpacked and, when a bitmap is present, expanded back to the full
	// grid with Missing substituted for excluded points.
	Data []float64

	closed bool
}

// Close releases the field's backing arrays. Safe to call more than once
// and on a nil receiver.
func (f *GribField) Close() error {
	if f == nil || f.closed {
		return nil
	}
	f.Data = nil
	f.Bitmap = nil
	f.GridValues = nil
	f.ProductValues = nil
	f.DataRepValues = nil
	f.closed = true
	return nil
}

// ExtractQuery names the field extract_field (spec.md §4.9) is asked to
// locate: Skip counts how many earlier matches to pass over, and every
// other field is matched against the decoded message unless it carries
// the Wildcard sentinel (or -1 for the template-number fields, matching
// spec.md's convention that template numbers wildcard on -1 while value
// positions wildcard on -9999).
type ExtractQuery struct {
	Skip int

	Discipline int // -1 matches any discipline
	IDS        []int64

	PDTN int // -1 matches any product template number
	PDT  []int64

	GDTN int // -1 matches any grid template number
	GDT  []int64

	// Missing fills grid points a bitmap excludes from the packed
	// payload.
	Missing float64
}

// ExtractField walks r's sections from the start of the buffer, skipping
// fields that don't satisfy q, and returns the first (or (Skip+1)-th)
// match. The caller releases the returned field via (*GribField).Close.
func ExtractField(r io.ReaderAt, q ExtractQuery) (*GribField, error) {
	const op = "ExtractField"
	reg := template.NewRegistry()

	var (
		offset      int64
		discipline  uint8
		sec1        section.Section1
		gdtn        int
		gridValues  []int64
		ngrdpts     int
		bitmapBits  []bool
		bitmapIndic = -1
	)

	remaining := q.Skip

	var pendingPDTN int
	var pendingPDTValues []int64
	var pendingCoord []float32
	var pendingDRTN int
	var pendingDRTValues []int64
	var pendingContracted int
	havePending := false

	for {
		head := make([]byte, 5)
		n, err := r.ReadAt(head, offset)
		if n < 4 {
			if err == io.EOF {
				return nil, grib2err.New(grib2err.NotFound, op, nil)
			}
			return nil, grib2err.New(grib2err.DataIOError, op, err)
		}

		switch string(head[:4]) {
		case "GRIB":
			header := make([]byte, 16)
			if _, err := r.ReadAt(header, offset); err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}
			discipline = header[6]
			offset += 16
			continue
		case "7777":
			offset += 4
			continue
		}

		secLen := binary.BigEndian.Uint32(head[:4])
		if secLen < 5 {
			return nil, grib2err.New(grib2err.DataIOError, op, fmt.Errorf("invalid section length %d at offset %d", secLen, offset))
		}
		body := make([]byte, secLen)
		if _, err := r.ReadAt(body, offset); err != nil {
			return nil, grib2err.New(grib2err.DataIOError, op, err)
		}
		secNum := head[4]

		switch secNum {
		case 1:
			s1, err := section.NewSection1FromBytes(body, false)
			if err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}
			sec1 = s1

		case 3:
			s3, err := section.NewSection3FromBytes(body)
			if err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}
			gdtn = int(s3.GridDefinitionTemplateNumber())
			ngrdpts = int(s3.NumberOfDataPoints())
			gridValues, err = reg.DecodeExtended(template.GridDefinition, gdtn, s3.Template())
			if err != nil {
				return nil, grib2err.New(grib2err.UnsupportedTemplate, op, err)
			}
			bitmapBits = nil
			bitmapIndic = -1

		case 4:
			s4, err := section.NewSection4FromBytes(body)
			if err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}
			pendingPDTN = int(s4.ProductDefinitionTemplateNumber())
			pendingPDTValues, err = reg.DecodeExtended(template.ProductDefinition, pendingPDTN, s4.Template())
			if err != nil {
				return nil, grib2err.New(grib2err.UnsupportedTemplate, op, err)
			}
			pendingCoord = s4.CoordinateValues()
			havePending = true

		case 5:
			if !havePending {
				break
			}
			s5, err := section.NewSection5FromBytes(body)
			if err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}
			pendingDRTN = int(s5.DataRepresentationTemplateNumber())
			pendingDRTValues, err = reg.DecodeExtended(template.DataRepresentation, pendingDRTN, s5.Template())
			if err != nil {
				return nil, grib2err.New(grib2err.UnsupportedTemplate, op, err)
			}
			pendingContracted = int(s5.NumberOfDataPoints())

		case 6:
			s6, err := section.NewSection6FromBytes(body)
			if err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}
			indicator := int(s6.BitMapIndicator())
			switch {
			case indicator == 0:
				bitmapBits = unpackBitmapBits(s6.BitMap(), ngrdpts)
				bitmapIndic = 0
			case indicator == 254:
				if bitmapIndic < 0 || bitmapIndic > 253 {
					return nil, grib2err.New(grib2err.MissingPriorBitmap, op, nil)
				}
				// bitmapBits and bitmapIndic carry over unchanged.
			default:
				bitmapBits = nil
				bitmapIndic = indicator
			}

		case 7:
			if !havePending {
				break
			}
			s7, err := section.NewSection7FromBytes(body)
			if err != nil {
				return nil, grib2err.New(grib2err.DataIOError, op, err)
			}

			if matches(discipline, q.Discipline, sec1, q.IDS, pendingPDTN, q.PDTN, pendingPDTValues, q.PDT, gdtn, q.GDTN, gridValues, q.GDT) {
				if remaining > 0 {
					remaining--
				} else {
					contracted, derr := unpackPayload(pendingDRTN, pendingDRTValues, s7.Data(), pendingContracted, reg)
					if derr != nil {
						return nil, grib2err.New(grib2err.PackingFailed, op, derr)
					}
					data := expandByBitmap(contracted, bitmapBits, ngrdpts, q.Missing)
					return &GribField{
						Discipline:            discipline,
						Identification:        sec1,
						GridTemplateNumber:    gdtn,
						GridValues:            gridValues,
						NumberOfGridPoints:    ngrdpts,
						ProductTemplateNumber: pendingPDTN,
						ProductValues:         pendingPDTValues,
						CoordinateValues:      pendingCoord,
						DataRepTemplateNumber: pendingDRTN,
						DataRepValues:         pendingDRTValues,
						BitmapIndicator:       bitmapIndic,
						Bitmap:                bitmapBits,
						Data:                  data,
					}, nil
				}
			}
			havePending = false
		}

		offset += int64(secLen)
	}
}

func matches(disc uint8, wantDisc int, sec1 section.Section1, wantIDS []int64,
	pdtn int, wantPDTN int, pdt []int64, wantPDT []int64,
	gdtn int, wantGDTN int, gdt []int64, wantGDT []int64) bool {

	if wantDisc != -1 && int(disc) != wantDisc {
		return false
	}
	if sec1 != nil && len(wantIDS) > 0 {
		ids := []int64{
			int64(sec1.OriginatingCenter()), int64(sec1.OriginatingSubcenter()),
			int64(sec1.MasterTablesVersion()), int64(sec1.LocalTablesVersion()),
			int64(sec1.ReferenceTimeSignificance()), int64(sec1.Year()),
			int64(sec1.Month()), int64(sec1.Day()), int64(sec1.Hour()),
			int64(sec1.Minute()), int64(sec1.Second()),
			int64(sec1.ProductionStatus()), int64(sec1.DataType()),
		}
		if !matchPositional(ids, wantIDS) {
			return false
		}
	}
	if wantPDTN != -1 && pdtn != wantPDTN {
		return false
	}
	if !matchPositional(pdt, wantPDT) {
		return false
	}
	if wantGDTN != -1 && gdtn != wantGDTN {
		return false
	}
	if !matchPositional(gdt, wantGDT) {
		return false
	}
	return true
}

// matchPositional reports whether decoded satisfies want: every position
// of want is either the Wildcard sentinel or equal to decoded's value at
// that position.
func matchPositional(decoded []int64, want []int64) bool {
	for i, w := range want {
		if w == Wildcard {
			continue
		}
		if i >= len(decoded) || decoded[i] != w {
			return false
		}
	}
	return true
}

func unpackBitmapBits(raw []byte, n int) []bool {
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = bitio.GetBits(raw, i, 1) == 1
	}
	return bits
}

func expandByBitmap(contracted []float64, bits []bool, n int, missing float64) []float64 {
	if bits == nil {
		return contracted
	}
	out := make([]float64, n)
	j := 0
	for i, set := range bits {
		if set {
			out[i] = contracted[j]
			j++
		} else {
			out[i] = missing
		}
	}
	return out
}

func unpackPayload(drtn int, values []int64, payload []byte, n int, reg *template.Registry) ([]float64, error) {
	switch drtn {
	case 0:
		return pack.Unsimple(payload, decodeSimpleParams(values), n)

	case 2, 3:
		return pack.Uncomplex(payload, decodeComplexResult(values, drtn, n), n)

	case 40, 41:
		codec := raster.Codec(raster.PNG{})
		if drtn == 40 {
			codec = raster.JPEG2000{}
		}
		pix, _, _, err := raster.Unpack(payload, codec)
		if err != nil {
			return nil, err
		}
		p := decodeSimpleParams(values)
		p.Constant = false
		return pack.UnquantizeForRaster(pix, p), nil

	case 50:
		real00 := ieee.BitsToFloat32(uint32(values[0]))
		simple := decodeSimpleParams(values[1:])
		return pack.UnSphericalHarmonic(payload, pack.SHResult{Real00: real00, SimplePatched: &simple}, n)

	case 51:
		real00 := ieee.BitsToFloat32(uint32(values[0]))
		cr := decodeComplexResult(values[1:], -1, n-1)
		return pack.UnSphericalHarmonic(payload, pack.SHResult{Real00: real00, ComplexPatched: &cr}, n)
	}
	return nil, fmt.Errorf("reader: unpackPayload: unsupported data representation template %d", drtn)
}

// decodeSimpleParams treats a stored NBits of 0 as the lcpack=0 constant
// convention. This is unambiguous on read: pack.Simple only ever writes
// NBits=0 for a field whose min equals its max (an explicitly requested
// NBits of 0 is overridden by pack.RequiredBits, which cannot itself
// return 0 once rmin != rmax), so there is no "auto-selected width 0"
// case distinct from "constant" to preserve here.
func decodeSimpleParams(values []int64) pack.SimpleParams {
	return pack.SimpleParams{
		Reference:    ieee.BitsToFloat32(uint32(values[0])),
		BinaryScale:  int(values[1]),
		DecimalScale: int(values[2]),
		NBits:        int(values[3]),
		Constant:     values[3] == 0,
	}
}

func decodeComplexResult(values []int64, drtn int, n int) pack.ComplexResult {
	numGroups := int(values[9])
	r := pack.ComplexResult{
		Patched: pack.ComplexParams{
			Reference:    ieee.BitsToFloat32(uint32(values[0])),
			BinaryScale:  int(values[1]),
			DecimalScale: int(values[2]),
		},
		Constant:            n == 0 || numGroups == 0,
		NumGroups:           numGroups,
		GroupRefBits:        int(values[3]),
		RefGroupWidth:       int(values[10]),
		BitsGroupWidth:      int(values[11]),
		RefGroupLength:      int(values[12]),
		LengthIncrement:     int(values[13]),
		TrueLengthLastGroup: int(values[14]),
		BitsGroupLength:     int(values[15]),
	}
	if drtn == 3 {
		r.Patched.Order = int(values[16])
		r.NOctetsExtra = int(values[17])
	}
	return r
}
