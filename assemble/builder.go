// Package assemble implements the message-assembly state machine (spec
// component C8): a GRIB2 message is built section by section, in the
// fixed order the wire format requires, through a small Builder type that
// rejects out-of-order calls instead of trying to paper over them.
package assemble

import (
	"github.com/golang/glog"
	perrors "github.com/pkg/errors"

	"github.com/wxgrib/grib2/bitio"
	"github.com/wxgrib/grib2/grib2err"
	"github.com/wxgrib/grib2/ieee"
	"github.com/wxgrib/grib2/pack"
	"github.com/wxgrib/grib2/raster"
	"github.com/wxgrib/grib2/section"
	"github.com/wxgrib/grib2/template"
)

type state int

const (
	stateNone state = iota
	stateHeader
	stateLocalUse
	stateGrid
	stateField
	stateComplete
)

// Builder assembles a single GRIB2 message. The zero value is not usable;
// construct one with NewBuilder. A Builder is not safe for concurrent use.
type Builder struct {
	reg   *template.Registry
	state state

	sections [][]byte

	numDataPoints       uint32
	gridTemplateNumber  int
	gridValues          []int64
	bitmapIndicator     int // -1 until the first field; then the latest Section 6 indicator (254 keeps the earlier one)
	bitmap              []bool
	fieldCount          int
}

// NewBuilder starts a new message: discipline goes into Section 0, p into
// Section 1. This corresponds to the spec's "create" action, taking the
// builder from state None to S0/S1.
func NewBuilder(discipline uint8, p section.Section1Params) *Builder {
	b := &Builder{
		reg:             template.NewRegistry(),
		state:           stateHeader,
		bitmapIndicator: -1,
	}
	b.sections = append(b.sections, section.EncodeSection0(discipline, 0))
	b.sections = append(b.sections, section.EncodeSection1(p))
	return b
}

func (b *Builder) totalLength() uint64 {
	var n uint64
	for _, s := range b.sections {
		n += uint64(len(s))
	}
	return n
}

// AddLocalUse appends Section 2. Only legal immediately after create,
// before a grid has been added.
func (b *Builder) AddLocalUse(data []byte) error {
	if err := b.checkState("AddLocalUse", stateHeader); err != nil {
		return err
	}
	b.sections = append(b.sections, section.EncodeSection2(data))
	b.state = stateLocalUse
	return nil
}

// GridParams describes a Section 3 Grid Definition to encode via the
// template registry (C3).
type GridParams struct {
	Source             uint8
	TemplateNumber     int
	Values             []int64
	NumberOfDataPoints uint32
	OptionalList       []uint32
}

// AddGrid appends Section 3, taking the builder from S0/S1 or S2 to S3.
func (b *Builder) AddGrid(p GridParams) error {
	if err := b.checkState("AddGrid", stateHeader, stateLocalUse); err != nil {
		return err
	}
	desc, err := b.reg.Describe(template.GridDefinition, p.TemplateNumber)
	if err != nil {
		return grib2err.New(grib2err.UnsupportedTemplate, "AddGrid", err)
	}
	body, err := template.EncodeValues(desc, p.Values)
	if err != nil {
		return grib2err.New(grib2err.PackingFailed, "AddGrid", perrors.Wrap(err, "encoding grid definition template"))
	}
	b.sections = append(b.sections, section.EncodeSection3(p.Source, p.NumberOfDataPoints, uint16(p.TemplateNumber), body, p.OptionalList))
	b.numDataPoints = p.NumberOfDataPoints
	b.gridTemplateNumber = p.TemplateNumber
	b.gridValues = p.Values
	b.state = stateGrid
	return nil
}

// PackKind selects which of C4/C5/C6/C7 packs a field's data.
type PackKind int

const (
	PackSimple PackKind = iota
	PackComplex
	PackRasterPNG
	PackRasterJPEG2000
	PackSphericalSimple
	PackSphericalComplex
)

// FieldParams describes one field: its Section 4 product definition,
// Section 6 bitmap treatment, and the packer (and its parameters) that
// produces Section 7's payload.
type FieldParams struct {
	ProductTemplateNumber int
	ProductValues         []int64
	ProductExtension      []int64
	CoordinateValues      []float32

	Data []float64

	// BitmapIndicator follows Table 6.0: 0 carries an explicit bitmap in
	// Bitmap, 254 reuses the message's most recent explicit bitmap, 255
	// means no bitmap, 1-253 names a predefined bitmap (no contraction
	// performed here).
	BitmapIndicator uint8
	Bitmap          []bool

	DRTNumber int
	Kind      PackKind
	Simple    pack.SimpleParams
	Complex   pack.ComplexParams

	// GridWidth/GridHeight are required for PackRasterPNG/PackRasterJPEG2000.
	// If the field has been bitmap-contracted, per spec.md §4.6 the caller
	// passes GridWidth = len(contracted data), GridHeight = 1.
	GridWidth       int
	GridHeight      int
	AlternatingRows bool
}

// AddField appends Sections 4, 5, 6, and 7 atomically, taking the builder
// from S3 or S7 to S7.
func (b *Builder) AddField(p FieldParams) error {
	if err := b.checkState("AddField", stateGrid, stateField); err != nil {
		return err
	}

	contracted, bitmapBits, err := b.resolveBitmap(p)
	if err != nil {
		return err
	}

	if (p.Kind == PackSphericalSimple || p.Kind == PackSphericalComplex) && b.gridTemplateNumber != 50 {
		return grib2err.New(grib2err.SphericalHarmonicGDTRequired, "AddField", nil)
	}

	payload, drtValues, err := b.pack(p, contracted)
	if err != nil {
		return err
	}

	pdtDesc, err := b.reg.Describe(template.ProductDefinition, p.ProductTemplateNumber)
	if err != nil {
		return grib2err.New(grib2err.UnsupportedTemplate, "AddField", err)
	}
	pdtValues := p.ProductValues
	if pdtDesc.NeedsExtension {
		widths, signs, err := b.reg.Extend(template.ProductDefinition, p.ProductTemplateNumber, p.ProductValues)
		if err != nil {
			return grib2err.New(grib2err.UnsupportedTemplate, "AddField", err)
		}
		ext := template.Descriptor{Widths: widths, Signed: signs}
		if len(p.ProductExtension) != len(widths) {
			return grib2err.New(grib2err.InternalLengthMismatch, "AddField", nil)
		}
		extBody, err := template.EncodeValues(ext, p.ProductExtension)
		if err != nil {
			return grib2err.New(grib2err.PackingFailed, "AddField", perrors.Wrap(err, "encoding PDT extension"))
		}
		pdtBody, err := template.EncodeValues(pdtDesc, pdtValues)
		if err != nil {
			return grib2err.New(grib2err.PackingFailed, "AddField", perrors.Wrap(err, "encoding product definition template"))
		}
		sec4 := section.EncodeSection4(uint16(p.ProductTemplateNumber), append(pdtBody, extBody...), p.CoordinateValues)
		b.sections = append(b.sections, sec4)
	} else {
		pdtBody, err := template.EncodeValues(pdtDesc, pdtValues)
		if err != nil {
			return grib2err.New(grib2err.PackingFailed, "AddField", perrors.Wrap(err, "encoding product definition template"))
		}
		sec4 := section.EncodeSection4(uint16(p.ProductTemplateNumber), pdtBody, p.CoordinateValues)
		b.sections = append(b.sections, sec4)
	}

	drtDesc, err := b.reg.Describe(template.DataRepresentation, p.DRTNumber)
	if err != nil {
		return grib2err.New(grib2err.UnsupportedTemplate, "AddField", err)
	}
	drtBody, err := template.EncodeValues(drtDesc, drtValues)
	if err != nil {
		return grib2err.New(grib2err.PackingFailed, "AddField", perrors.Wrap(err, "encoding data representation template"))
	}
	b.sections = append(b.sections, section.EncodeSection5(uint32(len(contracted)), uint16(p.DRTNumber), drtBody))

	sec6, newIndicator, newBitmap := b.renderBitmapSection(p, bitmapBits)
	b.sections = append(b.sections, sec6)
	b.bitmapIndicator = newIndicator
	b.bitmap = newBitmap

	b.sections = append(b.sections, section.EncodeSection7(payload))

	b.fieldCount++
	b.state = stateField
	return nil
}

// Finalize appends Section 8 and rewrites Section 0's total-length field,
// returning the complete message. The builder moves to Complete; further
// calls on it fail with AlreadyComplete.
func (b *Builder) Finalize() ([]byte, error) {
	if err := b.checkState("Finalize", stateField); err != nil {
		return nil, err
	}
	b.sections = append(b.sections, section.EncodeSection8())
	total := b.totalLength()
	section.PatchSection0Length(b.sections[0], total)

	buf := make([]byte, 0, total)
	for _, s := range b.sections {
		buf = append(buf, s...)
	}
	b.state = stateComplete
	return buf, nil
}

func (b *Builder) checkState(op string, allowed ...state) error {
	if b.state == stateNone {
		return grib2err.New(grib2err.NotInitialized, op, nil)
	}
	if b.state == stateComplete {
		return grib2err.New(grib2err.AlreadyComplete, op, nil)
	}
	for _, s := range allowed {
		if b.state == s {
			return nil
		}
	}
	return grib2err.New(grib2err.BadPredecessorSection, op, nil)
}

func (b *Builder) resolveBitmap(p FieldParams) (contracted []float64, bitmapBits []bool, err error) {
	switch p.BitmapIndicator {
	case 0:
		if len(p.Bitmap) != len(p.Data) {
			return nil, nil, grib2err.New(grib2err.InternalLengthMismatch, "AddField", nil)
		}
		return contractByBitmap(p.Data, p.Bitmap), p.Bitmap, nil
	case 254:
		if b.bitmapIndicator < 0 || b.bitmapIndicator > 253 {
			return nil, nil, grib2err.New(grib2err.MissingPriorBitmap, "AddField", nil)
		}
		if len(b.bitmap) != len(p.Data) {
			return nil, nil, grib2err.New(grib2err.InternalLengthMismatch, "AddField", nil)
		}
		return contractByBitmap(p.Data, b.bitmap), b.bitmap, nil
	default:
		return p.Data, nil, nil
	}
}

func (b *Builder) renderBitmapSection(p FieldParams, bitmapBits []bool) (sec6 []byte, indicator int, stored []bool) {
	switch p.BitmapIndicator {
	case 0:
		return section.EncodeSection6(0, packBitmapBits(bitmapBits)), 0, bitmapBits
	case 254:
		return section.EncodeSection6(254, nil), b.bitmapIndicator, b.bitmap
	default:
		return section.EncodeSection6(p.BitmapIndicator, nil), int(p.BitmapIndicator), nil
	}
}

func contractByBitmap(data []float64, bits []bool) []float64 {
	out := make([]float64, 0, len(data))
	for i, v := range data {
		if bits[i] {
			out = append(out, v)
		}
	}
	return out
}

func packBitmapBits(bits []bool) []byte {
	out := make([]byte, bitio.BytesForBits(len(bits)))
	for i, set := range bits {
		if set {
			bitio.PutBits(out, i, 1, 1)
		}
	}
	return out
}

func (b *Builder) pack(p FieldParams, contracted []float64) (payload []byte, drtValues []int64, err error) {
	switch p.Kind {
	case PackSimple:
		payload, patched, perr := pack.Simple(contracted, p.Simple)
		if perr != nil {
			return nil, nil, grib2err.New(grib2err.PackingFailed, "AddField", perr)
		}
		return payload, simpleDRTValues(patched), nil

	case PackComplex:
		payload, result, perr := pack.Complex(contracted, p.Complex)
		if perr != nil {
			return nil, nil, grib2err.New(grib2err.PackingFailed, "AddField", perr)
		}
		return payload, complexDRTValues(result, p.DRTNumber), nil

	case PackRasterPNG, PackRasterJPEG2000:
		values, patched, qerr := pack.QuantizeForRaster(contracted, p.Simple)
		if qerr != nil {
			return nil, nil, grib2err.New(grib2err.PackingFailed, "AddField", qerr)
		}
		codec := raster.Codec(raster.PNG{})
		extraFields := []int64{}
		if p.Kind == PackRasterJPEG2000 {
			codec = raster.JPEG2000{}
			extraFields = []int64{0, 0}
		}
		width, height := p.GridWidth, p.GridHeight
		if p.AlternatingRows {
			width, height = height, width
		}
		payload, warnings, rerr := raster.Pack(values, width, height, codec)
		if rerr != nil {
			return nil, nil, grib2err.New(grib2err.PackingFailed, "AddField", rerr)
		}
		for _, w := range warnings {
			glog.V(1).Infof("assemble: AddField: %s", w.Message)
		}
		return payload, simpleDRTValues(patched, extraFields...), nil

	case PackSphericalSimple, PackSphericalComplex:
		trunc := gridTruncation(b.gridValues)
		complexFlag := p.Kind == PackSphericalComplex
		payload, result, serr := pack.SphericalHarmonic(contracted, complexFlag, p.Simple, p.Complex, trunc)
		if serr != nil {
			return nil, nil, grib2err.New(grib2err.PackingFailed, "AddField", serr)
		}
		return payload, sphericalDRTValues(result, p.DRTNumber), nil
	}
	return nil, nil, grib2err.New(grib2err.UnsupportedTemplate, "AddField", nil)
}

func simpleDRTValues(p pack.SimpleParams, extra ...int64) []int64 {
	values := []int64{
		int64(ieee.Float32ToBits(p.Reference)),
		int64(p.BinaryScale),
		int64(p.DecimalScale),
		int64(p.NBits),
		0, // type of original field values: floating point
	}
	return append(values, extra...)
}

func complexDRTValues(r pack.ComplexResult, drtNumber int) []int64 {
	values := []int64{
		int64(ieee.Float32ToBits(r.Patched.Reference)),
		int64(r.Patched.BinaryScale),
		int64(r.Patched.DecimalScale),
		int64(r.GroupRefBits),
		0, // type of original field values

		0, // group splitting method: general group splitting
		0, // missing value management: no explicit missing values
		0, // primary missing value substitute
		0, // secondary missing value substitute
		int64(r.NumGroups),
		int64(r.RefGroupWidth),
		int64(r.BitsGroupWidth),
		int64(r.RefGroupLength),
		int64(r.LengthIncrement),
		int64(r.TrueLengthLastGroup),
		int64(r.BitsGroupLength),
	}
	if drtNumber == 3 {
		values = append(values, int64(r.Patched.Order), int64(r.NOctetsExtra))
	}
	return values
}

func sphericalDRTValues(r pack.SHResult, drtNumber int) []int64 {
	values := []int64{int64(ieee.Float32ToBits(r.Real00))}
	if r.ComplexPatched != nil {
		// DRT 5.51 registers only the common+complexTail fields (no
		// order/nOctetsExtra pair; that's specific to standalone DRT 5.3).
		values = append(values, complexDRTValues(*r.ComplexPatched, 0)...)
		return values
	}
	values = append(values, simpleDRTValues(*r.SimplePatched)...)
	return values
}

func gridTruncation(gridValues []int64) pack.Truncation {
	// GDT 3.50's static prefix is J, K, M, then two spectral-type flag
	// octets (see template/registry_grid.go); the truncation parameters
	// are always the first three decoded values.
	if len(gridValues) < 3 {
		return pack.Truncation{}
	}
	return pack.Truncation{J: int(gridValues[0]), K: int(gridValues[1]), M: int(gridValues[2])}
}

