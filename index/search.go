package index

import (
	"github.com/wxgrib/grib2/section"
	"github.com/wxgrib/grib2/template"
)

// wildcard is the query-position sentinel meaning "match any decoded
// value", matching reader.Wildcard's convention (spec.md §4.9/§4.12).
const wildcard = -9999

// Query names the wildcarded match test spec.md §4.12 runs against each
// index record.
type Query struct {
	Discipline int // -1 matches any discipline; spec.md §4.9's jdisc.

	IDS []int64 // -9999 at any position wildcards it; empty matches any.

	PDTN int // -1 matches any product definition template number.
	PDT  []int64

	GDTN int // -1 matches any grid definition template number.
	GDT  []int64
}

// Search performs the linear scan spec.md §4.12 describes: decode each
// record's embedded Sections 1/3/4 just far enough to evaluate the match
// test, returning the index of the first match. It returns -1 (with a
// nil error) when nothing matches.
func Search(b *Buffer, q Query) (int, error) {
	reg := template.NewRegistry()
	for i, rec := range b.Records {
		ok, err := matchRecord(reg, rec, q)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

func matchRecord(reg *template.Registry, rec Record, q Query) (bool, error) {
	if q.Discipline != -1 && int(rec.Discipline) != q.Discipline {
		return false, nil
	}

	sec4, err := section.NewSection4FromBytes(rec.Section4)
	if err != nil {
		return false, err
	}
	pdtn := int(sec4.ProductDefinitionTemplateNumber())
	if q.PDTN != -1 && pdtn != q.PDTN {
		return false, nil
	}
	if len(q.PDT) > 0 {
		pdtValues, err := reg.DecodeExtended(template.ProductDefinition, pdtn, sec4.Template())
		if err != nil {
			return false, err
		}
		if !matchPositional(pdtValues, q.PDT) {
			return false, nil
		}
	}

	if len(rec.Section3) > 0 && (q.GDTN != -1 || len(q.GDT) > 0) {
		sec3, err := section.NewSection3FromBytes(rec.Section3)
		if err != nil {
			return false, err
		}
		gdtn := int(sec3.GridDefinitionTemplateNumber())
		if q.GDTN != -1 && gdtn != q.GDTN {
			return false, nil
		}
		if len(q.GDT) > 0 {
			gdtValues, err := reg.DecodeExtended(template.GridDefinition, gdtn, sec3.Template())
			if err != nil {
				return false, err
			}
			if !matchPositional(gdtValues, q.GDT) {
				return false, nil
			}
		}
	}

	if len(rec.Section1) > 0 && len(q.IDS) > 0 {
		sec1, err := section.NewSection1FromBytes(rec.Section1, false)
		if err != nil {
			return false, err
		}
		ids := []int64{
			int64(sec1.OriginatingCenter()), int64(sec1.OriginatingSubcenter()),
			int64(sec1.MasterTablesVersion()), int64(sec1.LocalTablesVersion()),
			int64(sec1.ReferenceTimeSignificance()), int64(sec1.Year()),
			int64(sec1.Month()), int64(sec1.Day()), int64(sec1.Hour()),
			int64(sec1.Minute()), int64(sec1.Second()),
			int64(sec1.ProductionStatus()), int64(sec1.DataType()),
		}
		if !matchPositional(ids, q.IDS) {
			return false, nil
		}
	}

	return true, nil
}

// matchPositional reports whether decoded satisfies want: every position
// of want is either the wildcard sentinel or equal to decoded's value at
// that position.
func matchPositional(decoded []int64, want []int64) bool {
	for i, w := range want {
		if w == wildcard {
			continue
		}
		if i >= len(decoded) || decoded[i] != w {
			return false
		}
	}
	return true
}
