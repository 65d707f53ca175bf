// Package index implements the on-disk field index: spec component C10
// (scanning a file into per-field records), C11 (a process-scoped cache
// of generated indexes), and C12 (wildcarded search over an index
// buffer). A file's index is a sequence of fixed-width records, one per
// data field, each holding the field's location, its message's Section 0
// discipline, and a verbatim copy of its Sections 1, 3, 4, 5, and the
// first six octets of Section 6 — enough to run the full match test in
// spec.md §4.9/§4.12 without touching Section 7.
package index

import (
	"encoding/binary"
	"fmt"

	"github.com/wxgrib/grib2/template"
)

// headerLen is the fixed size, in octets, of one index record's header:
// the message's byte offset within the file (8), the offset of Section 4
// within the message (4), the message's sequence number within the file
// (4), the field's sequence number within the message (4), the message's total
// length (8), and the message's Section 0 discipline (1). See spec.md §6.
const headerLen = 8 + 4 + 4 + 4 + 8 + 1

// slotPrefixLen is the width of the actual-length prefix stored ahead of
// each embedded section's fixed-capacity slot.
const slotPrefixLen = 2

// gridOptionalMargin/productExtensionMargin bound, respectively, Section
// 3's optional "list of numbers defining number of points" (used by
// quasi-regular grids) and a product definition template's repeating
// extension tail (e.g. PDT 4.8's per-time-range block). Both grow the
// registry's already-computed maximum static-prefix length by a fixed
// safety margin; widen them if a newly registered template's extension
// can exceed it.
const (
	gridOptionalMargin     = 64
	productExtensionMargin = 64
)

var reg = template.NewRegistry()

// Fixed payload capacities of each embedded section's slot. Section 1
// never carries a template extension so its wire size is fixed; Section
// 6's slot holds only the 6-octet prefix spec.md §3 calls for.
var (
	sec1SlotLen = 21
	sec3SlotLen = 14 + reg.MaxDescriptorLen(template.GridDefinition) + gridOptionalMargin
	sec4SlotLen = 9 + reg.MaxDescriptorLen(template.ProductDefinition) + productExtensionMargin
	sec5SlotLen = 11 + reg.MaxDescriptorLen(template.DataRepresentation)
	sec6SlotLen = 6
)

// RecordLen is the fixed length, in octets, of one index record: computed
// from the registry's actual template sizes (not hand-picked), so it
// cannot silently fall short as new templates are registered — the
// resolution of spec.md §9's "index-record fixed length" open question.
var RecordLen = headerLen +
	slotPrefixLen + sec1SlotLen +
	slotPrefixLen + sec3SlotLen +
	slotPrefixLen + sec4SlotLen +
	slotPrefixLen + sec5SlotLen +
	slotPrefixLen + sec6SlotLen

// Record is one field's index entry (spec.md §3 "Index record"): where to
// find it in the source file, the message's Section 0 discipline, and
// verbatim copies of the sections the match test (§4.9/§4.12) needs.
type Record struct {
	FileOffsetMessage   int64
	OffsetSection4InMsg uint32
	MessageSeq          uint32
	FieldSeqInMessage   uint32
	TotalMessageLength  uint64
	Discipline          uint8

	Section1       []byte
	Section3       []byte
	Section4       []byte
	Section5       []byte
	Section6Prefix []byte
}

func putSlot(buf []byte, off int, payload []byte, slotLen int) (int, error) {
	if len(payload) > slotLen {
		return 0, fmt.Errorf("index: section payload of %d octets exceeds %d-octet slot", len(payload), slotLen)
	}
	binary.BigEndian.PutUint16(buf[off:off+2], uint16(len(payload)))
	off += 2
	copy(buf[off:off+slotLen], payload)
	return off + slotLen, nil
}

func getSlot(buf []byte, off int, slotLen int) ([]byte, int) {
	n := int(binary.BigEndian.Uint16(buf[off : off+2]))
	off += 2
	out := make([]byte, n)
	copy(out, buf[off:off+n])
	return out, off + slotLen
}

// Encode renders r into a RecordLen-octet buffer.
func (r Record) Encode() ([]byte, error) {
	buf := make([]byte, RecordLen)
	off := 0
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(r.FileOffsetMessage))
	off += 8
	binary.BigEndian.PutUint32(buf[off:off+4], r.OffsetSection4InMsg)
	off += 4
	binary.BigEndian.PutUint32(buf[off:off+4], r.MessageSeq)
	off += 4
	binary.BigEndian.PutUint32(buf[off:off+4], r.FieldSeqInMessage)
	off += 4
	binary.BigEndian.PutUint64(buf[off:off+8], r.TotalMessageLength)
	off += 8
	buf[off] = r.Discipline
	off++

	var err error
	if off, err = putSlot(buf, off, r.Section1, sec1SlotLen); err != nil {
		return nil, err
	}
	if off, err = putSlot(buf, off, r.Section3, sec3SlotLen); err != nil {
		return nil, err
	}
	if off, err = putSlot(buf, off, r.Section4, sec4SlotLen); err != nil {
		return nil, err
	}
	if off, err = putSlot(buf, off, r.Section5, sec5SlotLen); err != nil {
		return nil, err
	}
	if _, err = putSlot(buf, off, r.Section6Prefix, sec6SlotLen); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeRecord parses a RecordLen-octet buffer produced by Encode.
func DecodeRecord(buf []byte) (Record, error) {
	if len(buf) != RecordLen {
		return Record{}, fmt.Errorf("index: record buffer is %d octets, want %d", len(buf), RecordLen)
	}
	var r Record
	off := 0
	r.FileOffsetMessage = int64(binary.BigEndian.Uint64(buf[off : off+8]))
	off += 8
	r.OffsetSection4InMsg = binary.BigEndian.Uint32(buf[off : off+4])
	off += 4
	r.MessageSeq = binary.BigEndian.Uint32(buf[off : off+4])
	off += 4
	r.FieldSeqInMessage = binary.BigEndian.Uint32(buf[off : off+4])
	off += 4
	r.TotalMessageLength = binary.BigEndian.Uint64(buf[off : off+8])
	off += 8
	r.Discipline = buf[off]
	off++

	r.Section1, off = getSlot(buf, off, sec1SlotLen)
	r.Section3, off = getSlot(buf, off, sec3SlotLen)
	r.Section4, off = getSlot(buf, off, sec4SlotLen)
	r.Section5, off = getSlot(buf, off, sec5SlotLen)
	r.Section6Prefix, _ = getSlot(buf, off, sec6SlotLen)
	return r, nil
}
