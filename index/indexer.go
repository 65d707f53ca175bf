package index

import (
	"encoding/binary"
	"io"

	perrors "github.com/pkg/errors"

	"github.com/wxgrib/grib2/grib2err"
)

// msk1/msk2 bound the GRIB-sentinel rescan spec.md §4.10 describes: the
// first msk1 octets following the current offset are scanned in one
// read; if no "GRIB" marker turns up, scanning continues in msk2-octet
// blocks until the reader is exhausted. Values match wgrib2's skgb
// convention this component is grounded on.
const (
	msk1 = 32000
	msk2 = 4000
)

// Build scans r one message at a time, emitting one Record per Section 4
// encountered — so a multi-field message contributes multiple records —
// and returns the resulting Buffer. sourceFileName is recorded in the
// Buffer's header for later persistence (spec.md §6).
func Build(r io.ReaderAt, sourceFileName string) (*Buffer, error) {
	const op = "index.Build"
	buf := &Buffer{SourceFileName: sourceFileName}

	offset := int64(0)
	var msgSeq uint32
	for {
		found, err := findGRIB(r, offset)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, grib2err.New(grib2err.IndexIOError, op, err)
		}
		offset = found

		header := make([]byte, 16)
		if _, err := r.ReadAt(header, offset); err != nil {
			return nil, grib2err.New(grib2err.IndexIOError, op, perrors.Wrap(err, "reading Section 0"))
		}
		if edition := header[7]; edition != 2 {
			return nil, grib2err.New(grib2err.IndexIOError, op, perrors.Errorf("unsupported GRIB edition %d at offset %d", edition, offset))
		}
		discipline := header[6]
		totalLength := binary.BigEndian.Uint64(header[8:16])

		records, err := buildRecordsForMessage(r, offset, totalLength, msgSeq, discipline)
		if err != nil {
			return nil, grib2err.New(grib2err.IndexIOError, op, err)
		}
		buf.Records = append(buf.Records, records...)

		offset += int64(totalLength)
		msgSeq++
	}
	return buf, nil
}

// findGRIB returns the offset of the next "GRIB" sentinel at or after
// offset, per the msk1-then-msk2 bounded rescan above.
func findGRIB(r io.ReaderAt, offset int64) (int64, error) {
	window := msk1
	for {
		// Overlap by 3 octets so a sentinel spanning a block boundary is
		// still found by the next window's scan.
		scratch := make([]byte, window+3)
		n, err := r.ReadAt(scratch, offset)
		for i := 0; i+4 <= n; i++ {
			if string(scratch[i:i+4]) == "GRIB" {
				return offset + int64(i), nil
			}
		}
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		offset += int64(window)
		window = msk2
	}
}

// buildRecordsForMessage walks the sections of the message starting at
// msgOffset, emitting one Record each time a field's Section 7 completes
// it. Sections always appear 4, 5, 6, 7 in that order for a given field
// per the WMO wire format, so a single sequential pass suffices.
func buildRecordsForMessage(r io.ReaderAt, msgOffset int64, totalLength uint64, msgSeq uint32, discipline uint8) ([]Record, error) {
	var records []Record
	offset := msgOffset + 16 // Section 0 is always 16 octets.
	end := msgOffset + int64(totalLength)

	var sec1, sec3 []byte
	var pending *Record
	var fieldSeq uint32

	for offset < end {
		head := make([]byte, 5)
		if _, err := r.ReadAt(head, offset); err != nil {
			return nil, perrors.Wrapf(err, "reading section header at offset %d", offset)
		}
		if string(head[:4]) == "7777" {
			break
		}
		secLen := binary.BigEndian.Uint32(head[:4])
		if secLen < 5 {
			return nil, perrors.Errorf("invalid section length %d at offset %d", secLen, offset)
		}
		body := make([]byte, secLen)
		if _, err := r.ReadAt(body, offset); err != nil {
			return nil, perrors.Wrapf(err, "reading section body at offset %d", offset)
		}

		switch head[4] {
		case 1:
			sec1 = body
		case 3:
			sec3 = body
		case 4:
			pending = &Record{
				FileOffsetMessage:   msgOffset,
				OffsetSection4InMsg: uint32(offset - msgOffset),
				MessageSeq:          msgSeq,
				FieldSeqInMessage:   fieldSeq,
				TotalMessageLength:  totalLength,
				Discipline:          discipline,
				Section1:            sec1,
				Section3:            sec3,
				Section4:            body,
			}
		case 5:
			if pending != nil {
				pending.Section5 = body
			}
		case 6:
			if pending != nil {
				n := 6
				if len(body) < n {
					n = len(body)
				}
				pending.Section6Prefix = append([]byte(nil), body[:n]...)
			}
		case 7:
			if pending != nil {
				records = append(records, *pending)
				pending = nil
				fieldSeq++
			}
		}

		offset += int64(secLen)
	}
	return records, nil
}
