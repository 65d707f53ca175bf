package index

import (
	"encoding/binary"
	"io"

	perrors "github.com/pkg/errors"

	"github.com/wxgrib/grib2/grib2err"
)

// FileHeaderLen is the fixed 44-octet header spec.md §6 prescribes for a
// persisted index file: record length (4), record count (4), source file
// name (32), field count (4).
const FileHeaderLen = 4 + 4 + 32 + 4

// Buffer is the concatenation of every field's Record for one source
// file (spec.md §3 "Index buffer"). The zero value is an empty, valid
// buffer.
type Buffer struct {
	SourceFileName string
	Records        []Record
}

// WriteTo persists b as a file header followed by one RecordLen-octet
// record per field, per spec.md §6's index file format.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	const op = "Buffer.WriteTo"
	header := make([]byte, FileHeaderLen)
	binary.BigEndian.PutUint32(header[0:4], uint32(RecordLen))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(b.Records)))
	name := []byte(b.SourceFileName)
	if len(name) > 32 {
		name = name[:32]
	}
	copy(header[8:40], name)
	binary.BigEndian.PutUint32(header[40:44], uint32(len(b.Records)))

	n, err := w.Write(header)
	total := int64(n)
	if err != nil {
		return total, grib2err.New(grib2err.IndexIOError, op, perrors.Wrap(err, "writing file header"))
	}

	for i, rec := range b.Records {
		enc, err := rec.Encode()
		if err != nil {
			return total, grib2err.New(grib2err.IndexIOError, op, perrors.Wrapf(err, "encoding record %d", i))
		}
		n, err := w.Write(enc)
		total += int64(n)
		if err != nil {
			return total, grib2err.New(grib2err.IndexIOError, op, perrors.Wrapf(err, "writing record %d", i))
		}
	}
	return total, nil
}

// ReadBuffer reads a Buffer previously written by (*Buffer).WriteTo.
func ReadBuffer(r io.Reader) (*Buffer, error) {
	const op = "ReadBuffer"
	header := make([]byte, FileHeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, grib2err.New(grib2err.IndexIOError, op, perrors.Wrap(err, "reading file header"))
	}
	recordLen := binary.BigEndian.Uint32(header[0:4])
	count := binary.BigEndian.Uint32(header[4:8])
	name := trimNullPadded(header[8:40])

	if int(recordLen) != RecordLen {
		return nil, grib2err.New(grib2err.IndexIOError, op,
			perrors.Errorf("file record length %d does not match library's %d (built by a different template registry version?)", recordLen, RecordLen))
	}

	buf := &Buffer{SourceFileName: name, Records: make([]Record, 0, count)}
	for i := uint32(0); i < count; i++ {
		raw := make([]byte, RecordLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, grib2err.New(grib2err.IndexIOError, op, perrors.Wrapf(err, "reading record %d", i))
		}
		rec, err := DecodeRecord(raw)
		if err != nil {
			return nil, grib2err.New(grib2err.IndexIOError, op, err)
		}
		buf.Records = append(buf.Records, rec)
	}
	return buf, nil
}

func trimNullPadded(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}
