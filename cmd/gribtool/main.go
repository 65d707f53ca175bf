// Command gribtool exercises the library's write and read paths end to
// end: build a demo message, index a GRIB2 file (local or HTTP), search
// a persisted index, and dump a matching field.
//
// Usage:
//
//	gribtool build -out demo.grib2
//	gribtool index -in demo.grib2 -out demo.idx
//	gribtool search -idx demo.idx -pdtn 0 -category 1 -parameter 10
//	gribtool dump -in demo.grib2 -discipline 0
//	gribtool dump -url https://example.com/demo.grib2
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/wxgrib/grib2/assemble"
	"github.com/wxgrib/grib2/index"
	"github.com/wxgrib/grib2/pack"
	"github.com/wxgrib/grib2/reader"
	"github.com/wxgrib/grib2/section"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	var err error
	switch flag.Arg(0) {
	case "build":
		err = runBuild(flag.Args()[1:])
	case "index":
		err = runIndex(flag.Args()[1:])
	case "search":
		err = runSearch(flag.Args()[1:])
	case "dump":
		err = runDump(flag.Args()[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gribtool %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}

// runBuild assembles a small demo message (one field, lat/lon grid,
// simple packing) and writes it to -out, exercising C8 end to end.
func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	out := fs.String("out", "demo.grib2", "output GRIB2 file")
	nbits := fs.Int("nbits", 12, "simple-packing bit width")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b := assemble.NewBuilder(0, section.Section1Params{
		OriginatingCenter:   7,
		MasterTablesVersion: 2,
		Year:                2026,
		Month:               8,
		Day:                 1,
		ProductionStatus:    0,
		DataType:            1,
	})

	if err := b.AddGrid(assemble.GridParams{
		TemplateNumber: 0,
		Values: []int64{
			6, 0, 0, 0, 0, 0, 0,
			4, 4,
			0, 0,
			1000000, 2000000,
			0x30,
			1700000, 2700000,
			200000, 200000,
			0x40,
		},
		NumberOfDataPoints: 16,
	}); err != nil {
		return fmt.Errorf("AddGrid: %w", err)
	}

	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i)
	}

	if err := b.AddField(assemble.FieldParams{
		ProductTemplateNumber: 0,
		ProductValues:         []int64{0, 0, 2, 0, 0, 6, 1, 0, 0, 1, 0, 0, 1, 0, 0},
		Data:                  data,
		BitmapIndicator:       255,
		DRTNumber:             0,
		Kind:                  assemble.PackSimple,
		Simple:                pack.SimpleParams{NBits: *nbits},
	}); err != nil {
		return fmt.Errorf("AddField: %w", err)
	}

	msg, err := b.Finalize()
	if err != nil {
		return fmt.Errorf("Finalize: %w", err)
	}

	if err := os.WriteFile(*out, msg, 0o644); err != nil {
		return err
	}
	glog.Infof("wrote %d octets to %s", len(msg), *out)
	return nil
}

// runIndex scans -in (a local file, or a URL when -url is given) and
// writes the resulting index to -out, exercising C10.
func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	in := fs.String("in", "", "GRIB2 file to index")
	url := fs.String("url", "", "HTTP URL to index instead of -in, via reader.HTTPReaderAt")
	out := fs.String("out", "", "index file to write (defaults to -in + .idx)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src interface {
		ReadAt(p []byte, off int64) (int, error)
	}
	name := *in
	switch {
	case *url != "":
		h, err := reader.NewHTTPReaderAt(*url)
		if err != nil {
			return fmt.Errorf("NewHTTPReaderAt: %w", err)
		}
		src = h
		name = *url
	case *in != "":
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	default:
		return fmt.Errorf("one of -in or -url is required")
	}

	buf, err := index.Build(src, name)
	if err != nil {
		return fmt.Errorf("Build: %w", err)
	}
	glog.Infof("indexed %d fields from %s", len(buf.Records), name)

	if *out == "" {
		*out = *in + ".idx"
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := buf.WriteTo(f); err != nil {
		return fmt.Errorf("WriteTo: %w", err)
	}
	glog.Infof("wrote index to %s", *out)
	return nil
}

// runSearch loads a persisted index and runs C12's wildcarded match test
// against it.
func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	idxPath := fs.String("idx", "", "index file produced by gribtool index")
	discipline := fs.Int("discipline", -1, "discipline (-1 = any)")
	pdtn := fs.Int("pdtn", -1, "product definition template number (-1 = any)")
	category := fs.Int("category", -9999, "PDT field 0 (-9999 = any)")
	parameter := fs.Int("parameter", -9999, "PDT field 1 (-9999 = any)")
	gdtn := fs.Int("gdtn", -1, "grid definition template number (-1 = any)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *idxPath == "" {
		return fmt.Errorf("-idx is required")
	}

	f, err := os.Open(*idxPath)
	if err != nil {
		return err
	}
	defer f.Close()
	buf, err := index.ReadBuffer(f)
	if err != nil {
		return fmt.Errorf("ReadBuffer: %w", err)
	}

	i, err := index.Search(buf, index.Query{
		Discipline: *discipline,
		PDTN:       *pdtn,
		PDT:        []int64{int64(*category), int64(*parameter)},
		GDTN:       *gdtn,
	})
	if err != nil {
		return fmt.Errorf("Search: %w", err)
	}
	if i < 0 {
		fmt.Println("no match")
		return nil
	}
	rec := buf.Records[i]
	fmt.Printf("match at record %d: message %d, field %d, offset %d, total length %d\n",
		i, rec.MessageSeq, rec.FieldSeqInMessage, rec.FileOffsetMessage, rec.TotalMessageLength)
	return nil
}

// runDump extracts the first field matching -discipline/-pdtn/-gdtn from
// -in (a local file, or a URL when -url is given) and prints its decoded
// values, exercising C9.
func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	in := fs.String("in", "", "GRIB2 file to read")
	url := fs.String("url", "", "HTTP URL to read instead of -in, via reader.HTTPReaderAt")
	discipline := fs.Int("discipline", -1, "discipline (-1 = any)")
	pdtn := fs.Int("pdtn", -1, "product definition template number (-1 = any)")
	gdtn := fs.Int("gdtn", -1, "grid definition template number (-1 = any)")
	skip := fs.Int("skip", 0, "number of earlier matches to pass over")
	missing := fs.Float64("missing", 9999, "fill value for bitmap-excluded points")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src interface {
		ReadAt(p []byte, off int64) (int, error)
	}
	switch {
	case *url != "":
		h, err := reader.NewHTTPReaderAt(*url)
		if err != nil {
			return fmt.Errorf("NewHTTPReaderAt: %w", err)
		}
		src = h
	case *in != "":
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	default:
		return fmt.Errorf("one of -in or -url is required")
	}

	field, err := reader.ExtractField(src, reader.ExtractQuery{
		Skip:       *skip,
		Discipline: *discipline,
		PDTN:       *pdtn,
		GDTN:       *gdtn,
		Missing:    *missing,
	})
	if err != nil {
		return fmt.Errorf("ExtractField: %w", err)
	}
	defer field.Close()

	fmt.Printf("discipline=%d gdtn=%d pdtn=%d drtn=%d ngrdpts=%d bitmap=%d\n",
		field.Discipline, field.GridTemplateNumber, field.ProductTemplateNumber,
		field.DataRepTemplateNumber, field.NumberOfGridPoints, field.BitmapIndicator)
	fmt.Printf("values: %v\n", field.Data)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `gribtool — build, index, search, and dump GRIB2 messages

Usage:
  gribtool build  -out demo.grib2
  gribtool index  -in demo.grib2 -out demo.idx
  gribtool search -idx demo.idx -pdtn 0 -category 1 -parameter 10
  gribtool dump   -in demo.grib2 -discipline 0`)
}
