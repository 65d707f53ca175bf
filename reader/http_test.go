package reader_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxgrib/grib2/index"
	"github.com/wxgrib/grib2/reader"
)

// getCurrentGFSURL generates a URL for recent GFS data.
func getCurrentGFSURL() string {
	now := time.Now().UTC().AddDate(0, 0, -1).Truncate(time.Hour * 6) // 1 day ago
	hour := now.Hour()

	return fmt.Sprintf("https://noaa-gfs-bdp-pds.s3.amazonaws.com/gfs.%04d%02d%02d/%02d/atmos/gfs.t%02dz.sfluxgrbf000.grib2",
		now.Year(), now.Month(), now.Day(), hour, hour)
}

func TestHTTPReaderAt_IndexBuild(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping HTTP test in short mode")
	}

	url := getCurrentGFSURL()
	t.Logf("Testing with URL: %s", url)

	httpReader, err := reader.NewHTTPReaderAt(url)
	if err != nil {
		t.Skipf("Failed to create HTTP reader (server may be unavailable): %v", err)
	}
	t.Logf("File size: %d bytes (%.2f MB)", httpReader.Size(), float64(httpReader.Size())/(1024*1024))

	buf, err := index.Build(httpReader, url)
	require.NoError(t, err)
	require.NotEmpty(t, buf.Records, "expected at least one field in the GRIB2 file")

	rec := buf.Records[0]
	t.Logf("Record 0 - offset: %d, discipline: %d, total length: %d", rec.FileOffsetMessage, rec.Discipline, rec.TotalMessageLength)
	assert.NotEmpty(t, rec.Section1)
	assert.NotEmpty(t, rec.Section4)
}

func TestHTTPReaderAt_ExtractField(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping HTTP test in short mode")
	}

	url := getCurrentGFSURL()
	httpReader, err := reader.NewHTTPReaderAt(url)
	if err != nil {
		t.Skipf("Failed to create HTTP reader: %v", err)
	}

	field, err := reader.ExtractField(httpReader, reader.ExtractQuery{
		Discipline: -1,
		PDTN:       -1,
		GDTN:       -1,
	})
	require.NoError(t, err)
	defer field.Close()

	t.Logf("Extracted field - discipline: %d, pdtn: %d, gdtn: %d, ngrdpts: %d",
		field.Discipline, field.ProductTemplateNumber, field.GridTemplateNumber, field.NumberOfGridPoints)
	assert.Greater(t, field.NumberOfGridPoints, 0)
	assert.Len(t, field.Data, field.NumberOfGridPoints)
}
