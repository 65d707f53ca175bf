package grib2err_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wxgrib/grib2/grib2err"
)

func TestKindRoundTrip(t *testing.T) {
	err := grib2err.New(grib2err.NotFound, "index.Search", nil)
	kind, ok := grib2err.Of(err)
	assert.True(t, ok)
	assert.Equal(t, grib2err.NotFound, kind)
}

func TestErrorIsByKind(t *testing.T) {
	a := grib2err.New(grib2err.PackingFailed, "pack.Simple", errors.New("boom"))
	b := grib2err.New(grib2err.PackingFailed, "other op", nil)
	assert.True(t, errors.Is(a, b))

	c := grib2err.New(grib2err.NotFound, "index.Search", nil)
	assert.False(t, errors.Is(a, c))
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("disk read failed")
	err := grib2err.New(grib2err.DataIOError, "index.Build", cause)
	assert.ErrorContains(t, err, "disk read failed")
}
