// Package raster implements the grid-as-image packing strategies used by
// DRT 5.40/5.41 (JPEG 2000 and PNG respectively): the scaled integer field
// values addressed in spec.md §4.6 are rendered onto a rectangular pixel
// grid and handed to a general-purpose image codec instead of being
// bit-packed directly.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/golang/glog"
)

// Warning describes a non-fatal condition raster.Pack worked around. The
// caller decides whether to surface it to an end user; raster itself only
// logs it at V(1).
type Warning struct {
	Message string
}

// Raster is the decoded form a Codec produces and consumes: a rectangular
// grid of scaled integer sample values plus the bit depth they were
// quantized to.
type Raster struct {
	Width    int
	Height   int
	BitDepth int
	Values   []uint32 // row-major, len == Width*Height
}

// Codec is the capability interface a raster packing scheme implements.
// PNG and JPEG2000 are the two closed alternatives DRT 5.40/5.41 name;
// spec.md leaves room for others by keeping this an interface rather than
// an enum switch.
type Codec interface {
	// Name identifies the codec for diagnostics, e.g. "png" or "jpeg2000".
	Name() string
	// AllowedDepths lists the pixel bit depths this codec can carry,
	// ascending.
	AllowedDepths() []int
	Encode(w io.Writer, r Raster) error
	Decode(r io.Reader) (Raster, error)
}

// Pack renders values onto a width x height grid and encodes it with codec,
// choosing the narrowest depth in codec.AllowedDepths() that can represent
// the data's dynamic range. A degenerate grid (width<1 or height<1) is
// rewritten to a single zero-valued pixel per spec.md §4.6 step 1, and a
// Warning is appended describing the rewrite.
func Pack(values []int64, width, height int, codec Codec) (payload []byte, warnings []Warning, err error) {
	if width < 1 || height < 1 {
		w := Warning{Message: fmt.Sprintf("raster: degenerate grid %dx%d rewritten to 1x1", width, height)}
		glog.V(1).Infof("%s", w.Message)
		warnings = append(warnings, w)
		width, height = 1, 1
		values = []int64{0}
	}

	n := width * height
	if len(values) != n {
		return nil, warnings, fmt.Errorf("raster: Pack: got %d values for a %dx%d grid", len(values), width, height)
	}

	var maxVal int64
	for _, v := range values {
		if v < 0 {
			return nil, warnings, fmt.Errorf("raster: Pack: negative scaled value %d is not representable as a pixel sample", v)
		}
		if v > maxVal {
			maxVal = v
		}
	}

	depths := codec.AllowedDepths()
	depth := depths[len(depths)-1]
	for _, d := range depths {
		if maxVal < int64(1)<<uint(d) {
			depth = d
			break
		}
	}

	raw := make([]uint32, n)
	for i, v := range values {
		raw[i] = uint32(v)
	}

	r := Raster{Width: width, Height: height, BitDepth: depth, Values: raw}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, r); err != nil {
		return nil, warnings, fmt.Errorf("raster: %s: Encode: %w", codec.Name(), err)
	}
	return buf.Bytes(), warnings, nil
}

// Unpack is the inverse of Pack: it decodes payload with codec and returns
// the scaled integer values in row-major order along with the grid
// dimensions the codec recovered.
func Unpack(payload []byte, codec Codec) (values []int64, width, height int, err error) {
	r, err := codec.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("raster: %s: Decode: %w", codec.Name(), err)
	}
	out := make([]int64, len(r.Values))
	for i, v := range r.Values {
		out[i] = int64(v)
	}
	return out, r.Width, r.Height, nil
}

// imageBounds is a small helper so PNG and JPEG2000 codecs can build the
// same image.Rectangle without repeating the Min-at-origin convention.
func imageBounds(w, h int) image.Rectangle {
	return image.Rect(0, 0, w, h)
}
