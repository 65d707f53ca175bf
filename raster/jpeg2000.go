package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/mrjoshuak/go-jpeg2000"
)

// JPEG2000 implements Codec by delegating to github.com/mrjoshuak/go-jpeg2000,
// the pack's JPEG 2000 implementation. DRT 5.40 fields are lossless (the
// WMO template carries no quantization parameters GRIB2 populates), so the
// codestream is requested in lossless, single-tile, JP2 form.
type JPEG2000 struct{}

func (JPEG2000) Name() string { return "jpeg2000" }

// AllowedDepths excludes 32: the encoder's NRGBA path treats a fourth
// channel as alpha, which DRT 5.40 grids have no use for.
func (JPEG2000) AllowedDepths() []int { return []int{8, 16, 24} }

func jp2Options() *jpeg2000.Options {
	return &jpeg2000.Options{
		Format:   jpeg2000.FormatJP2,
		Lossless: true,
	}
}

func (JPEG2000) Encode(w io.Writer, r Raster) error {
	img, err := rasterToImage(r)
	if err != nil {
		return err
	}
	if r.BitDepth == 24 {
		// go-jpeg2000's encoder drops alpha from NRGBA but not NRGBA64;
		// force the 8-bit-per-channel path used by rasterToImage's depth
		// 24 case by converting through image.RGBA, whose extractor is
		// the one the encoder special-cases for 3-component output.
		bounds := img.Bounds()
		rgba := image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				rgba.SetRGBA(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
			}
		}
		img = rgba
	}
	return jpeg2000.Encode(w, img, jp2Options())
}

func (JPEG2000) Decode(r io.Reader) (Raster, error) {
	img, err := jpeg2000.Decode(r)
	if err != nil {
		return Raster{}, fmt.Errorf("raster: jpeg2000: %w", err)
	}
	return imageToRaster(img)
}
