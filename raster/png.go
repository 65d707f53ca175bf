package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// PNG implements Codec using the standard library's image/png encoder. No
// suitable third-party PNG codec appears in the retrieved example pack, so
// this codec is built on the standard library; see DESIGN.md.
type PNG struct{}

func (PNG) Name() string { return "png" }

// AllowedDepths covers the sample widths GRIB2 DRT 5.41 fields commonly
// need: 8 and 16 bit grayscale cover the overwhelming majority of scaled
// integer ranges, 24 and 32 bit pack three or four 8-bit channels together
// for fields whose nbits exceeds 16.
func (PNG) AllowedDepths() []int { return []int{8, 16, 24, 32} }

func (PNG) Encode(w io.Writer, r Raster) error {
	img, err := rasterToImage(r)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (PNG) Decode(r io.Reader) (Raster, error) {
	img, err := png.Decode(r)
	if err != nil {
		return Raster{}, err
	}
	return imageToRaster(img)
}

func rasterToImage(r Raster) (image.Image, error) {
	bounds := imageBounds(r.Width, r.Height)
	switch r.BitDepth {
	case 8:
		img := image.NewGray(bounds)
		for i, v := range r.Values {
			img.Pix[i] = uint8(v)
		}
		return img, nil
	case 16:
		img := image.NewGray16(bounds)
		for i, v := range r.Values {
			img.SetGray16(i%r.Width, i/r.Width, color.Gray16{Y: uint16(v)})
		}
		return img, nil
	case 24:
		img := image.NewNRGBA(bounds)
		for i, v := range r.Values {
			x, y := i%r.Width, i/r.Width
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			})
		}
		return img, nil
	case 32:
		img := image.NewNRGBA(bounds)
		for i, v := range r.Values {
			x, y := i%r.Width, i/r.Width
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(v >> 24),
				G: uint8(v >> 16),
				B: uint8(v >> 8),
				A: uint8(v),
			})
		}
		return img, nil
	default:
		return nil, fmt.Errorf("raster: png: unsupported bit depth %d", r.BitDepth)
	}
}

func imageToRaster(img image.Image) (Raster, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	values := make([]uint32, w*h)

	switch px := img.(type) {
	case *image.Gray:
		for i := range values {
			values[i] = uint32(px.Pix[i])
		}
		return Raster{Width: w, Height: h, BitDepth: 8, Values: values}, nil
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				values[y*w+x] = uint32(px.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return Raster{Width: w, Height: h, BitDepth: 16, Values: values}, nil
	default:
		hasAlpha := false
		for y := 0; y < h && !hasAlpha; y++ {
			for x := 0; x < w; x++ {
				_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				if a>>8 != 255 {
					hasAlpha = true
					break
				}
			}
		}
		depth := 24
		if hasAlpha {
			depth = 32
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				r8, g8, b8, a8 := uint32(r>>8), uint32(g>>8), uint32(b>>8), uint32(a>>8)
				if depth == 32 {
					values[y*w+x] = r8<<24 | g8<<16 | b8<<8 | a8
				} else {
					values[y*w+x] = r8<<16 | g8<<8 | b8
				}
			}
		}
		return Raster{Width: w, Height: h, BitDepth: depth, Values: values}, nil
	}
}
