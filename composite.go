package watermark

import (
	"image"
	"image/color"
	"math"
)

// composite draws src over dst with its top-left corner at pt, using
// straight alpha "over" blending. Source pixels with alpha 0 leave dst
// untouched and opaque source pixels replace it.
func composite(dst, src *image.NRGBA, pt image.Point) {
	r := src.Bounds().Add(pt.Sub(src.Bounds().Min)).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	sp := r.Min.Sub(pt).Add(src.Bounds().Min)

	for y := 0; y < r.Dy(); y++ {
		i := src.PixOffset(sp.X, sp.Y+y)
		j := dst.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < r.Dx(); x, i, j = x+1, i+4, j+4 {
			s := src.Pix[i : i+4 : i+4]
			d := dst.Pix[j : j+4 : j+4]
			switch sa := uint32(s[3]); sa {
			case 0:
			case math.MaxUint8:
				copy(d, s)
			default:
				da := uint32(d[3]) * (255 - sa)
				oa := sa*255 + da
				for c := range 3 {
					d[c] = uint8((uint32(s[c])*sa*255 + uint32(d[c])*da + oa/2) / oa)
				}
				d[3] = uint8((oa + 127) / 255)
			}
		}
	}
}

// setOpacity multiplies the alpha of every pixel of img by opacity/255.
func setOpacity(img *image.NRGBA, opacity uint8) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(uint32(img.Pix[i]) * uint32(opacity) / 255)
	}
}

// clip multiplies the alpha of img by mask, which must have the same bounds.
func clip(img *image.NRGBA, mask *image.Gray) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y) + 3
			img.Pix[i] = uint8(uint32(img.Pix[i]) * uint32(mask.GrayAt(x, y).Y) / 255)
		}
	}
}

// paint writes c onto img through coverage, which must have the same
// bounds: every channel of a pixel moves toward c by the coverage alpha, so
// fully covered pixels become c. Transparent pixels take the color of c
// with the alpha scaled by coverage.
func paint(img *image.NRGBA, coverage *image.RGBA, c color.NRGBA) {
	src := [4]uint32{uint32(c.R), uint32(c.G), uint32(c.B), uint32(c.A)}
	for y := 0; y < img.Rect.Dy(); y++ {
		i := y * img.Stride
		j := y * coverage.Stride
		for x := 0; x < img.Rect.Dx(); x, i, j = x+1, i+4, j+4 {
			m := uint32(coverage.Pix[j+3])
			if m == 0 {
				continue
			}
			d := img.Pix[i : i+4 : i+4]
			if d[3] == 0 {
				d[0], d[1], d[2] = c.R, c.G, c.B
				d[3] = uint8((src[3]*m + 127) / 255)
				continue
			}
			for k := range d {
				d[k] = uint8((src[k]*m + uint32(d[k])*(255-m) + 127) / 255)
			}
		}
	}
}

// flatten drops the alpha channel of img, making every pixel opaque.
func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = math.MaxUint8
	}
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
