package watermark

import (
	"image"
	"image/color"
	"image/draw"
)

// DrawRoundedRect fills r on dst with c, rounding each corner with radius.
// The radius is clamped to half of the smaller side of r. A radius of 0 or
// less fills a plain rectangle. Pixels are replaced, not blended, and the arc
// boundary is not anti-aliased.
func DrawRoundedRect(dst draw.Image, r image.Rectangle, c color.Color, radius int) {
	r = r.Canon()
	radius = min(radius, min(r.Dx(), r.Dy())/2)
	src := image.NewUniform(c)
	if radius <= 0 {
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return
	}

	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), src, image.Point{}, draw.Src)

	// top-left 180°-270°, top-right 270°-360°, bottom-left 90°-180°, bottom-right 0°-90°
	fillQuarter(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+radius, r.Min.Y+radius), image.Pt(r.Min.X+radius, r.Min.Y+radius), radius, c)
	fillQuarter(dst, image.Rect(r.Max.X-radius, r.Min.Y, r.Max.X, r.Min.Y+radius), image.Pt(r.Max.X-radius, r.Min.Y+radius), radius, c)
	fillQuarter(dst, image.Rect(r.Min.X, r.Max.Y-radius, r.Min.X+radius, r.Max.Y), image.Pt(r.Min.X+radius, r.Max.Y-radius), radius, c)
	fillQuarter(dst, image.Rect(r.Max.X-radius, r.Max.Y-radius, r.Max.X, r.Max.Y), image.Pt(r.Max.X-radius, r.Max.Y-radius), radius, c)
}

// fillQuarter sets every pixel of the corner square sq whose center lies
// within radius of center, a point on the pixel grid.
func fillQuarter(dst draw.Image, sq image.Rectangle, center image.Point, radius int, c color.Color) {
	sq = sq.Intersect(dst.Bounds())
	r2 := 4 * radius * radius
	for y := sq.Min.Y; y < sq.Max.Y; y++ {
		// doubled coordinates keep pixel centers on integers
		dy := 2*y + 1 - 2*center.Y
		for x := sq.Min.X; x < sq.Max.X; x++ {
			dx := 2*x + 1 - 2*center.X
			if dx*dx+dy*dy <= r2 {
				dst.Set(x, y, c)
			}
		}
	}
}

// RoundedMask returns a grayscale mask of the given size holding a rounded
// rectangle: 255 inside, 0 outside.
func RoundedMask(size image.Point, radius int) *image.Gray {
	mask := image.NewGray(image.Rectangle{Max: size})
	DrawRoundedRect(mask, mask.Bounds(), color.Gray{Y: 0xff}, radius)
	return mask
}
