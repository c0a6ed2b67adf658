package watermark

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// DefaultFontSize is the font size of a text mark when none is given.
const DefaultFontSize = 40

// Text is a text watermark.
type Text struct {
	Content string
	// Size is the font size before scaling to the target width.
	Size  int
	Color color.NRGBA
	// FontFile is tried before the system fonts.
	FontFile string
}

func (t *Text) validate() error {
	if t.Content == "" {
		return ErrNoMark
	}
	return nil
}

// adjustFontSize returns the font size at which text measured as textWidth
// at size spans scale of canvasWidth.
func adjustFontSize(size int, scale float64, canvasWidth, textWidth int) int {
	if textWidth <= 0 {
		return size
	}
	return max(1, int(float64(size)*scale*float64(canvasWidth)/float64(textWidth)))
}

func (t *Text) layer(canvas image.Rectangle, opts *Options) (*image.NRGBA, error) {
	size := t.Size
	if size <= 0 {
		size = DefaultFontSize
	}

	tf := loadTypeface(t.FontFile)
	face, err := tf.face(float64(size))
	if err != nil {
		return nil, err
	}
	box := measure(face, t.Content)

	// measure once more at the adjusted size; the result is not iterated
	if face, err = tf.face(float64(adjustFontSize(size, opts.Scale, canvas.Dx(), box.X))); err != nil {
		return nil, err
	}
	box = measure(face, t.Content)

	pt := opts.Position.Point(canvas.Size(), box, opts.Margins)

	layer := image.NewNRGBA(image.Rectangle{Max: canvas.Size()})
	if opts.Background.Color.A > 0 {
		DrawRoundedRect(
			layer,
			image.Rectangle{Min: pt, Max: pt.Add(box)}.Inset(-backgroundPadding),
			opts.Background.Color,
			opts.Background.Radius,
		)
	}

	// glyph coverage ends up in the alpha channel of coverage
	coverage := image.NewRGBA(layer.Bounds())
	dc := gg.NewContextForRGBA(coverage)
	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawString(t.Content, float64(pt.X), float64(pt.Y+face.Metrics().Ascent.Ceil()))
	paint(layer, coverage, t.Color)

	return layer, nil
}
