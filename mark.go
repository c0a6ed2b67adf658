package watermark

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Image is an image watermark.
type Image struct {
	// Path is opened when Mark is nil.
	Path string
	Mark image.Image
	// Opacity multiplies the alpha of every watermark pixel by Opacity/255.
	// 255 leaves the watermark unchanged.
	Opacity uint8
}

func (m *Image) validate() error {
	if m.Mark == nil && m.Path == "" {
		return ErrNoMark
	}
	return nil
}

// scaledSize returns the size of a mark resized to scale of width, keeping
// the aspect ratio of mark.
func scaledSize(mark image.Point, width int, scale float64) image.Point {
	w := int(float64(width) * scale)
	return image.Pt(w, int(float64(mark.Y)*(float64(w)/float64(mark.X))))
}

func (m *Image) load() (image.Image, error) {
	if m.Mark != nil {
		return m.Mark, nil
	}
	img, err := Open(m.Path)
	if err != nil {
		return nil, fmt.Errorf("open watermark %s: %w", m.Path, err)
	}
	return img, nil
}

func (m *Image) layer(canvas image.Rectangle, opts *Options) (*image.NRGBA, error) {
	src, err := m.load()
	if err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty watermark", ErrMarkSize)
	}

	size := scaledSize(src.Bounds().Size(), canvas.Dx(), opts.Scale)
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("%w: %v", ErrMarkSize, size)
	}
	mark := imaging.Resize(src, size.X, size.Y, imaging.Lanczos)

	if m.Opacity < math.MaxUint8 {
		setOpacity(mark, m.Opacity)
	}

	pt := opts.Position.Point(canvas.Size(), size, opts.Margins)

	layer := image.NewNRGBA(image.Rectangle{Max: canvas.Size()})
	if opts.Background.Color.A > 0 {
		DrawRoundedRect(
			layer,
			mark.Bounds().Add(pt).Inset(-backgroundPadding),
			opts.Background.Color,
			opts.Background.Radius,
		)
	} else if opts.Background.Radius > 0 {
		clip(mark, RoundedMask(size, opts.Background.Radius))
	}
	composite(layer, mark, pt)

	return layer, nil
}
