package watermark

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// DefaultScale is the default watermark width relative to the image width.
	DefaultScale = 0.2
	// DefaultOpacity is the default watermark opacity.
	DefaultOpacity = 128

	backgroundPadding = 10
)

// Errors returned by Options.Validate and Watermark.
var (
	ErrNoMark   = errors.New("no watermark image or text")
	ErrScale    = errors.New("scale must be in (0, 1]")
	ErrMargin   = errors.New("margins must not be negative")
	ErrRadius   = errors.New("corner radius must not be negative")
	ErrMarkSize = errors.New("watermark too small")
)

// Mark is a watermark source: either *Image or *Text.
type Mark interface {
	validate() error
	// layer renders the watermark on a transparent layer of the canvas size.
	layer(canvas image.Rectangle, opts *Options) (*image.NRGBA, error)
}

var (
	_ Mark = (*Image)(nil)
	_ Mark = (*Text)(nil)
)

func (opts *Options) do(base image.Image) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	img := imaging.Clone(base)
	layer, err := opts.Mark.layer(img.Bounds(), opts)
	if err != nil {
		return nil, err
	}
	composite(img, layer, image.Point{})
	if opaque(base) {
		flatten(img)
	}

	return img, nil
}

// Watermark adds the watermark described by opts to base and returns the result.
func Watermark(base image.Image, opts *Options) (image.Image, error) {
	return opts.do(base)
}
