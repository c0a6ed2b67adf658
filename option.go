package watermark

import (
	"fmt"
	"image/color"
)

// Background is the panel drawn behind the watermark.
// A transparent Color draws no panel.
type Background struct {
	Color  color.NRGBA
	Radius int
}

// Options represents options that can be used to configure a watermark operation.
type Options struct {
	Mark       Mark
	Position   Position
	Margins    Margins
	Scale      float64
	Background Background
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{
		Position: BottomRight,
		Margins:  DefaultMargins(),
		Scale:    DefaultScale,
	}
}

// SetImage sets an image watermark loaded from path.
func (opts *Options) SetImage(path string, opacity uint8) *Options {
	opts.Mark = &Image{Path: path, Opacity: opacity}
	return opts
}

// SetText sets a text watermark.
func (opts *Options) SetText(text string, size int, c color.NRGBA) *Options {
	opts.Mark = &Text{Content: text, Size: size, Color: c}
	return opts
}

// SetMark sets a text watermark when text is not empty and an image
// watermark from imagePath otherwise. The alpha of c is used as the
// opacity of the image watermark.
func (opts *Options) SetMark(imagePath, text string, size int, c color.NRGBA) *Options {
	if text != "" {
		return opts.SetText(text, size, c)
	}
	return opts.SetImage(imagePath, c.A)
}

// SetPosition sets the value for the Position field.
func (opts *Options) SetPosition(p Position) *Options {
	opts.Position = p
	return opts
}

// SetMargins sets the value for the Margins field.
func (opts *Options) SetMargins(m Margins) *Options {
	opts.Margins = m
	return opts
}

// SetScale sets the value for the Scale field.
func (opts *Options) SetScale(scale float64) *Options {
	opts.Scale = scale
	return opts
}

// SetBackground sets the value for the Background field.
func (opts *Options) SetBackground(c color.NRGBA, radius int) *Options {
	opts.Background = Background{c, radius}
	return opts
}

// Validate reports the first invalid setting of opts.
func (opts *Options) Validate() error {
	if opts == nil || opts.Mark == nil {
		return ErrNoMark
	}
	if err := opts.Mark.validate(); err != nil {
		return err
	}
	if !(opts.Scale > 0 && opts.Scale <= 1) {
		return fmt.Errorf("%w: %g", ErrScale, opts.Scale)
	}
	if !opts.Margins.valid() {
		return fmt.Errorf("%w: %+v", ErrMargin, opts.Margins)
	}
	if opts.Background.Radius < 0 {
		return fmt.Errorf("%w: %d", ErrRadius, opts.Background.Radius)
	}
	return nil
}
