package watermark

import (
	"errors"
	"image/color"
	"testing"
)

func TestOption(t *testing.T) {
	o := NewOptions()
	if o.Position != BottomRight || o.Margins != DefaultMargins() || o.Scale != DefaultScale {
		t.Errorf("unexpected defaults: %+v", o)
	}
	if err := o.Validate(); !errors.Is(err, ErrNoMark) {
		t.Errorf("want ErrNoMark, got %v", err)
	}

	o.SetImage("mark.png", 100).SetPosition(Center).SetMargins(UniformMargins(5)).SetScale(0.5)
	if m, ok := o.Mark.(*Image); !ok || m.Path != "mark.png" || m.Opacity != 100 {
		t.Errorf("SetImage result is not expect one: %+v", o.Mark)
	}
	if o.Position != Center || o.Margins != (Margins{5, 5, 5, 5}) || o.Scale != 0.5 {
		t.Errorf("unexpected options: %+v", o)
	}

	c := color.NRGBA{0xff, 0xff, 0xff, 0x80}
	o.SetMark("mark.png", "", 30, c)
	if m, ok := o.Mark.(*Image); !ok || m.Opacity != 0x80 {
		t.Errorf("SetMark without text want image mark, got %+v", o.Mark)
	}
	o.SetMark("mark.png", "SAMPLE", 30, c)
	if m, ok := o.Mark.(*Text); !ok || m.Content != "SAMPLE" || m.Size != 30 || m.Color != c {
		t.Errorf("SetMark with text want text mark, got %+v", o.Mark)
	}
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
}

func TestValidate(t *testing.T) {
	var nilOptions *Options
	if err := nilOptions.Validate(); !errors.Is(err, ErrNoMark) {
		t.Errorf("nil options: want ErrNoMark, got %v", err)
	}

	for _, tc := range []struct {
		name string
		set  func(*Options)
		err  error
	}{
		{"valid", func(*Options) {}, nil},
		{"empty text", func(o *Options) { o.SetText("", 0, color.NRGBA{}) }, ErrNoMark},
		{"empty image", func(o *Options) { o.SetImage("", 255) }, ErrNoMark},
		{"zero scale", func(o *Options) { o.SetScale(0) }, ErrScale},
		{"scale over 1", func(o *Options) { o.SetScale(1.01) }, ErrScale},
		{"full width", func(o *Options) { o.SetScale(1) }, nil},
		{"negative margin", func(o *Options) { o.Margins.Right = -1 }, ErrMargin},
		{"zero margins", func(o *Options) { o.SetMargins(UniformMargins(0)) }, nil},
		{"negative radius", func(o *Options) { o.SetBackground(color.NRGBA{}, -1) }, ErrRadius},
		{"scale before radius", func(o *Options) { o.SetScale(2).SetBackground(color.NRGBA{}, -1) }, ErrScale},
	} {
		o := NewOptions()
		o.SetText("SAMPLE", DefaultFontSize, white)
		tc.set(&o)
		if err := o.Validate(); !errors.Is(err, tc.err) {
			t.Errorf("%s: want %v, got %v", tc.name, tc.err, err)
		}
	}
}
