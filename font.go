package watermark

import (
	"image"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontPaths lists the system fonts tried in order when a text mark has no
// font file of its own.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/PingFang.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Windows
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\msyh.ttc`,
	// Linux
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
}

type typeface interface {
	face(size float64) (font.Face, error)
}

type openTypeface struct{ *opentype.Font }

func (f openTypeface) face(size float64) (font.Face, error) {
	return opentype.NewFace(f.Font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

type trueTypeface struct{ *truetype.Font }

func (f trueTypeface) face(size float64) (font.Face, error) {
	return truetype.NewFace(f.Font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

var goRegular = sync.OnceValue(func() typeface {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return trueTypeface{f}
})

func parseFont(file string) (typeface, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if f, err := opentype.Parse(b); err == nil {
		return openTypeface{f}, nil
	}
	c, err := opentype.ParseCollection(b)
	if err != nil {
		return nil, err
	}
	f, err := c.Font(0)
	if err != nil {
		return nil, err
	}
	return openTypeface{f}, nil
}

// loadTypeface returns the typeface parsed from file, falling back to the
// first usable system font and then to the built-in Go Regular font.
func loadTypeface(file string) typeface {
	if file != "" {
		if f, err := parseFont(file); err == nil {
			return f
		}
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if f, err := parseFont(path); err == nil {
			return f
		}
	}
	return goRegular()
}

// measure returns the advance width and the ascent+descent height of text.
func measure(face font.Face, text string) image.Point {
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, text).Ceil(), (m.Ascent + m.Descent).Ceil())
}
