package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sunshineplan/utils/log"
	"github.com/sunshineplan/watermark"
	"github.com/vharitonsky/iniflags"
)

var (
	inputDir        = flag.String("input_dir", "", "")
	outputDir       = flag.String("output_dir", "", "")
	mark            = flag.String("watermark", "", "")
	text            = flag.String("text", "", "")
	fontSize        = flag.Int("font_size", watermark.DefaultFontSize, "")
	fontFile        = flag.String("font", "", "")
	position        = watermark.BottomRight
	marginBottom    = flag.Int("margin_bottom", watermark.DefaultMargin, "")
	marginRight     = flag.Int("margin_right", watermark.DefaultMargin, "")
	scale           = flag.Float64("scale", watermark.DefaultScale, "")
	opacity         = flag.Uint("opacity", watermark.DefaultOpacity, "")
	bgColor         = flag.String("bg_color", "#000000", "")
	cornerRadius    = flag.Int("corner_radius", 0, "")
	quality         = flag.Int("quality", 75, "")
	autoOrientation = flag.Bool("auto_orientation", false, "")
	preview         = flag.String("preview", "", "")
	quiet           = flag.Bool("quiet", false, "")
	debug           = flag.Bool("debug", false, "")
)

func init() {
	flag.TextVar(&position, "position", watermark.BottomRight, "")
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
	fmt.Println(`
  --input_dir
		input image directory (required)
  --output_dir
		output image directory (required)
  --watermark
		watermark image path
  --text
		watermark text, used instead of --watermark when both are given
  --font_size
		text watermark font size (default: 40)
  --font
		text watermark font file (default: first available system font)
  --position
		watermark position (top-left, top-right, bottom-left, bottom-right, center, default: bottom-right)
  --margin_bottom
		distance in pixels to the bottom edge (default: 20)
  --margin_right
		distance in pixels to the right edge (default: 20)
  --scale
		watermark width relative to the image width (range (0, 1], default: 0.2)
  --opacity
		watermark opacity (range 0-255, default: 128)
  --bg_color
		watermark background color in hex, e.g. #FF0000 (default: #000000)
  --corner_radius
		background corner radius in pixels (default: 0)
  --quality
		set jpeg quality (range 1-100, default: 75)
  --auto_orientation
		apply EXIF orientation when decoding (default: false)
  --preview
		write the watermarked first image to this file and exit
  --quiet
		hide the progress bar (default: false)
  --debug
		log every processed image (default: false)`)
}

func main() {
	var code int
	defer func() { os.Exit(code) }()

	self, err := os.Executable()
	if err != nil {
		log.Error("Failed to get self path", "error", err)
		code = 1
		return
	}

	flag.Usage = usage
	iniflags.SetConfigFile(filepath.Join(filepath.Dir(self), "config.ini"))
	iniflags.SetAllowMissingConfigFile(true)
	iniflags.Parse()

	batch, err := newBatch()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		code = 1
		return
	}

	if *preview != "" {
		if err := writePreview(batch, *preview); err != nil {
			log.Error("Failed to create preview", "error", err)
			code = 1
		}
		return
	}

	res, err := run(batch, !*quiet && isatty.IsTerminal(os.Stdout.Fd()))
	if err != nil {
		log.Error("Failed to process images", "input", *inputDir, "error", err)
		code = 1
		return
	}
	printSummary(os.Stdout, res, *outputDir)
}

func newBatch() (*watermark.Batch, error) {
	if *inputDir == "" {
		return nil, errors.New("input directory is required")
	}
	if info, err := os.Stat(*inputDir); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", *inputDir)
	}
	if *outputDir == "" && *preview == "" {
		return nil, errors.New("output directory is required")
	}
	if *text == "" {
		if *mark == "" {
			return nil, watermark.ErrNoMark
		}
		if _, err := os.Stat(*mark); err != nil {
			return nil, err
		}
	}
	if *opacity > 255 {
		return nil, fmt.Errorf("opacity %d out of range 0-255", *opacity)
	}
	if *scale <= 0 || *scale > 1 {
		log.Warn("Scale out of range (0, 1], using default", "scale", *scale, "default", watermark.DefaultScale)
		*scale = watermark.DefaultScale
	}

	alpha := uint8(*opacity)
	bg, err := parseHexColor(*bgColor)
	if err != nil {
		log.Warn("Invalid background color, using black", "color", *bgColor, "error", err)
	}
	bg.A = alpha

	opts := watermark.NewOptions()
	opts.SetMark(*mark, *text, *fontSize, color.NRGBA{0xff, 0xff, 0xff, alpha}).
		SetPosition(position).
		SetMargins(watermark.Margins{
			Top:    watermark.DefaultMargin,
			Bottom: *marginBottom,
			Left:   watermark.DefaultMargin,
			Right:  *marginRight,
		}).
		SetScale(*scale).
		SetBackground(bg, *cornerRadius)
	if t, ok := opts.Mark.(*watermark.Text); ok {
		t.FontFile = *fontFile
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &watermark.Batch{
		Src:     *inputDir,
		Dst:     *outputDir,
		Options: &opts,
		Decode:  []watermark.DecodeOption{watermark.AutoOrientation(*autoOrientation)},
		Encode:  []watermark.EncodeOption{watermark.Quality(*quality)},
	}, nil
}
