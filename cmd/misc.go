package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sunshineplan/progressbar"
	"github.com/sunshineplan/utils/log"
	"github.com/sunshineplan/watermark"
)

// parseHexColor parses a color written as six hex digits with an optional
// leading '#'. The returned color is opaque black on error.
func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{A: 0xff}, fmt.Errorf("invalid hex color %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{A: 0xff}, err
	}
	return color.NRGBA{b[0], b[1], b[2], 0xff}, nil
}

func run(batch *watermark.Batch, bar bool) (watermark.Result, error) {
	add, done := func() {}, func() {}
	batch.OnStart = func(total int) {
		// progressbar.New panics on a total of 0
		if !bar || total <= 0 {
			log.Info("Total images", "count", total)
			return
		}
		pb := progressbar.New(total)
		pb.Start()
		add = func() { pb.Add(1) }
		done = func() { pb.Wait() }
	}
	batch.OnProgress = func(p watermark.Progress) {
		defer add()
		if p.Err != nil {
			log.Error("Failed to add watermark", "image", p.Name, "error", p.Err)
			return
		}
		if *debug {
			log.Info("Added watermark", "image", p.Name, "progress", fmt.Sprintf("%d/%d", p.Done, p.Total))
		}
	}

	res, err := batch.Run()
	done()
	return res, err
}

func writePreview(batch *watermark.Batch, output string) error {
	img, err := batch.Preview()
	if err != nil {
		return err
	}
	format, err := watermark.FormatFromFilename(output)
	if err != nil {
		return err
	}
	if err := watermark.Save(output, img, &watermark.FormatOption{Format: format, EncodeOption: batch.Encode}); err != nil {
		return err
	}
	log.Info("Preview saved", "output", output)
	return nil
}

func printSummary(w io.Writer, res watermark.Result, output string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Done!")
	fmt.Fprintln(w, "Total images:", res.Total)
	fmt.Fprintln(w, "Succeeded:", res.Succeeded)
	fmt.Fprintln(w, "Failed:", res.Failed)
	names := make([]string, len(res.Errors))
	causes := make([]error, len(res.Errors))
	var width int
	for i, err := range res.Errors {
		var fe *watermark.FileError
		if errors.As(err, &fe) {
			names[i], causes[i] = filepath.Base(fe.Name), fe.Err
		} else {
			causes[i] = err
		}
		width = max(width, runewidth.StringWidth(names[i]))
	}
	for i := range names {
		fmt.Fprintf(w, "  %s  %v\n", runewidth.FillRight(names[i], width), causes[i])
	}
	fmt.Fprintln(w, "Output directory:", output)
}
