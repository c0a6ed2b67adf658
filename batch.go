package watermark

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var supported = regexp.MustCompile(`(?i)^\.(jpe?g|png|gif|bmp|webp)$`)

// isSupported reports whether name has a supported extension and a name
// before it. Leading dots do not count as a name, so ".png" is skipped.
func isSupported(name string) bool {
	ext := filepath.Ext(name)
	return supported.MatchString(ext) && strings.TrimLeft(strings.TrimSuffix(name, ext), ".") != ""
}

// ErrNoImage means a directory holds no supported image.
var ErrNoImage = errors.New("no supported image found")

// FileError records a failure to watermark a single file.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string { return e.Name + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// ListImages returns the supported images directly under dir in name order.
// Subdirectories are not walked.
func ListImages(dir string) (imgs []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !isSupported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			continue
		}
		imgs = append(imgs, path)
	}
	return
}

// Progress is reported after every processed file.
type Progress struct {
	// Done counts the processed files including this one.
	Done, Total int
	Name        string
	Err         error
}

// Result summarizes a batch run.
type Result struct {
	Total, Succeeded, Failed int
	Errors                   []error
}

// Outcome is delivered by Batch.Start when the run finishes.
type Outcome struct {
	Result
	Err error
}

// Batch watermarks every supported image of Src into Dst, keeping file names.
type Batch struct {
	Src, Dst string
	Options  *Options
	Decode   []DecodeOption
	Encode   []EncodeOption

	// OnStart is called once with the number of images found.
	OnStart func(total int)
	// OnProgress is called after every file from the goroutine running the batch.
	OnProgress func(Progress)
}

// ProcessFile watermarks the image src and saves it to dst in the format
// matching the extension of dst. Any failure is returned as *FileError.
func (b *Batch) ProcessFile(src, dst string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FileError{src, fmt.Errorf("panic: %v", r)}
		}
	}()

	img, err := Open(src, b.Decode...)
	if err != nil {
		return &FileError{src, err}
	}
	res, err := Watermark(img, b.Options)
	if err != nil {
		return &FileError{src, err}
	}
	format, err := FormatFromFilename(dst)
	if err != nil {
		return &FileError{src, err}
	}
	if err := Save(dst, res, &FormatOption{format, b.Encode}); err != nil {
		return &FileError{src, err}
	}
	return nil
}

// Run processes the batch sequentially. Options are validated before any
// file is touched. Failures of single files are counted in the result and
// do not stop the run; failing to list Src does.
func (b *Batch) Run() (res Result, err error) {
	if err = b.Options.Validate(); err != nil {
		return
	}
	if err = os.MkdirAll(b.Dst, 0755); err != nil {
		return
	}
	imgs, err := ListImages(b.Src)
	if err != nil {
		return
	}

	res.Total = len(imgs)
	if b.OnStart != nil {
		b.OnStart(res.Total)
	}
	for i, src := range imgs {
		name := filepath.Base(src)
		err := b.ProcessFile(src, filepath.Join(b.Dst, name))
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err)
		} else {
			res.Succeeded++
		}
		if b.OnProgress != nil {
			b.OnProgress(Progress{i + 1, res.Total, name, err})
		}
	}
	return
}

// Start runs the batch on a single background goroutine and delivers the
// outcome on the returned channel.
func (b *Batch) Start() <-chan Outcome {
	c := make(chan Outcome, 1)
	go func() {
		res, err := b.Run()
		c <- Outcome{res, err}
		close(c)
	}()
	return c
}

// Preview watermarks the first supported image of Src without saving it.
func (b *Batch) Preview() (image.Image, error) {
	if err := b.Options.Validate(); err != nil {
		return nil, err
	}
	imgs, err := ListImages(b.Src)
	if err != nil {
		return nil, err
	}
	if len(imgs) == 0 {
		return nil, ErrNoImage
	}
	img, err := Open(imgs[0], b.Decode...)
	if err != nil {
		return nil, &FileError{imgs[0], err}
	}
	return Watermark(img, b.Options)
}
