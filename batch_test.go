package watermark

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, format := range map[string]Format{
		"a.png":     PNG,
		"b.jpg":     JPEG,
		"C.PNG":     PNG,
		"sub/d.png": PNG,
	} {
		if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755); err != nil {
			t.Fatal(err)
		}
		if err := Save(filepath.Join(dir, name), opaqueBase(200, 100), &FormatOption{Format: format}); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{".png", "..jpg"} {
		if err := Save(filepath.Join(dir, name), opaqueBase(20, 10), &FormatOption{Format: PNG}); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.png"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testBatch(src, dst string) *Batch {
	opts := NewOptions()
	opts.Mark = &Image{Mark: fill(image.Rect(0, 0, 50, 50), red), Opacity: DefaultOpacity}
	return &Batch{Src: src, Dst: dst, Options: &opts}
}

func TestListImages(t *testing.T) {
	dir := testdir(t)
	imgs, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, i := range imgs {
		names = append(names, filepath.Base(i))
	}
	if want := []string{"C.PNG", "a.png", "b.jpg", "bad.png"}; !reflect.DeepEqual(names, want) {
		t.Errorf("want %v, got %v", want, names)
	}

	for _, tc := range []struct {
		name string
		ok   bool
	}{
		{"a.png", true},
		{"photo.JPEG", true},
		{".hidden.webp", true},
		{"a..gif", true},
		{".png", false},
		{"..jpg", false},
		{"png", false},
		{"a.png.txt", false},
		{"a.tiff", false},
	} {
		if got := isSupported(tc.name); got != tc.ok {
			t.Errorf("%q: want %t, got %t", tc.name, tc.ok, got)
		}
	}

	if _, err := ListImages(filepath.Join(dir, "missing")); err == nil {
		t.Error("list missing directory want error")
	}
}

func TestRun(t *testing.T) {
	src := testdir(t)
	dst := filepath.Join(t.TempDir(), "out", "nested")

	b := testBatch(src, dst)
	var total int
	var progress []Progress
	b.OnStart = func(n int) { total = n }
	b.OnProgress = func(p Progress) { progress = append(progress, p) }

	res, err := b.Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 4 || res.Succeeded != 3 || res.Failed != 1 || len(res.Errors) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	var fe *FileError
	if !errors.As(res.Errors[0], &fe) || filepath.Base(fe.Name) != "bad.png" {
		t.Errorf("want FileError of bad.png, got %v", res.Errors[0])
	}

	if total != 4 || len(progress) != 4 {
		t.Fatalf("want 4 progress reports of 4, got %d of %d", len(progress), total)
	}
	for i, p := range progress {
		if p.Done != i+1 || p.Total != 4 {
			t.Errorf("progress %d: %+v", i, p)
		}
		if (p.Err != nil) != (p.Name == "bad.png") {
			t.Errorf("progress %s: unexpected error %v", p.Name, p.Err)
		}
	}

	for _, name := range []string{"a.png", "b.jpg", "C.PNG"} {
		img, err := Open(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("open output %s: %v", name, err)
			continue
		}
		if img.Bounds() != image.Rect(0, 0, 200, 100) {
			t.Errorf("%s: wrong bounds %v", name, img.Bounds())
		}
	}
	for _, name := range []string{"bad.png", "notes.txt", "d.png", "dir.png"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err == nil {
			t.Errorf("unexpected output %s", name)
		}
	}
	if tmp, _ := filepath.Glob(filepath.Join(dst, "*.tmp")); len(tmp) != 0 {
		t.Errorf("temporary files left: %v", tmp)
	}

	// the source is untouched
	if img, err := Open(filepath.Join(src, "a.png")); err != nil {
		t.Fatal(err)
	} else {
		checkPixels(t, img, map[image.Point]color.NRGBA{{180, 80}: white})
	}
}

func TestRunError(t *testing.T) {
	src := testdir(t)

	dst := filepath.Join(t.TempDir(), "out")
	b := testBatch(src, dst)
	b.Options.Scale = 2
	if _, err := b.Run(); !errors.Is(err, ErrScale) {
		t.Errorf("want ErrScale, got %v", err)
	}
	if _, err := os.Stat(dst); err == nil {
		t.Error("output directory created for invalid options")
	}

	b = testBatch(filepath.Join(src, "missing"), dst)
	if _, err := b.Run(); err == nil {
		t.Error("run missing source want error")
	}

	b = testBatch(t.TempDir(), dst)
	var started bool
	b.OnStart = func(n int) { started = n == 0 }
	res, err := b.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !started || res.Total != 0 {
		t.Errorf("empty source: %+v", res)
	}
}

func TestStart(t *testing.T) {
	dst := t.TempDir()
	outcome := <-testBatch(testdir(t), dst).Start()
	if outcome.Err != nil {
		t.Fatal(outcome.Err)
	}
	if outcome.Succeeded != 3 || outcome.Failed != 1 {
		t.Errorf("unexpected outcome: %+v", outcome)
	}
}

func TestPreview(t *testing.T) {
	src := testdir(t)
	dst := filepath.Join(t.TempDir(), "out")

	img, err := testBatch(src, dst).Preview()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Errorf("wrong bounds: %v", img.Bounds())
	}
	if _, err := os.Stat(dst); err == nil {
		t.Error("preview created the output directory")
	}

	if _, err := testBatch(t.TempDir(), dst).Preview(); !errors.Is(err, ErrNoImage) {
		t.Errorf("want ErrNoImage, got %v", err)
	}
}

func TestProcessFile(t *testing.T) {
	src := testdir(t)
	dst := t.TempDir()
	b := testBatch(src, dst)

	if err := b.ProcessFile(filepath.Join(src, "a.png"), filepath.Join(dst, "a.webp")); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(filepath.Join(dst, "a.webp")); err != nil {
		t.Error(err)
	}

	err := b.ProcessFile(filepath.Join(src, "a.png"), filepath.Join(dst, "a.tif"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("want ErrUnsupportedFormat, got %v", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Name != filepath.Join(src, "a.png") {
		t.Errorf("want FileError of a.png, got %v", err)
	}
}
