package images

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestJPEG creates a solid-color JPEG of the given size.
func writeTestJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 80, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
}

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, filepath.Join(dir, "wide.jpg"), 640, 480)
	writeTestPNG(t, filepath.Join(dir, "tall.png"), 300, 500)

	l := NewLoader(dir)

	d, ok := l.Dimensions("wide.jpg")
	if !ok || d.Width != 640 || d.Height != 480 {
		t.Errorf("wide.jpg = %+v, %v; want 640x480", d, ok)
	}
	d, ok = l.Dimensions("tall.png")
	if !ok || d.Width != 300 || d.Height != 500 {
		t.Errorf("tall.png = %+v, %v; want 300x500", d, ok)
	}

	if _, ok := l.Dimensions("missing.jpg"); ok {
		t.Error("missing file reported dimensions")
	}

	// Cached lookups survive the file disappearing.
	if err := os.Remove(filepath.Join(dir, "wide.jpg")); err != nil {
		t.Fatal(err)
	}
	if d, ok := l.Dimensions("wide.jpg"); !ok || d.Width != 640 {
		t.Error("cached dimensions were lost")
	}
}

func TestDimensionsRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := NewLoader(dir).Dimensions("broken.jpg"); ok {
		t.Error("undecodable file reported dimensions")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, filepath.Join(dir, "b.jpg"), 640, 480)
	writeTestJPEG(t, filepath.Join(dir, "a.jpg"), 320, 240)
	writeTestPNG(t, filepath.Join(dir, "c.png"), 100, 100)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	photos, err := NewLoader(dir).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(photos) != 3 {
		t.Fatalf("List returned %d photos; want 3", len(photos))
	}
	// Sorted by filename
	if photos[0].Filename != "a.jpg" || photos[1].Filename != "b.jpg" || photos[2].Filename != "c.png" {
		t.Errorf("order: %s, %s, %s", photos[0].Filename, photos[1].Filename, photos[2].Filename)
	}
	if photos[1].Width != 640 || photos[1].Height != 480 {
		t.Errorf("b.jpg = %dx%d; want 640x480", photos[1].Width, photos[1].Height)
	}
	if photos[0].Size == 0 {
		t.Error("file size not reported")
	}
}

func TestListMissingDirectory(t *testing.T) {
	photos, err := NewLoader(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("missing directory listed %d photos", len(photos))
	}
}

func TestEnsureThumbnail(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, filepath.Join(dir, "large.jpg"), 1200, 800)
	writeTestJPEG(t, filepath.Join(dir, "small.jpg"), 200, 150)

	l := NewLoader(dir)

	name, err := l.EnsureThumbnail("large.jpg")
	if err != nil {
		t.Fatalf("EnsureThumbnail failed: %v", err)
	}
	if name != "large.webp" {
		t.Errorf("thumbnail name = %s; want large.webp", name)
	}
	thumbPath := filepath.Join(dir, ".thumbs", name)
	d, err := decodeDimensions(thumbPath)
	if err != nil {
		t.Fatalf("thumbnail unreadable: %v", err)
	}
	if d.Width != 400 {
		t.Errorf("thumbnail width = %d; want 400", d.Width)
	}

	// Small images are not upscaled.
	if _, err := l.EnsureThumbnail("small.jpg"); err != nil {
		t.Fatalf("EnsureThumbnail failed: %v", err)
	}
	d, err = decodeDimensions(filepath.Join(dir, ".thumbs", "small.webp"))
	if err != nil {
		t.Fatalf("thumbnail unreadable: %v", err)
	}
	if d.Width != 200 || d.Height != 150 {
		t.Errorf("small thumbnail = %dx%d; want 200x150", d.Width, d.Height)
	}

	// Second call reuses the existing file.
	before, err := os.Stat(thumbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.EnsureThumbnail("large.jpg"); err != nil {
		t.Fatalf("EnsureThumbnail failed: %v", err)
	}
	after, err := os.Stat(thumbPath)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("existing thumbnail was regenerated")
	}
}
