package imageio

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestListImages_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", "c.webp", "x.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	files, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 images, got %d: %v", len(files), files)
	}
	want := []string{"a.JPG", "b.png", "c.webp"}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Fatalf("order %v, want %v", files, want)
		}
	}
}

func TestListImages_MissingFolder(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing folder")
	}
}

func TestFitToDisplay_NoScaleWhenSmall(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	scaled, factor := FitToDisplay(src, 1400, 900)
	if factor != 1.0 {
		t.Fatalf("factor %v for image already fitting", factor)
	}
	if scaled.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v", scaled.Bounds())
	}
	// a clone, not an alias
	scaled.Pix[0] = 99
	if src.Pix[0] == 99 {
		t.Fatalf("FitToDisplay aliased the source buffer")
	}
}

func TestFitToDisplay_DownscalesToFit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2800, 900))
	scaled, factor := FitToDisplay(src, 1400, 900)
	if factor != 0.5 {
		t.Fatalf("factor %v, want 0.5", factor)
	}
	if scaled.Bounds().Dx() != 1400 || scaled.Bounds().Dy() != 450 {
		t.Fatalf("scaled to %v", scaled.Bounds())
	}
}

func TestFitToDisplay_TallImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1000, 1800))
	scaled, factor := FitToDisplay(src, 1400, 900)
	if factor != 0.5 {
		t.Fatalf("factor %v, want 0.5", factor)
	}
	if scaled.Bounds().Dy() != 900 {
		t.Fatalf("height %d, want 900", scaled.Bounds().Dy())
	}
}

func TestOpenSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if back.Bounds().Dx() != 8 || back.Bounds().Dy() != 8 {
		t.Fatalf("bounds %v", back.Bounds())
	}
}
