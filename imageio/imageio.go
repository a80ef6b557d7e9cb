// Package imageio is the on-disk image glue: folder scanning, decode into
// the canonical NRGBA working buffer, and display downscaling.
package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// registers webp decoding with image.Decode
	_ "golang.org/x/image/webp"
	"github.com/disintegration/imaging"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ListImages returns the sorted paths of the image files directly inside
// dir, filtered by extension.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Open decodes the image at path into an NRGBA buffer.
func Open(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return imaging.Clone(img), nil
}

// Save writes the image to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

// FitToDisplay downscales src so it fits within maxW x maxH, preserving
// aspect ratio, and returns the working image plus the applied scale
// factor. Images that already fit are returned as a clone at factor 1.0:
// regions are committed against this buffer and projected back through the
// factor on export.
func FitToDisplay(src *image.NRGBA, maxW, maxH int) (*image.NRGBA, float64) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return imaging.Clone(src), 1.0
	}
	factor := float64(maxW) / float64(w)
	if fh := float64(maxH) / float64(h); fh < factor {
		factor = fh
	}
	nw := int(float64(w) * factor)
	nh := int(float64(h) * factor)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return imaging.Resize(src, nw, nh, imaging.Box), factor
}
