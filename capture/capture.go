// Package capture grabs the screen as an annotation source for the
// single-shot screenshot mode.
package capture

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/vova616/screenshot"
)

// Grab captures the current screen and returns it as an NRGBA working
// buffer.
func Grab() (*image.NRGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return imaging.Clone(img), nil
}
