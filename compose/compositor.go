// Package compose rebuilds the working image from the pristine scaled
// source plus the full region store. Effects stack cumulatively: each
// region's transform is applied to the already-composited accumulator, so
// overlapping regions compose in store order.
package compose

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/soocke/circlemark/domain/annotation"
)

const (
	// DefaultBlurKernel is the initial Gaussian kernel size.
	DefaultBlurKernel = 25
	// DefaultPixelateSize is the initial pixelation block factor.
	DefaultPixelateSize = 10
	// DefaultHighlightAlpha is the initial blend weight toward white.
	DefaultHighlightAlpha = 0.4

	outlineThickness = 2
)

// Compositor applies region effects to an image buffer. Effect parameters
// are validated at the setters; a value that fails validation leaves the
// previous one in effect.
type Compositor struct {
	logger *slog.Logger

	blurKernel     int
	pixelateSize   int
	highlightAlpha float64
}

// New returns a compositor with default effect parameters.
func New(logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compositor{
		logger:         logger,
		blurKernel:     DefaultBlurKernel,
		pixelateSize:   DefaultPixelateSize,
		highlightAlpha: DefaultHighlightAlpha,
	}
}

// BlurKernel returns the current Gaussian kernel size.
func (c *Compositor) BlurKernel() int { return c.blurKernel }

// SetBlurKernel changes the Gaussian kernel size. The value must be odd and
// positive; otherwise the previous value stays in effect.
func (c *Compositor) SetBlurKernel(k int) error {
	if k <= 0 {
		return fmt.Errorf("blur kernel must be positive, got %d", k)
	}
	if k%2 == 0 {
		return fmt.Errorf("blur kernel must be odd, got %d", k)
	}
	c.blurKernel = k
	return nil
}

// PixelateSize returns the current pixelation block factor.
func (c *Compositor) PixelateSize() int { return c.pixelateSize }

// SetPixelateSize changes the pixelation block factor. The value must be
// positive; otherwise the previous value stays in effect.
func (c *Compositor) SetPixelateSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("pixelate size must be positive, got %d", n)
	}
	c.pixelateSize = n
	return nil
}

// HighlightAlpha returns the current blend weight toward white.
func (c *Compositor) HighlightAlpha() float64 { return c.highlightAlpha }

// SetHighlightAlpha changes the highlight blend weight, in (0, 1].
func (c *Compositor) SetHighlightAlpha(a float64) error {
	if a <= 0 || a > 1 {
		return fmt.Errorf("highlight alpha must be in (0, 1], got %v", a)
	}
	c.highlightAlpha = a
	return nil
}

// Render composites every region over a clone of src in store order and
// returns the result. src is never mutated. A region that fails to
// composite is skipped, outline included, and logged; the rest still
// render.
func (c *Compositor) Render(src *image.NRGBA, regions []annotation.Region) *image.NRGBA {
	out := imaging.Clone(src)
	for i, r := range regions {
		next, err := c.applyRegion(out, r)
		if err != nil {
			c.logger.Warn("region skipped during composite",
				"index", i+1, "mode", r.Mode.String(), "error", err)
			continue
		}
		out = next
	}
	return out
}

// applyRegion composites one region onto a clone of acc and returns it.
// Failures, including panics from a bad transform, become errors so a
// single bad region never aborts the whole redraw.
func (c *Compositor) applyRegion(acc *image.NRGBA, r annotation.Region) (out *image.NRGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("compositing panic: %v", p)
		}
	}()
	if r.Radius <= 0 {
		return nil, fmt.Errorf("non-positive radius %d", r.Radius)
	}
	out = imaging.Clone(acc)
	if tf := c.transforms()[r.Mode]; tf != nil {
		maskCircle(out, tf(acc), r.Center, r.Radius)
	}
	DrawCircleOutline(out, r.Center, r.Radius, r.Mode.Color(), outlineThickness)
	return out, nil
}
