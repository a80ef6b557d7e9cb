package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/soocke/circlemark/domain/annotation"
)

// Transform applies one effect to a whole frame and returns a new image;
// masking to the region's circle happens in the compositor. Implementations
// never mutate their input.
type Transform func(*image.NRGBA) *image.NRGBA

// transforms builds the mode strategy map with closures over the current
// effect parameters. ModeOutline has no transform (nil entry).
func (c *Compositor) transforms() map[annotation.Mode]Transform {
	return map[annotation.Mode]Transform{
		annotation.ModeHighlight: func(img *image.NRGBA) *image.NRGBA {
			return blendToward(img, 255, c.highlightAlpha)
		},
		annotation.ModeBlur: func(img *image.NRGBA) *image.NRGBA {
			return imaging.Blur(img, sigmaForKernel(c.blurKernel))
		},
		annotation.ModePixelate: func(img *image.NRGBA) *image.NRGBA {
			return pixelate(img, c.pixelateSize)
		},
		annotation.ModeDarken: func(img *image.NRGBA) *image.NRGBA {
			return blendToward(img, 0, 0.5)
		},
		annotation.ModeGrayscale: func(img *image.NRGBA) *image.NRGBA {
			return imaging.Grayscale(img)
		},
		annotation.ModeInvert: func(img *image.NRGBA) *image.NRGBA {
			return imaging.Invert(img)
		},
		annotation.ModeOutline: nil,
	}
}

// blendToward linearly blends every channel toward the target value:
// out = (1-alpha)*in + alpha*target. Alpha is left untouched.
func blendToward(img *image.NRGBA, target uint8, alpha float64) *image.NRGBA {
	t := float64(target) * alpha
	keep := 1 - alpha
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: uint8(float64(c.R)*keep + t),
			G: uint8(float64(c.G)*keep + t),
			B: uint8(float64(c.B)*keep + t),
			A: c.A,
		}
	})
}

// pixelate downsamples by an integer block factor and scales back up, both
// with nearest-neighbor; the blockiness is the point.
func pixelate(img *image.NRGBA, block int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tw, th := w/block, h/block
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	small := imaging.Resize(img, tw, th, imaging.NearestNeighbor)
	return imaging.Resize(small, w, h, imaging.NearestNeighbor)
}

// sigmaForKernel converts an odd Gaussian kernel size to a blur sigma using
// the conventional 0.3*((k-1)*0.5 - 1) + 0.8 rule.
func sigmaForKernel(k int) float64 {
	return 0.3*((float64(k)-1)*0.5-1) + 0.8
}
