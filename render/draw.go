package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// drawLine draws a 1px Bresenham line between two points, clipped to dst.
func drawLine(dst *image.NRGBA, a, b image.Point, col color.NRGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	bounds := dst.Bounds()
	for {
		if image.Pt(x, y).In(bounds) {
			dst.SetNRGBA(x, y, col)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// drawRectBorder draws a rectangle border of the given thickness.
func drawRectBorder(dst *image.NRGBA, r image.Rectangle, col color.NRGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		rt := r.Inset(t)
		if rt.Empty() {
			return
		}
		for x := rt.Min.X; x < rt.Max.X; x++ {
			setClipped(dst, x, rt.Min.Y, col)
			setClipped(dst, x, rt.Max.Y-1, col)
		}
		for y := rt.Min.Y; y < rt.Max.Y; y++ {
			setClipped(dst, rt.Min.X, y, col)
			setClipped(dst, rt.Max.X-1, y, col)
		}
	}
}

// fillRectAlpha blends a solid color over the rectangle at the given
// opacity, clipped to dst.
func fillRectAlpha(dst *image.NRGBA, r image.Rectangle, col color.NRGBA, alpha float64) {
	r = r.Intersect(dst.Bounds())
	keep := 1 - alpha
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = uint8(float64(dst.Pix[i+0])*keep + float64(col.R)*alpha)
			dst.Pix[i+1] = uint8(float64(dst.Pix[i+1])*keep + float64(col.G)*alpha)
			dst.Pix[i+2] = uint8(float64(dst.Pix[i+2])*keep + float64(col.B)*alpha)
		}
	}
}

// drawText draws text with its baseline origin at pos.
func drawText(dst *image.NRGBA, face font.Face, pos image.Point, col color.NRGBA, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(pos.X, pos.Y),
	}
	d.DrawString(text)
}

func setClipped(dst *image.NRGBA, x, y int, col color.NRGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetNRGBA(x, y, col)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
