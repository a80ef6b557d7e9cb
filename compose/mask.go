package compose

import (
	"image"
	"image/color"
)

// maskCircle replaces dst pixels inside the filled circle with the
// corresponding pixels of src. Both images must share bounds.
func maskCircle(dst, src *image.NRGBA, center image.Point, radius int) {
	b := dst.Bounds()
	box := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).Intersect(b)
	rr := radius * radius
	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := y - center.Y
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= rr {
				di := dst.PixOffset(x, y)
				si := src.PixOffset(x, y)
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	}
}

// DrawCircleOutline draws a ring of the given thickness just inside the
// circle boundary. Pixels outside dst bounds are clipped.
func DrawCircleOutline(dst *image.NRGBA, center image.Point, radius int, col color.NRGBA, thickness int) {
	if radius <= 0 || thickness <= 0 {
		return
	}
	inner := radius - thickness
	if inner < 0 {
		inner = 0
	}
	b := dst.Bounds()
	box := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).Intersect(b)
	lo, hi := inner*inner, radius*radius
	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := y - center.Y
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := x - center.X
			d := dx*dx + dy*dy
			if d >= lo && d <= hi {
				dst.SetNRGBA(x, y, col)
			}
		}
	}
}
