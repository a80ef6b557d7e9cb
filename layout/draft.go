package layout

import (
	"fmt"
	"image"

	"golang.org/x/image/font"

	"github.com/soocke/circlemark/domain/annotation"
)

// PlaceDraft positions the live-typed callout for the in-progress region:
// above the circle when it fits, below otherwise, clamped to the image. It
// ignores committed labels on purpose; the draft is transient and redrawn
// on every keystroke.
func (e *Engine) PlaceDraft(center image.Point, radius int, label string, mode annotation.Mode, bounds image.Rectangle) (Placement, error) {
	face, err := e.faceFor(bounds)
	if err != nil {
		return Placement{}, err
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	text := fmt.Sprintf("[%s] %s_", mode.Code(), label)
	textW := font.MeasureString(face, text).Ceil()
	totalW := textW + 2*textPadding
	totalH := ascent + descent + 2*textPadding

	candidates := []image.Point{
		{center.X - radius, center.Y - radius - totalH - 10},
		{center.X - radius, center.Y + radius + 20},
	}
	limit := bounds.Inset(boundsPadding)
	rect := image.Rectangle{}
	for _, c := range candidates {
		r := image.Rect(c.X, c.Y, c.X+totalW, c.Y+totalH)
		if r.In(limit) {
			rect = r
			break
		}
	}
	if rect.Empty() {
		x := clamp(center.X-radius, limit.Min.X, limit.Max.X-totalW)
		y := clamp(center.Y-radius-totalH-10, limit.Min.Y, limit.Max.Y-totalH)
		rect = image.Rect(x, y, x+totalW, y+totalH)
	}

	return Placement{
		Text:     text,
		Rect:     rect,
		TextOrig: image.Pt(rect.Min.X+textPadding, rect.Min.Y+textPadding+ascent),
		Connector: [2]image.Point{
			image.Pt(rect.Min.X+rect.Dx()/2, rect.Max.Y),
			center,
		},
		Color: mode.Color(),
		Face:  face,
	}, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
