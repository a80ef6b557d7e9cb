// Package layout places label callouts next to their regions so that no two
// labels drawn in the same redraw overlap. The packing is greedy and
// order-dependent: regions are processed in store order, earlier regions get
// first choice, and placed rectangles are never re-packed. That is
// acceptable because regions are added interactively one at a time.
package layout

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/soocke/circlemark/domain/annotation"
)

const (
	// collisionBuffer is the minimum clearance kept between placed
	// rectangles.
	collisionBuffer = 5
	// boundsPadding is the margin kept between a rectangle and the image
	// edge for ring candidates.
	boundsPadding = 4
	textPadding   = 4
)

// offsetRings are the expanding perturbation distances tried around each
// anchor candidate before giving up on collision-free placement.
var offsetRings = []int{0, 30, 60, 90, 120}

// Placement is the chosen geometry for one region's callout.
type Placement struct {
	Text      string
	Rect      image.Rectangle // background and border rectangle
	TextOrig  image.Point     // baseline origin for text drawing
	Connector [2]image.Point  // rectangle bottom-center to circle center
	Color     color.NRGBA
	Face      font.Face // face used for measuring; reuse it for drawing
}

// Engine measures label text and computes collision-free callout positions.
type Engine struct {
	fnt   *sfnt.Font
	faces map[float64]font.Face
}

// New returns an engine using the bundled Go Regular face.
func New() (*Engine, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return &Engine{fnt: f, faces: make(map[float64]font.Face)}, nil
}

// faceFor returns a face sized for the image: smaller images get smaller
// text, in discrete steps keyed to the smaller dimension.
func (e *Engine) faceFor(bounds image.Rectangle) (font.Face, error) {
	minDim := bounds.Dx()
	if bounds.Dy() < minDim {
		minDim = bounds.Dy()
	}
	var size float64
	switch {
	case minDim < 200:
		size = 10
	case minDim < 400:
		size = 12
	case minDim < 800:
		size = 14
	default:
		size = 16
	}
	if face, ok := e.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(e.fnt, &opentype.FaceOptions{
		Size: size, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("label face at %vpt: %w", size, err)
	}
	e.faces[size] = face
	return face, nil
}

// Place computes callouts for every labeled region in store order. Regions
// with empty labels are skipped. The result is guaranteed to contain no
// overlapping rectangles: ring candidates are rejected on collision, and
// the stacking fallback always places below everything already placed.
func (e *Engine) Place(regions []annotation.Region, bounds image.Rectangle) ([]Placement, error) {
	face, err := e.faceFor(bounds)
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	var placed []image.Rectangle
	var out []Placement
	for i, r := range regions {
		if r.Label == "" {
			continue
		}
		text := fmt.Sprintf("#%d [%s] %s", i+1, r.Mode.Code(), r.Label)
		textW := font.MeasureString(face, text).Ceil()

		rect := e.position(r.Center, r.Radius, textW, ascent, descent, bounds, placed)
		placed = append(placed, rect)

		out = append(out, Placement{
			Text:     text,
			Rect:     rect,
			TextOrig: image.Pt(rect.Min.X+textPadding, rect.Min.Y+textPadding+ascent),
			Connector: [2]image.Point{
				image.Pt(rect.Min.X+rect.Dx()/2, rect.Max.Y),
				r.Center,
			},
			Color: r.Mode.Color(),
			Face:  face,
		})
	}
	return out, nil
}

// position returns the callout rectangle for one region: the first ring
// candidate that fits the image and clears every placed rectangle, or the
// stacking fallback when all candidates fail.
func (e *Engine) position(center image.Point, radius, textW, ascent, descent int, bounds image.Rectangle, placed []image.Rectangle) image.Rectangle {
	totalW := textW + 2*textPadding
	totalH := ascent + descent + 2*textPadding

	// Eight anchors around the circle: above, below, left, right, and the
	// diagonals, offset outward from the boundary.
	anchors := []image.Point{
		{center.X - radius, center.Y - radius - totalH - 10},
		{center.X - radius, center.Y + radius + 20},
		{center.X - radius - totalW - 10, center.Y - totalH/2},
		{center.X + radius + 10, center.Y - totalH/2},
		{center.X + radius + 10, center.Y - radius - totalH - 10},
		{center.X - radius - totalW - 10, center.Y - radius - totalH - 10},
		{center.X + radius + 10, center.Y + radius + 20},
		{center.X - radius - totalW - 10, center.Y + radius + 20},
	}

	limit := bounds.Inset(boundsPadding)
	for _, off := range offsetRings {
		for _, a := range anchors {
			for _, dx := range []int{0, off, -off} {
				for _, dy := range []int{0, off, -off} {
					rect := image.Rect(a.X+dx, a.Y+dy, a.X+dx+totalW, a.Y+dy+totalH)
					if !rect.In(limit) {
						continue
					}
					if collides(rect, placed) {
						continue
					}
					return rect
				}
			}
		}
	}

	// Guaranteed fallback: clamp horizontally, stack below the lowest
	// placed rectangle (or at the top when nothing is placed yet).
	x := center.X
	if x+totalW > bounds.Max.X-boundsPadding {
		x = bounds.Max.X - boundsPadding - totalW
	}
	if x < bounds.Min.X+boundsPadding {
		x = bounds.Min.X + boundsPadding
	}
	y := bounds.Min.Y + boundsPadding
	for _, p := range placed {
		if p.Max.Y+collisionBuffer > y {
			y = p.Max.Y + collisionBuffer
		}
	}
	return image.Rect(x, y, x+totalW, y+totalH)
}

func collides(rect image.Rectangle, placed []image.Rectangle) bool {
	grown := rect.Inset(-collisionBuffer)
	for _, p := range placed {
		if grown.Overlaps(p) {
			return true
		}
	}
	return false
}
