// Package render assembles the pixel buffer shown to the operator: the
// composited working image, label callouts, the in-progress gesture, the
// zoom/pan view, and the HUD chrome.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/basicfont"

	"github.com/soocke/circlemark/compose"
	"github.com/soocke/circlemark/domain/annotation"
	"github.com/soocke/circlemark/domain/session"
	"github.com/soocke/circlemark/layout"
)

var (
	white    = color.NRGBA{255, 255, 255, 255}
	black    = color.NRGBA{0, 0, 0, 255}
	hudText  = color.NRGBA{200, 200, 200, 255}
	hudZoom  = color.NRGBA{100, 200, 255, 255}
	editHint = color.NRGBA{255, 165, 0, 255}
	savedCol = color.NRGBA{0, 255, 0, 255}
)

const labelBGAlpha = 0.5

// Status carries the HUD fields for the current image.
type Status struct {
	Index    int // 0-based position in the batch
	Total    int
	Filename string
	Saved    bool
	Edited   bool
}

// Renderer turns a session plus its composite into a display frame.
type Renderer struct {
	logger *slog.Logger
	layout *layout.Engine

	ShowLabels bool
	ShowHUD    bool
}

// NewRenderer returns a renderer with labels and HUD enabled.
func NewRenderer(eng *layout.Engine, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{logger: logger, layout: eng, ShowLabels: true, ShowHUD: true}
}

// Frame renders one display frame from the composited working image and the
// session's current state. composite is never mutated; the returned buffer
// matches the working image size.
func (r *Renderer) Frame(composite *image.NRGBA, sess *session.Session, st Status) *image.NRGBA {
	img := imaging.Clone(composite)

	if r.ShowLabels {
		r.drawLabels(img, sess)
	}
	r.drawGesture(img, sess)

	frame := viewportView(img, sess.Viewport())

	if _, entering := sess.LabelDraft(); entering {
		r.drawInputBox(frame, sess)
	}
	if r.ShowHUD {
		r.drawHUD(frame, sess, st)
	}
	return frame
}

func (r *Renderer) drawLabels(img *image.NRGBA, sess *session.Session) {
	placements, err := r.layout.Place(sess.Store().Regions(), img.Bounds())
	if err != nil {
		r.logger.Warn("label layout failed", "error", err)
		return
	}
	for _, p := range placements {
		drawPlacement(img, p)
	}
}

// Annotated returns a copy of img with label callouts for the given
// regions. Used for full-resolution export, where no session exists.
func (r *Renderer) Annotated(img *image.NRGBA, regions []annotation.Region) *image.NRGBA {
	out := imaging.Clone(img)
	placements, err := r.layout.Place(regions, out.Bounds())
	if err != nil {
		r.logger.Warn("label layout failed", "error", err)
		return out
	}
	for _, p := range placements {
		drawPlacement(out, p)
	}
	return out
}

func (r *Renderer) drawGesture(img *image.NRGBA, sess *session.Session) {
	center, radius, ok := sess.Gesture()
	if !ok || radius <= 0 {
		return
	}
	mode := sess.Mode()
	compose.DrawCircleOutline(img, center, radius, mode.Color(), 2)

	if draft, entering := sess.LabelDraft(); entering {
		p, err := r.layout.PlaceDraft(center, radius, draft, mode, img.Bounds())
		if err != nil {
			r.logger.Warn("draft layout failed", "error", err)
			return
		}
		// solid background while typing so the draft stays readable
		fillRectAlpha(img, p.Rect, black, 1.0)
		drawRectBorder(img, p.Rect, p.Color, 2)
		drawText(img, p.Face, p.TextOrig, white, p.Text)
		drawLine(img, p.Connector[0], p.Connector[1], p.Color)
	}
}

func drawPlacement(img *image.NRGBA, p layout.Placement) {
	fillRectAlpha(img, p.Rect, black, labelBGAlpha)
	drawRectBorder(img, p.Rect, p.Color, 2)
	drawText(img, p.Face, p.TextOrig, white, p.Text)
	drawLine(img, p.Connector[0], p.Connector[1], p.Color)
}

// viewportView applies the zoom/pan transform: the image scaled by the zoom
// level, pasted at the pan offset onto a canvas of the working size.
func viewportView(img *image.NRGBA, vp *session.Viewport) *image.NRGBA {
	zoom := vp.Zoom()
	panX, panY := vp.Pan()
	if zoom == 1.0 && panX == 0 && panY == 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scaled := img
	if zoom != 1.0 {
		scaled = imaging.Resize(img, int(float64(w)*zoom), int(float64(h)*zoom), imaging.Linear)
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	target := scaled.Bounds().Add(image.Pt(panX, panY)).Intersect(canvas.Bounds())
	if !target.Empty() {
		draw.Draw(canvas, target, scaled, target.Min.Sub(image.Pt(panX, panY)), draw.Src)
	}
	return canvas
}

// drawInputBox draws the bottom label-entry bar with the mode tag and the
// text typed so far.
func (r *Renderer) drawInputBox(frame *image.NRGBA, sess *session.Session) {
	draft, _ := sess.LabelDraft()
	b := frame.Bounds()
	boxH := 48
	if b.Dy() < 4*boxH {
		boxH = b.Dy() / 4
	}
	box := image.Rect(b.Min.X, b.Max.Y-boxH, b.Max.X, b.Max.Y)
	fillRectAlpha(frame, box, black, 0.8)
	drawRectBorder(frame, box, sess.Mode().Color(), 2)

	face := basicfont.Face7x13
	drawText(frame, face, image.Pt(box.Min.X+10, box.Min.Y+18), sess.Mode().Color(),
		fmt.Sprintf("[%s]", sess.Mode().Code()))
	drawText(frame, face, image.Pt(box.Min.X+60, box.Min.Y+18), white, "Label:")
	drawText(frame, face, image.Pt(box.Min.X+10, box.Min.Y+36), hudZoom, draft+"_")
}

// drawHUD draws the translucent top bar with mode, zoom, batch position and
// status, plus the key hints line at the bottom.
func (r *Renderer) drawHUD(frame *image.NRGBA, sess *session.Session, st Status) {
	b := frame.Bounds()
	barH := 44
	if max := b.Dy() * 15 / 100; barH > max && max > 0 {
		barH = max
	}
	fillRectAlpha(frame, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+barH), black, 0.7)

	face := basicfont.Face7x13
	mode := sess.Mode()
	drawText(frame, face, image.Pt(b.Min.X+10, b.Min.Y+16), mode.Color(),
		fmt.Sprintf("Mode: %s", mode.Code()))
	drawText(frame, face, image.Pt(b.Min.X+10, b.Min.Y+32), hudZoom,
		fmt.Sprintf("Zoom: %.2fx", sess.Viewport().Zoom()))

	if st.Total > 0 {
		drawText(frame, face, image.Pt(b.Min.X+130, b.Min.Y+16), hudText,
			fmt.Sprintf("Image: %d/%d  %s", st.Index+1, st.Total, truncate(st.Filename, maxNameChars(b.Dx()))))
	}
	drawText(frame, face, image.Pt(b.Min.X+130, b.Min.Y+32), hudText,
		fmt.Sprintf("Objects: %d", sess.Store().Len()))

	status, col := "NO EDITS", color.NRGBA{100, 100, 100, 255}
	if st.Saved {
		status, col = "SAVED", savedCol
	} else if st.Edited {
		status, col = "EDITED", editHint
	}
	drawText(frame, face, image.Pt(b.Max.X-80, b.Min.Y+16), col, status)

	hint := "Wheel:Zoom R-Drag:Pan A/D:Nav S:Save U:Undo C:Clear T:Labels H:HUD R:Reset Q:Quit"
	drawText(frame, face, image.Pt(b.Min.X+10, b.Max.Y-8), hudText, hint)
}

func maxNameChars(width int) int {
	n := width / 20
	if n < 20 {
		n = 20
	}
	return n
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 3 {
		return string(rs[:max])
	}
	return string(rs[:max-3]) + "..."
}
