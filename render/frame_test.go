package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/soocke/circlemark/domain/annotation"
	"github.com/soocke/circlemark/domain/session"
	"github.com/soocke/circlemark/layout"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	eng, err := layout.New()
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	return NewRenderer(eng, nil)
}

func flat(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 40, 80, 120, 255
	}
	return img
}

func newIdleSession() *session.Session {
	return session.NewSession(annotation.NewStore(), session.NewViewport(0.5, 10.0, 0), nil)
}

func TestFrame_EmptySessionIsPassThrough(t *testing.T) {
	r := newTestRenderer(t)
	r.ShowHUD = false
	src := flat(120, 90)
	before := append([]byte(nil), src.Pix...)
	frame := r.Frame(src, newIdleSession(), Status{})
	if !bytes.Equal(frame.Pix, before) {
		t.Fatalf("empty session altered the frame")
	}
	if !bytes.Equal(src.Pix, before) {
		t.Fatalf("Frame mutated the composite")
	}
}

func TestFrame_DrawingGestureVisible(t *testing.T) {
	r := newTestRenderer(t)
	r.ShowHUD = false
	sess := newIdleSession()
	now := time.Now()
	sess.Handle(session.PointerDown{Button: session.ButtonPrimary, X: 60, Y: 45}, now)
	sess.Handle(session.PointerMove{X: 80, Y: 45}, now)

	frame := r.Frame(flat(120, 90), sess, Status{})
	// outline at the top of the in-progress circle
	got := frame.NRGBAAt(60, 45-20)
	if got != sess.Mode().Color() {
		t.Fatalf("gesture circle not drawn: %v", got)
	}
}

func TestFrame_MatchesWorkingSizeUnderZoom(t *testing.T) {
	r := newTestRenderer(t)
	sess := newIdleSession()
	sess.Handle(session.Scroll{X: 10, Y: 10, Delta: 1}, time.Now())

	frame := r.Frame(flat(120, 90), sess, Status{Total: 1, Filename: "a.png"})
	if frame.Bounds().Dx() != 120 || frame.Bounds().Dy() != 90 {
		t.Fatalf("frame size %v, want 120x90", frame.Bounds())
	}
}

func TestFrame_PanRevealsBackground(t *testing.T) {
	r := newTestRenderer(t)
	r.ShowHUD = false
	sess := newIdleSession()
	now := time.Now()
	sess.Handle(session.PointerDown{Button: session.ButtonSecondary, X: 0, Y: 0}, now)
	sess.Handle(session.PointerMove{X: 30, Y: 0}, now)

	frame := r.Frame(flat(120, 90), sess, Status{})
	// the strip uncovered on the left is background black
	if got := frame.NRGBAAt(5, 45); got != (color.NRGBA{0, 0, 0, 0}) {
		t.Fatalf("uncovered strip not empty: %v", got)
	}
	if got := frame.NRGBAAt(40, 45); got != (color.NRGBA{40, 80, 120, 255}) {
		t.Fatalf("panned image content missing: %v", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	name := "アノテーション用の非常に長いファイル名です.png"
	got := truncate(name, 20)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated name is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 20 {
		t.Fatalf("rune count = %d, want 20", n)
	}
	if got := truncate("short.png", 20); got != "short.png" {
		t.Fatalf("short name altered: %q", got)
	}
	if got := truncate("日本語.png", 2); got != "日本" {
		t.Fatalf("tiny budget = %q", got)
	}
}
