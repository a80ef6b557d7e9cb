package presenter

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/soocke/circlemark/config"
	"github.com/soocke/circlemark/domain/annotation"
	"github.com/soocke/circlemark/domain/session"
	"github.com/soocke/circlemark/editor"
	"github.com/soocke/circlemark/imageio"
)

type fakeUI struct {
	frames  int
	title   string
	prompts []string
	onDone  func(text string, ok bool)
	quit    bool
}

func (f *fakeUI) ShowFrame(img image.Image) { f.frames++ }
func (f *fakeUI) SetTitle(title string)     { f.title = title }
func (f *fakeUI) Quit()                     { f.quit = true }
func (f *fakeUI) PromptLabel(initial string, onDone func(string, bool)) {
	f.prompts = append(f.prompts, initial)
	f.onDone = onDone
}

func newTestPresenter(t *testing.T) (*EditorPresenter, *fakeUI, *editor.Editor) {
	t.Helper()
	return newTestPresenterN(t, 1)
}

func newTestPresenterN(t *testing.T, images int) (*EditorPresenter, *fakeUI, *editor.Editor) {
	t.Helper()
	in := t.TempDir()
	for i := 0; i < images; i++ {
		img := imaging.New(300, 200, color.NRGBA{90, 90, 90, 255})
		name := string(rune('a'+i)) + ".png"
		if err := imageio.Save(img, filepath.Join(in, name)); err != nil {
			t.Fatalf("write test image: %v", err)
		}
	}
	files, err := imageio.ListImages(in)
	if err != nil {
		t.Fatalf("list images: %v", err)
	}
	ed, err := editor.New(config.DefaultConfig(), nil, files, t.TempDir())
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}
	ui := &fakeUI{}
	p := NewEditorPresenter(ed, ui, nil)
	p.Attach()
	return p, ui, ed
}

func draw(p *EditorPresenter) {
	p.PointerDown(1, 100, 100)
	p.PointerMove(140, 100)
	p.PointerUp(1, 140, 100)
}

func TestDrawAndTypeLabel(t *testing.T) {
	p, ui, ed := newTestPresenter(t)

	draw(p)
	if got := ed.Session().State(); got != session.StateLabelInput {
		t.Fatalf("state after drag = %v", got)
	}

	// keysyms route into the label while typing, including named ones
	for _, k := range []string{"c", "a", "t", "space", "numbersign", "1"} {
		p.Key(k)
	}
	p.Key("BackSpace")
	p.Key("Return")

	if got := ed.Session().State(); got != session.StateIdle {
		t.Fatalf("state after commit = %v", got)
	}
	last, ok := ed.Session().Store().Last()
	if !ok || last.Label != "cat #" {
		t.Fatalf("committed label = %q", last.Label)
	}
	if ui.frames == 0 {
		t.Fatal("no frames pushed")
	}
}

func TestCommandKeysOutsideLabelInput(t *testing.T) {
	p, _, ed := newTestPresenter(t)

	p.Key("2")
	if got := ed.Session().Mode(); got != annotation.ModeBlur {
		t.Fatalf("mode after '2' = %v", got)
	}

	draw(p)
	p.Key("Return")
	p.Key("u")
	if got := ed.Session().Store().Len(); got != 0 {
		t.Fatalf("store len after undo = %d", got)
	}

	// 't' must act as a command here, not type into a label
	p.Key("t")
	if got := ed.Session().State(); got != session.StateIdle {
		t.Fatalf("state after 't' = %v", got)
	}
}

func TestEditLastLabelViaPrompt(t *testing.T) {
	p, ui, ed := newTestPresenter(t)

	p.Key("e")
	if len(ui.prompts) != 0 {
		t.Fatal("prompt opened with empty store")
	}

	draw(p)
	for _, k := range []string{"o", "l", "d"} {
		p.Key(k)
	}
	p.Key("Return")

	p.Key("e")
	if len(ui.prompts) != 1 || ui.prompts[0] != "old" {
		t.Fatalf("prompt initial = %v", ui.prompts)
	}
	ui.onDone("new", true)
	last, _ := ed.Session().Store().Last()
	if last.Label != "new" {
		t.Fatalf("label after edit = %q", last.Label)
	}

	p.Key("e")
	ui.onDone("ignored", false)
	last, _ = ed.Session().Store().Last()
	if last.Label != "new" {
		t.Fatalf("cancelled edit changed label to %q", last.Label)
	}
}

func TestQuitClosesEditor(t *testing.T) {
	p, ui, _ := newTestPresenter(t)

	p.Key("q")
	if !ui.quit {
		t.Fatal("quit not requested")
	}
}

func TestScrollZerosIgnored(t *testing.T) {
	p, _, ed := newTestPresenter(t)

	p.Scroll(100, 100, 0)
	if got := ed.Session().Viewport().Zoom(); got != 1.0 {
		t.Fatalf("zoom changed on zero delta: %v", got)
	}
	p.Scroll(100, 100, 120)
	if got := ed.Session().Viewport().Zoom(); got <= 1.0 {
		t.Fatalf("zoom did not increase: %v", got)
	}
}

func TestLabelAndHUDToggleKeys(t *testing.T) {
	p, _, ed := newTestPresenter(t)

	// 't' turns labels off, so the next toggle turns them back on
	p.Key("t")
	if on := ed.ToggleLabels(); !on {
		t.Fatal("'t' did not toggle labels")
	}
	p.Key("h")
	if on := ed.ToggleHUD(); !on {
		t.Fatal("'h' did not toggle the HUD")
	}
}

func TestUppercaseCommandKeys(t *testing.T) {
	p, _, ed := newTestPresenterN(t, 2)

	p.Key("D")
	if got := ed.Status().Filename; got != "b.png" {
		t.Fatalf("'D' did not navigate forward, on %q", got)
	}
	p.Key("A")
	if got := ed.Status().Filename; got != "a.png" {
		t.Fatalf("'A' did not navigate back, on %q", got)
	}

	draw(p)
	p.Key("Return")
	p.Key("U")
	if got := ed.Session().Store().Len(); got != 0 {
		t.Fatalf("'U' did not undo, store len = %d", got)
	}
}

func TestRuneForKeysym(t *testing.T) {
	cases := []struct {
		keysym string
		want   rune
		ok     bool
	}{
		{"a", 'a', true},
		{"Z", 'Z', true},
		{"space", ' ', true},
		{"underscore", '_', true},
		{"F1", 0, false},
		{"Shift_L", 0, false},
	}
	for _, c := range cases {
		got, ok := runeForKeysym(c.keysym)
		if ok != c.ok || got != c.want {
			t.Fatalf("runeForKeysym(%q) = %q, %v", c.keysym, got, ok)
		}
	}
}
