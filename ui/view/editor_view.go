package view

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// InputSink receives raw canvas input from the Tk bindings. Coordinates are
// window-relative pixels; keysym is the Tk key name.
type InputSink interface {
	PointerDown(button, x, y int)
	PointerMove(x, y int)
	PointerUp(button, x, y int)
	Scroll(x, y, delta int)
	Key(keysym string)
	CloseRequested()
}

// EditorView owns the main window: a single image label acting as the
// canvas, with mouse and keyboard bindings forwarded to the sink. Frames
// arrive fully rendered; the view only swaps photo data.
type EditorView struct {
	logger *slog.Logger
	sink   InputSink

	canvas    *LabelWidget
	prevPhoto *Img // last Tk photo, disposed before each swap
	dialog    *ToplevelWidget
}

func NewEditorView(logger *slog.Logger) *EditorView {
	return &EditorView{logger: logger}
}

// Build constructs the window and wires bindings. Must be called before
// ShowFrame.
func (v *EditorView) Build(title string, sink InputSink) {
	v.sink = sink

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", func() {
		if v.sink != nil {
			v.sink.CloseRequested()
		}
	})

	placeholder := image.NewRGBA(image.Rect(0, 0, 320, 200))
	photo := NewPhoto(Data(encodePNG(placeholder)))
	v.prevPhoto = photo
	v.canvas = Label(Image(photo), Borderwidth(0))
	Pack(v.canvas)

	Bind(v.canvas, "<ButtonPress-1>", Command(func(e *Event) {
		v.sink.PointerDown(1, e.X, e.Y)
	}))
	Bind(v.canvas, "<ButtonPress-3>", Command(func(e *Event) {
		v.sink.PointerDown(3, e.X, e.Y)
	}))
	Bind(v.canvas, "<Motion>", Command(func(e *Event) {
		v.sink.PointerMove(e.X, e.Y)
	}))
	Bind(v.canvas, "<ButtonRelease-1>", Command(func(e *Event) {
		v.sink.PointerUp(1, e.X, e.Y)
	}))
	Bind(v.canvas, "<ButtonRelease-3>", Command(func(e *Event) {
		v.sink.PointerUp(3, e.X, e.Y)
	}))
	// Windows/macOS wheel events carry Delta; X11 reports Button-4/5.
	Bind(v.canvas, "<MouseWheel>", Command(func(e *Event) {
		v.sink.Scroll(e.X, e.Y, e.Delta)
	}))
	Bind(v.canvas, "<Button-4>", Command(func(e *Event) {
		v.sink.Scroll(e.X, e.Y, 1)
	}))
	Bind(v.canvas, "<Button-5>", Command(func(e *Event) {
		v.sink.Scroll(e.X, e.Y, -1)
	}))
	Bind(App, "<KeyPress>", Command(func(e *Event) {
		// ignore shortcuts while the label dialog owns the keyboard
		if v.dialog == nil {
			v.sink.Key(e.Keysym)
		}
	}))
}

// ShowFrame swaps the canvas photo for a freshly rendered frame. The old
// photo is deleted first so obsolete pixel buffers are not retained.
func (v *EditorView) ShowFrame(img image.Image) {
	if v.canvas == nil || img == nil {
		return
	}
	data := encodePNG(img)
	if len(data) == 0 {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(data))
	v.prevPhoto = photo
	v.canvas.Configure(Image(photo))
}

// SetTitle updates the window title.
func (v *EditorView) SetTitle(title string) {
	App.WmTitle(title)
}

// PromptLabel opens a small modal dialog pre-filled with initial. onDone
// receives the entered text, or ok=false on cancel. Only one dialog can be
// open at a time.
func (v *EditorView) PromptLabel(initial string, onDone func(text string, ok bool)) {
	if v.dialog != nil {
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Edit label")
	WmAttributes(win.Window, "-topmost", 1)
	v.dialog = win

	field := win.Text(Height(1), Width(40))
	Grid(field, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	field.Delete("1.0", END)
	field.Insert("1.0", initial)

	finish := func(ok bool) {
		text := strings.TrimSpace(strings.Join(field.Get("1.0", END), ""))
		Destroy(win)
		v.dialog = nil
		onDone(text, ok)
	}
	confirm := win.Button(Txt("OK [Enter]"), Command(func() { finish(true) }))
	Grid(confirm, Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(func() { finish(false) }))
	Grid(cancel, Row(1), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(func() { finish(true) }))
	Bind(win, "<Escape>", Command(func() { finish(false) }))
}

// Run enters the Tk event loop and blocks until the window closes.
func (v *EditorView) Run() {
	App.Wait()
}

// Quit tears the application window down, ending Run.
func (v *EditorView) Quit() {
	Destroy(App)
}

// encodePNG encodes an image to PNG bytes. Errors are ignored and may
// return an empty slice.
func encodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
