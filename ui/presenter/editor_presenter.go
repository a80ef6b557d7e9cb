package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/circlemark/domain/session"
	"github.com/soocke/circlemark/editor"
)

// EditorUI abstracts the view operations the presenter needs, enabling
// decoupling from the concrete Tk view.
type EditorUI interface {
	ShowFrame(img image.Image)
	SetTitle(title string)
	PromptLabel(initial string, onDone func(text string, ok bool))
	Quit()
}

// EditorPresenter translates raw view input into editor operations and
// pushes rendered frames back. It implements the view's InputSink.
type EditorPresenter struct {
	logger *slog.Logger
	ed     *editor.Editor
	ui     EditorUI
}

func NewEditorPresenter(ed *editor.Editor, ui EditorUI, logger *slog.Logger) *EditorPresenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EditorPresenter{logger: logger, ed: ed, ui: ui}
}

// Attach pushes the initial frame and title.
func (p *EditorPresenter) Attach() {
	p.refresh()
}

func (p *EditorPresenter) PointerDown(button, x, y int) {
	p.handle(session.PointerDown{Button: tkButton(button), X: x, Y: y})
}

func (p *EditorPresenter) PointerMove(x, y int) {
	p.handle(session.PointerMove{X: x, Y: y})
}

func (p *EditorPresenter) PointerUp(button, x, y int) {
	p.handle(session.PointerUp{Button: tkButton(button), X: x, Y: y})
}

func (p *EditorPresenter) Scroll(x, y, delta int) {
	if delta == 0 {
		return
	}
	p.handle(session.Scroll{X: x, Y: y, Delta: delta})
}

// Key routes a keysym either into the in-progress label or to the command
// shortcuts.
func (p *EditorPresenter) Key(keysym string) {
	if p.ed.Session().State() == session.StateLabelInput {
		p.labelKey(keysym)
		return
	}
	p.command(keysym)
}

func (p *EditorPresenter) CloseRequested() {
	if err := p.ed.Close(time.Now()); err != nil {
		p.logger.Error("close failed", "error", err)
	}
	p.ui.Quit()
}

func (p *EditorPresenter) labelKey(keysym string) {
	ev := session.KeyPress{}
	switch keysym {
	case "Return", "KP_Enter":
		ev.Key = session.KeyEnter
	case "Escape":
		ev.Key = session.KeyEscape
	case "BackSpace":
		ev.Key = session.KeyBackspace
	default:
		r, ok := runeForKeysym(keysym)
		if !ok {
			return
		}
		ev.Rune = r
	}
	p.handle(ev)
}

func (p *EditorPresenter) command(keysym string) {
	// Shift/CapsLock make Tk report "A" instead of "a"; shortcuts are
	// case-insensitive.
	if len([]rune(keysym)) == 1 {
		keysym = strings.ToLower(keysym)
	}
	now := time.Now()
	switch keysym {
	case "a", "Left":
		p.run(p.ed.Prev(now))
	case "d", "Right":
		p.run(p.ed.Next(now))
	case "s":
		p.run(p.ed.Save(false, now))
	case "u":
		p.run(p.ed.Undo())
	case "c":
		p.run(p.ed.Clear())
	case "e":
		p.editLastLabel()
	case "t":
		p.ed.ToggleLabels()
		p.refresh()
	case "h":
		p.ed.ToggleHUD()
		p.refresh()
	case "r":
		p.ed.ResetView()
		p.refresh()
	case "q":
		p.CloseRequested()
	case "1", "2", "3", "4", "5", "6", "7":
		p.run(p.ed.SetMode(int(keysym[0] - '1')))
	}
}

func (p *EditorPresenter) editLastLabel() {
	last, ok := p.ed.Session().Store().Last()
	if !ok {
		p.logger.Info("no region to relabel")
		return
	}
	p.ui.PromptLabel(last.Label, func(text string, ok bool) {
		if !ok {
			return
		}
		p.run(p.ed.EditLastLabel(text))
	})
}

func (p *EditorPresenter) handle(ev session.Event) {
	if p.ed.Handle(ev, time.Now()) {
		p.refresh()
	}
}

// run refreshes after a command; rejected commands are logged, not fatal.
func (p *EditorPresenter) run(err error) {
	if err != nil {
		p.logger.Info("command rejected", "reason", err)
		return
	}
	p.refresh()
}

func (p *EditorPresenter) refresh() {
	p.ui.ShowFrame(p.ed.Frame())
	st := p.ed.Status()
	mark := ""
	if st.Saved {
		mark = " [saved]"
	} else if st.Edited {
		mark = " *"
	}
	p.ui.SetTitle(fmt.Sprintf("Annotate [%d/%d] %s%s", st.Index+1, st.Total, st.Filename, mark))
}

func tkButton(b int) session.Button {
	if b == 3 {
		return session.ButtonSecondary
	}
	return session.ButtonPrimary
}

// namedKeysyms maps the punctuation keysyms Tk reports by name to their
// characters. Single-character keysyms pass through as-is.
var namedKeysyms = map[string]rune{
	"space":        ' ',
	"underscore":   '_',
	"minus":        '-',
	"plus":         '+',
	"equal":        '=',
	"period":       '.',
	"comma":        ',',
	"colon":        ':',
	"semicolon":    ';',
	"apostrophe":   '\'',
	"quotedbl":     '"',
	"slash":        '/',
	"backslash":    '\\',
	"question":     '?',
	"exclam":       '!',
	"at":           '@',
	"numbersign":   '#',
	"dollar":       '$',
	"percent":      '%',
	"ampersand":    '&',
	"asterisk":     '*',
	"parenleft":    '(',
	"parenright":   ')',
	"bracketleft":  '[',
	"bracketright": ']',
}

func runeForKeysym(keysym string) (rune, bool) {
	if r, ok := namedKeysyms[keysym]; ok {
		return r, true
	}
	rs := []rune(keysym)
	if len(rs) == 1 {
		return rs[0], true
	}
	return 0, false
}
