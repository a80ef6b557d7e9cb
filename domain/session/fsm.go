package session

import (
	"errors"
	"image"
	"log/slog"
	"math"
	"time"
	"unicode"

	"github.com/soocke/circlemark/domain/annotation"
)

// State enumerates the interaction states of the annotation canvas.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateLabelInput
	StatePanning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateLabelInput:
		return "label-input"
	case StatePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// ErrGestureActive is returned when a command or navigation is attempted
// while a drag or label entry is in progress.
var ErrGestureActive = errors.New("finish the current gesture first")

const (
	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// Session is one image's editing session: the region store and viewport it
// owns, the current effect mode, and the transient gesture data that is
// discarded atomically on state transitions. It consumes one event at a
// time and reports whether a redraw is needed.
type Session struct {
	logger *slog.Logger
	store  *annotation.Store
	view   *Viewport
	mode   annotation.Mode

	state State

	// transient gesture data
	dragCenter image.Point
	dragRadius int
	label      []rune
	panOriginX int
	panOriginY int

	listeners []StateListener
}

// NewSession returns an idle session over the given store and viewport.
func NewSession(store *annotation.Store, view *Viewport, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{logger: logger, store: store, view: view}
}

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// Store returns the session's region store.
func (s *Session) Store() *annotation.Store { return s.store }

// Viewport returns the session's viewport.
func (s *Session) Viewport() *Viewport { return s.view }

// Mode returns the effect mode applied to the next committed region.
func (s *Session) Mode() annotation.Mode { return s.mode }

// AddListener registers a callback invoked on every state transition.
func (s *Session) AddListener(l StateListener) {
	s.listeners = append(s.listeners, l)
}

// Gesture reports the in-progress circle while drawing or entering a label.
func (s *Session) Gesture() (center image.Point, radius int, ok bool) {
	if s.state != StateDrawing && s.state != StateLabelInput {
		return image.Point{}, 0, false
	}
	return s.dragCenter, s.dragRadius, true
}

// LabelDraft reports the label text typed so far during label input.
func (s *Session) LabelDraft() (string, bool) {
	if s.state != StateLabelInput {
		return "", false
	}
	return string(s.label), true
}

// Handle consumes one input event and returns whether the frame must be
// redrawn. now is the event's wall-clock time, used only for the zoom
// debounce.
func (s *Session) Handle(ev Event, now time.Time) bool {
	switch e := ev.(type) {
	case Scroll:
		factor := zoomInFactor
		if e.Delta < 0 {
			factor = zoomOutFactor
		}
		return s.view.ZoomAt(e.X, e.Y, factor, now)
	case PointerDown:
		return s.pointerDown(e)
	case PointerMove:
		return s.pointerMove(e)
	case PointerUp:
		return s.pointerUp(e)
	case KeyPress:
		return s.keyPress(e)
	}
	return false
}

func (s *Session) pointerDown(e PointerDown) bool {
	if s.state != StateIdle {
		return false
	}
	switch e.Button {
	case ButtonPrimary:
		ix, iy := s.view.ScreenToImage(e.X, e.Y)
		s.dragCenter = image.Pt(ix, iy)
		s.dragRadius = 0
		s.transition(StateDrawing)
		return true
	case ButtonSecondary:
		panX, panY := s.view.Pan()
		s.panOriginX = e.X - panX
		s.panOriginY = e.Y - panY
		s.transition(StatePanning)
	}
	return false
}

func (s *Session) pointerMove(e PointerMove) bool {
	switch s.state {
	case StateDrawing:
		ix, iy := s.view.ScreenToImage(e.X, e.Y)
		dx := float64(ix - s.dragCenter.X)
		dy := float64(iy - s.dragCenter.Y)
		s.dragRadius = int(math.Sqrt(dx*dx + dy*dy))
		return true
	case StatePanning:
		s.view.SetPan(e.X-s.panOriginX, e.Y-s.panOriginY)
		return true
	}
	return false
}

func (s *Session) pointerUp(e PointerUp) bool {
	switch {
	case s.state == StateDrawing && e.Button == ButtonPrimary:
		if s.dragRadius > annotation.MinRadius {
			s.label = s.label[:0]
			s.transition(StateLabelInput)
		} else {
			// sub-threshold gesture, silently discarded
			s.transition(StateIdle)
		}
		return true
	case s.state == StatePanning && e.Button == ButtonSecondary:
		s.transition(StateIdle)
		return false
	}
	return false
}

func (s *Session) keyPress(e KeyPress) bool {
	if s.state != StateLabelInput {
		return false
	}
	switch e.Key {
	case KeyEnter:
		s.commit()
		s.transition(StateIdle)
		return true
	case KeyEscape:
		s.transition(StateIdle)
		return true
	case KeyBackspace:
		if len(s.label) > 0 {
			s.label = s.label[:len(s.label)-1]
		}
		return true
	}
	if e.Rune != 0 && unicode.IsPrint(e.Rune) {
		s.label = append(s.label, e.Rune)
		return true
	}
	return false
}

func (s *Session) commit() {
	r := annotation.Region{
		Center: s.dragCenter,
		Radius: s.dragRadius,
		Mode:   s.mode,
		Label:  string(s.label),
	}
	s.store.Append(r)
	s.logger.Info("region committed",
		"mode", r.Mode.String(), "radius", r.Radius, "label", r.Label, "count", s.store.Len())
}

func (s *Session) transition(next State) {
	if next == s.state {
		return
	}
	prev := s.state
	s.state = next
	if next == StateIdle {
		// drop transient gesture data
		s.dragRadius = 0
		s.label = s.label[:0]
	}
	for _, l := range s.listeners {
		l(prev, next)
	}
}

// SetMode changes the effect mode for future regions. Only accepted while
// idle; the state does not change.
func (s *Session) SetMode(m annotation.Mode) error {
	if s.state != StateIdle {
		return ErrGestureActive
	}
	s.mode = m
	return nil
}

// Undo removes the most recent region. Only accepted while idle. Undo on an
// empty store is a no-op with ok == false.
func (s *Session) Undo() (r annotation.Region, ok bool, err error) {
	if s.state != StateIdle {
		return annotation.Region{}, false, ErrGestureActive
	}
	r, ok = s.store.Undo()
	return r, ok, nil
}

// Clear removes every region. Only accepted while idle.
func (s *Session) Clear() (int, error) {
	if s.state != StateIdle {
		return 0, ErrGestureActive
	}
	return s.store.Clear(), nil
}

// EditLastLabel replaces the label of the most recent region. Only accepted
// while idle; the state does not change.
func (s *Session) EditLastLabel(label string) error {
	if s.state != StateIdle {
		return ErrGestureActive
	}
	if !s.store.SetLastLabel(label) {
		return errors.New("no regions to edit")
	}
	return nil
}

// NavigationAllowed reports whether switching to another image is permitted.
// It is only allowed while idle.
func (s *Session) NavigationAllowed() error {
	if s.state != StateIdle {
		return ErrGestureActive
	}
	return nil
}
