package session

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
)

// Key identifies the non-printable keys the state machine cares about.
// Printable input arrives as KeyPress.Rune with Key == KeyNone.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
)

// Event is one raw input event delivered by the display front-end. The
// state machine consumes events one at a time; there is no queueing or
// concurrency at this layer.
type Event interface{ isEvent() }

// PointerDown is a button press at screen coordinates (X, Y).
type PointerDown struct {
	Button Button
	X, Y   int
}

// PointerMove is a pointer motion to screen coordinates (X, Y).
type PointerMove struct {
	X, Y int
}

// PointerUp is a button release at screen coordinates (X, Y).
type PointerUp struct {
	Button Button
	X, Y   int
}

// Scroll is a wheel event at screen coordinates (X, Y); Delta > 0 zooms in.
type Scroll struct {
	X, Y  int
	Delta int
}

// KeyPress is a keystroke. Rune holds printable input; Key holds the
// recognized control keys.
type KeyPress struct {
	Rune rune
	Key  Key
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Scroll) isEvent()      {}
func (KeyPress) isEvent()    {}
