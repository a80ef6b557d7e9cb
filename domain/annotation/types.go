package annotation

import (
	"image"
	"image/color"
	"strings"
)

// MinRadius is the commit threshold in working-image pixels. Drag gestures
// that end at or below it are discarded without creating a region.
const MinRadius = 5

// Mode enumerates the visual effects applicable to a circular region.
type Mode int

const (
	ModeHighlight Mode = iota
	ModeBlur
	ModePixelate
	ModeDarken
	ModeGrayscale
	ModeInvert
	ModeOutline
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeHighlight:
		return "highlight"
	case ModeBlur:
		return "blur"
	case ModePixelate:
		return "pixelate"
	case ModeDarken:
		return "darken"
	case ModeGrayscale:
		return "grayscale"
	case ModeInvert:
		return "invert"
	case ModeOutline:
		return "outline"
	default:
		return "unknown"
	}
}

// Code returns the three-letter uppercase tag shown in label callouts,
// e.g. "BLU" for ModeBlur.
func (m Mode) Code() string {
	return strings.ToUpper(m.String()[:3])
}

// ParseMode maps a serialized mode name to a Mode. Unknown or missing names
// fall back to ModeHighlight so a single bad record never aborts a load.
func ParseMode(s string) Mode {
	for m := ModeHighlight; m < modeCount; m++ {
		if s == m.String() {
			return m
		}
	}
	return ModeHighlight
}

// ModeAt returns the mode at the given 0-based position, for numeric
// mode-switch keys. ok is false when n is out of range.
func ModeAt(n int) (Mode, bool) {
	if n < 0 || n >= int(modeCount) {
		return ModeHighlight, false
	}
	return Mode(n), true
}

// Color returns the outline and callout border color for the mode.
func (m Mode) Color() color.NRGBA {
	switch m {
	case ModeHighlight:
		return color.NRGBA{0, 255, 0, 255}
	case ModeBlur:
		return color.NRGBA{0, 0, 255, 255}
	case ModePixelate:
		return color.NRGBA{255, 0, 0, 255}
	case ModeDarken:
		return color.NRGBA{128, 128, 128, 255}
	case ModeGrayscale:
		return color.NRGBA{200, 200, 200, 255}
	case ModeInvert:
		return color.NRGBA{0, 255, 255, 255}
	case ModeOutline:
		return color.NRGBA{255, 255, 0, 255}
	default:
		return color.NRGBA{255, 255, 255, 255}
	}
}

// Region is one committed circular annotation. Center and Radius are in
// working-image pixels; Center/Radius/Mode are immutable after commit and
// only the label of the most recent region may be edited.
type Region struct {
	Center image.Point
	Radius int
	Mode   Mode
	Label  string
}
