package theme

// Centralized theming for the annotation editor chrome. The canvas itself
// is rendered pixel-by-pixel; these styles only cover the surrounding Tk
// widgets (label dialog, buttons, status strip).

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines the semantic colors used across widgets. The editor
// defaults to a dark surround so the image canvas dominates.
const (
	ColorBg        = "#1e1e1e" // window background behind the canvas
	ColorSurface   = "#2b2b2b" // dialogs, bars
	ColorBorder    = "#3c3c3c"
	ColorAccent    = "#4ec9b0" // saved/ok indicators
	ColorWarn      = "#ce9178" // unsaved-changes hints
	ColorText      = "#d4d4d4"
	ColorTextMuted = "#808080"
)

// style names used with Style("dialog.TEntry") etc.
const (
	StyleDialogEntry  = "dialog.TEntry"
	StyleDialogButton = "dialog.TButton"
	StyleStatusLabel  = "status.TLabel"
)

// internal flag for current mode
var lightMode bool

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(lightMode) }

// SetLight toggles the light surround and reapplies styles. Returns the
// new mode value.
func SetLight(light bool) bool {
	lightMode = light
	applyStyles(lightMode)
	return lightMode
}

// IsLight reports the current mode.
func IsLight() bool { return lightMode }

// applyStyles encapsulates palette and style configuration for the
// dark/light surround.
func applyStyles(light bool) {
	if light {
		_ = ActivateTheme("azure light")
		App.Configure(Background("#f0f0f0"))
	} else {
		_ = ActivateTheme("azure dark")
		App.Configure(Background(ColorBg))
	}

	StyleConfigure(StyleDialogEntry,
		Padding("2p 1p"),
		Borderwidth(1),
	)
	StyleConfigure(StyleDialogButton,
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(func() string {
			if light {
				return "#1e293b"
			}
			return ColorText
		}()),
		Background(func() string {
			if light {
				return "#ffffff"
			}
			return ColorSurface
		}()),
		Padding("2p 1p"),
	)
}
