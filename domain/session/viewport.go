package session

import "time"

// Viewport maps screen pixels to working-image pixels under the current
// zoom and pan. It is owned by the session's state machine and reset when a
// new image is loaded.
type Viewport struct {
	zoom       float64
	panX, panY int

	minZoom, maxZoom float64
	debounce         time.Duration
	lastZoom         time.Time
}

// NewViewport returns a viewport at zoom 1.0 with no pan. Zoom changes are
// clamped to [minZoom, maxZoom] and rate-limited by debounce.
func NewViewport(minZoom, maxZoom float64, debounce time.Duration) *Viewport {
	if minZoom <= 0 {
		minZoom = 0.5
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	return &Viewport{zoom: 1.0, minZoom: minZoom, maxZoom: maxZoom, debounce: debounce}
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the current pan offset in screen pixels.
func (v *Viewport) Pan() (int, int) { return v.panX, v.panY }

// SetPan replaces the pan offset. Used by the pan gesture, which works in
// raw screen deltas and never converts coordinate spaces.
func (v *Viewport) SetPan(x, y int) { v.panX, v.panY = x, y }

// Reset restores zoom 1.0 and zero pan.
func (v *Viewport) Reset() {
	v.zoom = 1.0
	v.panX, v.panY = 0, 0
	v.lastZoom = time.Time{}
}

// ScreenToImage converts a screen point to working-image coordinates,
// truncating toward zero.
func (v *Viewport) ScreenToImage(sx, sy int) (int, int) {
	return int(float64(sx-v.panX) / v.zoom), int(float64(sy-v.panY) / v.zoom)
}

// ImageToScreen converts a working-image point to screen coordinates.
func (v *Viewport) ImageToScreen(ix, iy int) (int, int) {
	return int(float64(ix)*v.zoom) + v.panX, int(float64(iy)*v.zoom) + v.panY
}

// ZoomAt multiplies the zoom by factor, anchored at screen point (sx, sy):
// the image point under the cursor before the change maps back to the same
// screen point afterwards. Events arriving inside the debounce window are
// dropped, not queued. Returns whether the zoom was applied.
func (v *Viewport) ZoomAt(sx, sy int, factor float64, now time.Time) bool {
	if !v.lastZoom.IsZero() && now.Sub(v.lastZoom) < v.debounce {
		return false
	}
	v.lastZoom = now

	next := v.zoom * factor
	if next < v.minZoom {
		next = v.minZoom
	}
	if next > v.maxZoom {
		next = v.maxZoom
	}

	// Anchor: resolve the image point before touching the zoom.
	ix, iy := v.ScreenToImage(sx, sy)
	v.zoom = next
	v.panX = sx - int(float64(ix)*v.zoom)
	v.panY = sy - int(float64(iy)*v.zoom)
	return true
}
