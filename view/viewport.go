// Package view provides a zoomable viewport driven by scale gestures.
package view

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/scalegesture"
)

// settleAnim eases the zoom back inside the limits after a gesture ends,
// keeping the screen point (fx, fy) fixed.
type settleAnim struct {
	tween  *gween.Tween
	target float64
	fx, fy float64
}

// Viewport maps world coordinates to a screen of Width x Height pixels.
// It implements scalegesture.Listener: attach it to a Detector and the view
// zooms around the gesture focus, so the world point under the fingers
// stays under the fingers.
type Viewport struct {
	// X and Y are the world-space position shown at the screen centre.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// MinZoom and MaxZoom bound Zoom once a gesture has settled.
	MinZoom, MaxZoom float64
	// Overscroll lets Zoom exceed the limits by this factor during a
	// gesture. 1 disables overscroll.
	Overscroll float64
	// Width and Height are the screen size in pixels.
	Width, Height float64

	// SettleDuration is the time in seconds to ease back inside the limits.
	SettleDuration float32
	// Ease is the settle easing curve.
	Ease ease.TweenFunc

	settle *settleAnim
	lastFx float64
	lastFy float64
}

var _ scalegesture.Listener = (*Viewport)(nil)

// New creates a Viewport with default limits centred on the world origin.
func New(width, height float64) *Viewport {
	return &Viewport{
		Zoom:           1,
		MinZoom:        0.5,
		MaxZoom:        4,
		Overscroll:     1.25,
		Width:          width,
		Height:         height,
		SettleDuration: 0.25,
		Ease:           ease.OutCubic,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = v.Width/2 + (wx-v.X)*v.Zoom
	sy = v.Height/2 + (wy-v.Y)*v.Zoom
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = v.X + (sx-v.Width/2)/v.Zoom
	wy = v.Y + (sy-v.Height/2)/v.Zoom
	return
}

// VisibleBounds returns the world-space rectangle currently on screen as
// x, y, width, height.
func (v *Viewport) VisibleBounds() (x, y, w, h float64) {
	w = v.Width / v.Zoom
	h = v.Height / v.Zoom
	return v.X - w/2, v.Y - h/2, w, h
}

// ZoomAt multiplies Zoom by factor around the screen point (sx, sy). The
// result is clamped to the overscroll-extended limits.
func (v *Viewport) ZoomAt(factor, sx, sy float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	over := v.Overscroll
	if over < 1 {
		over = 1
	}
	z := clamp(v.Zoom*factor, v.MinZoom/over, v.MaxZoom*over)
	v.setZoomAt(z, sx, sy)
}

// setZoomAt sets Zoom to z keeping the world point under (sx, sy) fixed.
func (v *Viewport) setZoomAt(z, sx, sy float64) {
	wx, wy := v.ScreenToWorld(sx, sy)
	v.Zoom = z
	v.X = wx - (sx-v.Width/2)/z
	v.Y = wy - (sy-v.Height/2)/z
}

// Settling reports whether a settle animation is running.
func (v *Viewport) Settling() bool {
	return v.settle != nil
}

// Update advances the settle animation by dt seconds. Call it once per
// frame.
func (v *Viewport) Update(dt float32) {
	if v.settle == nil {
		return
	}
	val, done := v.settle.tween.Update(dt)
	if done {
		v.setZoomAt(v.settle.target, v.settle.fx, v.settle.fy)
		v.settle = nil
		return
	}
	v.setZoomAt(float64(val), v.settle.fx, v.settle.fy)
}

// OnScaleBegin stops any settle animation and accepts the gesture.
func (v *Viewport) OnScaleBegin(d *scalegesture.Detector) bool {
	v.settle = nil
	v.lastFx, v.lastFy = d.FocusX(), d.FocusY()
	return true
}

// OnScale applies the gesture's scale factor around its focus.
func (v *Viewport) OnScale(d *scalegesture.Detector) bool {
	v.lastFx, v.lastFy = d.FocusX(), d.FocusY()
	v.ZoomAt(d.ScaleFactor(), v.lastFx, v.lastFy)
	return true
}

// OnScaleEnd starts easing Zoom back inside [MinZoom, MaxZoom] around the
// last focus.
func (v *Viewport) OnScaleEnd(*scalegesture.Detector) {
	target := clamp(v.Zoom, v.MinZoom, v.MaxZoom)
	if target == v.Zoom {
		return
	}
	if v.SettleDuration <= 0 {
		v.setZoomAt(target, v.lastFx, v.lastFy)
		return
	}
	easeFn := v.Ease
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.settle = &settleAnim{
		tween:  gween.New(float32(v.Zoom), float32(target), v.SettleDuration, easeFn),
		target: target,
		fx:     v.lastFx,
		fy:     v.lastFy,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
