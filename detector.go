package scalegesture

import (
	"log/slog"
	"math"
	"time"
)

// Detector recognises pinch/zoom gestures in a stream of Frames.
//
// A Detector is meant to live as long as its input surface and is soft-reset
// at every ActionDown. It is not safe for concurrent use; frames must be
// delivered in arrival order from a single goroutine.
type Detector struct {
	cfg      Config
	listener Listener
	store    EventStore
	log      *slog.Logger

	resampler resampler

	curr        Measurement // focus and span of the latest frame
	prev        Measurement // span baseline for ScaleFactor; focus unused
	initialSpan float64
	currTime    time.Duration
	prevTime    time.Duration
	inProgress  bool

	dragEnabled bool
	dragActive  bool
	pin         anchor
	aboveAnchor bool
}

// New creates a Detector. A nil listener accepts every gesture.
func New(cfg Config, l Listener) *Detector {
	if l == nil {
		l = SimpleListener{}
	}
	d := &Detector{
		cfg:         cfg.normalized(),
		listener:    l,
		log:         Logger(),
		dragEnabled: cfg.DragScaleEnabled,
	}
	d.resampler = newResampler(&d.cfg.Tuning, d.cfg.DisplayXDPI, d.log)
	return d
}

// SetEventStore sets the optional ECS bridge.
func (d *Detector) SetEventStore(store EventStore) {
	d.store = store
}

// SetTrace installs a hook that receives every resampled grid point and
// every filter restart. Pass nil to remove it.
func (d *Detector) SetTrace(fn func(GridSample)) {
	d.resampler.trace = fn
}

// SetDragScaleEnabled toggles whether BeginDragScale has any effect. An
// active drag-to-scale gesture is not affected.
func (d *Detector) SetDragScaleEnabled(enabled bool) {
	d.dragEnabled = enabled
}

// DragScaleEnabled reports whether BeginDragScale is honoured.
func (d *Detector) DragScaleEnabled() bool {
	return d.dragEnabled
}

// BeginDragScale enters drag-to-scale mode, pinning the focus at (x, y).
// It is meant to be called by a double-tap recogniser on the second tap.
// The mode ends with the stream. Returns false if drag-to-scale is disabled.
func (d *Detector) BeginDragScale(x, y float64) bool {
	if !d.dragEnabled {
		return false
	}
	d.dragActive = true
	d.pin = anchor{x: x, y: y}
	d.log.Debug("scalegesture: drag-to-scale armed", "x", x, "y", y)
	return true
}

// ProcessFrame feeds one frame to the detector and dispatches any resulting
// notifications. It returns false for frames that were ignored as malformed.
func (d *Detector) ProcessFrame(f Frame) bool {
	if !measurable(f) {
		return false
	}
	d.currTime = f.Time

	streamEnd := f.Action == ActionUp || f.Action == ActionCancel
	if f.Action == ActionDown || streamEnd {
		// A Down while in progress means the source dropped the end of the
		// previous stream.
		if d.inProgress {
			d.initialSpan = 0
			d.dragActive = false
			d.end()
		} else if d.dragActive && streamEnd {
			d.initialSpan = 0
			d.dragActive = false
		}
		if streamEnd {
			return true
		}
	}

	configChanged := f.Action == ActionDown ||
		f.Action == ActionPointerDown ||
		f.Action == ActionPointerUp

	var m Measurement
	switch {
	case configChanged:
		skip := -1
		if f.Action == ActionPointerUp {
			skip = f.ActionIndex
		}
		var ok bool
		m, ok = d.measure(f.Pointers, skip)
		if !ok {
			return false
		}
		m = d.resampler.restart(m, f.Time)
	case f.Action == ActionMove:
		var ok bool
		m, ok = d.filterMove(f)
		if !ok {
			return false
		}
	default:
		return false
	}

	if d.dragActive {
		m.FocusX, m.FocusY = d.pin.x, d.pin.y
		m.VerticalOnly = true
		d.aboveAnchor = f.Pointers[0].Y < d.pin.y
	} else {
		m.VerticalOnly = false
	}
	span := m.Span()

	wasInProgress := d.inProgress
	d.curr.FocusX, d.curr.FocusY = m.FocusX, m.FocusY
	if !d.dragActive && d.inProgress && (span < float64(d.cfg.MinSpan) || configChanged) {
		d.initialSpan = span
		d.end()
	}
	if configChanged {
		d.setSpan(&d.curr, m)
		d.setSpan(&d.prev, m)
		d.initialSpan = span
		// Two fingers landing together have no earlier span to move from.
		if f.Action == ActionDown && len(f.Pointers) >= 2 && !d.dragActive {
			d.initialSpan = 0
		}
	}

	minSpan := float64(d.cfg.MinSpan)
	if d.dragActive {
		minSpan = float64(d.cfg.SpanSlop)
	}
	if !d.inProgress && span >= minSpan &&
		(wasInProgress || math.Abs(span-d.initialSpan) > float64(d.cfg.SpanSlop)) {
		d.setSpan(&d.curr, m)
		d.setSpan(&d.prev, m)
		d.prevTime = d.currTime
		d.begin(span)
	}

	if f.Action == ActionMove {
		d.setSpan(&d.curr, m)
		accepted := true
		if d.inProgress {
			accepted = d.listener.OnScale(d)
			d.emit(EventScale, accepted)
			if !accepted {
				d.log.Debug("scalegesture: scale not consumed", "span", span)
			}
		}
		if accepted {
			d.setSpan(&d.prev, m)
			d.prevTime = d.currTime
		}
	}
	return true
}

// measurable reports whether f leaves at least one pointer to measure.
// Stream ends carry no measurement and are always accepted.
func measurable(f Frame) bool {
	n := len(f.Pointers)
	switch f.Action {
	case ActionUp, ActionCancel:
		return true
	case ActionDown, ActionPointerDown, ActionMove:
		return n > 0
	case ActionPointerUp:
		if f.ActionIndex >= 0 && f.ActionIndex < n {
			n--
		}
		return n > 0
	default:
		return false
	}
}

// filterMove runs the historical sub-frames and the live sample of a move
// through the resampler. When no grid step elapsed it falls back to the
// unfiltered live measurement.
func (d *Detector) filterMove(f Frame) (Measurement, bool) {
	raw, ok := d.measure(f.Pointers, -1)
	if !ok {
		return Measurement{}, false
	}

	var filtered Measurement
	haveFiltered := false
	oldest := f.Time - d.cfg.Tuning.MaxInterval
	for _, h := range f.History {
		if h.Time >= f.Time || h.Time <= oldest || len(h.Pointers) != len(f.Pointers) {
			continue
		}
		hm, ok := d.measure(h.Pointers, -1)
		if !ok {
			continue
		}
		if out, ok := d.resampler.advance(hm, h.Time); ok {
			filtered, haveFiltered = out, true
		}
	}
	if out, ok := d.resampler.advance(raw, f.Time); ok {
		filtered, haveFiltered = out, true
	}
	if haveFiltered {
		return filtered, true
	}
	return raw, true
}

func (d *Detector) measure(pointers []Pointer, skip int) (Measurement, bool) {
	var pin *anchor
	if d.dragActive {
		pin = &d.pin
	}
	return measure(pointers, skip, float64(d.cfg.TouchMinMajor), pin)
}

func (d *Detector) setSpan(dst *Measurement, src Measurement) {
	dst.SpanX, dst.SpanY = src.SpanX, src.SpanY
	dst.VerticalOnly = src.VerticalOnly
}

func (d *Detector) begin(span float64) {
	accepted := d.listener.OnScaleBegin(d)
	d.inProgress = accepted
	if !accepted {
		// Let a later frame retry once the span has moved by the slop again.
		d.initialSpan = span
		d.log.Debug("scalegesture: begin rejected", "span", span)
	} else {
		d.log.Debug("scalegesture: begin", "span", span,
			"focus_x", d.curr.FocusX, "focus_y", d.curr.FocusY, "drag_scale", d.dragActive)
	}
	d.emit(EventScaleBegin, accepted)
}

// end clears the in-progress flag and then notifies the listener.
func (d *Detector) end() {
	d.inProgress = false
	d.log.Debug("scalegesture: end", "span", d.curr.Span(), "time", d.currTime)
	d.listener.OnScaleEnd(d)
	d.emit(EventScaleEnd, true)
}

func (d *Detector) emit(t EventType, accepted bool) {
	if d.store == nil {
		return
	}
	d.store.EmitEvent(ScaleEvent{
		Type:         t,
		FocusX:       d.curr.FocusX,
		FocusY:       d.curr.FocusY,
		Span:         d.CurrentSpan(),
		PreviousSpan: d.PreviousSpan(),
		ScaleFactor:  d.ScaleFactor(),
		TimeDelta:    d.TimeDelta(),
		EventTime:    d.currTime,
		Accepted:     accepted,
		DragScale:    d.dragActive,
	})
}

// InProgress reports whether a gesture is in progress.
func (d *Detector) InProgress() bool { return d.inProgress }

// DragScaleActive reports whether drag-to-scale mode is active.
func (d *Detector) DragScaleActive() bool { return d.dragActive }

// FocusX returns the X coordinate of the gesture's focal point. In
// drag-to-scale mode this is the anchor passed to BeginDragScale.
func (d *Detector) FocusX() float64 { return d.curr.FocusX }

// FocusY returns the Y coordinate of the gesture's focal point.
func (d *Detector) FocusY() float64 { return d.curr.FocusY }

// CurrentSpan returns the average distance between the pointers forming the
// gesture, through the focal point.
func (d *Detector) CurrentSpan() float64 { return d.curr.Span() }

// CurrentSpanX returns the horizontal component of CurrentSpan.
func (d *Detector) CurrentSpanX() float64 { return d.curr.SpanX }

// CurrentSpanY returns the vertical component of CurrentSpan.
func (d *Detector) CurrentSpanY() float64 { return d.curr.SpanY }

// PreviousSpan returns the span at the last consumed event.
func (d *Detector) PreviousSpan() float64 { return d.prev.Span() }

// PreviousSpanX returns the horizontal component of PreviousSpan.
func (d *Detector) PreviousSpanX() float64 { return d.prev.SpanX }

// PreviousSpanY returns the vertical component of PreviousSpan.
func (d *Detector) PreviousSpanY() float64 { return d.prev.SpanY }

// ScaleFactor returns the scale change from the previous consumed event to
// the current one. In drag-to-scale mode, dragging away from the anchor
// upwards zooms out and downwards zooms in, damped by DragScaleFactor.
func (d *Detector) ScaleFactor() float64 {
	curr, prev := d.curr.Span(), d.prev.Span()
	if prev <= 0 {
		return 1
	}
	if d.dragActive {
		scaleUp := (d.aboveAnchor && curr < prev) || (!d.aboveAnchor && curr > prev)
		diff := math.Abs(1-curr/prev) * d.cfg.Tuning.DragScaleFactor
		if scaleUp {
			return 1 + diff
		}
		return 1 - diff
	}
	return curr / prev
}

// TimeDelta returns the time between the previous consumed event and the
// current one.
func (d *Detector) TimeDelta() time.Duration { return d.currTime - d.prevTime }

// EventTime returns the time of the frame being processed.
func (d *Detector) EventTime() time.Duration { return d.currTime }
