package scalegesture

import "time"

// Listener receives gesture notifications. Methods are called synchronously
// from ProcessFrame after the detector has finished its own bookkeeping, so
// the detector's query methods are valid inside them.
type Listener interface {
	// OnScaleBegin is called when a gesture is about to start. Returning
	// false rejects it; the detector stays idle.
	OnScaleBegin(d *Detector) bool
	// OnScale is called for every move during a gesture. Returning false
	// marks the event as unconsumed: the previous span is not advanced, so
	// the next ScaleFactor covers both moves.
	OnScale(d *Detector) bool
	// OnScaleEnd is called once when a gesture ends.
	OnScaleEnd(d *Detector)
}

// SimpleListener accepts every gesture and consumes every move. Embed it to
// implement only the methods you need.
type SimpleListener struct{}

func (SimpleListener) OnScaleBegin(*Detector) bool { return true }
func (SimpleListener) OnScale(*Detector) bool      { return true }
func (SimpleListener) OnScaleEnd(*Detector)        {}

// ListenerFuncs adapts plain functions to Listener. Nil fields behave like
// SimpleListener.
type ListenerFuncs struct {
	Begin func(d *Detector) bool
	Scale func(d *Detector) bool
	End   func(d *Detector)
}

func (l ListenerFuncs) OnScaleBegin(d *Detector) bool {
	if l.Begin == nil {
		return true
	}
	return l.Begin(d)
}

func (l ListenerFuncs) OnScale(d *Detector) bool {
	if l.Scale == nil {
		return true
	}
	return l.Scale(d)
}

func (l ListenerFuncs) OnScaleEnd(d *Detector) {
	if l.End != nil {
		l.End(d)
	}
}

// EventStore is the interface for optional ECS integration. When set on a
// Detector, every delivered notification is forwarded as a ScaleEvent.
type EventStore interface {
	EmitEvent(event ScaleEvent)
}

// ScaleEvent is a snapshot of the detector taken when a notification was
// delivered.
type ScaleEvent struct {
	Type           EventType
	FocusX, FocusY float64
	Span           float64
	PreviousSpan   float64
	ScaleFactor    float64
	TimeDelta      time.Duration
	EventTime      time.Duration
	// Accepted is the listener's answer for begin and scale events.
	Accepted  bool
	DragScale bool
}
