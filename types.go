package scalegesture

import (
	"math"
	"time"
)

// Action classifies a Frame.
type Action uint8

const (
	ActionDown        Action = iota // first pointer touched down; starts a stream
	ActionPointerDown               // an additional pointer touched down
	ActionMove                      // one or more pointers moved
	ActionPointerUp                 // a pointer lifted while others remain
	ActionUp                        // the last pointer lifted; ends the stream
	ActionCancel                    // the stream was aborted
)

var actionNames = [...]string{
	ActionDown:        "down",
	ActionPointerDown: "pointer_down",
	ActionMove:        "move",
	ActionPointerUp:   "pointer_up",
	ActionUp:          "up",
	ActionCancel:      "cancel",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Pointer is one active contact.
type Pointer struct {
	ID   int
	X, Y float64
}

// Sample is a historical sub-frame delivered in the same batch as a Frame.
// Its Pointers are parallel to the owning Frame's Pointers.
type Sample struct {
	Time     time.Duration
	Pointers []Pointer
}

// Frame is one delivery from the touch source. Time is a monotonic event
// time; only differences between frames of the same stream matter.
type Frame struct {
	Action Action
	// ActionIndex is the index into Pointers of the pointer going down or up.
	// Ignored for other actions.
	ActionIndex int
	Time        time.Duration
	Pointers    []Pointer
	History     []Sample
}

// Measurement is the focus and span derived from one frame.
type Measurement struct {
	FocusX, FocusY float64
	SpanX, SpanY   float64
	// VerticalOnly makes Span report SpanY alone (drag-to-scale).
	VerticalOnly bool
}

// Span returns the scalar span: the vertical span in drag-to-scale mode,
// the hypotenuse of both axis spans otherwise.
func (m Measurement) Span() float64 {
	if m.VerticalOnly {
		return m.SpanY
	}
	return math.Hypot(m.SpanX, m.SpanY)
}

// lerp moves m toward o by weight w. VerticalOnly is kept from m.
func (m Measurement) lerp(o Measurement, w float64) Measurement {
	m.SpanX += (o.SpanX - m.SpanX) * w
	m.SpanY += (o.SpanY - m.SpanY) * w
	m.FocusX += (o.FocusX - m.FocusX) * w
	m.FocusY += (o.FocusY - m.FocusY) * w
	return m
}

// GridSample is reported to a trace hook for every resampling step.
type GridSample struct {
	Time     time.Duration
	Raw      Measurement // interpolated input fed to the filters
	Filtered Measurement
	Restart  bool // filters were reset at Time instead of stepped
}

// EventType identifies a gesture lifecycle notification.
type EventType uint8

const (
	EventScaleBegin EventType = iota // listener accepted a new gesture
	EventScale                       // span or focus changed during a gesture
	EventScaleEnd                    // the gesture finished or was cancelled
)

func (e EventType) String() string {
	switch e {
	case EventScaleBegin:
		return "begin"
	case EventScale:
		return "scale"
	case EventScaleEnd:
		return "end"
	default:
		return "unknown"
	}
}
