// Package touch turns Ebitengine touch state into scalegesture frames.
//
// Ebitengine reports the set of touches present on each tick rather than
// discrete events. Source diffs consecutive ticks and emits the frames a
// native touch system would have delivered: a move for pointers that moved,
// then an up for each pointer that vanished, then a down for each new one.
package touch

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/scalegesture"
)

// MaxPointers is the number of simultaneous touches tracked. Touches beyond
// it are ignored until a slot frees up.
const MaxPointers = 10

// Contact is one touch as observed on a single tick.
type Contact struct {
	ID   ebiten.TouchID
	X, Y float64
}

type tracked struct {
	id   ebiten.TouchID
	slot int
	x, y float64
}

// Source polls Ebitengine for touches. Call Poll once per Update.
type Source struct {
	// Transform maps screen coordinates to the coordinate space gestures are
	// measured in. Nil leaves screen coordinates unchanged.
	Transform func(x, y float64) (float64, float64)
	// Clock returns the current time. Nil uses time.Now.
	Clock func() time.Time

	start    time.Time
	active   []tracked
	slotUsed [MaxPointers]bool
	ids      []ebiten.TouchID
	contacts []Contact
}

// NewSource creates a Source whose frame times count from now.
func NewSource() *Source {
	return &Source{start: time.Now()}
}

// Poll reads the current touches from Ebitengine and returns the frames
// describing what changed since the previous call.
func (s *Source) Poll() []scalegesture.Frame {
	s.ids = ebiten.AppendTouchIDs(s.ids[:0])
	s.contacts = s.contacts[:0]
	for _, id := range s.ids {
		x, y := ebiten.TouchPosition(id)
		s.contacts = append(s.contacts, Contact{ID: id, X: float64(x), Y: float64(y)})
	}
	return s.Update(s.elapsed(), s.contacts)
}

// Update diffs contacts against the previous tick and returns the frames
// stamped with now.
func (s *Source) Update(now time.Duration, contacts []Contact) []scalegesture.Frame {
	var frames []scalegesture.Frame

	moved := false
	for i := range s.active {
		a := &s.active[i]
		c, ok := findContact(contacts, a.id)
		if !ok {
			continue
		}
		x, y := s.transform(c.X, c.Y)
		if x != a.x || y != a.y {
			a.x, a.y = x, y
			moved = true
		}
	}
	if moved {
		frames = append(frames, s.frame(scalegesture.ActionMove, 0, now))
	}

	for i := 0; i < len(s.active); {
		if _, ok := findContact(contacts, s.active[i].id); ok {
			i++
			continue
		}
		action := scalegesture.ActionPointerUp
		if len(s.active) == 1 {
			action = scalegesture.ActionUp
		}
		frames = append(frames, s.frame(action, i, now))
		s.slotUsed[s.active[i].slot] = false
		s.active = append(s.active[:i], s.active[i+1:]...)
	}

	for _, c := range contacts {
		if s.indexOf(c.ID) >= 0 {
			continue
		}
		slot := s.allocSlot()
		if slot < 0 {
			continue
		}
		x, y := s.transform(c.X, c.Y)
		s.active = append(s.active, tracked{id: c.ID, slot: slot, x: x, y: y})
		action := scalegesture.ActionPointerDown
		if len(s.active) == 1 {
			action = scalegesture.ActionDown
		}
		frames = append(frames, s.frame(action, len(s.active)-1, now))
	}
	return frames
}

// Cancel aborts the current stream, for example when the window loses
// focus. It returns a single ActionCancel frame, or nil if no touch is
// active.
func (s *Source) Cancel() []scalegesture.Frame {
	if len(s.active) == 0 {
		return nil
	}
	f := s.frame(scalegesture.ActionCancel, 0, s.elapsed())
	s.active = s.active[:0]
	s.slotUsed = [MaxPointers]bool{}
	return []scalegesture.Frame{f}
}

// Active reports the number of tracked touches.
func (s *Source) Active() int { return len(s.active) }

func (s *Source) frame(action scalegesture.Action, index int, now time.Duration) scalegesture.Frame {
	pointers := make([]scalegesture.Pointer, len(s.active))
	for i, a := range s.active {
		pointers[i] = scalegesture.Pointer{ID: a.slot, X: a.x, Y: a.y}
	}
	return scalegesture.Frame{
		Action:      action,
		ActionIndex: index,
		Time:        now,
		Pointers:    pointers,
	}
}

func (s *Source) elapsed() time.Duration {
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	return now().Sub(s.start)
}

func (s *Source) transform(x, y float64) (float64, float64) {
	if s.Transform != nil {
		return s.Transform(x, y)
	}
	return x, y
}

func (s *Source) indexOf(id ebiten.TouchID) int {
	for i := range s.active {
		if s.active[i].id == id {
			return i
		}
	}
	return -1
}

// allocSlot returns the lowest free pointer slot, or -1 if all are taken.
func (s *Source) allocSlot() int {
	for i := range s.slotUsed {
		if !s.slotUsed[i] {
			s.slotUsed[i] = true
			return i
		}
	}
	return -1
}

func findContact(contacts []Contact, id ebiten.TouchID) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}
