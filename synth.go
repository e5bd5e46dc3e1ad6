package scalegesture

import "time"

// Synth builds synthetic frame streams for tests, demos and scripted
// replays. Every call that emits a frame advances the clock by Interval
// first, except the very first frame which is stamped at the start time.
type Synth struct {
	// Interval is the time between consecutive frames.
	Interval time.Duration

	now      time.Duration
	started  bool
	pointers []Pointer
	nextID   int
	frames   []Frame
}

// NewSynth creates a Synth starting at time zero.
func NewSynth(interval time.Duration) *Synth {
	return &Synth{Interval: interval}
}

// Now returns the timestamp of the next frame.
func (s *Synth) Now() time.Duration {
	if !s.started {
		return s.now
	}
	return s.now + s.Interval
}

// Wait advances the clock by d without emitting a frame.
func (s *Synth) Wait(d time.Duration) {
	s.now += d
}

// Press adds a pointer at (x, y) and returns its ID. The first pointer of a
// stream emits ActionDown, later ones ActionPointerDown.
func (s *Synth) Press(x, y float64) int {
	id := s.nextID
	s.nextID++
	s.pointers = append(s.pointers, Pointer{ID: id, X: x, Y: y})
	action := ActionPointerDown
	if len(s.pointers) == 1 {
		action = ActionDown
	}
	s.emit(action, len(s.pointers)-1)
	return id
}

// Move moves pointer id to (x, y) and emits an ActionMove. Unknown IDs are
// ignored.
func (s *Synth) Move(id int, x, y float64) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.pointers[i].X, s.pointers[i].Y = x, y
	s.emit(ActionMove, 0)
}

// MoveAll repositions every pointer in one ActionMove. pos is indexed like
// the active pointer list; extra entries are ignored.
func (s *Synth) MoveAll(pos ...[2]float64) {
	for i := range s.pointers {
		if i < len(pos) {
			s.pointers[i].X, s.pointers[i].Y = pos[i][0], pos[i][1]
		}
	}
	s.emit(ActionMove, 0)
}

// Release lifts pointer id. Lifting the last pointer emits ActionUp.
func (s *Synth) Release(id int) {
	i := s.index(id)
	if i < 0 {
		return
	}
	if len(s.pointers) == 1 {
		s.emit(ActionUp, 0)
	} else {
		s.emit(ActionPointerUp, i)
	}
	s.pointers = append(s.pointers[:i], s.pointers[i+1:]...)
}

// Cancel aborts the stream and forgets every pointer.
func (s *Synth) Cancel() {
	s.emit(ActionCancel, 0)
	s.pointers = s.pointers[:0]
}

// Pinch queues a complete two-finger pinch centred on (cx, cy): both
// pointers press at a horizontal distance of fromSpan, the distance is
// linearly interpolated to toSpan over frames-3 intermediate moves, then
// both release. The sequence consumes frames frames; the minimum is 4.
func (s *Synth) Pinch(cx, cy, fromSpan, toSpan float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	a := s.Press(cx-fromSpan/2, cy)
	b := s.Press(cx+fromSpan/2, cy)
	steps := frames - 4
	for i := 1; i <= steps+1; i++ {
		t := float64(i) / float64(steps+1)
		half := (fromSpan + (toSpan-fromSpan)*t) / 2
		ia, ib := s.index(a), s.index(b)
		s.pointers[ia].X = cx - half
		s.pointers[ib].X = cx + half
		if i <= steps {
			s.emit(ActionMove, 0)
		}
	}
	s.Release(b)
	s.Release(a)
}

// Frames returns the frames emitted so far and clears the queue.
func (s *Synth) Frames() []Frame {
	out := s.frames
	s.frames = nil
	return out
}

// Active reports the number of pointers currently down.
func (s *Synth) Active() int { return len(s.pointers) }

func (s *Synth) index(id int) int {
	for i := range s.pointers {
		if s.pointers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Synth) emit(action Action, index int) {
	if s.started {
		s.now += s.Interval
	}
	s.started = true
	s.frames = append(s.frames, Frame{
		Action:      action,
		ActionIndex: index,
		Time:        s.now,
		Pointers:    append([]Pointer(nil), s.pointers...),
	})
}
