package scalegesture

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned by ParseScript for a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// ScriptStep is one action in a gesture script.
type ScriptStep struct {
	Action string `yaml:"action"`
	// Pointer names the pointer for press, move and release.
	Pointer  string        `yaml:"pointer,omitempty"`
	X        float64       `yaml:"x,omitempty"`
	Y        float64       `yaml:"y,omitempty"`
	FromSpan float64       `yaml:"from_span,omitempty"`
	ToSpan   float64       `yaml:"to_span,omitempty"`
	Frames   int           `yaml:"frames,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
}

// Script is a recorded or hand-written gesture session. It is read from YAML
// or JSON:
//
//	interval: 8ms
//	steps:
//	  - {action: press, pointer: a, x: 100, y: 100}
//	  - {action: press, pointer: b, x: 200, y: 100}
//	  - {action: move, pointer: b, x: 260, y: 100}
//	  - {action: release, pointer: b}
//	  - {action: release, pointer: a}
//
// Actions: press, move, release, cancel, pinch (x, y, from_span, to_span,
// frames), drag_scale (x, y), wait (duration).
type Script struct {
	Interval time.Duration `yaml:"interval"`
	Steps    []ScriptStep  `yaml:"steps"`
}

// PlayResult summarises a replay.
type PlayResult struct {
	Frames  []Frame
	Ignored int // frames the detector rejected as malformed
}

// ParseScript decodes a YAML or JSON script. A missing interval defaults to
// DefaultStep.
func ParseScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	if sc.Interval <= 0 {
		sc.Interval = DefaultStep
	}
	return &sc, nil
}

// Play feeds the script to d step by step. Frames are delivered as soon as
// each step produces them, so drag_scale steps take effect between frames
// exactly where they appear.
func (sc *Script) Play(d *Detector) (PlayResult, error) {
	var res PlayResult
	synth := NewSynth(sc.Interval)
	ids := make(map[string]int)

	for i, st := range sc.Steps {
		switch st.Action {
		case "press":
			if _, ok := ids[st.Pointer]; ok {
				return res, fmt.Errorf("step %d: pointer %q already down", i, st.Pointer)
			}
			ids[st.Pointer] = synth.Press(st.X, st.Y)
		case "move":
			id, ok := ids[st.Pointer]
			if !ok {
				return res, fmt.Errorf("step %d: move of unknown pointer %q", i, st.Pointer)
			}
			synth.Move(id, st.X, st.Y)
		case "release":
			id, ok := ids[st.Pointer]
			if !ok {
				return res, fmt.Errorf("step %d: release of unknown pointer %q", i, st.Pointer)
			}
			synth.Release(id)
			delete(ids, st.Pointer)
		case "cancel":
			synth.Cancel()
			clear(ids)
		case "pinch":
			if synth.Active() > 0 {
				return res, fmt.Errorf("step %d: pinch while %d pointers are down", i, synth.Active())
			}
			synth.Pinch(st.X, st.Y, st.FromSpan, st.ToSpan, st.Frames)
		case "drag_scale":
			d.BeginDragScale(st.X, st.Y)
		case "wait":
			synth.Wait(st.Duration)
		default:
			return res, fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}

		for _, f := range synth.Frames() {
			if !d.ProcessFrame(f) {
				res.Ignored++
			}
			res.Frames = append(res.Frames, f)
		}
	}
	return res, nil
}
