package scalegesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pinchScript = `
interval: 10ms
steps:
  - {action: press, pointer: a, x: 200, y: 300}
  - {action: press, pointer: b, x: 300, y: 300}
  - {action: move, pointer: b, x: 340, y: 300}
  - {action: move, pointer: b, x: 380, y: 300}
  - {action: move, pointer: b, x: 420, y: 300}
  - {action: release, pointer: b}
  - {action: release, pointer: a}
`

func TestParseScript(t *testing.T) {
	sc, err := ParseScript([]byte(pinchScript))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, sc.Interval)
	require.Len(t, sc.Steps, 7)
	assert.Equal(t, ScriptStep{Action: "move", Pointer: "b", X: 340, Y: 300}, sc.Steps[2])
}

func TestParseScriptDefaultsInterval(t *testing.T) {
	sc, err := ParseScript([]byte(`{"steps": [{"action": "wait", "duration": "1s"}]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultStep, sc.Interval)
	assert.Equal(t, time.Second, sc.Steps[0].Duration)
}

func TestParseScriptErrors(t *testing.T) {
	_, err := ParseScript([]byte("interval: 5ms\n"))
	assert.ErrorIs(t, err, ErrEmptyScript)

	_, err = ParseScript([]byte("steps: {"))
	assert.Error(t, err)
}

func TestScriptPlay(t *testing.T) {
	sc, err := ParseScript([]byte(pinchScript))
	require.NoError(t, err)

	rec := &recorder{}
	res, err := sc.Play(New(testConfig(), rec))
	require.NoError(t, err)
	assert.Len(t, res.Frames, 7)
	assert.Zero(t, res.Ignored)
	assert.Equal(t, 1, rec.count("begin"))
	assert.Equal(t, 1, rec.count("end"))
}

func TestScriptPlayPinchAndDragScale(t *testing.T) {
	sc, err := ParseScript([]byte(`
steps:
  - {action: pinch, x: 300, y: 300, from_span: 100, to_span: 300, frames: 20}
  - {action: wait, duration: 2s}
  - {action: press, pointer: a, x: 50, y: 50}
  - {action: drag_scale, x: 50, y: 50}
  - {action: move, pointer: a, x: 50, y: 100}
  - {action: move, pointer: a, x: 50, y: 150}
  - {action: move, pointer: a, x: 50, y: 200}
  - {action: release, pointer: a}
`))
	require.NoError(t, err)

	store := &sliceStore{}
	d := New(testConfig(), nil)
	d.SetEventStore(store)
	res, err := sc.Play(d)
	require.NoError(t, err)
	assert.Len(t, res.Frames, 25)

	var drag int
	for _, e := range store.events {
		if e.DragScale {
			drag++
		}
	}
	assert.Positive(t, drag)
	assert.False(t, d.DragScaleActive())
}

func TestScriptPlayErrors(t *testing.T) {
	tests := []struct {
		name  string
		steps []ScriptStep
	}{
		{"unknown action", []ScriptStep{{Action: "tap"}}},
		{"move unknown pointer", []ScriptStep{{Action: "move", Pointer: "z"}}},
		{"release unknown pointer", []ScriptStep{{Action: "release", Pointer: "z"}}},
		{"press twice", []ScriptStep{{Action: "press", Pointer: "a"}, {Action: "press", Pointer: "a"}}},
		{"pinch while down", []ScriptStep{{Action: "press", Pointer: "a"}, {Action: "pinch", Frames: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &Script{Interval: DefaultStep, Steps: tt.steps}
			_, err := sc.Play(New(testConfig(), nil))
			assert.Error(t, err)
		})
	}
}
