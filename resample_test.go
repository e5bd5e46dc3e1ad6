package scalegesture

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResampler(trace func(GridSample)) (*resampler, *Tuning) {
	tun := DefaultTuning()
	r := newResampler(&tun, DefaultDisplayXDPI, newNopLogger())
	r.trace = trace
	return &r, &tun
}

func TestResamplerFirstSampleRestarts(t *testing.T) {
	var trace []GridSample
	r, _ := newTestResampler(func(s GridSample) { trace = append(trace, s) })

	m := Measurement{SpanX: 100, FocusX: 50}
	got, ok := r.advance(m, 5*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, m, got)
	require.Len(t, trace, 1)
	assert.True(t, trace[0].Restart)
	assert.Equal(t, 5*time.Millisecond, trace[0].Time)
}

func TestResamplerSubStepHasNoOutput(t *testing.T) {
	r, _ := newTestResampler(nil)
	r.restart(Measurement{SpanX: 100}, 0)

	_, ok := r.advance(Measurement{SpanX: 120}, DefaultStep-time.Millisecond)
	assert.False(t, ok)
}

func TestResamplerStepsOnGrid(t *testing.T) {
	var trace []GridSample
	r, _ := newTestResampler(func(s GridSample) { trace = append(trace, s) })
	r.restart(Measurement{SpanX: 100}, 0)
	trace = nil

	_, ok := r.advance(Measurement{SpanX: 140}, 4*DefaultStep+3*time.Millisecond)
	require.True(t, ok)
	require.Len(t, trace, 4)
	for i, s := range trace {
		assert.Equal(t, time.Duration(i+1)*DefaultStep, s.Time)
		assert.False(t, s.Restart)
	}
	// Linear input interpolates onto the grid: 100 + 40*(8/35) at the first
	// step, and so on.
	assert.InDelta(t, 100+40*8.0/35.0, trace[0].Raw.SpanX, 1e-9)
	assert.InDelta(t, 100+40*32.0/35.0, trace[3].Raw.SpanX, 1e-9)
	assert.Equal(t, 4*DefaultStep, r.t0)
}

func TestResamplerRestartsOnGap(t *testing.T) {
	var trace []GridSample
	r, tun := newTestResampler(func(s GridSample) { trace = append(trace, s) })
	r.restart(Measurement{SpanX: 100}, 0)
	trace = nil

	m := Measurement{SpanX: 300}
	at := tun.MaxInterval + time.Millisecond
	got, ok := r.advance(m, at)
	require.True(t, ok)
	assert.Equal(t, m, got)
	require.Len(t, trace, 1)
	assert.True(t, trace[0].Restart)
	assert.Equal(t, at, r.t0)
}

func TestResamplerRestartsOnBackwardsTime(t *testing.T) {
	r, _ := newTestResampler(nil)
	r.restart(Measurement{SpanX: 100}, 100*time.Millisecond)

	m := Measurement{SpanX: 90}
	got, ok := r.advance(m, 50*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, m, got)
	assert.Equal(t, 50*time.Millisecond, r.t0)
}

func TestResamplerConstantInputIsFixedPoint(t *testing.T) {
	r, _ := newTestResampler(nil)
	m := Measurement{SpanX: 100, SpanY: 20, FocusX: 5, FocusY: 6}
	r.restart(m, 0)
	for ts := 13 * time.Millisecond; ts < 500*time.Millisecond; ts += 13 * time.Millisecond {
		if got, ok := r.advance(m, ts); ok {
			require.InDelta(t, m.SpanX, got.SpanX, 1e-9)
			require.InDelta(t, m.SpanY, got.SpanY, 1e-9)
			require.InDelta(t, m.FocusX, got.FocusX, 1e-9)
			require.InDelta(t, m.FocusY, got.FocusY, 1e-9)
		}
	}
}

// A move delivered with its history batched must drive the filters through
// exactly the same grid points as the same samples delivered one by one.
func TestResamplerHistoryBatchingIsDeterministic(t *testing.T) {
	positions := []float64{120, 135, 160, 150, 190, 230, 260, 250, 300}
	interval := 5 * time.Millisecond

	record := func(batch int) []GridSample {
		var trace []GridSample
		d := New(testConfig(), nil)
		d.SetTrace(func(s GridSample) { trace = append(trace, s) })

		d.ProcessFrame(Frame{Action: ActionDown, Pointers: []Pointer{{X: 100, Y: 100}}})
		two := func(x float64) []Pointer {
			return []Pointer{{X: 100, Y: 100}, {ID: 1, X: x, Y: 100}}
		}
		d.ProcessFrame(Frame{Action: ActionPointerDown, ActionIndex: 1, Time: interval, Pointers: two(200)})

		var history []Sample
		for i, x := range positions {
			ts := time.Duration(i+2) * interval
			if len(history) < batch-1 && i < len(positions)-1 {
				history = append(history, Sample{Time: ts, Pointers: two(x)})
				continue
			}
			d.ProcessFrame(Frame{Action: ActionMove, Time: ts, Pointers: two(x), History: history})
			history = nil
		}
		return trace
	}

	unbatched := record(1)
	for _, batch := range []int{2, 3, len(positions)} {
		if diff := cmp.Diff(unbatched, record(batch), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("batch %d trace mismatch (-unbatched +batched):\n%s", batch, diff)
		}
	}
}
