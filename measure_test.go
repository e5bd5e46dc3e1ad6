package scalegesture

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name     string
		pointers []Pointer
		skip     int
		tmm      float64
		want     Measurement
	}{
		{
			name:     "two pointers horizontal",
			pointers: []Pointer{{X: 100, Y: 100}, {ID: 1, X: 200, Y: 100}},
			skip:     -1,
			want:     Measurement{FocusX: 150, FocusY: 100, SpanX: 100},
		},
		{
			name:     "touch size inflates span",
			pointers: []Pointer{{X: 100, Y: 100}, {ID: 1, X: 200, Y: 100}},
			skip:     -1,
			tmm:      10,
			want:     Measurement{FocusX: 150, FocusY: 100, SpanX: 114, SpanY: 14},
		},
		{
			name:     "single pointer",
			pointers: []Pointer{{X: 40, Y: 60}},
			skip:     -1,
			tmm:      10,
			want:     Measurement{FocusX: 40, FocusY: 60, SpanX: 14, SpanY: 14},
		},
		{
			name:     "lifting pointer excluded",
			pointers: []Pointer{{X: 0, Y: 0}, {ID: 1, X: 100, Y: 0}, {ID: 2, X: 50, Y: 80}},
			skip:     2,
			want:     Measurement{FocusX: 50, FocusY: 0, SpanX: 100},
		},
		{
			name:     "three pointers",
			pointers: []Pointer{{X: 0, Y: 0}, {ID: 1, X: 60, Y: 0}, {ID: 2, X: 30, Y: 90}},
			skip:     -1,
			// focus (30, 30); devX 30+30+0, devY 30+30+60.
			want: Measurement{FocusX: 30, FocusY: 30, SpanX: 40, SpanY: 80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := measure(tt.pointers, tt.skip, tt.tmm, nil)
			require.True(t, ok)
			assert.InDelta(t, tt.want.FocusX, got.FocusX, 1e-9)
			assert.InDelta(t, tt.want.FocusY, got.FocusY, 1e-9)
			assert.InDelta(t, tt.want.SpanX, got.SpanX, 1e-9)
			assert.InDelta(t, tt.want.SpanY, got.SpanY, 1e-9)
			assert.False(t, got.VerticalOnly)
		})
	}
}

func TestMeasureNoPointers(t *testing.T) {
	_, ok := measure(nil, -1, 0, nil)
	assert.False(t, ok)

	_, ok = measure([]Pointer{{X: 1, Y: 1}}, 0, 0, nil)
	assert.False(t, ok, "skipping the only pointer leaves nothing to measure")
}

func TestMeasurePinned(t *testing.T) {
	pin := anchor{x: 50, y: 50}
	got, ok := measure([]Pointer{{X: 50, Y: 20}}, -1, 0, &pin)
	require.True(t, ok)
	assert.Equal(t, 50.0, got.FocusX)
	assert.Equal(t, 50.0, got.FocusY)
	assert.True(t, got.VerticalOnly)
	assert.Equal(t, 0.0, got.SpanX)
	assert.Equal(t, 60.0, got.SpanY)
	assert.Equal(t, 60.0, got.Span())
}

func TestMeasureSpanNonNegative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		n := 1 + r.IntN(6)
		pointers := make([]Pointer, n)
		for j := range pointers {
			pointers[j] = Pointer{ID: j, X: r.Float64()*2000 - 1000, Y: r.Float64()*2000 - 1000}
		}
		m, ok := measure(pointers, -1, float64(r.IntN(64)), nil)
		require.True(t, ok)
		require.GreaterOrEqual(t, m.SpanX, 0.0)
		require.GreaterOrEqual(t, m.SpanY, 0.0)
		require.False(t, math.IsNaN(m.Span()))
	}
}

func TestMeasurementSpan(t *testing.T) {
	m := Measurement{SpanX: 30, SpanY: 40}
	assert.Equal(t, 50.0, m.Span())
	m.VerticalOnly = true
	assert.Equal(t, 40.0, m.Span())
}

func TestMeasurementLerp(t *testing.T) {
	a := Measurement{FocusX: 0, FocusY: 10, SpanX: 100, SpanY: 0, VerticalOnly: true}
	b := Measurement{FocusX: 10, FocusY: 30, SpanX: 200, SpanY: 50}
	got := a.lerp(b, 0.5)
	assert.Equal(t, Measurement{FocusX: 5, FocusY: 20, SpanX: 150, SpanY: 25, VerticalOnly: true}, got)
}
