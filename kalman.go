package scalegesture

import "math"

// scalarFilter is a one-dimensional Kalman filter over a pixel value with a
// position + delta model. Each of span and focus is filtered per axis; any
// correlation between axes is ignored.
type scalarFilter struct {
	result          float64
	estimate        float64
	p               float64
	prevMeasurement float64
	delta           float64
}

func (f *scalarFilter) reset(measurement float64, t *Tuning) {
	f.result = measurement
	f.estimate = measurement
	f.prevMeasurement = measurement
	f.p = t.InitialCovariance
	f.delta = 0
}

// update runs one time update and one measurement update. It must be called
// at a constant rate; the resampler guarantees that.
func (f *scalarFilter) update(measurement float64, t *Tuning, xdpi float64) float64 {
	// Linear motion from previous data.
	f.estimate = f.result + f.delta
	f.p += t.ProcessNoise

	f.delta = (measurement - f.prevMeasurement + f.delta*t.DeltaSmoothing) / (t.DeltaSmoothing + 1)
	f.prevMeasurement = measurement

	k := f.gain(t, xdpi)
	f.result = f.estimate + k*(measurement-f.estimate)
	f.p *= 1 - k
	return f.result
}

// gain is the Kalman gain for the current covariance and delta. Measurement
// noise is discounted as motion grows: when the value moves fast the
// sensor error matters less than lagging behind.
func (f *scalarFilter) gain(t *Tuning, xdpi float64) float64 {
	inchDelta := math.Abs(f.delta) / xdpi
	return f.p / (f.p + t.MeasurementNoise/(inchDelta*t.MotionDiscount+1))
}

// filterBank filters the four components of a Measurement independently.
type filterBank struct {
	spanX, spanY   scalarFilter
	focusX, focusY scalarFilter
	result         Measurement

	tuning *Tuning
	xdpi   float64
}

func (b *filterBank) start(m Measurement) Measurement {
	b.result = m
	b.spanX.reset(m.SpanX, b.tuning)
	b.spanY.reset(m.SpanY, b.tuning)
	b.focusX.reset(m.FocusX, b.tuning)
	b.focusY.reset(m.FocusY, b.tuning)
	return b.result
}

func (b *filterBank) update(m Measurement) Measurement {
	b.result.SpanX = b.spanX.update(m.SpanX, b.tuning, b.xdpi)
	b.result.SpanY = b.spanY.update(m.SpanY, b.tuning, b.xdpi)
	b.result.FocusX = b.focusX.update(m.FocusX, b.tuning, b.xdpi)
	b.result.FocusY = b.focusY.update(m.FocusY, b.tuning, b.xdpi)
	b.result.VerticalOnly = m.VerticalOnly
	return b.result
}
