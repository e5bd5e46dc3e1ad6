package scalegesture

import (
	"log/slog"
	"time"
)

// resampler re-aligns irregular samples onto a fixed Step grid before they
// reach the filters, so filter behaviour does not depend on the input rate.
type resampler struct {
	filters  filterBank
	baseline Measurement
	t0       time.Duration
	ready    bool

	step        time.Duration
	maxInterval time.Duration

	trace func(GridSample)
	log   *slog.Logger
}

func newResampler(t *Tuning, xdpi float64, log *slog.Logger) resampler {
	return resampler{
		filters:     filterBank{tuning: t, xdpi: xdpi},
		step:        t.Step,
		maxInterval: t.MaxInterval,
		log:         log,
	}
}

// restart makes m the new baseline at time t and resets the filters.
func (r *resampler) restart(m Measurement, t time.Duration) Measurement {
	r.baseline = m
	r.t0 = t
	r.ready = true
	out := r.filters.start(m)
	if r.trace != nil {
		r.trace(GridSample{Time: t, Raw: m, Filtered: out, Restart: true})
	}
	return out
}

// advance steps the filters along the grid up to t, interpolating between
// the baseline and m under a constant-velocity assumption. ok is false when
// less than one step has elapsed since the last grid point.
func (r *resampler) advance(m Measurement, t time.Duration) (filtered Measurement, ok bool) {
	// A gap this long means a broken stream or a clock jump; looping over it
	// would either take forever or never start.
	if !r.ready || t < r.t0 || t-r.t0 > r.maxInterval {
		if r.ready {
			r.log.Debug("scalegesture: resampler restart",
				"gap", t-r.t0, "max_interval", r.maxInterval)
		}
		return r.restart(m, t), true
	}

	for r.t0+r.step <= t {
		weight := float64(r.step) / float64(t-r.t0)
		r.baseline = r.baseline.lerp(m, weight)
		r.baseline.VerticalOnly = m.VerticalOnly
		filtered = r.filters.update(r.baseline)
		ok = true
		r.t0 += r.step
		if r.trace != nil {
			r.trace(GridSample{Time: r.t0, Raw: r.baseline, Filtered: filtered})
		}
	}
	return filtered, ok
}
