package main

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/phanxgames/scalegesture"
)

// recorder is the replay listener. It counts notifications, logs them and
// keeps every grid sample reported by the detector's trace hook.
type recorder struct {
	log     *slog.Logger
	samples []scalegesture.GridSample

	begins, scales, ends int
	minFactor, maxFactor float64
}

func newRecorder(log *slog.Logger) *recorder {
	return &recorder{log: log, minFactor: 1, maxFactor: 1}
}

func (r *recorder) addSample(s scalegesture.GridSample) {
	r.samples = append(r.samples, s)
}

func (r *recorder) OnScaleBegin(d *scalegesture.Detector) bool {
	r.begins++
	r.log.Info("begin", "t", d.EventTime(), "span", d.CurrentSpan(),
		"focus_x", d.FocusX(), "focus_y", d.FocusY(), "drag_scale", d.DragScaleActive())
	return true
}

func (r *recorder) OnScale(d *scalegesture.Detector) bool {
	r.scales++
	f := d.ScaleFactor()
	r.minFactor = min(r.minFactor, f)
	r.maxFactor = max(r.maxFactor, f)
	r.log.Debug("scale", "t", d.EventTime(), "factor", f, "dt", d.TimeDelta())
	return true
}

func (r *recorder) OnScaleEnd(d *scalegesture.Detector) {
	r.ends++
	r.log.Info("end", "t", d.EventTime(), "span", d.CurrentSpan())
}

// intervals returns the gaps between consecutive frame times in
// milliseconds.
func intervals(frames []scalegesture.Frame) []float64 {
	if len(frames) < 2 {
		return nil
	}
	out := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		out = append(out, ms(frames[i].Time-frames[i-1].Time))
	}
	return out
}

// intervalStats summarises frame spacing: mean, standard deviation, min and
// max in milliseconds. All zero for fewer than two frames.
type intervalStats struct {
	Mean, StdDev, Min, Max float64
}

func summarize(gaps []float64) intervalStats {
	if len(gaps) == 0 {
		return intervalStats{}
	}
	mean, std := stat.MeanStdDev(gaps, nil)
	if len(gaps) == 1 {
		std = 0
	}
	return intervalStats{Mean: mean, StdDev: std, Min: floats.Min(gaps), Max: floats.Max(gaps)}
}

func writeCSV(path string, samples []scalegesture.GridSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"time_ms", "restart",
		"raw_span_x", "raw_span_y", "raw_focus_x", "raw_focus_y", "raw_span",
		"filt_span_x", "filt_span_y", "filt_focus_x", "filt_focus_y", "filt_span",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, s := range samples {
		row := []string{
			fmtFloat(ms(s.Time)), strconv.FormatBool(s.Restart),
			fmtFloat(s.Raw.SpanX), fmtFloat(s.Raw.SpanY),
			fmtFloat(s.Raw.FocusX), fmtFloat(s.Raw.FocusY), fmtFloat(s.Raw.Span()),
			fmtFloat(s.Filtered.SpanX), fmtFloat(s.Filtered.SpanY),
			fmtFloat(s.Filtered.FocusX), fmtFloat(s.Filtered.FocusY), fmtFloat(s.Filtered.Span()),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// writePlot renders raw and filtered span over time as a PNG (or any format
// gonum/plot infers from the extension).
func writePlot(path, title string, samples []scalegesture.GridSample) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}
	raw := make(plotter.XYs, len(samples))
	filtered := make(plotter.XYs, len(samples))
	for i, s := range samples {
		t := ms(s.Time)
		raw[i] = plotter.XY{X: t, Y: s.Raw.Span()}
		filtered[i] = plotter.XY{X: t, Y: s.Filtered.Span()}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (ms)"
	p.Y.Label.Text = "span (px)"
	p.Add(plotter.NewGrid())

	rawLine, err := plotter.NewLine(raw)
	if err != nil {
		return fmt.Errorf("raw line: %w", err)
	}
	rawLine.Color = color.RGBA{R: 200, G: 80, B: 80, A: 255}
	rawLine.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}

	filtLine, err := plotter.NewLine(filtered)
	if err != nil {
		return fmt.Errorf("filtered line: %w", err)
	}
	filtLine.Color = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	filtLine.Width = vg.Points(1.5)

	p.Add(rawLine, filtLine)
	p.Legend.Add("raw", rawLine)
	p.Legend.Add("filtered", filtLine)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
