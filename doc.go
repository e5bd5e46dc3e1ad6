// Package scalegesture recognises pinch/zoom gestures from multi-touch input.
//
// A [Detector] consumes [Frame]s (pointer down/move/up batches with optional
// historical sub-samples), derives a focal point and span from the active
// pointers, re-samples them onto a fixed time grid, smooths each component
// with an adaptive Kalman filter, and reports begin/scale/end notifications
// to a [Listener].
//
// # Quick start
//
//	d := scalegesture.New(scalegesture.DefaultConfig(), scalegesture.ListenerFuncs{
//		Scale: func(d *scalegesture.Detector) bool {
//			zoom *= d.ScaleFactor()
//			return true
//		},
//	})
//	for _, f := range frames {
//		d.ProcessFrame(f)
//	}
//
// The touch sub-package turns Ebitengine touch state into frames, and the
// view sub-package provides a viewport that zooms around the gesture focus.
//
// # Drag-to-scale
//
// A double-tap recogniser may call [Detector.BeginDragScale] on the second
// tap. Until the stream ends the focus is pinned at the tap location and
// vertical dragging alone changes the span.
//
// # Filtering
//
// Touch samples arrive at irregular intervals. Each sample is linearly
// interpolated onto a [Tuning.Step] grid before filtering so that the filter
// behaves the same at any input rate. Gaps longer than [Tuning.MaxInterval]
// or timestamps running backwards restart filtering from the new sample.
//
// # Logging
//
// Nothing is logged by default. Call [SetLogger] before creating detectors
// to receive debug records for gesture transitions.
package scalegesture
