package scalegesture

// touchMajorInflation is the share of the minimum touch size added to each
// pointer's deviation, so a single contact still has a non-zero span.
const touchMajorInflation = 0.7

// anchor is the pinned focus of a drag-to-scale gesture.
type anchor struct {
	x, y float64
}

// measure derives focus and span from pointers, leaving out index skip
// (pass -1 to include all). A non-nil pin replaces the computed focus and
// switches the measurement to vertical-only span. ok is false when no
// pointer remains after skipping.
func measure(pointers []Pointer, skip int, touchMinMajor float64, pin *anchor) (m Measurement, ok bool) {
	n := 0
	var sumX, sumY float64
	for i, p := range pointers {
		if i == skip {
			continue
		}
		sumX += p.X
		sumY += p.Y
		n++
	}
	if n == 0 {
		return Measurement{}, false
	}
	div := float64(n)

	if pin != nil {
		m.FocusX, m.FocusY = pin.x, pin.y
		m.VerticalOnly = true
	} else {
		m.FocusX, m.FocusY = sumX/div, sumY/div
	}

	inflate := touchMinMajor * touchMajorInflation
	var devX, devY float64
	for i, p := range pointers {
		if i == skip {
			continue
		}
		devX += abs(p.X-m.FocusX) + inflate
		devY += abs(p.Y-m.FocusY) + inflate
	}
	// Average distance between pointers through the focus: the diameter of
	// a circle whose radius is the mean deviation.
	m.SpanX = max(0, devX/div*2)
	m.SpanY = max(0, devY/div*2)
	return m, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
