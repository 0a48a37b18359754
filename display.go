package stagehand

import "math"

// DisplayMetrics maps composition space to the letterboxed display viewport.
// It is recomputed whenever the viewport or composition aspect ratio changes
// and has no owner beyond the controller's current render pass.
type DisplayMetrics struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// FitDisplay computes the letterbox fit of a composition inside a viewport.
// The axis that would overflow is clamped to the viewport size, the other is
// derived to preserve aspect ratio, and the remaining viewport space is
// split evenly as the offset on that axis. Degenerate inputs yield zero
// metrics (see Valid).
func FitDisplay(compW, compH, viewW, viewH float64) DisplayMetrics {
	if compW <= 0 || compH <= 0 || viewW <= 0 || viewH <= 0 {
		return DisplayMetrics{}
	}
	scale := math.Min(viewW/compW, viewH/compH)
	return DisplayMetrics{
		ScaleX:  scale,
		ScaleY:  scale,
		OffsetX: (viewW - compW*scale) / 2,
		OffsetY: (viewH - compH*scale) / 2,
	}
}

// Valid reports whether the metrics describe a usable mapping. Pointer math
// against invalid metrics is skipped entirely.
func (m DisplayMetrics) Valid() bool {
	return m.ScaleX > 0 && m.ScaleY > 0
}

// ToComposition converts a display-space point to composition space.
func (m DisplayMetrics) ToComposition(x, y float64) (float64, float64) {
	if !m.Valid() {
		return 0, 0
	}
	return (x - m.OffsetX) / m.ScaleX, (y - m.OffsetY) / m.ScaleY
}

// ToDisplay converts a composition-space point to display space.
func (m DisplayMetrics) ToDisplay(x, y float64) (float64, float64) {
	return x*m.ScaleX + m.OffsetX, y*m.ScaleY + m.OffsetY
}
