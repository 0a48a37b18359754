package stagehand

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in composition-space pixels. The
// coordinate system has its origin at the top-left, with Y increasing
// downward. Width and Height are never negative.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Union returns the enclosing envelope of r and other: the minimum of the
// left/top edges and the maximum of the right/bottom edges.
func (r Rect) Union(other Rect) Rect {
	left := r.X
	if other.X < left {
		left = other.X
	}
	top := r.Y
	if other.Y < top {
		top = other.Y
	}
	right := r.X + r.Width
	if or := other.X + other.Width; or > right {
		right = or
	}
	bottom := r.Y + r.Height
	if ob := other.Y + other.Height; ob > bottom {
		bottom = ob
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// geomEpsilon is the tolerance for dimension comparisons (full-bleed
// classification and the like).
const geomEpsilon = 1e-6

// approxEq reports whether a and b are equal within geomEpsilon.
func approxEq(a, b float64) bool {
	d := a - b
	return d > -geomEpsilon && d < geomEpsilon
}
