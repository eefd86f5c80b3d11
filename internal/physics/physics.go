// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Within reports whether two points are strictly closer than dist.
func Within(x1, y1, x2, y2, dist float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < dist*dist
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Within(x1, y1, x2, y2, r1+r2)
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies strictly inside the box; points on
// an edge are outside.
func (r Rect) Contains(px, py float64) bool {
	return px > r.X && px < r.X+r.W && py > r.Y && py < r.Y+r.H
}

// Center returns the middle of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp limits v to [lo, hi]. If hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
