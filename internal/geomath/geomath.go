// Package geomath computes corner points and bounding boxes for rotated
// rectangles.
package geomath

import "math"

// Vec2 is a 2D point or extent.
type Vec2 struct {
	X, Y float64
}

// Corners returns the four corner points of a rectangle of the given size
// centered at (cx, cy) and rotated by angle degrees. Corners 2 and 3 are
// the reflections of corners 0 and 1 through the center.
func Corners(cx, cy, width, height, angle float64) [4]Vec2 {
	rad := angle * math.Pi / 180
	a := math.Sin(rad) * 0.5
	b := math.Cos(rad) * 0.5

	var pts [4]Vec2
	pts[0] = Vec2{cx - a*height - b*width, cy + b*height - a*width}
	pts[1] = Vec2{cx + a*height - b*width, cy - b*height - a*width}
	pts[2] = Vec2{2*cx - pts[0].X, 2*cy - pts[0].Y}
	pts[3] = Vec2{2*cx - pts[1].X, 2*cy - pts[1].Y}
	return pts
}

// BoundingBox returns the componentwise min and max of the given points,
// i.e. the top-left and bottom-right of their axis-aligned bounding box in
// image coordinates.
func BoundingBox(pts [4]Vec2) (min, max Vec2) {
	min = pts[0]
	max = pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
